package responses

import "hospital-service/internal/app/models"

type LoginUser struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type RegisterUser struct {
	User *models.User `json:"user"`
}

// CurrentUser carries the caller and, for patients and doctors, the id of the
// linked profile once it has been set up.
type CurrentUser struct {
	User      *models.User `json:"user"`
	ProfileID string       `json:"profileId,omitempty"`
}
