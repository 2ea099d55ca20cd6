package requests

import "hospital-service/internal/app/services/core/authorization"

type DoctorAvailability struct {
	Day       string   `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TimeSlots []string `json:"timeSlots" validate:"dive,time_slot"`
}

type CreateDoctor struct {
	// UserID is only honoured for admins; doctors always create their own profile.
	UserID          string               `json:"userId" validate:"omitempty,object_id"`
	Specialization  string               `json:"specialization" validate:"required"`
	LicenseNumber   string               `json:"licenseNumber" validate:"required"`
	Experience      int                  `json:"experience" validate:"gte=0"`
	ConsultationFee float64              `json:"consultationFee" validate:"gte=0"`
	Qualifications  []string             `json:"qualifications"`
	Bio             string               `json:"bio" validate:"max=2000"`
	Phone           string               `json:"phone" validate:"omitempty,phone_number"`
	Availability    []DoctorAvailability `json:"availability" validate:"dive"`
}

type UpdateDoctor struct {
	Specialization  *string               `json:"specialization" validate:"omitempty,min=1"`
	LicenseNumber   *string               `json:"licenseNumber" validate:"omitempty,min=1"`
	Experience      *int                  `json:"experience" validate:"omitempty,gte=0"`
	ConsultationFee *float64              `json:"consultationFee" validate:"omitempty,gte=0"`
	Qualifications  *[]string             `json:"qualifications"`
	Bio             *string               `json:"bio" validate:"omitempty,max=2000"`
	Phone           *string               `json:"phone" validate:"omitempty,phone_number"`
	Availability    *[]DoctorAvailability `json:"availability" validate:"omitempty,dive"`
	IsApproved      *bool                 `json:"isApproved"`
}

func (r *UpdateDoctor) Changes() authorization.Changes {
	changes := authorization.Changes{}
	if r.Specialization != nil {
		changes["specialization"] = *r.Specialization
	}
	if r.LicenseNumber != nil {
		changes["licenseNumber"] = *r.LicenseNumber
	}
	if r.Experience != nil {
		changes["experience"] = *r.Experience
	}
	if r.ConsultationFee != nil {
		changes["consultationFee"] = *r.ConsultationFee
	}
	if r.Qualifications != nil {
		changes["qualifications"] = *r.Qualifications
	}
	if r.Bio != nil {
		changes["bio"] = *r.Bio
	}
	if r.Phone != nil {
		changes["phone"] = *r.Phone
	}
	if r.Availability != nil {
		changes["availability"] = *r.Availability
	}
	if r.IsApproved != nil {
		changes["isApproved"] = *r.IsApproved
	}
	return changes
}

type ApproveDoctor struct {
	IsApproved *bool `json:"isApproved"`
}

// Approved defaults to true when the body omits the flag.
func (r *ApproveDoctor) Approved() bool {
	return r.IsApproved == nil || *r.IsApproved
}

type DoctorFilter struct {
	Specialization string
}
