package requests

import "hospital-service/internal/app/services/core/authorization"

type EmergencyContact struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
	Phone        string `json:"phone" validate:"required,phone_number"`
}

type CreatePatient struct {
	// UserID is only honoured for admins; patients always create their own profile.
	UserID           string            `json:"userId" validate:"omitempty,object_id"`
	DateOfBirth      string            `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender           string            `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodGroup       string            `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Phone            string            `json:"phone" validate:"omitempty,phone_number"`
	Address          string            `json:"address" validate:"max=500"`
	EmergencyContact *EmergencyContact `json:"emergencyContact"`
	Allergies        []string          `json:"allergies"`
	MedicalHistory   []string          `json:"medicalHistory"`
}

type UpdatePatient struct {
	DateOfBirth      *string           `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string           `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodGroup       *string           `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Phone            *string           `json:"phone" validate:"omitempty,phone_number"`
	Address          *string           `json:"address" validate:"omitempty,max=500"`
	EmergencyContact *EmergencyContact `json:"emergencyContact"`
	Allergies        *[]string         `json:"allergies"`
	MedicalHistory   *[]string         `json:"medicalHistory"`
}

func (r *UpdatePatient) Changes() authorization.Changes {
	changes := authorization.Changes{}
	if r.DateOfBirth != nil {
		changes["dateOfBirth"] = *r.DateOfBirth
	}
	if r.Gender != nil {
		changes["gender"] = *r.Gender
	}
	if r.BloodGroup != nil {
		changes["bloodGroup"] = *r.BloodGroup
	}
	if r.Phone != nil {
		changes["phone"] = *r.Phone
	}
	if r.Address != nil {
		changes["address"] = *r.Address
	}
	if r.EmergencyContact != nil {
		changes["emergencyContact"] = *r.EmergencyContact
	}
	if r.Allergies != nil {
		changes["allergies"] = *r.Allergies
	}
	if r.MedicalHistory != nil {
		changes["medicalHistory"] = *r.MedicalHistory
	}
	return changes
}
