package requests

import (
	"time"

	"hospital-service/internal/app/services/core/authorization"
)

type Medication struct {
	Name      string `json:"name" validate:"required"`
	Dosage    string `json:"dosage" validate:"required"`
	Frequency string `json:"frequency" validate:"required"`
	Duration  string `json:"duration" validate:"required"`
}

type CreatePrescription struct {
	MedicalRecordID string       `json:"medicalRecordId" validate:"required,object_id"`
	Medications     []Medication `json:"medications" validate:"required,min=1,dive"`
	Instructions    string       `json:"instructions" validate:"max=2000"`
	ValidUntil      *time.Time   `json:"validUntil"`
}

type UpdatePrescription struct {
	Medications  *[]Medication `json:"medications" validate:"omitempty,min=1,dive"`
	Instructions *string       `json:"instructions" validate:"omitempty,max=2000"`
	ValidUntil   *time.Time    `json:"validUntil"`
}

func (r *UpdatePrescription) Changes() authorization.Changes {
	changes := authorization.Changes{}
	if r.Medications != nil {
		changes["medications"] = *r.Medications
	}
	if r.Instructions != nil {
		changes["instructions"] = *r.Instructions
	}
	if r.ValidUntil != nil {
		changes["validUntil"] = *r.ValidUntil
	}
	return changes
}
