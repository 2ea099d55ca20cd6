package requests

import (
	"time"

	"hospital-service/internal/app/services/core/authorization"
)

type VitalSigns struct {
	BloodPressure string  `json:"bloodPressure"`
	HeartRate     int     `json:"heartRate" validate:"gte=0,lte=300"`
	Temperature   float64 `json:"temperature" validate:"gte=0,lte=50"`
	Weight        float64 `json:"weight" validate:"gte=0"`
	Height        float64 `json:"height" validate:"gte=0"`
}

type CreateMedicalRecord struct {
	AppointmentID string      `json:"appointmentId" validate:"required,object_id"`
	DoctorID      string      `json:"doctorId" validate:"omitempty,object_id"`
	Diagnosis     string      `json:"diagnosis" validate:"required"`
	Symptoms      []string    `json:"symptoms"`
	Treatment     string      `json:"treatment" validate:"required"`
	Notes         string      `json:"notes" validate:"max=5000"`
	VitalSigns    *VitalSigns `json:"vitalSigns"`
	FollowUpDate  *time.Time  `json:"followUpDate"`
}

type UpdateMedicalRecord struct {
	Diagnosis    *string     `json:"diagnosis" validate:"omitempty,min=1"`
	Symptoms     *[]string   `json:"symptoms"`
	Treatment    *string     `json:"treatment" validate:"omitempty,min=1"`
	Notes        *string     `json:"notes" validate:"omitempty,max=5000"`
	VitalSigns   *VitalSigns `json:"vitalSigns"`
	FollowUpDate *time.Time  `json:"followUpDate"`
}

func (r *UpdateMedicalRecord) Changes() authorization.Changes {
	changes := authorization.Changes{}
	if r.Diagnosis != nil {
		changes["diagnosis"] = *r.Diagnosis
	}
	if r.Symptoms != nil {
		changes["symptoms"] = *r.Symptoms
	}
	if r.Treatment != nil {
		changes["treatment"] = *r.Treatment
	}
	if r.Notes != nil {
		changes["notes"] = *r.Notes
	}
	if r.VitalSigns != nil {
		changes["vitalSigns"] = *r.VitalSigns
	}
	if r.FollowUpDate != nil {
		changes["followUpDate"] = *r.FollowUpDate
	}
	return changes
}

type UploadAttachment struct {
	FileName    string
	ContentType string
	Size        int64
}
