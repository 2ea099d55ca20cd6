package models

import "time"

type Prescription struct {
	ID              string       `json:"id" bson:"_id,omitempty"`
	PatientID       string       `json:"patientId" bson:"patientId"`
	DoctorID        string       `json:"doctorId" bson:"doctorId"`
	MedicalRecordID string       `json:"medicalRecordId" bson:"medicalRecordId"`
	Medications     []Medication `json:"medications" bson:"medications"`
	Instructions    string       `json:"instructions,omitempty" bson:"instructions,omitempty"`
	ValidUntil      *time.Time   `json:"validUntil,omitempty" bson:"validUntil,omitempty"`
	TimeModel       `bson:",inline"`
}

type Medication struct {
	Name      string `json:"name" bson:"name"`
	Dosage    string `json:"dosage" bson:"dosage"`
	Frequency string `json:"frequency" bson:"frequency"`
	Duration  string `json:"duration" bson:"duration"`
}
