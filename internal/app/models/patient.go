package models

import "time"

type Patient struct {
	ID               string            `json:"id" bson:"_id,omitempty"`
	UserID           string            `json:"userId" bson:"userId"`
	DateOfBirth      *time.Time        `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender           string            `json:"gender,omitempty" bson:"gender,omitempty"`
	BloodGroup       string            `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	Phone            string            `json:"phone,omitempty" bson:"phone,omitempty"`
	Address          string            `json:"address,omitempty" bson:"address,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty" bson:"emergencyContact,omitempty"`
	Allergies        []string          `json:"allergies" bson:"allergies"`
	MedicalHistory   []string          `json:"medicalHistory" bson:"medicalHistory"`
	TimeModel        `bson:",inline"`
}

type EmergencyContact struct {
	Name         string `json:"name" bson:"name"`
	Relationship string `json:"relationship" bson:"relationship"`
	Phone        string `json:"phone" bson:"phone"`
}
