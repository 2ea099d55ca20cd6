package models

import "time"

type MedicalRecord struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	PatientID     string       `json:"patientId" bson:"patientId"`
	DoctorID      string       `json:"doctorId" bson:"doctorId"`
	AppointmentID string       `json:"appointmentId" bson:"appointmentId"`
	Diagnosis     string       `json:"diagnosis" bson:"diagnosis"`
	Symptoms      []string     `json:"symptoms" bson:"symptoms"`
	Treatment     string       `json:"treatment" bson:"treatment"`
	Notes         string       `json:"notes,omitempty" bson:"notes,omitempty"`
	VitalSigns    *VitalSigns  `json:"vitalSigns,omitempty" bson:"vitalSigns,omitempty"`
	FollowUpDate  *time.Time   `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"`
	Attachments   []Attachment `json:"attachments" bson:"attachments"`
	TimeModel     `bson:",inline"`
}

type VitalSigns struct {
	BloodPressure string  `json:"bloodPressure,omitempty" bson:"bloodPressure,omitempty"`
	HeartRate     int     `json:"heartRate,omitempty" bson:"heartRate,omitempty"`
	Temperature   float64 `json:"temperature,omitempty" bson:"temperature,omitempty"`
	Weight        float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	Height        float64 `json:"height,omitempty" bson:"height,omitempty"`
}

type Attachment struct {
	ID          string    `json:"id" bson:"id"`
	FileName    string    `json:"fileName" bson:"fileName"`
	ObjectName  string    `json:"objectName" bson:"objectName"`
	URL         string    `json:"url" bson:"url"`
	ContentType string    `json:"contentType" bson:"contentType"`
	Size        int64     `json:"size" bson:"size"`
	UploadedAt  time.Time `json:"uploadedAt" bson:"uploadedAt"`
}
