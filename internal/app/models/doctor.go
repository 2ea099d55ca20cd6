package models

type Doctor struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	UserID          string         `json:"userId" bson:"userId"`
	Specialization  string         `json:"specialization" bson:"specialization"`
	LicenseNumber   string         `json:"licenseNumber" bson:"licenseNumber"`
	Experience      int            `json:"experience" bson:"experience"`
	ConsultationFee float64        `json:"consultationFee" bson:"consultationFee"`
	Qualifications  []string       `json:"qualifications" bson:"qualifications"`
	Bio             string         `json:"bio,omitempty" bson:"bio,omitempty"`
	Phone           string         `json:"phone,omitempty" bson:"phone,omitempty"`
	Availability    []Availability `json:"availability" bson:"availability"`
	IsApproved      bool           `json:"isApproved" bson:"isApproved"`
	TimeModel       `bson:",inline"`
}

type Availability struct {
	Day       string   `json:"day" bson:"day"`
	TimeSlots []string `json:"timeSlots" bson:"timeSlots"`
}
