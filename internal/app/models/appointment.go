package models

const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusNoShow    = "no-show"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// ActiveAppointmentStatuses are the statuses that hold a doctor's time slot.
var ActiveAppointmentStatuses = []string{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusNoShow,
}

type Appointment struct {
	ID            string `json:"id" bson:"_id,omitempty"`
	PatientID     string `json:"patientId" bson:"patientId"`
	DoctorID      string `json:"doctorId" bson:"doctorId"`
	Date          string `json:"date" bson:"date"`
	TimeSlot      string `json:"timeSlot" bson:"timeSlot"`
	Reason        string `json:"reason" bson:"reason"`
	Notes         string `json:"notes,omitempty" bson:"notes,omitempty"`
	Status        string `json:"status" bson:"status"`
	PaymentStatus string `json:"paymentStatus" bson:"paymentStatus"`
	TimeModel     `bson:",inline"`
}

func (a *Appointment) HoldsSlot() bool {
	return a.Status != AppointmentStatusCancelled
}
