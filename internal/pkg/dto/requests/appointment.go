package requests

import "hospital-service/internal/app/services/core/authorization"

type CreateAppointment struct {
	DoctorID string `json:"doctorId" validate:"required,object_id"`
	// PatientID is required for doctors and admins and ignored for patients.
	PatientID string `json:"patientId" validate:"omitempty,object_id"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot  string `json:"timeSlot" validate:"required,time_slot"`
	Reason    string `json:"reason" validate:"required,max=500"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type UpdateAppointment struct {
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TimeSlot      *string `json:"timeSlot" validate:"omitempty,time_slot"`
	Reason        *string `json:"reason" validate:"omitempty,max=500"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
	Status        *string `json:"status" validate:"omitempty,appointment_status"`
	PaymentStatus *string `json:"paymentStatus" validate:"omitempty,oneof=pending paid refunded"`
}

func (r *UpdateAppointment) Changes() authorization.Changes {
	changes := authorization.Changes{}
	if r.Date != nil {
		changes["date"] = *r.Date
	}
	if r.TimeSlot != nil {
		changes["timeSlot"] = *r.TimeSlot
	}
	if r.Reason != nil {
		changes["reason"] = *r.Reason
	}
	if r.Notes != nil {
		changes["notes"] = *r.Notes
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	if r.PaymentStatus != nil {
		changes["paymentStatus"] = *r.PaymentStatus
	}
	return changes
}

type AppointmentFilter struct {
	Status string `validate:"omitempty,appointment_status"`
	Date   string `validate:"omitempty,datetime=2006-01-02"`
}
