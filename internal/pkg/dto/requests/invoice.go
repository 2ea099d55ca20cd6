package requests

import (
	"time"

	"hospital-service/internal/app/services/core/authorization"
)

type InvoiceItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=1"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type CreateInvoice struct {
	PatientID     string        `json:"patientId" validate:"required,object_id"`
	DoctorID      string        `json:"doctorId" validate:"omitempty,object_id"`
	AppointmentID string        `json:"appointmentId" validate:"omitempty,object_id"`
	Items         []InvoiceItem `json:"items" validate:"required,min=1,dive"`
	Tax           float64       `json:"tax" validate:"gte=0"`
	DueDate       *time.Time    `json:"dueDate"`
}

type UpdateInvoice struct {
	Items         *[]InvoiceItem `json:"items" validate:"omitempty,min=1,dive"`
	Tax           *float64       `json:"tax" validate:"omitempty,gte=0"`
	DueDate       *time.Time     `json:"dueDate"`
	PaymentStatus *string        `json:"paymentStatus" validate:"omitempty,oneof=pending refunded"`
}

func (r *UpdateInvoice) Changes() authorization.Changes {
	changes := authorization.Changes{}
	if r.Items != nil {
		changes["items"] = *r.Items
	}
	if r.Tax != nil {
		changes["tax"] = *r.Tax
	}
	if r.DueDate != nil {
		changes["dueDate"] = *r.DueDate
	}
	if r.PaymentStatus != nil {
		changes["paymentStatus"] = *r.PaymentStatus
	}
	return changes
}

type PayInvoice struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card bank_transfer cash insurance"`
}

type InvoiceFilter struct {
	PaymentStatus string `validate:"omitempty,oneof=pending paid refunded"`
}
