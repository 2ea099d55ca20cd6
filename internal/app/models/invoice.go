package models

import "time"

type Invoice struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	InvoiceNumber   string        `json:"invoiceNumber" bson:"invoiceNumber"`
	PatientID       string        `json:"patientId" bson:"patientId"`
	DoctorID        string        `json:"doctorId,omitempty" bson:"doctorId,omitempty"`
	AppointmentID   string        `json:"appointmentId,omitempty" bson:"appointmentId,omitempty"`
	Items           []InvoiceItem `json:"items" bson:"items"`
	Subtotal        float64       `json:"subtotal" bson:"subtotal"`
	Tax             float64       `json:"tax" bson:"tax"`
	Total           float64       `json:"total" bson:"total"`
	DueDate         *time.Time    `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	PaymentStatus   string        `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod   string        `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	PaymentIntentID string        `json:"paymentIntentId,omitempty" bson:"paymentIntentId,omitempty"`
	PaidAt          *time.Time    `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	TimeModel       `bson:",inline"`
}

type InvoiceItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unitPrice" bson:"unitPrice"`
	Amount      float64 `json:"amount" bson:"amount"`
}

func (i *Invoice) IsPaid() bool {
	return i.PaymentStatus == PaymentStatusPaid
}

// CalculateTotals recomputes line amounts, subtotal and total from the items and tax.
func (i *Invoice) CalculateTotals() {
	subtotal := 0.0
	for idx := range i.Items {
		i.Items[idx].Amount = float64(i.Items[idx].Quantity) * i.Items[idx].UnitPrice
		subtotal += i.Items[idx].Amount
	}
	i.Subtotal = subtotal
	i.Total = subtotal + i.Tax
}
