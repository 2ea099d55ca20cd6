package utils

import (
	"fmt"

	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
)

func BuildAppointmentBookedEmailPayload(to *models.User, appointment *models.Appointment) *requests.EmailPayload {
	return &requests.EmailPayload{
		To:      []string{to.Email},
		Subject: constvars.EmailSubjectAppointmentBooked,
		Body:    fmt.Sprintf(constvars.EmailBodyAppointmentBooked, to.Name, appointment.Date, appointment.TimeSlot),
	}
}

func BuildAppointmentUpdatedEmailPayload(to *models.User, appointment *models.Appointment) *requests.EmailPayload {
	if appointment.Status == models.AppointmentStatusCancelled {
		return &requests.EmailPayload{
			To:      []string{to.Email},
			Subject: constvars.EmailSubjectAppointmentCancelled,
			Body:    fmt.Sprintf(constvars.EmailBodyAppointmentCancelled, to.Name, appointment.Date, appointment.TimeSlot),
		}
	}
	return &requests.EmailPayload{
		To:      []string{to.Email},
		Subject: constvars.EmailSubjectAppointmentUpdated,
		Body:    fmt.Sprintf(constvars.EmailBodyAppointmentUpdated, to.Name, appointment.Date, appointment.TimeSlot, appointment.Status),
	}
}

func BuildDoctorApprovedEmailPayload(to *models.User) *requests.EmailPayload {
	return &requests.EmailPayload{
		To:      []string{to.Email},
		Subject: constvars.EmailSubjectDoctorApproved,
		Body:    fmt.Sprintf(constvars.EmailBodyDoctorApproved, to.Name),
	}
}

func BuildInvoiceIssuedEmailPayload(to *models.User, invoice *models.Invoice) *requests.EmailPayload {
	return &requests.EmailPayload{
		To:      []string{to.Email},
		Subject: constvars.EmailSubjectInvoiceIssued,
		Body:    fmt.Sprintf(constvars.EmailBodyInvoiceIssued, to.Name, invoice.InvoiceNumber, invoice.Total),
	}
}

func BuildInvoicePaidEmailPayload(to *models.User, invoice *models.Invoice) *requests.EmailPayload {
	return &requests.EmailPayload{
		To:      []string{to.Email},
		Subject: constvars.EmailSubjectInvoicePaid,
		Body:    fmt.Sprintf(constvars.EmailBodyInvoicePaid, to.Name, invoice.InvoiceNumber),
	}
}
