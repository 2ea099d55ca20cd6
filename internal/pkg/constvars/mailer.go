package constvars

const (
	EmailSubjectAppointmentBooked    = "[HOSPITAL] Appointment booked"
	EmailSubjectAppointmentUpdated   = "[HOSPITAL] Appointment updated"
	EmailSubjectAppointmentCancelled = "[HOSPITAL] Appointment cancelled"
	EmailSubjectDoctorApproved       = "[HOSPITAL] Your doctor profile was approved"
	EmailSubjectInvoiceIssued        = "[HOSPITAL] New invoice"
	EmailSubjectInvoicePaid          = "[HOSPITAL] Payment received"
)

const (
	EmailBodyAppointmentBooked    = "Hello %s, an appointment was booked on %s at %s."
	EmailBodyAppointmentUpdated   = "Hello %s, the appointment on %s at %s is now %s."
	EmailBodyAppointmentCancelled = "Hello %s, the appointment on %s at %s was cancelled."
	EmailBodyDoctorApproved       = "Hello %s, your doctor profile is now visible to patients."
	EmailBodyInvoiceIssued        = "Hello %s, invoice %s for %.2f is due."
	EmailBodyInvoicePaid          = "Hello %s, we received your payment for invoice %s."
)
