package constvars

const (
	// Auth messages
	RegisterSuccessMessage = "user registered successfully"
	LoginSuccessMessage    = "successfully login"
	GetMeSuccessMessage    = "get current user successfully"

	// User messages
	CreateUserSuccessMessage = "user created successfully"

	// Doctor messages
	CreateDoctorSuccessMessage      = "doctor profile created successfully"
	GetDoctorsSuccessMessage        = "get doctors successfully"
	GetDoctorSuccessMessage         = "get doctor successfully"
	UpdateDoctorSuccessMessage      = "doctor profile updated successfully"
	ApproveDoctorSuccessMessage     = "doctor approval updated successfully"
	DeleteDoctorSuccessMessage      = "doctor profile deleted successfully"
	GetDoctorPatientsSuccessMessage = "get doctor patients successfully"

	// Patient messages
	CreatePatientSuccessMessage = "patient profile created successfully"
	GetPatientsSuccessMessage   = "get patients successfully"
	GetPatientSuccessMessage    = "get patient successfully"
	UpdatePatientSuccessMessage = "patient profile updated successfully"
	DeletePatientSuccessMessage = "patient profile deleted successfully"

	// Appointment messages
	CreateAppointmentSuccessMessage = "appointment booked successfully"
	GetAppointmentsSuccessMessage   = "get appointments successfully"
	GetAppointmentSuccessMessage    = "get appointment successfully"
	UpdateAppointmentSuccessMessage = "appointment updated successfully"
	DeleteAppointmentSuccessMessage = "appointment deleted successfully"

	// Medical record messages
	CreateMedicalRecordSuccessMessage = "medical record created successfully"
	GetMedicalRecordsSuccessMessage   = "get medical records successfully"
	GetMedicalRecordSuccessMessage    = "get medical record successfully"
	UpdateMedicalRecordSuccessMessage = "medical record updated successfully"
	DeleteMedicalRecordSuccessMessage = "medical record deleted successfully"
	UploadAttachmentSuccessMessage    = "attachment uploaded successfully"
	DeleteAttachmentSuccessMessage    = "attachment deleted successfully"

	// Prescription messages
	CreatePrescriptionSuccessMessage = "prescription created successfully"
	GetPrescriptionsSuccessMessage   = "get prescriptions successfully"
	GetPrescriptionSuccessMessage    = "get prescription successfully"
	UpdatePrescriptionSuccessMessage = "prescription updated successfully"
	DeletePrescriptionSuccessMessage = "prescription deleted successfully"

	// Invoice messages
	CreateInvoiceSuccessMessage = "invoice created successfully"
	GetInvoicesSuccessMessage   = "get invoices successfully"
	GetInvoiceSuccessMessage    = "get invoice successfully"
	UpdateInvoiceSuccessMessage = "invoice updated successfully"
	DeleteInvoiceSuccessMessage = "invoice deleted successfully"
	PayInvoiceSuccessMessage    = "invoice paid successfully"

	// Audit messages
	GetAuditLogsSuccessMessage = "get audit logs successfully"

	// Health
	HealthCheckSuccessMessage = "service is healthy"
)
