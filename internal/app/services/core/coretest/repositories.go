package coretest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
)

type UserRepository struct{ *Store }

func (r *UserRepository) CreateUser(_ context.Context, user *models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Users {
		if strings.EqualFold(existing.Email, user.Email) {
			return "", exceptions.ErrEmailAlreadyExist(nil)
		}
	}
	stored := *user
	stored.ID = r.nextID()
	r.Users[stored.ID] = stored
	return stored.ID, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.Users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByID(_ context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.Users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

type DoctorRepository struct{ *Store }

func (r *DoctorRepository) CreateDoctor(_ context.Context, doctor *models.Doctor) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Doctors {
		if existing.UserID == doctor.UserID || existing.LicenseNumber == doctor.LicenseNumber {
			return "", exceptions.ErrAlreadyExists(nil, constvars.MongoCollectionDoctors)
		}
	}
	stored := *doctor
	stored.ID = r.nextID()
	r.Doctors[stored.ID] = stored
	return stored.ID, nil
}

func (r *DoctorRepository) FindByID(_ context.Context, doctorID string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.Doctors[doctorID]
	if !ok {
		return nil, nil
	}
	return &doctor, nil
}

func (r *DoctorRepository) FindByUserID(_ context.Context, userID string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doctor := range r.Doctors {
		if doctor.UserID == userID {
			found := doctor
			return &found, nil
		}
	}
	return nil, nil
}

func (r *DoctorRepository) FindAll(_ context.Context, scope authorization.Predicate, filter *requests.DoctorFilter, pagination *requests.Pagination) ([]models.Doctor, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctors := []models.Doctor{}
	for _, doctor := range r.Doctors {
		if !inScope(scope, doctor.ID, authorization.Owners{DoctorID: doctor.ID}, doctor.IsApproved) {
			continue
		}
		if filter != nil && filter.Specialization != "" && doctor.Specialization != filter.Specialization {
			continue
		}
		doctors = append(doctors, doctor)
	}
	items, total := page(doctors, func(d models.Doctor) string { return d.ID }, pagination)
	return items, total, nil
}

func (r *DoctorRepository) UpdateDoctor(_ context.Context, doctor *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Doctors[doctor.ID]; ok {
		r.Doctors[doctor.ID] = *doctor
	}
	return nil
}

func (r *DoctorRepository) DeleteByID(_ context.Context, doctorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Doctors, doctorID)
	return nil
}

type PatientRepository struct{ *Store }

func (r *PatientRepository) CreatePatient(_ context.Context, patient *models.Patient) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Patients {
		if existing.UserID == patient.UserID {
			return "", exceptions.ErrAlreadyExists(nil, constvars.MongoCollectionPatients)
		}
	}
	stored := *patient
	stored.ID = r.nextID()
	r.Patients[stored.ID] = stored
	return stored.ID, nil
}

func (r *PatientRepository) FindByID(_ context.Context, patientID string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	patient, ok := r.Patients[patientID]
	if !ok {
		return nil, nil
	}
	return &patient, nil
}

func (r *PatientRepository) FindByUserID(_ context.Context, userID string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, patient := range r.Patients {
		if patient.UserID == userID {
			found := patient
			return &found, nil
		}
	}
	return nil, nil
}

func (r *PatientRepository) FindByIDs(_ context.Context, patientIDs []string, pagination *requests.Pagination) ([]models.Patient, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	patients := []models.Patient{}
	for _, id := range patientIDs {
		if patient, ok := r.Patients[id]; ok {
			patients = append(patients, patient)
		}
	}
	items, total := page(patients, func(p models.Patient) string { return p.ID }, pagination)
	return items, total, nil
}

func (r *PatientRepository) FindAll(_ context.Context, scope authorization.Predicate, pagination *requests.Pagination) ([]models.Patient, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	patients := []models.Patient{}
	for _, patient := range r.Patients {
		if inScope(scope, patient.ID, authorization.Owners{PatientID: patient.ID}, true) {
			patients = append(patients, patient)
		}
	}
	items, total := page(patients, func(p models.Patient) string { return p.ID }, pagination)
	return items, total, nil
}

func (r *PatientRepository) UpdatePatient(_ context.Context, patient *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Patients[patient.ID]; ok {
		r.Patients[patient.ID] = *patient
	}
	return nil
}

func (r *PatientRepository) DeleteByID(_ context.Context, patientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Patients, patientID)
	return nil
}

// AppointmentRepository enforces the active slot uniqueness the mongo partial
// index provides.
type AppointmentRepository struct{ *Store }

func (r *AppointmentRepository) slotTaken(appointment *models.Appointment) bool {
	if !appointment.HoldsSlot() {
		return false
	}
	for _, existing := range r.Appointments {
		if existing.ID != appointment.ID && existing.HoldsSlot() &&
			existing.DoctorID == appointment.DoctorID && existing.Date == appointment.Date && existing.TimeSlot == appointment.TimeSlot {
			return true
		}
	}
	return false
}

func (r *AppointmentRepository) CreateAppointment(_ context.Context, appointment *models.Appointment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTaken(appointment) {
		return "", exceptions.ErrTimeSlotConflict(nil)
	}
	stored := *appointment
	stored.ID = r.nextID()
	r.Appointments[stored.ID] = stored
	return stored.ID, nil
}

func (r *AppointmentRepository) FindByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.Appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *AppointmentRepository) FindAll(_ context.Context, scope authorization.Predicate, filter *requests.AppointmentFilter, pagination *requests.Pagination) ([]models.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointments := []models.Appointment{}
	for _, appointment := range r.Appointments {
		owners, _ := authorization.OwnersOf(&appointment)
		if !inScope(scope, appointment.ID, owners, true) {
			continue
		}
		if filter != nil && filter.Status != "" && appointment.Status != filter.Status {
			continue
		}
		if filter != nil && filter.Date != "" && appointment.Date != filter.Date {
			continue
		}
		appointments = append(appointments, appointment)
	}
	items, total := page(appointments, func(a models.Appointment) string { return a.ID }, pagination)
	return items, total, nil
}

func (r *AppointmentRepository) ExistsActiveSlot(_ context.Context, doctorID, date, timeSlot, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	candidate := &models.Appointment{ID: excludeID, DoctorID: doctorID, Date: date, TimeSlot: timeSlot, Status: models.AppointmentStatusScheduled}
	return r.slotTaken(candidate), nil
}

func (r *AppointmentRepository) DistinctPatientIDs(_ context.Context, doctorID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	patientIDs := []string{}
	for _, appointment := range r.Appointments {
		if appointment.DoctorID == doctorID && !seen[appointment.PatientID] {
			seen[appointment.PatientID] = true
			patientIDs = append(patientIDs, appointment.PatientID)
		}
	}
	return patientIDs, nil
}

func (r *AppointmentRepository) UpdateAppointment(_ context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTaken(appointment) {
		return exceptions.ErrTimeSlotConflict(nil)
	}
	if _, ok := r.Appointments[appointment.ID]; ok {
		r.Appointments[appointment.ID] = *appointment
	}
	return nil
}

func (r *AppointmentRepository) UpdateStatus(_ context.Context, appointmentID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.Appointments[appointmentID]
	if !ok {
		return exceptions.ErrNotFound(nil, "appointment")
	}
	appointment.Status = status
	appointment.UpdatedAt = time.Now().UTC()
	r.Appointments[appointmentID] = appointment
	return nil
}

func (r *AppointmentRepository) DeleteByID(_ context.Context, appointmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Appointments, appointmentID)
	return nil
}

type MedicalRecordRepository struct {
	*Store
	// FailCreate makes CreateMedicalRecord fail with this error.
	FailCreate error
}

func (r *MedicalRecordRepository) CreateMedicalRecord(_ context.Context, record *models.MedicalRecord) (string, error) {
	if r.FailCreate != nil {
		return "", r.FailCreate
	}
	if record.ID != "" {
		return "", exceptions.ErrMongoDBInsertDocument(fmt.Errorf("record already carries id %q", record.ID))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *record
	stored.ID = r.nextID()
	r.MedicalRecords[stored.ID] = stored
	return stored.ID, nil
}

func (r *MedicalRecordRepository) FindByID(_ context.Context, recordID string) (*models.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.MedicalRecords[recordID]
	if !ok {
		return nil, nil
	}
	record.Attachments = append([]models.Attachment{}, record.Attachments...)
	return &record, nil
}

func (r *MedicalRecordRepository) FindAll(_ context.Context, scope authorization.Predicate, pagination *requests.Pagination) ([]models.MedicalRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := []models.MedicalRecord{}
	for _, record := range r.MedicalRecords {
		owners, _ := authorization.OwnersOf(&record)
		if inScope(scope, record.ID, owners, true) {
			records = append(records, record)
		}
	}
	items, total := page(records, func(m models.MedicalRecord) string { return m.ID }, pagination)
	return items, total, nil
}

func (r *MedicalRecordRepository) UpdateMedicalRecord(_ context.Context, record *models.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.MedicalRecords[record.ID]
	if !ok {
		return nil
	}
	updated := *record
	updated.Attachments = stored.Attachments
	r.MedicalRecords[record.ID] = updated
	return nil
}

func (r *MedicalRecordRepository) AddAttachment(_ context.Context, recordID string, attachment *models.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.MedicalRecords[recordID]
	if !ok {
		return exceptions.ErrNotFound(nil, "medical record")
	}
	record.Attachments = append(append([]models.Attachment{}, record.Attachments...), *attachment)
	r.MedicalRecords[recordID] = record
	return nil
}

func (r *MedicalRecordRepository) RemoveAttachment(_ context.Context, recordID, attachmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.MedicalRecords[recordID]
	if !ok {
		return nil
	}
	kept := []models.Attachment{}
	for _, attachment := range record.Attachments {
		if attachment.ID != attachmentID {
			kept = append(kept, attachment)
		}
	}
	record.Attachments = kept
	r.MedicalRecords[recordID] = record
	return nil
}

func (r *MedicalRecordRepository) DeleteByID(_ context.Context, recordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.MedicalRecords, recordID)
	return nil
}

type PrescriptionRepository struct{ *Store }

func (r *PrescriptionRepository) CreatePrescription(_ context.Context, prescription *models.Prescription) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *prescription
	stored.ID = r.nextID()
	r.Prescriptions[stored.ID] = stored
	return stored.ID, nil
}

func (r *PrescriptionRepository) FindByID(_ context.Context, prescriptionID string) (*models.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prescription, ok := r.Prescriptions[prescriptionID]
	if !ok {
		return nil, nil
	}
	return &prescription, nil
}

func (r *PrescriptionRepository) FindAll(_ context.Context, scope authorization.Predicate, pagination *requests.Pagination) ([]models.Prescription, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prescriptions := []models.Prescription{}
	for _, prescription := range r.Prescriptions {
		owners, _ := authorization.OwnersOf(&prescription)
		if inScope(scope, prescription.ID, owners, true) {
			prescriptions = append(prescriptions, prescription)
		}
	}
	items, total := page(prescriptions, func(p models.Prescription) string { return p.ID }, pagination)
	return items, total, nil
}

func (r *PrescriptionRepository) UpdatePrescription(_ context.Context, prescription *models.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Prescriptions[prescription.ID]; ok {
		r.Prescriptions[prescription.ID] = *prescription
	}
	return nil
}

func (r *PrescriptionRepository) DeleteByID(_ context.Context, prescriptionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Prescriptions, prescriptionID)
	return nil
}

type InvoiceRepository struct{ *Store }

func (r *InvoiceRepository) CreateInvoice(_ context.Context, invoice *models.Invoice) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return "", exceptions.ErrAlreadyExists(nil, constvars.MongoCollectionInvoices)
		}
	}
	stored := *invoice
	stored.ID = r.nextID()
	r.Invoices[stored.ID] = stored
	return stored.ID, nil
}

func (r *InvoiceRepository) FindByID(_ context.Context, invoiceID string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice, ok := r.Invoices[invoiceID]
	if !ok {
		return nil, nil
	}
	return &invoice, nil
}

func (r *InvoiceRepository) FindAll(_ context.Context, scope authorization.Predicate, filter *requests.InvoiceFilter, pagination *requests.Pagination) ([]models.Invoice, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoices := []models.Invoice{}
	for _, invoice := range r.Invoices {
		owners, _ := authorization.OwnersOf(&invoice)
		if !inScope(scope, invoice.ID, owners, true) {
			continue
		}
		if filter != nil && filter.PaymentStatus != "" && invoice.PaymentStatus != filter.PaymentStatus {
			continue
		}
		invoices = append(invoices, invoice)
	}
	items, total := page(invoices, func(i models.Invoice) string { return i.ID }, pagination)
	return items, total, nil
}

func (r *InvoiceRepository) UpdateInvoice(_ context.Context, invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Invoices[invoice.ID]; ok {
		r.Invoices[invoice.ID] = *invoice
	}
	return nil
}

func (r *InvoiceRepository) MarkPaid(_ context.Context, invoice *models.Invoice) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.Invoices[invoice.ID]
	if !ok || stored.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}
	stored.PaymentStatus = models.PaymentStatusPaid
	stored.PaymentMethod = invoice.PaymentMethod
	stored.PaymentIntentID = invoice.PaymentIntentID
	stored.PaidAt = invoice.PaidAt
	stored.UpdatedAt = invoice.UpdatedAt
	r.Invoices[invoice.ID] = stored
	return true, nil
}

func (r *InvoiceRepository) DeleteByID(_ context.Context, invoiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Invoices, invoiceID)
	return nil
}
