// Package coretest provides in-memory implementations of the repository and
// collaborator contracts for usecase tests. Stored documents are copied on every
// read and write, so callers never share state with the store.
package coretest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/core/identity"
	"hospital-service/internal/app/services/shared/guard"
	"hospital-service/internal/pkg/dto/requests"

	"go.uber.org/zap"
)

type Store struct {
	mu             sync.Mutex
	seq            int
	Users          map[string]models.User
	Doctors        map[string]models.Doctor
	Patients       map[string]models.Patient
	Appointments   map[string]models.Appointment
	MedicalRecords map[string]models.MedicalRecord
	Prescriptions  map[string]models.Prescription
	Invoices       map[string]models.Invoice
	AuditLogs      map[string]models.AuditLog
}

func NewStore() *Store {
	return &Store{
		Users:          map[string]models.User{},
		Doctors:        map[string]models.Doctor{},
		Patients:       map[string]models.Patient{},
		Appointments:   map[string]models.Appointment{},
		MedicalRecords: map[string]models.MedicalRecord{},
		Prescriptions:  map[string]models.Prescription{},
		Invoices:       map[string]models.Invoice{},
		AuditLogs:      map[string]models.AuditLog{},
	}
}

// nextID returns a 24 character hex id, the shape of a mongo object id.
// Callers must hold mu.
func (s *Store) nextID() string {
	s.seq++
	return fmt.Sprintf("%024x", s.seq)
}

func (s *Store) AddUser(name string, role authorization.Role) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := models.User{ID: s.nextID(), Name: name, Email: name + "@hospital.test", Role: role.String(), IsActive: true}
	s.Users[user.ID] = user
	return &user
}

// AddDoctor creates a doctor user together with its profile.
func (s *Store) AddDoctor(name string, approved bool) (*models.User, *models.Doctor) {
	user := s.AddUser(name, authorization.RoleDoctor)
	s.mu.Lock()
	defer s.mu.Unlock()
	doctor := models.Doctor{ID: s.nextID(), UserID: user.ID, Specialization: "cardiology", LicenseNumber: "LIC-" + name, IsApproved: approved}
	s.Doctors[doctor.ID] = doctor
	return user, &doctor
}

// AddPatient creates a patient user together with its profile.
func (s *Store) AddPatient(name string) (*models.User, *models.Patient) {
	user := s.AddUser(name, authorization.RolePatient)
	s.mu.Lock()
	defer s.mu.Unlock()
	patient := models.Patient{ID: s.nextID(), UserID: user.ID, Allergies: []string{}, MedicalHistory: []string{}}
	s.Patients[patient.ID] = patient
	return user, &patient
}

func (s *Store) AddAppointment(patientID, doctorID, date, timeSlot, status string) *models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	appointment := models.Appointment{
		ID:            s.nextID(),
		PatientID:     patientID,
		DoctorID:      doctorID,
		Date:          date,
		TimeSlot:      timeSlot,
		Reason:        "checkup",
		Status:        status,
		PaymentStatus: models.PaymentStatusPending,
	}
	s.Appointments[appointment.ID] = appointment
	return &appointment
}

func (s *Store) AddMedicalRecord(appointment *models.Appointment) *models.MedicalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := models.MedicalRecord{
		ID:            s.nextID(),
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		AppointmentID: appointment.ID,
		Diagnosis:     "flu",
		Treatment:     "rest",
		Symptoms:      []string{},
		Attachments:   []models.Attachment{},
	}
	s.MedicalRecords[record.ID] = record
	return &record
}

func (s *Store) AddInvoice(patientID, doctorID string, total float64) *models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice := models.Invoice{
		ID:            s.nextID(),
		InvoiceNumber: fmt.Sprintf("INV-%d", s.seq),
		PatientID:     patientID,
		DoctorID:      doctorID,
		Items:         []models.InvoiceItem{{Description: "consultation", Quantity: 1, UnitPrice: total, Amount: total}},
		Subtotal:      total,
		Total:         total,
		PaymentStatus: models.PaymentStatusPending,
	}
	s.Invoices[invoice.ID] = invoice
	return &invoice
}

func (s *Store) Appointment(id string) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Appointments[id]
}

func (s *Store) Invoice(id string) models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Invoices[id]
}

func (s *Store) Doctor(id string) models.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Doctors[id]
}

// snapshot and restore back the in-memory transactor.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := NewStore()
	copied.seq = s.seq
	copyMap(copied.Users, s.Users)
	copyMap(copied.Doctors, s.Doctors)
	copyMap(copied.Patients, s.Patients)
	copyMap(copied.Appointments, s.Appointments)
	copyMap(copied.MedicalRecords, s.MedicalRecords)
	copyMap(copied.Prescriptions, s.Prescriptions)
	copyMap(copied.Invoices, s.Invoices)
	copyMap(copied.AuditLogs, s.AuditLogs)
	return copied
}

func (s *Store) restore(from *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users = from.Users
	s.Doctors = from.Doctors
	s.Patients = from.Patients
	s.Appointments = from.Appointments
	s.MedicalRecords = from.MedicalRecords
	s.Prescriptions = from.Prescriptions
	s.Invoices = from.Invoices
	s.AuditLogs = from.AuditLogs
}

func copyMap[T any](dst, src map[string]T) {
	for key, value := range src {
		dst[key] = value
	}
}

func NewIdentityResolver(store *Store) contracts.IdentityResolver {
	return identity.NewIdentityResolver(&PatientRepository{Store: store}, &DoctorRepository{Store: store}, nil, 0, zap.NewNop())
}

// NewGuard wires the real authorization engine and identity resolver to the store.
func NewGuard(store *Store) *guard.Guard {
	return guard.NewGuard(authorization.NewEngine(), NewIdentityResolver(store))
}

// AsUser returns ctx carrying user as the authenticated actor.
func AsUser(ctx context.Context, user *models.User) context.Context {
	return authorization.WithActor(ctx, &authorization.Actor{ID: user.ID, Role: authorization.Role(user.Role)})
}

func inScope(scope authorization.Predicate, id string, owners authorization.Owners, approved bool) bool {
	switch scope.Kind {
	case authorization.PredicateNone:
		return false
	case authorization.PredicateMatch:
		switch scope.Field {
		case authorization.FieldPatientID:
			if owners.PatientID != scope.Value {
				return false
			}
		case authorization.FieldDoctorID:
			if owners.DoctorID != scope.Value {
				return false
			}
		case authorization.FieldID:
			if id != scope.Value {
				return false
			}
		}
	}
	return !scope.ApprovedOnly || approved
}

// page sorts by id and applies the pagination window.
func page[T any](items []T, idOf func(T) string, pagination *requests.Pagination) ([]T, int64) {
	sort.Slice(items, func(i, j int) bool { return idOf(items[i]) < idOf(items[j]) })
	total := int64(len(items))
	if pagination == nil || pagination.PageSize <= 0 {
		return items, total
	}
	start := int(pagination.Skip())
	if start >= len(items) {
		return []T{}, total
	}
	end := start + pagination.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}
