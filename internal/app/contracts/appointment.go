package contracts

import (
	"context"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/dto/requests"
)

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindAll(ctx context.Context, scope authorization.Predicate, filter *requests.AppointmentFilter, pagination *requests.Pagination) ([]models.Appointment, int64, error)
	// ExistsActiveSlot reports whether a slot-holding appointment already books the slot.
	ExistsActiveSlot(ctx context.Context, doctorID, date, timeSlot, excludeID string) (bool, error)
	DistinctPatientIDs(ctx context.Context, doctorID string) ([]string, error)
	UpdateAppointment(ctx context.Context, appointment *models.Appointment) error
	UpdateStatus(ctx context.Context, appointmentID, status string) error
	DeleteByID(ctx context.Context, appointmentID string) error
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*models.Appointment, error)
	FindAll(ctx context.Context, filter *requests.AppointmentFilter, pagination *requests.Pagination) ([]models.Appointment, int64, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string) error
}
