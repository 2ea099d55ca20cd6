package contracts

import (
	"context"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/dto/requests"
)

type DoctorRepository interface {
	CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	FindAll(ctx context.Context, scope authorization.Predicate, filter *requests.DoctorFilter, pagination *requests.Pagination) ([]models.Doctor, int64, error)
	UpdateDoctor(ctx context.Context, doctor *models.Doctor) error
	DeleteByID(ctx context.Context, doctorID string) error
}

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, request *requests.CreateDoctor) (*models.Doctor, error)
	FindAll(ctx context.Context, filter *requests.DoctorFilter, pagination *requests.Pagination) ([]models.Doctor, int64, error)
	FindMine(ctx context.Context) (*models.Doctor, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	UpdateDoctor(ctx context.Context, doctorID string, request *requests.UpdateDoctor) (*models.Doctor, error)
	ApproveDoctor(ctx context.Context, doctorID string, request *requests.ApproveDoctor) (*models.Doctor, error)
	DeleteDoctor(ctx context.Context, doctorID string) error
	FindMyPatients(ctx context.Context, pagination *requests.Pagination) ([]models.Patient, int64, error)
}
