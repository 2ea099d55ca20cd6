package contracts

import (
	"context"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/dto/requests"
)

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (string, error)
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindByUserID(ctx context.Context, userID string) (*models.Patient, error)
	FindByIDs(ctx context.Context, patientIDs []string, pagination *requests.Pagination) ([]models.Patient, int64, error)
	FindAll(ctx context.Context, scope authorization.Predicate, pagination *requests.Pagination) ([]models.Patient, int64, error)
	UpdatePatient(ctx context.Context, patient *models.Patient) error
	DeleteByID(ctx context.Context, patientID string) error
}

type PatientUsecase interface {
	CreatePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error)
	FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Patient, int64, error)
	FindMine(ctx context.Context) (*models.Patient, error)
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*models.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error
}
