package contracts

import (
	"context"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/dto/requests"
)

type PrescriptionRepository interface {
	CreatePrescription(ctx context.Context, prescription *models.Prescription) (string, error)
	FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error)
	FindAll(ctx context.Context, scope authorization.Predicate, pagination *requests.Pagination) ([]models.Prescription, int64, error)
	UpdatePrescription(ctx context.Context, prescription *models.Prescription) error
	DeleteByID(ctx context.Context, prescriptionID string) error
}

type PrescriptionUsecase interface {
	CreatePrescription(ctx context.Context, request *requests.CreatePrescription) (*models.Prescription, error)
	FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Prescription, int64, error)
	FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error)
	UpdatePrescription(ctx context.Context, prescriptionID string, request *requests.UpdatePrescription) (*models.Prescription, error)
	DeletePrescription(ctx context.Context, prescriptionID string) error
}
