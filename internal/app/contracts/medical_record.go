package contracts

import (
	"context"
	"io"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/dto/requests"
)

type MedicalRecordRepository interface {
	CreateMedicalRecord(ctx context.Context, record *models.MedicalRecord) (string, error)
	FindByID(ctx context.Context, recordID string) (*models.MedicalRecord, error)
	FindAll(ctx context.Context, scope authorization.Predicate, pagination *requests.Pagination) ([]models.MedicalRecord, int64, error)
	UpdateMedicalRecord(ctx context.Context, record *models.MedicalRecord) error
	AddAttachment(ctx context.Context, recordID string, attachment *models.Attachment) error
	RemoveAttachment(ctx context.Context, recordID, attachmentID string) error
	DeleteByID(ctx context.Context, recordID string) error
}

type MedicalRecordUsecase interface {
	CreateMedicalRecord(ctx context.Context, request *requests.CreateMedicalRecord) (*models.MedicalRecord, error)
	FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.MedicalRecord, int64, error)
	FindByID(ctx context.Context, recordID string) (*models.MedicalRecord, error)
	UpdateMedicalRecord(ctx context.Context, recordID string, request *requests.UpdateMedicalRecord) (*models.MedicalRecord, error)
	DeleteMedicalRecord(ctx context.Context, recordID string) error
	UploadAttachment(ctx context.Context, recordID string, file io.Reader, request *requests.UploadAttachment) (*models.Attachment, error)
	DeleteAttachment(ctx context.Context, recordID, attachmentID string) error
}
