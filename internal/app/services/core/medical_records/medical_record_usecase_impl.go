package medical_records

import (
	"context"
	"errors"
	"io"
	"time"

	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/shared/guard"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type medicalRecordUsecase struct {
	MedicalRecordRepository contracts.MedicalRecordRepository
	AppointmentRepository   contracts.AppointmentRepository
	Transactor              contracts.Transactor
	Storage                 contracts.Storage
	AuditRecorder           contracts.AuditRecorder
	Guard                   *guard.Guard
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

func NewMedicalRecordUsecase(
	medicalRecordRepository contracts.MedicalRecordRepository,
	appointmentRepository contracts.AppointmentRepository,
	transactor contracts.Transactor,
	storage contracts.Storage,
	auditRecorder contracts.AuditRecorder,
	accessGuard *guard.Guard,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.MedicalRecordUsecase {
	return &medicalRecordUsecase{
		MedicalRecordRepository: medicalRecordRepository,
		AppointmentRepository:   appointmentRepository,
		Transactor:              transactor,
		Storage:                 storage,
		AuditRecorder:           auditRecorder,
		Guard:                   accessGuard,
		InternalConfig:          internalConfig,
		Log:                     logger,
	}
}

// CreateMedicalRecord writes the record and completes its appointment in one
// transaction. Nothing is written when the caller may not author the record.
func (uc *medicalRecordUsecase) CreateMedicalRecord(ctx context.Context, request *requests.CreateMedicalRecord) (*models.MedicalRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("medicalRecordUsecase.CreateMedicalRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("appointment_id", request.AppointmentID),
	)

	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrNotFound(nil, "appointment")
	}
	if request.DoctorID != "" && request.DoctorID != appointment.DoctorID {
		return nil, exceptions.ErrInputValidation(errors.New("doctorId does not match the appointment"))
	}

	owners, _ := authorization.OwnersOf(appointment)
	if err := uc.Guard.Check(ctx, caller, authorization.ActionCreate, authorization.ResourceMedicalRecord, &authorization.Target{Owners: owners}, "medical record"); err != nil {
		return nil, err
	}

	record := &models.MedicalRecord{
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		AppointmentID: appointment.ID,
		Diagnosis:     request.Diagnosis,
		Symptoms:      orEmpty(request.Symptoms),
		Treatment:     request.Treatment,
		Notes:         request.Notes,
		VitalSigns:    toVitalSigns(request.VitalSigns),
		FollowUpDate:  request.FollowUpDate,
		Attachments:   []models.Attachment{},
	}
	record.SetCreatedAtUpdatedAt()

	// The closure may run more than once when the driver retries the commit.
	var recordID string
	err = uc.Transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		record.ID = ""
		id, err := uc.MedicalRecordRepository.CreateMedicalRecord(txCtx, record)
		if err != nil {
			return err
		}
		recordID = id
		return uc.AppointmentRepository.UpdateStatus(txCtx, appointment.ID, models.AppointmentStatusCompleted)
	})
	if err != nil {
		uc.Log.Error("medicalRecordUsecase.CreateMedicalRecord error in transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	record.ID = recordID

	uc.AuditRecorder.Record(ctx, authorization.ActionCreate, authorization.ResourceMedicalRecord, record.ID, map[string]any{
		"appointmentId":     appointment.ID,
		"appointmentStatus": models.AppointmentStatusCompleted,
	})

	utils.LogBusinessEvent(uc.Log, "medical_record_created", requestID,
		zap.String(constvars.LoggingResourceIDKey, record.ID),
	)
	return record, nil
}

func (uc *medicalRecordUsecase) FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.MedicalRecord, int64, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionList, authorization.ResourceMedicalRecord, nil, constvars.ResourceMedicalRecords); err != nil {
		return nil, 0, err
	}
	scope := uc.Guard.Scope(ctx, caller, authorization.ResourceMedicalRecord)
	return uc.MedicalRecordRepository.FindAll(ctx, scope, pagination)
}

// FindByID returns the record with freshly presigned attachment urls.
func (uc *medicalRecordUsecase) FindByID(ctx context.Context, recordID string) (*models.MedicalRecord, error) {
	caller, record, err := uc.fetch(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionRead, authorization.ResourceMedicalRecord, authorization.TargetOf(record), "medical record"); err != nil {
		return nil, err
	}

	for i := range record.Attachments {
		url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.BucketName, record.Attachments[i].ObjectName, uc.urlExpiry())
		if err != nil {
			uc.Log.Warn("medicalRecordUsecase.FindByID error presigning attachment",
				zap.String(constvars.LoggingObjectNameKey, record.Attachments[i].ObjectName),
				zap.Error(err),
			)
			continue
		}
		record.Attachments[i].URL = url
	}
	return record, nil
}

func (uc *medicalRecordUsecase) UpdateMedicalRecord(ctx context.Context, recordID string, request *requests.UpdateMedicalRecord) (*models.MedicalRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("medicalRecordUsecase.UpdateMedicalRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, recordID),
	)

	caller, record, err := uc.fetch(ctx, recordID)
	if err != nil {
		return nil, err
	}

	changes := request.Changes()
	if len(changes) == 0 {
		return nil, exceptions.ErrNothingToUpdate(nil)
	}
	target := authorization.TargetOf(record).WithChanges(changes)
	if err := uc.Guard.Check(ctx, caller, authorization.ActionUpdate, authorization.ResourceMedicalRecord, target, "medical record"); err != nil {
		return nil, err
	}

	if request.Diagnosis != nil {
		record.Diagnosis = *request.Diagnosis
	}
	if request.Symptoms != nil {
		record.Symptoms = orEmpty(*request.Symptoms)
	}
	if request.Treatment != nil {
		record.Treatment = *request.Treatment
	}
	if request.Notes != nil {
		record.Notes = *request.Notes
	}
	if request.VitalSigns != nil {
		record.VitalSigns = toVitalSigns(request.VitalSigns)
	}
	if request.FollowUpDate != nil {
		record.FollowUpDate = request.FollowUpDate
	}
	record.SetUpdatedAt()

	if err := uc.MedicalRecordRepository.UpdateMedicalRecord(ctx, record); err != nil {
		return nil, err
	}
	uc.AuditRecorder.Record(ctx, authorization.ActionUpdate, authorization.ResourceMedicalRecord, record.ID, map[string]any{
		"fields": changes.Fields(),
	})
	return record, nil
}

// DeleteMedicalRecord removes the record, then its stored files. A file that
// cannot be removed is logged and left behind.
func (uc *medicalRecordUsecase) DeleteMedicalRecord(ctx context.Context, recordID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("medicalRecordUsecase.DeleteMedicalRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, recordID),
	)

	caller, record, err := uc.fetch(ctx, recordID)
	if err != nil {
		return err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionDelete, authorization.ResourceMedicalRecord, authorization.TargetOf(record), "medical record"); err != nil {
		return err
	}

	if err := uc.MedicalRecordRepository.DeleteByID(ctx, record.ID); err != nil {
		return err
	}
	for _, attachment := range record.Attachments {
		if err := uc.Storage.RemoveFile(ctx, uc.InternalConfig.Minio.BucketName, attachment.ObjectName); err != nil {
			uc.Log.Warn("medicalRecordUsecase.DeleteMedicalRecord error removing attachment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectNameKey, attachment.ObjectName),
				zap.Error(err),
			)
		}
	}
	uc.AuditRecorder.Record(ctx, authorization.ActionDelete, authorization.ResourceMedicalRecord, record.ID, nil)
	return nil
}

// UploadAttachment is authorized as an update of the record.
func (uc *medicalRecordUsecase) UploadAttachment(ctx context.Context, recordID string, file io.Reader, request *requests.UploadAttachment) (*models.Attachment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("medicalRecordUsecase.UploadAttachment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, recordID),
		zap.String("file_name", request.FileName),
		zap.Int64("file_size", request.Size),
	)

	caller, record, err := uc.fetch(ctx, recordID)
	if err != nil {
		return nil, err
	}
	target := authorization.TargetOf(record).WithChanges(authorization.Changes{"attachments": request.FileName})
	if err := uc.Guard.Check(ctx, caller, authorization.ActionUpdate, authorization.ResourceMedicalRecord, target, "medical record"); err != nil {
		return nil, err
	}

	bucketName := uc.InternalConfig.Minio.BucketName
	objectName, err := uc.Storage.UploadFile(ctx, file, request.Size, request.ContentType, bucketName, utils.GenerateAttachmentObjectName(record.ID, request.FileName))
	if err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		ID:          uuid.NewString(),
		FileName:    request.FileName,
		ObjectName:  objectName,
		ContentType: request.ContentType,
		Size:        request.Size,
		UploadedAt:  time.Now().UTC(),
	}
	if err := uc.MedicalRecordRepository.AddAttachment(ctx, record.ID, attachment); err != nil {
		if removeErr := uc.Storage.RemoveFile(ctx, bucketName, objectName); removeErr != nil {
			uc.Log.Warn("medicalRecordUsecase.UploadAttachment error removing orphaned object",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectNameKey, objectName),
				zap.Error(removeErr),
			)
		}
		return nil, err
	}

	if url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, uc.urlExpiry()); err == nil {
		attachment.URL = url
	}

	uc.AuditRecorder.Record(ctx, authorization.ActionUpdate, authorization.ResourceMedicalRecord, record.ID, map[string]any{
		"attachmentId": attachment.ID,
		"fileName":     attachment.FileName,
		"operation":    "attach",
	})
	return attachment, nil
}

// DeleteAttachment removes the stored file before the reference; if the store
// refuses, the record keeps the attachment.
func (uc *medicalRecordUsecase) DeleteAttachment(ctx context.Context, recordID, attachmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("medicalRecordUsecase.DeleteAttachment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, recordID),
		zap.String("attachment_id", attachmentID),
	)

	caller, record, err := uc.fetch(ctx, recordID)
	if err != nil {
		return err
	}

	var attachment *models.Attachment
	for i := range record.Attachments {
		if record.Attachments[i].ID == attachmentID {
			attachment = &record.Attachments[i]
			break
		}
	}
	if attachment == nil {
		return exceptions.ErrNotFound(nil, "attachment")
	}

	target := authorization.TargetOf(record).WithChanges(authorization.Changes{"attachments": attachmentID})
	if err := uc.Guard.Check(ctx, caller, authorization.ActionUpdate, authorization.ResourceMedicalRecord, target, "medical record"); err != nil {
		return err
	}

	if err := uc.Storage.RemoveFile(ctx, uc.InternalConfig.Minio.BucketName, attachment.ObjectName); err != nil {
		return err
	}
	if err := uc.MedicalRecordRepository.RemoveAttachment(ctx, record.ID, attachment.ID); err != nil {
		return err
	}

	uc.AuditRecorder.Record(ctx, authorization.ActionUpdate, authorization.ResourceMedicalRecord, record.ID, map[string]any{
		"attachmentId": attachment.ID,
		"operation":    "detach",
	})
	return nil
}

func (uc *medicalRecordUsecase) fetch(ctx context.Context, recordID string) (guard.Caller, *models.MedicalRecord, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	record, err := uc.MedicalRecordRepository.FindByID(ctx, recordID)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	if record == nil {
		return guard.Caller{}, nil, exceptions.ErrNotFound(nil, "medical record")
	}
	return caller, record, nil
}

func (uc *medicalRecordUsecase) urlExpiry() time.Duration {
	return time.Duration(uc.InternalConfig.Minio.PreSignedUrlExpiryTimeInHour) * time.Hour
}

func toVitalSigns(input *requests.VitalSigns) *models.VitalSigns {
	if input == nil {
		return nil
	}
	return &models.VitalSigns{
		BloodPressure: input.BloodPressure,
		HeartRate:     input.HeartRate,
		Temperature:   input.Temperature,
		Weight:        input.Weight,
		Height:        input.Height,
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
