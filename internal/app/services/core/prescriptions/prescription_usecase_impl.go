package prescriptions

import (
	"context"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/shared/guard"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type prescriptionUsecase struct {
	PrescriptionRepository  contracts.PrescriptionRepository
	MedicalRecordRepository contracts.MedicalRecordRepository
	AuditRecorder           contracts.AuditRecorder
	Guard                   *guard.Guard
	Log                     *zap.Logger
}

func NewPrescriptionUsecase(
	prescriptionRepository contracts.PrescriptionRepository,
	medicalRecordRepository contracts.MedicalRecordRepository,
	auditRecorder contracts.AuditRecorder,
	accessGuard *guard.Guard,
	logger *zap.Logger,
) contracts.PrescriptionUsecase {
	return &prescriptionUsecase{
		PrescriptionRepository:  prescriptionRepository,
		MedicalRecordRepository: medicalRecordRepository,
		AuditRecorder:           auditRecorder,
		Guard:                   accessGuard,
		Log:                     logger,
	}
}

// CreatePrescription copies its owners from the parent medical record.
func (uc *prescriptionUsecase) CreatePrescription(ctx context.Context, request *requests.CreatePrescription) (*models.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.CreatePrescription called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("medical_record_id", request.MedicalRecordID),
	)

	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	record, err := uc.MedicalRecordRepository.FindByID(ctx, request.MedicalRecordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrNotFound(nil, "medical record")
	}

	owners, _ := authorization.OwnersOf(record)
	if err := uc.Guard.Check(ctx, caller, authorization.ActionCreate, authorization.ResourcePrescription, &authorization.Target{Owners: owners}, "prescription"); err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		PatientID:       record.PatientID,
		DoctorID:        record.DoctorID,
		MedicalRecordID: record.ID,
		Medications:     toMedications(request.Medications),
		Instructions:    request.Instructions,
		ValidUntil:      request.ValidUntil,
	}
	prescription.SetCreatedAtUpdatedAt()

	prescriptionID, err := uc.PrescriptionRepository.CreatePrescription(ctx, prescription)
	if err != nil {
		uc.Log.Error("prescriptionUsecase.CreatePrescription error creating prescription",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	prescription.ID = prescriptionID

	uc.AuditRecorder.Record(ctx, authorization.ActionCreate, authorization.ResourcePrescription, prescription.ID, map[string]any{
		"medicalRecordId": record.ID,
		"medications":     len(prescription.Medications),
	})
	return prescription, nil
}

func (uc *prescriptionUsecase) FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Prescription, int64, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionList, authorization.ResourcePrescription, nil, constvars.ResourcePrescriptions); err != nil {
		return nil, 0, err
	}
	scope := uc.Guard.Scope(ctx, caller, authorization.ResourcePrescription)
	return uc.PrescriptionRepository.FindAll(ctx, scope, pagination)
}

func (uc *prescriptionUsecase) FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	caller, prescription, err := uc.fetch(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionRead, authorization.ResourcePrescription, authorization.TargetOf(prescription), "prescription"); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (uc *prescriptionUsecase) UpdatePrescription(ctx context.Context, prescriptionID string, request *requests.UpdatePrescription) (*models.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.UpdatePrescription called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, prescriptionID),
	)

	caller, prescription, err := uc.fetch(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}

	changes := request.Changes()
	if len(changes) == 0 {
		return nil, exceptions.ErrNothingToUpdate(nil)
	}
	target := authorization.TargetOf(prescription).WithChanges(changes)
	if err := uc.Guard.Check(ctx, caller, authorization.ActionUpdate, authorization.ResourcePrescription, target, "prescription"); err != nil {
		return nil, err
	}

	if request.Medications != nil {
		prescription.Medications = toMedications(*request.Medications)
	}
	if request.Instructions != nil {
		prescription.Instructions = *request.Instructions
	}
	if request.ValidUntil != nil {
		prescription.ValidUntil = request.ValidUntil
	}
	prescription.SetUpdatedAt()

	if err := uc.PrescriptionRepository.UpdatePrescription(ctx, prescription); err != nil {
		return nil, err
	}
	uc.AuditRecorder.Record(ctx, authorization.ActionUpdate, authorization.ResourcePrescription, prescription.ID, map[string]any{
		"fields": changes.Fields(),
	})
	return prescription, nil
}

func (uc *prescriptionUsecase) DeletePrescription(ctx context.Context, prescriptionID string) error {
	caller, prescription, err := uc.fetch(ctx, prescriptionID)
	if err != nil {
		return err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionDelete, authorization.ResourcePrescription, authorization.TargetOf(prescription), "prescription"); err != nil {
		return err
	}

	if err := uc.PrescriptionRepository.DeleteByID(ctx, prescription.ID); err != nil {
		return err
	}
	uc.AuditRecorder.Record(ctx, authorization.ActionDelete, authorization.ResourcePrescription, prescription.ID, nil)
	return nil
}

func (uc *prescriptionUsecase) fetch(ctx context.Context, prescriptionID string) (guard.Caller, *models.Prescription, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	prescription, err := uc.PrescriptionRepository.FindByID(ctx, prescriptionID)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	if prescription == nil {
		return guard.Caller{}, nil, exceptions.ErrNotFound(nil, "prescription")
	}
	return caller, prescription, nil
}

func toMedications(input []requests.Medication) []models.Medication {
	medications := make([]models.Medication, 0, len(input))
	for _, medication := range input {
		medications = append(medications, models.Medication{
			Name:      medication.Name,
			Dosage:    medication.Dosage,
			Frequency: medication.Frequency,
			Duration:  medication.Duration,
		})
	}
	return medications
}
