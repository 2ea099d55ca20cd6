package patients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/shared/guard"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository contracts.PatientRepository
	UserRepository    contracts.UserRepository
	IdentityResolver  contracts.IdentityResolver
	AuditRecorder     contracts.AuditRecorder
	Guard             *guard.Guard
	Log               *zap.Logger
}

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	userRepository contracts.UserRepository,
	identityResolver contracts.IdentityResolver,
	auditRecorder contracts.AuditRecorder,
	accessGuard *guard.Guard,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		PatientRepository: patientRepository,
		UserRepository:    userRepository,
		IdentityResolver:  identityResolver,
		AuditRecorder:     auditRecorder,
		Guard:             accessGuard,
		Log:               logger,
	}
}

func (uc *patientUsecase) CreatePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	userID := caller.ActorID()
	if caller.Is(authorization.RoleAdmin) {
		if request.UserID == "" {
			return nil, exceptions.ErrInputValidation(errors.New("userId is required"))
		}
		userID = request.UserID
		user, err := uc.UserRepository.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, exceptions.ErrNotFound(nil, "user")
		}
		if user.Role != authorization.RolePatient.String() {
			return nil, exceptions.ErrInvalidRoleType(fmt.Errorf("user %s has role %s", userID, user.Role))
		}
	}

	target := &authorization.Target{}
	if userID != "" {
		existing, err := uc.PatientRepository.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		target.ProfileExists = existing != nil
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionCreate, authorization.ResourcePatient, target, "patient profile"); err != nil {
		return nil, err
	}

	dateOfBirth, err := parseDateOfBirth(request.DateOfBirth)
	if err != nil {
		return nil, err
	}

	patient := &models.Patient{
		UserID:           userID,
		DateOfBirth:      dateOfBirth,
		Gender:           request.Gender,
		BloodGroup:       request.BloodGroup,
		Phone:            utils.CanonicalPhoneNumber(request.Phone),
		Address:          request.Address,
		EmergencyContact: toEmergencyContact(request.EmergencyContact),
		Allergies:        orEmpty(request.Allergies),
		MedicalHistory:   orEmpty(request.MedicalHistory),
	}
	patient.SetCreatedAtUpdatedAt()

	patientID, err := uc.PatientRepository.CreatePatient(ctx, patient)
	if err != nil {
		uc.Log.Error("patientUsecase.CreatePatient error creating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	patient.ID = patientID

	uc.invalidateProfile(ctx, userID)
	uc.AuditRecorder.Record(ctx, authorization.ActionCreate, authorization.ResourcePatient, patient.ID, map[string]any{
		"userId": userID,
	})

	uc.Log.Info("patientUsecase.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, patient.ID),
	)
	return patient, nil
}

func (uc *patientUsecase) FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Patient, int64, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionList, authorization.ResourcePatient, nil, constvars.ResourcePatients); err != nil {
		return nil, 0, err
	}
	scope := uc.Guard.Scope(ctx, caller, authorization.ResourcePatient)
	return uc.PatientRepository.FindAll(ctx, scope, pagination)
}

func (uc *patientUsecase) FindMine(ctx context.Context) (*models.Patient, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if caller.Actor == nil {
		return nil, exceptions.ErrTokenMissing(nil)
	}
	if !caller.Is(authorization.RolePatient) {
		return nil, exceptions.FromDecision(authorization.Deny(authorization.ReasonRoleNotPermitted, "only patients have a patient profile"), "patient profile")
	}
	if !caller.Profile.Found() {
		return nil, exceptions.ErrProfileMissing(nil, authorization.RolePatient.String())
	}

	patient, err := uc.PatientRepository.FindByID(ctx, caller.Profile.ID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		uc.invalidateProfile(ctx, caller.ActorID())
		return nil, exceptions.ErrProfileMissing(nil, authorization.RolePatient.String())
	}
	return patient, nil
}

func (uc *patientUsecase) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	caller, patient, err := uc.fetch(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionRead, authorization.ResourcePatient, authorization.TargetOf(patient), "patient"); err != nil {
		return nil, err
	}
	return patient, nil
}

func (uc *patientUsecase) UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, patientID),
	)

	caller, patient, err := uc.fetch(ctx, patientID)
	if err != nil {
		return nil, err
	}

	changes := request.Changes()
	if len(changes) == 0 {
		return nil, exceptions.ErrNothingToUpdate(nil)
	}
	target := authorization.TargetOf(patient).WithChanges(changes)
	if err := uc.Guard.Check(ctx, caller, authorization.ActionUpdate, authorization.ResourcePatient, target, "patient"); err != nil {
		return nil, err
	}

	if err := applyPatientUpdate(patient, request); err != nil {
		return nil, err
	}
	patient.SetUpdatedAt()

	if err := uc.PatientRepository.UpdatePatient(ctx, patient); err != nil {
		uc.Log.Error("patientUsecase.UpdatePatient error updating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditRecorder.Record(ctx, authorization.ActionUpdate, authorization.ResourcePatient, patient.ID, map[string]any{
		"fields": changes.Fields(),
	})
	return patient, nil
}

func (uc *patientUsecase) DeletePatient(ctx context.Context, patientID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.DeletePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, patientID),
	)

	caller, patient, err := uc.fetch(ctx, patientID)
	if err != nil {
		return err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionDelete, authorization.ResourcePatient, authorization.TargetOf(patient), "patient"); err != nil {
		return err
	}

	if err := uc.PatientRepository.DeleteByID(ctx, patient.ID); err != nil {
		return err
	}
	uc.invalidateProfile(ctx, patient.UserID)
	uc.AuditRecorder.Record(ctx, authorization.ActionDelete, authorization.ResourcePatient, patient.ID, nil)
	return nil
}

func (uc *patientUsecase) fetch(ctx context.Context, patientID string) (guard.Caller, *models.Patient, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	if patient == nil {
		return guard.Caller{}, nil, exceptions.ErrNotFound(nil, "patient")
	}
	return caller, patient, nil
}

func (uc *patientUsecase) invalidateProfile(ctx context.Context, userID string) {
	if err := uc.IdentityResolver.InvalidateProfile(ctx, userID, authorization.RolePatient); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("patientUsecase.invalidateProfile error deleting profile cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

func applyPatientUpdate(patient *models.Patient, request *requests.UpdatePatient) error {
	if request.DateOfBirth != nil {
		dateOfBirth, err := parseDateOfBirth(*request.DateOfBirth)
		if err != nil {
			return err
		}
		patient.DateOfBirth = dateOfBirth
	}
	if request.Gender != nil {
		patient.Gender = *request.Gender
	}
	if request.BloodGroup != nil {
		patient.BloodGroup = *request.BloodGroup
	}
	if request.Phone != nil {
		patient.Phone = utils.CanonicalPhoneNumber(*request.Phone)
	}
	if request.Address != nil {
		patient.Address = *request.Address
	}
	if request.EmergencyContact != nil {
		patient.EmergencyContact = toEmergencyContact(request.EmergencyContact)
	}
	if request.Allergies != nil {
		patient.Allergies = orEmpty(*request.Allergies)
	}
	if request.MedicalHistory != nil {
		patient.MedicalHistory = orEmpty(*request.MedicalHistory)
	}
	return nil
}

func parseDateOfBirth(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(constvars.DateFormatYYYYMMDD, value)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if parsed.After(time.Now()) {
		return nil, exceptions.ErrInputValidation(errors.New("dateOfBirth cannot be in the future"))
	}
	return &parsed, nil
}

func toEmergencyContact(contact *requests.EmergencyContact) *models.EmergencyContact {
	if contact == nil {
		return nil
	}
	return &models.EmergencyContact{
		Name:         contact.Name,
		Relationship: contact.Relationship,
		Phone:        utils.CanonicalPhoneNumber(contact.Phone),
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
