package doctors

import (
	"context"
	"errors"
	"fmt"

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

type doctorUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	PatientRepository     contracts.PatientRepository
	AppointmentRepository contracts.AppointmentRepository
	UserRepository        contracts.UserRepository
	IdentityResolver      contracts.IdentityResolver
	AuditRecorder         contracts.AuditRecorder
	NotificationSender    contracts.NotificationSender
	Guard                 *guard.Guard
	Log                   *zap.Logger
}

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	appointmentRepository contracts.AppointmentRepository,
	userRepository contracts.UserRepository,
	identityResolver contracts.IdentityResolver,
	auditRecorder contracts.AuditRecorder,
	notificationSender contracts.NotificationSender,
	accessGuard *guard.Guard,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	return &doctorUsecase{
		DoctorRepository:      doctorRepository,
		PatientRepository:     patientRepository,
		AppointmentRepository: appointmentRepository,
		UserRepository:        userRepository,
		IdentityResolver:      identityResolver,
		AuditRecorder:         auditRecorder,
		NotificationSender:    notificationSender,
		Guard:                 accessGuard,
		Log:                   logger,
	}
}

// CreateDoctor creates the doctor profile of the caller, or of request.UserID when
// the caller is an admin. Admin-created profiles start approved.
func (uc *doctorUsecase) CreateDoctor(ctx context.Context, request *requests.CreateDoctor) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.CreateDoctor called",
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
		if err := uc.ensureUserHasRole(ctx, userID, authorization.RoleDoctor); err != nil {
			return nil, err
		}
	}

	target := &authorization.Target{}
	if userID != "" {
		existing, err := uc.DoctorRepository.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		target.ProfileExists = existing != nil
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionCreate, authorization.ResourceDoctor, target, "doctor profile"); err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		UserID:          userID,
		Specialization:  request.Specialization,
		LicenseNumber:   request.LicenseNumber,
		Experience:      request.Experience,
		ConsultationFee: request.ConsultationFee,
		Qualifications:  request.Qualifications,
		Bio:             request.Bio,
		Phone:           utils.CanonicalPhoneNumber(request.Phone),
		Availability:    toAvailability(request.Availability),
		IsApproved:      caller.Is(authorization.RoleAdmin),
	}
	if doctor.Qualifications == nil {
		doctor.Qualifications = []string{}
	}
	doctor.SetCreatedAtUpdatedAt()

	doctorID, err := uc.DoctorRepository.CreateDoctor(ctx, doctor)
	if err != nil {
		uc.Log.Error("doctorUsecase.CreateDoctor error creating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	doctor.ID = doctorID

	uc.invalidateProfile(ctx, userID)
	uc.AuditRecorder.Record(ctx, authorization.ActionCreate, authorization.ResourceDoctor, doctor.ID, map[string]any{
		"userId":     userID,
		"isApproved": doctor.IsApproved,
	})

	uc.Log.Info("doctorUsecase.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, doctor.ID),
	)
	return doctor, nil
}

func (uc *doctorUsecase) FindAll(ctx context.Context, filter *requests.DoctorFilter, pagination *requests.Pagination) ([]models.Doctor, int64, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionList, authorization.ResourceDoctor, nil, constvars.ResourceDoctors); err != nil {
		return nil, 0, err
	}
	scope := uc.Guard.Scope(ctx, caller, authorization.ResourceDoctor)
	return uc.DoctorRepository.FindAll(ctx, scope, filter, pagination)
}

// FindMine returns the caller's own doctor profile, approved or not.
func (uc *doctorUsecase) FindMine(ctx context.Context) (*models.Doctor, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if caller.Actor == nil {
		return nil, exceptions.ErrTokenMissing(nil)
	}
	if !caller.Is(authorization.RoleDoctor) {
		return nil, exceptions.FromDecision(authorization.Deny(authorization.ReasonRoleNotPermitted, "only doctors have a doctor profile"), "doctor profile")
	}
	if !caller.Profile.Found() {
		return nil, exceptions.ErrProfileMissing(nil, authorization.RoleDoctor.String())
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, caller.Profile.ID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		// Cached profile id outlived the profile.
		uc.invalidateProfile(ctx, caller.ActorID())
		return nil, exceptions.ErrProfileMissing(nil, authorization.RoleDoctor.String())
	}
	return doctor, nil
}

func (uc *doctorUsecase) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	caller, doctor, err := uc.fetch(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionRead, authorization.ResourceDoctor, authorization.TargetOf(doctor), "doctor"); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (uc *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID string, request *requests.UpdateDoctor) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, doctorID),
	)

	caller, doctor, err := uc.fetch(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	changes := request.Changes()
	if len(changes) == 0 {
		return nil, exceptions.ErrNothingToUpdate(nil)
	}
	target := authorization.TargetOf(doctor).WithChanges(changes)
	if err := uc.Guard.Check(ctx, caller, authorization.ActionUpdate, authorization.ResourceDoctor, target, "doctor"); err != nil {
		return nil, err
	}

	wasApproved := doctor.IsApproved
	applyDoctorUpdate(doctor, request)
	doctor.SetUpdatedAt()

	if err := uc.DoctorRepository.UpdateDoctor(ctx, doctor); err != nil {
		uc.Log.Error("doctorUsecase.UpdateDoctor error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditRecorder.Record(ctx, authorization.ActionUpdate, authorization.ResourceDoctor, doctor.ID, map[string]any{
		"fields": changes.Fields(),
	})
	if !wasApproved && doctor.IsApproved {
		uc.notifyApproved(ctx, doctor)
	}
	return doctor, nil
}

// ApproveDoctor is the dedicated approval path. The body defaults to approving.
func (uc *doctorUsecase) ApproveDoctor(ctx context.Context, doctorID string, request *requests.ApproveDoctor) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ApproveDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, doctorID),
	)

	caller, doctor, err := uc.fetch(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionApprove, authorization.ResourceDoctor, authorization.TargetOf(doctor), "doctor"); err != nil {
		return nil, err
	}

	wasApproved := doctor.IsApproved
	doctor.IsApproved = request.Approved()
	doctor.SetUpdatedAt()

	if err := uc.DoctorRepository.UpdateDoctor(ctx, doctor); err != nil {
		return nil, err
	}

	uc.AuditRecorder.Record(ctx, authorization.ActionApprove, authorization.ResourceDoctor, doctor.ID, map[string]any{
		"isApproved": doctor.IsApproved,
	})
	if !wasApproved && doctor.IsApproved {
		uc.notifyApproved(ctx, doctor)
	}

	uc.Log.Info("doctorUsecase.ApproveDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("is_approved", doctor.IsApproved),
	)
	return doctor, nil
}

func (uc *doctorUsecase) DeleteDoctor(ctx context.Context, doctorID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.DeleteDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, doctorID),
	)

	caller, doctor, err := uc.fetch(ctx, doctorID)
	if err != nil {
		return err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionDelete, authorization.ResourceDoctor, authorization.TargetOf(doctor), "doctor"); err != nil {
		return err
	}

	if err := uc.DoctorRepository.DeleteByID(ctx, doctor.ID); err != nil {
		return err
	}
	uc.invalidateProfile(ctx, doctor.UserID)
	uc.AuditRecorder.Record(ctx, authorization.ActionDelete, authorization.ResourceDoctor, doctor.ID, nil)
	return nil
}

// FindMyPatients lists the distinct patients that have booked with the calling doctor.
func (uc *doctorUsecase) FindMyPatients(ctx context.Context, pagination *requests.Pagination) ([]models.Patient, int64, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, 0, err
	}
	if caller.Actor == nil {
		return nil, 0, exceptions.ErrTokenMissing(nil)
	}
	if !caller.Is(authorization.RoleDoctor) {
		return nil, 0, exceptions.FromDecision(authorization.Deny(authorization.ReasonRoleNotPermitted, "only doctors have patients"), constvars.ResourcePatients)
	}
	if !caller.Profile.Found() {
		return nil, 0, exceptions.ErrProfileMissing(nil, authorization.RoleDoctor.String())
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionList, authorization.ResourcePatient, nil, constvars.ResourcePatients); err != nil {
		return nil, 0, err
	}

	patientIDs, err := uc.AppointmentRepository.DistinctPatientIDs(ctx, caller.Profile.ID)
	if err != nil {
		return nil, 0, err
	}
	if len(patientIDs) == 0 {
		return []models.Patient{}, 0, nil
	}
	return uc.PatientRepository.FindByIDs(ctx, patientIDs, pagination)
}

// fetch resolves the caller and loads the doctor. A missing doctor is reported
// before any authorization decision.
func (uc *doctorUsecase) fetch(ctx context.Context, doctorID string) (guard.Caller, *models.Doctor, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	if doctor == nil {
		return guard.Caller{}, nil, exceptions.ErrNotFound(nil, "doctor")
	}
	return caller, doctor, nil
}

func (uc *doctorUsecase) ensureUserHasRole(ctx context.Context, userID string, role authorization.Role) error {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrNotFound(nil, "user")
	}
	if user.Role != role.String() {
		return exceptions.ErrInvalidRoleType(fmt.Errorf("user %s has role %s", userID, user.Role))
	}
	return nil
}

func (uc *doctorUsecase) invalidateProfile(ctx context.Context, userID string) {
	if err := uc.IdentityResolver.InvalidateProfile(ctx, userID, authorization.RoleDoctor); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("doctorUsecase.invalidateProfile error deleting profile cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

func (uc *doctorUsecase) notifyApproved(ctx context.Context, doctor *models.Doctor) {
	user, err := uc.UserRepository.FindByID(ctx, doctor.UserID)
	if err != nil || user == nil {
		return
	}
	uc.NotificationSender.Notify(ctx, utils.BuildDoctorApprovedEmailPayload(user))
}

func applyDoctorUpdate(doctor *models.Doctor, request *requests.UpdateDoctor) {
	if request.Specialization != nil {
		doctor.Specialization = *request.Specialization
	}
	if request.LicenseNumber != nil {
		doctor.LicenseNumber = *request.LicenseNumber
	}
	if request.Experience != nil {
		doctor.Experience = *request.Experience
	}
	if request.ConsultationFee != nil {
		doctor.ConsultationFee = *request.ConsultationFee
	}
	if request.Qualifications != nil {
		doctor.Qualifications = *request.Qualifications
	}
	if request.Bio != nil {
		doctor.Bio = *request.Bio
	}
	if request.Phone != nil {
		doctor.Phone = utils.CanonicalPhoneNumber(*request.Phone)
	}
	if request.Availability != nil {
		doctor.Availability = toAvailability(*request.Availability)
	}
	if request.IsApproved != nil {
		doctor.IsApproved = *request.IsApproved
	}
}

func toAvailability(input []requests.DoctorAvailability) []models.Availability {
	availability := make([]models.Availability, 0, len(input))
	for _, day := range input {
		availability = append(availability, models.Availability{
			Day:       day.Day,
			TimeSlots: day.TimeSlots,
		})
	}
	return availability
}
