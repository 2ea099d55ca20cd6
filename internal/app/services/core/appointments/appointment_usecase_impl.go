package appointments

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

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	PatientRepository     contracts.PatientRepository
	LockerService         contracts.LockerService
	AuditRecorder         contracts.AuditRecorder
	NotificationSender    contracts.NotificationSender
	RecipientResolver     contracts.RecipientResolver
	Guard                 *guard.Guard
	LockTTL               time.Duration
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	patientRepository contracts.PatientRepository,
	lockerService contracts.LockerService,
	auditRecorder contracts.AuditRecorder,
	notificationSender contracts.NotificationSender,
	recipientResolver contracts.RecipientResolver,
	accessGuard *guard.Guard,
	lockTTL time.Duration,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		DoctorRepository:      doctorRepository,
		PatientRepository:     patientRepository,
		LockerService:         lockerService,
		AuditRecorder:         auditRecorder,
		NotificationSender:    notificationSender,
		RecipientResolver:     recipientResolver,
		Guard:                 accessGuard,
		LockTTL:               lockTTL,
		Log:                   logger,
	}
}

// CreateAppointment books a slot with an approved doctor. Patients always book for
// themselves; doctors and admins name the patient explicitly.
func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("doctor_id", request.DoctorID),
		zap.String("date", request.Date),
		zap.String("time_slot", request.TimeSlot),
	)

	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if caller.Actor == nil {
		return nil, exceptions.ErrTokenMissing(nil)
	}

	patientID, err := uc.resolvePatientID(ctx, caller, request.PatientID)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.IsApproved {
		return nil, exceptions.ErrNotFound(nil, "doctor")
	}

	target := &authorization.Target{Owners: authorization.Owners{PatientID: patientID, DoctorID: doctor.ID}}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionCreate, authorization.ResourceAppointment, target, "appointment"); err != nil {
		return nil, err
	}

	release, err := uc.lockSlot(ctx, doctor.ID, request.Date, request.TimeSlot)
	if err != nil {
		return nil, err
	}
	defer release()

	taken, err := uc.AppointmentRepository.ExistsActiveSlot(ctx, doctor.ID, request.Date, request.TimeSlot, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, exceptions.ErrTimeSlotTaken(nil)
	}

	appointment := &models.Appointment{
		PatientID:     patientID,
		DoctorID:      doctor.ID,
		Date:          request.Date,
		TimeSlot:      request.TimeSlot,
		Reason:        request.Reason,
		Notes:         request.Notes,
		Status:        models.AppointmentStatusScheduled,
		PaymentStatus: models.PaymentStatusPending,
	}
	appointment.SetCreatedAtUpdatedAt()

	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error creating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	appointment.ID = appointmentID

	uc.AuditRecorder.Record(ctx, authorization.ActionCreate, authorization.ResourceAppointment, appointment.ID, map[string]any{
		"patientId": appointment.PatientID,
		"doctorId":  appointment.DoctorID,
		"date":      appointment.Date,
		"timeSlot":  appointment.TimeSlot,
	})
	uc.notify(ctx, appointment, utils.BuildAppointmentBookedEmailPayload)

	utils.LogBusinessEvent(uc.Log, "appointment_booked", requestID,
		zap.String(constvars.LoggingResourceIDKey, appointment.ID),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, filter *requests.AppointmentFilter, pagination *requests.Pagination) ([]models.Appointment, int64, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionList, authorization.ResourceAppointment, nil, constvars.ResourceAppointments); err != nil {
		return nil, 0, err
	}
	scope := uc.Guard.Scope(ctx, caller, authorization.ResourceAppointment)
	return uc.AppointmentRepository.FindAll(ctx, scope, filter, pagination)
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	caller, appointment, err := uc.fetch(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionRead, authorization.ResourceAppointment, authorization.TargetOf(appointment), "appointment"); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (uc *appointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, appointmentID),
	)

	caller, appointment, err := uc.fetch(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	changes := request.Changes()
	if len(changes) == 0 {
		return nil, exceptions.ErrNothingToUpdate(nil)
	}
	target := authorization.TargetOf(appointment).WithChanges(changes)
	if err := uc.Guard.Check(ctx, caller, authorization.ActionUpdate, authorization.ResourceAppointment, target, "appointment"); err != nil {
		return nil, err
	}

	before := *appointment
	applyAppointmentUpdate(appointment, request)

	if needsSlotCheck(&before, appointment) {
		release, err := uc.lockSlot(ctx, appointment.DoctorID, appointment.Date, appointment.TimeSlot)
		if err != nil {
			return nil, err
		}
		defer release()

		taken, err := uc.AppointmentRepository.ExistsActiveSlot(ctx, appointment.DoctorID, appointment.Date, appointment.TimeSlot, appointment.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, exceptions.ErrTimeSlotTaken(nil)
		}
	}
	appointment.SetUpdatedAt()

	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		uc.Log.Error("appointmentUsecase.UpdateAppointment error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditRecorder.Record(ctx, authorization.ActionUpdate, authorization.ResourceAppointment, appointment.ID, map[string]any{
		"fields":         changes.Fields(),
		"previousStatus": before.Status,
		"status":         appointment.Status,
	})
	if appointment.Status != before.Status || appointment.Date != before.Date || appointment.TimeSlot != before.TimeSlot {
		uc.notify(ctx, appointment, utils.BuildAppointmentUpdatedEmailPayload)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.DeleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, appointmentID),
	)

	caller, appointment, err := uc.fetch(ctx, appointmentID)
	if err != nil {
		return err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionDelete, authorization.ResourceAppointment, authorization.TargetOf(appointment), "appointment"); err != nil {
		return err
	}

	if err := uc.AppointmentRepository.DeleteByID(ctx, appointment.ID); err != nil {
		return err
	}
	uc.AuditRecorder.Record(ctx, authorization.ActionDelete, authorization.ResourceAppointment, appointment.ID, nil)
	return nil
}

// resolvePatientID returns the patient the appointment is booked for. A patient's
// own profile id may be empty here; the authorization check reports that.
func (uc *appointmentUsecase) resolvePatientID(ctx context.Context, caller guard.Caller, requested string) (string, error) {
	if caller.Is(authorization.RolePatient) {
		return caller.Profile.ID, nil
	}
	if requested == "" {
		return "", exceptions.ErrInputValidation(errors.New("patientId is required"))
	}
	patient, err := uc.PatientRepository.FindByID(ctx, requested)
	if err != nil {
		return "", err
	}
	if patient == nil {
		return "", exceptions.ErrNotFound(nil, "patient")
	}
	return patient.ID, nil
}

// lockSlot takes the booking lock for a slot. A redis failure degrades to the
// storage uniqueness guard instead of failing the request.
func (uc *appointmentUsecase) lockSlot(ctx context.Context, doctorID, date, timeSlot string) (func(), error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := fmt.Sprintf(constvars.RedisKeyPrefixBookingLock, doctorID, date, timeSlot)

	acquired, lockValue, err := uc.LockerService.TryLock(ctx, key, uc.LockTTL)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.lockSlot error acquiring booking lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return func() {}, nil
	}
	if !acquired {
		return nil, exceptions.ErrTimeSlotTaken(nil)
	}

	return func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
			uc.Log.Warn("appointmentUsecase.lockSlot error releasing booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}

func (uc *appointmentUsecase) fetch(ctx context.Context, appointmentID string) (guard.Caller, *models.Appointment, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	if appointment == nil {
		return guard.Caller{}, nil, exceptions.ErrNotFound(nil, "appointment")
	}
	return caller, appointment, nil
}

func (uc *appointmentUsecase) notify(ctx context.Context, appointment *models.Appointment, build func(*models.User, *models.Appointment) *requests.EmailPayload) {
	owners, _ := authorization.OwnersOf(appointment)
	for _, user := range uc.RecipientResolver.UsersOf(ctx, owners) {
		uc.NotificationSender.Notify(ctx, build(user, appointment))
	}
}

func applyAppointmentUpdate(appointment *models.Appointment, request *requests.UpdateAppointment) {
	if request.Date != nil {
		appointment.Date = *request.Date
	}
	if request.TimeSlot != nil {
		appointment.TimeSlot = *request.TimeSlot
	}
	if request.Reason != nil {
		appointment.Reason = *request.Reason
	}
	if request.Notes != nil {
		appointment.Notes = *request.Notes
	}
	if request.Status != nil {
		appointment.Status = *request.Status
	}
	if request.PaymentStatus != nil {
		appointment.PaymentStatus = *request.PaymentStatus
	}
}

// needsSlotCheck reports whether the update makes the appointment claim a slot it
// did not hold before.
func needsSlotCheck(before, after *models.Appointment) bool {
	if !after.HoldsSlot() {
		return false
	}
	if !before.HoldsSlot() {
		return true
	}
	return before.Date != after.Date || before.TimeSlot != after.TimeSlot
}
