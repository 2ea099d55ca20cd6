package mailer

import (
	"context"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type recipientResolver struct {
	UserRepository    contracts.UserRepository
	PatientRepository contracts.PatientRepository
	DoctorRepository  contracts.DoctorRepository
	Log               *zap.Logger
}

func NewRecipientResolver(
	userRepository contracts.UserRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	logger *zap.Logger,
) contracts.RecipientResolver {
	return &recipientResolver{
		UserRepository:    userRepository,
		PatientRepository: patientRepository,
		DoctorRepository:  doctorRepository,
		Log:               logger,
	}
}

func (r *recipientResolver) UsersOf(ctx context.Context, owners authorization.Owners) []*models.User {
	users := make([]*models.User, 0, 2)
	if owners.PatientID != "" {
		patient, err := r.PatientRepository.FindByID(ctx, owners.PatientID)
		if err != nil {
			r.warn(ctx, "patient", err)
		} else if patient != nil {
			users = r.appendUser(ctx, users, patient.UserID)
		}
	}
	if owners.DoctorID != "" {
		doctor, err := r.DoctorRepository.FindByID(ctx, owners.DoctorID)
		if err != nil {
			r.warn(ctx, "doctor", err)
		} else if doctor != nil {
			users = r.appendUser(ctx, users, doctor.UserID)
		}
	}
	return users
}

func (r *recipientResolver) appendUser(ctx context.Context, users []*models.User, userID string) []*models.User {
	user, err := r.UserRepository.FindByID(ctx, userID)
	if err != nil {
		r.warn(ctx, "user", err)
		return users
	}
	if user == nil || !user.IsActive {
		return users
	}
	return append(users, user)
}

func (r *recipientResolver) warn(ctx context.Context, kind string, err error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Warn("recipientResolver.UsersOf error looking up "+kind,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
}
