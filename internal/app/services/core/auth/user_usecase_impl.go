package auth

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

type userUsecase struct {
	UserRepository contracts.UserRepository
	AuditRecorder  contracts.AuditRecorder
	Guard          *guard.Guard
	Log            *zap.Logger
}

func NewUserUsecase(
	userRepository contracts.UserRepository,
	auditRecorder contracts.AuditRecorder,
	accessGuard *guard.Guard,
	logger *zap.Logger,
) contracts.UserUsecase {
	return &userUsecase{
		UserRepository: userRepository,
		AuditRecorder:  auditRecorder,
		Guard:          accessGuard,
		Log:            logger,
	}
}

// CreateUser is restricted to admins and may create any role, including admin.
func (uc *userUsecase) CreateUser(ctx context.Context, request *requests.CreateUser) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.CreateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionCreate, authorization.ResourceUser, nil, constvars.ResourceUsers); err != nil {
		return nil, err
	}

	role, ok := authorization.ParseRole(request.Role)
	if !ok {
		return nil, exceptions.ErrInvalidRoleType(nil)
	}

	user, err := createUser(ctx, uc.UserRepository, request.Name, request.Email, request.Password, role)
	if err != nil {
		uc.Log.Error("userUsecase.CreateUser error creating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AuditRecorder.Record(ctx, authorization.ActionCreate, authorization.ResourceUser, user.ID, map[string]any{
		"role": user.Role,
	})
	uc.Log.Info("userUsecase.CreateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, user.ID),
	)
	return user, nil
}
