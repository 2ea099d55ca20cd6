package auth

import (
	"context"
	"time"

	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/dto/responses"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository   contracts.UserRepository
	IdentityResolver contracts.IdentityResolver
	AuditRecorder    contracts.AuditRecorder
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	identityResolver contracts.IdentityResolver,
	auditRecorder contracts.AuditRecorder,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository:   userRepository,
		IdentityResolver: identityResolver,
		AuditRecorder:    auditRecorder,
		InternalConfig:   internalConfig,
		Log:              logger,
	}
}

// Register creates a patient or doctor account. Admin accounts are only created
// by another admin.
func (uc *authUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorRoleKey, request.Role),
	)

	role, ok := authorization.ParseRole(request.Role)
	if !ok || role == authorization.RoleAdmin {
		return nil, exceptions.ErrInvalidRoleType(nil)
	}

	user, err := createUser(ctx, uc.UserRepository, request.Name, request.Email, request.Password, role)
	if err != nil {
		uc.Log.Error("authUsecase.Register error creating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// The new account is the actor of its own registration.
	auditCtx := authorization.WithActor(ctx, &authorization.Actor{ID: user.ID, Role: role})
	uc.AuditRecorder.Record(auditCtx, authorization.ActionCreate, authorization.ResourceUser, user.ID, map[string]any{
		"role": user.Role,
	})

	uc.Log.Info("authUsecase.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, user.ID),
	)
	return &responses.RegisterUser{User: user}, nil
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("authUsecase.Login error finding user by email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil || !user.IsActive || !utils.CheckPasswordHash(request.Password, user.Password) {
		uc.Log.Info("authUsecase.Login invalid credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	expiry := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	token, err := utils.GenerateAccessJWT(user.ID, user.Role, uc.InternalConfig.JWT.Secret, expiry)
	if err != nil {
		uc.Log.Error("authUsecase.Login error generating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, user.ID),
	)
	return &responses.LoginUser{Token: token, User: user}, nil
}

func (uc *authUsecase) CurrentUser(ctx context.Context) (*responses.CurrentUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	actor := authorization.ActorFromContext(ctx)
	if actor == nil {
		return nil, exceptions.ErrTokenMissing(nil)
	}
	uc.Log.Info("authUsecase.CurrentUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
	)

	user, err := uc.UserRepository.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	profile, err := uc.IdentityResolver.ResolveProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	response := &responses.CurrentUser{User: user}
	if profile.Found() {
		response.ProfileID = profile.ID
	}
	return response, nil
}

func createUser(ctx context.Context, repository contracts.UserRepository, name, email, password string, role authorization.Role) (*models.User, error) {
	existing, err := repository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     role.String(),
		IsActive: true,
	}
	user.SetCreatedAtUpdatedAt()

	userID, err := repository.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID
	return user, nil
}
