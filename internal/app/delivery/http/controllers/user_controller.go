package controllers

import (
	"net/http"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type UserController struct {
	Log         *zap.Logger
	UserUsecase contracts.UserUsecase
}

func NewUserController(logger *zap.Logger, userUsecase contracts.UserUsecase) *UserController {
	return &UserController{
		Log:         logger,
		UserUsecase: userUsecase,
	}
}

// CreateUser lets an admin provision an account of any role.
func (ctrl *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "UserController.CreateUser")
	if !ok {
		return
	}

	ctrl.Log.Info("UserController.CreateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request, err := bindSanitized(r, utils.SanitizeCreateUserRequest)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	user, err := ctrl.UserUsecase.CreateUser(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "UserUsecase.CreateUser", err)
		return
	}

	ctrl.Log.Info("UserController.CreateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, user.ID))
	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.CreateUserSuccessMessage, user)
}
