package controllers

import (
	"net/http"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AuthController struct {
	Log         *zap.Logger
	AuthUsecase contracts.AuthUsecase
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase) *AuthController {
	return &AuthController{
		Log:         logger,
		AuthUsecase: authUsecase,
	}
}

func (ctrl *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "AuthController.Register")
	if !ok {
		return
	}

	ctrl.Log.Info("AuthController.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request, err := bindSanitized(r, utils.SanitizeRegisterUserRequest)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response, err := ctrl.AuthUsecase.Register(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AuthUsecase.Register", err)
		return
	}

	ctrl.Log.Info("AuthController.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID))
	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.RegisterSuccessMessage, response)
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "AuthController.Login")
	if !ok {
		return
	}

	ctrl.Log.Info("AuthController.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request, err := bindSanitized(r, utils.SanitizeLoginUserRequest)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response, err := ctrl.AuthUsecase.Login(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AuthUsecase.Login", err)
		return
	}

	ctrl.Log.Info("AuthController.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID))
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.LoginSuccessMessage, response)
}

func (ctrl *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "AuthController.Me")
	if !ok {
		return
	}

	response, err := ctrl.AuthUsecase.CurrentUser(r.Context())
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AuthUsecase.CurrentUser", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetMeSuccessMessage, response)
}
