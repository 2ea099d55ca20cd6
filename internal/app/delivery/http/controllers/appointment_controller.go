package controllers

import (
	"net/http"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "AppointmentController.CreateAppointment")
	if !ok {
		return
	}

	ctrl.Log.Info("AppointmentController.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request := new(requests.CreateAppointment)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AppointmentUsecase.CreateAppointment(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AppointmentUsecase.CreateAppointment", err)
		return
	}

	ctrl.Log.Info("AppointmentController.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, appointment.ID))
	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.CreateAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "AppointmentController.FindAll")
	if !ok {
		return
	}

	filter := &requests.AppointmentFilter{
		Status: r.URL.Query().Get(constvars.URLQueryParamStatus),
		Date:   r.URL.Query().Get(constvars.URLQueryParamDate),
	}
	if err := utils.ValidateStruct(filter); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	pagination := utils.BuildPaginationRequest(r)

	ctrl.Log.Info("AppointmentController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter))

	appointments, total, err := ctrl.AppointmentUsecase.FindAll(r.Context(), filter, pagination)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AppointmentUsecase.FindAll", err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(appointments)))
	utils.BuildSuccessResponseWithPagination(w, http.StatusOK, constvars.GetAppointmentsSuccessMessage, paginationOf(r, pagination, total), appointments)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "AppointmentController.FindByID")
	if !ok {
		return
	}
	appointmentID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	appointment, err := ctrl.AppointmentUsecase.FindByID(r.Context(), appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AppointmentUsecase.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "AppointmentController.UpdateAppointment")
	if !ok {
		return
	}
	appointmentID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	ctrl.Log.Info("AppointmentController.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, appointmentID))

	request := new(requests.UpdateAppointment)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AppointmentUsecase.UpdateAppointment(r.Context(), appointmentID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AppointmentUsecase.UpdateAppointment", err)
		return
	}

	ctrl.Log.Info("AppointmentController.UpdateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, appointmentID))
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.UpdateAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "AppointmentController.DeleteAppointment")
	if !ok {
		return
	}
	appointmentID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	if err := ctrl.AppointmentUsecase.DeleteAppointment(r.Context(), appointmentID); err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AppointmentUsecase.DeleteAppointment", err)
		return
	}

	ctrl.Log.Info("AppointmentController.DeleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, appointmentID))
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.DeleteAppointmentSuccessMessage, nil)
}
