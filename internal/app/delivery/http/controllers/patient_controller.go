package controllers

import (
	"net/http"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
}

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase) *PatientController {
	return &PatientController{
		Log:            logger,
		PatientUsecase: patientUsecase,
	}
}

func (ctrl *PatientController) CreatePatient(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PatientController.CreatePatient")
	if !ok {
		return
	}

	ctrl.Log.Info("PatientController.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request, err := bindSanitized(r, utils.SanitizeCreatePatientRequest)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	patient, err := ctrl.PatientUsecase.CreatePatient(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PatientUsecase.CreatePatient", err)
		return
	}

	ctrl.Log.Info("PatientController.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, patient.ID))
	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.CreatePatientSuccessMessage, patient)
}

func (ctrl *PatientController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PatientController.FindAll")
	if !ok {
		return
	}
	pagination := utils.BuildPaginationRequest(r)

	patients, total, err := ctrl.PatientUsecase.FindAll(r.Context(), pagination)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PatientUsecase.FindAll", err)
		return
	}

	ctrl.Log.Info("PatientController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(patients)))
	utils.BuildSuccessResponseWithPagination(w, http.StatusOK, constvars.GetPatientsSuccessMessage, paginationOf(r, pagination, total), patients)
}

func (ctrl *PatientController) FindMine(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PatientController.FindMine")
	if !ok {
		return
	}

	patient, err := ctrl.PatientUsecase.FindMine(r.Context())
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PatientUsecase.FindMine", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetPatientSuccessMessage, patient)
}

func (ctrl *PatientController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PatientController.FindByID")
	if !ok {
		return
	}
	patientID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	patient, err := ctrl.PatientUsecase.FindByID(r.Context(), patientID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PatientUsecase.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetPatientSuccessMessage, patient)
}

func (ctrl *PatientController) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PatientController.UpdatePatient")
	if !ok {
		return
	}
	patientID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	ctrl.Log.Info("PatientController.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, patientID))

	request := new(requests.UpdatePatient)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	patient, err := ctrl.PatientUsecase.UpdatePatient(r.Context(), patientID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PatientUsecase.UpdatePatient", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.UpdatePatientSuccessMessage, patient)
}

func (ctrl *PatientController) DeletePatient(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PatientController.DeletePatient")
	if !ok {
		return
	}
	patientID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	if err := ctrl.PatientUsecase.DeletePatient(r.Context(), patientID); err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PatientUsecase.DeletePatient", err)
		return
	}

	ctrl.Log.Info("PatientController.DeletePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, patientID))
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.DeletePatientSuccessMessage, nil)
}
