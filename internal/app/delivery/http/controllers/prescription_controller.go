package controllers

import (
	"net/http"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type PrescriptionController struct {
	Log                 *zap.Logger
	PrescriptionUsecase contracts.PrescriptionUsecase
}

func NewPrescriptionController(logger *zap.Logger, prescriptionUsecase contracts.PrescriptionUsecase) *PrescriptionController {
	return &PrescriptionController{
		Log:                 logger,
		PrescriptionUsecase: prescriptionUsecase,
	}
}

func (ctrl *PrescriptionController) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PrescriptionController.CreatePrescription")
	if !ok {
		return
	}

	request := new(requests.CreatePrescription)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	prescription, err := ctrl.PrescriptionUsecase.CreatePrescription(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PrescriptionUsecase.CreatePrescription", err)
		return
	}

	ctrl.Log.Info("PrescriptionController.CreatePrescription succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, prescription.ID))
	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.CreatePrescriptionSuccessMessage, prescription)
}

func (ctrl *PrescriptionController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PrescriptionController.FindAll")
	if !ok {
		return
	}
	pagination := utils.BuildPaginationRequest(r)

	prescriptions, total, err := ctrl.PrescriptionUsecase.FindAll(r.Context(), pagination)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PrescriptionUsecase.FindAll", err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, http.StatusOK, constvars.GetPrescriptionsSuccessMessage, paginationOf(r, pagination, total), prescriptions)
}

func (ctrl *PrescriptionController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PrescriptionController.FindByID")
	if !ok {
		return
	}
	prescriptionID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	prescription, err := ctrl.PrescriptionUsecase.FindByID(r.Context(), prescriptionID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PrescriptionUsecase.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetPrescriptionSuccessMessage, prescription)
}

func (ctrl *PrescriptionController) UpdatePrescription(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PrescriptionController.UpdatePrescription")
	if !ok {
		return
	}
	prescriptionID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	request := new(requests.UpdatePrescription)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	prescription, err := ctrl.PrescriptionUsecase.UpdatePrescription(r.Context(), prescriptionID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PrescriptionUsecase.UpdatePrescription", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.UpdatePrescriptionSuccessMessage, prescription)
}

func (ctrl *PrescriptionController) DeletePrescription(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "PrescriptionController.DeletePrescription")
	if !ok {
		return
	}
	prescriptionID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	if err := ctrl.PrescriptionUsecase.DeletePrescription(r.Context(), prescriptionID); err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "PrescriptionUsecase.DeletePrescription", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.DeletePrescriptionSuccessMessage, nil)
}
