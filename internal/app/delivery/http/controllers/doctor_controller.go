package controllers

import (
	"errors"
	"io"
	"net/http"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	return &DoctorController{
		Log:           logger,
		DoctorUsecase: doctorUsecase,
	}
}

func (ctrl *DoctorController) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "DoctorController.CreateDoctor")
	if !ok {
		return
	}

	ctrl.Log.Info("DoctorController.CreateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request, err := bindSanitized(r, utils.SanitizeCreateDoctorRequest)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	doctor, err := ctrl.DoctorUsecase.CreateDoctor(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "DoctorUsecase.CreateDoctor", err)
		return
	}

	ctrl.Log.Info("DoctorController.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, doctor.ID))
	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.CreateDoctorSuccessMessage, doctor)
}

// FindAll is public. Anonymous callers only see approved doctors.
func (ctrl *DoctorController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "DoctorController.FindAll")
	if !ok {
		return
	}

	filter := &requests.DoctorFilter{
		Specialization: r.URL.Query().Get(constvars.URLQueryParamSpecialization),
	}
	pagination := utils.BuildPaginationRequest(r)

	doctors, total, err := ctrl.DoctorUsecase.FindAll(r.Context(), filter, pagination)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "DoctorUsecase.FindAll", err)
		return
	}

	ctrl.Log.Info("DoctorController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(doctors)))
	utils.BuildSuccessResponseWithPagination(w, http.StatusOK, constvars.GetDoctorsSuccessMessage, paginationOf(r, pagination, total), doctors)
}

func (ctrl *DoctorController) FindMine(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "DoctorController.FindMine")
	if !ok {
		return
	}

	doctor, err := ctrl.DoctorUsecase.FindMine(r.Context())
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "DoctorUsecase.FindMine", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetDoctorSuccessMessage, doctor)
}

func (ctrl *DoctorController) FindMyPatients(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "DoctorController.FindMyPatients")
	if !ok {
		return
	}
	pagination := utils.BuildPaginationRequest(r)

	patients, total, err := ctrl.DoctorUsecase.FindMyPatients(r.Context(), pagination)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "DoctorUsecase.FindMyPatients", err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, http.StatusOK, constvars.GetDoctorPatientsSuccessMessage, paginationOf(r, pagination, total), patients)
}

func (ctrl *DoctorController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "DoctorController.FindByID")
	if !ok {
		return
	}
	doctorID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	doctor, err := ctrl.DoctorUsecase.FindByID(r.Context(), doctorID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "DoctorUsecase.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetDoctorSuccessMessage, doctor)
}

func (ctrl *DoctorController) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "DoctorController.UpdateDoctor")
	if !ok {
		return
	}
	doctorID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	ctrl.Log.Info("DoctorController.UpdateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, doctorID))

	request := new(requests.UpdateDoctor)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	doctor, err := ctrl.DoctorUsecase.UpdateDoctor(r.Context(), doctorID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "DoctorUsecase.UpdateDoctor", err)
		return
	}

	ctrl.Log.Info("DoctorController.UpdateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, doctorID))
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.UpdateDoctorSuccessMessage, doctor)
}

// ApproveDoctor accepts an empty body, which approves the doctor.
func (ctrl *DoctorController) ApproveDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "DoctorController.ApproveDoctor")
	if !ok {
		return
	}
	doctorID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	request := new(requests.ApproveDoctor)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil && !errors.Is(err, io.EOF) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	doctor, err := ctrl.DoctorUsecase.ApproveDoctor(r.Context(), doctorID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "DoctorUsecase.ApproveDoctor", err)
		return
	}

	ctrl.Log.Info("DoctorController.ApproveDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, doctorID),
		zap.Bool("is_approved", doctor.IsApproved))
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.ApproveDoctorSuccessMessage, doctor)
}

func (ctrl *DoctorController) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "DoctorController.DeleteDoctor")
	if !ok {
		return
	}
	doctorID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	if err := ctrl.DoctorUsecase.DeleteDoctor(r.Context(), doctorID); err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "DoctorUsecase.DeleteDoctor", err)
		return
	}

	ctrl.Log.Info("DoctorController.DeleteDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, doctorID))
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.DeleteDoctorSuccessMessage, nil)
}
