package controllers

import (
	"net/http"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MedicalRecordController struct {
	Log                  *zap.Logger
	MedicalRecordUsecase contracts.MedicalRecordUsecase
	MaxUploadSize        int64
}

func NewMedicalRecordController(logger *zap.Logger, medicalRecordUsecase contracts.MedicalRecordUsecase, maxUploadSize int64) *MedicalRecordController {
	if maxUploadSize <= 0 {
		maxUploadSize = constvars.MaxAttachmentSize
	}
	return &MedicalRecordController{
		Log:                  logger,
		MedicalRecordUsecase: medicalRecordUsecase,
		MaxUploadSize:        maxUploadSize,
	}
}

func (ctrl *MedicalRecordController) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "MedicalRecordController.CreateMedicalRecord")
	if !ok {
		return
	}

	ctrl.Log.Info("MedicalRecordController.CreateMedicalRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	request, err := bindSanitized(r, utils.SanitizeCreateMedicalRecordRequest)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	record, err := ctrl.MedicalRecordUsecase.CreateMedicalRecord(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "MedicalRecordUsecase.CreateMedicalRecord", err)
		return
	}

	ctrl.Log.Info("MedicalRecordController.CreateMedicalRecord succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, record.ID))
	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.CreateMedicalRecordSuccessMessage, record)
}

func (ctrl *MedicalRecordController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "MedicalRecordController.FindAll")
	if !ok {
		return
	}
	pagination := utils.BuildPaginationRequest(r)

	records, total, err := ctrl.MedicalRecordUsecase.FindAll(r.Context(), pagination)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "MedicalRecordUsecase.FindAll", err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, http.StatusOK, constvars.GetMedicalRecordsSuccessMessage, paginationOf(r, pagination, total), records)
}

func (ctrl *MedicalRecordController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "MedicalRecordController.FindByID")
	if !ok {
		return
	}
	recordID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	record, err := ctrl.MedicalRecordUsecase.FindByID(r.Context(), recordID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "MedicalRecordUsecase.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetMedicalRecordSuccessMessage, record)
}

func (ctrl *MedicalRecordController) UpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "MedicalRecordController.UpdateMedicalRecord")
	if !ok {
		return
	}
	recordID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	request := new(requests.UpdateMedicalRecord)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	record, err := ctrl.MedicalRecordUsecase.UpdateMedicalRecord(r.Context(), recordID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "MedicalRecordUsecase.UpdateMedicalRecord", err)
		return
	}

	ctrl.Log.Info("MedicalRecordController.UpdateMedicalRecord succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, recordID))
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.UpdateMedicalRecordSuccessMessage, record)
}

func (ctrl *MedicalRecordController) DeleteMedicalRecord(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "MedicalRecordController.DeleteMedicalRecord")
	if !ok {
		return
	}
	recordID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	if err := ctrl.MedicalRecordUsecase.DeleteMedicalRecord(r.Context(), recordID); err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "MedicalRecordUsecase.DeleteMedicalRecord", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.DeleteMedicalRecordSuccessMessage, nil)
}

// UploadAttachment expects a multipart form with the file under the "file" field.
func (ctrl *MedicalRecordController) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "MedicalRecordController.UploadAttachment")
	if !ok {
		return
	}
	recordID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(ctrl.MaxUploadSize); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile(constvars.FormFieldFile)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	if err := utils.ValidateAttachment(fileHeader, ctrl.MaxUploadSize); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	contentType := fileHeader.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	ctrl.Log.Info("MedicalRecordController.UploadAttachment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, recordID),
		zap.String("file_name", fileHeader.Filename),
		zap.Int64("file_size", fileHeader.Size))

	attachment, err := ctrl.MedicalRecordUsecase.UploadAttachment(r.Context(), recordID, file, &requests.UploadAttachment{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
	})
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "MedicalRecordUsecase.UploadAttachment", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.UploadAttachmentSuccessMessage, attachment)
}

func (ctrl *MedicalRecordController) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "MedicalRecordController.DeleteAttachment")
	if !ok {
		return
	}
	recordID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	attachmentID := chi.URLParam(r, constvars.URLParamAttachmentID)
	if _, err := uuid.Parse(attachmentID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamAttachmentID))
		return
	}

	if err := ctrl.MedicalRecordUsecase.DeleteAttachment(r.Context(), recordID, attachmentID); err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "MedicalRecordUsecase.DeleteAttachment", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.DeleteAttachmentSuccessMessage, nil)
}
