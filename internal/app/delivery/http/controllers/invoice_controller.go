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

type InvoiceController struct {
	Log            *zap.Logger
	InvoiceUsecase contracts.InvoiceUsecase
}

func NewInvoiceController(logger *zap.Logger, invoiceUsecase contracts.InvoiceUsecase) *InvoiceController {
	return &InvoiceController{
		Log:            logger,
		InvoiceUsecase: invoiceUsecase,
	}
}

func (ctrl *InvoiceController) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "InvoiceController.CreateInvoice")
	if !ok {
		return
	}

	request := new(requests.CreateInvoice)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	invoice, err := ctrl.InvoiceUsecase.CreateInvoice(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "InvoiceUsecase.CreateInvoice", err)
		return
	}

	ctrl.Log.Info("InvoiceController.CreateInvoice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceNumberKey, invoice.InvoiceNumber))
	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.CreateInvoiceSuccessMessage, invoice)
}

func (ctrl *InvoiceController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "InvoiceController.FindAll")
	if !ok {
		return
	}

	filter := &requests.InvoiceFilter{
		PaymentStatus: r.URL.Query().Get(constvars.URLQueryParamPaymentStatus),
	}
	if err := utils.ValidateStruct(filter); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	pagination := utils.BuildPaginationRequest(r)

	invoices, total, err := ctrl.InvoiceUsecase.FindAll(r.Context(), filter, pagination)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "InvoiceUsecase.FindAll", err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, http.StatusOK, constvars.GetInvoicesSuccessMessage, paginationOf(r, pagination, total), invoices)
}

func (ctrl *InvoiceController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "InvoiceController.FindByID")
	if !ok {
		return
	}
	invoiceID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	invoice, err := ctrl.InvoiceUsecase.FindByID(r.Context(), invoiceID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "InvoiceUsecase.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.GetInvoiceSuccessMessage, invoice)
}

func (ctrl *InvoiceController) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "InvoiceController.UpdateInvoice")
	if !ok {
		return
	}
	invoiceID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	request := new(requests.UpdateInvoice)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	invoice, err := ctrl.InvoiceUsecase.UpdateInvoice(r.Context(), invoiceID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "InvoiceUsecase.UpdateInvoice", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.UpdateInvoiceSuccessMessage, invoice)
}

func (ctrl *InvoiceController) PayInvoice(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "InvoiceController.PayInvoice")
	if !ok {
		return
	}
	invoiceID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	ctrl.Log.Info("InvoiceController.PayInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, invoiceID))

	request := new(requests.PayInvoice)
	if err := utils.DecodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	invoice, err := ctrl.InvoiceUsecase.PayInvoice(r.Context(), invoiceID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "InvoiceUsecase.PayInvoice", err)
		return
	}

	ctrl.Log.Info("InvoiceController.PayInvoice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceNumberKey, invoice.InvoiceNumber),
		zap.String(constvars.LoggingPaymentIntentIDKey, invoice.PaymentIntentID))
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.PayInvoiceSuccessMessage, invoice)
}

func (ctrl *InvoiceController) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "InvoiceController.DeleteInvoice")
	if !ok {
		return
	}
	invoiceID, ok := urlParamID(ctrl.Log, w, r, requestID, constvars.URLParamID)
	if !ok {
		return
	}

	if err := ctrl.InvoiceUsecase.DeleteInvoice(r.Context(), invoiceID); err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "InvoiceUsecase.DeleteInvoice", err)
		return
	}

	utils.BuildSuccessResponse(w, http.StatusOK, constvars.DeleteInvoiceSuccessMessage, nil)
}
