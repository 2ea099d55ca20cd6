package invoices

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/shared/guard"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type invoiceUsecase struct {
	InvoiceRepository     contracts.InvoiceRepository
	PatientRepository     contracts.PatientRepository
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	PaymentGateway        contracts.PaymentGatewayService
	LockerService         contracts.LockerService
	AuditRecorder         contracts.AuditRecorder
	NotificationSender    contracts.NotificationSender
	RecipientResolver     contracts.RecipientResolver
	Guard                 *guard.Guard
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewInvoiceUsecase(
	invoiceRepository contracts.InvoiceRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	paymentGateway contracts.PaymentGatewayService,
	lockerService contracts.LockerService,
	auditRecorder contracts.AuditRecorder,
	notificationSender contracts.NotificationSender,
	recipientResolver contracts.RecipientResolver,
	accessGuard *guard.Guard,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.InvoiceUsecase {
	return &invoiceUsecase{
		InvoiceRepository:     invoiceRepository,
		PatientRepository:     patientRepository,
		DoctorRepository:      doctorRepository,
		AppointmentRepository: appointmentRepository,
		PaymentGateway:        paymentGateway,
		LockerService:         lockerService,
		AuditRecorder:         auditRecorder,
		NotificationSender:    notificationSender,
		RecipientResolver:     recipientResolver,
		Guard:                 accessGuard,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *invoiceUsecase) CreateInvoice(ctx context.Context, request *requests.CreateInvoice) (*models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.CreateInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("patient_id", request.PatientID),
	)

	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	target := &authorization.Target{Owners: authorization.Owners{PatientID: request.PatientID, DoctorID: request.DoctorID}}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionCreate, authorization.ResourceInvoice, target, "invoice"); err != nil {
		return nil, err
	}
	if err := uc.validateReferences(ctx, request); err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		InvoiceNumber: utils.GenerateInvoiceNumber(),
		PatientID:     request.PatientID,
		DoctorID:      request.DoctorID,
		AppointmentID: request.AppointmentID,
		Items:         toInvoiceItems(request.Items),
		Tax:           request.Tax,
		DueDate:       request.DueDate,
		PaymentStatus: models.PaymentStatusPending,
	}
	invoice.CalculateTotals()
	invoice.SetCreatedAtUpdatedAt()

	invoiceID, err := uc.InvoiceRepository.CreateInvoice(ctx, invoice)
	if err != nil {
		uc.Log.Error("invoiceUsecase.CreateInvoice error creating invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	invoice.ID = invoiceID

	uc.AuditRecorder.Record(ctx, authorization.ActionCreate, authorization.ResourceInvoice, invoice.ID, map[string]any{
		"invoiceNumber": invoice.InvoiceNumber,
		"patientId":     invoice.PatientID,
		"total":         invoice.Total,
	})
	uc.notifyPatient(ctx, invoice, utils.BuildInvoiceIssuedEmailPayload)

	uc.Log.Info("invoiceUsecase.CreateInvoice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceNumberKey, invoice.InvoiceNumber),
	)
	return invoice, nil
}

func (uc *invoiceUsecase) FindAll(ctx context.Context, filter *requests.InvoiceFilter, pagination *requests.Pagination) ([]models.Invoice, int64, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionList, authorization.ResourceInvoice, nil, constvars.ResourceInvoices); err != nil {
		return nil, 0, err
	}
	scope := uc.Guard.Scope(ctx, caller, authorization.ResourceInvoice)
	return uc.InvoiceRepository.FindAll(ctx, scope, filter, pagination)
}

func (uc *invoiceUsecase) FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	caller, invoice, err := uc.fetch(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionRead, authorization.ResourceInvoice, authorization.TargetOf(invoice), "invoice"); err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoice lets an admin correct an invoice. Amounts of a paid invoice are
// frozen and the only payment status change allowed here is paid to refunded;
// PayInvoice is the only way to reach paid.
func (uc *invoiceUsecase) UpdateInvoice(ctx context.Context, invoiceID string, request *requests.UpdateInvoice) (*models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.UpdateInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, invoiceID),
	)

	caller, invoice, err := uc.fetch(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	changes := request.Changes()
	if len(changes) == 0 {
		return nil, exceptions.ErrNothingToUpdate(nil)
	}
	target := authorization.TargetOf(invoice).WithChanges(changes)
	if err := uc.Guard.Check(ctx, caller, authorization.ActionUpdate, authorization.ResourceInvoice, target, "invoice"); err != nil {
		return nil, err
	}

	release, err := uc.lockInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	// Re-read under the lock so a payment that finished meanwhile is seen.
	invoice, err = uc.reload(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	if invoice.IsPaid() && (changes.Has("items") || changes.Has("tax")) {
		return nil, exceptions.ErrInvoiceAlreadyPaid(nil)
	}
	if request.PaymentStatus != nil && !paymentStatusChangeAllowed(invoice.PaymentStatus, *request.PaymentStatus) {
		return nil, exceptions.ErrPaymentStatusChange(nil)
	}

	if request.Items != nil {
		invoice.Items = toInvoiceItems(*request.Items)
	}
	if request.Tax != nil {
		invoice.Tax = *request.Tax
	}
	if request.DueDate != nil {
		invoice.DueDate = request.DueDate
	}
	if request.PaymentStatus != nil {
		invoice.PaymentStatus = *request.PaymentStatus
	}
	invoice.CalculateTotals()
	invoice.SetUpdatedAt()

	if err := uc.InvoiceRepository.UpdateInvoice(ctx, invoice); err != nil {
		return nil, err
	}
	uc.AuditRecorder.Record(ctx, authorization.ActionUpdate, authorization.ResourceInvoice, invoice.ID, map[string]any{
		"fields": changes.Fields(),
	})
	return invoice, nil
}

// PayInvoice charges the owning patient through the payment gateway. The invoice
// lock is held from the status check until the invoice is marked paid, so one
// invoice never reaches the gateway twice.
func (uc *invoiceUsecase) PayInvoice(ctx context.Context, invoiceID string, request *requests.PayInvoice) (*models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.PayInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, invoiceID),
	)

	caller, invoice, err := uc.fetch(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionPay, authorization.ResourceInvoice, authorization.TargetOf(invoice), "invoice"); err != nil {
		return nil, err
	}

	release, err := uc.lockInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	invoice, err = uc.reload(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	if invoice.IsPaid() {
		return nil, exceptions.ErrInvoiceAlreadyPaid(nil)
	}
	if invoice.PaymentStatus != models.PaymentStatusPending {
		return nil, exceptions.ErrInvoiceNotPayable(nil)
	}

	intent, err := uc.PaymentGateway.CreatePaymentIntent(ctx, &requests.PaymentIntent{
		Amount:        toMinorUnits(invoice.Total),
		Currency:      uc.InternalConfig.PaymentGateway.Currency,
		PaymentMethod: request.PaymentMethod,
		Metadata: map[string]string{
			"invoiceId":     invoice.ID,
			"invoiceNumber": invoice.InvoiceNumber,
		},
	})
	if err != nil {
		uc.Log.Error("invoiceUsecase.PayInvoice error creating payment intent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInvoiceNumberKey, invoice.InvoiceNumber),
			zap.Error(err),
		)
		return nil, err
	}

	paidAt := time.Now().UTC()
	invoice.PaymentMethod = request.PaymentMethod
	invoice.PaymentIntentID = intent.ID
	invoice.PaidAt = &paidAt
	invoice.SetUpdatedAt()

	marked, err := uc.InvoiceRepository.MarkPaid(ctx, invoice)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, exceptions.ErrInvoiceAlreadyPaid(nil)
	}
	invoice.PaymentStatus = models.PaymentStatusPaid

	uc.AuditRecorder.Record(ctx, authorization.ActionPay, authorization.ResourceInvoice, invoice.ID, map[string]any{
		"paymentMethod":   invoice.PaymentMethod,
		"paymentIntentId": invoice.PaymentIntentID,
		"total":           invoice.Total,
	})
	uc.notifyPatient(ctx, invoice, utils.BuildInvoicePaidEmailPayload)

	utils.LogBusinessEvent(uc.Log, "invoice_paid", requestID,
		zap.String(constvars.LoggingInvoiceNumberKey, invoice.InvoiceNumber),
		zap.String(constvars.LoggingPaymentIntentIDKey, invoice.PaymentIntentID),
	)
	return invoice, nil
}

func (uc *invoiceUsecase) DeleteInvoice(ctx context.Context, invoiceID string) error {
	caller, invoice, err := uc.fetch(ctx, invoiceID)
	if err != nil {
		return err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionDelete, authorization.ResourceInvoice, authorization.TargetOf(invoice), "invoice"); err != nil {
		return err
	}

	if err := uc.InvoiceRepository.DeleteByID(ctx, invoice.ID); err != nil {
		return err
	}
	uc.AuditRecorder.Record(ctx, authorization.ActionDelete, authorization.ResourceInvoice, invoice.ID, map[string]any{
		"invoiceNumber": invoice.InvoiceNumber,
	})
	return nil
}

func (uc *invoiceUsecase) validateReferences(ctx context.Context, request *requests.CreateInvoice) error {
	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return exceptions.ErrNotFound(nil, "patient")
	}

	if request.DoctorID != "" {
		doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return exceptions.ErrNotFound(nil, "doctor")
		}
	}

	if request.AppointmentID != "" {
		appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return exceptions.ErrNotFound(nil, "appointment")
		}
		if appointment.PatientID != request.PatientID {
			return exceptions.ErrInputValidation(errors.New("appointment belongs to another patient"))
		}
		if request.DoctorID != "" && appointment.DoctorID != request.DoctorID {
			return exceptions.ErrInputValidation(errors.New("appointment belongs to another doctor"))
		}
	}
	return nil
}

func (uc *invoiceUsecase) fetch(ctx context.Context, invoiceID string) (guard.Caller, *models.Invoice, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	invoice, err := uc.InvoiceRepository.FindByID(ctx, invoiceID)
	if err != nil {
		return guard.Caller{}, nil, err
	}
	if invoice == nil {
		return guard.Caller{}, nil, exceptions.ErrNotFound(nil, "invoice")
	}
	return caller, invoice, nil
}

func (uc *invoiceUsecase) reload(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	invoice, err := uc.InvoiceRepository.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, exceptions.ErrNotFound(nil, "invoice")
	}
	return invoice, nil
}

// lockInvoice serializes payment and payment status changes of one invoice.
// It fails closed, unlike the booking lock.
func (uc *invoiceUsecase) lockInvoice(ctx context.Context, invoiceID string) (func(), error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := fmt.Sprintf(constvars.RedisKeyPrefixInvoiceLock, invoiceID)

	acquired, lockValue, err := uc.LockerService.TryLock(ctx, key, uc.InternalConfig.PaymentGateway.LockTTL)
	if err != nil {
		uc.Log.Error("invoiceUsecase.lockInvoice error acquiring invoice lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, exceptions.ErrRedisAcquireLock(err)
	}
	if !acquired {
		return nil, exceptions.ErrPaymentInProgress(nil)
	}

	return func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
			uc.Log.Warn("invoiceUsecase.lockInvoice error releasing invoice lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}

// paymentStatusChangeAllowed accepts a no-op or a refund of a paid invoice.
func paymentStatusChangeAllowed(from, to string) bool {
	if from == to {
		return true
	}
	return from == models.PaymentStatusPaid && to == models.PaymentStatusRefunded
}

func (uc *invoiceUsecase) notifyPatient(ctx context.Context, invoice *models.Invoice, build func(*models.User, *models.Invoice) *requests.EmailPayload) {
	for _, user := range uc.RecipientResolver.UsersOf(ctx, authorization.Owners{PatientID: invoice.PatientID}) {
		uc.NotificationSender.Notify(ctx, build(user, invoice))
	}
}

func toInvoiceItems(input []requests.InvoiceItem) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(input))
	for _, item := range input {
		items = append(items, models.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return items
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
