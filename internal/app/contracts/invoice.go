package contracts

import (
	"context"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/dto/requests"
)

type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, invoice *models.Invoice) (string, error)
	FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error)
	FindAll(ctx context.Context, scope authorization.Predicate, filter *requests.InvoiceFilter, pagination *requests.Pagination) ([]models.Invoice, int64, error)
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error
	// MarkPaid flips a pending invoice to paid. It reports false when the invoice
	// was no longer pending by the time the update ran.
	MarkPaid(ctx context.Context, invoice *models.Invoice) (bool, error)
	DeleteByID(ctx context.Context, invoiceID string) error
}

type InvoiceUsecase interface {
	CreateInvoice(ctx context.Context, request *requests.CreateInvoice) (*models.Invoice, error)
	FindAll(ctx context.Context, filter *requests.InvoiceFilter, pagination *requests.Pagination) ([]models.Invoice, int64, error)
	FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, request *requests.UpdateInvoice) (*models.Invoice, error)
	PayInvoice(ctx context.Context, invoiceID string, request *requests.PayInvoice) (*models.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error
}
