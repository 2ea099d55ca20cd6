package invoices

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/core/coretest"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/dto/responses"
	"hospital-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, request *requests.PaymentIntent) (*responses.PaymentIntent, error) {
	args := m.Called(ctx, request)
	intent, _ := args.Get(0).(*responses.PaymentIntent)
	return intent, args.Error(1)
}

type fixture struct {
	store        *coretest.Store
	gateway      *MockPaymentGateway
	audit        *coretest.AuditRecorder
	notification *coretest.NotificationSender
	locker       *coretest.Locker
	usecase      contracts.InvoiceUsecase
	admin        *models.User
	patientUser  *models.User
	patient      *models.Patient
	doctorUser   *models.User
	doctor       *models.Doctor
}

func newFixture() *fixture {
	store := coretest.NewStore()
	f := &fixture{
		store:        store,
		gateway:      &MockPaymentGateway{},
		audit:        &coretest.AuditRecorder{},
		notification: &coretest.NotificationSender{},
		locker:       &coretest.Locker{},
	}
	f.usecase = NewInvoiceUsecase(
		&coretest.InvoiceRepository{Store: store},
		&coretest.PatientRepository{Store: store},
		&coretest.DoctorRepository{Store: store},
		&coretest.AppointmentRepository{Store: store},
		f.gateway,
		f.locker,
		f.audit,
		f.notification,
		&coretest.RecipientResolver{Store: store},
		coretest.NewGuard(store),
		&config.InternalConfig{PaymentGateway: config.AppPaymentGateway{Currency: "usd"}},
		zap.NewNop(),
	)
	f.admin = store.AddUser("root", authorization.RoleAdmin)
	f.patientUser, f.patient = store.AddPatient("alice")
	f.doctorUser, f.doctor = store.AddDoctor("house", true)
	return f
}

func (f *fixture) as(user *models.User) context.Context {
	return coretest.AsUser(context.Background(), user)
}

func TestCreateInvoice(t *testing.T) {
	request := func(f *fixture) *requests.CreateInvoice {
		return &requests.CreateInvoice{
			PatientID: f.patient.ID,
			DoctorID:  f.doctor.ID,
			Items: []requests.InvoiceItem{
				{Description: "consultation", Quantity: 1, UnitPrice: 80},
				{Description: "lab", Quantity: 2, UnitPrice: 10},
			},
			Tax: 5,
		}
	}

	t.Run("Admin issues an invoice", func(t *testing.T) {
		f := newFixture()

		invoice, err := f.usecase.CreateInvoice(f.as(f.admin), request(f))

		require.NoError(t, err)
		assert.Equal(t, 100.0, invoice.Subtotal)
		assert.Equal(t, 105.0, invoice.Total)
		assert.Equal(t, models.PaymentStatusPending, invoice.PaymentStatus)
		assert.NotEmpty(t, invoice.InvoiceNumber)
		assert.Equal(t, []string{f.patientUser.Email}, f.notification.Recipients())
	})

	t.Run("Doctor cannot issue invoices", func(t *testing.T) {
		f := newFixture()

		_, err := f.usecase.CreateInvoice(f.as(f.doctorUser), request(f))
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
		assert.Empty(t, f.store.Invoices)
	})

	t.Run("Appointment must belong to the patient", func(t *testing.T) {
		f := newFixture()
		_, other := f.store.AddPatient("bob")
		appointment := f.store.AddAppointment(other.ID, f.doctor.ID, "2024-06-01", "10:00", models.AppointmentStatusCompleted)
		req := request(f)
		req.AppointmentID = appointment.ID

		_, err := f.usecase.CreateInvoice(f.as(f.admin), req)
		assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))
	})

	t.Run("Unknown patient", func(t *testing.T) {
		f := newFixture()
		req := request(f)
		req.PatientID = "ffffffffffffffffffffffff"

		_, err := f.usecase.CreateInvoice(f.as(f.admin), req)
		assert.Equal(t, exceptions.KindResourceNotFound, exceptions.KindOf(err))
	})
}

func TestPayInvoice(t *testing.T) {
	card := &requests.PayInvoice{PaymentMethod: "card"}

	t.Run("Owning patient pays once", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 49.99)
		f.gateway.On("CreatePaymentIntent", mock.Anything, mock.MatchedBy(func(request *requests.PaymentIntent) bool {
			return request.Amount == 4999 && request.Currency == "usd" && request.Metadata["invoiceId"] == invoice.ID
		})).Return(&responses.PaymentIntent{ID: "pi_1", Status: "succeeded"}, nil).Once()

		paid, err := f.usecase.PayInvoice(f.as(f.patientUser), invoice.ID, card)

		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
		assert.Equal(t, "pi_1", f.store.Invoice(invoice.ID).PaymentIntentID)
		assert.Equal(t, []authorization.Action{authorization.ActionPay}, f.audit.Actions())

		_, err = f.usecase.PayInvoice(f.as(f.patientUser), invoice.ID, card)
		assert.Equal(t, exceptions.KindInvalidTransition, exceptions.KindOf(err))
		f.gateway.AssertNumberOfCalls(t, "CreatePaymentIntent", 1)
	})

	t.Run("Gateway failure leaves the invoice unpaid", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
		f.gateway.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return(nil, exceptions.ErrPaymentGateway(errors.New("card declined"))).Once()

		_, err := f.usecase.PayInvoice(f.as(f.patientUser), invoice.ID, card)

		assert.Equal(t, exceptions.KindUpstreamFailure, exceptions.KindOf(err))
		stored := f.store.Invoice(invoice.ID)
		assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
		assert.Nil(t, stored.PaidAt)
		assert.Empty(t, f.audit.Entries)
	})

	t.Run("Concurrent payments reach the gateway once", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
		f.gateway.On("CreatePaymentIntent", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { time.Sleep(50 * time.Millisecond) }).
			Return(&responses.PaymentIntent{ID: "pi_1", Status: "succeeded"}, nil)

		const attempts = 5
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.usecase.PayInvoice(f.as(f.patientUser), invoice.ID, card)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.Equal(t, exceptions.KindInvalidTransition, exceptions.KindOf(err))
		}
		assert.Equal(t, 1, succeeded)
		f.gateway.AssertNumberOfCalls(t, "CreatePaymentIntent", 1)
		assert.Equal(t, models.PaymentStatusPaid, f.store.Invoice(invoice.ID).PaymentStatus)
	})

	t.Run("Payment in progress elsewhere is refused", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
		f.locker.Hold(fmt.Sprintf("lock:invoice:%s", invoice.ID))

		_, err := f.usecase.PayInvoice(f.as(f.patientUser), invoice.ID, card)
		assert.Equal(t, exceptions.KindInvalidTransition, exceptions.KindOf(err))
		f.gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
	})

	t.Run("Lock failure does not charge", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
		f.locker.Err = errors.New("redis down")

		_, err := f.usecase.PayInvoice(f.as(f.patientUser), invoice.ID, card)
		assert.Error(t, err)
		f.gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
		assert.Equal(t, models.PaymentStatusPending, f.store.Invoice(invoice.ID).PaymentStatus)
	})

	t.Run("Refunded invoice cannot be paid again", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
		refunded := f.store.Invoices[invoice.ID]
		refunded.PaymentStatus = models.PaymentStatusRefunded
		f.store.Invoices[invoice.ID] = refunded

		_, err := f.usecase.PayInvoice(f.as(f.patientUser), invoice.ID, card)
		assert.Equal(t, exceptions.KindInvalidTransition, exceptions.KindOf(err))
		f.gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
	})

	t.Run("Doctor cannot pay", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)

		_, err := f.usecase.PayInvoice(f.as(f.doctorUser), invoice.ID, card)
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
		f.gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
	})

	t.Run("Other patient cannot pay", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
		stranger, _ := f.store.AddPatient("mallory")

		_, err := f.usecase.PayInvoice(f.as(stranger), invoice.ID, card)
		assert.Equal(t, exceptions.KindNotOwner, exceptions.KindOf(err))
	})
}

func TestUpdateInvoice(t *testing.T) {
	t.Run("Paid amounts are frozen", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
		_, err := (&coretest.InvoiceRepository{Store: f.store}).MarkPaid(context.Background(), invoice)
		require.NoError(t, err)
		tax := 3.0

		_, err = f.usecase.UpdateInvoice(f.as(f.admin), invoice.ID, &requests.UpdateInvoice{Tax: &tax})
		assert.Equal(t, exceptions.KindInvalidTransition, exceptions.KindOf(err))
	})

	t.Run("Payment status changes", func(t *testing.T) {
		tests := []struct {
			name    string
			from    string
			to      string
			allowed bool
		}{
			{name: "paid to refunded", from: models.PaymentStatusPaid, to: models.PaymentStatusRefunded, allowed: true},
			{name: "pending unchanged", from: models.PaymentStatusPending, to: models.PaymentStatusPending, allowed: true},
			{name: "paid back to pending", from: models.PaymentStatusPaid, to: models.PaymentStatusPending},
			{name: "pending to paid", from: models.PaymentStatusPending, to: models.PaymentStatusPaid},
			{name: "pending to refunded", from: models.PaymentStatusPending, to: models.PaymentStatusRefunded},
			{name: "refunded back to pending", from: models.PaymentStatusRefunded, to: models.PaymentStatusPending},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture()
				invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
				stored := f.store.Invoices[invoice.ID]
				stored.PaymentStatus = tc.from
				f.store.Invoices[invoice.ID] = stored
				status := tc.to

				_, err := f.usecase.UpdateInvoice(f.as(f.admin), invoice.ID, &requests.UpdateInvoice{PaymentStatus: &status})

				if tc.allowed {
					require.NoError(t, err)
					assert.Equal(t, tc.to, f.store.Invoice(invoice.ID).PaymentStatus)
					return
				}
				assert.Equal(t, exceptions.KindInvalidTransition, exceptions.KindOf(err))
				assert.Equal(t, tc.from, f.store.Invoice(invoice.ID).PaymentStatus)
			})
		}
	})

	t.Run("Admin recalculates totals", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
		tax := 2.5

		updated, err := f.usecase.UpdateInvoice(f.as(f.admin), invoice.ID, &requests.UpdateInvoice{Tax: &tax})
		require.NoError(t, err)
		assert.Equal(t, 22.5, updated.Total)
	})

	t.Run("Patient cannot edit", func(t *testing.T) {
		f := newFixture()
		invoice := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
		tax := 0.0

		_, err := f.usecase.UpdateInvoice(f.as(f.patientUser), invoice.ID, &requests.UpdateInvoice{Tax: &tax})
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	})
}

func TestFindInvoices(t *testing.T) {
	f := newFixture()
	_, other := f.store.AddPatient("bob")
	mine := f.store.AddInvoice(f.patient.ID, f.doctor.ID, 20)
	f.store.AddInvoice(other.ID, "", 30)

	_, total, err := f.usecase.FindAll(f.as(f.patientUser), nil, &requests.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = f.usecase.FindAll(f.as(f.doctorUser), nil, &requests.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = f.usecase.FindAll(f.as(f.admin), nil, &requests.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	found, err := f.usecase.FindByID(f.as(f.doctorUser), mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.InvoiceNumber, found.InvoiceNumber)
}
