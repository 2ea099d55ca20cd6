package appointments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/core/coretest"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store        *coretest.Store
	usecase      contracts.AppointmentUsecase
	audit        *coretest.AuditRecorder
	notification *coretest.NotificationSender
	locker       *coretest.Locker
}

func newFixture() *fixture {
	store := coretest.NewStore()
	f := &fixture{
		store:        store,
		audit:        &coretest.AuditRecorder{},
		notification: &coretest.NotificationSender{},
		locker:       &coretest.Locker{},
	}
	f.usecase = NewAppointmentUsecase(
		&coretest.AppointmentRepository{Store: store},
		&coretest.DoctorRepository{Store: store},
		&coretest.PatientRepository{Store: store},
		f.locker,
		f.audit,
		f.notification,
		&coretest.RecipientResolver{Store: store},
		coretest.NewGuard(store),
		10*time.Second,
		zap.NewNop(),
	)
	return f
}

func booking(doctorID string) *requests.CreateAppointment {
	return &requests.CreateAppointment{DoctorID: doctorID, Date: "2024-06-01", TimeSlot: "10:00", Reason: "checkup"}
}

func strPtr(s string) *string { return &s }

func TestCreateAppointment(t *testing.T) {
	t.Run("Patient books an approved doctor", func(t *testing.T) {
		f := newFixture()
		doctorUser, doctor := f.store.AddDoctor("house", true)
		patientUser, patient := f.store.AddPatient("alice")

		appointment, err := f.usecase.CreateAppointment(coretest.AsUser(context.Background(), patientUser), booking(doctor.ID))

		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusScheduled, appointment.Status)
		assert.Equal(t, models.PaymentStatusPending, appointment.PaymentStatus)
		assert.Equal(t, patient.ID, appointment.PatientID, "patients always book for their own profile")
		assert.Equal(t, []authorization.Action{authorization.ActionCreate}, f.audit.Actions())
		assert.ElementsMatch(t, []string{patientUser.Email, doctorUser.Email}, f.notification.Recipients())
	})

	t.Run("Second booking of the same slot is rejected", func(t *testing.T) {
		f := newFixture()
		_, doctor := f.store.AddDoctor("house", true)
		first, _ := f.store.AddPatient("alice")
		second, _ := f.store.AddPatient("bob")

		_, err := f.usecase.CreateAppointment(coretest.AsUser(context.Background(), first), booking(doctor.ID))
		require.NoError(t, err)

		_, err = f.usecase.CreateAppointment(coretest.AsUser(context.Background(), second), booking(doctor.ID))
		assert.Equal(t, exceptions.KindAlreadyExists, exceptions.KindOf(err))
	})

	t.Run("Cancelled appointment frees the slot", func(t *testing.T) {
		f := newFixture()
		_, doctor := f.store.AddDoctor("house", true)
		_, other := f.store.AddPatient("carol")
		f.store.AddAppointment(other.ID, doctor.ID, "2024-06-01", "10:00", models.AppointmentStatusCancelled)
		patientUser, _ := f.store.AddPatient("alice")

		_, err := f.usecase.CreateAppointment(coretest.AsUser(context.Background(), patientUser), booking(doctor.ID))
		assert.NoError(t, err)
	})

	t.Run("Unapproved doctor is not found", func(t *testing.T) {
		f := newFixture()
		_, doctor := f.store.AddDoctor("house", false)
		patientUser, _ := f.store.AddPatient("alice")

		_, err := f.usecase.CreateAppointment(coretest.AsUser(context.Background(), patientUser), booking(doctor.ID))
		assert.Equal(t, exceptions.KindResourceNotFound, exceptions.KindOf(err))
	})

	t.Run("Patient without a profile cannot book", func(t *testing.T) {
		f := newFixture()
		_, doctor := f.store.AddDoctor("house", true)
		patientUser := f.store.AddUser("newcomer", authorization.RolePatient)

		_, err := f.usecase.CreateAppointment(coretest.AsUser(context.Background(), patientUser), booking(doctor.ID))
		assert.Equal(t, exceptions.KindProfileMissing, exceptions.KindOf(err))
		assert.Empty(t, f.store.Appointments)
	})

	t.Run("Doctor must name the patient", func(t *testing.T) {
		f := newFixture()
		doctorUser, doctor := f.store.AddDoctor("house", true)
		_, patient := f.store.AddPatient("alice")
		ctx := coretest.AsUser(context.Background(), doctorUser)

		_, err := f.usecase.CreateAppointment(ctx, booking(doctor.ID))
		assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))

		request := booking(doctor.ID)
		request.PatientID = patient.ID
		appointment, err := f.usecase.CreateAppointment(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, patient.ID, appointment.PatientID)
	})

	t.Run("Held booking lock rejects before touching storage", func(t *testing.T) {
		f := newFixture()
		_, doctor := f.store.AddDoctor("house", true)
		patientUser, _ := f.store.AddPatient("alice")
		f.locker.Hold(fmt.Sprintf(constvars.RedisKeyPrefixBookingLock, doctor.ID, "2024-06-01", "10:00"))

		_, err := f.usecase.CreateAppointment(coretest.AsUser(context.Background(), patientUser), booking(doctor.ID))
		assert.Equal(t, exceptions.KindAlreadyExists, exceptions.KindOf(err))
		assert.Empty(t, f.store.Appointments)
	})

	t.Run("Anonymous caller is rejected", func(t *testing.T) {
		f := newFixture()
		_, doctor := f.store.AddDoctor("house", true)

		_, err := f.usecase.CreateAppointment(context.Background(), booking(doctor.ID))
		assert.Equal(t, exceptions.KindNotAuthenticated, exceptions.KindOf(err))
	})
}

func TestCreateAppointmentConcurrentBookings(t *testing.T) {
	for name, lockErr := range map[string]error{
		"with booking lock":          nil,
		"with lock service degraded": errors.New("redis unreachable"),
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.locker.Err = lockErr
			_, doctor := f.store.AddDoctor("house", true)

			const attempts = 8
			users := make([]*models.User, attempts)
			for i := range users {
				users[i], _ = f.store.AddPatient(fmt.Sprintf("patient-%d", i))
			}

			var wg sync.WaitGroup
			errs := make([]error, attempts)
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = f.usecase.CreateAppointment(coretest.AsUser(context.Background(), users[i]), booking(doctor.ID))
				}(i)
			}
			wg.Wait()

			succeeded := 0
			for _, err := range errs {
				if err == nil {
					succeeded++
					continue
				}
				assert.Equal(t, exceptions.KindAlreadyExists, exceptions.KindOf(err))
			}
			assert.Equal(t, 1, succeeded)
			assert.Len(t, f.store.Appointments, 1)
		})
	}
}

func TestUpdateAppointment(t *testing.T) {
	setup := func() (*fixture, *models.User, *models.User, *models.Appointment) {
		f := newFixture()
		doctorUser, doctor := f.store.AddDoctor("house", true)
		patientUser, patient := f.store.AddPatient("alice")
		appointment := f.store.AddAppointment(patient.ID, doctor.ID, "2024-06-01", "10:00", models.AppointmentStatusScheduled)
		return f, patientUser, doctorUser, appointment
	}

	t.Run("Owning patient cancels", func(t *testing.T) {
		f, patientUser, _, appointment := setup()

		updated, err := f.usecase.UpdateAppointment(coretest.AsUser(context.Background(), patientUser), appointment.ID, &requests.UpdateAppointment{Status: strPtr(models.AppointmentStatusCancelled)})

		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusCancelled, updated.Status)
		assert.Equal(t, models.AppointmentStatusCancelled, f.store.Appointment(appointment.ID).Status)
		assert.Len(t, f.notification.Payloads, 2)
	})

	t.Run("Patient editing notes is rejected as a whole", func(t *testing.T) {
		f, patientUser, _, appointment := setup()

		_, err := f.usecase.UpdateAppointment(coretest.AsUser(context.Background(), patientUser), appointment.ID, &requests.UpdateAppointment{
			Status: strPtr(models.AppointmentStatusCancelled),
			Notes:  strPtr("x"),
		})

		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
		assert.Equal(t, models.AppointmentStatusScheduled, f.store.Appointment(appointment.ID).Status)
		assert.Empty(t, f.audit.Entries)
	})

	t.Run("Patient cannot confirm", func(t *testing.T) {
		f, patientUser, _, appointment := setup()

		_, err := f.usecase.UpdateAppointment(coretest.AsUser(context.Background(), patientUser), appointment.ID, &requests.UpdateAppointment{Status: strPtr(models.AppointmentStatusConfirmed)})
		assert.Equal(t, exceptions.KindInvalidTransition, exceptions.KindOf(err))
	})

	t.Run("Other patient is not the owner", func(t *testing.T) {
		f, _, _, appointment := setup()
		stranger, _ := f.store.AddPatient("mallory")

		_, err := f.usecase.UpdateAppointment(coretest.AsUser(context.Background(), stranger), appointment.ID, &requests.UpdateAppointment{Status: strPtr(models.AppointmentStatusCancelled)})
		assert.Equal(t, exceptions.KindNotOwner, exceptions.KindOf(err))
	})

	t.Run("Owning doctor edits any field", func(t *testing.T) {
		f, _, doctorUser, appointment := setup()

		updated, err := f.usecase.UpdateAppointment(coretest.AsUser(context.Background(), doctorUser), appointment.ID, &requests.UpdateAppointment{Notes: strPtr("bring results")})
		require.NoError(t, err)
		assert.Equal(t, "bring results", updated.Notes)
	})

	t.Run("Moving onto a taken slot is rejected", func(t *testing.T) {
		f, _, doctorUser, appointment := setup()
		_, other := f.store.AddPatient("bob")
		f.store.AddAppointment(other.ID, appointment.DoctorID, "2024-06-01", "11:00", models.AppointmentStatusConfirmed)

		_, err := f.usecase.UpdateAppointment(coretest.AsUser(context.Background(), doctorUser), appointment.ID, &requests.UpdateAppointment{TimeSlot: strPtr("11:00")})
		assert.Equal(t, exceptions.KindAlreadyExists, exceptions.KindOf(err))
		assert.Equal(t, "10:00", f.store.Appointment(appointment.ID).TimeSlot)
	})

	t.Run("Missing appointment is not found before authorization", func(t *testing.T) {
		f, patientUser, _, _ := setup()

		_, err := f.usecase.UpdateAppointment(coretest.AsUser(context.Background(), patientUser), "ffffffffffffffffffffffff", &requests.UpdateAppointment{Status: strPtr(models.AppointmentStatusCancelled)})
		assert.Equal(t, exceptions.KindResourceNotFound, exceptions.KindOf(err))
	})
}

func TestFindAllAppointmentsIsScoped(t *testing.T) {
	f := newFixture()
	doctorUser, doctor := f.store.AddDoctor("house", true)
	_, otherDoctor := f.store.AddDoctor("wilson", true)
	patientUser, patient := f.store.AddPatient("alice")
	_, otherPatient := f.store.AddPatient("bob")
	admin := f.store.AddUser("root", authorization.RoleAdmin)

	f.store.AddAppointment(patient.ID, doctor.ID, "2024-06-01", "10:00", models.AppointmentStatusScheduled)
	f.store.AddAppointment(otherPatient.ID, doctor.ID, "2024-06-01", "11:00", models.AppointmentStatusScheduled)
	f.store.AddAppointment(otherPatient.ID, otherDoctor.ID, "2024-06-01", "10:00", models.AppointmentStatusScheduled)

	tests := []struct {
		name  string
		user  *models.User
		total int64
	}{
		{"Patient sees own appointments", patientUser, 1},
		{"Doctor sees appointments booked with them", doctorUser, 2},
		{"Admin sees everything", admin, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := f.usecase.FindAll(coretest.AsUser(context.Background(), tt.user), nil, &requests.Pagination{Page: 1, PageSize: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
		})
	}

	t.Run("Anonymous callers are rejected", func(t *testing.T) {
		_, _, err := f.usecase.FindAll(context.Background(), nil, nil)
		assert.Equal(t, exceptions.KindNotAuthenticated, exceptions.KindOf(err))
	})
}

func TestDeleteAppointmentIsAdminOnly(t *testing.T) {
	f := newFixture()
	doctorUser, doctor := f.store.AddDoctor("house", true)
	_, patient := f.store.AddPatient("alice")
	admin := f.store.AddUser("root", authorization.RoleAdmin)
	appointment := f.store.AddAppointment(patient.ID, doctor.ID, "2024-06-01", "10:00", models.AppointmentStatusScheduled)

	err := f.usecase.DeleteAppointment(coretest.AsUser(context.Background(), doctorUser), appointment.ID)
	assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))

	err = f.usecase.DeleteAppointment(coretest.AsUser(context.Background(), admin), appointment.ID)
	require.NoError(t, err)
	assert.Empty(t, f.store.Appointments)
}
