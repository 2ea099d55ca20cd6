package doctors

import (
	"context"
	"testing"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/core/coretest"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store        *coretest.Store
	audit        *coretest.AuditRecorder
	notification *coretest.NotificationSender
	usecase      contracts.DoctorUsecase
	admin        *models.User
}

func newFixture() *fixture {
	store := coretest.NewStore()
	f := &fixture{
		store:        store,
		audit:        &coretest.AuditRecorder{},
		notification: &coretest.NotificationSender{},
	}
	f.usecase = NewDoctorUsecase(
		&coretest.DoctorRepository{Store: store},
		&coretest.PatientRepository{Store: store},
		&coretest.AppointmentRepository{Store: store},
		&coretest.UserRepository{Store: store},
		coretest.NewIdentityResolver(store),
		f.audit,
		f.notification,
		coretest.NewGuard(store),
		zap.NewNop(),
	)
	f.admin = store.AddUser("root", authorization.RoleAdmin)
	return f
}

func (f *fixture) as(user *models.User) context.Context {
	return coretest.AsUser(context.Background(), user)
}

func page() *requests.Pagination {
	return &requests.Pagination{Page: 1, PageSize: 10}
}

func boolPtr(b bool) *bool { return &b }

func TestCreateDoctor(t *testing.T) {
	t.Run("Doctor registers an unapproved profile", func(t *testing.T) {
		f := newFixture()
		user := f.store.AddUser("house", authorization.RoleDoctor)

		doctor, err := f.usecase.CreateDoctor(f.as(user), &requests.CreateDoctor{
			Specialization: "diagnostics",
			LicenseNumber:  "LIC-1",
			Phone:          "+1 650-253-0000",
		})

		require.NoError(t, err)
		assert.Equal(t, user.ID, doctor.UserID)
		assert.False(t, doctor.IsApproved)
		assert.Equal(t, []string{}, doctor.Qualifications)
		assert.Equal(t, "+16502530000", doctor.Phone)
	})

	t.Run("Second profile for the same user", func(t *testing.T) {
		f := newFixture()
		user, _ := f.store.AddDoctor("house", true)

		_, err := f.usecase.CreateDoctor(f.as(user), &requests.CreateDoctor{Specialization: "diagnostics", LicenseNumber: "LIC-2"})
		assert.Equal(t, exceptions.KindAlreadyExists, exceptions.KindOf(err))
	})

	t.Run("Patient cannot register as a doctor", func(t *testing.T) {
		f := newFixture()
		user, _ := f.store.AddPatient("alice")

		_, err := f.usecase.CreateDoctor(f.as(user), &requests.CreateDoctor{Specialization: "diagnostics", LicenseNumber: "LIC-3"})
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	})

	t.Run("Admin creates an approved profile for a doctor user", func(t *testing.T) {
		f := newFixture()
		user := f.store.AddUser("wilson", authorization.RoleDoctor)

		doctor, err := f.usecase.CreateDoctor(f.as(f.admin), &requests.CreateDoctor{UserID: user.ID, Specialization: "oncology", LicenseNumber: "LIC-4"})
		require.NoError(t, err)
		assert.True(t, doctor.IsApproved)
		assert.Equal(t, user.ID, doctor.UserID)
	})

	t.Run("Admin must name a user with the doctor role", func(t *testing.T) {
		f := newFixture()
		patientUser, _ := f.store.AddPatient("alice")

		_, err := f.usecase.CreateDoctor(f.as(f.admin), &requests.CreateDoctor{Specialization: "oncology", LicenseNumber: "LIC-5"})
		assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))

		_, err = f.usecase.CreateDoctor(f.as(f.admin), &requests.CreateDoctor{UserID: patientUser.ID, Specialization: "oncology", LicenseNumber: "LIC-5"})
		assert.Error(t, err)
		assert.Len(t, f.store.Doctors, 0)
	})
}

func TestApprovalControlsVisibility(t *testing.T) {
	f := newFixture()
	doctorUser, doctor := f.store.AddDoctor("house", false)
	patientUser, _ := f.store.AddPatient("alice")

	_, total, err := f.usecase.FindAll(context.Background(), nil, page())
	require.NoError(t, err)
	assert.Zero(t, total, "unapproved doctors are hidden from the public list")

	_, err = f.usecase.FindByID(f.as(patientUser), doctor.ID)
	assert.Equal(t, exceptions.KindResourceNotFound, exceptions.KindOf(err))

	own, err := f.usecase.FindByID(f.as(doctorUser), doctor.ID)
	require.NoError(t, err)
	assert.False(t, own.IsApproved)

	_, err = f.usecase.UpdateDoctor(f.as(doctorUser), doctor.ID, &requests.UpdateDoctor{IsApproved: boolPtr(true)})
	assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	assert.False(t, f.store.Doctor(doctor.ID).IsApproved)

	_, err = f.usecase.ApproveDoctor(f.as(doctorUser), doctor.ID, &requests.ApproveDoctor{})
	assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))

	approved, err := f.usecase.ApproveDoctor(f.as(f.admin), doctor.ID, &requests.ApproveDoctor{})
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.Equal(t, []string{doctorUser.Email}, f.notification.Recipients())

	doctors, total, err := f.usecase.FindAll(context.Background(), nil, page())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, doctor.ID, doctors[0].ID)

	_, err = f.usecase.FindByID(f.as(patientUser), doctor.ID)
	assert.NoError(t, err)
}

func TestUpdateDoctor(t *testing.T) {
	f := newFixture()
	doctorUser, doctor := f.store.AddDoctor("house", true)
	otherUser, _ := f.store.AddDoctor("wilson", true)
	bio := "nephrology"

	_, err := f.usecase.UpdateDoctor(f.as(otherUser), doctor.ID, &requests.UpdateDoctor{Bio: &bio})
	assert.Equal(t, exceptions.KindNotOwner, exceptions.KindOf(err))

	_, err = f.usecase.UpdateDoctor(f.as(doctorUser), doctor.ID, &requests.UpdateDoctor{})
	assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))

	updated, err := f.usecase.UpdateDoctor(f.as(doctorUser), doctor.ID, &requests.UpdateDoctor{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, []string{"bio"}, f.audit.Entries[0].Details["fields"])

	err = f.usecase.DeleteDoctor(f.as(doctorUser), doctor.ID)
	assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))

	require.NoError(t, f.usecase.DeleteDoctor(f.as(f.admin), doctor.ID))
	_, err = f.usecase.FindByID(f.as(f.admin), doctor.ID)
	assert.Equal(t, exceptions.KindResourceNotFound, exceptions.KindOf(err))
}

func TestFindMine(t *testing.T) {
	f := newFixture()
	doctorUser, doctor := f.store.AddDoctor("house", false)
	newcomer := f.store.AddUser("cameron", authorization.RoleDoctor)
	patientUser, _ := f.store.AddPatient("alice")

	mine, err := f.usecase.FindMine(f.as(doctorUser))
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, mine.ID)

	_, err = f.usecase.FindMine(f.as(newcomer))
	assert.Equal(t, exceptions.KindProfileMissing, exceptions.KindOf(err))

	_, err = f.usecase.FindMine(f.as(patientUser))
	assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))

	_, err = f.usecase.FindMine(context.Background())
	assert.Equal(t, exceptions.KindNotAuthenticated, exceptions.KindOf(err))
}

func TestFindMyPatients(t *testing.T) {
	f := newFixture()
	doctorUser, doctor := f.store.AddDoctor("house", true)
	_, otherDoctor := f.store.AddDoctor("wilson", true)
	patientUser, alice := f.store.AddPatient("alice")
	_, bob := f.store.AddPatient("bob")
	_, carol := f.store.AddPatient("carol")

	f.store.AddAppointment(alice.ID, doctor.ID, "2024-06-01", "10:00", models.AppointmentStatusCompleted)
	f.store.AddAppointment(alice.ID, doctor.ID, "2024-06-08", "10:00", models.AppointmentStatusScheduled)
	f.store.AddAppointment(bob.ID, doctor.ID, "2024-06-01", "11:00", models.AppointmentStatusCancelled)
	f.store.AddAppointment(carol.ID, otherDoctor.ID, "2024-06-01", "10:00", models.AppointmentStatusScheduled)

	patients, total, err := f.usecase.FindMyPatients(f.as(doctorUser), page())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	ids := []string{}
	for _, patient := range patients {
		ids = append(ids, patient.ID)
	}
	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, ids)

	_, _, err = f.usecase.FindMyPatients(f.as(patientUser), page())
	assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))

	lonely, _ := f.store.AddDoctor("chase", true)
	patients, total, err = f.usecase.FindMyPatients(f.as(lonely), page())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, patients)
}
