package patients

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

func newUsecase(store *coretest.Store) (contracts.PatientUsecase, *coretest.AuditRecorder) {
	audit := &coretest.AuditRecorder{}
	usecase := NewPatientUsecase(
		&coretest.PatientRepository{Store: store},
		&coretest.UserRepository{Store: store},
		coretest.NewIdentityResolver(store),
		audit,
		coretest.NewGuard(store),
		zap.NewNop(),
	)
	return usecase, audit
}

func as(user *models.User) context.Context {
	return coretest.AsUser(context.Background(), user)
}

func TestCreatePatient(t *testing.T) {
	t.Run("Patient registers own profile", func(t *testing.T) {
		store := coretest.NewStore()
		usecase, audit := newUsecase(store)
		user := store.AddUser("alice", authorization.RolePatient)

		patient, err := usecase.CreatePatient(as(user), &requests.CreatePatient{
			DateOfBirth: "1990-04-12",
			BloodGroup:  "O+",
			EmergencyContact: &requests.EmergencyContact{
				Name:         "Bob",
				Relationship: "spouse",
				Phone:        "650-253-0000",
			},
		})

		require.NoError(t, err)
		assert.Equal(t, user.ID, patient.UserID)
		require.NotNil(t, patient.DateOfBirth)
		assert.Equal(t, 1990, patient.DateOfBirth.Year())
		assert.Equal(t, "+16502530000", patient.EmergencyContact.Phone)
		assert.Equal(t, []string{}, patient.Allergies)
		assert.Equal(t, []authorization.Action{authorization.ActionCreate}, audit.Actions())

		mine, err := usecase.FindMine(as(user))
		require.NoError(t, err)
		assert.Equal(t, patient.ID, mine.ID)
	})

	t.Run("Second profile is rejected", func(t *testing.T) {
		store := coretest.NewStore()
		usecase, _ := newUsecase(store)
		user, _ := store.AddPatient("alice")

		_, err := usecase.CreatePatient(as(user), &requests.CreatePatient{})
		assert.Equal(t, exceptions.KindAlreadyExists, exceptions.KindOf(err))
	})

	t.Run("Future date of birth is rejected", func(t *testing.T) {
		store := coretest.NewStore()
		usecase, _ := newUsecase(store)
		user := store.AddUser("alice", authorization.RolePatient)

		_, err := usecase.CreatePatient(as(user), &requests.CreatePatient{DateOfBirth: "2999-01-01"})
		assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))
		assert.Empty(t, store.Patients)
	})

	t.Run("Doctor cannot create patients", func(t *testing.T) {
		store := coretest.NewStore()
		usecase, _ := newUsecase(store)
		doctorUser, _ := store.AddDoctor("house", true)

		_, err := usecase.CreatePatient(as(doctorUser), &requests.CreatePatient{})
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	})

	t.Run("Admin creates for a patient user only", func(t *testing.T) {
		store := coretest.NewStore()
		usecase, _ := newUsecase(store)
		admin := store.AddUser("root", authorization.RoleAdmin)
		patientUser := store.AddUser("alice", authorization.RolePatient)
		doctorUser := store.AddUser("house", authorization.RoleDoctor)

		_, err := usecase.CreatePatient(as(admin), &requests.CreatePatient{UserID: doctorUser.ID})
		assert.Equal(t, exceptions.KindNotAuthenticated, exceptions.KindOf(err))

		patient, err := usecase.CreatePatient(as(admin), &requests.CreatePatient{UserID: patientUser.ID})
		require.NoError(t, err)
		assert.Equal(t, patientUser.ID, patient.UserID)
	})
}

func TestPatientAccess(t *testing.T) {
	store := coretest.NewStore()
	usecase, _ := newUsecase(store)
	aliceUser, alice := store.AddPatient("alice")
	bobUser, _ := store.AddPatient("bob")
	doctorUser, _ := store.AddDoctor("house", true)
	admin := store.AddUser("root", authorization.RoleAdmin)
	address := "221B Baker Street"

	t.Run("Owner reads and updates", func(t *testing.T) {
		_, err := usecase.FindByID(as(aliceUser), alice.ID)
		require.NoError(t, err)

		updated, err := usecase.UpdatePatient(as(aliceUser), alice.ID, &requests.UpdatePatient{Address: &address})
		require.NoError(t, err)
		assert.Equal(t, address, updated.Address)
	})

	t.Run("Other patient is not the owner", func(t *testing.T) {
		_, err := usecase.FindByID(as(bobUser), alice.ID)
		assert.Equal(t, exceptions.KindNotOwner, exceptions.KindOf(err))
	})

	t.Run("Doctor cannot read a single patient profile", func(t *testing.T) {
		_, err := usecase.FindByID(as(doctorUser), alice.ID)
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	})

	t.Run("Lists are scoped", func(t *testing.T) {
		_, total, err := usecase.FindAll(as(aliceUser), &requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = usecase.FindAll(as(doctorUser), &requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("Only admins delete", func(t *testing.T) {
		err := usecase.DeletePatient(as(aliceUser), alice.ID)
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))

		require.NoError(t, usecase.DeletePatient(as(admin), alice.ID))
		_, err = usecase.FindMine(as(aliceUser))
		assert.Equal(t, exceptions.KindProfileMissing, exceptions.KindOf(err))
	})
}
