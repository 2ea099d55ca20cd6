package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/core/coretest"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "auth-usecase-secret"

type fixture struct {
	store   *coretest.Store
	audit   *coretest.AuditRecorder
	auth    contracts.AuthUsecase
	users   contracts.UserUsecase
	userRep *coretest.UserRepository
}

func newFixture() *fixture {
	store := coretest.NewStore()
	f := &fixture{
		store:   store,
		audit:   &coretest.AuditRecorder{},
		userRep: &coretest.UserRepository{Store: store},
	}
	cfg := &config.InternalConfig{JWT: config.AppJWT{Secret: testSecret, ExpTimeInHour: 1}}
	f.auth = NewAuthUsecase(f.userRep, coretest.NewIdentityResolver(store), f.audit, cfg, zap.NewNop())
	f.users = NewUserUsecase(f.userRep, f.audit, coretest.NewGuard(store), zap.NewNop())
	return f
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %v", err)
	return customErr.StatusCode
}

func registration(email, role string) *requests.RegisterUser {
	return &requests.RegisterUser{Name: "Dana", Email: email, Password: "Str0ng!pass", Role: role}
}

func TestRegister(t *testing.T) {
	t.Run("patient account is created with a hashed password", func(t *testing.T) {
		f := newFixture()
		response, err := f.auth.Register(context.Background(), registration("dana@hospital.test", "patient"))
		require.NoError(t, err)

		assert.NotEmpty(t, response.User.ID)
		assert.Equal(t, "patient", response.User.Role)
		assert.True(t, response.User.IsActive)
		assert.NotEqual(t, "Str0ng!pass", response.User.Password)
		assert.True(t, utils.CheckPasswordHash("Str0ng!pass", response.User.Password))
		assert.Equal(t, []authorization.Action{authorization.ActionCreate}, f.audit.Actions())
	})

	t.Run("admin role is refused", func(t *testing.T) {
		f := newFixture()
		_, err := f.auth.Register(context.Background(), registration("root@hospital.test", "admin"))
		require.Error(t, err)
		assert.Empty(t, f.store.Users)
		assert.Empty(t, f.audit.Actions())
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture()
		_, err := f.auth.Register(context.Background(), registration("dana@hospital.test", "doctor"))
		require.NoError(t, err)

		_, err = f.auth.Register(context.Background(), registration("DANA@hospital.test", "patient"))
		require.Error(t, err)
		assert.Equal(t, exceptions.KindAlreadyExists, exceptions.KindOf(err))
		assert.Len(t, f.store.Users, 1)
	})
}

func TestLogin(t *testing.T) {
	f := newFixture()
	registered, err := f.auth.Register(context.Background(), registration("dana@hospital.test", "doctor"))
	require.NoError(t, err)

	t.Run("valid credentials return a token for the account", func(t *testing.T) {
		response, err := f.auth.Login(context.Background(), &requests.LoginUser{Email: "dana@hospital.test", Password: "Str0ng!pass"})
		require.NoError(t, err)

		claims, err := utils.ParseAccessJWT(response.Token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, claims.Subject)
		assert.Equal(t, "doctor", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.auth.Login(context.Background(), &requests.LoginUser{Email: "dana@hospital.test", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.auth.Login(context.Background(), &requests.LoginUser{Email: "ghost@hospital.test", Password: "Str0ng!pass"})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("inactive account", func(t *testing.T) {
		user := f.store.Users[registered.User.ID]
		user.IsActive = false
		f.store.Users[user.ID] = user

		_, err := f.auth.Login(context.Background(), &requests.LoginUser{Email: "dana@hospital.test", Password: "Str0ng!pass"})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}

func TestCurrentUser(t *testing.T) {
	f := newFixture()
	patientUser, patient := f.store.AddPatient("pat")
	orphan := f.store.AddUser("orphan", authorization.RoleDoctor)
	admin := f.store.AddUser("admin", authorization.RoleAdmin)

	t.Run("patient sees its profile id", func(t *testing.T) {
		response, err := f.auth.CurrentUser(coretest.AsUser(context.Background(), patientUser))
		require.NoError(t, err)
		assert.Equal(t, patientUser.ID, response.User.ID)
		assert.Equal(t, patient.ID, response.ProfileID)
	})

	t.Run("doctor without profile has no profile id", func(t *testing.T) {
		response, err := f.auth.CurrentUser(coretest.AsUser(context.Background(), orphan))
		require.NoError(t, err)
		assert.Empty(t, response.ProfileID)
	})

	t.Run("admin has no profile", func(t *testing.T) {
		response, err := f.auth.CurrentUser(coretest.AsUser(context.Background(), admin))
		require.NoError(t, err)
		assert.Empty(t, response.ProfileID)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.auth.CurrentUser(context.Background())
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}

func TestCreateUser(t *testing.T) {
	f := newFixture()
	admin := f.store.AddUser("admin", authorization.RoleAdmin)
	doctor, _ := f.store.AddDoctor("doc", true)
	request := &requests.CreateUser{Name: "Second Admin", Email: "admin2@hospital.test", Password: "Str0ng!pass", Role: "admin"}

	t.Run("admin may create another admin", func(t *testing.T) {
		user, err := f.users.CreateUser(coretest.AsUser(context.Background(), admin), request)
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Role)
	})

	t.Run("doctor is refused", func(t *testing.T) {
		_, err := f.users.CreateUser(coretest.AsUser(context.Background(), doctor), &requests.CreateUser{
			Name: "X", Email: "x@hospital.test", Password: "Str0ng!pass", Role: "patient",
		})
		require.Error(t, err)
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	})
}
