package middlewares

import (
	"net/http"
	"strings"

	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate rejects requests that do not carry a valid bearer token and
// stores the resulting actor on the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		actor, err := m.actorFromToken(token)
		if err != nil {
			m.Log.Info("Rejected request with invalid access token",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(authorization.WithActor(r.Context(), actor)))
	})
}

// OptionalAuthenticate lets anonymous requests through. A token that is
// present but invalid is still rejected.
func (m *Middlewares) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor, err := m.actorFromToken(token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(authorization.WithActor(r.Context(), actor)))
	})
}

func (m *Middlewares) actorFromToken(token string) (*authorization.Actor, error) {
	claims, err := utils.ParseAccessJWT(token, m.InternalConfig.JWT.Secret)
	if err != nil {
		return nil, err
	}

	role, ok := authorization.ParseRole(claims.Role)
	if !ok {
		return nil, exceptions.ErrInvalidRoleType(nil)
	}

	return &authorization.Actor{ID: claims.Subject, Role: role}, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(constvars.HeaderAuthorization)
	if !strings.HasPrefix(header, constvars.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, constvars.BearerPrefix))
}
