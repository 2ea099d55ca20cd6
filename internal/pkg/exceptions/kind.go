package exceptions

import (
	"fmt"
	"net/http"

	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/constvars"
)

type Kind string

const (
	KindNotAuthenticated  Kind = "NotAuthenticated"
	KindRoleNotPermitted  Kind = "RoleNotPermitted"
	KindNotOwner          Kind = "NotOwner"
	KindProfileMissing    Kind = "ProfileMissing"
	KindResourceNotFound  Kind = "ResourceNotFound"
	KindAlreadyExists     Kind = "AlreadyExists"
	KindInvalidTransition Kind = "InvalidTransition"
	KindUpstreamFailure   Kind = "UpstreamFailure"
	KindValidation        Kind = "Validation"
	KindInternal          Kind = "Internal"
)

func kindFromStatus(statusCode int) Kind {
	switch statusCode {
	case http.StatusUnauthorized:
		return KindNotAuthenticated
	case http.StatusForbidden:
		return KindRoleNotPermitted
	case http.StatusNotFound:
		return KindResourceNotFound
	case http.StatusConflict:
		return KindAlreadyExists
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusBadGateway:
		return KindUpstreamFailure
	default:
		return KindInternal
	}
}

// FromDecision maps an authorization denial to the error returned to the caller.
// The resource name is only used in not found and conflict messages.
func FromDecision(decision authorization.Decision, resource string) *CustomError {
	devMessage := fmt.Sprintf(constvars.ErrDevAuthzDenied, decision.Detail)
	switch decision.Reason {
	case authorization.ReasonNotAuthenticated:
		return BuildNewCustomError(nil, http.StatusUnauthorized, constvars.ErrClientNotLoggedIn, devMessage).WithKind(KindNotAuthenticated)
	case authorization.ReasonRoleNotPermitted:
		return BuildNewCustomError(nil, http.StatusForbidden, constvars.ErrClientNotAuthorized, devMessage).WithKind(KindRoleNotPermitted)
	case authorization.ReasonNotOwner:
		return BuildNewCustomError(nil, http.StatusForbidden, constvars.ErrClientNotOwner, devMessage).WithKind(KindNotOwner)
	case authorization.ReasonProfileMissing:
		return BuildNewCustomError(nil, http.StatusNotFound, constvars.ErrClientProfileMissing, devMessage).WithKind(KindProfileMissing)
	case authorization.ReasonResourceNotFound:
		return BuildNewCustomError(nil, http.StatusNotFound, fmt.Sprintf(constvars.ErrClientResourceNotFound, resource), devMessage).WithKind(KindResourceNotFound)
	case authorization.ReasonAlreadyExists:
		return BuildNewCustomError(nil, http.StatusBadRequest, fmt.Sprintf(constvars.ErrClientAlreadyExists, resource), devMessage).WithKind(KindAlreadyExists)
	case authorization.ReasonInvalidTransition:
		return BuildNewCustomError(nil, http.StatusBadRequest, constvars.ErrClientInvalidTransition, devMessage).WithKind(KindInvalidTransition)
	default:
		return BuildNewCustomError(nil, http.StatusForbidden, constvars.ErrClientNotAuthorized, devMessage).WithKind(KindRoleNotPermitted)
	}
}
