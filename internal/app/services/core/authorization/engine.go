// Package authorization decides whether an actor may perform an action on a
// resource and narrows collection queries to what the actor may see.
//
// Decisions are pure: the engine performs no I/O and holds no state. Callers
// resolve the actor's profile and fetch the target resource before asking, and a
// missing resource is reported by the caller before the engine is consulted.
package authorization

import "fmt"

// Authorize returns the decision for req. It is deterministic and side-effect free.
func Authorize(req Request) Decision {
	if req.Actor == nil {
		if isPublicRead(req) {
			return Allow()
		}
		if req.Resource == ResourceDoctor && req.Action == ActionRead && req.Target != nil {
			return Deny(ReasonResourceNotFound, "doctor profile is not approved")
		}
		return Deny(ReasonNotAuthenticated, "authentication required")
	}
	if _, ok := ParseRole(string(req.Actor.Role)); !ok {
		return Deny(ReasonNotAuthenticated, fmt.Sprintf("unknown role %q", req.Actor.Role))
	}

	switch req.Resource {
	case ResourceAppointment:
		return authorizeAppointment(req)
	case ResourceDoctor:
		return authorizeDoctor(req)
	case ResourcePatient:
		return authorizePatient(req)
	case ResourceMedicalRecord:
		return authorizeMedicalRecord(req)
	case ResourcePrescription:
		return authorizePrescription(req)
	case ResourceInvoice:
		return authorizeInvoice(req)
	case ResourceUser, ResourceAuditLog:
		return adminOnly(req)
	default:
		return Deny(ReasonRoleNotPermitted, fmt.Sprintf("unknown resource %q", req.Resource))
	}
}

func isPublicRead(req Request) bool {
	if req.Resource != ResourceDoctor {
		return false
	}
	switch req.Action {
	case ActionList:
		return true
	case ActionRead:
		return req.Target != nil && req.Target.Approved
	default:
		return false
	}
}

func adminOnly(req Request) Decision {
	if req.Actor.Role == RoleAdmin {
		return Allow()
	}
	return roleNotPermitted(req)
}

func roleNotPermitted(req Request) Decision {
	return Deny(ReasonRoleNotPermitted, fmt.Sprintf("role %s cannot %s %s", req.Actor.Role, req.Action, req.Resource))
}

func notOwner(req Request) Decision {
	return Deny(ReasonNotOwner, fmt.Sprintf("actor %s does not own this %s", req.Actor.ID, req.Resource))
}

func profileMissing(req Request) Decision {
	return Deny(ReasonProfileMissing, fmt.Sprintf("%s profile setup is not completed", req.Actor.Role))
}

func targetRequired(req Request) Decision {
	return Deny(ReasonResourceNotFound, fmt.Sprintf("%s on %s requires a target", req.Action, req.Resource))
}

// ownership checks the actor's own profile against the owners of the target. It
// returns an allow decision for owners and the matching deny otherwise.
func ownership(req Request, owners Owners, patientOwns, doctorOwns bool) Decision {
	switch req.Actor.Role {
	case RoleAdmin:
		return Allow()
	case RolePatient:
		if !patientOwns {
			return roleNotPermitted(req)
		}
		if !req.Profile.Found() {
			return profileMissing(req)
		}
		if owners.PatientID != "" && owners.PatientID == req.Profile.ID {
			return Allow()
		}
		return notOwner(req)
	case RoleDoctor:
		if !doctorOwns {
			return roleNotPermitted(req)
		}
		if !req.Profile.Found() {
			return profileMissing(req)
		}
		if owners.DoctorID != "" && owners.DoctorID == req.Profile.ID {
			return Allow()
		}
		return notOwner(req)
	default:
		return roleNotPermitted(req)
	}
}
