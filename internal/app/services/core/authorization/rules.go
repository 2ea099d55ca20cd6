package authorization

import (
	"fmt"

	"hospital-service/internal/app/models"
)

func authorizeAppointment(req Request) Decision {
	switch req.Action {
	case ActionList:
		return Allow()
	case ActionCreate:
		switch req.Actor.Role {
		case RoleAdmin, RoleDoctor:
			return Allow()
		case RolePatient:
			if !req.Profile.Found() {
				return profileMissing(req)
			}
			if req.Target != nil && req.Target.Owners.PatientID != "" && req.Target.Owners.PatientID != req.Profile.ID {
				return notOwner(req)
			}
			return Allow()
		}
	case ActionRead:
		if req.Target == nil {
			return targetRequired(req)
		}
		return ownership(req, req.Target.Owners, true, true)
	case ActionUpdate:
		if req.Target == nil {
			return targetRequired(req)
		}
		decision := ownership(req, req.Target.Owners, true, true)
		if !decision.Allowed || req.Actor.Role != RolePatient {
			return decision
		}
		return patientAppointmentChange(req)
	case ActionDelete:
		return adminOnly(req)
	}
	return roleNotPermitted(req)
}

// patientAppointmentChange allows an owning patient to cancel and nothing else.
// Any other field in the same request rejects the whole update.
func patientAppointmentChange(req Request) Decision {
	changes := req.Target.Changes
	if !changes.Has("status") || !changes.Only("status") {
		return Deny(ReasonRoleNotPermitted, "patients can only cancel an appointment")
	}
	status, _ := changes.String("status")
	if status != models.AppointmentStatusCancelled {
		return Deny(ReasonInvalidTransition, fmt.Sprintf("patients cannot set appointment status to %q", status))
	}
	return Allow()
}

func authorizeDoctor(req Request) Decision {
	switch req.Action {
	case ActionList:
		return Allow()
	case ActionCreate:
		switch req.Actor.Role {
		case RoleAdmin, RoleDoctor:
			return profileConflict(req)
		}
		return roleNotPermitted(req)
	case ActionApprove:
		if req.Target == nil {
			return targetRequired(req)
		}
		return adminOnly(req)
	}

	if req.Target == nil {
		return targetRequired(req)
	}
	ownsProfile := req.Actor.Role == RoleDoctor && req.Profile.Found() && req.Profile.ID == req.Target.Owners.DoctorID
	// Approval gates existence: an unapproved profile is invisible to anyone but
	// an admin or its own doctor.
	if !req.Target.Approved && !req.Actor.IsAdmin() && !ownsProfile {
		return Deny(ReasonResourceNotFound, "doctor profile is not approved")
	}

	switch req.Action {
	case ActionRead:
		return Allow()
	case ActionUpdate:
		if req.Actor.Role == RoleDoctor && req.Target.Changes.Has("isApproved") {
			return Deny(ReasonRoleNotPermitted, "only an admin can change doctor approval")
		}
		return ownership(req, req.Target.Owners, false, true)
	case ActionDelete:
		return adminOnly(req)
	}
	return roleNotPermitted(req)
}

func authorizePatient(req Request) Decision {
	switch req.Action {
	case ActionList:
		return Allow()
	case ActionCreate:
		switch req.Actor.Role {
		case RoleAdmin, RolePatient:
			return profileConflict(req)
		}
		return roleNotPermitted(req)
	case ActionRead, ActionUpdate:
		if req.Target == nil {
			return targetRequired(req)
		}
		return ownership(req, req.Target.Owners, true, false)
	case ActionDelete:
		return adminOnly(req)
	}
	return roleNotPermitted(req)
}

func profileConflict(req Request) Decision {
	if req.Target != nil && req.Target.ProfileExists {
		return Deny(ReasonAlreadyExists, fmt.Sprintf("%s profile already exists for this user", req.Resource))
	}
	return Allow()
}

// authorizeMedicalRecord covers records authored by a doctor. For create the
// target owners are copied from the parent appointment.
func authorizeMedicalRecord(req Request) Decision {
	return authorizeAuthored(req)
}

// authorizePrescription follows the same rules as medical records; for create the
// target owners are copied from the parent medical record.
func authorizePrescription(req Request) Decision {
	return authorizeAuthored(req)
}

func authorizeAuthored(req Request) Decision {
	switch req.Action {
	case ActionList:
		return Allow()
	case ActionCreate:
		if req.Actor.Role == RoleAdmin {
			return Allow()
		}
		if req.Target == nil {
			return targetRequired(req)
		}
		return ownership(req, req.Target.Owners, false, true)
	case ActionRead:
		if req.Target == nil {
			return targetRequired(req)
		}
		return ownership(req, req.Target.Owners, true, true)
	case ActionUpdate:
		if req.Target == nil {
			return targetRequired(req)
		}
		return ownership(req, req.Target.Owners, false, true)
	case ActionDelete:
		return adminOnly(req)
	}
	return roleNotPermitted(req)
}

func authorizeInvoice(req Request) Decision {
	switch req.Action {
	case ActionList:
		return Allow()
	case ActionCreate, ActionUpdate, ActionDelete:
		return adminOnly(req)
	case ActionRead:
		if req.Target == nil {
			return targetRequired(req)
		}
		return ownership(req, req.Target.Owners, true, true)
	case ActionPay:
		if req.Target == nil {
			return targetRequired(req)
		}
		return ownership(req, req.Target.Owners, true, false)
	}
	return roleNotPermitted(req)
}
