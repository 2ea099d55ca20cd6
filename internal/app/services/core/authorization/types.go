package authorization

import (
	"sort"
	"strings"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// ParseRole accepts only the three roles the system knows about.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RolePatient:
		return RolePatient, true
	case RoleDoctor:
		return RoleDoctor, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller of an operation. It is immutable for the
// lifetime of a request.
type Actor struct {
	ID   string
	Role Role
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionList    Action = "list"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionPay     Action = "pay"
)

type ResourceType string

const (
	ResourceUser          ResourceType = "user"
	ResourceDoctor        ResourceType = "doctor"
	ResourcePatient       ResourceType = "patient"
	ResourceAppointment   ResourceType = "appointment"
	ResourceMedicalRecord ResourceType = "medical_record"
	ResourcePrescription  ResourceType = "prescription"
	ResourceInvoice       ResourceType = "invoice"
	ResourceAuditLog      ResourceType = "audit_log"
)

type ProfileStatus int

const (
	// ProfileNotApplicable is returned for admins, who act without an owned profile.
	ProfileNotApplicable ProfileStatus = iota
	ProfileFound
	ProfileMissing
)

// Profile is the resolved Patient or Doctor record linked to an actor.
type Profile struct {
	Status ProfileStatus
	ID     string
}

// NoProfile is the sentinel for actors that act without an owned profile.
var NoProfile = Profile{Status: ProfileNotApplicable}

func FoundProfile(id string) Profile {
	return Profile{Status: ProfileFound, ID: id}
}

func MissingProfile() Profile {
	return Profile{Status: ProfileMissing}
}

func (p Profile) Found() bool {
	return p.Status == ProfileFound && p.ID != ""
}

// Owners holds the profile references that own a resource. DoctorID may be empty
// for invoices that carry no doctor.
type Owners struct {
	PatientID string
	DoctorID  string
}

// Changes is the set of fields explicitly present in an update request, keyed by
// their JSON name. Absent fields are not keys; a present field may hold a zero value.
type Changes map[string]any

func (c Changes) Has(field string) bool {
	_, ok := c[field]
	return ok
}

// Only reports whether every present field is one of the allowed fields.
func (c Changes) Only(allowed ...string) bool {
	for field := range c {
		found := false
		for _, a := range allowed {
			if field == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Fields returns the present field names in sorted order.
func (c Changes) Fields() []string {
	fields := make([]string, 0, len(c))
	for field := range c {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (c Changes) String(field string) (string, bool) {
	value, ok := c[field]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Target describes the resource instance a decision is about. For create it
// describes the prospective owners resolved from the request and its parent.
type Target struct {
	Owners Owners
	// Approved is only meaningful for doctor profiles.
	Approved bool
	// ProfileExists is set on profile creates when the target user already has a
	// profile of the requested kind.
	ProfileExists bool
	// Changes is only meaningful for update.
	Changes Changes
}

// Request is the full input of a single authorization decision.
type Request struct {
	Actor    *Actor
	Profile  Profile
	Action   Action
	Resource ResourceType
	Target   *Target
}

type Reason string

const (
	ReasonNotAuthenticated  Reason = "NotAuthenticated"
	ReasonRoleNotPermitted  Reason = "RoleNotPermitted"
	ReasonNotOwner          Reason = "NotOwner"
	ReasonProfileMissing    Reason = "ProfileMissing"
	ReasonAlreadyExists     Reason = "AlreadyExists"
	ReasonInvalidTransition Reason = "InvalidTransition"
	// ReasonResourceNotFound masks the existence of a resource the actor may not see.
	ReasonResourceNotFound Reason = "ResourceNotFound"
)

type Decision struct {
	Allowed bool
	Reason  Reason
	Detail  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason Reason, detail string) Decision {
	return Decision{Reason: reason, Detail: detail}
}

func (d Decision) Outcome() string {
	if d.Allowed {
		return "allow"
	}
	return string(d.Reason)
}
