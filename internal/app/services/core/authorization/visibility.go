package authorization

type PredicateKind int

const (
	// PredicateAll matches every row.
	PredicateAll PredicateKind = iota
	// PredicateMatch matches rows whose Field equals Value.
	PredicateMatch
	// PredicateNone matches no rows.
	PredicateNone
)

// Predicate is a storage-neutral query restriction. ApprovedOnly further
// restricts doctor profile listings to approved profiles.
type Predicate struct {
	Kind         PredicateKind
	Field        string
	Value        string
	ApprovedOnly bool
}

const (
	FieldPatientID = "patientId"
	FieldDoctorID  = "doctorId"
	FieldID        = "_id"
)

// ScopeQuery narrows a collection query to the rows the actor may see. A missing
// profile yields a predicate matching nothing rather than an error.
func ScopeQuery(actor *Actor, profile Profile, resource ResourceType) Predicate {
	if resource == ResourceDoctor {
		return Predicate{Kind: PredicateAll, ApprovedOnly: !actor.IsAdmin()}
	}
	if actor == nil {
		return Predicate{Kind: PredicateNone}
	}

	switch actor.Role {
	case RoleAdmin:
		return Predicate{Kind: PredicateAll}
	case RoleDoctor:
		switch resource {
		case ResourcePatient:
			return Predicate{Kind: PredicateAll}
		case ResourceAppointment, ResourceMedicalRecord, ResourcePrescription, ResourceInvoice:
			return matchProfile(profile, FieldDoctorID)
		}
	case RolePatient:
		switch resource {
		case ResourcePatient:
			return matchProfile(profile, FieldID)
		case ResourceAppointment, ResourceMedicalRecord, ResourcePrescription, ResourceInvoice:
			return matchProfile(profile, FieldPatientID)
		}
	}
	return Predicate{Kind: PredicateNone}
}

func matchProfile(profile Profile, field string) Predicate {
	if !profile.Found() {
		return Predicate{Kind: PredicateNone}
	}
	return Predicate{Kind: PredicateMatch, Field: field, Value: profile.ID}
}
