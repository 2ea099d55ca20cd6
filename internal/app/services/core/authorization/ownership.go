package authorization

import "hospital-service/internal/app/models"

// OwnersOf returns the profile references recorded on a resource at creation
// time. The second value is false for types that carry no ownership.
func OwnersOf(resource any) (Owners, bool) {
	switch r := resource.(type) {
	case *models.Appointment:
		return Owners{PatientID: r.PatientID, DoctorID: r.DoctorID}, true
	case *models.MedicalRecord:
		return Owners{PatientID: r.PatientID, DoctorID: r.DoctorID}, true
	case *models.Prescription:
		return Owners{PatientID: r.PatientID, DoctorID: r.DoctorID}, true
	case *models.Invoice:
		return Owners{PatientID: r.PatientID, DoctorID: r.DoctorID}, true
	case *models.Patient:
		return Owners{PatientID: r.ID}, true
	case *models.Doctor:
		return Owners{DoctorID: r.ID}, true
	default:
		return Owners{}, false
	}
}

// TargetOf builds the decision target for an already fetched resource.
func TargetOf(resource any) *Target {
	owners, _ := OwnersOf(resource)
	target := &Target{Owners: owners}
	if doctor, ok := resource.(*models.Doctor); ok {
		target.Approved = doctor.IsApproved
	}
	return target
}

// WithChanges returns a copy of the target carrying the fields present in an update.
func (t *Target) WithChanges(changes Changes) *Target {
	copied := *t
	copied.Changes = changes
	return &copied
}
