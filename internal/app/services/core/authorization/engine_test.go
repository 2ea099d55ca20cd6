package authorization

import (
	"testing"

	"hospital-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

var (
	admin         = &Actor{ID: "user-admin", Role: RoleAdmin}
	patientActor  = &Actor{ID: "user-p1", Role: RolePatient}
	otherPatient  = &Actor{ID: "user-p2", Role: RolePatient}
	doctorActor   = &Actor{ID: "user-d1", Role: RoleDoctor}
	otherDoctor   = &Actor{ID: "user-d2", Role: RoleDoctor}
	patientP1     = FoundProfile("patient-1")
	patientP2     = FoundProfile("patient-2")
	doctorD1      = FoundProfile("doctor-1")
	doctorD2      = FoundProfile("doctor-2")
	appointmentA1 = &models.Appointment{ID: "appt-1", PatientID: "patient-1", DoctorID: "doctor-1", Status: models.AppointmentStatusScheduled}
)

func request(actor *Actor, profile Profile, action Action, resource ResourceType, target *Target) Request {
	return Request{Actor: actor, Profile: profile, Action: action, Resource: resource, Target: target}
}

func TestAuthorizeIsDeterministic(t *testing.T) {
	req := request(patientActor, patientP1, ActionUpdate, ResourceAppointment,
		TargetOf(appointmentA1).WithChanges(Changes{"status": "cancelled"}))

	first := Authorize(req)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Authorize(req), "repeated decisions must be identical")
	}
}

func TestAuthorizeAnonymous(t *testing.T) {
	t.Run("Public doctor listing", func(t *testing.T) {
		assert.True(t, Authorize(request(nil, NoProfile, ActionList, ResourceDoctor, nil)).Allowed)
	})

	t.Run("Approved doctor is readable", func(t *testing.T) {
		target := TargetOf(&models.Doctor{ID: "doctor-1", IsApproved: true})
		assert.True(t, Authorize(request(nil, NoProfile, ActionRead, ResourceDoctor, target)).Allowed)
	})

	t.Run("Unapproved doctor is hidden", func(t *testing.T) {
		target := TargetOf(&models.Doctor{ID: "doctor-1"})
		decision := Authorize(request(nil, NoProfile, ActionRead, ResourceDoctor, target))
		assert.Equal(t, ReasonResourceNotFound, decision.Reason)
	})

	t.Run("Everything else needs authentication", func(t *testing.T) {
		for _, resource := range []ResourceType{ResourceAppointment, ResourcePatient, ResourceMedicalRecord, ResourcePrescription, ResourceInvoice, ResourceAuditLog} {
			decision := Authorize(request(nil, NoProfile, ActionList, resource, nil))
			assert.Equal(t, ReasonNotAuthenticated, decision.Reason, "anonymous list of %s", resource)
		}
	})

	t.Run("Unknown role is not authenticated", func(t *testing.T) {
		decision := Authorize(request(&Actor{ID: "x", Role: "nurse"}, NoProfile, ActionList, ResourceAppointment, nil))
		assert.Equal(t, ReasonNotAuthenticated, decision.Reason)
	})
}

func TestAuthorizeAppointment(t *testing.T) {
	target := TargetOf(appointmentA1)

	cases := []struct {
		name     string
		req      Request
		allowed  bool
		expected Reason
	}{
		{"Patient with profile books", request(patientActor, patientP1, ActionCreate, ResourceAppointment, &Target{Owners: Owners{PatientID: "patient-1", DoctorID: "doctor-1"}}), true, ""},
		{"Patient without profile cannot book", request(patientActor, MissingProfile(), ActionCreate, ResourceAppointment, &Target{Owners: Owners{DoctorID: "doctor-1"}}), false, ReasonProfileMissing},
		{"Patient cannot book for another patient", request(patientActor, patientP1, ActionCreate, ResourceAppointment, &Target{Owners: Owners{PatientID: "patient-2"}}), false, ReasonNotOwner},
		{"Doctor books with explicit patient", request(doctorActor, MissingProfile(), ActionCreate, ResourceAppointment, &Target{Owners: Owners{PatientID: "patient-2", DoctorID: "doctor-2"}}), true, ""},
		{"Admin books", request(admin, NoProfile, ActionCreate, ResourceAppointment, &Target{Owners: Owners{PatientID: "patient-1"}}), true, ""},
		{"Owner patient reads", request(patientActor, patientP1, ActionRead, ResourceAppointment, target), true, ""},
		{"Owner doctor reads", request(doctorActor, doctorD1, ActionRead, ResourceAppointment, target), true, ""},
		{"Admin reads", request(admin, NoProfile, ActionRead, ResourceAppointment, target), true, ""},
		{"Other patient cannot read", request(otherPatient, patientP2, ActionRead, ResourceAppointment, target), false, ReasonNotOwner},
		{"Other doctor cannot read", request(otherDoctor, doctorD2, ActionRead, ResourceAppointment, target), false, ReasonNotOwner},
		{"Doctor without profile cannot read", request(doctorActor, MissingProfile(), ActionRead, ResourceAppointment, target), false, ReasonProfileMissing},
		{"Only admin deletes", request(doctorActor, doctorD1, ActionDelete, ResourceAppointment, target), false, ReasonRoleNotPermitted},
		{"Admin deletes", request(admin, NoProfile, ActionDelete, ResourceAppointment, target), true, ""},
		{"Any role lists", request(patientActor, patientP1, ActionList, ResourceAppointment, nil), true, ""},
		{"Pay is not an appointment action", request(admin, NoProfile, ActionPay, ResourceAppointment, target), false, ReasonRoleNotPermitted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Authorize(tc.req)
			assert.Equal(t, tc.allowed, decision.Allowed)
			assert.Equal(t, tc.expected, decision.Reason)
		})
	}
}

func TestAuthorizeAppointmentUpdate(t *testing.T) {
	target := TargetOf(appointmentA1)

	t.Run("Owner patient may cancel", func(t *testing.T) {
		decision := Authorize(request(patientActor, patientP1, ActionUpdate, ResourceAppointment, target.WithChanges(Changes{"status": "cancelled"})))
		assert.True(t, decision.Allowed)
	})

	t.Run("Owner patient may not change notes", func(t *testing.T) {
		decision := Authorize(request(patientActor, patientP1, ActionUpdate, ResourceAppointment, target.WithChanges(Changes{"notes": "x"})))
		assert.Equal(t, ReasonRoleNotPermitted, decision.Reason)
	})

	t.Run("Cancel together with another field is rejected as a whole", func(t *testing.T) {
		decision := Authorize(request(patientActor, patientP1, ActionUpdate, ResourceAppointment, target.WithChanges(Changes{"status": "cancelled", "timeSlot": "11:00"})))
		assert.Equal(t, ReasonRoleNotPermitted, decision.Reason)
	})

	t.Run("Owner patient may not confirm", func(t *testing.T) {
		decision := Authorize(request(patientActor, patientP1, ActionUpdate, ResourceAppointment, target.WithChanges(Changes{"status": "confirmed"})))
		assert.Equal(t, ReasonInvalidTransition, decision.Reason)
	})

	t.Run("Other patient is not owner", func(t *testing.T) {
		decision := Authorize(request(otherPatient, patientP2, ActionUpdate, ResourceAppointment, target.WithChanges(Changes{"status": "cancelled"})))
		assert.Equal(t, ReasonNotOwner, decision.Reason)
	})

	t.Run("Owner doctor may change any field", func(t *testing.T) {
		decision := Authorize(request(doctorActor, doctorD1, ActionUpdate, ResourceAppointment, target.WithChanges(Changes{"notes": "x", "status": "confirmed"})))
		assert.True(t, decision.Allowed)
	})

	t.Run("Admin may change any field", func(t *testing.T) {
		decision := Authorize(request(admin, NoProfile, ActionUpdate, ResourceAppointment, target.WithChanges(Changes{"notes": "x"})))
		assert.True(t, decision.Allowed)
	})

	t.Run("Missing target is reported as not found", func(t *testing.T) {
		decision := Authorize(request(admin, NoProfile, ActionUpdate, ResourceAppointment, nil))
		assert.Equal(t, ReasonResourceNotFound, decision.Reason)
	})
}

func TestAuthorizeDoctorProfile(t *testing.T) {
	unapproved := TargetOf(&models.Doctor{ID: "doctor-1"})
	approved := TargetOf(&models.Doctor{ID: "doctor-1", IsApproved: true})

	t.Run("Doctor creates own profile", func(t *testing.T) {
		assert.True(t, Authorize(request(doctorActor, MissingProfile(), ActionCreate, ResourceDoctor, &Target{})).Allowed)
	})

	t.Run("Second profile is a conflict", func(t *testing.T) {
		decision := Authorize(request(doctorActor, doctorD1, ActionCreate, ResourceDoctor, &Target{ProfileExists: true}))
		assert.Equal(t, ReasonAlreadyExists, decision.Reason)
	})

	t.Run("Patient cannot create doctor profile", func(t *testing.T) {
		decision := Authorize(request(patientActor, patientP1, ActionCreate, ResourceDoctor, &Target{}))
		assert.Equal(t, ReasonRoleNotPermitted, decision.Reason)
	})

	t.Run("Unapproved profile is hidden from other actors", func(t *testing.T) {
		for _, tc := range []struct {
			actor   *Actor
			profile Profile
		}{{patientActor, patientP1}, {otherDoctor, doctorD2}} {
			decision := Authorize(request(tc.actor, tc.profile, ActionRead, ResourceDoctor, unapproved))
			assert.Equal(t, ReasonResourceNotFound, decision.Reason, "actor %s", tc.actor.ID)
		}
	})

	t.Run("Unapproved profile is visible to its doctor and admin", func(t *testing.T) {
		assert.True(t, Authorize(request(doctorActor, doctorD1, ActionRead, ResourceDoctor, unapproved)).Allowed)
		assert.True(t, Authorize(request(admin, NoProfile, ActionRead, ResourceDoctor, unapproved)).Allowed)
	})

	t.Run("Owning doctor updates but cannot approve itself", func(t *testing.T) {
		assert.True(t, Authorize(request(doctorActor, doctorD1, ActionUpdate, ResourceDoctor, approved.WithChanges(Changes{"bio": "hi"}))).Allowed)

		decision := Authorize(request(doctorActor, doctorD1, ActionUpdate, ResourceDoctor, unapproved.WithChanges(Changes{"isApproved": true})))
		assert.Equal(t, ReasonRoleNotPermitted, decision.Reason)
	})

	t.Run("Other doctor cannot update approved profile", func(t *testing.T) {
		decision := Authorize(request(otherDoctor, doctorD2, ActionUpdate, ResourceDoctor, approved.WithChanges(Changes{"bio": "hi"})))
		assert.Equal(t, ReasonNotOwner, decision.Reason)
	})

	t.Run("Admin update may include approval", func(t *testing.T) {
		assert.True(t, Authorize(request(admin, NoProfile, ActionUpdate, ResourceDoctor, unapproved.WithChanges(Changes{"isApproved": true}))).Allowed)
	})

	t.Run("Approve is admin only", func(t *testing.T) {
		assert.True(t, Authorize(request(admin, NoProfile, ActionApprove, ResourceDoctor, unapproved)).Allowed)

		decision := Authorize(request(doctorActor, doctorD1, ActionApprove, ResourceDoctor, unapproved))
		assert.Equal(t, ReasonRoleNotPermitted, decision.Reason)
	})

	t.Run("Delete is admin only", func(t *testing.T) {
		decision := Authorize(request(patientActor, patientP1, ActionDelete, ResourceDoctor, approved))
		assert.Equal(t, ReasonRoleNotPermitted, decision.Reason)
		assert.True(t, Authorize(request(admin, NoProfile, ActionDelete, ResourceDoctor, approved)).Allowed)
	})
}

func TestAuthorizePatientProfile(t *testing.T) {
	target := TargetOf(&models.Patient{ID: "patient-1", UserID: "user-p1"})

	assert.True(t, Authorize(request(patientActor, MissingProfile(), ActionCreate, ResourcePatient, &Target{})).Allowed)
	assert.True(t, Authorize(request(admin, NoProfile, ActionCreate, ResourcePatient, &Target{})).Allowed)
	assert.Equal(t, ReasonAlreadyExists, Authorize(request(patientActor, patientP1, ActionCreate, ResourcePatient, &Target{ProfileExists: true})).Reason)
	assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(doctorActor, doctorD1, ActionCreate, ResourcePatient, &Target{})).Reason)

	assert.True(t, Authorize(request(patientActor, patientP1, ActionRead, ResourcePatient, target)).Allowed)
	assert.True(t, Authorize(request(admin, NoProfile, ActionRead, ResourcePatient, target)).Allowed)
	assert.Equal(t, ReasonNotOwner, Authorize(request(otherPatient, patientP2, ActionRead, ResourcePatient, target)).Reason)
	assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(doctorActor, doctorD1, ActionRead, ResourcePatient, target)).Reason)

	assert.True(t, Authorize(request(patientActor, patientP1, ActionUpdate, ResourcePatient, target.WithChanges(Changes{"phone": "+12025550100"}))).Allowed)
	assert.Equal(t, ReasonNotOwner, Authorize(request(otherPatient, patientP2, ActionUpdate, ResourcePatient, target)).Reason)

	assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(patientActor, patientP1, ActionDelete, ResourcePatient, target)).Reason)
	assert.True(t, Authorize(request(doctorActor, doctorD1, ActionList, ResourcePatient, nil)).Allowed)
}

func TestAuthorizeDoctorAuthoredResources(t *testing.T) {
	record := TargetOf(&models.MedicalRecord{ID: "mr-1", PatientID: "patient-1", DoctorID: "doctor-2"})

	for _, resource := range []ResourceType{ResourceMedicalRecord, ResourcePrescription} {
		t.Run(string(resource), func(t *testing.T) {
			t.Run("Doctor of the parent creates", func(t *testing.T) {
				assert.True(t, Authorize(request(otherDoctor, doctorD2, ActionCreate, resource, record)).Allowed)
			})

			t.Run("Another doctor cannot create", func(t *testing.T) {
				assert.Equal(t, ReasonNotOwner, Authorize(request(doctorActor, doctorD1, ActionCreate, resource, record)).Reason)
			})

			t.Run("Patient cannot create", func(t *testing.T) {
				assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(patientActor, patientP1, ActionCreate, resource, record)).Reason)
			})

			t.Run("Admin creates", func(t *testing.T) {
				assert.True(t, Authorize(request(admin, NoProfile, ActionCreate, resource, record)).Allowed)
			})

			t.Run("Doctor D1 cannot update a record authored by D2", func(t *testing.T) {
				decision := Authorize(request(doctorActor, doctorD1, ActionUpdate, resource, record.WithChanges(Changes{"notes": "x"})))
				assert.Equal(t, ReasonNotOwner, decision.Reason)
			})

			t.Run("Doctor D1 cannot even read a record authored by D2", func(t *testing.T) {
				assert.Equal(t, ReasonNotOwner, Authorize(request(doctorActor, doctorD1, ActionRead, resource, record)).Reason)
			})

			t.Run("Owner patient reads but cannot update", func(t *testing.T) {
				assert.True(t, Authorize(request(patientActor, patientP1, ActionRead, resource, record)).Allowed)
				assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(patientActor, patientP1, ActionUpdate, resource, record)).Reason)
			})

			t.Run("Delete is admin only", func(t *testing.T) {
				assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(otherDoctor, doctorD2, ActionDelete, resource, record)).Reason)
				assert.True(t, Authorize(request(admin, NoProfile, ActionDelete, resource, record)).Allowed)
			})
		})
	}
}

func TestAuthorizeInvoice(t *testing.T) {
	withDoctor := TargetOf(&models.Invoice{ID: "inv-1", PatientID: "patient-1", DoctorID: "doctor-1"})
	withoutDoctor := TargetOf(&models.Invoice{ID: "inv-2", PatientID: "patient-1"})

	assert.True(t, Authorize(request(admin, NoProfile, ActionCreate, ResourceInvoice, nil)).Allowed)
	assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(doctorActor, doctorD1, ActionCreate, ResourceInvoice, nil)).Reason)
	assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(patientActor, patientP1, ActionUpdate, ResourceInvoice, withDoctor)).Reason)

	assert.True(t, Authorize(request(patientActor, patientP1, ActionRead, ResourceInvoice, withDoctor)).Allowed)
	assert.True(t, Authorize(request(doctorActor, doctorD1, ActionRead, ResourceInvoice, withDoctor)).Allowed)
	assert.Equal(t, ReasonNotOwner, Authorize(request(doctorActor, doctorD1, ActionRead, ResourceInvoice, withoutDoctor)).Reason)
	assert.Equal(t, ReasonNotOwner, Authorize(request(otherPatient, patientP2, ActionRead, ResourceInvoice, withDoctor)).Reason)

	assert.True(t, Authorize(request(patientActor, patientP1, ActionPay, ResourceInvoice, withDoctor)).Allowed)
	assert.True(t, Authorize(request(admin, NoProfile, ActionPay, ResourceInvoice, withDoctor)).Allowed)
	assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(doctorActor, doctorD1, ActionPay, ResourceInvoice, withDoctor)).Reason)
	assert.Equal(t, ReasonNotOwner, Authorize(request(otherPatient, patientP2, ActionPay, ResourceInvoice, withDoctor)).Reason)
}

func TestAuthorizeAdminOnlyResources(t *testing.T) {
	for _, resource := range []ResourceType{ResourceUser, ResourceAuditLog} {
		assert.True(t, Authorize(request(admin, NoProfile, ActionList, resource, nil)).Allowed)
		assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(doctorActor, doctorD1, ActionList, resource, nil)).Reason)
		assert.Equal(t, ReasonRoleNotPermitted, Authorize(request(patientActor, patientP1, ActionCreate, resource, nil)).Reason)
	}
}
