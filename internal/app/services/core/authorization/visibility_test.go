package authorization

import (
	"context"
	"testing"

	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestScopeQuery(t *testing.T) {
	t.Run("Admin sees everything", func(t *testing.T) {
		for _, resource := range []ResourceType{ResourceAppointment, ResourcePatient, ResourceMedicalRecord, ResourceInvoice, ResourceAuditLog} {
			assert.Equal(t, PredicateAll, ScopeQuery(admin, NoProfile, resource).Kind, "resource %s", resource)
		}
	})

	t.Run("Doctor is scoped by doctorId", func(t *testing.T) {
		predicate := ScopeQuery(doctorActor, doctorD1, ResourceMedicalRecord)
		assert.Equal(t, Predicate{Kind: PredicateMatch, Field: FieldDoctorID, Value: "doctor-1"}, predicate)
	})

	t.Run("Patient is scoped by patientId", func(t *testing.T) {
		predicate := ScopeQuery(patientActor, patientP1, ResourceInvoice)
		assert.Equal(t, Predicate{Kind: PredicateMatch, Field: FieldPatientID, Value: "patient-1"}, predicate)
	})

	t.Run("Patient only lists own profile", func(t *testing.T) {
		predicate := ScopeQuery(patientActor, patientP1, ResourcePatient)
		assert.Equal(t, Predicate{Kind: PredicateMatch, Field: FieldID, Value: "patient-1"}, predicate)
	})

	t.Run("Doctor lists all patients", func(t *testing.T) {
		assert.Equal(t, PredicateAll, ScopeQuery(doctorActor, doctorD1, ResourcePatient).Kind)
	})

	t.Run("Missing profile yields zero rows instead of an error", func(t *testing.T) {
		assert.Equal(t, PredicateNone, ScopeQuery(patientActor, MissingProfile(), ResourceAppointment).Kind)
		assert.Equal(t, PredicateNone, ScopeQuery(doctorActor, MissingProfile(), ResourcePrescription).Kind)
	})

	t.Run("Non-admin roles never see audit logs", func(t *testing.T) {
		assert.Equal(t, PredicateNone, ScopeQuery(doctorActor, doctorD1, ResourceAuditLog).Kind)
	})

	t.Run("Doctor listing hides unapproved profiles unless admin", func(t *testing.T) {
		assert.Equal(t, Predicate{Kind: PredicateAll, ApprovedOnly: true}, ScopeQuery(nil, NoProfile, ResourceDoctor))
		assert.Equal(t, Predicate{Kind: PredicateAll, ApprovedOnly: true}, ScopeQuery(patientActor, patientP1, ResourceDoctor))
		assert.Equal(t, Predicate{Kind: PredicateAll}, ScopeQuery(admin, NoProfile, ResourceDoctor))
	})

	t.Run("Anonymous sees nothing else", func(t *testing.T) {
		assert.Equal(t, PredicateNone, ScopeQuery(nil, NoProfile, ResourceAppointment).Kind)
	})
}

func TestOwnersOf(t *testing.T) {
	owners, ok := OwnersOf(&models.Prescription{PatientID: "patient-1", DoctorID: "doctor-1"})
	assert.True(t, ok)
	assert.Equal(t, Owners{PatientID: "patient-1", DoctorID: "doctor-1"}, owners)

	owners, ok = OwnersOf(&models.Invoice{PatientID: "patient-1"})
	assert.True(t, ok)
	assert.Empty(t, owners.DoctorID, "invoice without doctor has no doctor owner")

	_, ok = OwnersOf(&models.AuditLog{})
	assert.False(t, ok, "audit logs carry no ownership")

	target := TargetOf(&models.Doctor{ID: "doctor-1", IsApproved: true})
	assert.True(t, target.Approved)
	assert.Equal(t, "doctor-1", target.Owners.DoctorID)
}

func TestObservedEngineCountsDecisions(t *testing.T) {
	engine := NewObservedEngine(NewEngine(), zap.NewNop())
	counter := metrics.AuthorizationDecisions.WithLabelValues(string(ResourceInvoice), string(ActionPay), string(ReasonRoleNotPermitted))
	before := testutil.ToFloat64(counter)

	decision := engine.Authorize(context.Background(), request(doctorActor, doctorD1, ActionPay, ResourceInvoice, &Target{}))

	assert.False(t, decision.Allowed)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestActorContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ActorFromContext(ctx))

	ctx = WithActor(ctx, patientActor)
	assert.Equal(t, patientActor, ActorFromContext(ctx))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" Doctor ")
	assert.True(t, ok)
	assert.Equal(t, RoleDoctor, role)

	_, ok = ParseRole("superadmin")
	assert.False(t, ok)
}
