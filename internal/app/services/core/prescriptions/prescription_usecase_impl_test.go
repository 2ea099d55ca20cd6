package prescriptions

import (
	"context"
	"testing"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/core/coretest"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPrescriptions(t *testing.T) {
	store := coretest.NewStore()
	audit := &coretest.AuditRecorder{}
	usecase := NewPrescriptionUsecase(
		&coretest.PrescriptionRepository{Store: store},
		&coretest.MedicalRecordRepository{Store: store},
		audit,
		coretest.NewGuard(store),
		zap.NewNop(),
	)

	doctorUser, doctor := store.AddDoctor("house", true)
	otherDoctorUser, _ := store.AddDoctor("wilson", true)
	patientUser, patient := store.AddPatient("alice")
	strangerUser, _ := store.AddPatient("mallory")
	admin := store.AddUser("root", authorization.RoleAdmin)
	visit := store.AddAppointment(patient.ID, doctor.ID, "2024-06-01", "10:00", models.AppointmentStatusCompleted)
	record := store.AddMedicalRecord(visit)

	as := func(user *models.User) context.Context {
		return coretest.AsUser(context.Background(), user)
	}
	request := &requests.CreatePrescription{
		MedicalRecordID: record.ID,
		Medications:     []requests.Medication{{Name: "amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days"}},
	}

	_, err := usecase.CreatePrescription(as(otherDoctorUser), request)
	assert.Equal(t, exceptions.KindNotOwner, exceptions.KindOf(err))

	_, err = usecase.CreatePrescription(as(patientUser), request)
	assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))

	_, err = usecase.CreatePrescription(as(doctorUser), &requests.CreatePrescription{MedicalRecordID: "ffffffffffffffffffffffff", Medications: request.Medications})
	assert.Equal(t, exceptions.KindResourceNotFound, exceptions.KindOf(err))

	prescription, err := usecase.CreatePrescription(as(doctorUser), request)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, prescription.PatientID)
	assert.Equal(t, doctor.ID, prescription.DoctorID)
	assert.Len(t, prescription.Medications, 1)

	_, err = usecase.FindByID(as(patientUser), prescription.ID)
	assert.NoError(t, err)
	_, err = usecase.FindByID(as(strangerUser), prescription.ID)
	assert.Equal(t, exceptions.KindNotOwner, exceptions.KindOf(err))

	instructions := "take with food"
	_, err = usecase.UpdatePrescription(as(patientUser), prescription.ID, &requests.UpdatePrescription{Instructions: &instructions})
	assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	updated, err := usecase.UpdatePrescription(as(doctorUser), prescription.ID, &requests.UpdatePrescription{Instructions: &instructions})
	require.NoError(t, err)
	assert.Equal(t, instructions, updated.Instructions)

	_, total, err := usecase.FindAll(as(strangerUser), &requests.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(usecase.DeletePrescription(as(doctorUser), prescription.ID)))
	require.NoError(t, usecase.DeletePrescription(as(admin), prescription.ID))
	assert.Empty(t, store.Prescriptions)
}
