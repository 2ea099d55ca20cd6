package medical_records

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/core/coretest"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, bucketName, objectName string) (string, error) {
	args := m.Called(ctx, file, size, contentType, bucketName, objectName)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) RemoveFile(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

const bucket = "records"

type fixture struct {
	store      *coretest.Store
	records    *coretest.MedicalRecordRepository
	tx         *coretest.Transactor
	storage    *MockStorage
	audit      *coretest.AuditRecorder
	usecase    contracts.MedicalRecordUsecase
	doctorUser *models.User
	patient    *models.User
	visit      *models.Appointment
}

func newFixture() *fixture {
	store := coretest.NewStore()
	f := &fixture{
		store:   store,
		records: &coretest.MedicalRecordRepository{Store: store},
		tx:      &coretest.Transactor{Store: store},
		storage: &MockStorage{},
		audit:   &coretest.AuditRecorder{},
	}
	internalConfig := &config.InternalConfig{Minio: config.AppMinio{BucketName: bucket, PreSignedUrlExpiryTimeInHour: 1}}
	f.usecase = NewMedicalRecordUsecase(
		f.records,
		&coretest.AppointmentRepository{Store: store},
		f.tx,
		f.storage,
		f.audit,
		coretest.NewGuard(store),
		internalConfig,
		zap.NewNop(),
	)

	doctorUser, doctor := store.AddDoctor("house", true)
	patientUser, patient := store.AddPatient("alice")
	f.doctorUser = doctorUser
	f.patient = patientUser
	f.visit = store.AddAppointment(patient.ID, doctor.ID, "2024-06-01", "10:00", models.AppointmentStatusConfirmed)
	return f
}

func (f *fixture) as(user *models.User) context.Context {
	return coretest.AsUser(context.Background(), user)
}

func TestCreateMedicalRecord(t *testing.T) {
	t.Run("Owning doctor records the visit and completes the appointment", func(t *testing.T) {
		f := newFixture()

		record, err := f.usecase.CreateMedicalRecord(f.as(f.doctorUser), &requests.CreateMedicalRecord{
			AppointmentID: f.visit.ID,
			Diagnosis:     "flu",
			Treatment:     "rest",
		})

		require.NoError(t, err)
		assert.Equal(t, f.visit.PatientID, record.PatientID)
		assert.Equal(t, f.visit.DoctorID, record.DoctorID)
		assert.Equal(t, []string{}, record.Symptoms)
		assert.Equal(t, models.AppointmentStatusCompleted, f.store.Appointment(f.visit.ID).Status)
		assert.Len(t, f.store.MedicalRecords, 1)
		assert.Equal(t, []authorization.Action{authorization.ActionCreate}, f.audit.Actions())
	})

	t.Run("Another doctor is denied and nothing changes", func(t *testing.T) {
		f := newFixture()
		otherDoctor, _ := f.store.AddDoctor("wilson", true)

		_, err := f.usecase.CreateMedicalRecord(f.as(otherDoctor), &requests.CreateMedicalRecord{
			AppointmentID: f.visit.ID,
			Diagnosis:     "flu",
			Treatment:     "rest",
		})

		assert.Equal(t, exceptions.KindNotOwner, exceptions.KindOf(err))
		assert.Equal(t, models.AppointmentStatusConfirmed, f.store.Appointment(f.visit.ID).Status)
		assert.Empty(t, f.store.MedicalRecords)
		assert.Empty(t, f.audit.Entries)
	})

	t.Run("Patient may not author records", func(t *testing.T) {
		f := newFixture()

		_, err := f.usecase.CreateMedicalRecord(f.as(f.patient), &requests.CreateMedicalRecord{AppointmentID: f.visit.ID, Diagnosis: "flu", Treatment: "rest"})
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	})

	t.Run("Retried commit stores the record once", func(t *testing.T) {
		f := newFixture()
		f.tx.Retries = 1

		record, err := f.usecase.CreateMedicalRecord(f.as(f.doctorUser), &requests.CreateMedicalRecord{AppointmentID: f.visit.ID, Diagnosis: "flu", Treatment: "rest"})

		require.NoError(t, err)
		assert.Equal(t, 2, f.tx.Attempts)
		require.Len(t, f.store.MedicalRecords, 1)
		assert.Contains(t, f.store.MedicalRecords, record.ID)
		assert.Equal(t, models.AppointmentStatusCompleted, f.store.Appointment(f.visit.ID).Status)
		assert.Len(t, f.audit.Entries, 1)
	})

	t.Run("Failed write leaves the appointment open", func(t *testing.T) {
		f := newFixture()
		f.records.FailCreate = errors.New("write conflict")

		_, err := f.usecase.CreateMedicalRecord(f.as(f.doctorUser), &requests.CreateMedicalRecord{AppointmentID: f.visit.ID, Diagnosis: "flu", Treatment: "rest"})

		assert.Error(t, err)
		assert.Equal(t, models.AppointmentStatusConfirmed, f.store.Appointment(f.visit.ID).Status)
		assert.Empty(t, f.store.MedicalRecords)
	})

	t.Run("Admin doctorId must match the appointment", func(t *testing.T) {
		f := newFixture()
		admin := f.store.AddUser("root", authorization.RoleAdmin)

		_, err := f.usecase.CreateMedicalRecord(f.as(admin), &requests.CreateMedicalRecord{
			AppointmentID: f.visit.ID,
			DoctorID:      "ffffffffffffffffffffffff",
			Diagnosis:     "flu",
			Treatment:     "rest",
		})
		assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))
	})

	t.Run("Unknown appointment", func(t *testing.T) {
		f := newFixture()

		_, err := f.usecase.CreateMedicalRecord(f.as(f.doctorUser), &requests.CreateMedicalRecord{AppointmentID: "ffffffffffffffffffffffff", Diagnosis: "flu", Treatment: "rest"})
		assert.Equal(t, exceptions.KindResourceNotFound, exceptions.KindOf(err))
	})
}

func TestMedicalRecordAccess(t *testing.T) {
	f := newFixture()
	record := f.store.AddMedicalRecord(f.visit)
	stranger, _ := f.store.AddPatient("mallory")
	diagnosis := "cold"

	t.Run("Owning patient reads", func(t *testing.T) {
		found, err := f.usecase.FindByID(f.as(f.patient), record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, found.ID)
	})

	t.Run("Other patient is not the owner", func(t *testing.T) {
		_, err := f.usecase.FindByID(f.as(stranger), record.ID)
		assert.Equal(t, exceptions.KindNotOwner, exceptions.KindOf(err))
	})

	t.Run("Patient cannot edit", func(t *testing.T) {
		_, err := f.usecase.UpdateMedicalRecord(f.as(f.patient), record.ID, &requests.UpdateMedicalRecord{Diagnosis: &diagnosis})
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	})

	t.Run("Empty update is rejected", func(t *testing.T) {
		_, err := f.usecase.UpdateMedicalRecord(f.as(f.doctorUser), record.ID, &requests.UpdateMedicalRecord{})
		assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))
	})

	t.Run("Owning doctor edits", func(t *testing.T) {
		updated, err := f.usecase.UpdateMedicalRecord(f.as(f.doctorUser), record.ID, &requests.UpdateMedicalRecord{Diagnosis: &diagnosis})
		require.NoError(t, err)
		assert.Equal(t, diagnosis, updated.Diagnosis)
		assert.Equal(t, []string{"diagnosis"}, f.audit.Entries[len(f.audit.Entries)-1].Details["fields"])
	})

	t.Run("Lists are scoped to the caller", func(t *testing.T) {
		_, total, err := f.usecase.FindAll(f.as(stranger), &requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Zero(t, total)

		_, total, err = f.usecase.FindAll(f.as(f.patient), &requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("Doctor cannot delete", func(t *testing.T) {
		err := f.usecase.DeleteMedicalRecord(f.as(f.doctorUser), record.ID)
		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
	})
}

func TestAttachments(t *testing.T) {
	t.Run("Upload stores the file and presigns it", func(t *testing.T) {
		f := newFixture()
		record := f.store.AddMedicalRecord(f.visit)
		f.storage.On("UploadFile", mock.Anything, mock.Anything, int64(4), "image/png", bucket, mock.AnythingOfType("string")).Return("medical-records/x.png", nil)
		f.storage.On("GetObjectUrlWithExpiryTime", mock.Anything, bucket, "medical-records/x.png", time.Hour).Return("https://files/x.png", nil)

		attachment, err := f.usecase.UploadAttachment(f.as(f.doctorUser), record.ID, strings.NewReader("data"), &requests.UploadAttachment{
			FileName:    "scan.png",
			ContentType: "image/png",
			Size:        4,
		})

		require.NoError(t, err)
		assert.Equal(t, "https://files/x.png", attachment.URL)
		assert.NotEmpty(t, attachment.ID)
		assert.Len(t, f.store.MedicalRecords[record.ID].Attachments, 1)
		f.storage.AssertExpectations(t)
	})

	t.Run("Patient cannot upload", func(t *testing.T) {
		f := newFixture()
		record := f.store.AddMedicalRecord(f.visit)

		_, err := f.usecase.UploadAttachment(f.as(f.patient), record.ID, strings.NewReader("data"), &requests.UploadAttachment{FileName: "scan.png", Size: 4})

		assert.Equal(t, exceptions.KindRoleNotPermitted, exceptions.KindOf(err))
		f.storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete keeps the reference when the store refuses", func(t *testing.T) {
		f := newFixture()
		record := f.store.AddMedicalRecord(f.visit)
		attachment := &models.Attachment{ID: "att-1", FileName: "scan.png", ObjectName: "medical-records/x.png"}
		require.NoError(t, f.records.AddAttachment(context.Background(), record.ID, attachment))
		f.storage.On("RemoveFile", mock.Anything, bucket, "medical-records/x.png").Return(exceptions.ErrFileRemove(errors.New("unreachable"), bucket)).Once()

		err := f.usecase.DeleteAttachment(f.as(f.doctorUser), record.ID, "att-1")

		assert.Equal(t, exceptions.KindUpstreamFailure, exceptions.KindOf(err))
		assert.Len(t, f.store.MedicalRecords[record.ID].Attachments, 1)
	})

	t.Run("Delete removes file and reference", func(t *testing.T) {
		f := newFixture()
		record := f.store.AddMedicalRecord(f.visit)
		attachment := &models.Attachment{ID: "att-1", FileName: "scan.png", ObjectName: "medical-records/x.png"}
		require.NoError(t, f.records.AddAttachment(context.Background(), record.ID, attachment))
		f.storage.On("RemoveFile", mock.Anything, bucket, "medical-records/x.png").Return(nil).Once()

		err := f.usecase.DeleteAttachment(f.as(f.doctorUser), record.ID, "att-1")

		require.NoError(t, err)
		assert.Empty(t, f.store.MedicalRecords[record.ID].Attachments)
		f.storage.AssertExpectations(t)
	})

	t.Run("Unknown attachment", func(t *testing.T) {
		f := newFixture()
		record := f.store.AddMedicalRecord(f.visit)

		err := f.usecase.DeleteAttachment(f.as(f.doctorUser), record.ID, "missing")
		assert.Equal(t, exceptions.KindResourceNotFound, exceptions.KindOf(err))
	})
}
