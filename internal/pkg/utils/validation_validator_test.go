package utils

import (
	"testing"

	"hospital-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	t.Run("Valid appointment request", func(t *testing.T) {
		err := ValidateStruct(&requests.CreateAppointment{
			DoctorID: "665f1c2b9d1e4a0012345678",
			Date:     "2024-06-01",
			TimeSlot: "10:00",
			Reason:   "checkup",
		})
		assert.NoError(t, err)
	})

	t.Run("Invalid time slot", func(t *testing.T) {
		err := ValidateStruct(&requests.CreateAppointment{
			DoctorID: "665f1c2b9d1e4a0012345678",
			Date:     "2024-06-01",
			TimeSlot: "25:00",
			Reason:   "checkup",
		})
		assert.Error(t, err)
	})

	t.Run("Invalid doctor id", func(t *testing.T) {
		err := ValidateStruct(&requests.CreateAppointment{
			DoctorID: "not-an-id",
			Date:     "2024-06-01",
			TimeSlot: "10:00",
			Reason:   "checkup",
		})
		assert.Error(t, err)
	})

	t.Run("Absent update fields are not validated", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&requests.UpdateAppointment{}))
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		status := "archived"
		assert.Error(t, ValidateStruct(&requests.UpdateAppointment{Status: &status}))
	})

	t.Run("Admin cannot be self registered", func(t *testing.T) {
		err := ValidateStruct(&requests.RegisterUser{Name: "Root", Email: "root@example.com", Password: "Str0ng!Pass", Role: "admin"})
		assert.Error(t, err)
	})

	t.Run("Weak password", func(t *testing.T) {
		err := ValidateStruct(&requests.RegisterUser{Name: "Pat", Email: "pat@example.com", Password: "password", Role: "patient"})
		assert.Error(t, err)
	})
}

func TestPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("+1 650-253-0000"))
	assert.False(t, IsValidPhoneNumber("12"))

	normalized, err := NormalizePhoneNumber("(650) 253-0000")
	assert.NoError(t, err)
	assert.Equal(t, "+16502530000", normalized)
}

func TestBuildPaginationResponse(t *testing.T) {
	pagination := BuildPaginationResponse(45, 2, 20, "/api/appointments")
	assert.Equal(t, "/api/appointments?page=3&page_size=20", pagination.NextURL)
	assert.Equal(t, "/api/appointments?page=1&page_size=20", pagination.PrevURL)

	last := BuildPaginationResponse(40, 2, 20, "/api/appointments")
	assert.Empty(t, last.NextURL)
}
