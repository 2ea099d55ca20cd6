package utils

import (
	"regexp"

	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

var (
	reSpecialChar     = regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar)
	reUppercase       = regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase)
	reTimeSlot        = regexp.MustCompile(constvars.RegexTimeSlot)
	appointmentStatus = map[string]bool{}
	registrationRoles = map[string]bool{"patient": true, "doctor": true}
)

func init() {
	for _, status := range append(models.ActiveAppointmentStatuses, models.AppointmentStatusCancelled) {
		appointmentStatus[status] = true
	}

	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("time_slot", validateTimeSlot)
	validate.RegisterValidation("appointment_status", validateAppointmentStatus)
	validate.RegisterValidation("register_role", validateRegisterRole)
	validate.RegisterValidation("object_id", validateObjectID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 8 && reSpecialChar.MatchString(password) && reUppercase.MatchString(password)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return IsValidPhoneNumber(fl.Field().String())
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	return reTimeSlot.MatchString(fl.Field().String())
}

func validateAppointmentStatus(fl validator.FieldLevel) bool {
	return appointmentStatus[fl.Field().String()]
}

func validateRegisterRole(fl validator.FieldLevel) bool {
	return registrationRoles[fl.Field().String()]
}

func validateObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}
