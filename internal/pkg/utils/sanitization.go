package utils

import (
	"strings"

	"hospital-service/internal/pkg/dto/requests"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	sanitizedArray := make([]string, 0, len(input))
	for _, v := range input {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			sanitizedArray = append(sanitizedArray, trimmed)
		}
	}
	return sanitizedArray
}

func SanitizeRegisterUserRequest(input *requests.RegisterUser) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
}

func SanitizeCreateUserRequest(input *requests.CreateUser) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
}

func SanitizeLoginUserRequest(input *requests.LoginUser) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

func SanitizeCreateDoctorRequest(input *requests.CreateDoctor) {
	input.Specialization = strings.TrimSpace(input.Specialization)
	input.LicenseNumber = strings.ToUpper(strings.TrimSpace(input.LicenseNumber))
	input.Qualifications = cleanWhiteSpaceFromEachStringOfAnArray(input.Qualifications)
}

func SanitizeCreatePatientRequest(input *requests.CreatePatient) {
	input.Address = strings.TrimSpace(input.Address)
	input.Allergies = cleanWhiteSpaceFromEachStringOfAnArray(input.Allergies)
	input.MedicalHistory = cleanWhiteSpaceFromEachStringOfAnArray(input.MedicalHistory)
}

func SanitizeCreateMedicalRecordRequest(input *requests.CreateMedicalRecord) {
	input.Diagnosis = strings.TrimSpace(input.Diagnosis)
	input.Treatment = strings.TrimSpace(input.Treatment)
	input.Symptoms = cleanWhiteSpaceFromEachStringOfAnArray(input.Symptoms)
}
