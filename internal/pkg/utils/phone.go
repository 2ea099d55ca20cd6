package utils

import (
	"strings"

	"hospital-service/internal/pkg/constvars"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhoneNumber parses a number in international or default-region
// format and returns its E.164 form.
func NormalizePhoneNumber(input string) (string, error) {
	number, err := phonenumbers.Parse(strings.TrimSpace(input), constvars.DefaultPhoneRegion)
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

func IsValidPhoneNumber(input string) bool {
	number, err := phonenumbers.Parse(strings.TrimSpace(input), constvars.DefaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}

// CanonicalPhoneNumber returns the E.164 form of input when it parses and input
// unchanged otherwise. Empty input stays empty.
func CanonicalPhoneNumber(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	normalized, err := NormalizePhoneNumber(input)
	if err != nil {
		return input
	}
	return normalized
}
