package constvars

const (
	RegexContainAtLeastOneSpecialChar = `.*[!@#$%^&*(),.?":{}|<>].*`
	RegexContainAtLeastOneUppercase   = `.*[A-Z].*`
)

// RegexTimeSlot matches "HH:MM" on a 24h clock.
const RegexTimeSlot = `^([01]\d|2[0-3]):[0-5]\d$`

const (
	DateFormatYYYYMMDD = "2006-01-02"
	DefaultPhoneRegion = "US"
)
