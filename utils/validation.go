package utils

import "regexp"

var (
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
	emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

// IsValidPhone reports whether the value is a bare 10-digit phone number.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
