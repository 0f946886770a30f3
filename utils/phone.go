package utils

import (
	"regexp"
	"strings"
)

var phoneDigits = regexp.MustCompile(`\D`)

// NormalizePhoneNumber strips formatting from a customer phone number for
// storage: digits only, leading zeros trimmed, a leading + preserved as the
// international prefix.
func NormalizePhoneNumber(phoneNumber string) string {
	trimmed := strings.TrimSpace(phoneNumber)
	international := strings.HasPrefix(trimmed, "+")

	digits := phoneDigits.ReplaceAllString(trimmed, "")
	if !international {
		digits = strings.TrimLeft(digits, "0")
	}
	if international {
		return "+" + digits
	}
	return digits
}

// ValidatePhoneNumber accepts any plausible widget-entered number: 7 to 15
// digits after formatting is stripped. Bookings come from many countries,
// so no per-country prefix rules here.
func ValidatePhoneNumber(phoneNumber string) bool {
	digits := phoneDigits.ReplaceAllString(phoneNumber, "")
	return len(digits) >= 7 && len(digits) <= 15
}
