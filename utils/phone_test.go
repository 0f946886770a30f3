package utils

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"+1 555 010 9999", "020 7946 0958", "5550100", "+222 46 12 34 56"}
	for _, number := range valid {
		if !ValidatePhoneNumber(number) {
			t.Errorf("%q should be valid", number)
		}
	}

	invalid := []string{"", "12345", "call me", "+12345678901234567890"}
	for _, number := range invalid {
		if ValidatePhoneNumber(number) {
			t.Errorf("%q should be invalid", number)
		}
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct{ in, want string }{
		{"+1 (555) 010-9999", "+15550109999"},
		{"020 7946 0958", "2079460958"},
		{"  5550100 ", "5550100"},
	}
	for _, tc := range cases {
		if got := NormalizePhoneNumber(tc.in); got != tc.want {
			t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
