package model

// IsCanonical reports whether s is a canonical decimal integer: an optional
// "-" followed by digits with no leading zero, where "0" is never signed.
func IsCanonical(s string) bool {
	digits := s
	if len(s) > 0 && s[0] == '-' {
		digits = s[1:]
		if digits == "0" {
			return false
		}
	}
	if digits == "" {
		return false
	}
	if len(digits) > 1 && digits[0] == '0' {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// IsZero reports whether s spells the value zero in any form ("0", "-0",
// "+000", ...). Non-numeric strings are not zero.
func IsZero(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}
