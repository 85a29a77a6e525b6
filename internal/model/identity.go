package model

import (
	"fmt"
	"strings"
)

// MinPhoneDigits is the shortest phone number accepted for login.
const MinPhoneDigits = 10

// IdentityKey is the normalized email or phone a user record is stored under.
type IdentityKey string

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(raw string) (IdentityKey, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return IdentityKey(email), nil
}

// NormalizePhone strips separators from a phone number and keeps an optional leading plus.
func NormalizePhone(raw string) (IdentityKey, error) {
	trimmed := strings.TrimSpace(raw)

	var b strings.Builder
	digits := 0
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
		}
	}
	if digits < MinPhoneDigits {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}

	return IdentityKey(b.String()), nil
}

// IsEmail reports whether the key was derived from an email address.
func (k IdentityKey) IsEmail() bool {
	return strings.Contains(string(k), "@")
}

// IsZero reports whether the key is empty, i.e. a guest.
func (k IdentityKey) IsZero() bool {
	return k == ""
}

func (k IdentityKey) String() string {
	return string(k)
}
