package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"smarthauling/internal/model"
)

var (
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	nonDigitRegex = regexp.MustCompile(`\D`)
)

// RegistrationInput carries the registration form fields.
type RegistrationInput struct {
	FirstName       string
	LastName        string
	Email           string
	CountryCode     string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
	Role            model.Role
	LicenseNumber   string
	LicenseExpiry   *time.Time
	TermsAccepted   bool
}

// ValidationError reports per-field failures. No backend call is made while
// any field is invalid.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// RegistrationValidator validates registration form fields.
type RegistrationValidator struct{}

// NewRegistrationValidator creates a new registration validator.
func NewRegistrationValidator() *RegistrationValidator {
	return &RegistrationValidator{}
}

// Validate checks all fields and returns a ValidationError listing every
// failure, or nil when the input is acceptable.
func (v *RegistrationValidator) Validate(in RegistrationInput) *ValidationError {
	errs := map[string]string{}

	if in.FirstName == "" {
		errs["first_name"] = "First name is required"
	}
	if in.LastName == "" {
		errs["last_name"] = "Last name is required"
	}

	switch {
	case in.Email == "":
		errs["email"] = "Email is required"
	case !emailRegex.MatchString(in.Email):
		errs["email"] = "Email is invalid"
	}

	if in.PhoneNumber == "" {
		errs["phone_number"] = "Phone number is required"
	}

	switch {
	case in.Password == "":
		errs["password"] = "Password is required"
	case len(in.Password) < 8:
		errs["password"] = "Password must be at least 8 characters"
	}

	switch {
	case in.ConfirmPassword == "":
		errs["confirm_password"] = "Please confirm your password"
	case in.ConfirmPassword != in.Password:
		errs["confirm_password"] = "Passwords do not match"
	}

	if in.Role == model.RoleDriver {
		if in.LicenseNumber == "" {
			errs["license_number"] = "License number is required for drivers"
		}
		switch {
		case in.LicenseExpiry == nil:
			errs["license_expiry"] = "License expiry date is required for drivers"
		case in.LicenseExpiry.Before(startOfDay(time.Now())):
			errs["license_expiry"] = "License expiry date must not be in the past"
		}
	}

	if !in.TermsAccepted {
		errs["terms_accepted"] = "You must accept the terms and conditions"
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// FullPhoneNumber keeps only digits of the local number and prefixes the
// selected country code.
func (v *RegistrationValidator) FullPhoneNumber(countryCode, phoneNumber string) string {
	return countryCode + nonDigitRegex.ReplaceAllString(phoneNumber, "")
}

// PasswordStrength scores a password in four additive 25-point bands: length
// of at least 8, an uppercase letter, a digit, and a non-alphanumeric
// character. The score is user feedback only; acceptance needs only the
// 8-character minimum.
func PasswordStrength(password string) int {
	if password == "" {
		return 0
	}

	strength := 0
	if len(password) >= 8 {
		strength += 25
	}
	if strings.IndexFunc(password, isUpper) >= 0 {
		strength += 25
	}
	if strings.IndexFunc(password, isDigit) >= 0 {
		strength += 25
	}
	if strings.IndexFunc(password, isSpecial) >= 0 {
		strength += 25
	}
	return strength
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isSpecial(r rune) bool {
	return !(r >= 'A' && r <= 'Z') && !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
