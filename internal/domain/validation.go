package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidClientName = errors.New("invalid client name")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidTaxID      = errors.New("invalid CUIT/DNI")
)

// Validation constants
const (
	MaxNameLength = 255
	MinNameLength = 1
)

// Pagination bounds, shared by the HTTP layer and the use cases so a
// request is clamped once and the same way everywhere.
const (
	DefaultPageSize = 50
	MaxPageSize     = 1000
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	taxIDRegex = regexp.MustCompile(`^[0-9]{7,11}$|^[0-9]{2}-[0-9]{8}-[0-9]$`)
)

// ValidateClientName validates a client display name.
func ValidateClientName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidClientName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidClientName, MaxNameLength)
	}

	return nil
}

// ValidateEmail validates email format. Empty is allowed.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil
	}

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateTaxID validates a CUIT (XX-XXXXXXXX-X or bare digits) or DNI.
// Empty is allowed; not every client is registered.
func ValidateTaxID(taxID string) error {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return nil
	}

	if !taxIDRegex.MatchString(taxID) {
		return fmt.Errorf("%w: %s", ErrInvalidTaxID, taxID)
	}

	return nil
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
