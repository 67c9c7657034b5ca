package domain

import (
	"strings"
	"testing"
)

func TestValidateClientName(t *testing.T) {
	if err := ValidateClientName("Ferretería San Martín"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateClientName("   "); err == nil {
		t.Error("expected error for blank name")
	}
	if err := ValidateClientName(strings.Repeat("x", 300)); err == nil {
		t.Error("expected error for oversized name")
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"", "ventas@empresa.com.ar", "Juan.Perez+cc@mail.co"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("%s: unexpected error: %v", email, err)
		}
	}

	invalid := []string{"no-at-sign", "a@b", "spaces in@mail.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("%s: expected error", email)
		}
	}
}

func TestValidateTaxID(t *testing.T) {
	valid := []string{"", "20304050607", "20-30405060-7", "30123456"}
	for _, id := range valid {
		if err := ValidateTaxID(id); err != nil {
			t.Errorf("%s: unexpected error: %v", id, err)
		}
	}

	invalid := []string{"abc", "12", "20-3040-5060"}
	for _, id := range invalid {
		if err := ValidateTaxID(id); err == nil {
			t.Errorf("%s: expected error", id)
		}
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Errorf("expected defaults 50/0, got %d/%d", limit, offset)
	}

	limit, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Errorf("expected clamp to 1000, got %d", limit)
	}

	limit, offset = ValidatePagination(25, 100)
	if limit != 25 || offset != 100 {
		t.Errorf("expected passthrough 25/100, got %d/%d", limit, offset)
	}
}
