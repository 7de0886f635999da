package errors

import (
	stdErrors "errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"forbidden", ErrForbidden},
		{"invalid state", ErrInvalidState},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductName: "Gamis Basic", SKU: "GB-M-NAVY", Requested: 5, Available: 3}
	msg := err.Error()
	for _, want := range []string{"Gamis Basic", "GB-M-NAVY", "5", "3"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected message to contain %q, got %q", want, msg)
		}
	}
}

func TestInvalidStateErrorUnwrapsToSentinel(t *testing.T) {
	err := &InvalidStateError{Entity: "order", State: "CANCELLED", Reason: "terminal"}
	if !stdErrors.Is(err, ErrInvalidState) {
		t.Fatalf("expected InvalidStateError to unwrap to ErrInvalidState")
	}
}

func TestValidationErrorAs(t *testing.T) {
	err := NewValidation("order must contain at least %d item", 1)
	var verr *ValidationError
	if !stdErrors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Reason != "order must contain at least 1 item" {
		t.Fatalf("unexpected reason: %q", verr.Reason)
	}
}
