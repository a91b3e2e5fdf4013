package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeSlotConflict, "slot conflict", http.StatusConflict)

	if err.Code != CodeSlotConflict {
		t.Errorf("expected code %s, got %s", CodeSlotConflict, err.Code)
	}
	if err.Message != "slot conflict" {
		t.Errorf("expected message 'slot conflict', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	unwrapped := errors.Unwrap(appErr)
	if unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestDomainConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"unauthorized", Unauthorized("not authorized"), CodeUnauthorized, http.StatusUnauthorized},
		{"malformed input", MalformedInput("bad payload"), CodeMalformedInput, http.StatusBadRequest},
		{"malformed schedule", MalformedSchedule("bad window"), CodeMalformedSchedule, http.StatusBadRequest},
		{"unknown room", UnknownRoom("Atlantis"), CodeUnknownRoom, http.StatusNotFound},
		{"capacity exceeded", CapacityExceeded("Sirius", 10, 6), CodeCapacityExceeded, http.StatusConflict},
		{"slot conflict", SlotConflict("Sirius"), CodeSlotConflict, http.StatusConflict},
		{"no pending request", NoPendingRequest(), CodeNoPendingRequest, http.StatusConflict},
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"internal", Internal("boom", errors.New("x")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestCapacityExceeded_Details(t *testing.T) {
	err := CapacityExceeded("Ada Lovelace", 80, 70)

	if err.Details["requested_capacity"] != 80 {
		t.Errorf("expected requested_capacity 80, got %v", err.Details["requested_capacity"])
	}
	if err.Details["max_capacity"] != 70 {
		t.Errorf("expected max_capacity 70, got %v", err.Details["max_capacity"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Booking")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("AsAppError should return the same AppError")
	}

	plain := errors.New("plain")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("expected plain error to map to %s, got %s", CodeInternal, wrapped.Code)
	}
}
