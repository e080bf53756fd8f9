package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "New",
			err:        New(CodeValidation, "validation failed", http.StatusUnprocessableEntity),
			wantCode:   CodeValidation,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "validation failed",
		},
		{
			name:       "NotFound",
			err:        NotFound("Bus"),
			wantCode:   CodeNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "Bus not found",
		},
		{
			name:       "InvalidInput",
			err:        InvalidInput("limit must be a number"),
			wantCode:   CodeInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "limit must be a number",
		},
		{
			name:       "Conflict",
			err:        Conflict("bus number already registered"),
			wantCode:   CodeConflict,
			wantStatus: http.StatusConflict,
			wantMsg:    "bus number already registered",
		},
		{
			name:       "Internal",
			err:        Internal("lookup failed", errors.New("connection reset")),
			wantCode:   CodeInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "lookup failed",
		},
		{
			name:       "Timeout",
			err:        Timeout("request timed out"),
			wantCode:   CodeTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantMsg:    "request timed out",
		},
		{
			name:       "Unavailable",
			err:        Unavailable("Booking Events"),
			wantCode:   CodeUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Booking Events is temporarily unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestErrorIncludesCause(t *testing.T) {
	bare := New(CodeNotFound, "resource not found", http.StatusNotFound)
	if got, want := bare.Error(), "NOT_FOUND: resource not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	caused := Internal("internal error", errors.New("database connection failed"))
	want := "INTERNAL_ERROR: internal error (caused by: database connection failed)"
	if got := caused.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("database connection failed")
	wrapped := Wrap(cause, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != cause {
		t.Error("Wrap should keep the original error as Err")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should see through the AppError to the cause")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity).
		WithDetails(map[string]any{"field": "passenger_email"})

	if err.Details["field"] != "passenger_email" {
		t.Errorf("Details[field] = %v, want passenger_email", err.Details["field"])
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Bus", "64f1c0a2e13db7a9c0a51234")

	if err.Code != CodeNotFound {
		t.Errorf("Code = %s, want %s", err.Code, CodeNotFound)
	}
	if err.Details["resource"] != "Bus" {
		t.Errorf("Details[resource] = %v, want Bus", err.Details["resource"])
	}
	if err.Details["id"] != "64f1c0a2e13db7a9c0a51234" {
		t.Errorf("Details[id] = %v, want the looked-up ID", err.Details["id"])
	}
}

func TestValidationCarriesDetails(t *testing.T) {
	err := Validation("validation failed", map[string]any{"field": "total_seats"})

	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("HTTPStatus = %d, want %d", err.HTTPStatus, http.StatusUnprocessableEntity)
	}
	if err.Details["field"] != "total_seats" {
		t.Errorf("Details[field] = %v, want total_seats", err.Details["field"])
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(NotFound("Bus")) {
		t.Error("IsAppError should be true for an AppError")
	}
	if !IsAppError(fmt.Errorf("saving booking: %w", Conflict("seat taken"))) {
		t.Error("IsAppError should see an AppError wrapped deeper in the chain")
	}
	if IsAppError(errors.New("plain error")) {
		t.Error("IsAppError should be false for a plain error")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Bus")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError should return the same AppError unchanged")
	}

	wrapped := fmt.Errorf("saving booking: %w", appErr)
	if got := AsAppError(wrapped); got != appErr {
		t.Error("AsAppError should unwrap to the embedded AppError")
	}

	plain := errors.New("plain error")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("Code = %s, want %s for a plain error", got.Code, CodeInternal)
	}
	if got.Err != plain {
		t.Error("AsAppError should keep the plain error as the cause")
	}
}
