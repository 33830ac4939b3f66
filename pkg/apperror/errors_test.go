package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "app error passes through",
			err:      NewNotFoundError("Student"),
			wantCode: http.StatusNotFound,
			wantMsg:  "Student not found",
		},
		{
			name:     "wrapped app error unwraps",
			err:      fmt.Errorf("handling request: %w", NewBadRequestError("bad grade id")),
			wantCode: http.StatusBadRequest,
			wantMsg:  "bad grade id",
		},
		{
			name:     "plain error becomes internal",
			err:      errors.New("connection refused"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetAppError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("GetAppError().Code = %d, want %d", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("GetAppError().Message = %q, want %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(ErrInvalidCredentials) {
		t.Error("IsAppError(ErrInvalidCredentials) = false, want true")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("IsAppError(plain error) = true, want false")
	}
}

func TestNewValidationError(t *testing.T) {
	fieldErrs := []FieldError{
		{Field: "student_lines.1.grade", Message: "grade is required"},
		{Field: "partial_amount", Message: "partial amount must be a positive number"},
	}
	err := NewValidationError(fieldErrs)
	if err.Code != http.StatusUnprocessableEntity {
		t.Errorf("code = %d, want 422", err.Code)
	}
	if len(err.Errors) != 2 {
		t.Errorf("field errors = %d, want 2", len(err.Errors))
	}
}
