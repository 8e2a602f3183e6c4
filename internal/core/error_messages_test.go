package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"file too large", fmt.Errorf("read upload.csv: %w: exceeds 10 bytes", ErrFileTooLarge), "FILE001"},
		{"empty file", ErrEmptyFile, "FILE005"},
		{"missing source", fmt.Errorf("%w: Salary.csv", ErrSourceNotFound), "FILE006"},
		{"ingestion busy", ErrIngestBusy, "UPL002"},
		{"cancelled", context.Canceled, "UPL004"},
		{"deadline", fmt.Errorf("read: %w", context.DeadlineExceeded), "UPL005"},
		{"no dataset", ErrNoDataset, "UPL006"},
		{"unknown employee", ErrEmployeeNotFound, "EMP001"},
		{"missing record", fmt.Errorf("%w: 1001 March 2024", ErrRecordNotFound), "EMP002"},
		{"missing period", ErrPeriodNotFound, "EMP003"},
		{"expired token", errors.New("token is expired"), "AUTH002"},
		{"no token", errors.New("no token found"), "AUTH001"},
		{"bad preference", fmt.Errorf("%w: theme must be one of [light dark]", ErrInvalidPreference), "PREF001"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive", errors.New("EMPLOYEE NOT FOUND"), "EMP001"},
		{"unknown error returns default", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrEmployeeNotFound)

	expected := "Employee number not found (Code: EMP001). Check your EMP No and try again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("nil error reported as user facing")
	}
	if !IsUserFacing(ErrEmptyFile) {
		t.Error("ErrEmptyFile should be user facing")
	}
	if IsUserFacing(errors.New("random internal error xyz")) {
		t.Error("unknown error reported as user facing")
	}
}
