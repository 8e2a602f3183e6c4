package core

import (
	"errors"

	"github.com/JonMunkholm/salaryboard/internal/payroll"
)

var (
	// ErrNoDataset is returned by queries before the first successful ingestion.
	ErrNoDataset = errors.New("no payroll dataset loaded")

	// ErrEmptyFile marks an upload with no content. The web layer rejects such
	// uploads before they reach Ingest.
	ErrEmptyFile = errors.New("empty file")

	// ErrFileTooLarge is returned when input exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrIngestBusy is returned when no ingestion slot frees up in time.
	ErrIngestBusy = errors.New("ingestion busy: too many uploads in progress")

	// ErrSourceNotFound is returned by IngestFile when the path does not exist.
	ErrSourceNotFound = errors.New("payroll source file not found")

	// ErrInvalidPreference is returned for unknown preference keys or values.
	ErrInvalidPreference = errors.New("invalid preference")

	// ErrInvalidEmpNo is returned when a login EMP No is not all digits.
	ErrInvalidEmpNo = errors.New("invalid employee number")

	// ErrNoFile is returned when an upload carries no file part.
	ErrNoFile = errors.New("no file provided")
)

// Aliases so callers of the service need not import payroll for error checks.
var (
	ErrEmployeeNotFound = payroll.ErrEmployeeNotFound
	ErrRecordNotFound   = payroll.ErrRecordNotFound
	ErrPeriodNotFound   = payroll.ErrPeriodNotFound
)
