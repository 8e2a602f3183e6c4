package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/salaryboard/internal/payroll"
)

// maxPreviewSamples bounds the raw rows returned by Preview.
const maxPreviewSamples = 5

// PreviewResponse describes what an upload would produce.
type PreviewResponse struct {
	Source           string              `json:"source"`
	Bytes            int64               `json:"bytes"`
	Mode             payroll.TotalsMode  `json:"mode"`
	Header           []string            `json:"header"`
	MissingColumns   []string            `json:"missingColumns,omitempty"`
	Stats            payroll.Stats       `json:"stats"`
	Employees        int                 `json:"employees"`
	Years            []string            `json:"years"`
	Months           []string            `json:"months"`
	Samples          []payroll.RawRecord `json:"samples"`
	ProcessingTimeMs int64               `json:"processingTimeMs"`
}

// Preview parses and aggregates r without replacing the current dataset.
// It is subject to the same size limit as Ingest but not to the limiter.
func (s *Service) Preview(ctx context.Context, source string, r io.Reader) (*PreviewResponse, error) {
	start := time.Now()

	raw, err := ReadLimited(r, s.maxSize)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, result, err := s.analyze(raw)
	if err != nil {
		return nil, err
	}

	samples := parsed.Records
	if len(samples) > maxPreviewSamples {
		samples = samples[:maxPreviewSamples]
	}

	return &PreviewResponse{
		Source:           source,
		Bytes:            int64(len(raw)),
		Mode:             result.Mode,
		Header:           parsed.Header,
		MissingColumns:   MissingColumns(parsed.Header),
		Stats:            parsed.Stats,
		Employees:        result.TotalEmployees,
		Years:            result.Years,
		Months:           payroll.SortMonths(result.Months),
		Samples:          samples,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}
