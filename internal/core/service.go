package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/JonMunkholm/salaryboard/internal/payroll"
	"github.com/google/uuid"
)

// Options configures a Service. Zero values select the defaults.
type Options struct {
	TotalsMode           payroll.TotalsMode
	MaxContinuationLines int
	MaxFileSize          int64
	MaxWait              time.Duration
	HistorySize          int
	Logger               *slog.Logger
}

// Dataset is the product of one successful ingestion.
// It is immutable once published by the Service.
type Dataset struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time
	Bytes    int64

	Header         []string
	MissingColumns []string
	Raw            []payroll.RawRecord
	Stats          payroll.Stats
	Result         *payroll.AggregateResult
}

// Service holds the session state: the current dataset, ingestion history
// and the limiter that serializes ingestion. It is safe for concurrent use.
type Service struct {
	ingestor   *payroll.Ingestor
	aggregator *payroll.Aggregator
	limiter    *IngestLimiter
	history    *History
	maxSize    int64
	log        *slog.Logger

	mu        sync.RWMutex
	current   *Dataset
	sourceMod map[string]time.Time
}

// NewService creates a Service with no dataset loaded.
func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		ingestor:   payroll.NewIngestor(opts.MaxContinuationLines, log),
		aggregator: payroll.NewAggregator(opts.TotalsMode),
		limiter:    NewIngestLimiter(DefaultMaxConcurrentIngests, opts.MaxWait),
		history:    NewHistory(opts.HistorySize),
		maxSize:    opts.MaxFileSize,
		log:        log,
		sourceMod:  make(map[string]time.Time),
	}
}

// Ingest reads a payroll CSV from r and, on success, replaces the current
// dataset. Empty input publishes an empty dataset. Ingestions are serialized; a caller that waits too long for its
// turn receives ErrIngestBusy.
func (s *Service) Ingest(ctx context.Context, source string, r io.Reader) (*Dataset, error) {
	if err := s.limiter.Acquire(ctx, source); err != nil {
		return nil, err
	}
	defer s.limiter.Release(source)

	start := time.Now()
	summary := IngestSummary{
		ID:        uuid.New(),
		Source:    source,
		StartedAt: start,
		IPAddress: GetIPAddressFromContext(ctx),
		UserAgent: GetUserAgentFromContext(ctx),
	}

	ds, err := s.ingest(ctx, &summary, r)
	summary.Duration = time.Since(start)
	if err != nil {
		summary.Error = err.Error()
		s.history.Add(summary)
		s.log.Warn("ingestion failed",
			"source", source,
			"error", err,
			"duration_ms", summary.Duration.Milliseconds(),
		)
		return nil, err
	}
	s.history.Add(summary)

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	if len(ds.MissingColumns) > 0 {
		s.log.Warn("dataset is missing expected columns",
			"source", source,
			"missing", ds.MissingColumns,
		)
	}
	s.log.Info("dataset loaded",
		"dataset_id", ds.ID,
		"source", source,
		"mode", ds.Result.Mode,
		"employees", ds.Result.TotalEmployees,
		"processed", ds.Stats.Processed,
		"skipped", ds.Stats.Skipped,
		"discarded", ds.Stats.Discarded,
		"duration_ms", summary.Duration.Milliseconds(),
	)
	return ds, nil
}

func (s *Service) ingest(ctx context.Context, summary *IngestSummary, r io.Reader) (*Dataset, error) {
	raw, err := ReadLimited(r, s.maxSize)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", summary.Source, err)
	}
	summary.Bytes = int64(len(raw))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, result, err := s.analyze(raw)
	if err != nil {
		return nil, err
	}

	summary.Mode = result.Mode
	summary.Stats = parsed.Stats
	summary.Employees = result.TotalEmployees

	return &Dataset{
		ID:             summary.ID,
		Source:         summary.Source,
		LoadedAt:       time.Now(),
		Bytes:          summary.Bytes,
		Header:         parsed.Header,
		MissingColumns: MissingColumns(parsed.Header),
		Raw:            parsed.Records,
		Stats:          parsed.Stats,
		Result:         result,
	}, nil
}

// analyze normalizes raw bytes and runs the parse and aggregate pipeline.
func (s *Service) analyze(raw []byte) (payroll.ParseResult, *payroll.AggregateResult, error) {
	text, err := NormalizeBytes(raw)
	if err != nil {
		return payroll.ParseResult{}, nil, err
	}

	parsed := s.ingestor.Parse(string(text))
	return parsed, s.aggregator.Process(parsed.Header, parsed.Records), nil
}

// IngestFile loads the CSV at path. A missing file yields ErrSourceNotFound
// so callers can fall back to waiting for an upload.
func (s *Service) IngestFile(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	ds, err := s.Ingest(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sourceMod[path] = info.ModTime()
	s.mu.Unlock()
	return ds, nil
}

// Current returns the dataset in use, or ErrNoDataset.
func (s *Service) Current() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoDataset
	}
	return s.current, nil
}

func (s *Service) result() (*payroll.AggregateResult, error) {
	ds, err := s.Current()
	if err != nil {
		return nil, err
	}
	return ds.Result, nil
}

// Lookup returns the employee for empNo in the current dataset.
func (s *Service) Lookup(empNo string) (*payroll.Employee, error) {
	res, err := s.result()
	if err != nil {
		return nil, err
	}
	return res.Lookup(empNo)
}

// Filters lists the years (ascending) and months (calendar order) present
// in the current dataset.
type Filters struct {
	Years  []string `json:"years"`
	Months []string `json:"months"`
}

// Filters returns the dashboard filter options.
func (s *Service) Filters() (Filters, error) {
	res, err := s.result()
	if err != nil {
		return Filters{}, err
	}
	return Filters{
		Years:  append([]string(nil), res.Years...),
		Months: payroll.SortMonths(res.Months),
	}, nil
}

// Dashboard is the organization overview for one filter selection.
type Dashboard struct {
	Year       string
	Month      string
	PeriodText string
	Metrics    payroll.Metrics
	Cards      []*payroll.PeriodSummary
	Records    []*payroll.EmployeeRecord
}

// Dashboard computes the overview for year and month. Empty values match all.
func (s *Service) Dashboard(year, month string) (*Dashboard, error) {
	res, err := s.result()
	if err != nil {
		return nil, err
	}

	records := res.Filter(year, month)
	return &Dashboard{
		Year:       year,
		Month:      month,
		PeriodText: payroll.PeriodText(records, year, month),
		Metrics:    payroll.Summarize(records),
		Cards:      payroll.MonthlyCards(records),
		Records:    records,
	}, nil
}

// Period returns the summary for one year-month.
func (s *Service) Period(year, month string) (*payroll.PeriodSummary, error) {
	res, err := s.result()
	if err != nil {
		return nil, err
	}
	return res.Period(year, month)
}

// Year returns the summary for one year.
func (s *Service) Year(year string) (*payroll.PeriodSummary, error) {
	res, err := s.result()
	if err != nil {
		return nil, err
	}
	return res.Year(year)
}

// RawRecords returns the parsed rows of the current dataset whose Year and
// Month columns match, along with the header. Empty values match all.
func (s *Service) RawRecords(year, month string) ([]string, []payroll.RawRecord, error) {
	ds, err := s.Current()
	if err != nil {
		return nil, nil, err
	}
	return ds.Header, payroll.FilterRaw(ds.Raw, year, month), nil
}

// EmployeeRecord returns one employee's record for a period.
func (s *Service) EmployeeRecord(empNo, year, month string) (*payroll.Employee, *payroll.EmployeeRecord, error) {
	emp, err := s.Lookup(empNo)
	if err != nil {
		return nil, nil, err
	}
	rec, err := emp.Record(year, month)
	if err != nil {
		return nil, nil, err
	}
	return emp, rec, nil
}

// History returns recent ingestion attempts, newest first.
func (s *Service) History() []IngestSummary {
	return s.history.List()
}

// IngestStatus reports the limiter state.
func (s *Service) IngestStatus() IngestLimiterStatus {
	return s.limiter.Status()
}

// WaitForIngest blocks until no ingestion is running or ctx ends.
func (s *Service) WaitForIngest(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
