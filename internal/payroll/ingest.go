package payroll

// ingest.go assembles logical records from physical CSV lines.
//
// Exports produced by spreadsheet tools wrap long cells (typically
// Designation) across lines inside quotes, and occasionally drop trailing
// empty cells. Lines are therefore accumulated into a buffer until the
// buffer's quotes balance and it splits into enough fields to be a row.

import (
	"log/slog"
	"strings"
)

// DefaultMaxContinuationLines bounds how many physical lines may be merged
// into one logical record before the buffer is discarded.
const DefaultMaxContinuationLines = 50

// headerTolerance is how many trailing fields a row may lack and still close.
const headerTolerance = 2

// maxLoggedPreview caps how much of a skipped line is logged.
const maxLoggedPreview = 100

// Ingestor parses payroll CSV text. The zero value is ready to use.
type Ingestor struct {
	// MaxContinuationLines caps the lines merged into one record.
	// Zero or negative means DefaultMaxContinuationLines.
	MaxContinuationLines int

	// Logger receives per-line diagnostics at debug level. Nil uses slog.Default().
	Logger *slog.Logger
}

// NewIngestor creates an Ingestor with the given continuation cap.
func NewIngestor(maxContinuationLines int, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		MaxContinuationLines: maxContinuationLines,
		Logger:               logger,
	}
}

func (in *Ingestor) maxLines() int {
	if in == nil || in.MaxContinuationLines <= 0 {
		return DefaultMaxContinuationLines
	}
	return in.MaxContinuationLines
}

func (in *Ingestor) logger() *slog.Logger {
	if in == nil || in.Logger == nil {
		return slog.Default()
	}
	return in.Logger
}

// recordBuffer accumulates physical lines for one logical record.
type recordBuffer struct {
	text  string
	lines int
}

func (b *recordBuffer) append(line string) {
	if b.text == "" {
		b.text = line
	} else {
		b.text += " " + line
	}
	b.lines++
}

func (b *recordBuffer) reset() {
	b.text = ""
	b.lines = 0
}

func (b *recordBuffer) empty() bool {
	return b.text == ""
}

// inQuotes reports whether the buffer ends inside an unterminated quoted field.
func (b *recordBuffer) inQuotes() bool {
	return strings.Count(b.text, `"`)%2 != 0
}

// Parse converts the full text of a payroll CSV into records.
//
// The first line is the header. Malformed input yields fewer records, never
// an error; empty input yields no records.
func (in *Ingestor) Parse(text string) ParseResult {
	log := in.logger()
	lines := strings.Split(text, "\n")

	result := ParseResult{
		Header:  SplitHeader(lines[0]),
		Records: []RawRecord{},
	}
	if len(lines) == 1 && strings.TrimSpace(lines[0]) == "" {
		result.Header = nil
		return result
	}

	minFields := len(result.Header) - headerTolerance
	maxLines := in.maxLines()

	var buf recordBuffer
	for _, raw := range lines[1:] {
		result.Stats.Lines++

		line := strings.TrimSpace(raw)
		if line == "" {
			result.Stats.Skipped++
			continue
		}

		buf.append(line)
		if !buf.inQuotes() {
			values := SplitLine(buf.text)
			if len(values) >= minFields {
				in.emit(&result, values, buf.text)
				buf.reset()
				continue
			}
			log.Debug("incomplete record, continuing",
				"fields", len(values),
				"expected", len(result.Header),
				"line", preview(buf.text),
			)
		}

		if buf.lines >= maxLines {
			log.Debug("continuation limit reached, discarding buffer",
				"lines", buf.lines,
				"line", preview(buf.text),
			)
			result.Stats.Discarded++
			buf.reset()
		}
	}

	if !buf.empty() {
		closed := false
		if !buf.inQuotes() {
			values := SplitLine(buf.text)
			if len(values) >= minFields {
				in.emit(&result, values, buf.text)
				closed = true
			}
		}
		if !closed {
			result.Stats.Discarded++
		}
	}

	log.Debug("csv parsing completed",
		"header_fields", len(result.Header),
		"lines", result.Stats.Lines,
		"processed", result.Stats.Processed,
		"skipped", result.Stats.Skipped,
		"discarded", result.Stats.Discarded,
	)

	return result
}

// emit zips values with the header and appends the record when its EMP No
// is valid.
func (in *Ingestor) emit(result *ParseResult, values []string, text string) {
	rec := make(RawRecord, len(result.Header))
	for i, name := range result.Header {
		if i < len(values) {
			rec[name] = strings.TrimSpace(values[i])
		} else {
			rec[name] = ""
		}
	}

	if !ValidEmpNo(rec[ColEmpNo]) {
		in.logger().Debug("skipped record with invalid EMP No",
			"emp_no", rec[ColEmpNo],
			"line", preview(text),
		)
		result.Stats.Skipped++
		return
	}

	result.Records = append(result.Records, rec)
	result.Stats.Processed++
}

func preview(s string) string {
	if len(s) <= maxLoggedPreview {
		return s
	}
	return s[:maxLoggedPreview]
}

// Parse parses text with a default Ingestor.
func Parse(text string) ParseResult {
	var in Ingestor
	return in.Parse(text)
}
