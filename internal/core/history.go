package core

import (
	"sync"
	"time"

	"github.com/JonMunkholm/salaryboard/internal/payroll"
	"github.com/google/uuid"
)

// DefaultHistorySize is how many ingestion summaries are retained.
const DefaultHistorySize = 20

// IngestSummary describes one ingestion attempt, successful or not.
type IngestSummary struct {
	ID        uuid.UUID          `json:"id"`
	Source    string             `json:"source"`
	StartedAt time.Time          `json:"startedAt"`
	Duration  time.Duration      `json:"duration"`
	Bytes     int64              `json:"bytes"`
	Mode      payroll.TotalsMode `json:"mode,omitempty"`
	Stats     payroll.Stats      `json:"stats"`
	Employees int                `json:"employees"`
	IPAddress string             `json:"ipAddress,omitempty"`
	UserAgent string             `json:"userAgent,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Succeeded reports whether the ingestion replaced the dataset.
func (s IngestSummary) Succeeded() bool {
	return s.Error == ""
}

// History is a bounded in-memory log of ingestions, newest first.
type History struct {
	mu      sync.RWMutex
	size    int
	entries []IngestSummary
}

// NewHistory creates a History keeping at most size entries.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Add records an entry, evicting the oldest when full.
func (h *History) Add(entry IngestSummary) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]IngestSummary{entry}, h.entries...)
	if len(h.entries) > h.size {
		h.entries = h.entries[:h.size]
	}
}

// List returns a copy of the entries, newest first.
func (h *History) List() []IngestSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]IngestSummary(nil), h.entries...)
}
