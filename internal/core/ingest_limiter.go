package core

// ingest_limiter.go serializes dataset ingestion.
//
// Parsing and aggregation are single-threaded and the result replaces the
// whole dataset, so running two ingestions at once only wastes memory and
// makes "last writer wins" depend on timing. The limiter is a semaphore with
// a bounded wait: a caller that cannot get a slot within maxWait receives
// ErrIngestBusy. WaitForDrain lets shutdown wait for an in-flight ingestion.

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxConcurrentIngests is the slot count used by the Service.
const DefaultMaxConcurrentIngests = 1

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

// IngestLimiter bounds concurrent ingestions with a semaphore.
type IngestLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu      sync.RWMutex
	active  int
	sources map[string]time.Time
}

// NewIngestLimiter creates a limiter allowing maxConcurrent simultaneous
// ingestions. Non-positive arguments fall back to the defaults.
func NewIngestLimiter(maxConcurrent int, maxWait time.Duration) *IngestLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentIngests
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &IngestLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
		sources:   make(map[string]time.Time),
	}
}

// Acquire waits for a slot on behalf of source.
// It returns ErrIngestBusy when maxWait expires and ctx.Err() when ctx ends first.
// The caller must call Release with the same source when done.
func (l *IngestLimiter) Acquire(ctx context.Context, source string) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.track(source)
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrIngestBusy
	}
}

// TryAcquire takes a slot without blocking.
func (l *IngestLimiter) TryAcquire(source string) bool {
	select {
	case l.semaphore <- struct{}{}:
		l.track(source)
		return true
	default:
		return false
	}
}

func (l *IngestLimiter) track(source string) {
	l.mu.Lock()
	l.active++
	l.sources[source] = time.Now()
	l.mu.Unlock()
}

// Release frees the slot held for source.
// Must be called exactly once per successful Acquire or TryAcquire.
func (l *IngestLimiter) Release(source string) {
	l.mu.Lock()
	l.active--
	delete(l.sources, source)
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of ingestions in progress.
func (l *IngestLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Available returns the number of free slots.
func (l *IngestLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until no ingestion is active or ctx is cancelled.
func (l *IngestLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// IngestLimiterStatus is a snapshot of the limiter.
type IngestLimiterStatus struct {
	Active        int       `json:"active"`
	Available     int       `json:"available"`
	MaxConcurrent int       `json:"maxConcurrent"`
	Sources       []string  `json:"sources,omitempty"`
	OldestStart   time.Time `json:"oldestStart,omitzero"`
}

// Status returns the current limiter state for the dataset endpoint and logs.
func (l *IngestLimiter) Status() IngestLimiterStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	st := IngestLimiterStatus{
		Active:        l.active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		MaxConcurrent: cap(l.semaphore),
	}
	for src, started := range l.sources {
		st.Sources = append(st.Sources, src)
		if st.OldestStart.IsZero() || started.Before(st.OldestStart) {
			st.OldestStart = started
		}
	}
	return st
}
