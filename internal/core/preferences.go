package core

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// PrefTheme is the only preference exposed over HTTP.
const PrefTheme = "theme"

// DefaultTheme applies to clients that never chose one.
const DefaultTheme = "light"

var allowedPreferences = map[string][]string{
	PrefTheme: {"light", "dark"},
}

// Preferences stores per-client UI settings.
type Preferences interface {
	// Get returns the stored value and whether one was set.
	Get(ctx context.Context, clientID, key string) (string, bool, error)
	Set(ctx context.Context, clientID, key, value string) error
}

// ValidatePreference checks key and value against the allowed table.
func ValidatePreference(key, value string) error {
	allowed, ok := allowedPreferences[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", ErrInvalidPreference, key)
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("%w: %s must be one of %v", ErrInvalidPreference, key, allowed)
	}
	return nil
}

// MemoryPreferences is an in-process Preferences implementation.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryPreferences creates an empty store.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]map[string]string)}
}

func (m *MemoryPreferences) Get(_ context.Context, clientID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[clientID][key]
	return v, ok, nil
}

func (m *MemoryPreferences) Set(_ context.Context, clientID, key, value string) error {
	if err := ValidatePreference(key, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	client, ok := m.values[clientID]
	if !ok {
		client = make(map[string]string)
		m.values[clientID] = client
	}
	client[key] = value
	return nil
}

// Theme returns the client's theme, falling back to DefaultTheme.
func Theme(ctx context.Context, prefs Preferences, clientID string) (string, error) {
	v, ok, err := prefs.Get(ctx, clientID, PrefTheme)
	if err != nil {
		return "", err
	}
	if !ok {
		return DefaultTheme, nil
	}
	return v, nil
}
