package core

import (
	"context"
	"errors"
	"testing"
)

func TestValidatePreference(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"theme", "light", false},
		{"theme", "dark", false},
		{"theme", "blue", true},
		{"theme", "", true},
		{"language", "en", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := ValidatePreference(tt.key, tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPreference) {
					t.Errorf("expected ErrInvalidPreference, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMemoryPreferences(t *testing.T) {
	ctx := context.Background()
	prefs := NewMemoryPreferences()

	theme, err := Theme(ctx, prefs, "client-a")
	if err != nil || theme != DefaultTheme {
		t.Fatalf("default theme = %q, %v; want %q", theme, err, DefaultTheme)
	}

	if err := prefs.Set(ctx, "client-a", PrefTheme, "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := prefs.Set(ctx, "client-a", PrefTheme, "purple"); !errors.Is(err, ErrInvalidPreference) {
		t.Errorf("invalid Set error = %v", err)
	}

	theme, _ = Theme(ctx, prefs, "client-a")
	if theme != "dark" {
		t.Errorf("client-a theme = %q, want dark", theme)
	}

	if _, ok, _ := prefs.Get(ctx, "client-b", PrefTheme); ok {
		t.Error("client-b should have no stored theme")
	}
}
