package core

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("EMP No,Name")...),
			expected: "EMP No,Name",
		},
		{
			name:     "file without BOM",
			input:    []byte("EMP No,Name"),
			expected: "EMP No,Name",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "invalid byte replaced",
			input:    []byte{'a', 0xFF, 'b'},
			expected: "a�b",
		},
		{
			name:     "utf-16 little endian with BOM",
			input:    []byte{0xFF, 0xFE, 'a', 0, ',', 0, 'b', 0},
			expected: "a,b",
		},
		{
			name:     "multibyte preserved",
			input:    []byte("₹12,300"),
			expected: "₹12,300",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, err := NormalizeBytes(tt.input)
			if err != nil {
				t.Fatalf("NormalizeBytes: %v", err)
			}
			if string(normalized) != tt.expected {
				t.Errorf("got %q, want %q", string(normalized), tt.expected)
			}
		})
	}
}

func TestReadLimited(t *testing.T) {
	data, err := ReadLimited(strings.NewReader("12345"), 5)
	if err != nil {
		t.Fatalf("at limit: unexpected error: %v", err)
	}
	if string(data) != "12345" {
		t.Errorf("got %q", data)
	}

	_, err = ReadLimited(strings.NewReader("123456"), 5)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("over limit: expected ErrFileTooLarge, got %v", err)
	}

	data, err = ReadLimited(strings.NewReader("unbounded"), 0)
	if err != nil || string(data) != "unbounded" {
		t.Errorf("no limit: got %q, %v", data, err)
	}
}
