package core

// streaming.go normalizes uploaded bytes before parsing.
//
// Spreadsheet exports on Windows often begin with a byte order mark, and
// files saved from legacy tools occasionally contain stray Latin-1 bytes.
// Both are handled by x/text: BOMOverride strips a UTF-8 BOM (and decodes
// UTF-16 input that announces itself with a BOM), while the UTF-8 decoder
// replaces invalid sequences with U+FFFD.

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadLimited reads all of r, failing with ErrFileTooLarge once more than
// maxBytes have been read. A non-positive maxBytes disables the limit.
func ReadLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, maxBytes)
	}
	return data, nil
}

// NormalizeBytes strips a BOM and returns data as valid UTF-8.
func NormalizeBytes(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}
	return out, nil
}
