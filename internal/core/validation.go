package core

import (
	"strings"

	"github.com/JonMunkholm/salaryboard/internal/payroll"
)

// MissingColumns returns the RequiredColumns absent from header, in
// RequiredColumns order. Matching is case-insensitive. Missing amount
// columns read as zero, so callers report these as warnings rather than
// rejecting the file.
func MissingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}

	var missing []string
	for _, col := range payroll.RequiredColumns {
		if _, ok := present[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
