package payroll

import (
	"strings"
	"unicode"
)

// SplitLine splits one logical CSV record into cleaned field values.
//
// A double quote toggles the quoted state; a doubled quote inside a quoted
// span is a literal quote and does not toggle. A comma outside quotes ends
// the field. Every field is trimmed, loses one leading and one trailing
// quote if present, and has internal whitespace runs collapsed to a single
// space. The result always has at least one element.
func SplitLine(line string) []string {
	var (
		values   []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	return append(values, cleanField(current.String()))
}

// cleanField applies the per-field cleanup of SplitLine.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return collapseSpace(s)
}

// collapseSpace replaces every whitespace run with one space and trims.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// SplitHeader splits the header line into trimmed field names.
func SplitHeader(line string) []string {
	names := SplitLine(line)
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
	}
	return names
}
