package payroll

import (
	"sort"
	"strconv"
	"strings"
)

var monthNumbers = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

// MonthNumber maps a month name to 1-12. Unrecognized names return 0.
func MonthNumber(name string) int {
	return monthNumbers[strings.TrimSpace(name)]
}

// ComparePeriods orders (year1, month1) against (year2, month2).
// Years compare numerically when both are integers, lexically otherwise;
// months compare by MonthNumber. It returns -1, 0 or 1.
func ComparePeriods(year1, month1, year2, month2 string) int {
	if c := compareYears(year1, year2); c != 0 {
		return c
	}
	m1, m2 := MonthNumber(month1), MonthNumber(month2)
	switch {
	case m1 < m2:
		return -1
	case m1 > m2:
		return 1
	}
	return 0
}

func compareYears(a, b string) int {
	ai, errA := strconv.Atoi(strings.TrimSpace(a))
	bi, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// SortMonths returns a copy of months in calendar order.
// Unrecognized names sort first, keeping their relative order.
func SortMonths(months []string) []string {
	out := append([]string(nil), months...)
	sort.SliceStable(out, func(i, j int) bool {
		return MonthNumber(out[i]) < MonthNumber(out[j])
	})
	return out
}
