package analyzer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timestampParser is one named entry in the ordered parser chain. Keeping the
// chain explicit makes each accepted format unit-testable on its own.
type timestampParser struct {
	name   string
	layout string
}

var timestampParsers = []timestampParser{
	{name: "iso-fraction", layout: "2006-01-02T15:04:05.999999999Z07:00"},
	{name: "iso-offset", layout: time.RFC3339},
	{name: "iso-basic", layout: "2006-01-02T15:04:05"},
	{name: "date-only", layout: "2006-01-02"},
}

// ParseTimestamp parses the mix of timestamp forms found in canonical
// transactions. Returns false when no parser in the chain accepts the input;
// such transactions are excluded from statistics but still counted.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, p := range timestampParsers {
		if t, err := time.Parse(p.layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// safeFloat converts a stringified amount to a float, substituting 0 for
// anything malformed. A "not-a-number" amount therefore still counts as a
// transaction but contributes nothing to totals.
func safeFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// round2 rounds a money value to two decimals.
func round2(f float64) float64 {
	v, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return v
}

// round1 rounds a percentage to one decimal.
func round1(f float64) float64 {
	v, _ := decimal.NewFromFloat(f).Round(1).Float64()
	return v
}
