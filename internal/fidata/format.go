package fidata

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// timestampLayouts are tried in order when normalizing a stored timestamp.
// Storage rows carry a mix of ISO forms depending on which collector wrote
// them, so the list is explicit rather than a single parse call.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// formatTimestamp reformats a stored timestamp into the single canonical
// form "2006-01-02T15:04:05+00:00". Returns "" on any parse failure.
func formatTimestamp(ts string) string {
	s := strings.TrimSpace(ts)
	if s == "" {
		return ""
	}
	// Some rows carry a bare "+00" offset suffix.
	if strings.HasSuffix(s, "+00") {
		s += ":00"
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Format("2006-01-02T15:04:05") + "+00:00"
		}
	}
	return ""
}

// formatDate extracts the date portion of a stored timestamp. Falls back to
// the supplied default date when the input is empty.
func formatDate(ts, fallback string) string {
	s := strings.TrimSpace(ts)
	if s == "" {
		return fallback
	}
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	return s
}

func strOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// strFloat stringifies an optional numeric column; a missing value becomes
// "" so the canonical summary stays uniformly string-typed.
func strFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func strInt(i *int64) string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(*i, 10)
}
