package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampFormats(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"iso-fraction", "2023-06-01T10:30:00.123456Z", time.Date(2023, 6, 1, 10, 30, 0, 123456000, time.UTC)},
		{"iso-offset", "2023-06-01T16:00:00+05:30", time.Date(2023, 6, 1, 16, 0, 0, 0, time.FixedZone("", 5*3600+1800))},
		{"iso-basic", "2023-06-01T10:30:00", time.Date(2023, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"date-only", "2023-06-01", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tc.in)
			require.True(t, ok, "expected %q to parse", tc.in)
			assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
		})
	}
}

func TestParseTimestampRejectsUnknownForms(t *testing.T) {
	for _, in := range []string{"", "   ", "01/06/2023", "June 1, 2023", "1685615400"} {
		_, ok := ParseTimestamp(in)
		assert.False(t, ok, "expected %q to be rejected", in)
	}
}

func TestParseTimestampTrimsWhitespace(t *testing.T) {
	got, ok := ParseTimestamp("  2023-06-01  ")
	require.True(t, ok)
	assert.Equal(t, 2023, got.Year())
}

func TestSafeFloat(t *testing.T) {
	assert.Equal(t, 123.45, safeFloat("123.45"))
	assert.Equal(t, 123.45, safeFloat(" 123.45 "))
	assert.Equal(t, -50.0, safeFloat("-50"))
	assert.Equal(t, 0.0, safeFloat(""))
	assert.Equal(t, 0.0, safeFloat("not-a-number"))
	assert.Equal(t, 0.0, safeFloat("12,500"))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 3.14, round2(3.14159))
	assert.Equal(t, 100.0, round2(100))
	assert.Equal(t, 33.3, round1(33.333333))
	assert.Equal(t, 66.7, round1(66.666666))
}
