package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		tenths int16
	}{
		{"two-digit negative extreme", "-99.9\n", -999},
		{"two-digit positive extreme", "99.9\n", 999},
		{"zero", "0.0\n", 0},
		{"small negative", "-0.1\n", -1},
		{"single digit integer part", "5.6\n", 56},
		{"single digit negative", "-5.6\n", -56},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			// Execute
			tenths, next := Parse([]byte(tc.line))

			// Check
			assert.Equal(t, tc.tenths, tenths)
			assert.Equal(t, len(tc.line), next, "cursor lands just past the terminating newline")
		})
	}
}

func TestParseSkipsTrailingBytes(t *testing.T) {
	// weather_stations.csv-style trailing metadata after the fractional digit
	tenths, next := Parse([]byte("12.3;some trailing metadata\n"))

	assert.Equal(t, int16(123), tenths)
	assert.Equal(t, len("12.3;some trailing metadata\n"), next)
}

func TestParseAdvancesPastCurrentLineOnly(t *testing.T) {
	// A second record immediately follows; Parse must not consume it.
	data := []byte("35.6\nBulawayo;8.9\n")

	tenths, next := Parse(data)

	assert.Equal(t, int16(356), tenths)
	assert.Equal(t, []byte("Bulawayo;8.9\n"), data[next:])
}

func TestParseExactRounding(t *testing.T) {
	// Parsing is exact: parse(t) == round(t*10) for any legal token.
	cases := map[string]int16{
		"1.2\n":   12,
		"-1.2\n":  -12,
		"10.5\n":  105,
		"-10.5\n": -105,
	}
	for line, want := range cases {
		got, _ := Parse([]byte(line))
		assert.Equal(t, want, got, line)
	}
}
