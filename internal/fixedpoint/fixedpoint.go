// Package fixedpoint parses the measurement column of an input line into a
// signed integer number of tenths, without allocating and without
// surfacing malformed input as an error: the input is trusted.
package fixedpoint

// Parse reads a temperature token starting at data[0] — optional '-', one
// or two integer digits, '.', one fractional digit, optionally followed by
// further bytes before a terminating '\n' — and returns its value in
// tenths together with the offset of the first byte after that '\n'.
//
// data must extend at least to the line's terminator; Parse never checks
// bounds beyond what the fixed 3-4 byte pattern requires, trusting the
// input to be well-formed.
func Parse(data []byte) (tenths int16, next int) {
	i := 0
	sign := int16(1)
	if data[0] == '-' {
		sign = -1
		i = 1
	}

	b0, b1, b2, b3 := data[i], data[i+1], data[i+2], data[i+3]

	var value int16
	var consumed int
	if b1 == '.' {
		value = int16(b0-'0')*10 + int16(b2-'0')
		consumed = 3
	} else {
		value = int16(b0-'0')*100 + int16(b1-'0')*10 + int16(b3-'0')
		consumed = 4
	}

	i += consumed
	for data[i] != '\n' {
		i++
	}
	return sign * value, i + 1
}
