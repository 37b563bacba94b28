package remote

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// CleanReply strips NUL padding from raw reply bytes and decodes them as
// UTF-8, replacing invalid sequences.
func CleanReply(raw []byte) string {
	s := strings.ReplaceAll(string(raw), "\x00", "")
	return strings.ToValidUTF8(s, "�")
}

// ParseNumber parses a numeric reply such as "24.0\n". Anything that is
// not a finite number is a *ParseError; it never yields a silent zero.
func ParseNumber(reply string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(reply, "\x00", ""))
	if s == "" {
		return 0, &ParseError{Reply: reply, Err: ErrEmptyReply}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Reply: reply, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Reply: reply, Err: errors.New("not a finite number")}
	}
	return v, nil
}
