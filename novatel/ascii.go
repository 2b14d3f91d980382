package novatel

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// The ASCII parsers share two rules.  An empty token is an omitted optional field and decodes
// to zero without error.  Narrow integer types are parsed as a 32-bit integer first and then
// range-checked, so "70000" is a range error for a uint16 rather than a syntax error.

// ParseError is returned by the ASCII parsers.  Err is strconv.ErrSyntax or strconv.ErrRange
// (or strconv's error for an invalid base), so callers can test it with errors.Is.
type ParseError struct {
	Func  string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return "novatel." + e.Func + ": parsing " + strconv.Quote(e.Token) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

func numError(fn, s string, err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		err = ne.Err
	}
	return &ParseError{Func: fn, Token: s, Err: err}
}

// digits strips an optional 0x prefix from base-16 tokens, which C's strtol accepts and some
// receivers emit.
func digits(s string, base int) string {
	if base != 16 {
		return s
	}
	sign := ""
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return sign + s
}

func parseInt32(fn, s string, base int) (int32, error) {
	n, err := strconv.ParseInt(digits(s, base), base, 32)
	if err != nil {
		return 0, numError(fn, s, err)
	}
	return int32(n), nil
}

func parseUint32(fn, s string, base int) (uint32, error) {
	// ParseUint already refuses a leading sign, so "-1" never wraps around.
	n, err := strconv.ParseUint(digits(s, base), base, 32)
	if err != nil {
		return 0, numError(fn, s, err)
	}
	return uint32(n), nil
}

// ParseInt16 parses s in the given base as an int16.
func ParseInt16(s string, base int) (int16, error) {
	if s == "" {
		return 0, nil
	}
	n, err := parseInt32("ParseInt16", s, base)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt16 || n < math.MinInt16 {
		return 0, numError("ParseInt16", s, strconv.ErrRange)
	}
	return int16(n), nil
}

// ParseInt32 parses s in the given base as an int32.
func ParseInt32(s string, base int) (int32, error) {
	if s == "" {
		return 0, nil
	}
	return parseInt32("ParseInt32", s, base)
}

// ParseUint8 parses s in the given base as a uint8.
func ParseUint8(s string, base int) (uint8, error) {
	if s == "" {
		return 0, nil
	}
	n, err := parseUint32("ParseUint8", s, base)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint8 {
		return 0, numError("ParseUint8", s, strconv.ErrRange)
	}
	return uint8(n), nil
}

// ParseUint16 parses s in the given base as a uint16.
func ParseUint16(s string, base int) (uint16, error) {
	if s == "" {
		return 0, nil
	}
	n, err := parseUint32("ParseUint16", s, base)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint16 {
		return 0, numError("ParseUint16", s, strconv.ErrRange)
	}
	return uint16(n), nil
}

// ParseUint32 parses s in the given base as a uint32.  Status words in ASCII logs are hex, so
// they are parsed with base 16.
func ParseUint32(s string, base int) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	return parseUint32("ParseUint32", s, base)
}

// ParseFloat parses s as a float32.  Values that overflow a float32 are range errors.
func ParseFloat(s string) (float32, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, numError("ParseFloat", s, err)
	}
	return float32(f), nil
}

// ParseDouble parses s as a float64.
func ParseDouble(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, numError("ParseDouble", s, err)
	}
	return f, nil
}

// ParseBool parses the TRUE/FALSE enumeration tokens used by ASCII logs.  An empty token is
// false.
func ParseBool(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "", "FALSE", "0":
		return false, nil
	case "TRUE", "1":
		return true, nil
	}
	return false, numError("ParseBool", s, strconv.ErrSyntax)
}
