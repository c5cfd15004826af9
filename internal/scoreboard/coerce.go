package scoreboard

import (
	"strconv"
	"strings"
)

// DefaultNumeric is stored whenever a numeric field cannot be parsed.
const DefaultNumeric = "0"

// NumericPolicy selects how accepted numeric text is stored.
type NumericPolicy int

const (
	// TrimNumeric stores the whitespace-trimmed integer text.
	TrimNumeric NumericPolicy = iota
	// VerbatimNumeric stores the source text unmodified once it parses,
	// surrounding whitespace included.
	VerbatimNumeric
)

// CoerceNumeric normalizes raw into base-10 integer text. Empty,
// whitespace-only or unparseable input (including values outside the
// signed 32-bit range) yields DefaultNumeric.
func CoerceNumeric(raw string) string {
	return coerceNumeric(raw, TrimNumeric)
}

func coerceNumeric(raw string, policy NumericPolicy) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultNumeric
	}
	if _, err := strconv.ParseInt(trimmed, 10, 32); err != nil {
		return DefaultNumeric
	}
	if policy == VerbatimNumeric {
		return raw
	}
	return trimmed
}

// CoerceTrimmed trims surrounding whitespace without numeric validation.
func CoerceTrimmed(raw string) string {
	return strings.TrimSpace(raw)
}

// DerivePossession maps a possession code to the home/away flags.
func DerivePossession(code string) (home, away string) {
	switch code {
	case "H":
		return "1", ""
	case "V":
		return "", "1"
	default:
		return "", ""
	}
}
