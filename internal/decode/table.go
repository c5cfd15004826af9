package decode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/scorelink/internal/protocol/layout"
	"github.com/danmuck/scorelink/internal/scoreboard"
	"golang.org/x/text/encoding/charmap"
)

var ErrUnknownClockFormat = errors.New("decode: unknown clock format")

// ClockFormat selects how the five clock digits are rendered.
type ClockFormat string

const (
	ClockMinutesSeconds       ClockFormat = "mm:ss"
	ClockMinutesSecondsTenths ClockFormat = "mm:ss.t"
	ClockRaw                  ClockFormat = "raw"
)

func ParseClockFormat(raw string) (ClockFormat, error) {
	switch ClockFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ClockMinutesSeconds:
		return ClockMinutesSeconds, nil
	case ClockMinutesSecondsTenths:
		return ClockMinutesSecondsTenths, nil
	case ClockRaw:
		return ClockRaw, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownClockFormat, raw)
	}
}

// Options selects protocol variants.
type Options struct {
	Clock ClockFormat
	Match layout.MatchMode
}

func DefaultOptions() Options {
	return Options{Clock: ClockMinutesSeconds, Match: layout.Anchored}
}

// DecodeFunc turns matched groups into field updates. It must not have side
// effects; the caller applies the result.
type DecodeFunc func(g layout.Groups, opts Options) []scoreboard.Update

// Pattern pairs a structural layout with its decode rule.
type Pattern struct {
	Layout layout.Layout
	Decode DecodeFunc
}

// Result is the outcome of a successful match.
type Result struct {
	Pattern string
	Updates []scoreboard.Update
}

// Table is an ordered pattern list; the first structural match wins.
type Table struct {
	opts     Options
	patterns []Pattern
}

func NewTable(opts Options, patterns ...Pattern) *Table {
	if opts.Clock == "" {
		opts.Clock = ClockMinutesSeconds
	}
	if opts.Match == "" {
		opts.Match = layout.Anchored
	}
	return &Table{opts: opts, patterns: append([]Pattern(nil), patterns...)}
}

// DefaultTable carries the full scoreboard frame ahead of the clock frame.
func DefaultTable(opts Options) *Table {
	return NewTable(opts, FullPattern(), ClockPattern())
}

func (t *Table) Options() Options {
	return t.opts
}

// Decode finds the first matching pattern and returns its updates without
// touching any state.
func (t *Table) Decode(frame string) (Result, bool) {
	for _, p := range t.patterns {
		g, ok := p.Layout.Match(frame, t.opts.Match)
		if !ok {
			continue
		}
		return Result{Pattern: p.Layout.Name, Updates: p.Decode(toUTF8(g), t.opts)}, true
	}
	return Result{}, false
}

// Dispatch decodes frame and applies the result to st. When no pattern
// matches st is left untouched and false is returned.
func (t *Table) Dispatch(frame string, st *scoreboard.State) (bool, error) {
	res, ok := t.Decode(frame)
	if !ok {
		return false, nil
	}
	if err := st.Apply(res.Updates...); err != nil {
		return true, fmt.Errorf("decode %s: %w", res.Pattern, err)
	}
	return true, nil
}

// toUTF8 reinterprets each frame byte as one ISO 8859-1 character so
// non-ASCII panel codes survive JSON encoding.
func toUTF8(g layout.Groups) layout.Groups {
	dec := charmap.ISO8859_1.NewDecoder()
	out := make(layout.Groups, len(g))
	for k, v := range g {
		if isASCII(v) {
			out[k] = v
			continue
		}
		s, err := dec.String(v)
		if err != nil {
			s = v
		}
		out[k] = s
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
