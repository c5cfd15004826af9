package layout

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidLayout = errors.New("layout: invalid definition")

// MatchMode selects where the tag of a layout may appear in a frame.
type MatchMode string

const (
	// Anchored requires the tag at offset 0.
	Anchored MatchMode = "anchored"
	// Search accepts the leftmost tag occurrence followed by enough field
	// characters, mirroring an unanchored pattern search.
	Search MatchMode = "search"
)

func ParseMatchMode(raw string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Anchored:
		return Anchored, nil
	case Search:
		return Search, nil
	default:
		return "", fmt.Errorf("%w: unknown match mode %q", ErrInvalidLayout, raw)
	}
}

// Field is one positional fixed-width group.
type Field struct {
	Name  string
	Width int
}

// Layout is a tag byte followed by fixed-width fields with no separators.
// Characters after the last field are ignored. A field character may not be
// a newline.
type Layout struct {
	Name   string
	Tag    byte
	Fields []Field
	width  int
}

func New(name string, tag byte, fields ...Field) (Layout, error) {
	if len(fields) == 0 {
		return Layout{}, fmt.Errorf("%w: %s has no fields", ErrInvalidLayout, name)
	}
	total := 0
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Width <= 0 {
			return Layout{}, fmt.Errorf("%w: %s field %q width %d", ErrInvalidLayout, name, f.Name, f.Width)
		}
		if f.Name != "" {
			if _, dup := seen[f.Name]; dup {
				return Layout{}, fmt.Errorf("%w: %s duplicate field %q", ErrInvalidLayout, name, f.Name)
			}
			seen[f.Name] = struct{}{}
		}
		total += f.Width
	}
	return Layout{Name: name, Tag: tag, Fields: fields, width: total}, nil
}

func MustNew(name string, tag byte, fields ...Field) Layout {
	l, err := New(name, tag, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// Width is the number of characters after the tag.
func (l Layout) Width() int {
	return l.width
}

// Match carves the fields out of frame. Groups are keyed by field name;
// unnamed fields (filler) are skipped.
func (l Layout) Match(frame string, mode MatchMode) (Groups, bool) {
	if mode == Search {
		for i := 0; i+l.width < len(frame); i++ {
			if frame[i] != l.Tag {
				continue
			}
			if g, ok := l.carve(frame[i+1:]); ok {
				return g, true
			}
		}
		return nil, false
	}
	if len(frame) == 0 || frame[0] != l.Tag {
		return nil, false
	}
	return l.carve(frame[1:])
}

func (l Layout) carve(body string) (Groups, bool) {
	if len(body) < l.width {
		return nil, false
	}
	if strings.IndexByte(body[:l.width], '\n') >= 0 {
		return nil, false
	}
	g := make(Groups, len(l.Fields))
	off := 0
	for _, f := range l.Fields {
		if f.Name != "" {
			g[f.Name] = body[off : off+f.Width]
		}
		off += f.Width
	}
	return g, true
}

// Groups maps field names to their raw, untrimmed text.
type Groups map[string]string

func (g Groups) Get(name string) string {
	return g[name]
}
