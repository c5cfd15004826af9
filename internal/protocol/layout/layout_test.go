package layout

import (
	"errors"
	"testing"

	"github.com/danmuck/scorelink/internal/testutil/testlog"
)

var clock = MustNew("clock", 'C',
	Field{Name: "clock", Width: 5},
	Field{Name: "period", Width: 1},
	Field{Name: "shot", Width: 2},
)

func TestMatchAnchored(t *testing.T) {
	testlog.Start(t)
	g, ok := clock.Match("C01234215", Anchored)
	if !ok {
		t.Fatalf("expected match")
	}
	if g.Get("clock") != "01234" || g.Get("period") != "2" || g.Get("shot") != "15" {
		t.Fatalf("unexpected groups: %+v", g)
	}
}

func TestMatchIgnoresTrailingCharacters(t *testing.T) {
	testlog.Start(t)
	g, ok := clock.Match("C01234215XYZ", Anchored)
	if !ok {
		t.Fatalf("expected match")
	}
	if g.Get("shot") != "15" {
		t.Fatalf("unexpected shot: %q", g.Get("shot"))
	}
}

func TestMatchRejectsShortOrWrongTag(t *testing.T) {
	testlog.Start(t)
	for _, frame := range []string{"", "C0123421", "F01234215", "xC01234215"} {
		if _, ok := clock.Match(frame, Anchored); ok {
			t.Fatalf("unexpected anchored match for %q", frame)
		}
	}
}

func TestMatchRejectsNewlineInFields(t *testing.T) {
	testlog.Start(t)
	if _, ok := clock.Match("C012\n4215", Anchored); ok {
		t.Fatalf("newline must not match a field character")
	}
}

func TestMatchSearchFindsLeftmostTag(t *testing.T) {
	testlog.Start(t)
	g, ok := clock.Match("xxC01234215", Search)
	if !ok {
		t.Fatalf("expected search match")
	}
	if g.Get("clock") != "01234" {
		t.Fatalf("unexpected clock: %q", g.Get("clock"))
	}

	// First C is too close to a newline; the next C carries the fields.
	g, ok = clock.Match("C1\nC99999388", Search)
	if !ok {
		t.Fatalf("expected search match past newline")
	}
	if g.Get("clock") != "99999" || g.Get("shot") != "88" {
		t.Fatalf("unexpected groups: %+v", g)
	}
}

func TestNewRejectsBadDefinitions(t *testing.T) {
	testlog.Start(t)
	if _, err := New("empty", 'X'); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}
	if _, err := New("zero", 'X', Field{Name: "a", Width: 0}); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}
	if _, err := New("dup", 'X', Field{Name: "a", Width: 1}, Field{Name: "a", Width: 1}); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}
	l, err := New("filler", 'X', Field{Width: 3}, Field{Width: 2}, Field{Name: "v", Width: 1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if l.Width() != 6 {
		t.Fatalf("unexpected width: %d", l.Width())
	}
}

func TestParseMatchMode(t *testing.T) {
	testlog.Start(t)
	if m, err := ParseMatchMode(""); err != nil || m != Anchored {
		t.Fatalf("default mode: %v %v", m, err)
	}
	if m, err := ParseMatchMode(" SEARCH "); err != nil || m != Search {
		t.Fatalf("search mode: %v %v", m, err)
	}
	if _, err := ParseMatchMode("fuzzy"); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}
}
