package publish

import (
	"errors"
	"testing"

	"github.com/danmuck/scorelink/internal/testutil/testlog"
)

func TestTargetDisabledIsCaseInsensitive(t *testing.T) {
	testlog.Start(t)
	for _, addr := range []string{"none", "NONE", " None "} {
		if !(Target{Address: addr}).Disabled() {
			t.Fatalf("expected %q to disable publishing", addr)
		}
	}
	if (Target{Address: "127.0.0.1", Port: 9000}).Disabled() {
		t.Fatalf("unexpected disabled target")
	}
}

func TestTargetValidate(t *testing.T) {
	testlog.Start(t)
	if err := (Target{Address: "none"}).Validate(); err != nil {
		t.Fatalf("disabled target must validate: %v", err)
	}
	if err := (Target{Address: "localhost", Port: 0}).Validate(); !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("expected ErrInvalidPort, got %v", err)
	}
	if got := (Target{Address: "::1", Port: 9000}).HostPort(); got != "[::1]:9000" {
		t.Fatalf("unexpected host port: %q", got)
	}
}

func TestParsePort(t *testing.T) {
	testlog.Start(t)
	if p, err := ParsePort(" 9000 "); err != nil || p != 9000 {
		t.Fatalf("parse: %d %v", p, err)
	}
	for _, raw := range []string{"abc", "0", "70000", ""} {
		if _, err := ParsePort(raw); !errors.Is(err, ErrInvalidPort) {
			t.Fatalf("%q: expected ErrInvalidPort, got %v", raw, err)
		}
	}
}

func TestNewSink(t *testing.T) {
	testlog.Start(t)
	s, err := NewSink(SinkConfig{Target: Target{Address: "None"}})
	if err != nil || s != nil {
		t.Fatalf("disabled target: sink=%v err=%v", s, err)
	}
	s, err = NewSink(SinkConfig{Kind: KindTCP, Target: Target{Address: "127.0.0.1", Port: 9000}})
	if err != nil {
		t.Fatalf("tcp sink: %v", err)
	}
	if s.String() != "tcp://127.0.0.1:9000" {
		t.Fatalf("unexpected sink: %s", s)
	}
	if _, err := NewSink(SinkConfig{Kind: "udp", Target: Target{Address: "127.0.0.1", Port: 9000}}); !errors.Is(err, ErrUnknownSink) {
		t.Fatalf("expected ErrUnknownSink, got %v", err)
	}
	if _, err := ParseKind("ws"); !errors.Is(err, ErrUnknownSink) {
		t.Fatalf("expected ErrUnknownSink, got %v", err)
	}
}
