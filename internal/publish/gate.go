package publish

import (
	"context"
	"fmt"
)

// Outcome is the result of one gated publish attempt.
type Outcome int

const (
	Unchanged Outcome = iota
	Sent
	Failed
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unchanged"
	}
}

// PublishIfChanged sends doc through sink unless it is textually identical
// to lastSent. It returns the lastSent value to carry forward, which only
// advances on success. A nil sink skips publishing without an error.
func PublishIfChanged(ctx context.Context, sink Sink, doc []byte, lastSent string) (sent bool, newLastSent string, err error) {
	if sink == nil {
		return false, lastSent, nil
	}
	if string(doc) == lastSent {
		return false, lastSent, nil
	}
	if err := sink.Send(ctx, doc); err != nil {
		return false, lastSent, fmt.Errorf("publish: send to %s: %w", sink, err)
	}
	return true, string(doc), nil
}

// Gate remembers the last successfully published document.
type Gate struct {
	sink     Sink
	lastSent string
}

func NewGate(sink Sink) *Gate {
	return &Gate{sink: sink}
}

// Enabled reports whether the gate has a sink.
func (g *Gate) Enabled() bool {
	return g.sink != nil
}

func (g *Gate) LastSent() string {
	return g.lastSent
}

// Changed reports whether doc differs from the last published document.
func (g *Gate) Changed(doc []byte) bool {
	return string(doc) != g.lastSent
}

func (g *Gate) Publish(ctx context.Context, doc []byte) (Outcome, error) {
	if g.sink == nil {
		return Skipped, nil
	}
	sent, last, err := PublishIfChanged(ctx, g.sink, doc, g.lastSent)
	g.lastSent = last
	switch {
	case err != nil:
		return Failed, err
	case sent:
		return Sent, nil
	default:
		return Unchanged, nil
	}
}
