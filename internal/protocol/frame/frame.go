package frame

import (
	"errors"
	"io"
)

const (
	StartMarker byte = 0x02
	EndMarker   byte = 0x03
)

var ErrFrameTooLarge = errors.New("frame: payload exceeds limit")

// Limits constrains frame accumulation. Zero means unbounded, matching the
// controller protocol which declares no maximum frame length.
type Limits struct {
	MaxPayloadBytes int
}

func DefaultLimits() Limits {
	return Limits{}
}

// State is the framing state of a Reader.
type State int

const (
	Idle State = iota
	InFrame
)

func (s State) String() string {
	switch s {
	case InFrame:
		return "in_frame"
	default:
		return "idle"
	}
}

// Reader extracts delimited frames from a byte stream one byte at a time.
// It is not safe for concurrent use.
type Reader struct {
	src    io.ByteReader
	limits Limits
	state  State
	buf    []byte
}

func NewReader(src io.ByteReader, limits Limits) *Reader {
	return &Reader{src: src, limits: limits}
}

// State reports the current framing state.
func (r *Reader) State() State {
	return r.state
}

// ReadFrame blocks until a complete frame is observed and returns the bytes
// between the start and end markers. Read errors are returned as-is and are
// not retried. A frame exceeding the configured limit is discarded and
// ErrFrameTooLarge is returned.
func (r *Reader) ReadFrame() (string, error) {
	for {
		b, err := r.src.ReadByte()
		if err != nil {
			return "", err
		}
		switch {
		case b == StartMarker:
			r.state = InFrame
			r.buf = r.buf[:0]
		case r.state != InFrame:
			// pre-frame noise, including a stray end marker
		case b == EndMarker:
			r.state = Idle
			out := string(r.buf)
			r.buf = r.buf[:0]
			return out, nil
		default:
			if r.limits.MaxPayloadBytes > 0 && len(r.buf) >= r.limits.MaxPayloadBytes {
				r.state = Idle
				r.buf = r.buf[:0]
				return "", ErrFrameTooLarge
			}
			r.buf = append(r.buf, b)
		}
	}
}

// ReadFrame is a convenience for a single frame from src with default limits.
func ReadFrame(src io.ByteReader) (string, error) {
	return NewReader(src, DefaultLimits()).ReadFrame()
}
