package publish

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DisabledAddress turns publishing off when used as the target address.
// It is matched case-insensitively.
const DisabledAddress = "none"

var (
	ErrInvalidPort = errors.New("publish: invalid port")
	ErrUnknownSink = errors.New("publish: unknown sink kind")
)

// Kind selects the transport used for documents.
type Kind string

const (
	KindTCP   Kind = "tcp"
	KindRedis Kind = "redis"
)

func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", KindTCP:
		return KindTCP, nil
	case KindRedis:
		return KindRedis, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSink, raw)
	}
}

// Target is the downstream consumer address.
type Target struct {
	Address string
	Port    int
}

// Disabled reports whether the address is the disable sentinel.
func (t Target) Disabled() bool {
	return strings.EqualFold(strings.TrimSpace(t.Address), DisabledAddress)
}

func (t Target) HostPort() string {
	return net.JoinHostPort(strings.TrimSpace(t.Address), strconv.Itoa(t.Port))
}

func (t Target) Validate() error {
	if t.Disabled() {
		return nil
	}
	if t.Port < 1 || t.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, t.Port)
	}
	return nil
}

// ParsePort parses a decimal port argument.
func ParsePort(raw string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q must be numeric", ErrInvalidPort, raw)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPort, p)
	}
	return p, nil
}
