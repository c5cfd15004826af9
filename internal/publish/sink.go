package publish

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sink accepts one serialized document per call.
type Sink interface {
	Send(ctx context.Context, doc []byte) error
	String() string
}

// TCPSink opens a fresh connection per document, writes it in a single
// call and closes the connection.
type TCPSink struct {
	target         Target
	connectTimeout time.Duration
	writeTimeout   time.Duration
}

func NewTCPSink(target Target, connectTimeout, writeTimeout time.Duration) *TCPSink {
	return &TCPSink{target: target, connectTimeout: connectTimeout, writeTimeout: writeTimeout}
}

func (s *TCPSink) Send(ctx context.Context, doc []byte) error {
	d := net.Dialer{Timeout: s.connectTimeout}
	conn, err := d.DialContext(ctx, "tcp", s.target.HostPort())
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.target.HostPort(), err)
	}
	defer conn.Close()

	if s.writeTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return fmt.Errorf("set write deadline: %w", err)
		}
	}
	if _, err := conn.Write(doc); err != nil {
		return fmt.Errorf("write %s: %w", s.target.HostPort(), err)
	}
	return nil
}

func (s *TCPSink) String() string {
	return "tcp://" + s.target.HostPort()
}

// DefaultStream is the Redis stream documents are appended to.
const DefaultStream = "scoreboard.ocr"

// RedisSink appends each document to a Redis stream under the "data" key.
type RedisSink struct {
	client *redis.Client
	stream string
}

func NewRedisSink(client *redis.Client, stream string) *RedisSink {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisSink{client: client, stream: stream}
}

func (s *RedisSink) Send(ctx context.Context, doc []byte) error {
	_, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"data": string(doc),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}

func (s *RedisSink) String() string {
	return "redis://" + s.client.Options().Addr + "/" + s.stream
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}

// SinkConfig describes how to reach the consumer.
type SinkConfig struct {
	Kind           Kind
	Target         Target
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
	RedisStream    string
}

// NewSink builds the sink for cfg. A disabled target yields a nil sink.
func NewSink(cfg SinkConfig) (Sink, error) {
	if cfg.Target.Disabled() {
		return nil, nil
	}
	if err := cfg.Target.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case "", KindTCP:
		return NewTCPSink(cfg.Target, cfg.ConnectTimeout, cfg.WriteTimeout), nil
	case KindRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Target.HostPort(),
			DialTimeout:  cfg.ConnectTimeout,
			WriteTimeout: cfg.WriteTimeout,
			MaxRetries:   -1,
		})
		return NewRedisSink(client, cfg.RedisStream), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, cfg.Kind)
	}
}
