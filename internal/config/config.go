package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danmuck/scorelink/internal/decode"
	"github.com/danmuck/scorelink/internal/protocol/layout"
	"github.com/danmuck/scorelink/internal/publish"
)

var ErrInvalidConfig = errors.New("config: invalid")

// SerialConfig describes the controller link. The controller only speaks
// 9600 8N1; the fields exist so bench adapters can be matched.
type SerialConfig struct {
	Port     string
	Baud     int
	DataBits int
	Parity   string
	StopBits int
}

type DecodeConfig struct {
	ClockFormat   decode.ClockFormat
	MatchMode     layout.MatchMode
	MaxFrameBytes int
	TrimNumeric   bool
}

type PublishConfig struct {
	Sink           publish.Kind
	Address        string
	Port           int
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
	RedisStream    string
	LegacyAliases  bool
}

type MetricsConfig struct {
	Listen string
}

// Config is the resolved runtime configuration.
type Config struct {
	Serial  SerialConfig
	Decode  DecodeConfig
	Publish PublishConfig
	Metrics MetricsConfig
}

func Default() Config {
	return Config{
		Serial: SerialConfig{
			Baud:     9600,
			DataBits: 8,
			Parity:   "none",
			StopBits: 1,
		},
		Decode: DecodeConfig{
			ClockFormat:   decode.ClockMinutesSeconds,
			MatchMode:     layout.Anchored,
			MaxFrameBytes: 0,
			TrimNumeric:   true,
		},
		Publish: PublishConfig{
			Sink:           publish.KindTCP,
			ConnectTimeout: 5 * time.Second,
			WriteTimeout:   5 * time.Second,
			RedisStream:    publish.DefaultStream,
		},
	}
}

// Load resolves defaults, then the TOML file at path (when non-empty),
// then environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Target is the publish destination.
func (c Config) Target() publish.Target {
	return publish.Target{Address: c.Publish.Address, Port: c.Publish.Port}
}

func (c Config) SinkConfig() publish.SinkConfig {
	return publish.SinkConfig{
		Kind:           c.Publish.Sink,
		Target:         c.Target(),
		ConnectTimeout: c.Publish.ConnectTimeout,
		WriteTimeout:   c.Publish.WriteTimeout,
		RedisStream:    c.Publish.RedisStream,
	}
}

func (c Config) DecodeOptions() decode.Options {
	return decode.Options{Clock: c.Decode.ClockFormat, Match: c.Decode.MatchMode}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Serial.Port) == "" {
		return fmt.Errorf("%w: serial port is required", ErrInvalidConfig)
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("%w: serial baud %d", ErrInvalidConfig, c.Serial.Baud)
	}
	if c.Serial.DataBits < 5 || c.Serial.DataBits > 8 {
		return fmt.Errorf("%w: serial data_bits %d", ErrInvalidConfig, c.Serial.DataBits)
	}
	if _, err := ParseParity(c.Serial.Parity); err != nil {
		return err
	}
	if c.Serial.StopBits != 1 && c.Serial.StopBits != 2 {
		return fmt.Errorf("%w: serial stop_bits %d", ErrInvalidConfig, c.Serial.StopBits)
	}
	if _, err := decode.ParseClockFormat(string(c.Decode.ClockFormat)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := layout.ParseMatchMode(string(c.Decode.MatchMode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Decode.MaxFrameBytes < 0 {
		return fmt.Errorf("%w: decode max_frame_bytes %d", ErrInvalidConfig, c.Decode.MaxFrameBytes)
	}
	if _, err := publish.ParseKind(string(c.Publish.Sink)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.Publish.Address) == "" {
		return fmt.Errorf("%w: publish address is required (use %q to disable)", ErrInvalidConfig, publish.DisabledAddress)
	}
	if err := c.Target().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Parity names accepted in configuration.
const (
	ParityNone = "none"
	ParityOdd  = "odd"
	ParityEven = "even"
)

func ParseParity(raw string) (string, error) {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case "", ParityNone:
		return ParityNone, nil
	case ParityOdd, ParityEven:
		return p, nil
	default:
		return "", fmt.Errorf("%w: serial parity %q", ErrInvalidConfig, raw)
	}
}
