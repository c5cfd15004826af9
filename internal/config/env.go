package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/danmuck/scorelink/internal/decode"
	"github.com/danmuck/scorelink/internal/protocol/layout"
	"github.com/danmuck/scorelink/internal/publish"
)

// envConfig holds optional overrides; nil means the variable is unset.
type envConfig struct {
	SerialPort     *string        `env:"SCORELINK_SERIAL_PORT"`
	SerialBaud     *int           `env:"SCORELINK_SERIAL_BAUD"`
	ClockFormat    *string        `env:"SCORELINK_CLOCK_FORMAT"`
	MatchMode      *string        `env:"SCORELINK_MATCH_MODE"`
	MaxFrameBytes  *int           `env:"SCORELINK_MAX_FRAME_BYTES"`
	TrimNumeric    *bool          `env:"SCORELINK_TRIM_NUMERIC"`
	Sink           *string        `env:"SCORELINK_PUBLISH_SINK"`
	Address        *string        `env:"SCORELINK_PUBLISH_ADDRESS"`
	Port           *int           `env:"SCORELINK_PUBLISH_PORT"`
	ConnectTimeout *time.Duration `env:"SCORELINK_PUBLISH_CONNECT_TIMEOUT"`
	WriteTimeout   *time.Duration `env:"SCORELINK_PUBLISH_WRITE_TIMEOUT"`
	RedisStream    *string        `env:"SCORELINK_PUBLISH_REDIS_STREAM"`
	LegacyAliases  *bool          `env:"SCORELINK_PUBLISH_LEGACY_ALIASES"`
	MetricsListen  *string        `env:"SCORELINK_METRICS_LISTEN"`
}

// ApplyEnv overlays SCORELINK_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.SerialPort != nil {
		cfg.Serial.Port = strings.TrimSpace(*e.SerialPort)
	}
	if e.SerialBaud != nil {
		cfg.Serial.Baud = *e.SerialBaud
	}
	if e.ClockFormat != nil {
		f, err := decode.ParseClockFormat(*e.ClockFormat)
		if err != nil {
			return fmt.Errorf("parse env: %w", err)
		}
		cfg.Decode.ClockFormat = f
	}
	if e.MatchMode != nil {
		m, err := layout.ParseMatchMode(*e.MatchMode)
		if err != nil {
			return fmt.Errorf("parse env: %w", err)
		}
		cfg.Decode.MatchMode = m
	}
	if e.MaxFrameBytes != nil {
		cfg.Decode.MaxFrameBytes = *e.MaxFrameBytes
	}
	if e.TrimNumeric != nil {
		cfg.Decode.TrimNumeric = *e.TrimNumeric
	}
	if e.Sink != nil {
		k, err := publish.ParseKind(*e.Sink)
		if err != nil {
			return fmt.Errorf("parse env: %w", err)
		}
		cfg.Publish.Sink = k
	}
	if e.Address != nil {
		cfg.Publish.Address = strings.TrimSpace(*e.Address)
	}
	if e.Port != nil {
		cfg.Publish.Port = *e.Port
	}
	if e.ConnectTimeout != nil {
		cfg.Publish.ConnectTimeout = *e.ConnectTimeout
	}
	if e.WriteTimeout != nil {
		cfg.Publish.WriteTimeout = *e.WriteTimeout
	}
	if e.RedisStream != nil {
		cfg.Publish.RedisStream = strings.TrimSpace(*e.RedisStream)
	}
	if e.LegacyAliases != nil {
		cfg.Publish.LegacyAliases = *e.LegacyAliases
	}
	if e.MetricsListen != nil {
		cfg.Metrics.Listen = strings.TrimSpace(*e.MetricsListen)
	}
	return nil
}
