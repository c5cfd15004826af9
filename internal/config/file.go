package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/scorelink/internal/decode"
	"github.com/danmuck/scorelink/internal/protocol/layout"
	"github.com/danmuck/scorelink/internal/publish"
)

type fileConfig struct {
	Serial struct {
		Port     string `toml:"port"`
		Baud     int    `toml:"baud"`
		DataBits int    `toml:"data_bits"`
		Parity   string `toml:"parity"`
		StopBits int    `toml:"stop_bits"`
	} `toml:"serial"`
	Decode struct {
		ClockFormat   string `toml:"clock_format"`
		MatchMode     string `toml:"match_mode"`
		MaxFrameBytes int    `toml:"max_frame_bytes"`
		TrimNumeric   bool   `toml:"trim_numeric"`
	} `toml:"decode"`
	Publish struct {
		Sink           string `toml:"sink"`
		Address        string `toml:"address"`
		Port           int    `toml:"port"`
		ConnectTimeout string `toml:"connect_timeout"`
		WriteTimeout   string `toml:"write_timeout"`
		RedisStream    string `toml:"redis_stream"`
		LegacyAliases  bool   `toml:"legacy_aliases"`
	} `toml:"publish"`
	Metrics struct {
		Listen string `toml:"listen"`
	} `toml:"metrics"`
}

func applyFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	if meta.IsDefined("serial", "port") {
		cfg.Serial.Port = strings.TrimSpace(raw.Serial.Port)
	}
	if meta.IsDefined("serial", "baud") {
		cfg.Serial.Baud = raw.Serial.Baud
	}
	if meta.IsDefined("serial", "data_bits") {
		cfg.Serial.DataBits = raw.Serial.DataBits
	}
	if meta.IsDefined("serial", "parity") {
		cfg.Serial.Parity = strings.TrimSpace(raw.Serial.Parity)
	}
	if meta.IsDefined("serial", "stop_bits") {
		cfg.Serial.StopBits = raw.Serial.StopBits
	}

	if meta.IsDefined("decode", "clock_format") {
		f, err := decode.ParseClockFormat(raw.Decode.ClockFormat)
		if err != nil {
			return fmt.Errorf("parse decode.clock_format: %w", err)
		}
		cfg.Decode.ClockFormat = f
	}
	if meta.IsDefined("decode", "match_mode") {
		m, err := layout.ParseMatchMode(raw.Decode.MatchMode)
		if err != nil {
			return fmt.Errorf("parse decode.match_mode: %w", err)
		}
		cfg.Decode.MatchMode = m
	}
	if meta.IsDefined("decode", "max_frame_bytes") {
		cfg.Decode.MaxFrameBytes = raw.Decode.MaxFrameBytes
	}
	if meta.IsDefined("decode", "trim_numeric") {
		cfg.Decode.TrimNumeric = raw.Decode.TrimNumeric
	}

	if meta.IsDefined("publish", "sink") {
		k, err := publish.ParseKind(raw.Publish.Sink)
		if err != nil {
			return fmt.Errorf("parse publish.sink: %w", err)
		}
		cfg.Publish.Sink = k
	}
	if meta.IsDefined("publish", "address") {
		cfg.Publish.Address = strings.TrimSpace(raw.Publish.Address)
	}
	if meta.IsDefined("publish", "port") {
		cfg.Publish.Port = raw.Publish.Port
	}
	if meta.IsDefined("publish", "connect_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Publish.ConnectTimeout))
		if err != nil {
			return fmt.Errorf("parse publish.connect_timeout: %w", err)
		}
		cfg.Publish.ConnectTimeout = d
	}
	if meta.IsDefined("publish", "write_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Publish.WriteTimeout))
		if err != nil {
			return fmt.Errorf("parse publish.write_timeout: %w", err)
		}
		cfg.Publish.WriteTimeout = d
	}
	if meta.IsDefined("publish", "redis_stream") {
		cfg.Publish.RedisStream = strings.TrimSpace(raw.Publish.RedisStream)
	}
	if meta.IsDefined("publish", "legacy_aliases") {
		cfg.Publish.LegacyAliases = raw.Publish.LegacyAliases
	}

	if meta.IsDefined("metrics", "listen") {
		cfg.Metrics.Listen = strings.TrimSpace(raw.Metrics.Listen)
	}
	return nil
}
