package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/scorelink/internal/decode"
	"github.com/danmuck/scorelink/internal/protocol/layout"
	"github.com/danmuck/scorelink/internal/publish"
	"github.com/danmuck/scorelink/internal/testutil/testlog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	testlog.Start(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Serial.Baud != 9600 || cfg.Serial.DataBits != 8 || cfg.Serial.Parity != "none" || cfg.Serial.StopBits != 1 {
		t.Fatalf("unexpected serial defaults: %+v", cfg.Serial)
	}
	if cfg.Decode.ClockFormat != decode.ClockMinutesSeconds {
		t.Fatalf("unexpected clock format: %q", cfg.Decode.ClockFormat)
	}
	if cfg.Decode.MatchMode != layout.Anchored || !cfg.Decode.TrimNumeric || cfg.Decode.MaxFrameBytes != 0 {
		t.Fatalf("unexpected decode defaults: %+v", cfg.Decode)
	}
	if cfg.Publish.Sink != publish.KindTCP || cfg.Publish.ConnectTimeout != 5*time.Second {
		t.Fatalf("unexpected publish defaults: %+v", cfg.Publish)
	}
}

func TestTemplateLoadsAndValidates(t *testing.T) {
	testlog.Start(t)
	cfg, err := Load(writeConfig(t, Template()))
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate template: %v", err)
	}
	if cfg.Serial.Port != "/dev/ttyUSB0" {
		t.Fatalf("unexpected port: %q", cfg.Serial.Port)
	}
	if cfg.Publish.Address != "127.0.0.1" || cfg.Publish.Port != 9000 {
		t.Fatalf("unexpected target: %+v", cfg.Target())
	}
}

func TestLoadFileOverrides(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
[decode]
clock_format = "MM:SS.T"
match_mode = "search"
trim_numeric = false

[publish]
sink = "redis"
address = "NONE"
write_timeout = "250ms"
legacy_aliases = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Decode.ClockFormat != decode.ClockMinutesSecondsTenths {
		t.Fatalf("unexpected clock format: %q", cfg.Decode.ClockFormat)
	}
	if cfg.Decode.MatchMode != layout.Search || cfg.Decode.TrimNumeric {
		t.Fatalf("unexpected decode: %+v", cfg.Decode)
	}
	if cfg.Publish.Sink != publish.KindRedis || !cfg.Publish.LegacyAliases {
		t.Fatalf("unexpected publish: %+v", cfg.Publish)
	}
	if cfg.Publish.WriteTimeout != 250*time.Millisecond {
		t.Fatalf("unexpected write timeout: %v", cfg.Publish.WriteTimeout)
	}
	if !cfg.Target().Disabled() {
		t.Fatalf("expected disabled target")
	}
	if cfg.Publish.ConnectTimeout != 5*time.Second {
		t.Fatalf("undefined keys must keep defaults: %v", cfg.Publish.ConnectTimeout)
	}
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	testlog.Start(t)
	cases := []string{
		"[decode]\nclock_format = \"hh:mm\"\n",
		"[decode]\nmatch_mode = \"fuzzy\"\n",
		"[publish]\nsink = \"udp\"\n",
		"[publish]\nconnect_timeout = \"abc\"\n",
		"[publish]\nretries = 3\n",
	}
	for _, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Fatalf("expected error for %q", content)
		}
	}
}

func TestEnvOverridesFile(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, "[publish]\naddress = \"10.0.0.5\"\nport = 9000\n")
	t.Setenv("SCORELINK_PUBLISH_ADDRESS", "10.0.0.9")
	t.Setenv("SCORELINK_PUBLISH_PORT", "9100")
	t.Setenv("SCORELINK_CLOCK_FORMAT", "raw")
	t.Setenv("SCORELINK_PUBLISH_CONNECT_TIMEOUT", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Publish.Address != "10.0.0.9" || cfg.Publish.Port != 9100 {
		t.Fatalf("unexpected target: %+v", cfg.Target())
	}
	if cfg.Decode.ClockFormat != decode.ClockRaw {
		t.Fatalf("unexpected clock format: %q", cfg.Decode.ClockFormat)
	}
	if cfg.Publish.ConnectTimeout != 2*time.Second {
		t.Fatalf("unexpected connect timeout: %v", cfg.Publish.ConnectTimeout)
	}
}

func TestEnvRejectsBadValues(t *testing.T) {
	testlog.Start(t)
	t.Setenv("SCORELINK_PUBLISH_PORT", "abc")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected env parse error")
	}
}

func TestValidate(t *testing.T) {
	testlog.Start(t)
	cfg := Default()
	cfg.Serial.Port = "COM3"
	cfg.Publish.Address = "none"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled publish must validate without port: %v", err)
	}

	bad := cfg
	bad.Publish.Address = "127.0.0.1"
	bad.Publish.Port = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for port, got %v", err)
	}

	bad = cfg
	bad.Serial.Port = ""
	if err := bad.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for serial port, got %v", err)
	}

	bad = cfg
	bad.Serial.Parity = "mark"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for parity, got %v", err)
	}

	bad = cfg
	bad.Publish.Address = ""
	if err := bad.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for empty address, got %v", err)
	}
}

func TestWriteTemplateRespectsOverwrite(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "scorelink.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected existing file error")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}
