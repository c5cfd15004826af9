package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os/signal"
	"syscall"

	"github.com/danmuck/scorelink/internal/config"
	"github.com/danmuck/scorelink/internal/decode"
	"github.com/danmuck/scorelink/internal/logging"
	"github.com/danmuck/scorelink/internal/observability"
	"github.com/danmuck/scorelink/internal/pipeline"
	"github.com/danmuck/scorelink/internal/protocol/frame"
	"github.com/danmuck/scorelink/internal/protocol/layout"
	"github.com/danmuck/scorelink/internal/publish"
	"github.com/danmuck/scorelink/internal/scoreboard"
	"github.com/danmuck/scorelink/internal/serialport"
	logs "github.com/danmuck/smplog"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath    string
	clockFormat   string
	matchMode     string
	sink          string
	metricsListen string
	legacyAliases bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:   "scorelink <serial-port> <server-address> <server-port>",
		Short: "Forward scoreboard controller state to a downstream consumer",
		Long: `scorelink reads STX/ETX framed status from a scoreboard controller on a
9600 8N1 serial line, keeps a normalized scoreboard snapshot and sends it as a
JSON document to the configured consumer whenever it changes.

Use "none" as the server address to disable publishing.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && flags.configPath != "" {
				return nil
			}
			if len(args) != 3 {
				return fmt.Errorf("usage: %s", cmd.Use)
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "TOML config file")
	f.StringVar(&flags.clockFormat, "clock-format", "", "game clock format: mm:ss | mm:ss.t | raw")
	f.StringVar(&flags.matchMode, "match-mode", "", "frame tag matching: anchored | search")
	f.StringVar(&flags.sink, "sink", "", "publish transport: tcp | redis")
	f.StringVar(&flags.metricsListen, "metrics-listen", "", "address for /metrics and /health")
	f.BoolVar(&flags.legacyAliases, "legacy-aliases", false, "include Quarter and PlayClock in documents")

	cmd.AddCommand(newConfigCmd())
	return cmd
}

// resolveConfig layers defaults, file and env, then flags and positional
// arguments, and validates the result.
func resolveConfig(cmd *cobra.Command, flags rootFlags, args []string) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if len(args) == 3 {
		port, err := publish.ParsePort(args[2])
		if err != nil {
			return config.Config{}, fmt.Errorf("server port must be numeric: %w", err)
		}
		cfg.Serial.Port = args[0]
		cfg.Publish.Address = args[1]
		cfg.Publish.Port = port
	}

	changed := cmd.Flags().Changed
	if changed("clock-format") {
		if cfg.Decode.ClockFormat, err = decode.ParseClockFormat(flags.clockFormat); err != nil {
			return config.Config{}, err
		}
	}
	if changed("match-mode") {
		if cfg.Decode.MatchMode, err = layout.ParseMatchMode(flags.matchMode); err != nil {
			return config.Config{}, err
		}
	}
	if changed("sink") {
		if cfg.Publish.Sink, err = publish.ParseKind(flags.sink); err != nil {
			return config.Config{}, err
		}
	}
	if changed("metrics-listen") {
		cfg.Metrics.Listen = flags.metricsListen
	}
	if changed("legacy-aliases") {
		cfg.Publish.LegacyAliases = flags.legacyAliases
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func pipelineOptions(cfg config.Config, sink publish.Sink) pipeline.Options {
	numeric := scoreboard.TrimNumeric
	if !cfg.Decode.TrimNumeric {
		numeric = scoreboard.VerbatimNumeric
	}
	return pipeline.Options{
		Limits:   frame.Limits{MaxPayloadBytes: cfg.Decode.MaxFrameBytes},
		Decode:   cfg.DecodeOptions(),
		State:    scoreboard.Options{Numeric: numeric},
		Document: scoreboard.DocumentOptions{LegacyAliases: cfg.Publish.LegacyAliases},
		Sink:     sink,
		Target:   cfg.Target(),
	}
}

func run(parent context.Context, cfg config.Config) error {
	logging.ConfigureRuntime()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink, err := publish.NewSink(cfg.SinkConfig())
	if err != nil {
		return err
	}
	if c, ok := sink.(io.Closer); ok {
		defer c.Close()
	}
	if sink == nil {
		logs.Infof("scorelink publishing disabled address=%q", cfg.Publish.Address)
	}

	port, err := serialport.Open(serialport.Settings{
		Port:     cfg.Serial.Port,
		Baud:     cfg.Serial.Baud,
		DataBits: cfg.Serial.DataBits,
		Parity:   cfg.Serial.Parity,
		StopBits: cfg.Serial.StopBits,
	})
	if err != nil {
		return err
	}
	defer port.Close()
	// Closing the port is the only way to unblock a pending read.
	go func() {
		<-ctx.Done()
		_ = port.Close()
	}()

	if cfg.Metrics.Listen != "" {
		ln, err := net.Listen("tcp", cfg.Metrics.Listen)
		if err != nil {
			return fmt.Errorf("metrics listen: %w", err)
		}
		go func() {
			if err := observability.Serve(ctx, ln); err != nil {
				logs.Errorf(err, "scorelink metrics server stopped")
			}
		}()
	}

	runner := pipeline.New(bufio.NewReader(port), pipelineOptions(cfg, sink))
	logs.Infof(
		"scorelink started port=%s baud=%d clock_format=%s match_mode=%s",
		cfg.Serial.Port,
		cfg.Serial.Baud,
		cfg.Decode.ClockFormat,
		cfg.Decode.MatchMode,
	)

	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logs.Infof("scorelink shutdown")
		return nil
	}
	return err
}
