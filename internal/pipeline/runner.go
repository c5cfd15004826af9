package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/danmuck/scorelink/internal/decode"
	"github.com/danmuck/scorelink/internal/observability"
	"github.com/danmuck/scorelink/internal/protocol/frame"
	"github.com/danmuck/scorelink/internal/publish"
	"github.com/danmuck/scorelink/internal/scoreboard"
	logs "github.com/danmuck/smplog"
)

// Options wires the pipeline stages.
type Options struct {
	Limits   frame.Limits
	Decode   decode.Options
	State    scoreboard.Options
	Document scoreboard.DocumentOptions
	// Sink receives changed documents; nil disables publishing.
	Sink   publish.Sink
	Target publish.Target
	// Logger overrides the process logger configured by internal/logging.
	Logger *logs.Logger
}

// Step describes what one iteration did.
type Step struct {
	Frame      string
	Pattern    string
	Matched    bool
	Document   []byte
	Outcome    publish.Outcome
	PublishErr error
}

// Runner owns the scoreboard state and drives frame→decode→publish
// strictly in sequence. It is not safe for concurrent use.
type Runner struct {
	frames  *frame.Reader
	table   *decode.Table
	state   *scoreboard.State
	gate    *publish.Gate
	docOpts scoreboard.DocumentOptions
	target  publish.Target
	sink    string
	logger  *logs.Logger
}

func New(src io.ByteReader, opts Options) *Runner {
	sinkName := "none"
	if opts.Sink != nil {
		sinkName = opts.Sink.String()
	}
	return &Runner{
		frames:  frame.NewReader(src, opts.Limits),
		table:   decode.DefaultTable(opts.Decode),
		state:   scoreboard.NewStateWithOptions(opts.State),
		gate:    publish.NewGate(opts.Sink),
		docOpts: opts.Document,
		target:  opts.Target,
		sink:    sinkName,
		logger:  opts.Logger,
	}
}

func (r *Runner) log() *logs.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logs.Zerolog()
}

// State exposes the live snapshot for read-only collaborators.
func (r *Runner) State() *scoreboard.State {
	return r.state
}

func (r *Runner) LastSent() string {
	return r.gate.LastSent()
}

// Run loops until the byte source fails. A read error ends the loop; when
// ctx is already done the context error is returned instead.
func (r *Runner) Run(ctx context.Context) error {
	r.log().Info().Msgf("pipeline.Runner.Run waiting for data sink=%s", r.sink)
	for {
		if _, err := r.Step(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
	}
}

// Step blocks for one frame and processes it. Only framing errors are
// returned; unrecognized frames and publish failures are logged.
func (r *Runner) Step(ctx context.Context) (Step, error) {
	raw, err := r.frames.ReadFrame()
	if err != nil {
		observability.RecordFrame("", "error")
		return Step{}, fmt.Errorf("pipeline: read frame: %w", err)
	}
	step := Step{Frame: raw}
	if raw == "" {
		observability.RecordFrame("", "empty")
		return step, nil
	}

	res, ok := r.table.Decode(raw)
	if !ok {
		observability.RecordFrame("", "unrecognized")
		r.log().Warn().Msgf("pipeline.Runner.Step unrecognized frame=|%s|", raw)
		return step, nil
	}
	step.Matched = true
	step.Pattern = res.Pattern
	if err := r.state.Apply(res.Updates...); err != nil {
		observability.RecordFrame(res.Pattern, "rejected")
		r.log().Error().Msgf("pipeline.Runner.Step apply pattern=%s err=%v", res.Pattern, err)
		return step, nil
	}
	observability.RecordFrame(res.Pattern, "decoded")

	doc, err := r.state.Document(r.docOpts)
	if err != nil {
		r.log().Error().Msgf("pipeline.Runner.Step encode err=%v", err)
		return step, nil
	}
	step.Document = doc

	start := time.Now()
	outcome, err := r.gate.Publish(ctx, doc)
	step.Outcome = outcome
	step.PublishErr = err
	switch outcome {
	case publish.Sent, publish.Failed:
		observability.RecordPublish(r.sink, outcome.String(), time.Since(start))
	default:
		observability.RecordPublish(r.sink, outcome.String(), 0)
	}

	switch outcome {
	case publish.Sent:
		r.log().Debug().Msgf("pipeline.Runner.Step published pattern=%s bytes=%d", res.Pattern, len(doc))
	case publish.Failed:
		r.log().Error().Msgf(
			"pipeline.Runner.Step publish failed address=%s port=%d err=%v document=%s",
			r.target.Address,
			r.target.Port,
			err,
			strings.TrimSuffix(string(doc), "\n"),
		)
	}
	return step, nil
}
