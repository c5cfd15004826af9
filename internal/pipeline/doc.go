// Package pipeline owns the scoreboard ingest loop.
//
// Ownership boundary:
// - the single ScoreboardState instance for the process lifetime
// - strict frame -> decode -> apply -> serialize -> gate -> publish ordering
// - diagnostics for unrecognized frames and failed publishes
//
// One goroutine drives a Runner. Collaborators that display state read it
// through Runner.State between steps.
package pipeline
