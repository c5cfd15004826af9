package scoreboard

import (
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("scoreboard: unknown field")

// Options adjusts normalization of stored values.
type Options struct {
	Numeric NumericPolicy
}

// State is the normalized running scoreboard snapshot. It has a single
// writer and is not safe for concurrent use.
type State struct {
	opts   Options
	values [fieldCount]string
}

func NewState() *State {
	return NewStateWithOptions(Options{})
}

func NewStateWithOptions(opts Options) *State {
	s := &State{opts: opts}
	for f := Field(0); f < fieldCount; f++ {
		if f.kind() == kindNumeric {
			s.values[f] = DefaultNumeric
		}
	}
	s.values[GameClock] = "00:00"
	s.values[ShotClock] = "0"
	return s
}

// Normalize returns the value f would store for raw.
func (s *State) Normalize(f Field, raw string) string {
	switch f.kind() {
	case kindNumeric:
		return coerceNumeric(raw, s.opts.Numeric)
	case kindTrimmed:
		return CoerceTrimmed(raw)
	default:
		return raw
	}
}

// Apply normalizes and stores every update in order. An unknown field
// stops the batch before anything is written.
func (s *State) Apply(updates ...Update) error {
	for _, u := range updates {
		if !u.Field.valid() {
			return fmt.Errorf("%w: %d", ErrUnknownField, int(u.Field))
		}
	}
	for _, u := range updates {
		s.values[u.Field] = s.Normalize(u.Field, u.Value)
	}
	return nil
}

// Get returns the stored value of f.
func (s *State) Get(f Field) string {
	if !f.valid() {
		return ""
	}
	return s.values[f]
}

func (s *State) PossessionHome() string {
	home, _ := DerivePossession(s.values[Possession])
	return home
}

func (s *State) PossessionAway() string {
	_, away := DerivePossession(s.values[Possession])
	return away
}

// Snapshot copies the current values including the derived flags.
func (s *State) Snapshot() Values {
	home, away := DerivePossession(s.values[Possession])
	return Values{
		GameClock:      s.values[GameClock],
		Period:         s.values[Period],
		ShotClock:      s.values[ShotClock],
		ScoreAway:      s.values[ScoreAway],
		ScoreHome:      s.values[ScoreHome],
		FoulsAway:      s.values[FoulsAway],
		FoulsHome:      s.values[FoulsHome],
		TimeoutsAway:   s.values[TimeoutsAway],
		TimeoutsHome:   s.values[TimeoutsHome],
		Downs:          s.values[Downs],
		Yards:          s.values[Yards],
		LOS:            s.values[LOS],
		Possession:     s.values[Possession],
		PossessionAway: away,
		PossessionHome: home,
	}
}
