package scoreboard

import "fmt"

// Field identifies one logical scoreboard value.
type Field int

const (
	GameClock Field = iota
	Period
	ShotClock
	ScoreHome
	ScoreAway
	FoulsHome
	FoulsAway
	TimeoutsHome
	TimeoutsAway
	Downs
	Yards
	LOS
	Possession

	fieldCount
)

// Aliases used by sports that name the same value differently.
const (
	Quarter   = Period
	PlayClock = ShotClock
)

type kind int

const (
	kindNumeric kind = iota
	kindVerbatim
	kindTrimmed
)

var fieldNames = [fieldCount]string{
	GameClock:    "GameClock",
	Period:       "Period",
	ShotClock:    "ShotClock",
	ScoreHome:    "ScoreHome",
	ScoreAway:    "ScoreAway",
	FoulsHome:    "FoulsHome",
	FoulsAway:    "FoulsAway",
	TimeoutsHome: "TimeoutsHome",
	TimeoutsAway: "TimeoutsAway",
	Downs:        "Downs",
	Yards:        "Yards",
	LOS:          "LOS",
	Possession:   "Possession",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

func (f Field) valid() bool {
	return f >= 0 && f < fieldCount
}

func (f Field) kind() kind {
	switch f {
	case GameClock, Possession:
		return kindVerbatim
	case ShotClock:
		return kindTrimmed
	default:
		return kindNumeric
	}
}

// Update is a single pending write to a field.
type Update struct {
	Field Field
	Value string
}

func Set(f Field, value string) Update {
	return Update{Field: f, Value: value}
}
