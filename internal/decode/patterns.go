package decode

import (
	"github.com/danmuck/scorelink/internal/protocol/layout"
	"github.com/danmuck/scorelink/internal/scoreboard"
)

const (
	TagFull  byte = 'F'
	TagClock byte = 'C'
)

// Group names shared by the layouts and their decoders.
const (
	groupHomeScore    = "home_score"
	groupHomeTimeouts = "home_timeouts"
	groupAwayScore    = "away_score"
	groupAwayTimeouts = "away_timeouts"
	groupDown         = "down"
	groupToGo         = "to_go"
	groupBallOn       = "ball_on"
	groupPossession   = "possession"

	groupClock  = "clock"
	groupPeriod = "period"
	groupShot   = "shot"
)

var (
	fullLayout = layout.MustNew("full", TagFull,
		layout.Field{Width: 10},
		layout.Field{Name: groupHomeScore, Width: 2},
		layout.Field{Name: groupHomeTimeouts, Width: 1},
		layout.Field{Width: 10},
		layout.Field{Name: groupAwayScore, Width: 2},
		layout.Field{Name: groupAwayTimeouts, Width: 1},
		layout.Field{Name: groupDown, Width: 1},
		layout.Field{Name: groupToGo, Width: 2},
		layout.Field{Name: groupBallOn, Width: 2},
		layout.Field{Name: groupPossession, Width: 1},
	)
	clockLayout = layout.MustNew("clock", TagClock,
		layout.Field{Name: groupClock, Width: 5},
		layout.Field{Name: groupPeriod, Width: 1},
		layout.Field{Name: groupShot, Width: 2},
	)
)

// FullPattern decodes the scoreboard frame: scores, timeouts, down and
// distance, ball position and possession.
func FullPattern() Pattern {
	return Pattern{Layout: fullLayout, Decode: decodeFull}
}

// ClockPattern decodes the game clock, period and shot/play clock.
func ClockPattern() Pattern {
	return Pattern{Layout: clockLayout, Decode: decodeClock}
}

func decodeFull(g layout.Groups, _ Options) []scoreboard.Update {
	return []scoreboard.Update{
		scoreboard.Set(scoreboard.ScoreHome, g.Get(groupHomeScore)),
		scoreboard.Set(scoreboard.ScoreAway, g.Get(groupAwayScore)),
		scoreboard.Set(scoreboard.TimeoutsHome, g.Get(groupHomeTimeouts)),
		scoreboard.Set(scoreboard.TimeoutsAway, g.Get(groupAwayTimeouts)),
		scoreboard.Set(scoreboard.Downs, g.Get(groupDown)),
		scoreboard.Set(scoreboard.Yards, g.Get(groupToGo)),
		scoreboard.Set(scoreboard.LOS, g.Get(groupBallOn)),
		scoreboard.Set(scoreboard.Possession, g.Get(groupPossession)),
	}
}

func decodeClock(g layout.Groups, opts Options) []scoreboard.Update {
	return []scoreboard.Update{
		scoreboard.Set(scoreboard.GameClock, FormatClock(g.Get(groupClock), opts.Clock)),
		scoreboard.Set(scoreboard.Period, g.Get(groupPeriod)),
		scoreboard.Set(scoreboard.ShotClock, g.Get(groupShot)),
	}
}

// FormatClock renders the five clock characters MMSST. Input shorter than
// five characters is returned unchanged.
func FormatClock(digits string, format ClockFormat) string {
	r := []rune(digits)
	if len(r) < 5 || format == ClockRaw {
		return digits
	}
	mmss := string(r[0:2]) + ":" + string(r[2:4])
	if format == ClockMinutesSecondsTenths {
		return mmss + "." + string(r[4:5])
	}
	return mmss
}
