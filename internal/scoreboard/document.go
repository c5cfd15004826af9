package scoreboard

import (
	"bytes"
	"encoding/json"
)

// DocumentType is the "type" member of every published document.
const DocumentType = "ocr"

// Values is the wire shape of the state. Member order is part of the
// contract: consumers compare documents textually.
type Values struct {
	GameClock      string `json:"GameClock"`
	Period         string `json:"Period"`
	ShotClock      string `json:"ShotClock"`
	ScoreAway      string `json:"ScoreAway"`
	ScoreHome      string `json:"ScoreHome"`
	FoulsAway      string `json:"FoulsAway"`
	FoulsHome      string `json:"FoulsHome"`
	TimeoutsAway   string `json:"TimeoutsAway"`
	TimeoutsHome   string `json:"TimeoutsHome"`
	Downs          string `json:"Downs"`
	Yards          string `json:"Yards"`
	LOS            string `json:"LOS"`
	Possession     string `json:"Possession"`
	PossessionAway string `json:"PossessionAway"`
	PossessionHome string `json:"PossessionHome"`
}

// aliasedValues additionally carries Quarter and PlayClock in the order
// older consumers were built against.
type aliasedValues struct {
	GameClock      string `json:"GameClock"`
	Period         string `json:"Period"`
	Quarter        string `json:"Quarter"`
	ShotClock      string `json:"ShotClock"`
	PlayClock      string `json:"PlayClock"`
	ScoreAway      string `json:"ScoreAway"`
	ScoreHome      string `json:"ScoreHome"`
	FoulsAway      string `json:"FoulsAway"`
	FoulsHome      string `json:"FoulsHome"`
	TimeoutsAway   string `json:"TimeoutsAway"`
	TimeoutsHome   string `json:"TimeoutsHome"`
	Downs          string `json:"Downs"`
	Yards          string `json:"Yards"`
	LOS            string `json:"LOS"`
	Possession     string `json:"Possession"`
	PossessionAway string `json:"PossessionAway"`
	PossessionHome string `json:"PossessionHome"`
}

type envelope struct {
	Type   string `json:"type"`
	Values any    `json:"values"`
}

// DocumentOptions controls the document shape.
type DocumentOptions struct {
	LegacyAliases bool
}

// Document renders v as a single newline-terminated JSON object.
func (v Values) Document(opts DocumentOptions) ([]byte, error) {
	var values any = v
	if opts.LegacyAliases {
		values = aliasedValues{
			GameClock:      v.GameClock,
			Period:         v.Period,
			Quarter:        v.Period,
			ShotClock:      v.ShotClock,
			PlayClock:      v.ShotClock,
			ScoreAway:      v.ScoreAway,
			ScoreHome:      v.ScoreHome,
			FoulsAway:      v.FoulsAway,
			FoulsHome:      v.FoulsHome,
			TimeoutsAway:   v.TimeoutsAway,
			TimeoutsHome:   v.TimeoutsHome,
			Downs:          v.Downs,
			Yards:          v.Yards,
			LOS:            v.LOS,
			Possession:     v.Possession,
			PossessionAway: v.PossessionAway,
			PossessionHome: v.PossessionHome,
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(envelope{Type: DocumentType, Values: values}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Document renders the current state.
func (s *State) Document(opts DocumentOptions) ([]byte, error) {
	return s.Snapshot().Document(opts)
}
