package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Score is a side's score: either a number ("3", "21.5") or free text ("6-4 7-5", "KO").
type Score struct {
	Value   string
	Numeric bool
}

func NumericScore(v float64) Score {
	return Score{Value: strconv.FormatFloat(v, 'f', -1, 64), Numeric: true}
}

func TextScore(s string) Score {
	return Score{Value: s}
}

func (s Score) MarshalJSON() ([]byte, error) {
	if s.Numeric {
		return []byte(s.Value), nil
	}
	return json.Marshal(s.Value)
}

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("score: empty value")
	}
	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = TextScore(text)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("score must be a number or a string: %w", err)
	}
	*s = Score{Value: n.String(), Numeric: true}
	return nil
}

type BasketballScore struct {
	Quarters    []int `json:"quarters"`
	TotalPoints int   `json:"total_points"`
	Fouls       int   `json:"fouls"`
	Timeouts    int   `json:"timeouts"`
}

type AmericanFootballScore struct {
	Touchdowns  int `json:"touchdowns"`
	FieldGoals  int `json:"field_goals"`
	Safeties    int `json:"safeties"`
	TotalPoints int `json:"total_points"`
	Yards       int `json:"yards"`
}

type FootballScore struct {
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
	Possession  int `json:"possession"`
}

type TennisScore struct {
	Sets       []string `json:"sets"`
	Games      []int    `json:"games"`
	CurrentSet *string  `json:"current_set,omitempty"`
}

type VolleyballScore struct {
	Sets      []int `json:"sets"`
	TotalSets int   `json:"total_sets"`
	Points    int   `json:"points"`
}

type CricketScore struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Overs   int `json:"overs"`
	Balls   int `json:"balls"`
	Extras  int `json:"extras"`
}

type BoxingResult string

const (
	BoxingKO       BoxingResult = "KO"
	BoxingTKO      BoxingResult = "TKO"
	BoxingDecision BoxingResult = "Decision"
	BoxingDraw     BoxingResult = "Draw"
)

type BoxingScore struct {
	Rounds      []int         `json:"rounds"`
	Knockdowns  int           `json:"knockdowns"`
	TotalPoints int           `json:"total_points"`
	Result      *BoxingResult `json:"result,omitempty"`
}

type SwimmingScore struct {
	Time    string `json:"time"`
	Strokes int    `json:"strokes"`
	Lane    int    `json:"lane"`
}

type GolfScore struct {
	Holes        []int `json:"holes"`
	TotalStrokes int   `json:"total_strokes"`
	Par          int   `json:"par"`
	Handicap     *int  `json:"handicap,omitempty"`
}

// DecodeDetailedScore parses DetailedScore into the payload type of the match's sport.
// It returns nil, nil when the match carries no detailed score.
func (m *Match) DecodeDetailedScore() (any, error) {
	if len(m.DetailedScore) == 0 || string(m.DetailedScore) == "null" {
		return nil, nil
	}
	var dst any
	switch m.Sport {
	case SportBasketball:
		dst = &BasketballScore{}
	case SportAmericanFootball:
		dst = &AmericanFootballScore{}
	case SportFootball:
		dst = &FootballScore{}
	case SportTennis:
		dst = &TennisScore{}
	case SportVolleyball:
		dst = &VolleyballScore{}
	case SportCricket:
		dst = &CricketScore{}
	case SportBoxing:
		dst = &BoxingScore{}
	case SportSwimming:
		dst = &SwimmingScore{}
	case SportGolf:
		dst = &GolfScore{}
	default:
		return nil, fmt.Errorf("no detailed score layout for sport %q", m.Sport)
	}
	if err := json.Unmarshal(m.DetailedScore, dst); err != nil {
		return nil, fmt.Errorf("decode %s score: %w", m.Sport, err)
	}
	return dst, nil
}
