package game

import "errors"

var ErrInvalidTransition = errors.New("invalid phase transition")
var ErrOutOfRange = errors.New("value outside spectrum range")
var ErrInvalidValue = errors.New("invalid field value")
var ErrUnknownPlayer = errors.New("unknown player")
var ErrNoTeam = errors.New("player has not picked a team")
var ErrTeamsUnset = errors.New("every player must pick a team first")

// Spectrum positions are integers in [SpectrumMin, SpectrumMax].
const (
	SpectrumMin = 0
	SpectrumMax = 20
)

type RoundPhase string

const (
	PhaseSetupGame    RoundPhase = "setupGame"
	PhasePickTeams    RoundPhase = "pickTeams"
	PhaseGiveClue     RoundPhase = "giveClue"
	PhaseMakeGuess    RoundPhase = "makeGuess"
	PhaseCounterGuess RoundPhase = "counterGuess"
	PhaseViewScore    RoundPhase = "viewScore"
)

type GameType string

const (
	TypeSolo  GameType = "solo"
	TypeTeams GameType = "teams"
)

type Team string

const (
	TeamUnset Team = "unset"
	TeamLeft  Team = "left"
	TeamRight Team = "right"
)

// Direction is a counter-guess bet: where the hidden target lies relative
// to the submitted guess. Empty means no counter-guess yet.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

type Player struct {
	Name string `json:"name"`
	Team Team   `json:"team"`
}

// Card is a spectrum card: the two labeled poles of the scale.
type Card struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// GameState is the replicated document for one room. Every connected
// client holds a mirror of it and mutates it through Patch merges; no
// field is owned by the server beyond what Validate rejects.
type GameState struct {
	RoundPhase     RoundPhase        `json:"roundPhase"`
	GameType       GameType          `json:"gameType"`
	Players        map[string]Player `json:"players"`
	ClueGiver      string            `json:"clueGiver"`
	SpectrumCard   Card              `json:"spectrumCard"`
	SpectrumTarget int               `json:"spectrumTarget"`
	Clue           string            `json:"clue"`
	Guess          int               `json:"guess"`
	CounterGuess   Direction         `json:"counterGuess"`
	LeftScore      int               `json:"leftScore"`
	RightScore     int               `json:"rightScore"`
}

// Patch is a structurally partial GameState. A nil field is absent; a set
// field fully replaces the stored value on merge. Players replaces the
// whole map, so nested changes (join, team switch, removal) must be
// pre-merged by the caller.
type Patch struct {
	RoundPhase     *RoundPhase       `json:"roundPhase,omitempty"`
	GameType       *GameType         `json:"gameType,omitempty"`
	Players        map[string]Player `json:"players"`
	ClueGiver      *string           `json:"clueGiver,omitempty"`
	SpectrumCard   *Card             `json:"spectrumCard,omitempty"`
	SpectrumTarget *int              `json:"spectrumTarget,omitempty"`
	Clue           *string           `json:"clue,omitempty"`
	Guess          *int              `json:"guess,omitempty"`
	CounterGuess   *Direction        `json:"counterGuess,omitempty"`
	LeftScore      *int              `json:"leftScore,omitempty"`
	RightScore     *int              `json:"rightScore,omitempty"`
}

// Merge applies p to s, shallow and last-write-wins per top-level field.
func Merge(s GameState, p Patch) GameState {
	if p.RoundPhase != nil {
		s.RoundPhase = *p.RoundPhase
	}
	if p.GameType != nil {
		s.GameType = *p.GameType
	}
	if p.Players != nil {
		s.Players = p.Players
	}
	if p.ClueGiver != nil {
		s.ClueGiver = *p.ClueGiver
	}
	if p.SpectrumCard != nil {
		s.SpectrumCard = *p.SpectrumCard
	}
	if p.SpectrumTarget != nil {
		s.SpectrumTarget = *p.SpectrumTarget
	}
	if p.Clue != nil {
		s.Clue = *p.Clue
	}
	if p.Guess != nil {
		s.Guess = *p.Guess
	}
	if p.CounterGuess != nil {
		s.CounterGuess = *p.CounterGuess
	}
	if p.LeftScore != nil {
		s.LeftScore = *p.LeftScore
	}
	if p.RightScore != nil {
		s.RightScore = *p.RightScore
	}
	return s
}

func ptr[T any](v T) *T { return &v }
