package game

import (
	"fmt"
	"slices"
)

// The legal phase graph. There is no terminal phase: viewScore loops back
// into giveClue for the next round. Which of a phase's successors is legal
// for a given write can additionally depend on the game type, checked in
// Validate.
var nextPhases = map[RoundPhase][]RoundPhase{
	PhaseSetupGame:    {PhaseGiveClue, PhasePickTeams},
	PhasePickTeams:    {PhaseGiveClue},
	PhaseGiveClue:     {PhaseMakeGuess},
	PhaseMakeGuess:    {PhaseCounterGuess, PhaseViewScore},
	PhaseCounterGuess: {PhaseViewScore},
	PhaseViewScore:    {PhaseGiveClue},
}

// ValidTransition reports whether from -> to appears in the phase graph.
// Staying in the same phase is always allowed.
func ValidTransition(from, to RoundPhase) bool {
	if from == to {
		return true
	}
	return slices.Contains(nextPhases[from], to)
}

func knownPhase(p RoundPhase) bool {
	_, ok := nextPhases[p]
	return ok
}

// Validate checks a patch against the current document before it is
// merged: enum values must be known, spectrum positions in range, and any
// phase change must follow the transition graph for the (post-merge) game
// type. A patch that fails Validate must never reach the stored document.
func Validate(cur GameState, p Patch) error {
	if p.RoundPhase != nil && !knownPhase(*p.RoundPhase) {
		return fmt.Errorf("%w: roundPhase %q", ErrInvalidValue, *p.RoundPhase)
	}
	if p.GameType != nil && *p.GameType != TypeSolo && *p.GameType != TypeTeams {
		return fmt.Errorf("%w: gameType %q", ErrInvalidValue, *p.GameType)
	}
	if p.CounterGuess != nil {
		switch *p.CounterGuess {
		case "", DirectionLeft, DirectionRight:
		default:
			return fmt.Errorf("%w: counterGuess %q", ErrInvalidValue, *p.CounterGuess)
		}
	}
	for id, pl := range p.Players {
		switch pl.Team {
		case TeamUnset, TeamLeft, TeamRight:
		default:
			return fmt.Errorf("%w: team %q for player %s", ErrInvalidValue, pl.Team, id)
		}
	}
	if p.SpectrumTarget != nil && (*p.SpectrumTarget < SpectrumMin || *p.SpectrumTarget > SpectrumMax) {
		return fmt.Errorf("%w: spectrumTarget %d", ErrOutOfRange, *p.SpectrumTarget)
	}
	if p.Guess != nil && (*p.Guess < SpectrumMin || *p.Guess > SpectrumMax) {
		return fmt.Errorf("%w: guess %d", ErrOutOfRange, *p.Guess)
	}

	if p.RoundPhase == nil || *p.RoundPhase == cur.RoundPhase {
		return nil
	}
	from, to := cur.RoundPhase, *p.RoundPhase
	if !ValidTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	// Game-type guards on the ambiguous edges. The patch may carry the
	// game type along with the phase (starting a game does), so the
	// post-merge value decides.
	gt := cur.GameType
	if p.GameType != nil {
		gt = *p.GameType
	}
	switch {
	case from == PhaseSetupGame && to == PhaseGiveClue && gt != TypeSolo:
		return fmt.Errorf("%w: %s -> %s requires a solo game", ErrInvalidTransition, from, to)
	case from == PhaseSetupGame && to == PhasePickTeams && gt != TypeTeams:
		return fmt.Errorf("%w: %s -> %s requires a team game", ErrInvalidTransition, from, to)
	case from == PhaseMakeGuess && to == PhaseViewScore && gt != TypeSolo:
		return fmt.Errorf("%w: %s -> %s requires a solo game", ErrInvalidTransition, from, to)
	case from == PhaseMakeGuess && to == PhaseCounterGuess && gt != TypeTeams:
		return fmt.Errorf("%w: %s -> %s requires a team game", ErrInvalidTransition, from, to)
	}

	if from == PhasePickTeams && to == PhaseGiveClue {
		players := cur.Players
		if p.Players != nil {
			players = p.Players
		}
		for _, pl := range players {
			if pl.Team == TeamUnset {
				return ErrTeamsUnset
			}
		}
	}
	return nil
}
