package game

// NewRound resets the play fields for the next round: fresh card and
// target, cleared clue/guess/counter-guess, clueGiver handed to the
// initiating player. Scores are deliberately untouched.
func NewRound(clueGiverID string) Patch {
	return Patch{
		RoundPhase:     ptr(PhaseGiveClue),
		ClueGiver:      ptr(clueGiverID),
		SpectrumCard:   ptr(RandomCard()),
		SpectrumTarget: ptr(RandomTarget()),
		Clue:           ptr(""),
		Guess:          ptr(0),
		CounterGuess:   ptr(Direction("")),
	}
}

// NewSoloGame starts a solo game from setup: zeroed scores plus the first
// round's fields.
func NewSoloGame(starterID string) Patch {
	p := NewRound(starterID)
	p.GameType = ptr(TypeSolo)
	p.LeftScore = ptr(0)
	p.RightScore = ptr(0)
	return p
}

// NewTeamGame starts a team game once every player has picked a side. The
// players map is carried through unchanged so team assignments survive the
// score reset.
func NewTeamGame(players map[string]Player, starterID string) Patch {
	p := NewRound(starterID)
	p.GameType = ptr(TypeTeams)
	p.Players = players
	p.LeftScore = ptr(0)
	p.RightScore = ptr(0)
	return p
}

// InitialState is the document published when a room is first created:
// setup phase, nobody joined, zero scores. A card and target are drawn up
// front so the first transition into giveClue always has one.
func InitialState() GameState {
	return GameState{
		RoundPhase:     PhaseSetupGame,
		GameType:       TypeSolo,
		Players:        map[string]Player{},
		SpectrumCard:   RandomCard(),
		SpectrumTarget: RandomTarget(),
	}
}
