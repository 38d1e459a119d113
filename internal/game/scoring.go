package game

// WinningScore is the score a team must reach to be declared the winner.
const WinningScore = 10

// CatchUpDeficit is the score deficit at which the trailing team is owed a
// bonus turn. Kept as a named constant; the rule fires at this deficit and
// beyond, never below it.
const CatchUpDeficit = 4

// Score returns the points for a guess against the hidden target. Tiers
// depend only on the absolute difference.
func Score(target, guess int) int {
	d := target - guess
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return 4
	case 1:
		return 3
	case 2:
		return 2
	default:
		return 0
	}
}

// ScoreRound resolves a team round once the counter-guess lands. The team
// of counterGuessingPlayer is the side that did not give the clue: it gets
// 1 point if its directional bet matches where the target actually sits
// relative to the guess. The clue-giving team banks Score(target, guess)
// unconditionally. The returned patch moves the round to viewScore.
func ScoreRound(s GameState, counterGuessingPlayer string, dir Direction) (Patch, error) {
	pl, ok := s.Players[counterGuessingPlayer]
	if !ok {
		return Patch{}, ErrUnknownPlayer
	}

	points := Score(s.SpectrumTarget, s.Guess)
	correct := (dir == DirectionLeft && s.SpectrumTarget < s.Guess) ||
		(dir == DirectionRight && s.SpectrumTarget > s.Guess)
	bonus := 0
	if correct {
		bonus = 1
	}

	patch := Patch{
		RoundPhase:   ptr(PhaseViewScore),
		CounterGuess: ptr(dir),
	}
	switch pl.Team {
	case TeamLeft:
		patch.LeftScore = ptr(s.LeftScore + bonus)
		patch.RightScore = ptr(s.RightScore + points)
	case TeamRight:
		patch.RightScore = ptr(s.RightScore + bonus)
		patch.LeftScore = ptr(s.LeftScore + points)
	default:
		return Patch{}, ErrNoTeam
	}
	return patch, nil
}

// Winner reports the winning team, if any. A team wins at WinningScore or
// above only while the other team is still below it: both sides at 10+ is
// deliberately not a win (see the scoreboard rules).
func Winner(left, right int) (Team, bool) {
	if left >= WinningScore && right < WinningScore {
		return TeamLeft, true
	}
	if right >= WinningScore && left < WinningScore {
		return TeamRight, true
	}
	return TeamUnset, false
}

// CatchUp reports the team owed a bonus turn, evaluated by the score view
// after a round. The flag is display-side only and never written back to
// the document.
func CatchUp(left, right int) (Team, bool) {
	if right-left >= CatchUpDeficit {
		return TeamLeft, true
	}
	if left-right >= CatchUpDeficit {
		return TeamRight, true
	}
	return TeamUnset, false
}
