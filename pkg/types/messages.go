package types

// Client -> Server
// setState:
//   patch: partial GameState, shallow-merged per top-level key
//   (players replaces the whole map; callers pre-merge nested edits)
//
// heartbeat: {} // presence refresh for the connecting player id

// Server -> Client
// stateSnapshot:
//   version: number
//   state:
//     roundPhase: "setupGame" | "pickTeams" | "giveClue" | "makeGuess" | "counterGuess" | "viewScore"
//     gameType:   "solo" | "teams"
//     players:    { [playerId]: { name, team: "unset"|"left"|"right" } }
//     clueGiver:  playerId
//     spectrumCard:   { left, right }
//     spectrumTarget: number // SpectrumMin..SpectrumMax
//     clue:  string
//     guess: number
//     counterGuess: "" | "left" | "right"
//     leftScore: number
//     rightScore: number
//
// error:
//   error: string
