package types

import "github.com/spectrumparty/backend/internal/game"

type ClientMessage struct {
	Type  string      `json:"type"` // "setState" | "heartbeat"
	Patch *game.Patch `json:"patch,omitempty"`
}

type ServerMessage struct {
	Type    string          `json:"type"` // "stateSnapshot" | "error"
	Version int             `json:"version,omitempty"`
	State   *game.GameState `json:"state,omitempty"`
	Error   string          `json:"error,omitempty"`
}
