package room

import (
	"context"
	"testing"
	"time"

	"github.com/spectrumparty/backend/internal/game"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			// channel closed → no further snapshots possible
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
		// good: no snapshot
	}
}

func recvView(t *testing.T, ch <-chan View, within time.Duration) View {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(within):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

func phasePtr(p game.RoundPhase) *game.RoundPhase { return &p }
func strPtr(s string) *string                     { return &s }

func TestRoom_JoinDeliversCurrentSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, game.InitialState(), Options{Code: "AB12CD"})

	out := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}

	first := recvSnapshot(t, out, 100*time.Millisecond)
	if first.Version != 0 {
		t.Fatalf("after join: want version=0, got %d", first.Version)
	}
	if first.State.RoundPhase != game.PhaseSetupGame {
		t.Fatalf("after join: want setupGame, got %s", first.State.RoundPhase)
	}

	r.Inbox() <- Shutdown{}
}

func TestRoom_SetStateBroadcastsMergedSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initial := game.InitialState()
	initial.RoundPhase = game.PhaseGiveClue
	initial.GameType = game.TypeSolo
	r := NewRoom(ctx, initial, Options{Code: "AB12CD"})

	out := make(chan Snapshot, 4)
	r.Inbox() <- Join{ClientID: "c1", PlayerID: "p1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond) // join snapshot

	r.Inbox() <- SetState{PlayerID: "p1", Patch: game.Patch{Clue: strPtr("lukewarm")}}

	next := recvSnapshot(t, out, 100*time.Millisecond)
	if next.Version != 1 {
		t.Fatalf("after write: want version=1, got %d", next.Version)
	}
	if next.State.Clue != "lukewarm" {
		t.Fatalf("after write: clue %q", next.State.Clue)
	}
	if next.State.RoundPhase != game.PhaseGiveClue {
		t.Fatalf("unrelated field changed: %s", next.State.RoundPhase)
	}
}

func TestRoom_RejectsInvalidTransition(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initial := game.InitialState()
	initial.RoundPhase = game.PhaseMakeGuess
	initial.GameType = game.TypeSolo
	r := NewRoom(ctx, initial, Options{Code: "AB12CD"})

	out := make(chan Snapshot, 4)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	// No edge from makeGuess back to giveClue.
	r.Inbox() <- SetState{PlayerID: "p1", Patch: game.Patch{RoundPhase: phasePtr(game.PhaseGiveClue)}}
	recvNoSnapshot(t, out, 150*time.Millisecond)

	reply := make(chan View, 1)
	r.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)
	if view.Version != 0 {
		t.Fatalf("rejected patch bumped version to %d", view.Version)
	}
	if view.State.RoundPhase != game.PhaseMakeGuess {
		t.Fatalf("rejected patch changed phase to %s", view.State.RoundPhase)
	}
}

func TestRoom_DropSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initial := game.InitialState()
	initial.RoundPhase = game.PhaseGiveClue
	r := NewRoom(ctx, initial, Options{Code: "AB12CD"})

	// Buffer of one: the join snapshot fills it, the broadcast can't land.
	out := make(chan Snapshot, 1)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}

	r.Inbox() <- SetState{Patch: game.Patch{Clue: strPtr("x")}}

	reply := make(chan View, 1)
	r.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)
	if view.NumClients != 0 {
		t.Fatalf("expected slow client to be dropped; NumClients=%d", view.NumClients)
	}
}

func TestRoom_SweepRemovesStalePlayersAndClearsClueGiver(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initial := game.InitialState()
	initial.RoundPhase = game.PhaseGiveClue
	initial.GameType = game.TypeTeams
	initial.Players = map[string]game.Player{
		"p1": {Name: "Ada", Team: game.TeamLeft},
		"p2": {Name: "Ben", Team: game.TeamRight},
	}
	initial.ClueGiver = "p2"

	r := NewRoom(ctx, initial, Options{
		Code:            "AB12CD",
		PresenceTimeout: 50 * time.Millisecond,
		SweepInterval:   25 * time.Millisecond,
	})

	out := make(chan Snapshot, 8)
	r.Inbox() <- Join{ClientID: "c1", PlayerID: "p1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	// p2 registers once, then goes silent. p1 keeps heartbeating.
	r.Inbox() <- Heartbeat{PlayerID: "p2"}
	deadline := time.After(2 * time.Second)
	for {
		r.Inbox() <- Heartbeat{PlayerID: "p1"}
		select {
		case snap, ok := <-out:
			if !ok {
				t.Fatalf("outbox closed before sweep")
			}
			if _, there := snap.State.Players["p2"]; there {
				continue
			}
			if _, there := snap.State.Players["p1"]; !there {
				t.Fatalf("live player was swept: %+v", snap.State.Players)
			}
			if snap.State.ClueGiver != "" {
				t.Fatalf("dangling clueGiver not cleared: %q", snap.State.ClueGiver)
			}
			return
		case <-deadline:
			t.Fatalf("stale player was never removed")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRoom_LeaveClosesOutbox(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, game.InitialState(), Options{Code: "AB12CD"})

	out := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	r.Inbox() <- Leave{ClientID: "c1"}

	// A writer ranging over the outbox must unblock once the client
	// leaves, not wait for room shutdown.
	drained := make(chan struct{})
	go func() {
		for range out {
		}
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("outbox not closed after Leave")
	}

	reply := make(chan View, 1)
	r.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)
	if view.NumClients != 0 {
		t.Fatalf("expected no clients after Leave; NumClients=%d", view.NumClients)
	}
}

func TestRoom_ShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, game.InitialState(), Options{Code: "AB12CD"})

	out := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	r.Inbox() <- Shutdown{}

	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected closed outbox, got a snapshot")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("outbox not closed on shutdown")
	}
}
