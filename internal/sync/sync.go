// Package sync holds the client side of the shared-state protocol: a
// Synchronizer keeps one room's document mirrored locally, applies its own
// writes optimistically, and treats every remote snapshot as authoritative
// on receipt.
package sync

import (
	"context"
	stdsync "sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spectrumparty/backend/internal/game"
	"github.com/spectrumparty/backend/internal/room"
)

// Store is the remote document store a Synchronizer replicates through:
// subscribe by room key (the first snapshot arrives immediately, the
// stream then follows every committed write), merge-write partial
// documents, unsubscribe on disposal.
type Store interface {
	Subscribe(ctx context.Context, roomID, clientID string) (<-chan room.Snapshot, error)
	Merge(ctx context.Context, roomID, playerID string, p game.Patch) error
	Unsubscribe(roomID, clientID string)
}

type Synchronizer struct {
	store    Store
	roomID   string
	playerID string
	clientID string
	log      *zap.Logger

	mu    stdsync.RWMutex
	state game.GameState

	updates chan game.GameState
	ctx     context.Context
	cancel  context.CancelFunc
}

// New subscribes to roomID and starts mirroring it. The returned
// Synchronizer already holds the store's current document.
func New(parent context.Context, store Store, roomID, playerID string, log *zap.Logger) (*Synchronizer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)

	s := &Synchronizer{
		store:    store,
		roomID:   roomID,
		playerID: playerID,
		clientID: uuid.NewString(),
		log:      log.With(zap.String("room", roomID)),
		updates:  make(chan game.GameState, 16),
		ctx:      ctx,
		cancel:   cancel,
	}

	snaps, err := store.Subscribe(ctx, roomID, s.clientID)
	if err != nil {
		cancel()
		return nil, err
	}

	// The store delivers the current document as the first snapshot, so
	// the mirror is populated before New returns.
	select {
	case first, ok := <-snaps:
		if ok {
			s.state = first.State
		}
	case <-ctx.Done():
		cancel()
		return nil, ctx.Err()
	}

	go s.run(snaps)
	return s, nil
}

func (s *Synchronizer) run(snaps <-chan room.Snapshot) {
	defer close(s.updates)
	for {
		select {
		case <-s.ctx.Done():
			return
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			s.mu.Lock()
			s.state = snap.State
			s.mu.Unlock()
			select {
			case s.updates <- snap.State:
			default:
				// Consumer is behind; it will catch up on the next one.
			}
		}
	}
}

// State returns the current mirror.
func (s *Synchronizer) State() game.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Updates streams the mirror after each remote snapshot lands. The channel
// closes when the subscription ends.
func (s *Synchronizer) Updates() <-chan game.GameState { return s.updates }

// SetGameState merges p into the local mirror immediately, then publishes
// it to the store in the background. The network write is fire-and-forget:
// failures are logged, never returned. Patches that the transition graph
// forbids are rejected up front so an invalid document is not constructible
// from this client.
func (s *Synchronizer) SetGameState(p game.Patch) error {
	s.mu.Lock()
	if err := game.Validate(s.state, p); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = game.Merge(s.state, p)
	s.mu.Unlock()

	go func() {
		if err := s.store.Merge(s.ctx, s.roomID, s.playerID, p); err != nil {
			s.log.Warn("publish patch", zap.Error(err))
		}
	}()
	return nil
}

// Close tears the subscription down. In-flight writes are left to finish
// on their own.
func (s *Synchronizer) Close() {
	s.store.Unsubscribe(s.roomID, s.clientID)
	s.cancel()
}
