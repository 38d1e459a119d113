package sync

import (
	"context"
	"errors"

	"github.com/spectrumparty/backend/internal/game"
	"github.com/spectrumparty/backend/internal/hub"
	"github.com/spectrumparty/backend/internal/room"
)

var ErrRoomUnavailable = errors.New("room unavailable")

// HubStore adapts an in-process hub to the Store interface, for embedded
// clients and tests. The wire transport offers the same operations over
// WebSocket.
type HubStore struct {
	Hub *hub.Hub
}

func (s *HubStore) room(ctx context.Context, roomID string, ensure bool) (*room.Room, error) {
	reply := make(chan *room.Room, 1)
	if ensure {
		s.Hub.Inbox() <- hub.EnsureRoom{Code: roomID, Reply: reply}
	} else {
		s.Hub.Inbox() <- hub.GetRoom{Code: roomID, Reply: reply}
	}
	select {
	case rm := <-reply:
		if rm == nil {
			return nil, ErrRoomUnavailable
		}
		return rm, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *HubStore) Subscribe(ctx context.Context, roomID, clientID string) (<-chan room.Snapshot, error) {
	rm, err := s.room(ctx, roomID, true)
	if err != nil {
		return nil, err
	}
	out := make(chan room.Snapshot, 16)
	rm.Inbox() <- room.Join{ClientID: clientID, Outbox: out}
	return out, nil
}

func (s *HubStore) Merge(ctx context.Context, roomID, playerID string, p game.Patch) error {
	rm, err := s.room(ctx, roomID, true)
	if err != nil {
		return err
	}
	rm.Inbox() <- room.SetState{PlayerID: playerID, Patch: p}
	return nil
}

func (s *HubStore) Unsubscribe(roomID, clientID string) {
	rm, err := s.room(context.Background(), roomID, false)
	if err != nil {
		return
	}
	rm.Inbox() <- room.Leave{ClientID: clientID}
}
