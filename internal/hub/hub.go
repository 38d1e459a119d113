package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spectrumparty/backend/internal/game"
	"github.com/spectrumparty/backend/internal/room"
)

type HubMsg interface{ isHubMsg() }

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

// EnsureRoom returns the room for Code, creating it if needed. Creation
// consults the document store first so a room picks up where a previous
// process left it; absent that, the initial setup document is minted.
type EnsureRoom struct {
	Code  string
	Reply chan *room.Room
}

type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

func (GetRoom) isHubMsg()     {}
func (EnsureRoom) isHubMsg()  {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

// DocumentStore is the persistence surface rooms replicate through.
type DocumentStore interface {
	Load(ctx context.Context, code string) (game.GameState, bool, error)
	Save(ctx context.Context, code string, state game.GameState) error
}

type Opts struct {
	Logger          *zap.Logger
	Store           DocumentStore // nil runs memory-only
	PresenceTimeout time.Duration
	SweepInterval   time.Duration
}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	opts   Opts
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, opts Opts) *Hub {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		opts:   opts,
		log:    opts.Logger,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // May be nil

			case EnsureRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					msg.Reply <- rm
					break
				}
				rm := h.createRoom(msg.Code)
				h.rooms[msg.Code] = rm
				msg.Reply <- rm

			case RemoveRoom:
				delete(h.rooms, msg.Code)

			case ShutdownHub:
				for _, rm := range h.rooms {
					rm.Inbox() <- room.Shutdown{}
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}

func (h *Hub) createRoom(code string) *room.Room {
	initial := game.InitialState()
	if h.opts.Store != nil {
		ctx, cancel := context.WithTimeout(h.ctx, 5*time.Second)
		state, found, err := h.opts.Store.Load(ctx, code)
		cancel()
		switch {
		case err != nil:
			h.log.Error("load room document", zap.String("room", code), zap.Error(err))
		case found:
			initial = state
		}
	}

	var saver room.Saver
	if h.opts.Store != nil {
		saver = h.opts.Store
	}
	h.log.Info("room created", zap.String("room", code))
	return room.NewRoom(h.ctx, initial, room.Options{
		Code:            code,
		PresenceTimeout: h.opts.PresenceTimeout,
		SweepInterval:   h.opts.SweepInterval,
		Logger:          h.opts.Logger,
		Saver:           saver,
	})
}
