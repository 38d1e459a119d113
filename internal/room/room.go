package room

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spectrumparty/backend/internal/game"
)

type Msg interface{ isRoomMsg() }

// Join registers a subscriber. The room replies by pushing the current
// snapshot onto Outbox immediately, then every applied write after that.
// PlayerID may be empty for spectators; when set it seeds presence.
type Join struct {
	ClientID string
	PlayerID string
	Outbox   chan Snapshot
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

// SetState is a merge-write of a partial document. The room validates the
// patch against the transition graph and drops it on failure; there is no
// reply channel because writes are fire-and-forget by contract.
type SetState struct {
	PlayerID string
	Patch    game.Patch
}

func (SetState) isRoomMsg() {}

// Heartbeat refreshes a player's liveness without touching the document.
type Heartbeat struct{ PlayerID string }

func (Heartbeat) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type Snapshot struct {
	Version int
	State   game.GameState
}

type View struct {
	Version    int
	NumClients int
	State      game.GameState
}

// Saver persists an applied document snapshot. Implementations are called
// from a goroutine; failures are logged, never surfaced to writers.
type Saver interface {
	Save(ctx context.Context, code string, state game.GameState) error
}

type Options struct {
	Code            string
	PresenceTimeout time.Duration
	SweepInterval   time.Duration
	Logger          *zap.Logger
	Saver           Saver
}

const (
	defaultPresenceTimeout = 2 * time.Minute
	defaultSweepInterval   = 15 * time.Second
)

// Room hosts one replicated GameState document. All access goes through
// the inbox; the loop goroutine owns every field below.
type Room struct {
	inbox    chan Msg
	state    game.GameState
	version  int
	clients  map[string]chan Snapshot
	lastSeen map[string]time.Time
	opts     Options
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewRoom(parent context.Context, initial game.GameState, opts Options) *Room {
	if opts.PresenceTimeout <= 0 {
		opts.PresenceTimeout = defaultPresenceTimeout
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		inbox:    make(chan Msg, 64),
		state:    initial,
		version:  0,
		clients:  make(map[string]chan Snapshot),
		lastSeen: make(map[string]time.Time),
		opts:     opts,
		log:      opts.Logger.With(zap.String("room", opts.Code)),
		ctx:      ctx,
		cancel:   cancel,
	}

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	ticker := time.NewTicker(r.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case <-ticker.C:
			r.sweepStale()

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.clients[msg.ClientID] = msg.Outbox
				if msg.PlayerID != "" {
					r.lastSeen[msg.PlayerID] = time.Now()
				}
				msg.Outbox <- Snapshot{Version: r.version, State: r.state}

			case Leave:
				if ch, ok := r.clients[msg.ClientID]; ok {
					close(ch)
					delete(r.clients, msg.ClientID)
				}

			case SetState:
				if err := game.Validate(r.state, msg.Patch); err != nil {
					r.log.Warn("rejected patch",
						zap.String("player", msg.PlayerID),
						zap.Error(err))
					break
				}
				r.apply(msg.Patch)
				if msg.PlayerID != "" {
					r.lastSeen[msg.PlayerID] = time.Now()
				}

			case Heartbeat:
				if msg.PlayerID != "" {
					r.lastSeen[msg.PlayerID] = time.Now()
				}

			case GetState:
				msg.Reply <- View{
					Version:    r.version,
					NumClients: len(r.clients),
					State:      r.state,
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) apply(p game.Patch) {
	r.state = game.Merge(r.state, p)
	r.version++
	r.persist()
	r.broadcast(Snapshot{Version: r.version, State: r.state})
}

// sweepStale drops players whose liveness signal lapsed, by emitting the
// same players patch a client removal would. A removal that orphans the
// clue giver also clears clueGiver, so consumers never chase a dangling
// id.
func (r *Room) sweepStale() {
	cutoff := time.Now().Add(-r.opts.PresenceTimeout)
	var stale []string
	for id, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return
	}

	players := make(map[string]game.Player, len(r.state.Players))
	for id, pl := range r.state.Players {
		players[id] = pl
	}
	removed := false
	patch := game.Patch{}
	for _, id := range stale {
		delete(r.lastSeen, id)
		if _, ok := players[id]; !ok {
			continue
		}
		delete(players, id)
		removed = true
		if r.state.ClueGiver == id {
			empty := ""
			patch.ClueGiver = &empty
		}
	}
	if !removed {
		return
	}
	patch.Players = players
	r.log.Info("removed stale players", zap.Strings("players", stale))
	r.apply(patch)
}

func (r *Room) persist() {
	if r.opts.Saver == nil {
		return
	}
	state := r.state
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.opts.Saver.Save(ctx, r.opts.Code, state); err != nil {
			r.log.Error("persist failed", zap.Error(err))
		}
	}()
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}

func (r *Room) broadcast(snap Snapshot) {
	for id, ch := range r.clients {
		select {
		case ch <- snap:
			// ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(r.clients, id)
		}
	}
}
