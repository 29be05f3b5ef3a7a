package room

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/DoyleJ11/heartz-client/internal/engine"
	"github.com/DoyleJ11/heartz-client/internal/protocol"
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

var ErrStopped = errors.New("room stopped")

type Msg interface{ isRoomMsg() }

// Opened is posted by the connection once the socket is up.
type Opened struct{}

func (Opened) isRoomMsg() {}

// Inbound carries one decoded server event, or the decode error.
type Inbound struct {
	Event protocol.Event
	Err   error
}

func (Inbound) isRoomMsg() {}

// Closed ends the room. Err is nil for a clean close.
type Closed struct{ Err error }

func (Closed) isRoomMsg() {}

type ToggleCard struct {
	Position int
	Reply    chan error
}

func (ToggleCard) isRoomMsg() {}

type Submit struct {
	Reply chan error
}

func (Submit) isRoomMsg() {}

type JoinSeat struct {
	Bot   bool
	Reply chan error
}

func (JoinSeat) isRoomMsg() {}

type GetView struct {
	Reply chan View
}

func (GetView) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

// View is a read-only copy of the room for pull-style consumers.
type View struct {
	Mode          engine.Mode                 `json:"mode"`
	Progress      types.Progress              `json:"progress"`
	Self          types.PlayerID              `json:"self"`
	Seats         [seating.Slots]seating.Seat `json:"seats"`
	CurrentPlayer types.PlayerID              `json:"current_player"`
	CurrentSeat   int                         `json:"current_seat"`
	Lobby         Lobby                       `json:"lobby"`
	Hand          []types.Card                `json:"hand"`
	Selected      []int                       `json:"selected"`
	SubmitEnabled bool                        `json:"submit_enabled"`
	Stack         types.Stack                 `json:"stack"`
	Scores        [seating.Slots]SeatScore    `json:"scores"`
	ResyncPending bool                        `json:"resync_pending"`
}

// Room owns the engine state for one connection. Everything that touches the
// state goes through the inbox, so events are applied and rendered strictly
// one at a time.
type Room struct {
	inbox  chan Msg
	state  engine.State
	render Renderer
	conn   Sender
	log    *zap.Logger

	// resyncPending is set while a getCurrentState is unanswered, so a burst
	// of faults asks for one snapshot only.
	resyncPending bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func NewRoom(parent context.Context, self types.PlayerID, render Renderer, conn Sender, log *zap.Logger) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		inbox:  make(chan Msg, 64),
		state:  engine.NewState(self),
		render: render,
		conn:   conn,
		log:    log.With(zap.String("player_id", string(self))),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go r.loop()
	return r
}

func (r *Room) loop() {
	defer close(r.done)
	for {
		select {
		case <-r.ctx.Done():
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Opened:
				effects, next := engine.Open(r.state)
				r.state = next
				r.resyncPending = false
				r.log.Info("room opened")
				_ = r.execute(effects, true)

			case Inbound:
				if msg.Err != nil {
					r.fault(fmt.Errorf("%w: %w", engine.ErrProtocolViolation, msg.Err), true)
					break
				}
				r.apply(msg.Event)

			case ToggleCard:
				effects, next, err := engine.Toggle(r.state, msg.Position)
				if err == nil {
					r.state = next
					err = r.execute(effects, true)
				}
				msg.Reply <- err

			case Submit:
				effects, next, err := engine.Submit(r.state)
				if err == nil {
					r.state = next
					err = r.execute(effects, true)
				}
				msg.Reply <- err

			case JoinSeat:
				join := engine.Join
				if msg.Bot {
					join = engine.JoinBot
				}
				effects, err := join(r.state)
				if err == nil {
					err = r.execute(effects, true)
				}
				msg.Reply <- err

			case GetView:
				msg.Reply <- r.view()

			case Closed:
				if msg.Err != nil {
					r.log.Warn("connection closed", zap.Error(msg.Err))
					r.render.Fault(msg.Err)
				} else {
					r.log.Info("connection closed")
				}
				r.err = msg.Err
				r.cancel()
				return

			case Shutdown:
				r.cancel()
				return
			}
		}
	}
}

// apply folds one server event in. Faults raised by a snapshot never trigger
// another resync; the snapshot is the repair.
func (r *Room) apply(ev protocol.Event) {
	_, snapshot := ev.(protocol.State)
	if snapshot {
		r.resyncPending = false
	}

	effects, next, err := engine.Apply(r.state, ev)
	if err != nil {
		r.fault(fmt.Errorf("%s: %w", protocol.Name(ev), err), !snapshot)
		return
	}
	r.state = next
	r.log.Debug("event applied", zap.String("event", protocol.Name(ev)), zap.String("mode", string(next.Mode)))
	_ = r.execute(effects, !snapshot)
}

// execute renders the effects, then sends their commands in order. It
// returns the send failures; render failures are handled as faults.
func (r *Room) execute(effects []engine.Effect, resync bool) error {
	for _, eff := range effects {
		if eff.Type == engine.EffFault {
			r.log.Warn("server fault", zap.Error(eff.Err), zap.String("mode", string(r.state.Mode)))
		}
	}
	for _, err := range multierr.Errors(project(r.render, r.state, effects)) {
		r.fault(err, resync)
	}

	var errs error
	for _, cmd := range engine.Commands(effects) {
		errs = multierr.Append(errs, r.send(cmd))
	}
	return errs
}

func (r *Room) fault(err error, resync bool) {
	r.log.Warn("room fault", zap.Error(err), zap.String("mode", string(r.state.Mode)))
	r.render.Fault(err)
	if resync && !r.resyncPending {
		_ = r.send(protocol.GetCurrentState{})
	}
}

func (r *Room) send(cmd protocol.Command) error {
	name := protocol.CommandName(cmd)
	if err := r.conn.Send(r.ctx, cmd); err != nil {
		r.log.Warn("send failed", zap.String("command", name), zap.Error(err))
		return fmt.Errorf("send %s: %w", name, err)
	}
	if _, ok := cmd.(protocol.GetCurrentState); ok {
		r.resyncPending = true
	}
	r.log.Debug("sent", zap.String("command", name))
	return nil
}

func (r *Room) view() View {
	s := r.state
	scores, _ := seatScores(s)
	return View{
		Mode:          s.Mode,
		Progress:      s.Progress,
		Self:          s.Self,
		Seats:         s.Seats,
		CurrentPlayer: s.CurrentPlayer,
		CurrentSeat:   s.CurrentSeat,
		Lobby:         lobbyOf(s),
		Hand:          slices.Clone(s.Hand),
		Selected:      s.Selection.Positions(),
		SubmitEnabled: s.SubmitEnabled(),
		Stack:         s.Stack,
		Scores:        scores,
		ResyncPending: r.resyncPending,
	}
}

// Expose the inbox so the connection can post events.
func (r *Room) Inbox() chan<- Msg { return r.inbox }

// Done is closed once the loop has exited.
func (r *Room) Done() <-chan struct{} { return r.done }

// Err is the connection error that closed the room. Only valid after Done.
func (r *Room) Err() error {
	<-r.done
	return r.err
}

// Post hands m to the loop without waiting for it to be handled.
func (r *Room) Post(ctx context.Context, m Msg) error {
	select {
	case r.inbox <- m:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Room) Toggle(ctx context.Context, position int) error {
	reply := make(chan error, 1)
	return flatten(ask(ctx, r, ToggleCard{Position: position, Reply: reply}, reply))
}

func (r *Room) Submit(ctx context.Context) error {
	reply := make(chan error, 1)
	return flatten(ask(ctx, r, Submit{Reply: reply}, reply))
}

func (r *Room) Join(ctx context.Context) error {
	reply := make(chan error, 1)
	return flatten(ask(ctx, r, JoinSeat{Reply: reply}, reply))
}

func (r *Room) JoinBot(ctx context.Context) error {
	reply := make(chan error, 1)
	return flatten(ask(ctx, r, JoinSeat{Bot: true, Reply: reply}, reply))
}

func (r *Room) View(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	return ask(ctx, r, GetView{Reply: reply}, reply)
}

func ask[T any](ctx context.Context, r *Room, m Msg, reply chan T) (T, error) {
	var zero T
	if err := r.Post(ctx, m); err != nil {
		return zero, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-r.done:
		select {
		case v := <-reply:
			return v, nil
		default:
			return zero, ErrStopped
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func flatten(result, err error) error {
	if err != nil {
		return err
	}
	return result
}
