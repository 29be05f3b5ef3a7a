package room

import (
	"context"

	"github.com/DoyleJ11/heartz-client/internal/engine"
	"github.com/DoyleJ11/heartz-client/internal/protocol"
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

// Renderer receives the room projection. Calls are made from the room loop,
// one event at a time; implementations must not call back into the room.
type Renderer interface {
	Banner(mode engine.Mode, progress types.Progress)
	Lobby(Lobby)
	Seats(seats [seating.Slots]seating.Seat)
	// Highlight moves the current player marker. Either slot may be
	// seating.NoSlot.
	Highlight(previous, current int)
	Hand(cards []types.Card, selected []int, submitEnabled bool)
	Stack(types.Stack)
	Scores([seating.Slots]SeatScore)
	Fault(error)
}

// Sender is the outbound half of the connection. Sends are fire-and-forget.
type Sender interface {
	Send(ctx context.Context, cmd protocol.Command) error
}

// Lobby is the join screen. Open is false outside WAITING_FOR_PLAYERS.
type Lobby struct {
	Open      bool `json:"open"`
	CanJoin   bool `json:"can_join"`
	CanAddBot bool `json:"can_add_bot"`
}

// SeatScore is the score line shown next to a display slot.
type SeatScore struct {
	PlayerID types.PlayerID `json:"player_id"`
	Hand     int            `json:"hand"`
	Total    int            `json:"total"`
}

// Tee fans every render call out to each renderer in order.
func Tee(rs ...Renderer) Renderer { return tee(rs) }

type tee []Renderer

func (t tee) Banner(m engine.Mode, p types.Progress) {
	for _, r := range t {
		r.Banner(m, p)
	}
}

func (t tee) Lobby(l Lobby) {
	for _, r := range t {
		r.Lobby(l)
	}
}

func (t tee) Seats(s [seating.Slots]seating.Seat) {
	for _, r := range t {
		r.Seats(s)
	}
}

func (t tee) Highlight(previous, current int) {
	for _, r := range t {
		r.Highlight(previous, current)
	}
}

func (t tee) Hand(cards []types.Card, selected []int, submitEnabled bool) {
	for _, r := range t {
		r.Hand(cards, selected, submitEnabled)
	}
}

func (t tee) Stack(s types.Stack) {
	for _, r := range t {
		r.Stack(s)
	}
}

func (t tee) Scores(s [seating.Slots]SeatScore) {
	for _, r := range t {
		r.Scores(s)
	}
}

func (t tee) Fault(err error) {
	for _, r := range t {
		r.Fault(err)
	}
}
