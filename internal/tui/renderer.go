package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DoyleJ11/heartz-client/internal/engine"
	"github.com/DoyleJ11/heartz-client/internal/room"
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

// Program is the part of *tea.Program the renderer needs.
type Program interface {
	Send(msg tea.Msg)
}

type bannerMsg struct {
	mode     engine.Mode
	progress types.Progress
}

type lobbyMsg room.Lobby

type seatsMsg [seating.Slots]seating.Seat

type highlightMsg struct{ previous, current int }

type handMsg struct {
	cards         []types.Card
	selected      []int
	submitEnabled bool
}

type stackMsg types.Stack

type scoresMsg [seating.Slots]room.SeatScore

type faultMsg struct{ err error }

// ClosedMsg tells the model the room is gone.
type ClosedMsg struct{ Err error }

// Renderer turns room render calls into program messages. Send blocks until
// the program takes the message, so the model sees calls in room order.
type Renderer struct {
	p Program
}

func NewRenderer(p Program) *Renderer { return &Renderer{p: p} }

func (r *Renderer) Banner(mode engine.Mode, progress types.Progress) {
	r.p.Send(bannerMsg{mode: mode, progress: progress})
}

func (r *Renderer) Lobby(l room.Lobby) { r.p.Send(lobbyMsg(l)) }

func (r *Renderer) Seats(s [seating.Slots]seating.Seat) { r.p.Send(seatsMsg(s)) }

func (r *Renderer) Highlight(previous, current int) {
	r.p.Send(highlightMsg{previous: previous, current: current})
}

func (r *Renderer) Hand(cards []types.Card, selected []int, submitEnabled bool) {
	r.p.Send(handMsg{cards: cards, selected: selected, submitEnabled: submitEnabled})
}

func (r *Renderer) Stack(s types.Stack) { r.p.Send(stackMsg(s)) }

func (r *Renderer) Scores(s [seating.Slots]room.SeatScore) { r.p.Send(scoresMsg(s)) }

func (r *Renderer) Fault(err error) { r.p.Send(faultMsg{err: err}) }
