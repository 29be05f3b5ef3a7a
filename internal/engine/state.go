package engine

import (
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/internal/selection"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

// State is everything the client knows about the room. It is only ever
// replaced, never shared: Apply and the actions return a fresh copy, and the
// slices inside are swapped wholesale rather than edited.
type State struct {
	Mode Mode
	Self types.PlayerID

	// Roster is the server's turn order; Seats is the display rotation of it.
	Roster [seating.Slots]types.PlayerID
	Seats  [seating.Slots]seating.Seat

	CurrentPlayer       types.PlayerID
	CurrentSeat         int
	PreviousCurrentSeat int

	Hand      []types.Card
	Stack     types.Stack
	Selection selection.Selection

	HandScores  []types.PlayerScore
	TotalScores []types.PlayerScore
	Progress    types.Progress
}

func NewState(self types.PlayerID) State {
	s := State{
		Mode:                ModeWaitingForMessage,
		Self:                self,
		CurrentSeat:         seating.NoSlot,
		PreviousCurrentSeat: seating.NoSlot,
		Selection:           selection.New(selection.PolicyNone),
	}
	s.Seats = seating.Assign(s.Roster, self)
	return s
}

// SelfSeated reports whether the local identity holds a seat.
func (s State) SelfSeated() bool { return seating.Seated(s.Roster, s.Self) }

// CanJoin is the lobby "join" affordance.
func (s State) CanJoin() bool {
	return s.Mode == ModeWaitingForPlayers && !s.Self.Empty() && !s.SelfSeated() && seating.FirstEmpty(s.Roster) >= 0
}

// CanAddBot is the lobby "add bot" affordance.
func (s State) CanAddBot() bool {
	return s.Mode == ModeWaitingForPlayers && seating.FirstEmpty(s.Roster) >= 0
}

// SubmitEnabled is whether the current selection may be sent.
func (s State) SubmitEnabled() bool { return s.Selection.Ready(s.Self, s.CurrentPlayer) }

// CardInHand looks a card up by its deck position.
func (s State) CardInHand(position int) (types.Card, bool) {
	for _, c := range s.Hand {
		if c.PositionInDeck == position {
			return c, true
		}
	}
	return types.Card{}, false
}

// setMode switches mode. A real transition drops the selection and installs
// the policy of the new mode.
func (s *State) setMode(m Mode) {
	if s.Mode == m {
		return
	}
	s.Mode = m
	s.clearSelection()
}

func (s *State) clearSelection() { s.Selection = selection.New(s.Mode.Policy()) }

func (s *State) setHand(cards []types.Card) {
	s.Hand = cards
	s.clearSelection()
}

// seat recomputes the display rotation from scratch and moves the current
// player marker. PreviousCurrentSeat keeps the slot that was highlighted
// before.
func (s *State) seat(roster [seating.Slots]types.PlayerID, current types.PlayerID) {
	s.PreviousCurrentSeat = s.CurrentSeat
	s.Roster = roster
	s.Seats = seating.Assign(roster, s.Self)
	s.CurrentPlayer = current
	s.CurrentSeat = seating.SlotOf(s.Seats, current)
}

func (s *State) setRoster(roster [seating.Slots]types.PlayerID) { s.seat(roster, s.CurrentPlayer) }
func (s *State) setCurrent(id types.PlayerID) { s.seat(s.Roster, id) }

func zeroScores(scores []types.PlayerScore) []types.PlayerScore {
	out := make([]types.PlayerScore, len(scores))
	for i, ps := range scores {
		out[i] = types.PlayerScore{PlayerID: ps.PlayerID}
	}
	return out
}

func rosterFromScores(scores []types.PlayerScore) [seating.Slots]types.PlayerID {
	var roster [seating.Slots]types.PlayerID
	for i := 0; i < len(scores) && i < seating.Slots; i++ {
		roster[i] = scores[i].PlayerID
	}
	return roster
}
