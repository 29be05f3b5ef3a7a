package room

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/DoyleJ11/heartz-client/internal/engine"
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

// ErrRenderTargetMissing means the state points at something the table does
// not show, e.g. a current player with no seat. Local and server state have
// drifted apart.
var ErrRenderTargetMissing = errors.New("render target missing")

type renderOp int

const (
	opBanner renderOp = iota
	opLobby
	opSeats
	opHighlight
	opHand
	opStack
	opScores
	opCount
)

// opsFor is which parts of the screen each effect invalidates.
var opsFor = map[engine.EffectType][]renderOp{
	engine.EffModeChanged:          {opBanner, opLobby},
	engine.EffRosterChanged:        {opSeats, opLobby, opHighlight, opScores},
	engine.EffCurrentPlayerChanged: {opHighlight, opHand},
	engine.EffHandChanged:          {opHand},
	engine.EffStackChanged:         {opStack},
	engine.EffScoresChanged:        {opScores},
}

// project pushes the effects of one event onto the renderer. Each render
// operation runs at most once, in the order its first effect appeared.
func project(r Renderer, s engine.State, effects []engine.Effect) error {
	var done [opCount]bool
	var errs error
	for _, eff := range effects {
		if eff.Type == engine.EffFault {
			r.Fault(eff.Err)
			continue
		}
		for _, op := range opsFor[eff.Type] {
			if done[op] {
				continue
			}
			done[op] = true
			errs = multierr.Append(errs, render(r, s, op))
		}
	}
	return errs
}

func render(r Renderer, s engine.State, op renderOp) error {
	switch op {
	case opBanner:
		r.Banner(s.Mode, s.Progress)
	case opLobby:
		r.Lobby(lobbyOf(s))
	case opSeats:
		r.Seats(s.Seats)
	case opHighlight:
		r.Highlight(s.PreviousCurrentSeat, s.CurrentSeat)
		if !s.CurrentPlayer.Empty() && s.CurrentSeat == seating.NoSlot {
			return fmt.Errorf("%w: current player %s is not seated", ErrRenderTargetMissing, s.CurrentPlayer.Short())
		}
	case opHand:
		r.Hand(slices.Clone(s.Hand), s.Selection.Positions(), s.SubmitEnabled())
	case opStack:
		r.Stack(s.Stack)
	case opScores:
		scores, err := seatScores(s)
		r.Scores(scores)
		return err
	}
	return nil
}

func lobbyOf(s engine.State) Lobby {
	return Lobby{
		Open:      s.Mode == engine.ModeWaitingForPlayers,
		CanJoin:   s.CanJoin(),
		CanAddBot: s.CanAddBot(),
	}
}

// seatScores lays both score views out by display slot. A score for a player
// who is not at the table is still reported, as an error.
func seatScores(s engine.State) ([seating.Slots]SeatScore, error) {
	var out [seating.Slots]SeatScore
	for _, seat := range s.Seats {
		out[seat.Slot].PlayerID = seat.Occupant
	}

	var errs error
	place := func(entries []types.PlayerScore, set func(*SeatScore, int)) {
		for _, ps := range entries {
			if ps.PlayerID.Empty() {
				continue
			}
			slot := seating.SlotOf(s.Seats, ps.PlayerID)
			if slot == seating.NoSlot {
				errs = multierr.Append(errs, fmt.Errorf("%w: score for unseated player %s", ErrRenderTargetMissing, ps.PlayerID.Short()))
				continue
			}
			set(&out[slot], ps.Score)
		}
	}
	place(s.TotalScores, func(ss *SeatScore, v int) { ss.Total = v })
	place(s.HandScores, func(ss *SeatScore, v int) { ss.Hand = v })
	return out, errs
}
