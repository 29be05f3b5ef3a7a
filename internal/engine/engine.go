package engine

import (
	"errors"
	"fmt"

	"github.com/DoyleJ11/heartz-client/internal/protocol"
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

// ErrProtocolViolation wraps every event the server should not have sent in
// the current state. The state is left untouched when it is returned.
var ErrProtocolViolation = errors.New("protocol violation")

var ErrNoEmptySeat = errors.New("no empty seat")
var ErrAlreadySeated = errors.New("player already seated")
var ErrJoinedOutsideLobby = errors.New("joined outside the lobby")
var ErrSessionEnded = errors.New("session already ended")
var ErrUnknownMode = errors.New("unknown mode")
var ErrUnsupportedEvent = errors.New("unsupported event")

// ErrServerRejected carries a playerError reason.
var ErrServerRejected = errors.New("server rejected command")

type EffectType string

const (
	EffModeChanged          EffectType = "ModeChanged"
	EffRosterChanged        EffectType = "RosterChanged"
	EffCurrentPlayerChanged EffectType = "CurrentPlayerChanged"
	// EffHandChanged covers the hand, the selection and the submit affordance.
	EffHandChanged   EffectType = "HandChanged"
	EffStackChanged  EffectType = "StackChanged"
	EffScoresChanged EffectType = "ScoresChanged"
	EffSend          EffectType = "Send"
	EffFault         EffectType = "Fault"
)

/*
	waitingForPlayers        -> ModeChanged, RosterChanged
	joined                   -> RosterChanged
	newHand                  -> ModeChanged, RosterChanged, ScoresChanged, CurrentPlayerChanged, HandChanged [, Send getCards]
	receiveCards             -> HandChanged
	nextPlayerToReplaceCards -> ModeChanged, ScoresChanged, CurrentPlayerChanged, HandChanged
	nextPlayerToPlay         -> ModeChanged, HandChanged, StackChanged, CurrentPlayerChanged
	updateStackAndScore      -> StackChanged, ScoresChanged
	end                      -> ModeChanged, ScoresChanged, HandChanged
	state                    -> every render effect, see snapshotEffects
	playerError              -> Fault, Send getCards
	timedOut                 -> Send getCurrentState
*/

type Effect struct {
	Type    EffectType
	Command protocol.Command
	Err     error
}

func send(c protocol.Command) Effect { return Effect{Type: EffSend, Command: c} }

func violation(err error) error { return fmt.Errorf("%w: %w", ErrProtocolViolation, err) }

// Apply folds one server event into the state.
func Apply(s State, ev protocol.Event) ([]Effect, State, error) {
	next := s

	switch e := ev.(type) {
	case protocol.WaitingForPlayers:
		if s.Mode == ModeEnd {
			return nil, s, violation(ErrSessionEnded)
		}
		next.setMode(ModeWaitingForPlayers)
		next.setRoster(e.Seats)
		return []Effect{{Type: EffModeChanged}, {Type: EffRosterChanged}}, next, nil

	case protocol.Joined:
		if s.Mode != ModeWaitingForPlayers {
			return nil, s, violation(fmt.Errorf("%w: mode %s", ErrJoinedOutsideLobby, s.Mode))
		}
		if seating.Seated(s.Roster, e.PlayerID) {
			return nil, s, violation(fmt.Errorf("%w: %s", ErrAlreadySeated, e.PlayerID))
		}
		idx := seating.FirstEmpty(s.Roster)
		if idx < 0 {
			return nil, s, violation(ErrNoEmptySeat)
		}
		roster := s.Roster
		roster[idx] = e.PlayerID
		next.setRoster(roster)
		return []Effect{{Type: EffRosterChanged}}, next, nil

	case protocol.NewHand:
		if s.Mode == ModeEnd {
			return nil, s, violation(ErrSessionEnded)
		}
		next.setMode(ModeNewHand)
		next.clearSelection()
		next.seat(e.PlayerIDsInOrder, e.CurrentPlayerID)
		next.TotalScores = e.PlayerScores
		next.HandScores = zeroScores(e.PlayerScores)
		next.Progress = e.Progress

		effects := []Effect{
			{Type: EffModeChanged},
			{Type: EffRosterChanged},
			{Type: EffScoresChanged},
			{Type: EffCurrentPlayerChanged},
			{Type: EffHandChanged},
		}
		if next.SelfSeated() {
			effects = append(effects, send(protocol.GetCards{}))
		}
		return effects, next, nil

	case protocol.ReceiveCards:
		next.setHand(e.Cards)
		return []Effect{{Type: EffHandChanged}}, next, nil

	case protocol.NextPlayerToReplaceCards:
		if s.Mode == ModeEnd {
			return nil, s, violation(ErrSessionEnded)
		}
		next.setMode(ModeExchangeCards)
		next.HandScores = zeroScores(next.TotalScores)
		next.setCurrent(e.CurrentPlayerID)
		return []Effect{
			{Type: EffModeChanged},
			{Type: EffScoresChanged},
			{Type: EffCurrentPlayerChanged},
			{Type: EffHandChanged},
		}, next, nil

	case protocol.NextPlayerToPlay:
		if s.Mode == ModeEnd {
			return nil, s, violation(ErrSessionEnded)
		}
		next.setMode(ModePlayingHand)
		if e.HasCards() {
			next.setHand(protocol.Present(e.CurrentCards))
		}
		next.Stack = e.Stack
		next.setCurrent(e.CurrentPlayerID)
		return []Effect{
			{Type: EffModeChanged},
			{Type: EffHandChanged},
			{Type: EffStackChanged},
			{Type: EffCurrentPlayerChanged},
		}, next, nil

	case protocol.UpdateStackAndScore:
		next.Stack = e.Stack
		next.TotalScores = e.PlayerScores
		if e.CurrentScores != nil {
			next.HandScores = e.CurrentScores
		}
		return []Effect{{Type: EffStackChanged}, {Type: EffScoresChanged}}, next, nil

	case protocol.End:
		next.setMode(ModeEnd)
		if e.PlayerScores != nil {
			next.TotalScores = e.PlayerScores
		}
		next.HandScores = zeroScores(next.TotalScores)
		return []Effect{{Type: EffModeChanged}, {Type: EffScoresChanged}, {Type: EffHandChanged}}, next, nil

	case protocol.State:
		return applySnapshot(s, e)

	case protocol.PlayerError:
		return []Effect{
			{Type: EffFault, Err: fmt.Errorf("%w: %s", ErrServerRejected, e.Reason)},
			send(protocol.GetCards{}),
		}, next, nil

	case protocol.TimedOut:
		return []Effect{send(protocol.GetCurrentState{})}, next, nil

	default:
		return nil, s, violation(fmt.Errorf("%w: %T", ErrUnsupportedEvent, ev))
	}
}

// applySnapshot overwrites everything the snapshot carries, whatever the
// current mode, and always drops the local selection.
func applySnapshot(s State, e protocol.State) ([]Effect, State, error) {
	mode, err := ParseMode(e.Mode)
	if err != nil {
		return nil, s, violation(err)
	}

	next := s
	next.Mode = mode
	next.clearSelection()
	next.seat(rosterFromScores(e.PlayerScores), e.CurrentPlayerID)
	if e.HasCards() {
		next.Hand = protocol.Present(e.CurrentCards)
	}
	next.Stack = e.CurrentStack
	next.TotalScores = e.PlayerScores
	next.HandScores = e.CurrentScores
	if next.HandScores == nil || mode == ModeExchangeCards || mode == ModeEnd {
		next.HandScores = zeroScores(e.PlayerScores)
	}
	if e.Progress != (types.Progress{}) {
		next.Progress = e.Progress
	}

	return snapshotEffects(), next, nil
}

// snapshotEffects redraws everything. A snapshot leaves nothing from the
// previous screen standing, in any mode.
func snapshotEffects() []Effect {
	kinds := []EffectType{
		EffModeChanged,
		EffRosterChanged,
		EffCurrentPlayerChanged,
		EffHandChanged,
		EffStackChanged,
		EffScoresChanged,
	}
	effects := make([]Effect, len(kinds))
	for i, t := range kinds {
		effects[i] = Effect{Type: t}
	}
	return effects
}

// Commands extracts the outbound commands, in order.
func Commands(effects []Effect) []protocol.Command {
	var out []protocol.Command
	for _, e := range effects {
		if e.Type == EffSend {
			out = append(out, e.Command)
		}
	}
	return out
}
