package engine

import (
	"errors"
	"fmt"

	"github.com/DoyleJ11/heartz-client/internal/protocol"
	"github.com/DoyleJ11/heartz-client/internal/selection"
)

var ErrCardNotInHand = errors.New("card not in hand")
var ErrSubmitDisabled = errors.New("submit is not available")
var ErrJoinUnavailable = errors.New("join is not available")

// Open bootstraps a fresh connection: we know nothing, so ask for everything.
func Open(s State) ([]Effect, State) {
	next := NewState(s.Self)
	return []Effect{{Type: EffModeChanged}, send(protocol.GetCurrentState{})}, next
}

// Toggle flips the selection of the hand card at position.
func Toggle(s State, position int) ([]Effect, State, error) {
	c, ok := s.CardInHand(position)
	if !ok {
		return nil, s, fmt.Errorf("%w: position %d", ErrCardNotInHand, position)
	}
	sel, err := s.Selection.Toggle(c)
	if err != nil {
		return nil, s, err
	}
	next := s
	next.Selection = sel
	return []Effect{{Type: EffHandChanged}}, next, nil
}

// Submit sends the selection and asks for the resulting hand.
func Submit(s State) ([]Effect, State, error) {
	if !s.SubmitEnabled() {
		return nil, s, ErrSubmitDisabled
	}

	var cmd protocol.Command
	cards := s.Selection.Cards()
	switch s.Selection.Policy() {
	case selection.PolicyExchange:
		var replace protocol.ReplaceCards
		copy(replace.Cards[:], cards)
		cmd = replace
	case selection.PolicyPlay:
		cmd = protocol.Play{Card: cards[0]}
	default:
		return nil, s, ErrSubmitDisabled
	}

	next := s
	next.clearSelection()
	return []Effect{
		send(cmd),
		send(protocol.GetCards{}),
		{Type: EffHandChanged},
	}, next, nil
}

func Join(s State) ([]Effect, error) {
	if !s.CanJoin() {
		return nil, ErrJoinUnavailable
	}
	return []Effect{send(protocol.Join{})}, nil
}

func JoinBot(s State) ([]Effect, error) {
	if !s.CanAddBot() {
		return nil, ErrJoinUnavailable
	}
	return []Effect{send(protocol.JoinBot{})}, nil
}
