package engine

import (
	"fmt"

	"github.com/DoyleJ11/heartz-client/internal/selection"
)

type Mode string

const (
	ModeWaitingForMessage Mode = "WAITING_FOR_MESSAGE"
	ModeWaitingForPlayers Mode = "WAITING_FOR_PLAYERS"
	ModeNewHand           Mode = "NEW_HAND"
	ModeExchangeCards     Mode = "EXCHANGE_CARDS"
	ModePlayingHand       Mode = "PLAYING_HAND"
	ModeEnd               Mode = "END"
)

// selectionPolicy is which card interaction each mode allows.
var selectionPolicy = map[Mode]selection.Policy{
	ModeWaitingForMessage: selection.PolicyNone,
	ModeWaitingForPlayers: selection.PolicyNone,
	ModeNewHand:           selection.PolicyNone,
	ModeExchangeCards:     selection.PolicyExchange,
	ModePlayingHand:       selection.PolicyPlay,
	ModeEnd:               selection.PolicyNone,
}

// ParseMode accepts the modes a snapshot may carry. WAITING_FOR_MESSAGE is
// client-only and never valid on the wire.
func ParseMode(raw string) (Mode, error) {
	m := Mode(raw)
	if m == ModeWaitingForMessage {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
	if _, ok := selectionPolicy[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
	return m, nil
}

func (m Mode) Policy() selection.Policy { return selectionPolicy[m] }
