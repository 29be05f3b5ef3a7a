package selection

import (
	"errors"
	"slices"

	"github.com/DoyleJ11/heartz-client/pkg/types"
)

var ErrSelectionFull = errors.New("selection is full")
var ErrSelectionUnavailable = errors.New("cards cannot be selected now")

type Policy int

const (
	// PolicyNone accepts no selection.
	PolicyNone Policy = iota
	// PolicyExchange toggles up to ExchangeSize cards.
	PolicyExchange
	// PolicyPlay keeps a single card; a new pick replaces the old one.
	PolicyPlay
)

const ExchangeSize = 3

func (p Policy) String() string {
	switch p {
	case PolicyExchange:
		return "exchange"
	case PolicyPlay:
		return "play"
	default:
		return "none"
	}
}

// Selection is a value: every mutation returns a new Selection and leaves the
// receiver untouched. Cards are keyed by PositionInDeck.
type Selection struct {
	policy Policy
	cards  []types.Card
}

func New(p Policy) Selection { return Selection{policy: p} }

func (s Selection) Policy() Policy { return s.policy }
func (s Selection) Len() int       { return len(s.cards) }

// Cards returns the selected cards in the order they were picked.
func (s Selection) Cards() []types.Card { return slices.Clone(s.cards) }

// Positions returns the selected PositionInDeck values, for renderers.
func (s Selection) Positions() []int {
	out := make([]int, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.PositionInDeck
	}
	return out
}

func (s Selection) Contains(position int) bool {
	return s.index(position) >= 0
}

// Toggle selects c, or deselects it when already selected.
func (s Selection) Toggle(c types.Card) (Selection, error) {
	if s.policy == PolicyNone {
		return s, ErrSelectionUnavailable
	}
	if i := s.index(c.PositionInDeck); i >= 0 {
		return Selection{policy: s.policy, cards: slices.Delete(slices.Clone(s.cards), i, i+1)}, nil
	}

	switch s.policy {
	case PolicyExchange:
		if len(s.cards) >= ExchangeSize {
			return s, ErrSelectionFull
		}
		next := make([]types.Card, 0, ExchangeSize)
		next = append(append(next, s.cards...), c)
		return Selection{policy: s.policy, cards: next}, nil
	default:
		return Selection{policy: s.policy, cards: []types.Card{c}}, nil
	}
}

// Ready reports whether the selection can be submitted. An exchange needs a
// full selection and our turn; a play only needs a card, legality is the
// server's call.
func (s Selection) Ready(self, current types.PlayerID) bool {
	switch s.policy {
	case PolicyExchange:
		return len(s.cards) == ExchangeSize && !self.Empty() && self == current
	case PolicyPlay:
		return len(s.cards) == 1
	default:
		return false
	}
}

func (s Selection) index(position int) int {
	return slices.IndexFunc(s.cards, func(c types.Card) bool { return c.PositionInDeck == position })
}
