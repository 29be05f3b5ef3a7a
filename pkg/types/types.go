package types

// PlayerID is the opaque identity the server assigns to a user or bot.
type PlayerID string

// NoPlayer marks an empty seat. The server sends it as null.
const NoPlayer PlayerID = ""

func (id PlayerID) Empty() bool { return id == NoPlayer }

// Short is the display form used by the renderers.
func (id PlayerID) Short() string {
	if id.Empty() {
		return "-"
	}
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

type Suit string

const (
	SuitClub    Suit = "CLUB"
	SuitSpade   Suit = "SPADE"
	SuitDiamond Suit = "DIAMOND"
	SuitHeart   Suit = "HEART"
)

func (s Suit) Valid() bool {
	switch s {
	case SuitClub, SuitSpade, SuitDiamond, SuitHeart:
		return true
	}
	return false
}

// Red reports whether the suit is drawn in the red palette.
func (s Suit) Red() bool { return s == SuitDiamond || s == SuitHeart }

// Card is identified by PositionInDeck alone; suit and glyph are display data.
type Card struct {
	Suit           Suit   `json:"type_card"`
	Emoji          string `json:"emoji"`
	PositionInDeck int    `json:"position_in_deck"`
}

// StackSize is the number of players, and so the number of slots on the table.
const StackSize = 4

// Stack is the current trick. Nil slots are players who have not played yet.
type Stack [StackSize]*Card

// Cards returns the played cards in slot order.
func (s Stack) Cards() []Card {
	out := make([]Card, 0, StackSize)
	for _, c := range s {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

type PlayerScore struct {
	PlayerID PlayerID `json:"player_id"`
	Score    int      `json:"score"`
}

// Progress is "hand N of M" as announced by the server.
type Progress struct {
	Hand  int `json:"current_hand"`
	Hands int `json:"hands"`
}
