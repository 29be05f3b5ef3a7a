package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DoyleJ11/heartz-client/pkg/types"
)

var ErrMalformedEnvelope = errors.New("malformed envelope")
var ErrUnknownEvent = errors.New("unknown event")

// Event is a server message decoded at the connection boundary.
type Event interface{ isEvent() }

type WaitingForPlayers struct {
	Seats [types.StackSize]types.PlayerID
}

type Joined struct {
	PlayerID types.PlayerID
}

type NewHand struct {
	PlayerIDsInOrder [types.StackSize]types.PlayerID `json:"player_ids_in_order"`
	PlayerScores     []types.PlayerScore             `json:"player_scores"`
	CurrentPlayerID  types.PlayerID                  `json:"current_player_id"`
	types.Progress
}

type ReceiveCards struct {
	Cards []types.Card
}

type NextPlayerToReplaceCards struct {
	CurrentPlayerID types.PlayerID `json:"current_player_id"`
}

type NextPlayerToPlay struct {
	CurrentPlayerID types.PlayerID `json:"current_player_id"`
	Stack           types.Stack    `json:"stack"`
	CurrentCards    []*types.Card  `json:"current_cards"`
}

// HasCards distinguishes an absent current_cards from an empty hand.
func (e NextPlayerToPlay) HasCards() bool { return e.CurrentCards != nil }

type UpdateStackAndScore struct {
	Stack         types.Stack         `json:"stack"`
	PlayerScores  []types.PlayerScore `json:"player_scores"`
	CurrentScores []types.PlayerScore `json:"current_scores"`
}

// State is the authoritative snapshot sent in answer to getCurrentState.
type State struct {
	Mode            string              `json:"mode"`
	CurrentPlayerID types.PlayerID      `json:"current_player_id"`
	CurrentCards    []*types.Card       `json:"current_cards"`
	CurrentStack    types.Stack         `json:"current_stack"`
	PlayerScores    []types.PlayerScore `json:"player_scores"`
	CurrentScores   []types.PlayerScore `json:"current_scores"`
	types.Progress
}

func (e State) HasCards() bool { return e.CurrentCards != nil }

type End struct {
	PlayerScores []types.PlayerScore `json:"player_scores"`
}

// PlayerError is the server refusing one of our commands.
type PlayerError struct {
	Reason string
}

type TimedOut struct{}

func (WaitingForPlayers) isEvent()        {}
func (Joined) isEvent()                   {}
func (NewHand) isEvent()                  {}
func (ReceiveCards) isEvent()             {}
func (NextPlayerToReplaceCards) isEvent() {}
func (NextPlayerToPlay) isEvent()         {}
func (UpdateStackAndScore) isEvent()      {}
func (State) isEvent()                    {}
func (End) isEvent()                      {}
func (PlayerError) isEvent()              {}
func (TimedOut) isEvent()                 {}

// Name is the wire key of an event, used for logging.
func Name(ev Event) string {
	switch ev.(type) {
	case WaitingForPlayers:
		return "waitingForPlayers"
	case Joined:
		return "joined"
	case NewHand:
		return "newHand"
	case ReceiveCards:
		return "receiveCards"
	case NextPlayerToReplaceCards:
		return "nextPlayerToReplaceCards"
	case NextPlayerToPlay:
		return "nextPlayerToPlay"
	case UpdateStackAndScore:
		return "updateStackAndScore"
	case State:
		return "state"
	case End:
		return "end"
	case PlayerError:
		return "playerError"
	case TimedOut:
		return "timedOut"
	default:
		return fmt.Sprintf("%T", ev)
	}
}

type envelope struct {
	MsgType json.RawMessage `json:"msgType"`
}

// Decode turns one inbound frame into an Event. The payload must be either a
// known literal or an object with exactly one known key.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	raw := bytes.TrimSpace(env.MsgType)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: missing msgType", ErrMalformedEnvelope)
	}

	if raw[0] == '"' {
		var literal string
		if err := json.Unmarshal(raw, &literal); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		if literal == "timedOut" {
			return TimedOut{}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, literal)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("%w: want exactly one key, got %d", ErrMalformedEnvelope, len(obj))
	}
	for key, payload := range obj {
		ev, err := decodeKeyed(key, payload)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		return ev, nil
	}
	return nil, ErrMalformedEnvelope // unreachable
}

func decodeKeyed(key string, payload json.RawMessage) (Event, error) {
	switch key {
	case "waitingForPlayers":
		var seats []types.PlayerID
		if err := json.Unmarshal(payload, &seats); err != nil {
			return nil, err
		}
		if len(seats) > types.StackSize {
			return nil, fmt.Errorf("%w: %d seats", ErrMalformedEnvelope, len(seats))
		}
		var ev WaitingForPlayers
		copy(ev.Seats[:], seats)
		return ev, nil

	case "joined":
		var id types.PlayerID
		if err := json.Unmarshal(payload, &id); err != nil {
			return nil, err
		}
		if id.Empty() {
			return nil, fmt.Errorf("%w: joined without player id", ErrMalformedEnvelope)
		}
		return Joined{PlayerID: id}, nil

	case "newHand":
		var ev NewHand
		if err := decodeInto(payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "receiveCards":
		var cards []*types.Card
		if err := json.Unmarshal(payload, &cards); err != nil {
			return nil, err
		}
		if err := checkSuits(cards); err != nil {
			return nil, err
		}
		return ReceiveCards{Cards: Present(cards)}, nil

	case "nextPlayerToReplaceCards":
		var ev NextPlayerToReplaceCards
		if err := decodeInto(payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "nextPlayerToPlay":
		var ev NextPlayerToPlay
		if err := decodeInto(payload, &ev); err != nil {
			return nil, err
		}
		if err := checkSuits(ev.Stack[:], ev.CurrentCards); err != nil {
			return nil, err
		}
		return ev, nil

	case "updateStackAndScore":
		var ev UpdateStackAndScore
		if err := decodeInto(payload, &ev); err != nil {
			return nil, err
		}
		if err := checkSuits(ev.Stack[:]); err != nil {
			return nil, err
		}
		return ev, nil

	case "state":
		var ev State
		if err := decodeInto(payload, &ev); err != nil {
			return nil, err
		}
		if err := checkSuits(ev.CurrentStack[:], ev.CurrentCards); err != nil {
			return nil, err
		}
		return ev, nil

	case "end":
		var ev End
		if err := decodeInto(payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil

	case "playerError":
		return PlayerError{Reason: reason(payload)}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, key)
	}
}

func decodeInto(payload json.RawMessage, v any) error {
	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return fmt.Errorf("%w: null payload", ErrMalformedEnvelope)
	}
	return json.Unmarshal(payload, v)
}

func checkSuits(groups ...[]*types.Card) error {
	for _, cards := range groups {
		for _, c := range cards {
			if c != nil && !c.Suit.Valid() {
				return fmt.Errorf("%w: card %d has suit %q", ErrMalformedEnvelope, c.PositionInDeck, c.Suit)
			}
		}
	}
	return nil
}

// Present drops the null holes of a hand array.
func Present(cards []*types.Card) []types.Card {
	out := make([]types.Card, 0, len(cards))
	for _, c := range cards {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// reason flattens a rule error, which the server sends either as a bare
// variant name or as a single-key object.
func reason(payload json.RawMessage) string {
	var s string
	if err := json.Unmarshal(payload, &s); err == nil {
		return s
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err == nil && len(obj) == 1 {
		for k, v := range obj {
			return k + ": " + string(v)
		}
	}
	return string(payload)
}
