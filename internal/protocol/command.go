package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/DoyleJ11/heartz-client/pkg/types"
)

// ReplaceCount is how many cards an exchange must carry.
const ReplaceCount = 3

// Command is a client message. Encode wraps it in the msgType envelope.
type Command interface {
	isCommand()
	msgType() any
}

type GetCurrentState struct{}
type GetCards struct{}
type Join struct{}
type JoinBot struct{}

type ReplaceCards struct {
	Cards [ReplaceCount]types.Card
}

type Play struct {
	Card types.Card
}

func (GetCurrentState) isCommand() {}
func (GetCards) isCommand()        {}
func (Join) isCommand()            {}
func (JoinBot) isCommand()         {}
func (ReplaceCards) isCommand()    {}
func (Play) isCommand()            {}

func (GetCurrentState) msgType() any { return "getCurrentState" }
func (GetCards) msgType() any        { return "getCards" }
func (Join) msgType() any            { return "join" }
func (JoinBot) msgType() any         { return "joinBot" }

func (c ReplaceCards) msgType() any {
	return map[string]any{"replaceCards": c.Cards}
}

func (c Play) msgType() any {
	return map[string]any{"play": c.Card}
}

// CommandName is the wire key of a command, used for logging.
func CommandName(c Command) string {
	switch v := c.msgType().(type) {
	case string:
		return v
	case map[string]any:
		for k := range v {
			return k
		}
	}
	return fmt.Sprintf("%T", c)
}

func Encode(c Command) ([]byte, error) {
	return json.Marshal(struct {
		MsgType any `json:"msgType"`
	}{MsgType: c.msgType()})
}
