package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/DoyleJ11/heartz-client/internal/engine"
	"github.com/DoyleJ11/heartz-client/internal/room"
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

var _ room.Renderer = (*Log)(nil)

func TestLog_RecordsRenderCalls(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewLog(zap.New(core))

	r.Banner(engine.ModeExchangeCards, types.Progress{Hand: 1, Hands: 3})
	r.Lobby(room.Lobby{})
	r.Seats(seating.Assign([4]types.PlayerID{"A", "B", "", ""}, "B"))
	r.Hand([]types.Card{{Suit: types.SuitHeart, PositionInDeck: 12}}, []int{12}, false)
	r.Scores([4]room.SeatScore{{PlayerID: "B", Hand: 1, Total: 9}})
	r.Fault(errors.New("desync"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 5, "closed lobby is not logged")

	assert.Equal(t, "banner", entries[0].Message)
	assert.Equal(t, "EXCHANGE_CARDS", entries[0].ContextMap()["mode"])

	assert.Equal(t, []interface{}{"B", "-", "-", "A"}, entries[1].ContextMap()["slots"])

	assert.Equal(t, []interface{}{"HEART#12"}, entries[2].ContextMap()["cards"])

	assert.Equal(t, map[string]interface{}{"hand": int64(1), "total": int64(9)}, entries[3].ContextMap()["B"])

	assert.Equal(t, zapcore.WarnLevel, entries[4].Level)
	assert.Equal(t, "desync", entries[4].ContextMap()["error"])
}
