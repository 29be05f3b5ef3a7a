// Package render holds the renderers that do not need a terminal.
package render

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/DoyleJ11/heartz-client/internal/engine"
	"github.com/DoyleJ11/heartz-client/internal/room"
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

// Log writes every render call as a structured log line. It is the whole UI
// in headless mode and a trace of the TUI otherwise.
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log {
	return &Log{log: log.Named("render")}
}

func (l *Log) Banner(mode engine.Mode, p types.Progress) {
	l.log.Info("banner", zap.String("mode", string(mode)), zap.Int("hand", p.Hand), zap.Int("hands", p.Hands))
}

func (l *Log) Lobby(lb room.Lobby) {
	if !lb.Open {
		return
	}
	l.log.Info("lobby", zap.Bool("can_join", lb.CanJoin), zap.Bool("can_add_bot", lb.CanAddBot))
}

func (l *Log) Seats(seats [seating.Slots]seating.Seat) {
	ids := make([]string, len(seats))
	for i, s := range seats {
		ids[i] = s.Occupant.Short()
	}
	l.log.Info("seats", zap.Strings("slots", ids))
}

func (l *Log) Highlight(previous, current int) {
	l.log.Debug("highlight", zap.Int("previous", previous), zap.Int("current", current))
}

func (l *Log) Hand(cards []types.Card, selected []int, submitEnabled bool) {
	l.log.Info("hand",
		zap.Strings("cards", cardNames(cards)),
		zap.Ints("selected", selected),
		zap.Bool("submit_enabled", submitEnabled),
	)
}

func (l *Log) Stack(s types.Stack) {
	l.log.Info("stack", zap.Strings("cards", cardNames(s.Cards())))
}

func (l *Log) Scores(scores [seating.Slots]room.SeatScore) {
	fields := make([]zap.Field, 0, len(scores))
	for _, s := range scores {
		if s.PlayerID.Empty() {
			continue
		}
		fields = append(fields, zap.Dict(s.PlayerID.Short(), zap.Int("hand", s.Hand), zap.Int("total", s.Total)))
	}
	l.log.Info("scores", fields...)
}

func (l *Log) Fault(err error) {
	l.log.Warn("fault", zap.Error(err))
}

// CardName is the compact text form of a card, e.g. "HEART#12".
func CardName(c types.Card) string {
	return string(c.Suit) + "#" + strconv.Itoa(c.PositionInDeck)
}

func cardNames(cards []types.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = CardName(c)
	}
	return out
}
