package engine

import (
	"errors"
	"testing"

	"github.com/DoyleJ11/heartz-client/internal/protocol"
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

const self types.PlayerID = "B"

func card(pos int) types.Card {
	return types.Card{Suit: types.SuitHeart, Emoji: "x", PositionInDeck: pos}
}

func cardPtr(pos int) *types.Card {
	c := card(pos)
	return &c
}

func scores(ids ...types.PlayerID) []types.PlayerScore {
	out := make([]types.PlayerScore, len(ids))
	for i, id := range ids {
		out[i] = types.PlayerScore{PlayerID: id, Score: 10 * (i + 1)}
	}
	return out
}

func mustApply(t *testing.T, s State, ev protocol.Event) ([]Effect, State) {
	t.Helper()
	effects, next, err := Apply(s, ev)
	if err != nil {
		t.Fatalf("Apply(%s): unexpected err %v", protocol.Name(ev), err)
	}
	return effects, next
}

func newHand() protocol.NewHand {
	return protocol.NewHand{
		PlayerIDsInOrder: [4]types.PlayerID{"A", "B", "C", "D"},
		PlayerScores:     scores("A", "B", "C", "D"),
		CurrentPlayerID:  "A",
		Progress:         types.Progress{Hand: 1, Hands: 3},
	}
}

func TestApply_ModeFollowsLastModeChangingEvent(t *testing.T) {
	cases := []struct {
		name   string
		events []protocol.Event
		want   Mode
	}{
		{
			name:   "lobby",
			events: []protocol.Event{protocol.WaitingForPlayers{Seats: [4]types.PlayerID{"A"}}},
			want:   ModeWaitingForPlayers,
		},
		{
			name: "receiveCards keeps mode",
			events: []protocol.Event{
				newHand(),
				protocol.ReceiveCards{Cards: []types.Card{card(1)}},
			},
			want: ModeNewHand,
		},
		{
			name: "exchange then play",
			events: []protocol.Event{
				newHand(),
				protocol.NextPlayerToReplaceCards{CurrentPlayerID: "A"},
				protocol.NextPlayerToPlay{CurrentPlayerID: "B"},
				protocol.UpdateStackAndScore{},
			},
			want: ModePlayingHand,
		},
		{
			name: "play back to new hand",
			events: []protocol.Event{
				newHand(),
				protocol.NextPlayerToPlay{CurrentPlayerID: "B"},
				newHand(),
			},
			want: ModeNewHand,
		},
		{
			name: "end",
			events: []protocol.Event{
				protocol.NextPlayerToPlay{CurrentPlayerID: "B"},
				protocol.End{},
				protocol.TimedOut{},
			},
			want: ModeEnd,
		},
		{
			name: "snapshot wins over ended session",
			events: []protocol.Event{
				protocol.End{},
				protocol.State{Mode: "EXCHANGE_CARDS", PlayerScores: scores("A", "B", "C", "D")},
			},
			want: ModeExchangeCards,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(self)
			for _, ev := range tc.events {
				_, s = mustApply(t, s, ev)
			}
			if s.Mode != tc.want {
				t.Fatalf("mode: got %s, want %s", s.Mode, tc.want)
			}
		})
	}
}

func TestApply_JoinedFillsFirstEmptySeat(t *testing.T) {
	s := NewState(self)
	_, s = mustApply(t, s, protocol.WaitingForPlayers{Seats: [4]types.PlayerID{"A", "", "", ""}})
	effects, s := mustApply(t, s, protocol.Joined{PlayerID: "B"})

	if s.Roster != [4]types.PlayerID{"A", "B", "", ""} {
		t.Fatalf("roster: got %v", s.Roster)
	}
	if s.Seats[seating.SlotBottom].Occupant != self {
		t.Fatalf("self not at bottom after joining: %v", s.Seats)
	}
	if !containsEffect(effects, EffRosterChanged) {
		t.Fatalf("expected EffRosterChanged")
	}
}

func TestApply_ProtocolViolations(t *testing.T) {
	lobby := NewState(self)
	lobby.Mode = ModeWaitingForPlayers
	lobby.Roster = [4]types.PlayerID{"A", "C", "D", "E"}

	ended := NewState(self)
	ended.Mode = ModeEnd

	cases := []struct {
		name  string
		setup State
		ev    protocol.Event
		want  error
	}{
		{"joined into full room", lobby, protocol.Joined{PlayerID: "B"}, ErrNoEmptySeat},
		{"joined twice", lobby, protocol.Joined{PlayerID: "A"}, ErrAlreadySeated},
		{"joined outside lobby", NewState(self), protocol.Joined{PlayerID: "B"}, ErrJoinedOutsideLobby},
		{"new hand after end", ended, newHand(), ErrSessionEnded},
		{"play after end", ended, protocol.NextPlayerToPlay{}, ErrSessionEnded},
		{"snapshot with unknown mode", lobby, protocol.State{Mode: "DANCING"}, ErrUnknownMode},
		{"snapshot with client-only mode", lobby, protocol.State{Mode: "WAITING_FOR_MESSAGE"}, ErrUnknownMode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, got, err := Apply(tc.setup, tc.ev)
			if err == nil || !errors.Is(err, ErrProtocolViolation) || !errors.Is(err, tc.want) {
				t.Fatalf("want violation wrapping %v, got %v", tc.want, err)
			}
			if got.Mode != tc.setup.Mode || got.Roster != tc.setup.Roster {
				t.Fatalf("state changed on violation: %+v", got)
			}
		})
	}
}

func TestApply_NewHandRequestsCardsOnlyWhenSeated(t *testing.T) {
	effects, s := mustApply(t, NewState(self), newHand())
	cmds := Commands(effects)
	if len(cmds) != 1 || cmds[0] != (protocol.GetCards{}) {
		t.Fatalf("seated: want [getCards], got %v", cmds)
	}
	for _, ps := range s.HandScores {
		if ps.Score != 0 {
			t.Fatalf("hand scores not reset: %v", s.HandScores)
		}
	}
	if s.TotalScores[3].Score != 40 {
		t.Fatalf("cumulative scores lost: %v", s.TotalScores)
	}
	if s.CurrentSeat != seating.SlotRight {
		t.Fatalf("current seat: got %d, want right", s.CurrentSeat)
	}

	effects, _ = mustApply(t, NewState("spectator"), newHand())
	if cmds := Commands(effects); len(cmds) != 0 {
		t.Fatalf("spectator: want no commands, got %v", cmds)
	}
}

func TestApply_PreviousCurrentSeatTracked(t *testing.T) {
	_, s := mustApply(t, NewState(self), newHand())
	_, s = mustApply(t, s, protocol.NextPlayerToPlay{CurrentPlayerID: "B"})

	if s.PreviousCurrentSeat != seating.SlotRight || s.CurrentSeat != seating.SlotBottom {
		t.Fatalf("got previous=%d current=%d", s.PreviousCurrentSeat, s.CurrentSeat)
	}

	_, s = mustApply(t, s, protocol.NextPlayerToPlay{CurrentPlayerID: "C"})
	if s.PreviousCurrentSeat != seating.SlotBottom || s.CurrentSeat != seating.SlotLeft {
		t.Fatalf("got previous=%d current=%d", s.PreviousCurrentSeat, s.CurrentSeat)
	}
}

func TestApply_NextPlayerToPlayOptionalCards(t *testing.T) {
	_, s := mustApply(t, NewState(self), newHand())
	_, s = mustApply(t, s, protocol.ReceiveCards{Cards: []types.Card{card(1), card(2)}})

	stack := types.Stack{cardPtr(9), nil, nil, nil}
	_, s = mustApply(t, s, protocol.NextPlayerToPlay{CurrentPlayerID: "A", Stack: stack})
	if len(s.Hand) != 2 {
		t.Fatalf("hand replaced without current_cards: %v", s.Hand)
	}
	if s.Stack[0] == nil || s.Stack[0].PositionInDeck != 9 {
		t.Fatalf("stack not replaced: %v", s.Stack)
	}

	_, s = mustApply(t, s, protocol.NextPlayerToPlay{
		CurrentPlayerID: "B",
		CurrentCards:    []*types.Card{cardPtr(2), nil},
	})
	if len(s.Hand) != 1 || s.Hand[0].PositionInDeck != 2 {
		t.Fatalf("hand not replaced from current_cards: %v", s.Hand)
	}
}

func TestApply_UpdateStackAndScoreOptionalCurrentScores(t *testing.T) {
	_, s := mustApply(t, NewState(self), newHand())
	_, s = mustApply(t, s, protocol.UpdateStackAndScore{
		PlayerScores:  scores("A", "B", "C", "D"),
		CurrentScores: []types.PlayerScore{{PlayerID: "A", Score: 5}},
	})
	if len(s.HandScores) != 1 || s.HandScores[0].Score != 5 {
		t.Fatalf("hand scores: %v", s.HandScores)
	}

	_, s = mustApply(t, s, protocol.UpdateStackAndScore{PlayerScores: scores("A", "B", "C", "D")})
	if len(s.HandScores) != 1 || s.HandScores[0].Score != 5 {
		t.Fatalf("absent current_scores should keep the hand view: %v", s.HandScores)
	}
}

func TestApply_SnapshotIsIdempotent(t *testing.T) {
	snap := protocol.State{
		Mode:            "PLAYING_HAND",
		CurrentPlayerID: "C",
		CurrentCards:    []*types.Card{cardPtr(3), cardPtr(4)},
		CurrentStack:    types.Stack{nil, cardPtr(7), nil, nil},
		PlayerScores:    scores("A", "B", "C", "D"),
		CurrentScores:   scores("A", "B", "C", "D"),
		Progress:        types.Progress{Hand: 2, Hands: 3},
	}

	_, first := mustApply(t, NewState(self), snap)
	effects, second := mustApply(t, first, snap)

	if first.Roster != second.Roster || first.Seats != second.Seats || first.CurrentSeat != second.CurrentSeat {
		t.Fatalf("seating differs between applications")
	}
	if second.PreviousCurrentSeat != second.CurrentSeat {
		t.Fatalf("second application should highlight the same seat")
	}
	if !containsEffect(effects, EffStackChanged) || !containsEffect(effects, EffCurrentPlayerChanged) {
		t.Fatalf("playing snapshot must render stack and current player: %v", effects)
	}
	if second.Progress != (types.Progress{Hand: 2, Hands: 3}) {
		t.Fatalf("progress: %+v", second.Progress)
	}
}

func TestApply_SnapshotResetsHandScoresOutsidePlay(t *testing.T) {
	snap := protocol.State{
		Mode:          "END",
		PlayerScores:  scores("A", "B", "C", "D"),
		CurrentScores: scores("A", "B", "C", "D"),
	}
	effects, s := mustApply(t, NewState(self), snap)
	for _, ps := range s.HandScores {
		if ps.Score != 0 {
			t.Fatalf("hand scores not reset at end: %v", s.HandScores)
		}
	}
	if !containsEffect(effects, EffStackChanged) || !containsEffect(effects, EffHandChanged) {
		t.Fatalf("end snapshot must redraw stack and hand: %v", effects)
	}
}

func TestApply_SnapshotRedrawsEverythingInEveryMode(t *testing.T) {
	modes := []string{"WAITING_FOR_PLAYERS", "NEW_HAND", "EXCHANGE_CARDS", "PLAYING_HAND", "END"}
	want := []EffectType{EffModeChanged, EffRosterChanged, EffCurrentPlayerChanged, EffHandChanged, EffStackChanged, EffScoresChanged}

	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			effects, s := mustApply(t, NewState(self), protocol.State{Mode: mode, PlayerScores: scores("A", "B")})
			for _, typ := range want {
				if !containsEffect(effects, typ) {
					t.Fatalf("%s snapshot missing %s: %v", mode, typ, effects)
				}
			}
			if len(s.Stack.Cards()) != 0 {
				t.Fatalf("stack not overwritten: %v", s.Stack)
			}
		})
	}
}

func TestApply_PlayerErrorAndTimeout(t *testing.T) {
	effects, _ := mustApply(t, NewState(self), protocol.PlayerError{Reason: "NotYourTurn"})
	if !containsEffect(effects, EffFault) {
		t.Fatalf("expected EffFault")
	}
	if cmds := Commands(effects); len(cmds) != 1 || cmds[0] != (protocol.GetCards{}) {
		t.Fatalf("want [getCards], got %v", cmds)
	}

	effects, _ = mustApply(t, NewState(self), protocol.TimedOut{})
	if cmds := Commands(effects); len(cmds) != 1 || cmds[0] != (protocol.GetCurrentState{}) {
		t.Fatalf("want [getCurrentState], got %v", cmds)
	}
}

func TestParseMode(t *testing.T) {
	for _, raw := range []string{"WAITING_FOR_PLAYERS", "NEW_HAND", "EXCHANGE_CARDS", "PLAYING_HAND", "END"} {
		if m, err := ParseMode(raw); err != nil || string(m) != raw {
			t.Fatalf("ParseMode(%q) = %q, %v", raw, m, err)
		}
	}
}

func containsEffect(effects []Effect, t EffectType) bool {
	for _, e := range effects {
		if e.Type == t {
			return true
		}
	}
	return false
}
