package seating

import (
	"testing"

	"github.com/DoyleJ11/heartz-client/pkg/types"
)

func occupants(seats [Slots]Seat) [Slots]types.PlayerID {
	var out [Slots]types.PlayerID
	for i, s := range seats {
		if s.Slot != i {
			panic("slot index out of order")
		}
		out[i] = s.Occupant
	}
	return out
}

func TestAssign(t *testing.T) {
	cases := []struct {
		name   string
		roster [Slots]types.PlayerID
		self   types.PlayerID
		want   [Slots]types.PlayerID
	}{
		{
			name:   "self second rotates to bottom",
			roster: [Slots]types.PlayerID{"A", "B", "C", "D"},
			self:   "B",
			want:   [Slots]types.PlayerID{"B", "C", "D", "A"},
		},
		{
			name:   "self last",
			roster: [Slots]types.PlayerID{"A", "B", "C", "D"},
			self:   "D",
			want:   [Slots]types.PlayerID{"D", "A", "B", "C"},
		},
		{
			name:   "spectator keeps roster order",
			roster: [Slots]types.PlayerID{"A", "B", "C", "D"},
			self:   "Z",
			want:   [Slots]types.PlayerID{"A", "B", "C", "D"},
		},
		{
			name:   "empty seats are kept in place",
			roster: [Slots]types.PlayerID{"A", "", "B", ""},
			self:   "B",
			want:   [Slots]types.PlayerID{"B", "", "A", ""},
		},
		{
			name:   "all empty",
			roster: [Slots]types.PlayerID{},
			self:   "B",
			want:   [Slots]types.PlayerID{},
		},
		{
			name:   "no identity",
			roster: [Slots]types.PlayerID{"", "A", "", ""},
			self:   types.NoPlayer,
			want:   [Slots]types.PlayerID{"", "A", "", ""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := occupants(Assign(tc.roster, tc.self))
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAssign_Idempotent(t *testing.T) {
	roster := [Slots]types.PlayerID{"A", "B", "", "D"}
	for _, self := range []types.PlayerID{"A", "B", "D", "X", types.NoPlayer} {
		first := Assign(roster, self)
		second := Assign(roster, self)
		if first != second {
			t.Fatalf("self=%q: %v != %v", self, first, second)
		}
		if Seated(roster, self) && first[SlotBottom].Occupant != self {
			t.Fatalf("self=%q not at bottom: %v", self, first)
		}
	}
}

func TestSlotOfAndFirstEmpty(t *testing.T) {
	roster := [Slots]types.PlayerID{"A", "B", "", ""}
	seats := Assign(roster, "B")

	if got := SlotOf(seats, "A"); got != SlotRight {
		t.Fatalf("SlotOf(A) = %d, want %d", got, SlotRight)
	}
	if got := SlotOf(seats, "nobody"); got != NoSlot {
		t.Fatalf("SlotOf(nobody) = %d, want NoSlot", got)
	}
	if got := SlotOf(seats, types.NoPlayer); got != NoSlot {
		t.Fatalf("SlotOf(empty) = %d, want NoSlot", got)
	}
	if got := FirstEmpty(roster); got != 2 {
		t.Fatalf("FirstEmpty = %d, want 2", got)
	}
	if got := FirstEmpty([Slots]types.PlayerID{"A", "B", "C", "D"}); got != -1 {
		t.Fatalf("FirstEmpty(full) = %d, want -1", got)
	}
}
