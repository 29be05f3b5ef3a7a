package seating

import "github.com/DoyleJ11/heartz-client/pkg/types"

// Slots is the number of display positions around the table.
const Slots = types.StackSize

// Slot names in display order. Bottom is reserved for the local player.
const (
	SlotBottom = iota
	SlotLeft
	SlotTop
	SlotRight
)

// NoSlot is returned when a player is not at the table.
const NoSlot = -1

type Seat struct {
	Slot     int            `json:"slot"`
	Occupant types.PlayerID `json:"occupant"`
}

func (s Seat) Empty() bool { return s.Occupant.Empty() }

// Assign maps the server roster onto the four display slots. When self is
// seated it lands on slot 0 and the others follow in turn order starting with
// the player after self. Otherwise the roster maps straight onto the slots.
// Empty roster entries stay empty; nothing is compacted.
func Assign(roster [Slots]types.PlayerID, self types.PlayerID) [Slots]Seat {
	var out [Slots]Seat
	for i := range out {
		out[i].Slot = i
	}

	start := 0
	if !self.Empty() {
		if idx := indexOf(roster, self); idx >= 0 {
			start = idx
		}
	}
	for i := range out {
		out[i].Occupant = roster[(start+i)%Slots]
	}
	return out
}

// SlotOf finds the display slot of id, or NoSlot.
func SlotOf(seats [Slots]Seat, id types.PlayerID) int {
	if id.Empty() {
		return NoSlot
	}
	for _, s := range seats {
		if s.Occupant == id {
			return s.Slot
		}
	}
	return NoSlot
}

// Seated reports whether id holds any seat in the roster.
func Seated(roster [Slots]types.PlayerID, id types.PlayerID) bool {
	return !id.Empty() && indexOf(roster, id) >= 0
}

// FirstEmpty is the roster index of the first empty seat, or -1 when full.
func FirstEmpty(roster [Slots]types.PlayerID) int {
	for i, id := range roster {
		if id.Empty() {
			return i
		}
	}
	return -1
}

func indexOf(roster [Slots]types.PlayerID, id types.PlayerID) int {
	for i, occupant := range roster {
		if occupant == id {
			return i
		}
	}
	return -1
}
