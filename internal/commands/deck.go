package commands

import (
	"fmt"
	"strconv"
	"strings"

	"otctl/internal/services"
)

// DeckLocation is a resolved deck position: exactly one field is set.
type DeckLocation struct {
	SlotName            string `json:"slotName,omitempty"`
	AddressableAreaName string `json:"addressableAreaName,omitempty"`
}

const maxNumberedSlot = 12

// extensionAreas maps the numeric aliases past slot 12 to the staging area
// column on the right of the deck.
var extensionAreas = map[int]string{
	13: "A4",
	14: "B4",
	15: "C4",
	16: "D4",
}

// EncodeDeckSlot resolves a numeric slot. Slots 1 through 12 become slot
// names; 13 through 16 become the A4..D4 addressable areas.
func EncodeDeckSlot(slot int) (DeckLocation, error) {
	if slot >= 1 && slot <= maxNumberedSlot {
		return DeckLocation{SlotName: strconv.Itoa(slot)}, nil
	}
	if area, ok := extensionAreas[slot]; ok {
		return DeckLocation{AddressableAreaName: area}, nil
	}
	return DeckLocation{}, unmappedSlot("encode deck slot", fmt.Sprintf("deck slot %d is not 1-16", slot))
}

// SlotNumber parses a slot given either as a number or as one of the A4..D4
// area names, returning the numeric alias EncodeDeckSlot accepts.
func SlotNumber(value string) (int, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if _, err := EncodeDeckSlot(n); err != nil {
			return 0, err
		}
		return n, nil
	}
	upper := strings.ToUpper(value)
	for slot, area := range extensionAreas {
		if area == upper {
			return slot, nil
		}
	}
	return 0, unmappedSlot("parse deck slot", fmt.Sprintf("unrecognized deck location %q", value))
}

// unmappedSlot reports a location with no entry in the deck map. It is a
// configuration error rather than a bad argument.
func unmappedSlot(operation, message string) error {
	return services.Wrap(services.ErrConfiguration, component, operation, message, nil)
}

func (l DeckLocation) String() string {
	if l.AddressableAreaName != "" {
		return l.AddressableAreaName
	}
	return l.SlotName
}
