package commands_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"otctl/internal/commands"
	"otctl/internal/services"
)

func TestEncodeDeckSlot(t *testing.T) {
	for slot := 1; slot <= 12; slot++ {
		got, err := commands.EncodeDeckSlot(slot)
		if err != nil {
			t.Fatalf("slot %d: unexpected error %v", slot, err)
		}
		if got != (commands.DeckLocation{SlotName: strconv.Itoa(slot)}) {
			t.Fatalf("slot %d: unexpected location %#v", slot, got)
		}
	}

	areas := map[int]string{13: "A4", 14: "B4", 15: "C4", 16: "D4"}
	for slot, area := range areas {
		got, err := commands.EncodeDeckSlot(slot)
		if err != nil {
			t.Fatalf("slot %d: unexpected error %v", slot, err)
		}
		if got != (commands.DeckLocation{AddressableAreaName: area}) {
			t.Fatalf("slot %d: unexpected location %#v", slot, got)
		}
	}

	for _, slot := range []int{0, -3, 17, 100} {
		_, err := commands.EncodeDeckSlot(slot)
		if !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("slot %d: expected configuration error, got %v", slot, err)
		}
		if errors.Is(err, services.ErrValidation) {
			t.Fatalf("slot %d: unmapped slot must not be a validation error", slot)
		}
	}
}

func TestSlotNumber(t *testing.T) {
	cases := map[string]int{
		"3":   3,
		" 14": 14,
		"d4":  16,
		"A4":  13,
	}
	for input, want := range cases {
		got, err := commands.SlotNumber(input)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", input, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", input, want, got)
		}
	}
	for _, input := range []string{"", "E4", "A1", "99", "0"} {
		if _, err := commands.SlotNumber(input); !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("%q: expected configuration error, got %v", input, err)
		}
	}
}

func TestMoveLabwareEncodesDestination(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	ctx := context.Background()

	if _, err := d.MoveLabware(ctx, commands.MoveLabware{LabwareID: "LW", Slot: 5}, ""); err != nil {
		t.Fatalf("MoveLabware returned error: %v", err)
	}
	want := map[string]any{
		"labwareId":    "LW",
		"newLocation":  map[string]any{"slotName": "5"},
		"strategy":     "usingGripper",
		"pickUpOffset": coords(0, 0, 49.85),
		"dropOffset":   coords(0, 0, 0),
	}
	if diff := cmp.Diff(want, enqueuer.last(t).Params); diff != "" {
		t.Fatalf("moveLabware params mismatch (-want +got):\n%s", diff)
	}

	pickUp := commands.Offset{}
	_, err := d.MoveLabware(ctx, commands.MoveLabware{
		LabwareID:    "LW",
		Slot:         16,
		Strategy:     commands.StrategyManualMoveWithPause,
		PickUpOffset: &pickUp,
		DropOffset:   commands.Offset{Z: 1.5},
	}, "")
	if err != nil {
		t.Fatalf("MoveLabware returned error: %v", err)
	}
	want = map[string]any{
		"labwareId":    "LW",
		"newLocation":  map[string]any{"addressableAreaName": "D4"},
		"strategy":     "manualMoveWithPause",
		"pickUpOffset": coords(0, 0, 0),
		"dropOffset":   coords(0, 0, 1.5),
	}
	if diff := cmp.Diff(want, enqueuer.last(t).Params); diff != "" {
		t.Fatalf("moveLabware params mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveLabwareRejectsBadInput(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	ctx := context.Background()

	cases := []struct {
		req    commands.MoveLabware
		marker error
	}{
		{commands.MoveLabware{LabwareID: "LW", Slot: 17}, services.ErrConfiguration},
		{commands.MoveLabware{LabwareID: "LW", Slot: 0}, services.ErrConfiguration},
		{commands.MoveLabware{LabwareID: "", Slot: 3}, services.ErrValidation},
		{commands.MoveLabware{LabwareID: "LW", Slot: 3, Strategy: "teleport"}, services.ErrValidation},
	}
	for _, tc := range cases {
		if _, err := d.MoveLabware(ctx, tc.req, ""); !errors.Is(err, tc.marker) {
			t.Fatalf("%#v: expected %v, got %v", tc.req, tc.marker, err)
		}
	}
	if len(enqueuer.calls) != 0 {
		t.Fatalf("invalid moves must not enqueue, got %d", len(enqueuer.calls))
	}
}

func TestLoadLabware(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	enqueuer.results = map[string]string{"loadLabware": `{"labwareId":"lw-42","definition":{}}`}

	loaded, err := d.LoadLabware(context.Background(), commands.LoadLabware{LoadName: "corning_96_wellplate_360ul_flat", Slot: 13}, "")
	if err != nil {
		t.Fatalf("LoadLabware returned error: %v", err)
	}
	if loaded.LabwareID != "lw-42" || loaded.Location.AddressableAreaName != "A4" {
		t.Fatalf("unexpected loaded labware: %#v", loaded)
	}
	want := map[string]any{
		"location":  map[string]any{"addressableAreaName": "A4"},
		"loadName":  "corning_96_wellplate_360ul_flat",
		"namespace": "opentrons",
		"version":   1.0,
	}
	if diff := cmp.Diff(want, enqueuer.last(t).Params); diff != "" {
		t.Fatalf("loadLabware params mismatch (-want +got):\n%s", diff)
	}

	if _, err := d.LoadLabware(context.Background(), commands.LoadLabware{Slot: 2}, ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error without load name, got %v", err)
	}
}
