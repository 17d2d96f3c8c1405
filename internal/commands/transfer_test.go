package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"otctl/internal/commands"
	"otctl/internal/services"
)

func transferToLoc() commands.TransferToLoc {
	return commands.TransferToLoc{
		PipetteID:     "P1",
		Source:        commands.Well{LabwareID: "SRC", WellName: "A1"},
		Destination:   commands.Coordinates{X: 100, Y: 200, Z: 50},
		DispenseDepth: 20,
		Volume:        75,
	}
}

func TestTransferToLocWithBlowout(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	if err := d.TransferToLoc(context.Background(), transferToLoc(), ""); err != nil {
		t.Fatalf("TransferToLoc returned error: %v", err)
	}

	wantTypes := []string{"aspirate", "moveToCoordinates", "moveToCoordinates", "dispenseInPlace", "blowOutInPlace", "moveToCoordinates"}
	if diff := cmp.Diff(wantTypes, enqueuer.types()); diff != "" {
		t.Fatalf("sequence mismatch (-want +got):\n%s", diff)
	}

	calls := enqueuer.calls
	wantAspirate := map[string]any{
		"labwareId":    "SRC",
		"wellName":     "A1",
		"wellLocation": wellLoc("top", 0, 0, 0),
		"flowRate":     300.0,
		"volume":       75.0,
		"pipetteId":    "P1",
	}
	if diff := cmp.Diff(wantAspirate, calls[0].Params); diff != "" {
		t.Fatalf("aspirate mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(coords(100, 200, 50), calls[1].Params["coordinates"]); diff != "" {
		t.Fatalf("initial move mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(coords(100, 200, 30), calls[2].Params["coordinates"]); diff != "" {
		t.Fatalf("lowered move mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"volume": 75.0, "flowRate": 300.0, "pipetteId": "P1"}, calls[3].Params); diff != "" {
		t.Fatalf("dispense mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"flowRate": 300.0, "pipetteId": "P1"}, calls[4].Params); diff != "" {
		t.Fatalf("blowout mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(coords(100, 200, 50), calls[5].Params["coordinates"]); diff != "" {
		t.Fatalf("final move mismatch (-want +got):\n%s", diff)
	}
	for _, call := range calls {
		if call.RunID != "run-1" {
			t.Fatalf("expected run-1 on every step, got %q", call.RunID)
		}
	}
}

func TestTransferToLocWithoutBlowout(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	req := transferToLoc()
	req.SkipBlowout = true
	req.AspirateRate = 150
	req.DispenseRate = 80
	if err := d.TransferToLoc(context.Background(), req, "run-5"); err != nil {
		t.Fatalf("TransferToLoc returned error: %v", err)
	}
	wantTypes := []string{"aspirate", "moveToCoordinates", "moveToCoordinates", "dispenseInPlace", "moveToCoordinates"}
	if diff := cmp.Diff(wantTypes, enqueuer.types()); diff != "" {
		t.Fatalf("sequence mismatch (-want +got):\n%s", diff)
	}
	if got := enqueuer.calls[0].Params["flowRate"]; got != 150.0 {
		t.Fatalf("expected aspirate flow 150, got %v", got)
	}
	if got := enqueuer.calls[3].Params["flowRate"]; got != 80.0 {
		t.Fatalf("expected dispense flow 80, got %v", got)
	}
	if enqueuer.calls[0].RunID != "run-5" {
		t.Fatalf("explicit run id not used, got %q", enqueuer.calls[0].RunID)
	}
}

func TestTransferToLocIgnoresBlowoutRateWhenSkipped(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	req := transferToLoc()
	req.SkipBlowout = true
	req.BlowoutRate = -1
	if err := d.TransferToLoc(context.Background(), req, ""); err != nil {
		t.Fatalf("TransferToLoc returned error: %v", err)
	}
	for _, commandType := range enqueuer.types() {
		if commandType == "blowOutInPlace" {
			t.Fatalf("skipped blow-out was sent: %v", enqueuer.types())
		}
	}
}

func TestTransferToLocStopsOnFailure(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	remote := services.Wrap(services.ErrRemote, "opentrons", "dispenseInPlace", "pipette not ready", nil)
	enqueuer.failOn = "dispenseInPlace"
	enqueuer.failErr = remote

	err := d.TransferToLoc(context.Background(), transferToLoc(), "")
	if !errors.Is(err, services.ErrRemote) {
		t.Fatalf("expected remote error, got %v", err)
	}
	wantTypes := []string{"aspirate", "moveToCoordinates", "moveToCoordinates", "dispenseInPlace"}
	if diff := cmp.Diff(wantTypes, enqueuer.types()); diff != "" {
		t.Fatalf("sequence should stop at failing step (-want +got):\n%s", diff)
	}
}

func TestTransferToLocValidatesBeforeSending(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	req := transferToLoc()
	req.BlowoutRate = -1
	if err := d.TransferToLoc(context.Background(), req, ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	req = transferToLoc()
	req.Volume = -5
	if err := d.TransferToLoc(context.Background(), req, ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(enqueuer.calls) != 0 {
		t.Fatalf("invalid transfer must not enqueue, got %v", enqueuer.types())
	}
}

func TestTransferFromLoc(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	req := commands.TransferFromLoc{
		PipetteID:     "P1",
		Source:        commands.Coordinates{X: 10, Y: 20, Z: 90},
		AspirateDepth: 40,
		Destination:   commands.Well{LabwareID: "DST", WellName: "H12", Offset: commands.Offset{Z: -2}},
		Volume:        30,
		DispenseRate:  120,
	}
	if err := d.TransferFromLoc(context.Background(), req, ""); err != nil {
		t.Fatalf("TransferFromLoc returned error: %v", err)
	}

	wantTypes := []string{"moveToCoordinates", "moveToCoordinates", "aspirateInPlace", "dispense"}
	if diff := cmp.Diff(wantTypes, enqueuer.types()); diff != "" {
		t.Fatalf("sequence mismatch (-want +got):\n%s", diff)
	}
	calls := enqueuer.calls
	if diff := cmp.Diff(coords(10, 20, 90), calls[0].Params["coordinates"]); diff != "" {
		t.Fatalf("initial move mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(coords(10, 20, 50), calls[1].Params["coordinates"]); diff != "" {
		t.Fatalf("lowered move mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"volume": 30.0, "flowRate": 300.0, "pipetteId": "P1"}, calls[2].Params); diff != "" {
		t.Fatalf("aspirate mismatch (-want +got):\n%s", diff)
	}
	wantDispense := map[string]any{
		"labwareId":    "DST",
		"wellName":     "H12",
		"wellLocation": wellLoc("top", 0, 0, -2),
		"flowRate":     120.0,
		"volume":       30.0,
		"pipetteId":    "P1",
		"pushOut":      0.0,
	}
	if diff := cmp.Diff(wantDispense, calls[3].Params); diff != "" {
		t.Fatalf("dispense mismatch (-want +got):\n%s", diff)
	}
}

func TestTransferFromLocValidatesBeforeSending(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	req := commands.TransferFromLoc{
		PipetteID:   "P1",
		Source:      commands.Coordinates{X: 1, Y: 1, Z: 1},
		Destination: commands.Well{LabwareID: "DST"},
		Volume:      10,
	}
	if err := d.TransferFromLoc(context.Background(), req, ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for missing well name, got %v", err)
	}
	if len(enqueuer.calls) != 0 {
		t.Fatalf("invalid transfer must not enqueue, got %v", enqueuer.types())
	}
}
