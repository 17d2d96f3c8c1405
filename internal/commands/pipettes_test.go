package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"otctl/internal/commands"
	"otctl/internal/services/opentrons"
)

func strPtr(s string) *string { return &s }

func TestAddMountedPipettesSkipsEmptyMount(t *testing.T) {
	hardware := &fakeHardware{pipettes: &opentrons.MountedPipettes{
		Left:  opentrons.PipetteInfo{Name: strPtr("p1000")},
		Right: opentrons.PipetteInfo{Name: nil},
	}}
	d, enqueuer := newDispatcher(t, commands.WithHardware(hardware))
	enqueuer.results = map[string]string{"loadPipette": `{"pipetteId":"pip-left"}`}

	left, right, err := d.AddMountedPipettes(context.Background(), "")
	if err != nil {
		t.Fatalf("AddMountedPipettes returned error: %v", err)
	}
	if right != nil {
		t.Fatalf("expected empty right mount, got %#v", right)
	}
	if left == nil || left.Name != "p1000" || left.PipetteID != "pip-left" || left.Mount != commands.MountLeft {
		t.Fatalf("unexpected left pipette: %#v", left)
	}
	want := []enqueued{{
		CommandType: "loadPipette",
		Params:      map[string]any{"pipetteName": "p1000", "mount": "left"},
		Intent:      opentrons.IntentSetup,
		RunID:       "run-1",
	}}
	if diff := cmp.Diff(want, enqueuer.calls); diff != "" {
		t.Fatalf("enqueued mismatch (-want +got):\n%s", diff)
	}
}

func TestAddMountedPipettesBothMounts(t *testing.T) {
	hardware := &fakeHardware{pipettes: &opentrons.MountedPipettes{
		Left:  opentrons.PipetteInfo{Name: strPtr("p1000_single_flex")},
		Right: opentrons.PipetteInfo{Name: strPtr("p50_multi_flex")},
	}}
	resolver := &staticResolver{runID: "current"}
	enqueuer := &recordingEnqueuer{}
	d, err := commands.New(enqueuer, commands.WithHardware(hardware), commands.WithRunResolver(resolver))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	left, right, err := d.AddMountedPipettes(context.Background(), "")
	if err != nil {
		t.Fatalf("AddMountedPipettes returned error: %v", err)
	}
	if left.Name != "p1000_single_flex" || right.Name != "p50_multi_flex" {
		t.Fatalf("unexpected pipettes: %#v %#v", left, right)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected run resolved once, got %d", resolver.calls)
	}
	for _, call := range enqueuer.calls {
		if call.RunID != "current" {
			t.Fatalf("expected current run, got %q", call.RunID)
		}
	}
}

func TestAddMountedPipettesQueryError(t *testing.T) {
	queryErr := errors.New("robot offline")
	d, enqueuer := newDispatcher(t, commands.WithHardware(&fakeHardware{err: queryErr}))
	if _, _, err := d.AddMountedPipettes(context.Background(), ""); !errors.Is(err, queryErr) {
		t.Fatalf("expected query error, got %v", err)
	}
	if len(enqueuer.calls) != 0 {
		t.Fatalf("expected no enqueue, got %d", len(enqueuer.calls))
	}
}
