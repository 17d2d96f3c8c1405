package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"otctl/internal/commands"
	"otctl/internal/services"
	"otctl/internal/services/opentrons"
)

func TestShakeSpeedBounds(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	ctx := context.Background()
	for _, rpm := range []float64{0, 199.9, 3000.1, 5000} {
		if _, err := d.SetAndWaitForShakeSpeed(ctx, "hs-1", rpm, ""); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("rpm %v: expected validation error, got %v", rpm, err)
		}
	}
	if len(enqueuer.calls) != 0 {
		t.Fatalf("out of range speeds must not enqueue, got %d", len(enqueuer.calls))
	}
	for _, rpm := range []float64{200, 1500, 3000} {
		if _, err := d.SetAndWaitForShakeSpeed(ctx, "hs-1", rpm, ""); err != nil {
			t.Fatalf("rpm %v: unexpected error %v", rpm, err)
		}
	}
	want := map[string]any{"moduleId": "hs-1", "rpm": 3000.0}
	call := enqueuer.last(t)
	if call.CommandType != "heaterShaker/setAndWaitForShakeSpeed" {
		t.Fatalf("unexpected command type %q", call.CommandType)
	}
	if diff := cmp.Diff(want, call.Params); diff != "" {
		t.Fatalf("shake params mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaterShakerAndTemperatureModule(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	ctx := context.Background()

	steps := []func() error{
		func() error { _, err := d.OpenLabwareLatch(ctx, "hs-1", ""); return err },
		func() error { _, err := d.CloseLabwareLatch(ctx, "hs-1", ""); return err },
		func() error { _, err := d.SetHeaterTemperature(ctx, "hs-1", 37, ""); return err },
		func() error { _, err := d.WaitForHeaterTemperature(ctx, "hs-1", 37, ""); return err },
		func() error { _, err := d.DeactivateHeater(ctx, "hs-1", ""); return err },
		func() error { _, err := d.DeactivateShaker(ctx, "hs-1", ""); return err },
		func() error { _, err := d.SetTemperatureModuleTarget(ctx, "tm-1", 4, ""); return err },
		func() error { _, err := d.WaitForTemperatureModule(ctx, "tm-1", 4, ""); return err },
		func() error { _, err := d.DeactivateTemperatureModule(ctx, "tm-1", ""); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d returned error: %v", i, err)
		}
	}

	want := []enqueued{
		{CommandType: "heaterShaker/openLabwareLatch", Params: map[string]any{"moduleId": "hs-1"}},
		{CommandType: "heaterShaker/closeLabwareLatch", Params: map[string]any{"moduleId": "hs-1"}},
		{CommandType: "heaterShaker/setTargetTemperature", Params: map[string]any{"moduleId": "hs-1", "celsius": 37.0}},
		{CommandType: "heaterShaker/waitForTemperature", Params: map[string]any{"moduleId": "hs-1", "celsius": 37.0}},
		{CommandType: "heaterShaker/deactivateHeater", Params: map[string]any{"moduleId": "hs-1"}},
		{CommandType: "heaterShaker/deactivateShaker", Params: map[string]any{"moduleId": "hs-1"}},
		{CommandType: "temperatureModule/setTargetTemperature", Params: map[string]any{"moduleId": "tm-1", "celsius": 4.0}},
		{CommandType: "temperatureModule/waitForTemperature", Params: map[string]any{"moduleId": "tm-1", "celsius": 4.0}},
		{CommandType: "temperatureModule/deactivate", Params: map[string]any{"moduleId": "tm-1"}},
	}
	got := make([]enqueued, 0, len(enqueuer.calls))
	for _, call := range enqueuer.calls {
		got = append(got, enqueued{CommandType: call.CommandType, Params: call.Params})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("module commands mismatch (-want +got):\n%s", diff)
	}

	if _, err := d.OpenLabwareLatch(ctx, " ", ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for blank module id, got %v", err)
	}
}

func TestLoadModule(t *testing.T) {
	d, enqueuer := newDispatcher(t)
	ctx := context.Background()

	for _, slot := range []int{0, 13, -1} {
		if _, err := d.LoadModule(ctx, "heaterShakerModuleV1", slot, "", ""); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("slot %d: expected validation error, got %v", slot, err)
		}
	}
	if len(enqueuer.calls) != 0 {
		t.Fatalf("invalid slots must not enqueue, got %d", len(enqueuer.calls))
	}

	if _, err := d.LoadModule(ctx, "heaterShakerModuleV1", 1, "", ""); err != nil {
		t.Fatalf("LoadModule returned error: %v", err)
	}
	wantAnon := map[string]any{"model": "heaterShakerModuleV1", "location": map[string]any{"slotName": "1"}, "moduleId": nil}
	if diff := cmp.Diff(wantAnon, enqueuer.last(t).Params); diff != "" {
		t.Fatalf("load module mismatch (-want +got):\n%s", diff)
	}

	if _, err := d.LoadModule(ctx, "temperatureModuleV2", 12, "tm-1", ""); err != nil {
		t.Fatalf("LoadModule returned error: %v", err)
	}
	wantNamed := map[string]any{"model": "temperatureModuleV2", "location": map[string]any{"slotName": "12"}, "moduleId": "tm-1"}
	if diff := cmp.Diff(wantNamed, enqueuer.last(t).Params); diff != "" {
		t.Fatalf("load module mismatch (-want +got):\n%s", diff)
	}
}

func TestListConnectedModules(t *testing.T) {
	hardware := &fakeHardware{modules: []opentrons.Module{{ID: "hs-1", ModuleModel: "heaterShakerModuleV1"}}}
	d, _ := newDispatcher(t, commands.WithHardware(hardware))
	modules, err := d.ListConnectedModules(context.Background())
	if err != nil {
		t.Fatalf("ListConnectedModules returned error: %v", err)
	}
	if len(modules) != 1 || modules[0].ID != "hs-1" {
		t.Fatalf("unexpected modules: %#v", modules)
	}

	bare, _ := newDispatcher(t)
	if _, err := bare.ListConnectedModules(context.Background()); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error without hardware, got %v", err)
	}
}
