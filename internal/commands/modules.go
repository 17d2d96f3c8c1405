package commands

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"otctl/internal/services/opentrons"
)

const (
	minShakeRPM = 200.0
	maxShakeRPM = 3000.0
)

// ListConnectedModules returns the modules attached to the robot.
func (d *Dispatcher) ListConnectedModules(ctx context.Context) ([]opentrons.Module, error) {
	if err := d.requireHardware("list modules"); err != nil {
		return nil, err
	}
	modules, err := d.hardware.Modules(ctx)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	return modules, nil
}

type loadModuleParams struct {
	Model    string       `json:"model"`
	Location DeckLocation `json:"location"`
	ModuleID *string      `json:"moduleId"`
}

// LoadModule registers a hardware module of model in a numbered slot. An
// empty moduleID lets the robot assign one.
func (d *Dispatcher) LoadModule(ctx context.Context, model string, slot int, moduleID string, runID string) (*opentrons.Command, error) {
	const op = "load module"
	if err := requireID(op, "model", model); err != nil {
		return nil, err
	}
	if slot < 1 || slot > maxNumberedSlot {
		return nil, invalid(op, "slot must be 1-12, got %d", slot)
	}
	params := loadModuleParams{
		Model:    model,
		Location: DeckLocation{SlotName: strconv.Itoa(slot)},
	}
	if id := strings.TrimSpace(moduleID); id != "" {
		params.ModuleID = &id
	}
	return d.withRunContext(ctx, "loadModule", params, runID)
}

type moduleParams struct {
	ModuleID string `json:"moduleId"`
}

type temperatureParams struct {
	ModuleID string  `json:"moduleId"`
	Celsius  float64 `json:"celsius"`
}

type shakeParams struct {
	ModuleID string  `json:"moduleId"`
	RPM      float64 `json:"rpm"`
}

func (d *Dispatcher) moduleCommand(ctx context.Context, commandType, moduleID, runID string) (*opentrons.Command, error) {
	if err := requireID(commandType, "module id", moduleID); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, commandType, moduleParams{ModuleID: moduleID}, runID)
}

func (d *Dispatcher) temperatureCommand(ctx context.Context, commandType, moduleID string, celsius float64, runID string) (*opentrons.Command, error) {
	if err := firstError(requireID(commandType, "module id", moduleID), requireFinite(commandType, "temperature", celsius)); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, commandType, temperatureParams{ModuleID: moduleID, Celsius: celsius}, runID)
}

// OpenLabwareLatch opens the heater-shaker labware latch.
func (d *Dispatcher) OpenLabwareLatch(ctx context.Context, moduleID, runID string) (*opentrons.Command, error) {
	return d.moduleCommand(ctx, "heaterShaker/openLabwareLatch", moduleID, runID)
}

// CloseLabwareLatch closes the heater-shaker labware latch.
func (d *Dispatcher) CloseLabwareLatch(ctx context.Context, moduleID, runID string) (*opentrons.Command, error) {
	return d.moduleCommand(ctx, "heaterShaker/closeLabwareLatch", moduleID, runID)
}

// SetHeaterTemperature sets the heater-shaker target without waiting.
func (d *Dispatcher) SetHeaterTemperature(ctx context.Context, moduleID string, celsius float64, runID string) (*opentrons.Command, error) {
	return d.temperatureCommand(ctx, "heaterShaker/setTargetTemperature", moduleID, celsius, runID)
}

// WaitForHeaterTemperature blocks the run until the heater-shaker reaches celsius.
func (d *Dispatcher) WaitForHeaterTemperature(ctx context.Context, moduleID string, celsius float64, runID string) (*opentrons.Command, error) {
	return d.temperatureCommand(ctx, "heaterShaker/waitForTemperature", moduleID, celsius, runID)
}

// DeactivateHeater turns the heater-shaker heater off.
func (d *Dispatcher) DeactivateHeater(ctx context.Context, moduleID, runID string) (*opentrons.Command, error) {
	return d.moduleCommand(ctx, "heaterShaker/deactivateHeater", moduleID, runID)
}

// SetAndWaitForShakeSpeed spins the heater-shaker up to rpm, which must be
// within 200-3000.
func (d *Dispatcher) SetAndWaitForShakeSpeed(ctx context.Context, moduleID string, rpm float64, runID string) (*opentrons.Command, error) {
	const commandType = "heaterShaker/setAndWaitForShakeSpeed"
	if err := requireID(commandType, "module id", moduleID); err != nil {
		return nil, err
	}
	if math.IsNaN(rpm) || rpm < minShakeRPM || rpm > maxShakeRPM {
		return nil, invalid(commandType, "shake speed must be within %.0f-%.0f rpm, got %v", minShakeRPM, maxShakeRPM, rpm)
	}
	return d.withRunContext(ctx, commandType, shakeParams{ModuleID: moduleID, RPM: rpm}, runID)
}

// DeactivateShaker stops the heater-shaker.
func (d *Dispatcher) DeactivateShaker(ctx context.Context, moduleID, runID string) (*opentrons.Command, error) {
	return d.moduleCommand(ctx, "heaterShaker/deactivateShaker", moduleID, runID)
}

// SetTemperatureModuleTarget sets a temperature module target without waiting.
func (d *Dispatcher) SetTemperatureModuleTarget(ctx context.Context, moduleID string, celsius float64, runID string) (*opentrons.Command, error) {
	return d.temperatureCommand(ctx, "temperatureModule/setTargetTemperature", moduleID, celsius, runID)
}

// WaitForTemperatureModule blocks the run until the temperature module
// reaches celsius.
func (d *Dispatcher) WaitForTemperatureModule(ctx context.Context, moduleID string, celsius float64, runID string) (*opentrons.Command, error) {
	return d.temperatureCommand(ctx, "temperatureModule/waitForTemperature", moduleID, celsius, runID)
}

// DeactivateTemperatureModule turns a temperature module off.
func (d *Dispatcher) DeactivateTemperatureModule(ctx context.Context, moduleID, runID string) (*opentrons.Command, error) {
	return d.moduleCommand(ctx, "temperatureModule/deactivate", moduleID, runID)
}
