package commands

import (
	"context"
	"fmt"
	"strings"

	"otctl/internal/logging"
	"otctl/internal/services/opentrons"
)

// LoadedPipette is the result of a loadPipette command, annotated with the
// instrument name that was requested.
type LoadedPipette struct {
	PipetteID string             `json:"pipetteId"`
	Name      string             `json:"name"`
	Mount     Mount              `json:"mount"`
	Command   *opentrons.Command `json:"command,omitempty"`
}

type loadPipetteParams struct {
	PipetteName string `json:"pipetteName"`
	Mount       Mount  `json:"mount"`
}

// LoadPipette registers the instrument on mount with the run.
func (d *Dispatcher) LoadPipette(ctx context.Context, pipetteName string, mount Mount, runID string) (*LoadedPipette, error) {
	const op = "load pipette"
	if err := mount.validate(op); err != nil {
		return nil, err
	}
	if err := requireID(op, "pipette name", pipetteName); err != nil {
		return nil, err
	}

	cmd, err := d.withRunContext(ctx, "loadPipette", loadPipetteParams{PipetteName: pipetteName, Mount: mount}, runID)
	if err != nil {
		return nil, err
	}
	var result struct {
		PipetteID string `json:"pipetteId"`
	}
	if err := cmd.DecodeResult(&result); err != nil {
		return nil, fmt.Errorf("decode loadPipette result: %w", err)
	}
	loaded := &LoadedPipette{PipetteID: result.PipetteID, Name: pipetteName, Mount: mount, Command: cmd}
	return loaded, nil
}

// AddMountedPipettes loads whatever is physically attached to each mount. An
// empty mount yields a nil result rather than an error.
func (d *Dispatcher) AddMountedPipettes(ctx context.Context, runID string) (left, right *LoadedPipette, err error) {
	if err := d.requireHardware("add mounted pipettes"); err != nil {
		return nil, nil, err
	}
	mounted, err := d.hardware.Pipettes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("query mounted pipettes: %w", err)
	}
	if mounted == nil {
		mounted = &opentrons.MountedPipettes{}
	}
	runID, err = d.ResolveRunID(ctx, runID)
	if err != nil {
		return nil, nil, err
	}

	left, err = d.loadIfMounted(ctx, mounted.Left, MountLeft, runID)
	if err != nil {
		return nil, nil, err
	}
	right, err = d.loadIfMounted(ctx, mounted.Right, MountRight, runID)
	if err != nil {
		return left, nil, err
	}
	return left, right, nil
}

func (d *Dispatcher) loadIfMounted(ctx context.Context, info opentrons.PipetteInfo, mount Mount, runID string) (*LoadedPipette, error) {
	if info.Name == nil || strings.TrimSpace(*info.Name) == "" {
		d.logger.Debug("mount empty", logging.Mount(string(mount)))
		return nil, nil
	}
	return d.LoadPipette(ctx, *info.Name, mount, runID)
}

type tipParams struct {
	wellParams
	PipetteID string `json:"pipetteId"`
}

// PickUpTip picks up a tip from well.
func (d *Dispatcher) PickUpTip(ctx context.Context, pipetteID string, well Well, runID string) (*opentrons.Command, error) {
	const op = "pick up tip"
	if err := firstError(requireID(op, "pipette id", pipetteID), well.validate(op)); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, "pickUpTip", tipParams{wellParams: well.params(), PipetteID: pipetteID}, runID)
}

// DropTip drops the attached tip into well.
func (d *Dispatcher) DropTip(ctx context.Context, pipetteID string, well Well, runID string) (*opentrons.Command, error) {
	const op = "drop tip"
	if err := firstError(requireID(op, "pipette id", pipetteID), well.validate(op)); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, "dropTip", tipParams{wellParams: well.params(), PipetteID: pipetteID}, runID)
}

type pipetteParams struct {
	PipetteID string `json:"pipetteId"`
}

// DropTipInPlace drops the tip wherever the pipette currently is.
func (d *Dispatcher) DropTipInPlace(ctx context.Context, pipetteID string, runID string) (*opentrons.Command, error) {
	if err := requireID("drop tip in place", "pipette id", pipetteID); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, "dropTipInPlace", pipetteParams{PipetteID: pipetteID}, runID)
}

// PrepareToAspirate moves the plunger to its aspirate-ready position.
func (d *Dispatcher) PrepareToAspirate(ctx context.Context, pipetteID string, runID string) (*opentrons.Command, error) {
	if err := requireID("prepare to aspirate", "pipette id", pipetteID); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, "prepareToAspirate", pipetteParams{PipetteID: pipetteID}, runID)
}
