package commands

import (
	"context"
	"fmt"

	"otctl/internal/services/opentrons"
)

// Strategy selects how labware is physically moved.
type Strategy string

const (
	StrategyUsingGripper           Strategy = "usingGripper"
	StrategyManualMoveWithPause    Strategy = "manualMoveWithPause"
	StrategyManualMoveWithoutPause Strategy = "manualMoveWithoutPause"
)

// gripperClearanceZ is the default pick-up height offset for gripper moves.
const gripperClearanceZ = 49.85

// DefaultPickUpOffset returns the offset used when MoveLabware.PickUpOffset is nil.
func DefaultPickUpOffset() Offset {
	return Offset{Z: gripperClearanceZ}
}

// MoveLabware relocates loaded labware to a numbered deck slot. A nil
// PickUpOffset uses DefaultPickUpOffset; an empty Strategy uses the gripper.
type MoveLabware struct {
	LabwareID    string
	Slot         int
	Strategy     Strategy
	PickUpOffset *Offset
	DropOffset   Offset
}

type moveLabwareParams struct {
	LabwareID    string       `json:"labwareId"`
	NewLocation  DeckLocation `json:"newLocation"`
	Strategy     Strategy     `json:"strategy"`
	PickUpOffset Offset       `json:"pickUpOffset"`
	DropOffset   Offset       `json:"dropOffset"`
}

// MoveLabware enqueues a moveLabware command.
func (d *Dispatcher) MoveLabware(ctx context.Context, req MoveLabware, runID string) (*opentrons.Command, error) {
	const op = "move labware"
	if err := requireID(op, "labware id", req.LabwareID); err != nil {
		return nil, err
	}
	strategy := req.Strategy
	switch strategy {
	case "":
		strategy = StrategyUsingGripper
	case StrategyUsingGripper, StrategyManualMoveWithPause, StrategyManualMoveWithoutPause:
	default:
		return nil, invalid(op, "unsupported strategy %q", string(strategy))
	}
	location, err := EncodeDeckSlot(req.Slot)
	if err != nil {
		return nil, err
	}
	pickUp := DefaultPickUpOffset()
	if req.PickUpOffset != nil {
		pickUp = *req.PickUpOffset
	}
	params := moveLabwareParams{
		LabwareID:    req.LabwareID,
		NewLocation:  location,
		Strategy:     strategy,
		PickUpOffset: pickUp,
		DropOffset:   req.DropOffset,
	}
	return d.withRunContext(ctx, "moveLabware", params, runID)
}

const (
	defaultLabwareNamespace = "opentrons"
	defaultLabwareVersion   = 1
)

// LoadLabware places a labware definition on the deck. Namespace defaults to
// "opentrons" and Version to 1.
type LoadLabware struct {
	LoadName    string
	Namespace   string
	Version     int
	Slot        int
	LabwareID   string
	DisplayName string
}

type loadLabwareParams struct {
	Location    DeckLocation `json:"location"`
	LoadName    string       `json:"loadName"`
	Namespace   string       `json:"namespace"`
	Version     int          `json:"version"`
	LabwareID   string       `json:"labwareId,omitempty"`
	DisplayName string       `json:"displayName,omitempty"`
}

// LoadedLabware is the result of a loadLabware command.
type LoadedLabware struct {
	LabwareID string             `json:"labwareId"`
	Location  DeckLocation       `json:"location"`
	Command   *opentrons.Command `json:"command,omitempty"`
}

// LoadLabware enqueues a loadLabware command.
func (d *Dispatcher) LoadLabware(ctx context.Context, req LoadLabware, runID string) (*LoadedLabware, error) {
	const op = "load labware"
	if err := requireID(op, "load name", req.LoadName); err != nil {
		return nil, err
	}
	if req.Version < 0 {
		return nil, invalid(op, "version must be positive, got %d", req.Version)
	}
	location, err := EncodeDeckSlot(req.Slot)
	if err != nil {
		return nil, err
	}
	params := loadLabwareParams{
		Location:    location,
		LoadName:    req.LoadName,
		Namespace:   req.Namespace,
		Version:     req.Version,
		LabwareID:   req.LabwareID,
		DisplayName: req.DisplayName,
	}
	if params.Namespace == "" {
		params.Namespace = defaultLabwareNamespace
	}
	if params.Version == 0 {
		params.Version = defaultLabwareVersion
	}

	cmd, err := d.withRunContext(ctx, "loadLabware", params, runID)
	if err != nil {
		return nil, err
	}
	var result struct {
		LabwareID string `json:"labwareId"`
	}
	if err := cmd.DecodeResult(&result); err != nil {
		return nil, fmt.Errorf("decode loadLabware result: %w", err)
	}
	return &LoadedLabware{LabwareID: result.LabwareID, Location: location, Command: cmd}, nil
}
