package commands

import (
	"context"
	"strings"

	"otctl/internal/services/opentrons"
)

const (
	// coordinateMoveMinimumZ is the travel height used by MoveToCoords.
	coordinateMoveMinimumZ = 500.0
	fixedTrashArea         = "fixedTrash"
)

// ArmMove positions the pipette at absolute coordinates. MinimumZHeight and
// Speed are omitted from the request when nil.
type ArmMove struct {
	PipetteID      string
	Coordinates    Coordinates
	MinimumZHeight *float64
	Speed          *float64
	ForceDirect    bool
}

type moveToCoordinatesParams struct {
	PipetteID      string      `json:"pipetteId"`
	Coordinates    Coordinates `json:"coordinates"`
	MinimumZHeight *float64    `json:"minimumZHeight,omitempty"`
	Speed          *float64    `json:"speed,omitempty"`
	ForceDirect    bool        `json:"forceDirect"`
}

// MoveArm enqueues a moveToCoordinates command.
func (d *Dispatcher) MoveArm(ctx context.Context, req ArmMove, runID string) (*opentrons.Command, error) {
	const op = "move arm"
	if err := firstError(requireID(op, "pipette id", req.PipetteID), validateCoordinates(op, req.Coordinates)); err != nil {
		return nil, err
	}
	if req.Speed != nil && *req.Speed <= 0 {
		return nil, invalid(op, "speed must be > 0, got %v", *req.Speed)
	}
	params := moveToCoordinatesParams{
		PipetteID:      req.PipetteID,
		Coordinates:    req.Coordinates,
		MinimumZHeight: req.MinimumZHeight,
		Speed:          req.Speed,
		ForceDirect:    req.ForceDirect,
	}
	return d.withRunContext(ctx, "moveToCoordinates", params, runID)
}

// MoveToCoords moves straight to coords with a fixed 500 mm minimum travel
// height and forceDirect set. The transfer sequences use it for every
// positioning step.
func (d *Dispatcher) MoveToCoords(ctx context.Context, pipetteID string, coords Coordinates, runID string) (*opentrons.Command, error) {
	minimumZ := coordinateMoveMinimumZ
	return d.MoveArm(ctx, ArmMove{
		PipetteID:      pipetteID,
		Coordinates:    coords,
		MinimumZHeight: &minimumZ,
		ForceDirect:    true,
	}, runID)
}

type moveRelativeParams struct {
	Axis      Axis    `json:"axis"`
	Distance  float64 `json:"distance"`
	PipetteID string  `json:"pipetteId"`
}

// MoveRelative moves the pipette distance millimetres along one axis.
func (d *Dispatcher) MoveRelative(ctx context.Context, pipetteID string, axis Axis, distance float64, runID string) (*opentrons.Command, error) {
	const op = "move relative"
	if err := firstError(requireID(op, "pipette id", pipetteID), requireFinite(op, "distance", distance)); err != nil {
		return nil, err
	}
	axis = Axis(strings.ToLower(string(axis)))
	switch axis {
	case AxisX, AxisY, AxisZ:
	default:
		return nil, invalid(op, "axis must be x, y or z, got %q", string(axis))
	}
	return d.withRunContext(ctx, "moveRelative", moveRelativeParams{Axis: axis, Distance: distance, PipetteID: pipetteID}, runID)
}

type moveToWellParams struct {
	wellParams
	PipetteID string `json:"pipetteId"`
}

// MoveToWell moves the pipette to the top of well plus its offset.
func (d *Dispatcher) MoveToWell(ctx context.Context, pipetteID string, well Well, runID string) (*opentrons.Command, error) {
	const op = "move to well"
	if err := firstError(requireID(op, "pipette id", pipetteID), well.validate(op)); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, "moveToWell", moveToWellParams{wellParams: well.params(), PipetteID: pipetteID}, runID)
}

type dropTipAreaParams struct {
	PipetteID             string       `json:"pipetteId"`
	AddressableAreaName   string       `json:"addressableAreaName"`
	WellName              string       `json:"wellName"`
	WellLocation          WellLocation `json:"wellLocation"`
	AlternateDropLocation bool         `json:"alternateDropLocation"`
}

// MoveToTrash positions the pipette over the fixed trash ready to drop its
// tip.
func (d *Dispatcher) MoveToTrash(ctx context.Context, pipetteID string, offset Offset, runID string) (*opentrons.Command, error) {
	if err := requireID("move to trash", "pipette id", pipetteID); err != nil {
		return nil, err
	}
	params := dropTipAreaParams{
		PipetteID:           pipetteID,
		AddressableAreaName: fixedTrashArea,
		WellName:            "A1",
		WellLocation:        WellLocation{Origin: OriginDefault, Offset: offset},
	}
	return d.withRunContext(ctx, "moveToAddressableAreaForDropTip", params, runID)
}

type retractAxisParams struct {
	Axis string `json:"axis"`
}

// RetractAxis raises the Z axis of the pipette on mount.
func (d *Dispatcher) RetractAxis(ctx context.Context, mount Mount, runID string) (*opentrons.Command, error) {
	if err := mount.validate("retract axis"); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, "retractAxis", retractAxisParams{Axis: string(mount) + "Z"}, runID)
}

func validateCoordinates(op string, c Coordinates) error {
	return firstError(
		requireFinite(op, "x", c.X),
		requireFinite(op, "y", c.Y),
		requireFinite(op, "z", c.Z),
	)
}
