package commands

import (
	"context"

	"otctl/internal/services/opentrons"
)

// Aspirate draws Volume µL from Well at FlowRate µL/s.
type Aspirate struct {
	PipetteID string
	Well      Well
	Volume    float64
	FlowRate  float64
}

// Dispense expels Volume µL into Well. PushOut is the extra plunger travel
// past the bottom position.
type Dispense struct {
	PipetteID string
	Well      Well
	Volume    float64
	FlowRate  float64
	PushOut   float64
}

// Blowout expels residual liquid into Well.
type Blowout struct {
	PipetteID string
	Well      Well
	FlowRate  float64
}

type aspirateParams struct {
	wellParams
	FlowRate  float64 `json:"flowRate"`
	Volume    float64 `json:"volume"`
	PipetteID string  `json:"pipetteId"`
}

type dispenseParams struct {
	aspirateParams
	PushOut float64 `json:"pushOut"`
}

type blowoutParams struct {
	wellParams
	FlowRate  float64 `json:"flowRate"`
	PipetteID string  `json:"pipetteId"`
}

type inPlaceParams struct {
	Volume    float64 `json:"volume"`
	FlowRate  float64 `json:"flowRate"`
	PipetteID string  `json:"pipetteId"`
}

type blowOutInPlaceParams struct {
	FlowRate  float64 `json:"flowRate"`
	PipetteID string  `json:"pipetteId"`
}

func (a Aspirate) validate(op string) error {
	return firstError(
		requireID(op, "pipette id", a.PipetteID),
		a.Well.validate(op),
		requireVolume(op, a.Volume),
		requireFlowRate(op, a.FlowRate),
	)
}

func (a Dispense) validate(op string) error {
	if err := (Aspirate{PipetteID: a.PipetteID, Well: a.Well, Volume: a.Volume, FlowRate: a.FlowRate}).validate(op); err != nil {
		return err
	}
	if err := requireFinite(op, "push out", a.PushOut); err != nil {
		return err
	}
	if a.PushOut < 0 {
		return invalid(op, "push out must be >= 0, got %v", a.PushOut)
	}
	return nil
}

// Aspirate enqueues an aspirate from a well.
func (d *Dispatcher) Aspirate(ctx context.Context, req Aspirate, runID string) (*opentrons.Command, error) {
	if err := req.validate("aspirate"); err != nil {
		return nil, err
	}
	params := aspirateParams{
		wellParams: req.Well.params(),
		FlowRate:   req.FlowRate,
		Volume:     req.Volume,
		PipetteID:  req.PipetteID,
	}
	return d.withRunContext(ctx, "aspirate", params, runID)
}

// Dispense enqueues a dispense into a well.
func (d *Dispatcher) Dispense(ctx context.Context, req Dispense, runID string) (*opentrons.Command, error) {
	if err := req.validate("dispense"); err != nil {
		return nil, err
	}
	params := dispenseParams{
		aspirateParams: aspirateParams{
			wellParams: req.Well.params(),
			FlowRate:   req.FlowRate,
			Volume:     req.Volume,
			PipetteID:  req.PipetteID,
		},
		PushOut: req.PushOut,
	}
	return d.withRunContext(ctx, "dispense", params, runID)
}

// Blowout enqueues a blow-out into a well.
func (d *Dispatcher) Blowout(ctx context.Context, req Blowout, runID string) (*opentrons.Command, error) {
	const op = "blowout"
	if err := firstError(
		requireID(op, "pipette id", req.PipetteID),
		req.Well.validate(op),
		requireFlowRate(op, req.FlowRate),
	); err != nil {
		return nil, err
	}
	params := blowoutParams{
		wellParams: req.Well.params(),
		FlowRate:   req.FlowRate,
		PipetteID:  req.PipetteID,
	}
	return d.withRunContext(ctx, "blowout", params, runID)
}

// AspirateInPlace aspirates at the pipette's current position.
func (d *Dispatcher) AspirateInPlace(ctx context.Context, pipetteID string, volume, flowRate float64, runID string) (*opentrons.Command, error) {
	if err := validateInPlace("aspirate in place", pipetteID, volume, flowRate); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, "aspirateInPlace", inPlaceParams{Volume: volume, FlowRate: flowRate, PipetteID: pipetteID}, runID)
}

// DispenseInPlace dispenses at the pipette's current position.
func (d *Dispatcher) DispenseInPlace(ctx context.Context, pipetteID string, volume, flowRate float64, runID string) (*opentrons.Command, error) {
	if err := validateInPlace("dispense in place", pipetteID, volume, flowRate); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, "dispenseInPlace", inPlaceParams{Volume: volume, FlowRate: flowRate, PipetteID: pipetteID}, runID)
}

// BlowOutInPlace blows out at the pipette's current position.
func (d *Dispatcher) BlowOutInPlace(ctx context.Context, pipetteID string, flowRate float64, runID string) (*opentrons.Command, error) {
	const op = "blow out in place"
	if err := firstError(requireID(op, "pipette id", pipetteID), requireFlowRate(op, flowRate)); err != nil {
		return nil, err
	}
	return d.withRunContext(ctx, "blowOutInPlace", blowOutInPlaceParams{FlowRate: flowRate, PipetteID: pipetteID}, runID)
}

func validateInPlace(op, pipetteID string, volume, flowRate float64) error {
	return firstError(
		requireID(op, "pipette id", pipetteID),
		requireVolume(op, volume),
		requireFlowRate(op, flowRate),
	)
}
