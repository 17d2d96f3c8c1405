package commands

import (
	"context"
	"fmt"

	"otctl/internal/logging"
)

// defaultTransferFlowRate applies to any transfer flow rate left at zero.
const defaultTransferFlowRate = 300.0

// TransferToLoc moves liquid from a known well to an arbitrary deck position.
// The blow-out step runs unless SkipBlowout is set.
type TransferToLoc struct {
	PipetteID     string
	Source        Well
	Destination   Coordinates
	DispenseDepth float64
	Volume        float64
	AspirateRate  float64
	DispenseRate  float64
	BlowoutRate   float64
	SkipBlowout   bool
}

// TransferFromLoc moves liquid from an arbitrary deck position into a known
// well. No blow-out step is issued in this direction.
type TransferFromLoc struct {
	PipetteID     string
	Source        Coordinates
	AspirateDepth float64
	Destination   Well
	Volume        float64
	AspirateRate  float64
	DispenseRate  float64
	PushOut       float64
}

func (t TransferToLoc) withDefaults() TransferToLoc {
	t.AspirateRate = orDefaultRate(t.AspirateRate)
	t.DispenseRate = orDefaultRate(t.DispenseRate)
	t.BlowoutRate = orDefaultRate(t.BlowoutRate)
	return t
}

func (t TransferFromLoc) withDefaults() TransferFromLoc {
	t.AspirateRate = orDefaultRate(t.AspirateRate)
	t.DispenseRate = orDefaultRate(t.DispenseRate)
	return t
}

func orDefaultRate(rate float64) float64 {
	if rate == 0 {
		return defaultTransferFlowRate
	}
	return rate
}

// TransferToLoc aspirates from the source well, moves above the destination,
// lowers by DispenseDepth, dispenses in place, optionally blows out, and
// rises back to the destination height. Every input is validated before the
// first command is sent; a failure part way through stops the sequence.
func (d *Dispatcher) TransferToLoc(ctx context.Context, req TransferToLoc, runID string) error {
	const op = "transfer to location"
	req = req.withDefaults()
	var blowoutErr error
	if !req.SkipBlowout {
		blowoutErr = requireFlowRate(op, req.BlowoutRate)
	}
	if err := firstError(
		(Aspirate{PipetteID: req.PipetteID, Well: req.Source, Volume: req.Volume, FlowRate: req.AspirateRate}).validate(op),
		requireFlowRate(op, req.DispenseRate),
		blowoutErr,
		validateCoordinates(op, req.Destination),
		requireFinite(op, "dispense depth", req.DispenseDepth),
	); err != nil {
		return err
	}
	runID, err := d.ResolveRunID(ctx, runID)
	if err != nil {
		return err
	}

	above := req.Destination
	lowered := above.Lowered(req.DispenseDepth)
	d.logger.Info("transfer to location",
		logging.RunID(runID),
		logging.Well("source", req.Source.LabwareID, req.Source.WellName),
		logging.String("destination", above.String()),
		logging.Volume(req.Volume),
	)

	steps := []step{
		{"aspirate", func() error {
			_, err := d.Aspirate(ctx, Aspirate{PipetteID: req.PipetteID, Well: req.Source, Volume: req.Volume, FlowRate: req.AspirateRate}, runID)
			return err
		}},
		{"move above destination", func() error {
			_, err := d.MoveToCoords(ctx, req.PipetteID, above, runID)
			return err
		}},
		{"lower to dispense height", func() error {
			_, err := d.MoveToCoords(ctx, req.PipetteID, lowered, runID)
			return err
		}},
		{"dispense", func() error {
			_, err := d.DispenseInPlace(ctx, req.PipetteID, req.Volume, req.DispenseRate, runID)
			return err
		}},
	}
	if !req.SkipBlowout {
		steps = append(steps, step{"blow out", func() error {
			_, err := d.BlowOutInPlace(ctx, req.PipetteID, req.BlowoutRate, runID)
			return err
		}})
	}
	steps = append(steps, step{"raise", func() error {
		_, err := d.MoveToCoords(ctx, req.PipetteID, above, runID)
		return err
	}})
	return runSteps(op, steps)
}

// TransferFromLoc moves above the source position, lowers by AspirateDepth,
// aspirates in place, then dispenses into the destination well.
func (d *Dispatcher) TransferFromLoc(ctx context.Context, req TransferFromLoc, runID string) error {
	const op = "transfer from location"
	req = req.withDefaults()
	if err := firstError(
		(Dispense{PipetteID: req.PipetteID, Well: req.Destination, Volume: req.Volume, FlowRate: req.DispenseRate, PushOut: req.PushOut}).validate(op),
		requireFlowRate(op, req.AspirateRate),
		validateCoordinates(op, req.Source),
		requireFinite(op, "aspirate depth", req.AspirateDepth),
	); err != nil {
		return err
	}
	runID, err := d.ResolveRunID(ctx, runID)
	if err != nil {
		return err
	}

	above := req.Source
	lowered := above.Lowered(req.AspirateDepth)
	d.logger.Info("transfer from location",
		logging.RunID(runID),
		logging.String("source", above.String()),
		logging.Well("destination", req.Destination.LabwareID, req.Destination.WellName),
		logging.Volume(req.Volume),
	)

	return runSteps(op, []step{
		{"move above source", func() error {
			_, err := d.MoveToCoords(ctx, req.PipetteID, above, runID)
			return err
		}},
		{"lower to aspirate height", func() error {
			_, err := d.MoveToCoords(ctx, req.PipetteID, lowered, runID)
			return err
		}},
		{"aspirate", func() error {
			_, err := d.AspirateInPlace(ctx, req.PipetteID, req.Volume, req.AspirateRate, runID)
			return err
		}},
		{"dispense", func() error {
			_, err := d.Dispense(ctx, Dispense{
				PipetteID: req.PipetteID,
				Well:      req.Destination,
				Volume:    req.Volume,
				FlowRate:  req.DispenseRate,
				PushOut:   req.PushOut,
			}, runID)
			return err
		}},
	})
}

type step struct {
	name string
	run  func() error
}

func runSteps(op string, steps []step) error {
	for i, s := range steps {
		if err := s.run(); err != nil {
			return fmt.Errorf("%s: step %d/%d (%s): %w", op, i+1, len(steps), s.name, err)
		}
	}
	return nil
}
