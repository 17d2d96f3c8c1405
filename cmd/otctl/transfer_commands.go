package main

import (
	"context"

	"github.com/spf13/cobra"

	"otctl/internal/commands"
)

func newTransferCommand(ctx *commandContext) *cobra.Command {
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move liquid between a well and an arbitrary deck position",
	}
	transferCmd.AddCommand(newTransferToLocCommand(ctx), newTransferFromLocCommand(ctx))
	return transferCmd
}

type transferRates struct {
	aspirate, dispense float64
}

func (r *transferRates) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&r.aspirate, "aspirate-rate", 0, "Aspirate flow rate (µL/s, default 300)")
	cmd.Flags().Float64Var(&r.dispense, "dispense-rate", 0, "Dispense flow rate (µL/s, default 300)")
}

func newTransferToLocCommand(ctx *commandContext) *cobra.Command {
	var req commands.TransferToLoc
	var rates transferRates
	var source wellFlags
	var dest coordinateFlags
	cmd := &cobra.Command{
		Use:   "to-loc",
		Short: "Aspirate from a well and dispense at coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "volume", "x", "y", "z"); err != nil {
				return err
			}
			req.Source = source.target()
			req.Destination = dest.coordinates()
			req.AspirateRate = rates.aspirate
			req.DispenseRate = rates.dispense
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				if err := d.TransferToLoc(c, req, ctx.runID()); err != nil {
					return err
				}
				return printDone(ctx, cmd, "Transfer of "+formatFloat(req.Volume)+" µL")
			})
		},
	}
	cmd.Flags().StringVar(&req.PipetteID, "pipette", "", "Pipette id")
	cmd.Flags().Float64Var(&req.Volume, "volume", 0, "Volume (µL)")
	cmd.Flags().Float64Var(&req.DispenseDepth, "depth", 0, "Distance below the destination to dispense at (mm)")
	cmd.Flags().Float64Var(&req.BlowoutRate, "blowout-rate", 0, "Blow-out flow rate (µL/s, default 300)")
	cmd.Flags().BoolVar(&req.SkipBlowout, "skip-blowout", false, "Do not blow out after dispensing")
	rates.register(cmd)
	source.register(cmd)
	dest.register(cmd, "Destination")
	return cmd
}

func newTransferFromLocCommand(ctx *commandContext) *cobra.Command {
	var req commands.TransferFromLoc
	var rates transferRates
	var source coordinateFlags
	var dest wellFlags
	cmd := &cobra.Command{
		Use:   "from-loc",
		Short: "Aspirate at coordinates and dispense into a well",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "volume", "x", "y", "z"); err != nil {
				return err
			}
			req.Source = source.coordinates()
			req.Destination = dest.target()
			req.AspirateRate = rates.aspirate
			req.DispenseRate = rates.dispense
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				if err := d.TransferFromLoc(c, req, ctx.runID()); err != nil {
					return err
				}
				return printDone(ctx, cmd, "Transfer of "+formatFloat(req.Volume)+" µL")
			})
		},
	}
	cmd.Flags().StringVar(&req.PipetteID, "pipette", "", "Pipette id")
	cmd.Flags().Float64Var(&req.Volume, "volume", 0, "Volume (µL)")
	cmd.Flags().Float64Var(&req.AspirateDepth, "depth", 0, "Distance below the source to aspirate at (mm)")
	cmd.Flags().Float64Var(&req.PushOut, "push-out", 0, "Push-out volume on dispense (µL)")
	rates.register(cmd)
	source.register(cmd, "Source")
	dest.register(cmd)
	return cmd
}
