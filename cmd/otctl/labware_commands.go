package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"otctl/internal/commands"
	"otctl/internal/services"
	"otctl/internal/services/opentrons"
)

func newLabwareCommand(ctx *commandContext) *cobra.Command {
	labwareCmd := &cobra.Command{
		Use:   "labware",
		Short: "Load and move labware on the deck",
	}
	labwareCmd.AddCommand(newLabwareLoadCommand(ctx), newLabwareMoveCommand(ctx))
	return labwareCmd
}

func newLabwareLoadCommand(ctx *commandContext) *cobra.Command {
	var req commands.LoadLabware
	var slot string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a labware definition into a deck slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := commands.SlotNumber(slot)
			if err != nil {
				return err
			}
			req.Slot = n
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				loaded, err := d.LoadLabware(c, req, ctx.runID())
				if err != nil {
					return err
				}
				if ctx.jsonMode() {
					return writeJSON(cmd, loaded)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s in %s as %s\n", req.LoadName, loaded.Location, loaded.LabwareID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.LoadName, "load-name", "", "Labware load name")
	cmd.Flags().StringVar(&req.Namespace, "namespace", "", "Definition namespace (default opentrons)")
	cmd.Flags().IntVar(&req.Version, "version", 0, "Definition version (default 1)")
	cmd.Flags().StringVar(&slot, "slot", "", "Deck slot: 1-12, or 13-16 / A4-D4 for staging areas")
	cmd.Flags().StringVar(&req.LabwareID, "id", "", "Labware id to assign")
	cmd.Flags().StringVar(&req.DisplayName, "display-name", "", "Display name")
	return cmd
}

func newLabwareMoveCommand(ctx *commandContext) *cobra.Command {
	var labwareID, slot, strategy string
	var pickUp, drop offsetFlags
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move loaded labware to another deck slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := commands.SlotNumber(slot)
			if err != nil {
				return err
			}
			req := commands.MoveLabware{
				LabwareID:  labwareID,
				Slot:       n,
				Strategy:   commands.Strategy(strategy),
				DropOffset: drop.offset(),
			}
			if offsetChanged(cmd, "pickup") {
				offset := pickUp.offset()
				req.PickUpOffset = &offset
			}
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				result, err := d.MoveLabware(c, req, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&labwareID, "labware", "", "Labware id")
	cmd.Flags().StringVar(&slot, "slot", "", "Destination slot: 1-12, or 13-16 / A4-D4 for staging areas")
	cmd.Flags().StringVar(&strategy, "strategy", string(commands.StrategyUsingGripper), "usingGripper, manualMoveWithPause or manualMoveWithoutPause")
	pickUp.register(cmd, "pickup", "Gripper pick-up")
	drop.register(cmd, "drop", "Gripper drop")
	return cmd
}

func offsetChanged(cmd *cobra.Command, prefix string) bool {
	for _, axis := range []string{"x", "y", "z"} {
		if cmd.Flags().Changed(prefix + "-offset-" + axis) {
			return true
		}
	}
	return false
}

func newGripperCommand(ctx *commandContext) *cobra.Command {
	gripperCmd := &cobra.Command{
		Use:   "gripper",
		Short: "Gripper maintenance commands",
	}
	var target string
	home := &cobra.Command{
		Use:   "home",
		Short: "Home the gripper jaw or Z axis",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				var fn func(context.Context, string) (*opentrons.Command, error)
				switch target {
				case "jaw":
					fn = d.HomeExtensionJaw
				case "z":
					fn = d.HomeExtensionZ
				case "gripper", "":
					fn = d.HomeGripper
				default:
					return services.Invalid("otctl", "gripper home", "unknown gripper axis %q (want jaw, z or gripper)", target)
				}
				result, err := fn(c, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	home.Flags().StringVar(&target, "axis", "gripper", "What to home: jaw, z or gripper")
	gripperCmd.AddCommand(home)
	return gripperCmd
}
