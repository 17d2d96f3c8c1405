package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"otctl/internal/commands"
	"otctl/internal/services/opentrons"
)

func newPipettesCommand(ctx *commandContext) *cobra.Command {
	pipettesCmd := &cobra.Command{
		Use:   "pipettes",
		Short: "Inspect and load the attached pipettes",
	}
	pipettesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the instruments on each mount",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.robotClient()
			if err != nil {
				return err
			}
			mounted, err := client.Pipettes(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, mounted)
			}
			rows := [][]string{
				pipetteRow("left", mounted.Left),
				pipetteRow("right", mounted.Right),
			}
			printTable(cmd.OutOrStdout(), "", []string{"Mount", "Name", "Model", "Serial"}, rows, nil)
			return nil
		},
	})
	pipettesCmd.AddCommand(&cobra.Command{
		Use:   "mount",
		Short: "Load every attached pipette into the run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				left, right, err := d.AddMountedPipettes(c, ctx.runID())
				if err != nil {
					return err
				}
				if ctx.jsonMode() {
					return writeJSON(cmd, map[string]*commands.LoadedPipette{"left": left, "right": right})
				}
				rows := [][]string{loadedRow(commands.MountLeft, left), loadedRow(commands.MountRight, right)}
				printTable(cmd.OutOrStdout(), "", []string{"Mount", "Name", "Pipette id"}, rows, nil)
				return nil
			})
		},
	})
	return pipettesCmd
}

func pipetteRow(mount string, info opentrons.PipetteInfo) []string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return []string{mount, deref(info.Name), deref(info.Model), deref(info.ID)}
}

func loadedRow(mount commands.Mount, loaded *commands.LoadedPipette) []string {
	if loaded == nil {
		return []string{string(mount), "empty", ""}
	}
	return []string{string(mount), loaded.Name, loaded.PipetteID}
}

func newPipetteCommand(ctx *commandContext) *cobra.Command {
	pipetteCmd := &cobra.Command{
		Use:   "pipette",
		Short: "Issue pipette commands",
	}
	pipetteCmd.AddCommand(
		newPipetteLoadCommand(ctx),
		newTipCommand(ctx, "pick-up-tip", "Pick up a tip from a well", (*commands.Dispatcher).PickUpTip),
		newTipCommand(ctx, "drop-tip", "Drop the tip into a well", (*commands.Dispatcher).DropTip),
		newDropTipTrashCommand(ctx),
		newAspirateCommand(ctx),
		newDispenseCommand(ctx),
		newBlowoutCommand(ctx),
		newPrepareCommand(ctx),
		newMoveCommand(ctx),
		newMoveRelativeCommand(ctx),
		newRetractCommand(ctx),
	)
	return pipetteCmd
}

func newPipetteLoadCommand(ctx *commandContext) *cobra.Command {
	var name, mount string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a pipette on a mount",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := commands.ParseMount(mount)
			if err != nil {
				return err
			}
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				loaded, err := d.LoadPipette(c, name, m, ctx.runID())
				if err != nil {
					return err
				}
				if ctx.jsonMode() {
					return writeJSON(cmd, loaded)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s on %s as %s\n", loaded.Name, loaded.Mount, loaded.PipetteID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Pipette name (e.g. p1000_single_flex)")
	cmd.Flags().StringVar(&mount, "mount", "", "Mount: left or right")
	return cmd
}

type wellCommandFunc func(*commands.Dispatcher, context.Context, string, commands.Well, string) (*opentrons.Command, error)

func newTipCommand(ctx *commandContext, use, short string, fn wellCommandFunc) *cobra.Command {
	var pipette string
	var well wellFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				result, err := fn(d, c, pipette, well.target(), ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&pipette, "pipette", "", "Pipette id")
	well.register(cmd)
	return cmd
}

func newDropTipTrashCommand(ctx *commandContext) *cobra.Command {
	var pipette string
	var offset offsetFlags
	cmd := &cobra.Command{
		Use:   "drop-tip-trash",
		Short: "Move over the fixed trash and drop the tip",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				if _, err := d.MoveToTrash(c, pipette, offset.offset(), ctx.runID()); err != nil {
					return err
				}
				result, err := d.DropTipInPlace(c, pipette, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&pipette, "pipette", "", "Pipette id")
	offset.register(cmd, "", "Trash")
	return cmd
}

func newAspirateCommand(ctx *commandContext) *cobra.Command {
	var pipette string
	var volume, flowRate float64
	var well wellFlags
	cmd := &cobra.Command{
		Use:   "aspirate",
		Short: "Aspirate from a well, or in place when no well is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "volume", "flow-rate"); err != nil {
				return err
			}
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				var (
					result *opentrons.Command
					err    error
				)
				if well.set() {
					result, err = d.Aspirate(c, commands.Aspirate{PipetteID: pipette, Well: well.target(), Volume: volume, FlowRate: flowRate}, ctx.runID())
				} else {
					result, err = d.AspirateInPlace(c, pipette, volume, flowRate, ctx.runID())
				}
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&pipette, "pipette", "", "Pipette id")
	cmd.Flags().Float64Var(&volume, "volume", 0, "Volume (µL)")
	cmd.Flags().Float64Var(&flowRate, "flow-rate", 0, "Flow rate (µL/s)")
	well.register(cmd)
	return cmd
}

func newDispenseCommand(ctx *commandContext) *cobra.Command {
	var pipette string
	var volume, flowRate, pushOut float64
	var well wellFlags
	cmd := &cobra.Command{
		Use:   "dispense",
		Short: "Dispense into a well, or in place when no well is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "volume", "flow-rate"); err != nil {
				return err
			}
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				var (
					result *opentrons.Command
					err    error
				)
				if well.set() {
					result, err = d.Dispense(c, commands.Dispense{PipetteID: pipette, Well: well.target(), Volume: volume, FlowRate: flowRate, PushOut: pushOut}, ctx.runID())
				} else {
					result, err = d.DispenseInPlace(c, pipette, volume, flowRate, ctx.runID())
				}
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&pipette, "pipette", "", "Pipette id")
	cmd.Flags().Float64Var(&volume, "volume", 0, "Volume (µL)")
	cmd.Flags().Float64Var(&flowRate, "flow-rate", 0, "Flow rate (µL/s)")
	cmd.Flags().Float64Var(&pushOut, "push-out", 0, "Push-out volume past the bottom position (µL), well dispenses only")
	well.register(cmd)
	return cmd
}

func newBlowoutCommand(ctx *commandContext) *cobra.Command {
	var pipette string
	var flowRate float64
	var well wellFlags
	cmd := &cobra.Command{
		Use:   "blowout",
		Short: "Blow out into a well, or in place when no well is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "flow-rate"); err != nil {
				return err
			}
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				var (
					result *opentrons.Command
					err    error
				)
				if well.set() {
					result, err = d.Blowout(c, commands.Blowout{PipetteID: pipette, Well: well.target(), FlowRate: flowRate}, ctx.runID())
				} else {
					result, err = d.BlowOutInPlace(c, pipette, flowRate, ctx.runID())
				}
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&pipette, "pipette", "", "Pipette id")
	cmd.Flags().Float64Var(&flowRate, "flow-rate", 0, "Flow rate (µL/s)")
	well.register(cmd)
	return cmd
}

func newPrepareCommand(ctx *commandContext) *cobra.Command {
	var pipette string
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Move the plunger to its aspirate-ready position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				result, err := d.PrepareToAspirate(c, pipette, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&pipette, "pipette", "", "Pipette id")
	return cmd
}

func newMoveCommand(ctx *commandContext) *cobra.Command {
	var pipette string
	var target coordinateFlags
	var well wellFlags
	var minZ, speed float64
	var forceDirect bool
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move the pipette to coordinates or to a well",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !well.set() {
				if err := requireFlags(cmd, "x", "y", "z"); err != nil {
					return err
				}
			}
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				if well.set() {
					result, err := d.MoveToWell(c, pipette, well.target(), ctx.runID())
					if err != nil {
						return err
					}
					return printCommand(ctx, cmd, result)
				}
				req := commands.ArmMove{PipetteID: pipette, Coordinates: target.coordinates(), ForceDirect: forceDirect}
				if cmd.Flags().Changed("min-z") {
					req.MinimumZHeight = &minZ
				}
				if cmd.Flags().Changed("speed") {
					req.Speed = &speed
				}
				result, err := d.MoveArm(c, req, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&pipette, "pipette", "", "Pipette id")
	target.register(cmd, "Target")
	well.register(cmd)
	cmd.Flags().Float64Var(&minZ, "min-z", 0, "Minimum travel height (mm)")
	cmd.Flags().Float64Var(&speed, "speed", 0, "Gantry speed (mm/s)")
	cmd.Flags().BoolVar(&forceDirect, "force-direct", false, "Move in a straight line without arcing")
	return cmd
}

func newMoveRelativeCommand(ctx *commandContext) *cobra.Command {
	var pipette, axis string
	var distance float64
	cmd := &cobra.Command{
		Use:   "move-relative",
		Short: "Move the pipette along one axis",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				result, err := d.MoveRelative(c, pipette, commands.Axis(axis), distance, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&pipette, "pipette", "", "Pipette id")
	cmd.Flags().StringVar(&axis, "axis", "z", "Axis: x, y or z")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Distance (mm)")
	return cmd
}

func newRetractCommand(ctx *commandContext) *cobra.Command {
	var mount string
	cmd := &cobra.Command{
		Use:   "retract",
		Short: "Raise the Z axis of a mount",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := commands.ParseMount(mount)
			if err != nil {
				return err
			}
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				result, err := d.RetractAxis(c, m, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&mount, "mount", "", "Mount: left or right")
	return cmd
}
