package main

import (
	"context"

	"github.com/spf13/cobra"

	"otctl/internal/commands"
	"otctl/internal/services/opentrons"
)

func newModuleCommand(ctx *commandContext) *cobra.Command {
	moduleCmd := &cobra.Command{
		Use:   "module",
		Short: "Load and drive hardware modules",
	}
	moduleCmd.AddCommand(
		newModuleListCommand(ctx),
		newModuleLoadCommand(ctx),
		newLatchCommand(ctx),
		newModuleTempCommand(ctx, "heat", "Set the heater-shaker target temperature", (*commands.Dispatcher).SetHeaterTemperature),
		newModuleTempCommand(ctx, "wait-heat", "Wait for the heater-shaker to reach a temperature", (*commands.Dispatcher).WaitForHeaterTemperature),
		newModuleSimpleCommand(ctx, "stop-heat", "Turn off the heater-shaker heater", (*commands.Dispatcher).DeactivateHeater),
		newShakeCommand(ctx),
		newModuleSimpleCommand(ctx, "stop-shake", "Stop shaking", (*commands.Dispatcher).DeactivateShaker),
		newTemperatureModuleCommand(ctx),
	)
	return moduleCmd
}

func newModuleListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connected modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.robotClient()
			if err != nil {
				return err
			}
			d, err := commands.NewForClient(client, commands.WithLogger(ctx.log()))
			if err != nil {
				return err
			}
			modules, err := d.ListConnectedModules(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, modules)
			}
			rows := make([][]string, 0, len(modules))
			for _, m := range modules {
				rows = append(rows, []string{m.ID, m.ModuleModel, m.ModuleType, m.SerialNumber, m.FirmwareVersion})
			}
			printTable(cmd.OutOrStdout(), "No modules connected", []string{"ID", "Model", "Type", "Serial", "Firmware"}, rows, nil)
			return nil
		},
	}
}

func newModuleLoadCommand(ctx *commandContext) *cobra.Command {
	var model, moduleID string
	var slot int
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a module into a deck slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				result, err := d.LoadModule(c, model, slot, moduleID, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Module model (e.g. heaterShakerModuleV1)")
	cmd.Flags().IntVar(&slot, "slot", 0, "Deck slot (1-12)")
	cmd.Flags().StringVar(&moduleID, "id", "", "Module id to assign")
	return cmd
}

type moduleFunc func(*commands.Dispatcher, context.Context, string, string) (*opentrons.Command, error)

type moduleValueFunc func(*commands.Dispatcher, context.Context, string, float64, string) (*opentrons.Command, error)

func newModuleSimpleCommand(ctx *commandContext, use, short string, fn moduleFunc) *cobra.Command {
	var moduleID string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				result, err := fn(d, c, moduleID, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&moduleID, "module", "", "Module id")
	return cmd
}

func newModuleValueCommand(ctx *commandContext, use, short, flag, usage string, fn moduleValueFunc) *cobra.Command {
	var moduleID string
	var value float64
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, flag); err != nil {
				return err
			}
			return ctx.withDispatcher(cmd, func(c context.Context, d *commands.Dispatcher) error {
				result, err := fn(d, c, moduleID, value, ctx.runID())
				if err != nil {
					return err
				}
				return printCommand(ctx, cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&moduleID, "module", "", "Module id")
	cmd.Flags().Float64Var(&value, flag, 0, usage)
	return cmd
}

func newModuleTempCommand(ctx *commandContext, use, short string, fn moduleValueFunc) *cobra.Command {
	return newModuleValueCommand(ctx, use, short, "celsius", "Temperature (°C)", fn)
}

func newShakeCommand(ctx *commandContext) *cobra.Command {
	return newModuleValueCommand(ctx, "shake", "Shake at a speed and wait until it is reached", "rpm", "Shake speed (rpm)", (*commands.Dispatcher).SetAndWaitForShakeSpeed)
}

func newLatchCommand(ctx *commandContext) *cobra.Command {
	latchCmd := &cobra.Command{
		Use:   "latch",
		Short: "Open or close the heater-shaker labware latch",
	}
	latchCmd.AddCommand(
		newModuleSimpleCommand(ctx, "open", "Open the labware latch", (*commands.Dispatcher).OpenLabwareLatch),
		newModuleSimpleCommand(ctx, "close", "Close the labware latch", (*commands.Dispatcher).CloseLabwareLatch),
	)
	return latchCmd
}

func newTemperatureModuleCommand(ctx *commandContext) *cobra.Command {
	tempCmd := &cobra.Command{
		Use:   "temp",
		Short: "Drive a temperature module",
	}
	tempCmd.AddCommand(
		newModuleTempCommand(ctx, "set", "Set the target temperature", (*commands.Dispatcher).SetTemperatureModuleTarget),
		newModuleTempCommand(ctx, "wait", "Wait for a temperature", (*commands.Dispatcher).WaitForTemperatureModule),
		newModuleSimpleCommand(ctx, "off", "Turn the temperature module off", (*commands.Dispatcher).DeactivateTemperatureModule),
	)
	return tempCmd
}
