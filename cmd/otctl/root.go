package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var runFlag string
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &runFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "otctl",
		Short:         "Drive an Opentrons robot over its HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&runFlag, "run", "", "Run id to target (defaults to the configured or current run)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Output as JSON")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newPipettesCommand(ctx))
	rootCmd.AddCommand(newPipetteCommand(ctx))
	rootCmd.AddCommand(newLabwareCommand(ctx))
	rootCmd.AddCommand(newGripperCommand(ctx))
	rootCmd.AddCommand(newModuleCommand(ctx))
	rootCmd.AddCommand(newTransferCommand(ctx))
	rootCmd.AddCommand(newJournalCommand(ctx))

	return rootCmd
}
