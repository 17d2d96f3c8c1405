package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"otctl/internal/services/opentrons"
)

// printCommand reports one enqueued command.
func printCommand(ctx *commandContext, cmd *cobra.Command, command *opentrons.Command) error {
	if ctx.jsonMode() {
		return writeJSON(cmd, command)
	}
	out := cmd.OutOrStdout()
	if command == nil {
		fmt.Fprintln(out, "Command enqueued")
		return nil
	}
	fmt.Fprintf(out, "%s %s [%s]\n", command.CommandType, command.ID, displayStatus(command.Status))
	return nil
}

// printDone reports a multi-step sequence that has no single command result.
func printDone(ctx *commandContext, cmd *cobra.Command, what string) error {
	if ctx.jsonMode() {
		return writeJSON(cmd, map[string]any{"completed": what})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s complete\n", what)
	return nil
}
