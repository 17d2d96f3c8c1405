package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"otctl/internal/services/opentrons"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Manage robot runs",
	}
	runCmd.AddCommand(newRunCreateCommand(ctx))
	runCmd.AddCommand(newRunCurrentCommand(ctx))
	runCmd.AddCommand(newRunListCommand(ctx))
	runCmd.AddCommand(newRunShowCommand(ctx))
	runCmd.AddCommand(newRunCommandsCommand(ctx))
	for _, action := range []struct {
		name  string
		short string
	}{
		{opentrons.ActionPlay, "Start or resume a run"},
		{opentrons.ActionPause, "Pause a run"},
		{opentrons.ActionStop, "Stop a run"},
	} {
		runCmd.AddCommand(newRunActionCommand(ctx, action.name, action.short))
	}
	return runCmd
}

func newRunCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create an empty run for setup commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.robotClient()
			if err != nil {
				return err
			}
			var run *opentrons.Run
			err = ctx.withLock(func() error {
				run, err = client.CreateRun(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, run)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created run %s\n", run.ID)
			return nil
		},
	}
}

func newRunCurrentCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the run commands will target",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.robotClient()
			if err != nil {
				return err
			}
			runID, err := ctx.resolveRun(cmd.Context(), client)
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, map[string]string{"run_id": runID})
			}
			fmt.Fprintln(cmd.OutOrStdout(), runID)
			return nil
		},
	}
}

func newRunListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List runs on the robot",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.robotClient()
			if err != nil {
				return err
			}
			runs, current, err := client.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, map[string]any{"runs": runs, "current": current})
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				marker := ""
				if run.ID == current {
					marker = "*"
				}
				rows = append(rows, []string{marker, run.ID, displayStatus(run.Status), formatTime(run.CreatedAt)})
			}
			printTable(cmd.OutOrStdout(), "No runs", []string{"", "Run", "Status", "Created"}, rows, nil)
			return nil
		},
	}
}

func newRunShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show one run (default: the run commands will target)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.robotClient()
			if err != nil {
				return err
			}
			var runID string
			if len(args) == 1 {
				runID = args[0]
			} else if runID, err = ctx.resolveRun(cmd.Context(), client); err != nil {
				return err
			}
			run, err := client.GetRun(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, run)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:      %s\n", run.ID)
			fmt.Fprintf(out, "Status:   %s\n", displayStatus(run.Status))
			fmt.Fprintf(out, "Current:  %s\n", yesNo(run.Current))
			fmt.Fprintf(out, "Created:  %s\n", formatTime(run.CreatedAt))
			if len(run.Actions) > 0 {
				last := run.Actions[len(run.Actions)-1]
				fmt.Fprintf(out, "Last action: %s\n", last.ActionType)
			}
			return nil
		},
	}
}

func newRunCommandsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List commands enqueued on the run",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.robotClient()
			if err != nil {
				return err
			}
			runID, err := ctx.resolveRun(cmd.Context(), client)
			if err != nil {
				return err
			}
			list, err := client.ListCommands(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, list)
			}
			rows := make([][]string, 0, len(list))
			for i, c := range list {
				rows = append(rows, []string{fmt.Sprint(i + 1), c.ID, c.CommandType, displayStatus(c.Status), string(c.Intent)})
			}
			printTable(cmd.OutOrStdout(), "No commands on run "+runID, []string{"#", "Command", "Type", "Status", "Intent"}, rows, []columnAlignment{alignRight})
			return nil
		},
	}
}

func newRunActionCommand(ctx *commandContext, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.robotClient()
			if err != nil {
				return err
			}
			runID, err := ctx.resolveRun(cmd.Context(), client)
			if err != nil {
				return err
			}
			if err := ctx.withLock(func() error {
				return client.RunAction(cmd.Context(), runID, action)
			}); err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, map[string]string{"run_id": runID, "action": action})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to run %s\n", action, runID)
			return nil
		},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
