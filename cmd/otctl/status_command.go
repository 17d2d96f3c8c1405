package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"otctl/internal/preflight"
)

type statusReport struct {
	Robot  string               `json:"robot"`
	Checks []preflight.Result   `json:"checks"`
	Probe  preflight.RobotProbe `json:"probe"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check robot connectivity, current run, and local state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.robotClient()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg, client)
			probe := preflight.ProbeRobot(cmd.Context(), client)

			if ctx.jsonMode() {
				return writeJSON(cmd, statusReport{Robot: client.BaseURL(), Checks: results, Probe: probe})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Robot "+client.BaseURL(), colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if probe.Reachable {
				fmt.Fprintln(out, renderStatusLine("Model", statusInfo, probe.RobotDetail(), colorize))
				fmt.Fprintln(out, renderStatusLine("Left mount", mountKind(probe.Left), preflight.MountDetail(probe.Left), colorize))
				fmt.Fprintln(out, renderStatusLine("Right mount", mountKind(probe.Right), preflight.MountDetail(probe.Right), colorize))
				modules := "none"
				if len(probe.Modules) > 0 {
					modules = fmt.Sprint(probe.Modules)
				}
				fmt.Fprintln(out, renderStatusLine("Modules", statusInfo, modules, colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Journal", statusInfo, yesNo(cfg.Journal.Enabled), colorize))
			if !preflight.AllPassed(results) {
				return fmt.Errorf("robot not ready")
			}
			return nil
		},
	}
}

func mountKind(name string) statusKind {
	if name == "" {
		return statusWarn
	}
	return statusInfo
}
