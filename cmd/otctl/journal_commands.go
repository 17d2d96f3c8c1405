package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"otctl/internal/journal"
	"otctl/internal/services"
)

func newJournalCommand(ctx *commandContext) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the local command journal",
	}

	var filter journal.Filter
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show recently issued commands, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return services.Wrap(services.ErrConfiguration, "otctl", "journal list", "journal is disabled (journal.enabled = false)", nil)
			}
			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			if filter.RunID == "" {
				filter.RunID = ctx.runID()
			}
			entries, err := store.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					fmt.Sprintf("%d", e.ID),
					formatTime(e.CreatedAt),
					e.RunID,
					e.CommandType,
					displayStatus(string(e.Outcome)),
					e.ErrorMessage,
				})
			}
			printTable(cmd.OutOrStdout(), "Journal is empty", []string{"ID", "Time", "Run", "Command", "Outcome", "Error"}, rows, nil)
			return nil
		},
	}
	listCmd.Flags().IntVar(&filter.Limit, "limit", 0, "Maximum entries to show (default 50)")
	listCmd.Flags().StringVar(&filter.CommandType, "type", "", "Only show this command type")

	journalCmd.AddCommand(listCmd)
	return journalCmd
}
