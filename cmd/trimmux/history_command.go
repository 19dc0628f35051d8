package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trimmux/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show past transcode jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}
			jsonOutput, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}

			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			jobs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, jobs)
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No jobs recorded")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					job.CreatedAt.Local().Format("2006-01-02 15:04"),
					string(job.Status),
					job.Source,
					orDash(job.Encoder),
					job.Duration.Round(time.Second).String(),
					orDash(job.Detail),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"When", "Status", "Source", "Encoder", "Took", "Detail"},
				rows,
				4,
			))
			return nil
		},
	}

	historyCmd.Flags().Int("limit", 20, "Maximum jobs to show (0 for all)")
	historyCmd.Flags().Bool("json", false, "Print jobs as JSON")

	historyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	})

	return historyCmd
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.Output.HistoryDB)
}
