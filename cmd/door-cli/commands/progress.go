package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress <courseId>",
	Short: "Shows per-lecture learning progress and attendance for a course.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		progresses, err := client.Progresses(cmd.Context(), args[0])
		if err != nil {
			fatal("failed to fetch lecture progress", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{
			"Week", "Period", "Type", "Attendance", "Watched",
			"Views", "Started", "Finished", "Last viewed",
		})
		for _, progress := range progresses {
			t.AppendRow(table.Row{
				progress.Week,
				progress.Period,
				progress.Type,
				string(progress.Attendance),
				fmt.Sprintf("%d/%d", progress.Current, progress.Length),
				progress.Views,
				formatDate(progress.StartedAt),
				formatDate(progress.FinishedAt),
				formatDate(progress.RecentViewedAt),
			})
		}
		t.Render()
	},
}
