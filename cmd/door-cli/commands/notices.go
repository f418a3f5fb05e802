package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(noticesCmd)
	rootCmd.AddCommand(noticeCmd)
}

var noticesCmd = &cobra.Command{
	Use:   "notices <courseId>",
	Short: "Lists the notice board of a course.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		notices, err := client.Notices(cmd.Context(), args[0])
		if err != nil {
			fatal("failed to list notices", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Id", "Title", "Author", "Created", "Views", "Read"})
		for _, notice := range notices {
			read := ""
			if notice.Noted {
				read = "O"
			}
			t.AppendRow(table.Row{
				notice.Id,
				notice.Title,
				notice.Author,
				formatDate(notice.CreatedAt),
				notice.Views,
				read,
			})
		}
		t.Render()
	},
}

var noticeCmd = &cobra.Command{
	Use:   "notice <courseId> <noticeId>",
	Short: "Shows one notice in full, marking it read on the portal.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		notice, err := client.Notice(cmd.Context(), args[0], args[1])
		if err != nil {
			fatal("failed to read notice", err)
		}

		t := newTable()
		t.AppendRow(table.Row{"Title", notice.Title})
		t.AppendRow(table.Row{"Author", notice.Author})
		t.AppendRow(table.Row{"Created", formatDate(notice.CreatedAt)})
		t.AppendRow(table.Row{"Views", notice.Views})
		for _, attachment := range notice.Attachments {
			t.AppendRow(table.Row{"Attachment", fmt.Sprintf("%s (%s)", attachment.Title, attachment.Link)})
		}
		t.Render()

		fmt.Println(notice.Contents)
	},
}
