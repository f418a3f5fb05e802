package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var submitContents *string
var submitFile *string

func init() {
	submitContents = submitCmd.Flags().String("contents", "", "Free-text contents of the submission.")
	submitFile = submitCmd.Flags().String("file", "", "Path of a file to attach to the submission.")

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(submitCmd)
}

var projectsCmd = &cobra.Command{
	Use:   "projects <courseId>",
	Short: "Lists the team projects of a course, activity log entries included.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		projects, err := client.TeamProjects(cmd.Context(), args[0])
		if err != nil {
			fatal("failed to list team projects", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Id", "Title", "Type", "From", "To", "Submitted"})
		for _, project := range projects {
			submitted := ""
			if project.Submitted {
				submitted = "O"
			}
			t.AppendRow(table.Row{
				project.Id,
				project.Title,
				project.Type,
				formatDate(project.Duration.From),
				formatDate(project.Duration.To),
				submitted,
			})
		}
		t.Render()
	},
}

var projectCmd = &cobra.Command{
	Use:   "project <courseId> <projectId>",
	Short: "Shows one team project in full, submission state included.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		project, err := client.TeamProject(cmd.Context(), args[0], args[1])
		if err != nil {
			fatal("failed to read team project", err)
		}

		t := newTable()
		t.AppendRow(table.Row{"Title", project.Title})
		t.AppendRow(table.Row{"Type", project.Type})
		t.AppendRow(table.Row{"From", formatDate(project.Duration.From)})
		t.AppendRow(table.Row{"To", formatDate(project.Duration.To)})
		t.AppendRow(table.Row{"Submitted", project.Submitted})
		for _, attachment := range project.Attachments {
			t.AppendRow(table.Row{"Attachment", fmt.Sprintf("%s (%s)", attachment.Title, attachment.Link)})
		}
		if project.Submission != nil {
			t.AppendRow(table.Row{"Submission", project.Submission.Contents})
			for _, attachment := range project.Submission.Attachments {
				t.AppendRow(table.Row{"Submission file", fmt.Sprintf("%s (%s)", attachment.Title, attachment.Link)})
			}
		}
		t.Render()

		fmt.Println(project.Contents)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <courseId> <projectId> [--contents <text>] [--file <path>]",
	Short: "Submits contents and/or a file to a team project.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		project, err := client.TeamProject(cmd.Context(), args[0], args[1])
		if err != nil {
			fatal("failed to read team project", err)
		}
		if project.Submission == nil {
			fatal("project has no submission form", nil)
		}

		if *submitFile == "" {
			err = client.Submit(cmd.Context(), project.Submission.Form, *submitContents, "", nil)
			if err != nil {
				fatal("failed to submit", err)
			}
			return
		}

		file, err := os.Open(*submitFile)
		if err != nil {
			fatal("failed to open submission file", err)
		}
		defer file.Close()

		err = client.Submit(cmd.Context(), project.Submission.Form, *submitContents, filepath.Base(*submitFile), file)
		if err != nil {
			fatal("failed to submit", err)
		}
	},
}
