package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"door-backend/lib/configutil"
	"door-backend/lib/restyutil"
	"door-backend/lib/scrapers/door/core"
	"door-backend/lib/scrapers/door/view"
	"door-backend/lib/timezone"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "door-cli",
	Short: "door-cli inspects a Door LMS course from the terminal.",
}

var debugHttp *bool

func init() {
	debugHttp = rootCmd.PersistentFlags().Bool(
		"debug-http", false,
		"Dump every http exchange to .dev/resty/door-cli for inspection.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}

type Config struct {
	BaseUrl string `json:"base_url"`
	// an ASP.NET_SessionId captured from a logged-in browser session
	SessionId string `json:"session_id"`
}

func createClient(ctx context.Context) view.Client {
	cfg, err := configutil.ReadConfig[Config]("door.json5")
	if err != nil {
		fatal("failed to read config", err)
	}

	if *debugHttp {
		core.SetInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/door-cli"))
	}

	coreClient, err := core.NewClient(ctx, core.ClientOptions{
		BaseUrl: cfg.BaseUrl,
	})
	if err != nil {
		fatal("failed to initialize core door client", err)
	}
	coreClient.SetSessionId(cfg.SessionId)

	return view.NewClient(coreClient)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(timezone.Location).Format("2006-01-02 15:04")
}
