package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulsehq/pulse/internal/ai"
	"github.com/pulsehq/pulse/internal/auth"
	"github.com/pulsehq/pulse/internal/config"
	"github.com/pulsehq/pulse/internal/ui"
	"github.com/pulsehq/pulse/internal/version"
	"github.com/pulsehq/pulse/internal/web"
)

var (
	serveBind string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pulse web UI",
	Long: `Serves the tracker, analytics, journal, and to-do pages in the
browser. Sessions are shared with the CLI's user accounts.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		port := servePort
		if port == 0 {
			port = cfg.Web.Port
		}

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		summarize := buildSummarize(cfg)
		srv := web.NewServer(db, auth.New(db), summarize, version.Short(), serveBind, port)
		ui.Inf(fmt.Sprintf("Serving on http://%s:%d", serveBind, port))
		return web.Run(srv)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveBind, "bind", "127.0.0.1", "address to bind")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from config)")
}

// buildSummarize wires the web summary button to the configured AI provider.
// Without an API key the button reports what is missing instead of failing.
func buildSummarize(cfg *config.Config) web.Summarize {
	key := cfg.ResolveAPIKey()
	if key == "" {
		return func(context.Context, string, string) string {
			return "AI summaries need an API key. Set PULSE_OPENAI_API_KEY or add one to the config."
		}
	}
	provider, err := ai.New(cfg.AI.Provider, key)
	if err != nil {
		msg := fmt.Sprintf("AI provider unavailable: %v", err)
		return func(context.Context, string, string) string { return msg }
	}
	summarizer := ai.NewSummarizer(provider, cfg.AI.Model)
	return func(ctx context.Context, entriesText, period string) string {
		return summarizer.Summarize(ctx, entriesText, period)
	}
}
