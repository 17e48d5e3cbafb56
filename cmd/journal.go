package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsehq/pulse/internal/ai"
	"github.com/pulsehq/pulse/internal/config"
	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/journal"
	"github.com/pulsehq/pulse/internal/ui"
)

var (
	journalFeeling string
	journalCause   string
	summaryPeriod  = dates.Daily
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write and review your daily journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return journalShowCmd.RunE(cmd, args)
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's entry",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withUserDataReadOnly(func(s *userSession) error {
			entry, ok := s.data.Journal.Get(time.Now())
			if !ok {
				ui.Inf("No entry for today yet. Write one with: pulse journal write")
				return nil
			}
			printEntry(dates.Key(time.Now()), entry)
			return nil
		})
	},
}

var journalWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write today's entry",
	Long: `Records how you are feeling today and what might be causing it. Pass
--feeling and --cause directly or answer the prompts. Writing again on the
same day replaces the entry.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		feeling := journalFeeling
		cause := journalCause
		var err error
		if feeling == "" {
			if feeling, err = promptLine("How are you feeling today? "); err != nil {
				return err
			}
		}
		if cause == "" {
			if cause, err = promptLine("What might be causing that? "); err != nil {
				return err
			}
		}
		if strings.TrimSpace(feeling) == "" {
			return fmt.Errorf("feeling cannot be empty")
		}

		return withUserData(func(s *userSession) error {
			now := time.Now()
			s.data.Journal.Write(now, feeling, cause, now)
			ui.Ok(fmt.Sprintf("%s Entry saved for %s", ui.IconJournal, dates.Key(now)))
			return nil
		})
	},
}

var journalHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past entries, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withUserDataReadOnly(func(s *userSession) error {
			entries := s.data.Journal.All()
			if len(entries) == 0 {
				ui.Inf("No entries yet. Write one with: pulse journal write")
				return nil
			}
			for _, e := range entries {
				printEntry(e.Date, e.Entry)
			}
			return nil
		})
	},
}

var journalSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate an AI summary of recent entries",
	Long: `Summarizes the entries of the chosen period together with the tasks
completed in it. Daily summaries are saved onto today's entry. Needs an
OpenAI API key in the config or in PULSE_OPENAI_API_KEY.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withUserData(func(s *userSession) error {
			key := s.cfg.ResolveAPIKey()
			if key == "" {
				return fmt.Errorf("no API key set, add one to %s or export PULSE_OPENAI_API_KEY",
					config.GetPaths().ConfigFile)
			}
			provider, err := ai.New(s.cfg.AI.Provider, key)
			if err != nil {
				return err
			}

			now := time.Now()
			w := dates.PeriodWindow(summaryPeriod, now)
			text := journal.EntriesText(s.data.Journal.Filter(w))
			if done := s.data.Todo.Filter(w).CompletionLog(); done != "" {
				text += "\n\n" + done
			}

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			summary := ai.NewSummarizer(provider, s.cfg.AI.Model).Summarize(ctx, text, summaryPeriod.String())

			ui.Header(fmt.Sprintf("%s %s summary", ui.IconJournal, summaryPeriod.String()))
			fmt.Println("  " + summary)

			if summaryPeriod == dates.Daily && summary != ai.EmptySummary && !ai.Failed(summary) {
				s.data.Journal.SetSummary(now, summary)
			}
			return nil
		})
	},
}

func init() {
	journalWriteCmd.Flags().StringVar(&journalFeeling, "feeling", "", "how you are feeling")
	journalWriteCmd.Flags().StringVar(&journalCause, "cause", "", "what might be causing it")
	journalSummaryCmd.Flags().VarP(newPeriodValue(&summaryPeriod, dates.Daily, dates.Weekly, dates.Monthly),
		"period", "p", "period to summarize: daily, weekly, or monthly")
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalWriteCmd)
	journalCmd.AddCommand(journalHistoryCmd)
	journalCmd.AddCommand(journalSummaryCmd)
}

func printEntry(date string, e journal.Entry) {
	ui.Header(ui.IconJournal + " " + date)
	ui.Kv("Feeling", e.Feeling)
	if e.Cause != "" {
		ui.Kv("Cause", e.Cause)
	}
	if e.Summary != "" {
		ui.Kv("Summary", e.Summary)
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
