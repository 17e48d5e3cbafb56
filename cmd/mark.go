package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/habit"
	"github.com/pulsehq/pulse/internal/ui"
)

var markCmd = &cobra.Command{
	Use:   "mark <habit> [date]",
	Short: "Cycle a habit's outcome for a date (default today)",
	Long: `Cycles the habit's outcome for the date through
unmarked, succeeded, failed, and back to unmarked. Dates use YYYY-MM-DD.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		date := dates.Day(time.Now())
		if len(args) == 2 {
			d, err := dates.ParseKey(args[1])
			if err != nil {
				return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[1])
			}
			date = d
		}

		return withUserData(func(s *userSession) error {
			outcome, marked, err := s.data.Toggle(args[0], date)
			if err != nil {
				return err
			}
			s.refreshStreaks()

			key := dates.Key(date)
			switch {
			case !marked:
				ui.Inf(fmt.Sprintf("%s on %s is now unmarked", args[0], key))
			case outcome == habit.Succeeded:
				rec := s.data.Streaks[args[0]]
				ui.Ok(fmt.Sprintf("%s succeeded on %s %s %s %d day streak",
					args[0], key, ui.IconDot, ui.IconStreak, rec.Current))
			default:
				ui.Warn(fmt.Sprintf("%s failed on %s", args[0], key))
			}
			return nil
		})
	},
}
