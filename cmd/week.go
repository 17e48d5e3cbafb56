package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsehq/pulse/internal/tui"
	"github.com/pulsehq/pulse/internal/ui"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Toggle habits on an interactive week grid",
	Long: `Opens the current week as a habits-by-days grid. Move with hjkl or the
arrow keys, toggle the selected cell with space, and quit with q. Without a
terminal the grid prints as plain text instead.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		now := time.Now()

		if !tui.IsTTY() {
			return withUserDataReadOnly(func(s *userSession) error {
				fmt.Print(tui.RenderWeekTable(s.data, now))
				return nil
			})
		}

		return withUserData(func(s *userSession) error {
			actions, err := tui.RunWeek(s.data, now)
			if err != nil {
				return err
			}
			// Outcomes are already applied to the blob; only the streaks
			// need refreshing before the save.
			s.refreshStreaks()
			if n := len(actions); n > 0 {
				ui.Ok(fmt.Sprintf("Saved %d change(s)", n))
			}
			return nil
		})
	},
}
