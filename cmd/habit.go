package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pulsehq/pulse/internal/ui"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage your habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name> [weekly-goal]",
	Short: "Add a habit with a weekly goal (default 7)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		goal := 7
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("weekly goal must be a number, got %q", args[1])
			}
			goal = n
		}
		return withUserData(func(s *userSession) error {
			if err := s.data.AddHabit(args[0], goal); err != nil {
				return err
			}
			ui.Ok(fmt.Sprintf("Added %s (goal %d/week)", args[0], goal))
			return nil
		})
	},
}

var habitRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a habit and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withUserData(func(s *userSession) error {
			if err := s.data.RemoveHabit(args[0]); err != nil {
				return err
			}
			ui.Ok(fmt.Sprintf("Removed %s", args[0]))
			return nil
		})
	},
}

var habitGoalCmd = &cobra.Command{
	Use:   "goal <name> <weekly-goal>",
	Short: "Change a habit's weekly goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		goal, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("weekly goal must be a number, got %q", args[1])
		}
		return withUserData(func(s *userSession) error {
			if err := s.data.SetGoal(args[0], goal); err != nil {
				return err
			}
			ui.Ok(fmt.Sprintf("%s now aims for %d/week", args[0], goal))
			return nil
		})
	},
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with goals and streaks",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withUserDataReadOnly(func(s *userSession) error {
			s.refreshStreaks()
			names := s.data.Names()
			if len(names) == 0 {
				ui.Inf("No habits yet. Add one with: pulse habit add <name>")
				return nil
			}
			ui.Header("Habits")
			for _, name := range names {
				rec := s.data.Streaks[name]
				ui.Kv(name, fmt.Sprintf("goal %d/week %s %d day streak (best %d)",
					s.data.Goal(name), ui.IconDot, rec.Current, rec.Longest))
			}
			return nil
		})
	},
}

func init() {
	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitRmCmd)
	habitCmd.AddCommand(habitGoalCmd)
	habitCmd.AddCommand(habitListCmd)
}
