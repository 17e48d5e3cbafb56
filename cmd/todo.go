package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/tasks"
	"github.com/pulsehq/pulse/internal/ui"
)

var todoPeriod string

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage your to-do list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return todoListCmd.RunE(cmd, args)
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks for a period (default today)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withUserDataReadOnly(func(s *userSession) error {
			list, label, err := filteredTasks(s.data.Todo, todoPeriod)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				ui.Inf(fmt.Sprintf("Nothing on the list for %s.", label))
				return nil
			}
			ui.Header(ui.IconTodo + " To-dos " + ui.IconDot + " " + label)
			for i, t := range list {
				printTask(i+1, t)
			}
			return nil
		})
	},
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withUserData(func(s *userSession) error {
			t, err := s.data.Todo.Add(strings.Join(args, " "), time.Now())
			if err != nil {
				return err
			}
			ui.Ok(fmt.Sprintf("Added: %s", t.Text))
			return nil
		})
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <number>",
	Short: "Mark a task done by its list number",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withUserData(func(s *userSession) error {
			t, err := taskByNumber(s.data.Todo, args[0])
			if err != nil {
				return err
			}
			t.Complete(time.Now())
			ui.Ok(fmt.Sprintf("Done: %s", t.Text))
			return nil
		})
	},
}

var todoUndoneCmd = &cobra.Command{
	Use:   "undone <number>",
	Short: "Reopen a task by its list number",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withUserData(func(s *userSession) error {
			t, err := taskByNumber(s.data.Todo, args[0])
			if err != nil {
				return err
			}
			t.Uncomplete()
			ui.Inf(fmt.Sprintf("Reopened: %s", t.Text))
			return nil
		})
	},
}

var todoRmCmd = &cobra.Command{
	Use:   "rm <number>",
	Short: "Delete a task by its list number",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withUserData(func(s *userSession) error {
			t, err := taskByNumber(s.data.Todo, args[0])
			if err != nil {
				return err
			}
			if err := s.data.Todo.Remove(t.ID); err != nil {
				return err
			}
			ui.Ok(fmt.Sprintf("Deleted: %s", t.Text))
			return nil
		})
	},
}

func init() {
	todoCmd.PersistentFlags().StringVarP(&todoPeriod, "period", "p", "daily", "period to show: daily, weekly, monthly, yearly, or all")
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoUndoneCmd)
	todoCmd.AddCommand(todoRmCmd)
}

// filteredTasks applies the period flag, with "all" skipping the filter.
func filteredTasks(list tasks.List, periodFlag string) (tasks.List, string, error) {
	if periodFlag == "all" {
		return list, "all time", nil
	}
	p, err := dates.ParsePeriod(periodFlag)
	if err != nil {
		return nil, "", err
	}
	w := dates.PeriodWindow(p, time.Now())
	return list.Filter(w), strings.ToLower(p.Label()), nil
}

// taskByNumber resolves a 1-based position in the current period view, so
// the numbers shown by `todo list` stay addressable.
func taskByNumber(list tasks.List, arg string) (*tasks.Task, error) {
	filtered, _, err := filteredTasks(list, todoPeriod)
	if err != nil {
		return nil, err
	}
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n < 1 || n > len(filtered) {
		return nil, fmt.Errorf("no task #%s in the current view, run: pulse todo list", arg)
	}
	return list.Find(filtered[n-1].ID)
}

func printTask(n int, t tasks.Task) {
	num := ui.Muted.Render(fmt.Sprintf("%2d.", n))
	if t.Done {
		fmt.Printf("  %s %s %s\n", num, ui.IconDone, ui.Muted.Render(t.Text))
		return
	}
	fmt.Printf("  %s %s %s\n", num, ui.IconDot, t.Text)
}
