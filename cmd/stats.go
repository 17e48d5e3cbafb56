package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/habit"
	"github.com/pulsehq/pulse/internal/progress"
	"github.com/pulsehq/pulse/internal/ui"
)

var (
	statsPeriod = dates.Weekly
	statsOffset int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress against goals for a period",
	Long: `Shows success counts against scaled goals for the chosen period, with
the change versus the previous period and a heatmap of the window.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withUserDataReadOnly(func(s *userSession) error {
			ref := dates.Shift(statsPeriod, time.Now(), statsOffset)
			report := progress.Build(s.data, statsPeriod, ref)

			if len(report.Rows) == 0 {
				ui.Inf("No habits yet. Add one with: pulse habit add <name>")
				return nil
			}

			ui.Header(fmt.Sprintf("%s %s to %s",
				statsPeriod.Label(),
				report.Window.Start.Format("Jan 2"),
				report.Window.End.Format("Jan 2, 2006")))
			printReport(report)

			fmt.Println()
			switch statsPeriod {
			case dates.Yearly:
				printMonthMatrix(progress.BuildMonthMatrix(s.data, ref.Year()))
			default:
				printDayMatrix(progress.BuildDayMatrix(s.data, report.Window))
			}
			return nil
		})
	},
}

func init() {
	statsCmd.Flags().VarP(newPeriodValue(&statsPeriod, dates.Weekly, dates.Monthly, dates.Yearly),
		"view", "v", "period to report: weekly, monthly, or yearly")
	statsCmd.Flags().IntVarP(&statsOffset, "offset", "o", 0, "periods back from now (negative) or forward (positive)")
}

func printReport(report progress.Report) {
	nameWidth := len("Habit")
	for _, row := range report.Rows {
		if len(row.Habit) > nameWidth {
			nameWidth = len(row.Habit)
		}
	}

	header := fmt.Sprintf("  %-*s  %5s  %5s  %5s  %6s", nameWidth, "Habit", "Done", "Goal", "Pct", "Delta")
	fmt.Println(ui.Muted.Render(header))

	for _, row := range report.Rows {
		style := ui.Warning
		if row.Goal > 0 && row.Current >= row.Goal {
			style = ui.Success
		}
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(habit.Color(row.Habit)))
		fmt.Printf("  %s  %s  %5d  %s  %6s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, row.Habit)),
			style.Render(fmt.Sprintf("%5d", row.Current)),
			row.Goal,
			style.Render(fmt.Sprintf("%4d%%", row.Percent)),
			ui.Muted.Render(row.FormatDelta()))
	}
}

// printDayMatrix renders the window's day grid, one glyph per day.
func printDayMatrix(m progress.DayMatrix) {
	nameWidth := 0
	for _, name := range m.Habits {
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}

	var head strings.Builder
	head.WriteString(strings.Repeat(" ", nameWidth+4))
	for _, d := range m.Days {
		fmt.Fprintf(&head, "%-3d", d.Day())
	}
	fmt.Println(ui.Muted.Render(head.String()))

	for i, name := range m.Habits {
		fmt.Printf("  %-*s  ", nameWidth, name)
		for _, cell := range m.Cells[i] {
			switch cell {
			case progress.CellSucceeded:
				fmt.Print(ui.Success.Render("■  "))
			case progress.CellFailed:
				fmt.Print(ui.Error.Render("■  "))
			default:
				fmt.Print(ui.Muted.Render("·  "))
			}
		}
		fmt.Println()
	}
}

// printMonthMatrix renders the yearly view as success counts per month.
func printMonthMatrix(m progress.MonthMatrix) {
	nameWidth := 0
	for _, name := range m.Habits {
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}

	var head strings.Builder
	head.WriteString(strings.Repeat(" ", nameWidth+4))
	for mo := time.January; mo <= time.December; mo++ {
		fmt.Fprintf(&head, "%-4s", mo.String()[:3])
	}
	fmt.Println(ui.Muted.Render(head.String()))

	for i, name := range m.Habits {
		fmt.Printf("  %-*s  ", nameWidth, name)
		for _, count := range m.Counts[i] {
			if count == 0 {
				fmt.Print(ui.Muted.Render(fmt.Sprintf("%-4s", ".")))
				continue
			}
			fmt.Print(ui.Success.Render(fmt.Sprintf("%-4d", count)))
		}
		fmt.Println()
	}
}
