// Package tui contains the interactive terminal views.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/pulsehq/pulse/internal/dates"
	"github.com/pulsehq/pulse/internal/habit"
	"github.com/pulsehq/pulse/internal/ui"
)

// IsTTY returns true when stdin is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// WeekAction records a toggle performed in the week grid. Toggles are
// applied to the blob as they happen; the action list tells the caller
// whether anything changed.
type WeekAction struct {
	Habit string
	Date  time.Time
}

// WeekModel is the interactive habits-by-days grid for the current week.
type WeekModel struct {
	data   *habit.UserData
	habits []string
	monday time.Time
	today  time.Time

	row int
	col int

	width  int
	height int

	// toggles performed this session
	Actions []WeekAction

	quitting bool
}

// NewWeekModel builds the grid for the week containing today.
func NewWeekModel(data *habit.UserData, today time.Time) *WeekModel {
	monday, _ := dates.WeekBounds(today)
	col := int(dates.Day(today).Sub(monday).Hours() / 24)
	return &WeekModel{
		data:   data,
		habits: data.Names(),
		monday: monday,
		today:  dates.Day(today),
		col:    col,
		width:  80,
		height: 24,
	}
}

// RunWeek launches the interactive week view. The blob is mutated in place;
// the returned actions list what changed so the caller can decide whether
// to persist.
func RunWeek(data *habit.UserData, today time.Time) ([]WeekAction, error) {
	m := NewWeekModel(data, today)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	result, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("week tui: %w", err)
	}
	final := result.(*WeekModel)
	return final.Actions, nil
}

func (m *WeekModel) Init() tea.Cmd {
	return nil
}

func (m *WeekModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *WeekModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.row < len(m.habits)-1 {
			m.row++
		}

	case "k", "up":
		if m.row > 0 {
			m.row--
		}

	case "l", "right":
		if m.col < 6 {
			m.col++
		}

	case "h", "left":
		if m.col > 0 {
			m.col--
		}

	case "t":
		col := int(m.today.Sub(m.monday).Hours() / 24)
		if col >= 0 && col <= 6 {
			m.col = col
		}

	case "x", " ", "enter":
		if len(m.habits) > 0 {
			name := m.habits[m.row]
			date := m.monday.AddDate(0, 0, m.col)
			if _, _, err := m.data.Toggle(name, date); err == nil {
				m.Actions = append(m.Actions, WeekAction{Habit: name, Date: date})
			}
		}
	}
	return m, nil
}

func (m *WeekModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Week of %s", m.monday.Format("Jan 2"))
	b.WriteString("  " + ui.Title.Render(title) + "\n\n")

	if len(m.habits) == 0 {
		b.WriteString("  " + ui.Muted.Render("No habits yet. Add one with: pulse habit add") + "\n")
		return b.String()
	}

	nameWidth := 0
	for _, name := range m.habits {
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}

	// Day header
	b.WriteString(strings.Repeat(" ", nameWidth+4))
	for i := 0; i < 7; i++ {
		d := m.monday.AddDate(0, 0, i)
		label := d.Format("Mon")[:2]
		style := ui.Muted
		if d.Equal(m.today) {
			style = ui.Accent
		}
		b.WriteString(style.Render(fmt.Sprintf("%-4s", label)))
	}
	b.WriteString("\n")

	for r, name := range m.habits {
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(habit.Color(name)))
		if r == m.row {
			nameStyle = nameStyle.Bold(true)
		}
		b.WriteString("  " + nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)) + "  ")

		for c := 0; c < 7; c++ {
			date := m.monday.AddDate(0, 0, c)
			cell := m.renderCell(name, date, r == m.row && c == m.col)
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := ui.Muted.Render("  hjkl move · space toggle · t today · q quit")
	b.WriteString(help + "\n")
	return b.String()
}

func (m *WeekModel) renderCell(name string, date time.Time, selected bool) string {
	var glyph string
	var style lipgloss.Style
	switch outcome, _ := m.data.Outcome(name, date); outcome {
	case habit.Succeeded:
		glyph, style = "✓", ui.Success
	case habit.Failed:
		glyph, style = "✗", ui.Error
	default:
		glyph, style = "·", ui.Muted
	}
	if selected {
		return style.Bold(true).Render(fmt.Sprintf("[%s] ", glyph))
	}
	return style.Render(fmt.Sprintf(" %s  ", glyph))
}

// RenderWeekTable renders the week grid as plain text for non-TTY output.
func RenderWeekTable(data *habit.UserData, today time.Time) string {
	monday, _ := dates.WeekBounds(today)
	names := data.Names()
	if len(names) == 0 {
		return "No habits yet.\n"
	}

	nameWidth := len("Habit")
	for _, name := range names {
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", nameWidth+2, "Habit")
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&b, "%-4s", monday.AddDate(0, 0, i).Format("Mon")[:2])
	}
	b.WriteString("\n")

	for _, name := range names {
		fmt.Fprintf(&b, "%-*s", nameWidth+2, name)
		for i := 0; i < 7; i++ {
			glyph := "."
			switch outcome, _ := data.Outcome(name, monday.AddDate(0, 0, i)); outcome {
			case habit.Succeeded:
				glyph = "v"
			case habit.Failed:
				glyph = "x"
			}
			fmt.Fprintf(&b, "%-4s", glyph)
		}
		b.WriteString("\n")
	}
	return b.String()
}
