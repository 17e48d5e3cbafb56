package ui

import "github.com/charmbracelet/lipgloss"

// pulse's color palette: calm teals, warm coral, soft slate.
var (
	Teal    = lipgloss.Color("#2DD4BF")
	Coral   = lipgloss.Color("#FB7185")
	Slate   = lipgloss.Color("#94A3B8")
	Mint    = lipgloss.Color("#6EE7B7")
	Rose    = lipgloss.Color("#F43F5E")
	Sky     = lipgloss.Color("#38BDF8")
	Dim     = lipgloss.Color("#666666")
	Bright  = lipgloss.Color("#FFFFFF")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	Subtitle = lipgloss.NewStyle().
			Foreground(Sky)

	Success = lipgloss.NewStyle().
		Foreground(Mint)

	Error = lipgloss.NewStyle().
		Foreground(Rose)

	Warning = lipgloss.NewStyle().
		Foreground(Coral)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Sky).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

// Icon constants.
const (
	IconPulse   = "● "
	IconStreak  = "🔥"
	IconDone    = "✅"
	IconFailed  = "✗ "
	IconTodo    = "📋"
	IconJournal = "📓"
	IconOk      = "✓ "
	IconError   = "✗ "
	IconWarn    = "⚠️ "
	IconArrow   = "→"
	IconDot     = "·"
)
