package tui

import "github.com/charmbracelet/lipgloss"

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 4
	borderPadding = 4
)

// Palette.
const (
	colorAccent  = lipgloss.Color("62")
	colorSubtle  = lipgloss.Color("241")
	colorBorder  = lipgloss.Color("240")
	colorSuccess = lipgloss.Color("42")
	colorFailure = lipgloss.Color("196")
	colorWarning = lipgloss.Color("214")
	colorBright  = lipgloss.Color("229")
	colorSelect  = lipgloss.Color("57")
)

//nolint:gochecknoglobals // lipgloss styles are immutable values shared by all views.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	ValueStyle  = lipgloss.NewStyle().Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	HelpStyle   = lipgloss.NewStyle().Foreground(colorSubtle).MarginTop(1)

	CriticalStyle = lipgloss.NewStyle().Foreground(colorFailure).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorWarning)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorBorder).
				BorderBottom(true).
				Bold(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorBright).
				Background(colorSelect)

	PageStyle        = lipgloss.NewStyle().Padding(0, 1)
	CurrentPageStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
				Foreground(colorBright).Background(colorAccent)
	EllipsisStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(colorSubtle)

	ToastSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSuccess).
				Foreground(colorSuccess).
				Padding(0, 1)
	ToastFailureStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorFailure).
				Foreground(colorFailure).
				Padding(0, 1)
)
