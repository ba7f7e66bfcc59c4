// Package ui provides the visual styling for the esgcopilot interactive CLI.
// Light mode is the default; dark mode is detected from the terminal.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"esgcopilot/internal/types"
)

var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f5f7f5")
	LightForeground = lipgloss.Color("#1b2a1f")
	LightPrimary    = lipgloss.Color("#1b5e20") // Forest green
	LightAccent     = lipgloss.Color("#43a047")
	LightSecondary  = lipgloss.Color("#e3e9e4")
	LightMuted      = lipgloss.Color("#8a948c")
	LightBorder     = lipgloss.Color("#d8e0da")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#121a14")
	DarkForeground = lipgloss.Color("#f0f3f0")
	DarkPrimary    = lipgloss.Color("#66bb6a")
	DarkAccent     = lipgloss.Color("#a5d6a7")
	DarkSecondary  = lipgloss.Color("#1d2a20")
	DarkMuted      = lipgloss.Color("#5c6b5f")
	DarkBorder     = lipgloss.Color("#2b3a2e")
	DarkCard       = lipgloss.Color("#18241b")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#43a047")
	Warning     = lipgloss.Color("#ffb300")
	Info        = lipgloss.Color("#1e88e5")

	// Pillar Colors
	Environment = lipgloss.Color("#43a047")
	Social      = lipgloss.Color("#1e88e5")
	Governance  = lipgloss.Color("#8e24aa")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme auto-detects dark mode from the terminal, defaulting to light.
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; ANSI indexes 0-6 and 8 are dark.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("ESGCOPILOT_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Interactive
	Prompt        lipgloss.Style
	UserInput     lipgloss.Style
	AgentResponse lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner     lipgloss.Style
	ProgressBar lipgloss.Style
	Divider     lipgloss.Style
	Badge       lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		UserInput: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		AgentResponse: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		ProgressBar: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}
}

// DefaultStyles returns styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// CategoryColor maps an ESG pillar to its display color.
func CategoryColor(c types.Category) lipgloss.Color {
	switch c {
	case types.CategoryEnvironment:
		return Environment
	case types.CategorySocial:
		return Social
	case types.CategoryGovernance:
		return Governance
	}
	return Info
}

// StatusBadge renders a colored badge for a question workflow status.
func (s Styles) StatusBadge(status types.Status) string {
	switch status {
	case types.StatusVerified:
		return s.Success.Render("verified")
	case types.StatusCompleted:
		return s.Success.Render("completed")
	case types.StatusInProgress:
		return s.Warning.Render("in progress")
	default:
		return s.Muted.Render("not started")
	}
}

// ActionBadge renders a colored badge for an action board column.
func (s Styles) ActionBadge(status types.ActionStatus) string {
	switch status {
	case types.ActionDone:
		return s.Success.Render("Done")
	case types.ActionInProgress:
		return s.Warning.Render("In Progress")
	default:
		return s.Info.Render("Planned")
	}
}

// RenderProgressBar draws a fixed-width completion bar.
func (s Styles) RenderProgressBar(done, total, width int) string {
	if width < 4 {
		width = 4
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return s.ProgressBar.Render(bar)
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}

// Logo returns the esgcopilot banner.
func Logo(s Styles) string {
	logo := `
  ___ ___  ___
 | __/ __|/ __|
 | _|\__ \ (_ |
 |___|___/\___|  Copilot
`
	return s.Title.Foreground(s.Theme.Primary).Render(logo)
}
