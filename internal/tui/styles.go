package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/lifequest/internal/game"
)

// palette is one color theme. The dark palette is the default; the light
// one is selected by the dark mode preference.
type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	err       lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
	gold      lipgloss.Color
}

var (
	darkPalette = palette{
		primary:   lipgloss.Color("#6C63FF"),
		secondary: lipgloss.Color("#2EC4B6"),
		accent:    lipgloss.Color("#FF6B6B"),
		muted:     lipgloss.Color("#666666"),
		success:   lipgloss.Color("#2ECC71"),
		warning:   lipgloss.Color("#F39C12"),
		err:       lipgloss.Color("#E74C3C"),
		fg:        lipgloss.Color("#C0CAF5"),
		subtle:    lipgloss.Color("#414868"),
		highlight: lipgloss.Color("#7AA2F7"),
		gold:      lipgloss.Color("#E0AF68"),
	}

	lightPalette = palette{
		primary:   lipgloss.Color("#4B3FD8"),
		secondary: lipgloss.Color("#0F8B80"),
		accent:    lipgloss.Color("#C92A2A"),
		muted:     lipgloss.Color("#8A8A8A"),
		success:   lipgloss.Color("#1E8E4E"),
		warning:   lipgloss.Color("#B86E00"),
		err:       lipgloss.Color("#B3261E"),
		fg:        lipgloss.Color("#1A1B26"),
		subtle:    lipgloss.Color("#C8CCD8"),
		highlight: lipgloss.Color("#2E5BBA"),
		gold:      lipgloss.Color("#9A6B00"),
	}
)

// Color palette
var (
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorGold      lipgloss.Color

	darkTheme = true
)

// Styles
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	titleStyle        lipgloss.Style
	subtitleStyle     lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	goldStyle         lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	doneItemStyle     lipgloss.Style
)

func init() {
	applyTheme(true)
}

// applyTheme rebuilds every style from the dark or light palette.
func applyTheme(dark bool) {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	darkTheme = dark

	colorPrimary = p.primary
	colorSecondary = p.secondary
	colorGold = p.gold

	// Tabs
	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.primary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.subtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.primary).
		Padding(1, 2)

	// Text
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.fg)
	subtitleStyle = lipgloss.NewStyle().Foreground(p.muted)
	accentStyle = lipgloss.NewStyle().Foreground(p.accent)
	successStyle = lipgloss.NewStyle().Foreground(p.success)
	warningStyle = lipgloss.NewStyle().Foreground(p.warning)
	errorStyle = lipgloss.NewStyle().Foreground(p.err)
	mutedStyle = lipgloss.NewStyle().Foreground(p.muted)
	highlightStyle = lipgloss.NewStyle().Foreground(p.highlight)
	goldStyle = lipgloss.NewStyle().Bold(true).Foreground(p.gold)

	// Header/footer
	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().Foreground(p.primary).Bold(true)
	normalItemStyle = lipgloss.NewStyle().Foreground(p.fg)
	doneItemStyle = lipgloss.NewStyle().Foreground(p.muted).Strikethrough(true)
}

// skillColor gives each skill category a bar color in the skills chart.
func skillColor(c game.SkillCategory) lipgloss.Color {
	switch c {
	case game.SkillHealth:
		return lipgloss.Color("#2ECC71")
	case game.SkillFinance:
		return colorGold
	case game.SkillLearning:
		return lipgloss.Color("#7AA2F7")
	case game.SkillSocial:
		return lipgloss.Color("#FF6B6B")
	case game.SkillCareer:
		return colorSecondary
	}
	return colorPrimary
}
