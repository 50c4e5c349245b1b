package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/lifequest/internal/game"
)

type achievementsModel struct {
	width  int
	height int

	snap   snapshot
	cursor int
}

func newAchievementsModel() achievementsModel {
	return achievementsModel{}
}

func (a *achievementsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a achievementsModel) update(msg tea.Msg) (achievementsModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch {
	case key.Matches(km, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(km, keys.Down):
		if a.cursor < len(a.snap.achievements)-1 {
			a.cursor++
		}
	}
	return a, nil
}

func (a achievementsModel) view() string {
	w := a.width - 4

	unlocked := 0
	for _, ach := range a.snap.achievements {
		if ach.Unlocked {
			unlocked++
		}
	}
	title := titleStyle.Render("Achievements") +
		mutedStyle.Render(fmt.Sprintf("  %d/%d unlocked", unlocked, len(a.snap.achievements)))

	var rows []string
	rows = append(rows, title, "")

	for i, ach := range a.snap.achievements {
		cursor := "  "
		if i == a.cursor {
			cursor = "> "
		}
		rows = append(rows, cursor+renderAchievement(ach))
		if i == a.cursor {
			rows = append(rows, mutedStyle.Render("      "+ach.Description))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

var iconGlyphs = map[string]string{
	"award":  "★",
	"scroll": "§",
	"star":   "✦",
	"layers": "≡",
	"heart":  "♥",
	"shield": "◆",
}

func iconGlyph(name string) string {
	if g, ok := iconGlyphs[name]; ok {
		return g
	}
	return "•"
}

func renderAchievement(ach game.Achievement) string {
	icon := iconGlyph(ach.Icon)
	if ach.Unlocked {
		when := ""
		if ach.DateUnlocked != nil {
			when = mutedStyle.Render("  unlocked " + humanize.Time(*ach.DateUnlocked))
		}
		return goldStyle.Render(fmt.Sprintf("%s %-22s", icon, ach.Title)) + when
	}

	line := mutedStyle.Render(fmt.Sprintf("%s %-22s", icon, ach.Title))
	if p := ach.Progress; p != nil && p.Required > 0 {
		line += fmt.Sprintf("  %s %d/%d", highlightStyle.Render(meter(p.Current, p.Required, 16)), p.Current, p.Required)
	} else {
		line += mutedStyle.Render("  locked")
	}
	return line
}
