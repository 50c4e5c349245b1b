package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/lifequest/internal/engine"
	"github.com/sadopc/lifequest/internal/game"
)

type skillsModel struct {
	engine *engine.Engine
	width  int
	height int

	snap   snapshot
	cursor int

	chart barchart.Model
}

func newSkillsModel(e *engine.Engine) skillsModel {
	return skillsModel{
		engine: e,
		chart:  barchart.New(60, 10),
	}
}

func (s *skillsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

func (s *skillsModel) setSnapshot(snap snapshot) {
	s.snap = snap
	if s.cursor >= len(snap.skills) {
		s.cursor = max(0, len(snap.skills)-1)
	}
	s.buildChart()
}

func (s skillsModel) update(msg tea.Msg) (skillsModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(km, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(km, keys.Down):
		if s.cursor < len(s.snap.skills)-1 {
			s.cursor++
		}
	case key.Matches(km, keys.Enter):
		if s.cursor < len(s.snap.skills) {
			return s, s.levelUp(s.snap.skills[s.cursor])
		}
	}
	return s, nil
}

func (s skillsModel) levelUp(skill game.Skill) tea.Cmd {
	return func() tea.Msg {
		if !s.engine.LevelUpSkill(skill.ID) {
			return statusMsg{text: skill.Name + " is already at max level"}
		}
		return statusMsg{text: fmt.Sprintf("%s trained to level %d", skill.Name, skill.Level+1)}
	}
}

// buildChart draws one bar per skill, height = level.
func (s *skillsModel) buildChart() {
	chartWidth := max(20, s.width-8)
	chartHeight := 10
	if s.height > 30 {
		chartHeight = 14
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, skill := range s.snap.skills {
		bars = append(bars, barchart.BarData{
			Label: truncate(skill.Name, 10),
			Values: []barchart.BarValue{{
				Name:  string(skill.Category),
				Value: float64(skill.Level),
				Style: lipgloss.NewStyle().Foreground(skillColor(skill.Category)),
			}},
		})
	}
	if len(bars) == 0 {
		return
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s skillsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Skills")

	if len(s.snap.skills) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No skills"),
		))
	}

	var rows []string
	rows = append(rows, title, "")

	barWidth := max(10, min(30, w-50))
	for i, skill := range s.snap.skills {
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dot := lipgloss.NewStyle().Foreground(skillColor(skill.Category)).Render("●")
		progress := mutedStyle.Render("MAX")
		if skill.Level < skill.MaxLevel {
			progress = fmt.Sprintf("%s %d/%d",
				highlightStyle.Render(meter(skill.CurrentXP, skill.XPRequired, barWidth)),
				skill.CurrentXP, skill.XPRequired)
		}
		rows = append(rows, fmt.Sprintf("%s%s %s %s  %s",
			cursor, dot,
			style.Render(fmt.Sprintf("%-20s", skill.Name)),
			goldStyle.Render(fmt.Sprintf("Lv %2d/%d", skill.Level, skill.MaxLevel)),
			progress,
		))
		if i == s.cursor && skill.Description != "" {
			rows = append(rows, mutedStyle.Render("      "+skill.Description))
		}
	}

	rows = append(rows, "", s.chart.View(), "")
	rows = append(rows, mutedStyle.Render("  enter: level up"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
