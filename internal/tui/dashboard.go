package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/lifequest/internal/engine"
	"github.com/sadopc/lifequest/internal/game"
	"github.com/sadopc/lifequest/internal/store"
)

type dashboardModel struct {
	engine *engine.Engine
	store  *store.Store
	width  int
	height int

	snap    snapshot
	todayXP int64
	recent  []store.Activity

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formName  *string
	formClass *game.CharacterClass
}

func newDashboardModel(e *engine.Engine, s *store.Store) dashboardModel {
	name := ""
	class := game.ClassWarrior
	return dashboardModel{
		engine:    e,
		store:     s,
		formName:  &name,
		formClass: &class,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	todayXP int64
	recent  []store.Activity
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		if d.store == nil {
			return dashboardDataMsg{}
		}
		total, _ := d.store.TodayXP(time.Now())
		recent, _ := d.store.ListActivity(store.ActivityFilter{Limit: 6})
		return dashboardDataMsg{todayXP: total, recent: recent}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.todayXP = msg.todayXP
		d.recent = msg.recent
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
			if d.snap.hasCharacter {
				return d, nil
			}
			return d.showForm()
		}
	}
	return d, nil
}

func (d dashboardModel) showForm() (dashboardModel, tea.Cmd) {
	*d.formName = ""
	*d.formClass = game.ClassWarrior

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hero name").
				Value(d.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a hero needs a name")
					}
					return nil
				}),
			huh.NewSelect[game.CharacterClass]().
				Title("Class").
				Options(huh.NewOptions(game.CharacterClasses...)...).
				Value(d.formClass),
		).Title("Create your character"),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		name, class := strings.TrimSpace(*d.formName), *d.formClass
		return d, func() tea.Msg {
			c, ok := d.engine.CreateCharacter(name, class)
			if !ok {
				return statusMsg{text: "A character already exists", isError: true}
			}
			return statusMsg{text: fmt.Sprintf("%s the %s begins their quest", c.Name, c.Class)}
		}
	}

	return d, cmd
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	if d.formActive && d.form != nil {
		return activePanelStyle.Width(contentWidth).Render(d.form.View())
	}

	if !d.snap.hasCharacter {
		content := lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("No hero yet"),
			"",
			mutedStyle.Render("Press n to create your character"),
		)
		return panelStyle.Width(contentWidth).Align(lipgloss.Center).Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderCharacterPanel(contentWidth),
		d.renderTodayPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderCharacterPanel(w int) string {
	c := d.snap.character
	barWidth := max(10, min(40, w-30))

	name := titleStyle.Render(c.Name)
	class := highlightStyle.Render(string(c.Class))
	level := goldStyle.Render(fmt.Sprintf("Lv %d", c.Level))
	header := fmt.Sprintf("%s  %s  %s", name, class, level)

	hpLine := fmt.Sprintf("HP    %s %d/%d", hpBar(c.HP, c.MaxHP, barWidth), c.HP, c.MaxHP)
	xpLine := fmt.Sprintf("XP    %s %d/%d",
		highlightStyle.Render(meter(c.XP, c.MaxXP, barWidth)), c.XP, c.MaxXP)
	coins := fmt.Sprintf("Coins %s", goldStyle.Render(humanize.Comma(int64(c.Coins))))

	regen := mutedStyle.Render("Full health")
	if d.snap.regenPending {
		left := d.snap.nextRegen.Sub(d.snap.now)
		regen = mutedStyle.Render("Next HP in " + formatCountdown(left))
	}

	rows := []string{header, "", hpLine, xpLine, coins, regen}
	if c.AvatarURL != "" {
		rows = append(rows, mutedStyle.Render("Avatar "+c.AvatarURL))
	}

	style := panelStyle
	if c.HP*5 < c.MaxHP {
		style = activePanelStyle
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	xp := highlightStyle.Render(fmt.Sprintf("+%d XP", d.todayXP))

	var daily, dailyDone, overdue int
	for _, q := range d.snap.quests {
		if q.Frequency == game.FrequencyDaily {
			daily++
			if q.Completed {
				dailyDone++
			}
		}
		if game.IsOverdue(q, d.snap.now) {
			overdue++
		}
	}

	rows := []string{
		fmt.Sprintf("%s  %s", title, xp),
		fmt.Sprintf("  Daily quests %d/%d", dailyDone, daily),
	}
	if overdue > 0 {
		rows = append(rows, errorStyle.Render("  "+plural(overdue, "overdue quest")))
	}

	unlocked := 0
	for _, a := range d.snap.achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	rows = append(rows, fmt.Sprintf("  Achievements %d/%d", unlocked, len(d.snap.achievements)))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Activity")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing yet. Complete a quest!"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, a := range d.recent {
		when := mutedStyle.Render(fmt.Sprintf("%-14s", humanize.Time(a.CreatedAt)))
		rows = append(rows, fmt.Sprintf("  %s %s", when, a.Detail))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
