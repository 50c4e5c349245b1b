package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/lifequest/internal/engine"
	"github.com/sadopc/lifequest/internal/export"
	"github.com/sadopc/lifequest/internal/game"
	"github.com/sadopc/lifequest/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	engine *engine.Engine
	store  *store.Store
	events <-chan game.Event
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	snap         snapshot
	dashboard    dashboardModel
	quests       questsModel
	skills       skillsModel
	achievements achievementsModel
	reports      reportsModel
	settings     settingsModel

	help      help.Model
	status    string
	statusErr bool
}

// NewApp builds the root model. events may be nil; when set, every engine
// event read from it refreshes the views.
func NewApp(e *engine.Engine, s *store.Store, events <-chan game.Event) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		engine:       e,
		store:        s,
		events:       events,
		activeView:   viewDashboard,
		dashboard:    newDashboardModel(e, s),
		quests:       newQuestsModel(e),
		skills:       newSkillsModel(e),
		achievements: newAchievementsModel(),
		reports:      newReportsModel(s),
		settings:     newSettingsModel(e),
		help:         h,
	}
	a.sync(time.Now())
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		a.reports.refresh(),
		tickCmd(),
		waitForEvent(a.events),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent blocks on the engine event channel and delivers one event.
func waitForEvent(events <-chan game.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return engineEventMsg{event: ev}
	}
}

// sync copies the engine state into every view and follows the dark mode
// preference.
func (a *App) sync(now time.Time) {
	a.snap = takeSnapshot(a.engine, now)
	if a.snap.prefs.DarkMode != darkTheme {
		applyTheme(a.snap.prefs.DarkMode)
	}
	a.dashboard.snap = a.snap
	a.quests.snap = a.snap
	a.quests.clampCursor()
	a.skills.setSnapshot(a.snap)
	a.achievements.snap = a.snap
	if a.achievements.cursor >= len(a.snap.achievements) {
		a.achievements.cursor = max(0, len(a.snap.achievements)-1)
	}
	a.settings.snap = a.snap
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.quests.setSize(a.width, contentHeight)
		a.skills.setSize(a.width, contentHeight)
		a.achievements.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.reports.buildChart()
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewQuests)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewSkills)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewAchievements)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewReports)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		a.sync(time.Time(msg))
		return a, tickCmd()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		a.sync(time.Now())
		return a, tea.Batch(a.dashboard.loadData(), a.reports.refresh())

	case engineEventMsg:
		a.sync(time.Now())
		if a.snap.prefs.Notifications {
			a.status = msg.event.Message()
			a.statusErr = msg.event.Kind == game.EventQuestsExpired
		}
		cmds := []tea.Cmd{waitForEvent(a.events), a.dashboard.loadData()}
		if msg.event.Kind == game.EventQuestCompleted {
			cmds = append(cmds, a.reports.refresh())
		}
		return a, tea.Batch(cmds...)

	case dashboardDataMsg:
		a.dashboard, _ = a.dashboard.update(msg)
		return a, nil

	case reportsDataMsg:
		a.reports, _ = a.reports.update(msg)
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	a.sync(time.Now())
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewQuests:
		a.quests, cmd = a.quests.update(msg)
	case viewSkills:
		a.skills, cmd = a.skills.update(msg)
	case viewAchievements:
		a.achievements, cmd = a.achievements.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewQuests:
		return a.quests.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewReports:
		return a.reports.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewQuests:
		content = a.quests.view()
	case viewSkills:
		content = a.skills.view()
	case viewAchievements:
		content = a.achievements.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("lifequest")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Character vitals in footer
	vitals := ""
	if a.snap.hasCharacter {
		c := a.snap.character
		hp := fmt.Sprintf(" ♥ %d/%d", c.HP, c.MaxHP)
		if c.HP*5 < c.MaxHP {
			vitals = errorStyle.Render(hp)
		} else {
			vitals = successStyle.Render(hp)
		}
		vitals += goldStyle.Render(fmt.Sprintf("  Lv %d", c.Level))
	}

	left := footerStyle.Render(helpView)
	right := vitals + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Activity")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path, err := exportActivity(a.store, home, format, time.Now())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

// exportActivity writes the whole journal to dir as CSV (format 0) or JSON
// and returns the file path.
func exportActivity(s *store.Store, dir string, format int, now time.Time) (string, error) {
	activities, err := s.ListActivity(store.ActivityFilter{})
	if err != nil {
		return "", err
	}

	dateStr := now.Format("2006-01-02")
	if format == 0 {
		path := filepath.Join(dir, fmt.Sprintf("lifequest-export-%s.csv", dateStr))
		return path, export.ToCSV(activities, path)
	}
	path := filepath.Join(dir, fmt.Sprintf("lifequest-export-%s.json", dateStr))
	return path, export.ToJSON(activities, path)
}
