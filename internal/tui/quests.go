package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/lifequest/internal/engine"
	"github.com/sadopc/lifequest/internal/game"
)

type questsModel struct {
	engine *engine.Engine
	width  int
	height int

	snap   snapshot
	cursor int
	filter int // index into game.QuestCategories, -1 = all

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle         *string
	formDescription   *string
	formFrequency     *game.Frequency
	formDifficulty    *game.Difficulty
	formSkillCategory *game.SkillCategory
	formCategory      *game.QuestCategory
	formPriority      *game.Priority
	formDueDate       *string
}

func newQuestsModel(e *engine.Engine) questsModel {
	title, desc, due := "", "", ""
	freq := game.FrequencyDaily
	diff := game.DifficultyMedium
	skill := game.SkillHealth
	cat := game.QuestSideQuest
	prio := game.Priority("")
	return questsModel{
		engine:            e,
		filter:            -1,
		formTitle:         &title,
		formDescription:   &desc,
		formFrequency:     &freq,
		formDifficulty:    &diff,
		formSkillCategory: &skill,
		formCategory:      &cat,
		formPriority:      &prio,
		formDueDate:       &due,
	}
}

func (q *questsModel) setSize(w, h int) {
	q.width = w
	q.height = h
}

// visible returns the quests that pass the category filter.
func (q questsModel) visible() []game.Quest {
	if q.filter < 0 || q.filter >= len(game.QuestCategories) {
		return q.snap.quests
	}
	want := game.QuestCategories[q.filter]
	var out []game.Quest
	for _, quest := range q.snap.quests {
		if quest.Category == want {
			out = append(out, quest)
		}
	}
	return out
}

func (q questsModel) filterName() string {
	if q.filter < 0 || q.filter >= len(game.QuestCategories) {
		return "All"
	}
	return string(game.QuestCategories[q.filter])
}

func (q *questsModel) clampCursor() {
	n := len(q.visible())
	if q.cursor >= n {
		q.cursor = max(0, n-1)
	}
}

func (q questsModel) update(msg tea.Msg) (questsModel, tea.Cmd) {
	if q.formActive && q.form != nil {
		return q.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return q, nil
	}
	visible := q.visible()

	switch {
	case key.Matches(km, keys.Up):
		if q.cursor > 0 {
			q.cursor--
		}
	case key.Matches(km, keys.Down):
		if q.cursor < len(visible)-1 {
			q.cursor++
		}
	case key.Matches(km, keys.Filter):
		q.filter++
		if q.filter >= len(game.QuestCategories) {
			q.filter = -1
		}
		q.cursor = 0
	case key.Matches(km, keys.Enter):
		if q.cursor < len(visible) {
			return q, q.complete(visible[q.cursor])
		}
	case key.Matches(km, keys.New):
		return q.showForm()
	}
	return q, nil
}

func (q questsModel) complete(quest game.Quest) tea.Cmd {
	if quest.Completed {
		return func() tea.Msg {
			return statusMsg{text: quest.Title + " is already done"}
		}
	}
	if !q.snap.hasCharacter {
		return func() tea.Msg {
			return statusMsg{text: "Create a character first (press 1, then n)", isError: true}
		}
	}
	return func() tea.Msg {
		if !q.engine.CompleteQuest(quest.ID) {
			return statusMsg{text: "Could not complete " + quest.Title, isError: true}
		}
		return statusMsg{text: fmt.Sprintf("Completed %s (+%d XP, +%d coins)", quest.Title, quest.XPReward, quest.CoinReward)}
	}
}

func (q questsModel) showForm() (questsModel, tea.Cmd) {
	*q.formTitle = ""
	*q.formDescription = ""
	*q.formFrequency = game.FrequencyDaily
	*q.formDifficulty = game.DifficultyMedium
	*q.formSkillCategory = game.SkillHealth
	*q.formCategory = game.QuestSideQuest
	*q.formPriority = ""
	*q.formDueDate = ""

	difficultyOptions := make([]huh.Option[game.Difficulty], len(game.Difficulties))
	for i, d := range game.Difficulties {
		r := game.RewardFor(d)
		difficultyOptions[i] = huh.NewOption(fmt.Sprintf("%s (%d XP, %d coins)", d, r.XP, r.Coins), d)
	}
	priorityOptions := []huh.Option[game.Priority]{huh.NewOption("None", game.Priority(""))}
	priorityOptions = append(priorityOptions, huh.NewOptions(game.Priorities...)...)

	q.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(q.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().Title("Description").Value(q.formDescription),
			huh.NewInput().
				Title("Due date (yyyy-mm-dd, optional)").
				Value(q.formDueDate).
				Validate(validateDueDate),
		).Title("New Quest"),
		huh.NewGroup(
			huh.NewSelect[game.Frequency]().Title("Frequency").
				Options(huh.NewOptions(game.Frequencies...)...).
				Value(q.formFrequency),
			huh.NewSelect[game.Difficulty]().Title("Difficulty").
				Options(difficultyOptions...).
				Value(q.formDifficulty),
			huh.NewSelect[game.SkillCategory]().Title("Skill trained").
				Options(huh.NewOptions(game.SkillCategories...)...).
				Value(q.formSkillCategory),
			huh.NewSelect[game.QuestCategory]().Title("Category").
				Options(huh.NewOptions(game.QuestCategories...)...).
				Value(q.formCategory),
			huh.NewSelect[game.Priority]().Title("Priority").
				Options(priorityOptions...).
				Value(q.formPriority),
		).Title("Details"),
	).WithShowHelp(true).WithShowErrors(true)

	q.formActive = true
	return q, q.form.Init()
}

func validateDueDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(game.DateLayout, s); err != nil {
		return fmt.Errorf("use yyyy-mm-dd")
	}
	return nil
}

// draft builds a quest draft from the form values. Rewards come from the
// difficulty table.
func (q questsModel) draft() game.QuestDraft {
	r := game.RewardFor(*q.formDifficulty)
	return game.QuestDraft{
		Title:         strings.TrimSpace(*q.formTitle),
		Description:   strings.TrimSpace(*q.formDescription),
		Frequency:     *q.formFrequency,
		Difficulty:    *q.formDifficulty,
		SkillCategory: *q.formSkillCategory,
		Category:      *q.formCategory,
		Priority:      *q.formPriority,
		XPReward:      r.XP,
		CoinReward:    r.Coins,
		DueDate:       strings.TrimSpace(*q.formDueDate),
	}
}

func (q questsModel) updateForm(msg tea.Msg) (questsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			q.formActive = false
			q.form = nil
			return q, nil
		}
	}

	form, cmd := q.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		q.form = f
	}

	if q.form.State == huh.StateCompleted {
		q.formActive = false
		d := q.draft()
		return q, func() tea.Msg {
			added, ok := q.engine.AddQuest(d)
			if !ok {
				return statusMsg{text: "Quest was not added", isError: true}
			}
			return statusMsg{text: "New quest: " + added.Title}
		}
	}

	return q, cmd
}

func (q questsModel) view() string {
	w := q.width - 4

	if q.formActive && q.form != nil {
		return activePanelStyle.Width(w).Render(q.form.View())
	}

	title := titleStyle.Render("Quests")
	filter := mutedStyle.Render("  [" + q.filterName() + "]")
	visible := q.visible()

	if len(visible) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title+filter,
			"",
			mutedStyle.Render("No quests here. Press n to add one or f to change the filter."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title+filter)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-26s %-8s %-8s %-10s %s", "", "Quest", "Freq", "Diff", "Reward", "Due"))
	rows = append(rows, header)

	for i, quest := range visible {
		cursor := "  "
		style := normalItemStyle
		if quest.Completed {
			style = doneItemStyle
		}
		if i == q.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := "[ ]"
		if quest.Completed {
			check = successStyle.Render("[x]")
		}

		row := fmt.Sprintf("%s%s %s", cursor, check, style.Render(fmt.Sprintf("%-26s %-8s %-8s %-10s",
			truncate(quest.Title, 26),
			quest.Frequency,
			quest.Difficulty,
			fmt.Sprintf("%dxp/%dc", quest.XPReward, quest.CoinReward),
		)))

		due := dueLabel(quest, q.snap.now)
		switch {
		case game.IsOverdue(quest, q.snap.now):
			due = errorStyle.Render(due)
		case strings.HasPrefix(due, "due today"), strings.HasPrefix(due, "due tomorrow"):
			due = warningStyle.Render(due)
		default:
			due = mutedStyle.Render(due)
		}
		rows = append(rows, row+" "+due)

		if i == q.cursor && quest.Description != "" {
			rows = append(rows, mutedStyle.Render("      "+quest.Description))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: complete  n: new quest  f: filter"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
