package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sadopc/lifequest/internal/engine"
	"github.com/sadopc/lifequest/internal/game"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewQuests
	viewSkills
	viewAchievements
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Quests", "Skills", "Achievements", "Reports", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// engineEventMsg carries one event published by the engine.
type engineEventMsg struct {
	event game.Event
}

// snapshot is a copy of the engine state taken once per tick or event and
// handed to every view.
type snapshot struct {
	character    game.Character
	hasCharacter bool
	quests       []game.Quest
	skills       []game.Skill
	achievements []game.Achievement
	prefs        engine.Preferences
	nextRegen    time.Time
	regenPending bool
	now          time.Time
}

func takeSnapshot(e *engine.Engine, now time.Time) snapshot {
	c, ok := e.Character()
	next, pending := e.NextRegenAt()
	return snapshot{
		character:    c,
		hasCharacter: ok,
		quests:       e.Quests(),
		skills:       e.Skills(),
		achievements: e.Achievements(),
		prefs:        e.Preferences(),
		nextRegen:    next,
		regenPending: pending,
		now:          now,
	}
}

// --- Helpers ---

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

// meter renders a fixed-width bar filled to cur/max.
func meter(cur, total, width int) string {
	if width < 1 {
		width = 1
	}
	filled := 0
	if total > 0 {
		filled = cur * width / total
	}
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// hpBar colors the HP meter by the remaining fraction.
func hpBar(hp, maxHP, width int) string {
	bar := meter(hp, maxHP, width)
	switch {
	case maxHP > 0 && hp*5 < maxHP:
		return errorStyle.Render(bar)
	case maxHP > 0 && hp*2 < maxHP:
		return warningStyle.Render(bar)
	default:
		return successStyle.Render(bar)
	}
}

// dueLabel describes a quest deadline relative to now. Overdue and
// "due tomorrow" are reported by calendar day.
func dueLabel(q game.Quest, now time.Time) string {
	if q.DueDate == "" {
		return ""
	}
	due, err := game.ParseDate(q.DueDate, now.Location())
	if err != nil {
		return q.DueDate
	}
	today := game.StartOfDay(now)
	switch {
	case q.Completed:
		return "due " + q.DueDate
	case due.Equal(today) && game.IsOverdue(q, now):
		return "overdue (today)"
	case game.IsOverdue(q, now):
		return "overdue (" + humanize.RelTime(due, today, "ago", "from now") + ")"
	case due.Equal(today):
		return "due today"
	case due.Equal(today.AddDate(0, 0, 1)):
		return "due tomorrow"
	}
	return "due " + humanize.RelTime(due, today, "ago", "from now")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
