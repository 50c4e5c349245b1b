package engine

import (
	"time"

	"github.com/sadopc/lifequest/internal/game"
)

// The helpers below expect e.mu to be held.

// maintain runs the daily and weekly reset checks followed by the deadline
// sweep.
func (e *Engine) maintain(now time.Time) []game.Event {
	var events []game.Event
	today := game.FormatDate(now)

	if e.lastDailyReset != today {
		_, reset := e.reset(game.FrequencyDaily, now)
		events = append(events, reset...)
		e.lastDailyReset = today
		e.write(KeyLastDailyReset, today)
	}
	if e.weeklyResetDue(now) {
		_, reset := e.reset(game.FrequencyWeekly, now)
		events = append(events, reset...)
		e.lastWeeklyReset = today
		e.write(KeyLastWeeklyReset, today)
	}

	_, expired := e.checkDeadlines(now)
	return append(events, expired...)
}

// weeklyResetDue reports whether more than a week has passed since the last
// weekly reset. An unreadable date counts as due.
func (e *Engine) weeklyResetDue(now time.Time) bool {
	last, err := game.ParseDate(e.lastWeeklyReset, now.Location())
	if err != nil {
		e.log.Warn("bad weekly reset date", "value", e.lastWeeklyReset, "err", err)
		return true
	}
	return now.After(last.AddDate(0, 0, 7))
}

// reset reactivates quests of frequency f. Quest-count achievements are
// re-evaluated since the completed count drops.
func (e *Engine) reset(f game.Frequency, now time.Time) (int, []game.Event) {
	quests, n := game.ResetQuests(e.quests, f)
	e.quests = quests
	e.write(KeyQuests, e.quests)
	if n == 0 {
		return 0, nil
	}
	events := []game.Event{{Kind: game.EventQuestsReset, Title: string(f), Count: n}}
	events = append(events, e.evaluateAll(now)...)
	e.write(KeyAchievements, e.achievements)
	return n, events
}

func (e *Engine) checkDeadlines(now time.Time) (int, []game.Event) {
	quests, sweep := game.SweepDeadlines(e.quests, now, e.prefs.HPLossRate)
	if len(sweep.Missed) == 0 {
		return 0, nil
	}
	e.quests = quests
	e.write(KeyQuests, e.quests)

	events := []game.Event{{
		Kind:    game.EventQuestsExpired,
		Count:   len(sweep.Missed),
		HPDelta: -sweep.Penalty,
	}}
	if e.character != nil {
		events = append(events, e.loseHP(sweep.Penalty, now)...)
		e.saveCharacter()
		e.write(KeyLastHPUpdate, e.lastHPUpdate)
	}
	// Failed one-time quests now count as completed.
	events = append(events, e.evaluateAll(now)...)
	e.write(KeyAchievements, e.achievements)
	return len(sweep.Missed), events
}

func (e *Engine) regenerate(now time.Time) []game.Event {
	if e.character == nil {
		return nil
	}
	old := e.character.HP
	c, last := game.Regenerate(*e.character, e.lastHPUpdate, now)
	if last.Equal(e.lastHPUpdate) {
		return nil
	}
	e.character = &c
	e.lastHPUpdate = last
	events := e.hpChanged(old, now)

	e.saveCharacter()
	e.write(KeyLastHPUpdate, e.lastHPUpdate)
	e.write(KeyAchievements, e.achievements)
	return events
}

func (e *Engine) loseHP(amount int, now time.Time) []game.Event {
	old := e.character.HP
	c := game.LoseHP(*e.character, amount)
	e.character = &c
	e.lastHPUpdate = now
	return e.hpChanged(old, now)
}

// hpChanged reports an HP change from old and re-evaluates the recovery
// achievement on that single transition.
func (e *Engine) hpChanged(old int, now time.Time) []game.Event {
	c := e.character
	if c.HP == old {
		return nil
	}
	events := []game.Event{{
		Kind:    game.EventHPChanged,
		Subject: c.ID,
		Title:   c.Name,
		HPDelta: c.HP - old,
	}}

	var unlocked []game.Event
	e.achievements, unlocked = game.EvaluateHealth(e.achievements, old, c.HP, c.MaxHP, now)
	return append(events, unlocked...)
}

func (e *Engine) evaluateAll(now time.Time) []game.Event {
	var events, unlocked []game.Event
	e.achievements, unlocked = game.EvaluateQuests(e.achievements, e.quests, now)
	events = append(events, unlocked...)
	e.achievements, unlocked = game.EvaluateSkills(e.achievements, e.skills, now)
	events = append(events, unlocked...)
	if e.character != nil {
		e.achievements, unlocked = game.EvaluateCharacter(e.achievements, *e.character, now)
		events = append(events, unlocked...)
	}
	return events
}
