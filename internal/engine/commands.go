package engine

import (
	"strings"
	"time"

	"github.com/sadopc/lifequest/internal/game"
)

// run executes fn under the engine lock and publishes the events it returns
// once the lock is released.
func (e *Engine) run(fn func(now time.Time) []game.Event) {
	e.mu.Lock()
	now := e.clock.Now()
	events := fn(now)
	e.mu.Unlock()
	e.publish(stamp(events, now))
}

// CreateCharacter creates the player character. It is a no-op when a
// character already exists or the input is invalid.
func (e *Engine) CreateCharacter(name string, class game.CharacterClass) (created game.Character, ok bool) {
	name = strings.TrimSpace(name)
	e.run(func(now time.Time) []game.Event {
		if e.character != nil {
			e.log.Debug("character already exists", "id", e.character.ID)
			return nil
		}
		if name == "" || !class.IsValid() {
			e.log.Warn("invalid character", "name", name, "class", class)
			return nil
		}

		c := game.NewCharacter(e.newID(), name, class)
		e.character = &c
		e.lastHPUpdate = now
		created, ok = c, true

		events := []game.Event{{Kind: game.EventCharacterCreated, Subject: c.ID, Title: c.Name}}
		var unlocked []game.Event
		e.achievements, unlocked = game.EvaluateCharacter(e.achievements, c, now)
		events = append(events, unlocked...)

		e.saveCharacter()
		e.write(KeyLastHPUpdate, e.lastHPUpdate)
		e.write(KeyAchievements, e.achievements)
		return events
	})
	return created, ok
}

// CompleteQuest completes the quest, pays its reward to the character and
// routes its XP to the skills of the quest's skill category. Unknown or
// already completed quests are ignored, as is any call before a character
// exists.
func (e *Engine) CompleteQuest(id string) (ok bool) {
	e.run(func(now time.Time) []game.Event {
		if e.character == nil {
			e.log.Debug("complete quest without character", "quest", id)
			return nil
		}
		quests, q, done := game.CompleteQuest(e.quests, id)
		if !done {
			e.log.Debug("complete quest ignored", "quest", id)
			return nil
		}
		ok = true
		e.quests = quests

		events := []game.Event{{
			Kind:    game.EventQuestCompleted,
			Subject: q.ID,
			Title:   q.Title,
			XP:      q.XPReward,
			Coins:   q.CoinReward,
		}}

		c, leveled := game.GrantReward(*e.character, q.XPReward, q.CoinReward)
		e.character = &c
		events = append(events, leveled...)

		var skillEvents []game.Event
		e.skills, skillEvents = game.AddSkillXP(e.skills, q.SkillCategory, q.XPReward)
		events = append(events, skillEvents...)

		events = append(events, e.evaluateAll(now)...)

		e.write(KeyQuests, e.quests)
		e.saveCharacter()
		e.write(KeySkills, e.skills)
		e.write(KeyAchievements, e.achievements)
		return events
	})
	return ok
}

// AddQuest appends a new active quest built from d. Invalid drafts are
// logged and ignored.
func (e *Engine) AddQuest(d game.QuestDraft) (added game.Quest, ok bool) {
	e.run(func(now time.Time) []game.Event {
		q, err := game.NewQuest(e.newID(), d)
		if err != nil {
			e.log.Warn("add quest rejected", "title", d.Title, "err", err)
			return nil
		}
		e.quests = append(game.CloneQuests(e.quests), q)
		added, ok = q, true

		e.write(KeyQuests, e.quests)
		return []game.Event{{Kind: game.EventQuestAdded, Subject: q.ID, Title: q.Title}}
	})
	return added, ok
}

// LevelUpSkill forces one level on the skill. Skills at max level and
// unknown ids are ignored.
func (e *Engine) LevelUpSkill(id string) (ok bool) {
	e.run(func(now time.Time) []game.Event {
		skills, events := game.ManualLevelUp(e.skills, id)
		if len(events) == 0 {
			e.log.Debug("level up skill ignored", "skill", id)
			return nil
		}
		ok = true
		e.skills = skills

		var unlocked []game.Event
		e.achievements, unlocked = game.EvaluateSkills(e.achievements, e.skills, now)
		events = append(events, unlocked...)

		e.write(KeySkills, e.skills)
		e.write(KeyAchievements, e.achievements)
		return events
	})
	return ok
}

func (e *Engine) UpdateAvatar(url string) (ok bool) {
	e.run(func(now time.Time) []game.Event {
		if e.character == nil {
			return nil
		}
		c := *e.character
		c.AvatarURL = strings.TrimSpace(url)
		e.character = &c
		ok = true
		e.saveCharacter()
		return nil
	})
	return ok
}

// ApplyHPLoss removes amount HP from the character, flooring at zero.
// Regeneration restarts from now.
func (e *Engine) ApplyHPLoss(amount int) (ok bool) {
	e.run(func(now time.Time) []game.Event {
		if e.character == nil || amount <= 0 {
			return nil
		}
		ok = true
		events := e.loseHP(amount, now)
		e.saveCharacter()
		e.write(KeyLastHPUpdate, e.lastHPUpdate)
		e.write(KeyAchievements, e.achievements)
		return events
	})
	return ok
}

// ResetDailyQuests marks every daily quest active again and returns how
// many were reset.
func (e *Engine) ResetDailyQuests() (n int) {
	e.run(func(now time.Time) []game.Event {
		var events []game.Event
		n, events = e.reset(game.FrequencyDaily, now)
		return events
	})
	return n
}

func (e *Engine) ResetWeeklyQuests() (n int) {
	e.run(func(now time.Time) []game.Event {
		var events []game.Event
		n, events = e.reset(game.FrequencyWeekly, now)
		return events
	})
	return n
}

// CheckQuestDeadlines runs the deadline sweep and returns the number of
// quests that were missed.
func (e *Engine) CheckQuestDeadlines() (missed int) {
	e.run(func(now time.Time) []game.Event {
		var events []game.Event
		missed, events = e.checkDeadlines(now)
		return events
	})
	return missed
}

// Regenerate applies passive HP regeneration up to now. It reports whether
// any HP was gained.
func (e *Engine) Regenerate() (ok bool) {
	e.run(func(now time.Time) []game.Event {
		events := e.regenerate(now)
		ok = len(events) > 0
		return events
	})
	return ok
}

// RunMaintenance applies regeneration, the daily and weekly reset checks
// and the deadline sweep, the same work Load does at startup.
func (e *Engine) RunMaintenance() {
	e.run(func(now time.Time) []game.Event {
		events := e.regenerate(now)
		return append(events, e.maintain(now)...)
	})
}

// ============================================================
// Preferences
// ============================================================

func (e *Engine) SetDarkMode(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prefs.DarkMode = on
	e.write(KeyDarkMode, on)
}

func (e *Engine) SetNotifications(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prefs.Notifications = on
	e.write(KeyNotifications, on)
}

// SetHPLossRate changes the penalty applied per missed quest. Unknown
// rates are ignored.
func (e *Engine) SetHPLossRate(r game.HPLossRate) bool {
	if !r.IsValid() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prefs.HPLossRate = r
	e.write(KeyHPLossRate, r)
	return true
}
