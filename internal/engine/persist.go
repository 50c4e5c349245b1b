package engine

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/sadopc/lifequest/internal/game"
	"github.com/sadopc/lifequest/internal/store"
)

// Persisted keys. The layout is stable across releases.
const (
	KeyCharacter       = "life-rpg-character"
	KeyQuests          = "life-rpg-quests"
	KeySkills          = "life-rpg-skills"
	KeyAchievements    = "life-rpg-achievements"
	KeyLastDailyReset  = "life-rpg-last-daily-reset"
	KeyLastWeeklyReset = "life-rpg-last-weekly-reset"
	KeyLastHPUpdate    = "life-rpg-last-hp-update"
	KeyDarkMode        = "rpg-dark-mode"
	KeyNotifications   = "rpg-notifications"
	KeyHPLossRate      = "rpg-hp-loss-rate"
)

// Load replaces the in-memory state with the persisted one, then applies
// regeneration and the startup maintenance. Missing or unreadable keys fall
// back to the seeds. The resulting state is written back.
func (e *Engine) Load() {
	e.mu.Lock()
	now := e.clock.Now()
	today := game.FormatDate(now)

	var c game.Character
	if e.read(KeyCharacter, &c) && c.ID != "" {
		if c.MaxHP <= 0 {
			c.MaxHP = game.DefaultMaxHP
		}
		if c.Level < 1 {
			c.Level = 1
		}
		if c.MaxXP <= 0 {
			c.MaxXP = game.MaxXPAt(c.Level)
		}
		e.character = &c
	}

	var quests []game.Quest
	if e.read(KeyQuests, &quests) && quests != nil {
		e.quests = quests
	}
	var skills []game.Skill
	if e.read(KeySkills, &skills) && skills != nil {
		e.skills = skills
	}
	var achievements []game.Achievement
	if e.read(KeyAchievements, &achievements) && achievements != nil {
		e.achievements = achievements
	}

	e.lastDailyReset = today
	var daily string
	if e.read(KeyLastDailyReset, &daily) && daily != "" {
		e.lastDailyReset = daily
	}
	e.lastWeeklyReset = today
	var weekly string
	if e.read(KeyLastWeeklyReset, &weekly) && weekly != "" {
		e.lastWeeklyReset = weekly
	}
	e.lastHPUpdate = now
	var lastHP time.Time
	if e.read(KeyLastHPUpdate, &lastHP) && !lastHP.IsZero() {
		e.lastHPUpdate = lastHP
	}

	var dark, notify bool
	if e.read(KeyDarkMode, &dark) {
		e.prefs.DarkMode = dark
	}
	if e.read(KeyNotifications, &notify) {
		e.prefs.Notifications = notify
	}
	var rate game.HPLossRate
	if e.read(KeyHPLossRate, &rate) && rate.IsValid() {
		e.prefs.HPLossRate = rate
	}

	var events []game.Event
	events = append(events, e.regenerate(now)...)
	events = append(events, e.maintain(now)...)
	events = append(events, e.evaluateAll(now)...)
	e.saveAll()
	e.mu.Unlock()

	e.publish(stamp(events, now))
}

// read decodes key into v. It reports false when the key is missing or
// cannot be read or decoded; failures other than a missing key are logged.
func (e *Engine) read(key string, v any) bool {
	data, err := e.store.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		e.log.Error("load state", "key", key, "err", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		e.log.Warn("decode state, using default", "key", key, "err", err)
		return false
	}
	return true
}

// write persists v under key. Failures are logged and otherwise ignored.
func (e *Engine) write(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		e.log.Error("encode state", "key", key, "err", err)
		return
	}
	if err := e.store.Put(key, data); err != nil {
		e.log.Error("save state", "key", key, "err", err)
	}
}

func (e *Engine) saveCharacter() {
	if e.character != nil {
		e.write(KeyCharacter, e.character)
	}
}

func (e *Engine) saveAll() {
	e.saveCharacter()
	e.write(KeyQuests, e.quests)
	e.write(KeySkills, e.skills)
	e.write(KeyAchievements, e.achievements)
	e.write(KeyLastDailyReset, e.lastDailyReset)
	e.write(KeyLastWeeklyReset, e.lastWeeklyReset)
	e.write(KeyLastHPUpdate, e.lastHPUpdate)
	e.write(KeyDarkMode, e.prefs.DarkMode)
	e.write(KeyNotifications, e.prefs.Notifications)
	e.write(KeyHPLossRate, e.prefs.HPLossRate)
}
