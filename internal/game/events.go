package game

import (
	"fmt"
	"time"
)

type EventKind string

const (
	EventQuestCompleted      EventKind = "quest_completed"
	EventQuestAdded          EventKind = "quest_added"
	EventQuestsReset         EventKind = "quests_reset"
	EventQuestsExpired       EventKind = "quests_expired"
	EventLevelUp             EventKind = "level_up"
	EventSkillLevelUp        EventKind = "skill_level_up"
	EventAchievementUnlocked EventKind = "achievement_unlocked"
	EventHPChanged           EventKind = "hp_changed"
	EventCharacterCreated    EventKind = "character_created"
)

// Event is an observable state transition. Rules emit events with a zero At;
// the engine stamps them before publishing.
type Event struct {
	Kind    EventKind `json:"kind"`
	Subject string    `json:"subject,omitempty"`
	Title   string    `json:"title,omitempty"`
	Level   int       `json:"level,omitempty"`
	XP      int       `json:"xp,omitempty"`
	Coins   int       `json:"coins,omitempty"`
	HPDelta int       `json:"hpDelta,omitempty"`
	Count   int       `json:"count,omitempty"`
	At      time.Time `json:"at"`
}

// Message is a one-line human description used for status lines and logs.
func (e Event) Message() string {
	switch e.Kind {
	case EventQuestCompleted:
		return fmt.Sprintf("Quest complete: %s (+%d XP, +%d coins)", e.Title, e.XP, e.Coins)
	case EventQuestAdded:
		return fmt.Sprintf("New quest: %s", e.Title)
	case EventQuestsReset:
		return fmt.Sprintf("%s quests reset (%d)", e.Title, e.Count)
	case EventQuestsExpired:
		s := "s"
		if e.Count == 1 {
			s = ""
		}
		return fmt.Sprintf("Quests expired! You lost %d HP for missing %d quest%s.", -e.HPDelta, e.Count, s)
	case EventLevelUp:
		return fmt.Sprintf("Level up! You've reached level %d!", e.Level)
	case EventSkillLevelUp:
		return fmt.Sprintf("%s reached level %d", e.Title, e.Level)
	case EventAchievementUnlocked:
		return fmt.Sprintf("Achievement unlocked! %s", e.Title)
	case EventHPChanged:
		if e.HPDelta >= 0 {
			return fmt.Sprintf("Recovered %d HP", e.HPDelta)
		}
		return fmt.Sprintf("Lost %d HP", -e.HPDelta)
	case EventCharacterCreated:
		return fmt.Sprintf("Welcome, %s!", e.Title)
	}
	return string(e.Kind)
}
