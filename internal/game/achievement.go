package game

import "time"

// Achievement ids of the seeded catalog.
const (
	AchFirstSteps  = "ach1"
	AchQuestMaster = "ach2"
	AchSkilledUp   = "ach3"
	AchJackOfAll   = "ach4"
	AchSurvivor    = "ach5"
	AchLevelTen    = "ach6"
)

const (
	questMasterGoal   = 10
	skilledUpLevel    = 5
	levelTenGoal      = 10
	survivorThreshold = 0.2
)

// EvaluateQuests updates the quest-count achievements.
func EvaluateQuests(achievements []Achievement, quests []Quest, now time.Time) ([]Achievement, []Event) {
	out := CloneAchievements(achievements)
	if len(quests) == 0 {
		return out, nil
	}
	completed := 0
	for _, q := range quests {
		if q.Completed {
			completed++
		}
	}

	var events []Event
	if completed > 0 {
		events = appendEvent(events, setProgress(out, AchFirstSteps, 1, now))
	}
	events = appendEvent(events, setProgress(out, AchQuestMaster, min(completed, questMasterGoal), now))
	return out, events
}

// EvaluateSkills updates the skill-level achievements.
func EvaluateSkills(achievements []Achievement, skills []Skill, now time.Time) ([]Achievement, []Event) {
	out := CloneAchievements(achievements)
	if len(skills) == 0 {
		return out, nil
	}

	var events []Event
	leveled := make(map[SkillCategory]bool)
	for _, s := range skills {
		if s.Level >= skilledUpLevel {
			events = appendEvent(events, unlock(out, AchSkilledUp, now))
		}
		if s.Level > 1 {
			leveled[s.Category] = true
		}
	}
	events = appendEvent(events, setProgress(out, AchJackOfAll, len(leveled), now))
	return out, events
}

// EvaluateCharacter updates the character-level achievement.
func EvaluateCharacter(achievements []Achievement, c Character, now time.Time) ([]Achievement, []Event) {
	out := CloneAchievements(achievements)
	ev := setProgress(out, AchLevelTen, min(c.Level, levelTenGoal), now)
	return out, appendEvent(nil, ev)
}

// EvaluateHealth unlocks the recovery achievement when a single HP change
// goes from below 20% of max straight to max.
func EvaluateHealth(achievements []Achievement, oldHP, newHP, maxHP int, now time.Time) ([]Achievement, []Event) {
	out := CloneAchievements(achievements)
	if maxHP <= 0 {
		return out, nil
	}
	if float64(oldHP) < float64(maxHP)*survivorThreshold && newHP == maxHP {
		return out, appendEvent(nil, unlock(out, AchSurvivor, now))
	}
	return out, nil
}

func find(achievements []Achievement, id string) *Achievement {
	for i := range achievements {
		if achievements[i].ID == id {
			return &achievements[i]
		}
	}
	return nil
}

// unlock flips the achievement to unlocked. It returns nil when the
// achievement is unknown or already unlocked.
func unlock(achievements []Achievement, id string, now time.Time) *Event {
	a := find(achievements, id)
	if a == nil || a.Unlocked {
		return nil
	}
	a.Unlocked = true
	t := now
	a.DateUnlocked = &t
	return &Event{
		Kind:    EventAchievementUnlocked,
		Subject: a.ID,
		Title:   a.Title,
	}
}

// setProgress records progress on a locked achievement and unlocks it once
// the requirement is met. Unlocked achievements keep their final progress.
func setProgress(achievements []Achievement, id string, current int, now time.Time) *Event {
	a := find(achievements, id)
	if a == nil || a.Progress == nil || a.Unlocked {
		return nil
	}
	a.Progress.Current = current
	if a.Progress.Current >= a.Progress.Required {
		return unlock(achievements, id, now)
	}
	return nil
}

func appendEvent(events []Event, ev *Event) []Event {
	if ev == nil {
		return events
	}
	return append(events, *ev)
}
