package game

import "time"

type CharacterClass string

const (
	ClassWarrior CharacterClass = "Warrior"
	ClassMage    CharacterClass = "Mage"
	ClassRogue   CharacterClass = "Rogue"
	ClassRanger  CharacterClass = "Ranger"
	ClassBard    CharacterClass = "Bard"
)

var CharacterClasses = []CharacterClass{ClassWarrior, ClassMage, ClassRogue, ClassRanger, ClassBard}

func (c CharacterClass) IsValid() bool {
	switch c {
	case ClassWarrior, ClassMage, ClassRogue, ClassRanger, ClassBard:
		return true
	default:
		return false
	}
}

// SkillCategory is shared by skills and quests: a quest routes its XP to
// every skill of the same category.
type SkillCategory string

const (
	SkillHealth   SkillCategory = "Health"
	SkillFinance  SkillCategory = "Finance"
	SkillLearning SkillCategory = "Learning"
	SkillSocial   SkillCategory = "Social"
	SkillCareer   SkillCategory = "Career"
)

var SkillCategories = []SkillCategory{SkillHealth, SkillFinance, SkillLearning, SkillSocial, SkillCareer}

func (c SkillCategory) IsValid() bool {
	switch c {
	case SkillHealth, SkillFinance, SkillLearning, SkillSocial, SkillCareer:
		return true
	default:
		return false
	}
}

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyOneTime Frequency = "OneTime"
)

var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyOneTime}

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyOneTime:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyEpic   Difficulty = "Epic"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	default:
		return false
	}
}

// QuestCategory is the narrative grouping of a quest. It is independent of
// the skill category that receives the XP.
type QuestCategory string

const (
	QuestMainStory      QuestCategory = "Main Story"
	QuestSideQuest      QuestCategory = "Side Quest"
	QuestPersonalGrowth QuestCategory = "Personal Growth"
	QuestSocial         QuestCategory = "Social"
	QuestHealth         QuestCategory = "Health"
)

var QuestCategories = []QuestCategory{QuestMainStory, QuestSideQuest, QuestPersonalGrowth, QuestSocial, QuestHealth}

func (c QuestCategory) IsValid() bool {
	switch c {
	case QuestMainStory, QuestSideQuest, QuestPersonalGrowth, QuestSocial, QuestHealth:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// IsValid reports whether p is a known priority. The empty priority is
// valid since priority is optional.
func (p Priority) IsValid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

type AchievementCategory string

const (
	AchievementQuest     AchievementCategory = "Quest"
	AchievementSkill     AchievementCategory = "Skill"
	AchievementCharacter AchievementCategory = "Character"
)

type Character struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Level     int            `json:"level"`
	Class     CharacterClass `json:"class"`
	XP        int            `json:"xp"`
	MaxXP     int            `json:"maxXp"`
	HP        int            `json:"hp"`
	MaxHP     int            `json:"maxHp"`
	Coins     int            `json:"coins"`
	AvatarURL string         `json:"avatarUrl,omitempty"`
}

type Skill struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Category    SkillCategory `json:"category" yaml:"category"`
	Level       int           `json:"level" yaml:"level"`
	MaxLevel    int           `json:"maxLevel" yaml:"maxLevel"`
	Description string        `json:"description" yaml:"description"`
	XPRequired  int           `json:"xpRequired" yaml:"xpRequired"`
	CurrentXP   int           `json:"currentXp" yaml:"currentXp"`
}

type Quest struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	Description   string        `json:"description" yaml:"description"`
	Frequency     Frequency     `json:"frequency" yaml:"frequency"`
	Difficulty    Difficulty    `json:"difficulty" yaml:"difficulty"`
	Completed     bool          `json:"completed" yaml:"completed"`
	SkillCategory SkillCategory `json:"skillCategory" yaml:"skillCategory"`
	Category      QuestCategory `json:"category" yaml:"category"`
	Priority      Priority      `json:"priority,omitempty" yaml:"priority,omitempty"`
	XPReward      int           `json:"xpReward" yaml:"xpReward"`
	CoinReward    int           `json:"coinReward" yaml:"coinReward"`
	DueDate       string        `json:"dueDate,omitempty" yaml:"dueDate,omitempty"` // yyyy-MM-dd
}

type Progress struct {
	Current  int `json:"current" yaml:"current"`
	Required int `json:"required" yaml:"required"`
}

type Achievement struct {
	ID           string              `json:"id" yaml:"id"`
	Title        string              `json:"title" yaml:"title"`
	Description  string              `json:"description" yaml:"description"`
	Icon         string              `json:"icon" yaml:"icon"`
	Unlocked     bool                `json:"unlocked" yaml:"unlocked"`
	Category     AchievementCategory `json:"category" yaml:"category"`
	DateUnlocked *time.Time          `json:"dateUnlocked,omitempty" yaml:"-"`
	Progress     *Progress           `json:"progress,omitempty" yaml:"progress,omitempty"`
}

// CloneQuests returns a copy of quests that shares no memory with the input.
func CloneQuests(quests []Quest) []Quest {
	if quests == nil {
		return nil
	}
	out := make([]Quest, len(quests))
	copy(out, quests)
	return out
}

func CloneSkills(skills []Skill) []Skill {
	if skills == nil {
		return nil
	}
	out := make([]Skill, len(skills))
	copy(out, skills)
	return out
}

func CloneAchievements(achievements []Achievement) []Achievement {
	if achievements == nil {
		return nil
	}
	out := make([]Achievement, len(achievements))
	for i, a := range achievements {
		if a.Progress != nil {
			p := *a.Progress
			a.Progress = &p
		}
		if a.DateUnlocked != nil {
			t := *a.DateUnlocked
			a.DateUnlocked = &t
		}
		out[i] = a
	}
	return out
}
