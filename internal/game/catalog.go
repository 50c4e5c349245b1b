package game

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the starter content seeded on first run.
type Catalog struct {
	Skills       []Skill       `yaml:"skills"`
	Quests       []Quest       `yaml:"quests"`
	Achievements []Achievement `yaml:"achievements"`
}

var defaultCatalog = mustParseCatalog(catalogYAML)

// ParseCatalog decodes a YAML catalog and validates its quests.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for _, q := range c.Quests {
		if _, err := NewQuest(q.ID, draftOf(q)); err != nil {
			return Catalog{}, fmt.Errorf("catalog quest %q: %w", q.ID, err)
		}
	}
	for _, s := range c.Skills {
		if !s.Category.IsValid() {
			return Catalog{}, fmt.Errorf("catalog skill %q: unknown category %q", s.ID, s.Category)
		}
	}
	return c, nil
}

func mustParseCatalog(data []byte) Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

func draftOf(q Quest) QuestDraft {
	return QuestDraft{
		Title:         q.Title,
		Description:   q.Description,
		Frequency:     q.Frequency,
		Difficulty:    q.Difficulty,
		SkillCategory: q.SkillCategory,
		Category:      q.Category,
		Priority:      q.Priority,
		XPReward:      q.XPReward,
		CoinReward:    q.CoinReward,
		DueDate:       q.DueDate,
	}
}

func DefaultSkills() []Skill { return CloneSkills(defaultCatalog.Skills) }

func DefaultQuests() []Quest { return CloneQuests(defaultCatalog.Quests) }

func DefaultAchievements() []Achievement { return CloneAchievements(defaultCatalog.Achievements) }
