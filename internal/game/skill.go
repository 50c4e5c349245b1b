package game

// DefaultSkillMaxLevel caps every seeded skill.
const DefaultSkillMaxLevel = 10

// AddSkillXP routes amount to every skill of the given category. A skill
// levels up at most once per call and its XP restarts at zero; the part of
// amount beyond the threshold is dropped. Skills at max level ignore XP.
func AddSkillXP(skills []Skill, category SkillCategory, amount int) ([]Skill, []Event) {
	out := CloneSkills(skills)
	if amount <= 0 {
		return out, nil
	}

	var events []Event
	for i := range out {
		s := &out[i]
		if s.Category != category || s.Level >= s.MaxLevel {
			continue
		}
		xp := s.CurrentXP + amount
		if xp >= s.XPRequired {
			levelUp(s)
			events = append(events, skillLevelEvent(*s))
			continue
		}
		s.CurrentXP = xp
	}
	return out, events
}

// ManualLevelUp forces one level-up on the skill with the given id, as long
// as it is below its max level. Unknown ids are ignored.
func ManualLevelUp(skills []Skill, id string) ([]Skill, []Event) {
	out := CloneSkills(skills)
	for i := range out {
		s := &out[i]
		if s.ID != id {
			continue
		}
		if s.Level >= s.MaxLevel {
			return out, nil
		}
		levelUp(s)
		return out, []Event{skillLevelEvent(*s)}
	}
	return out, nil
}

func levelUp(s *Skill) {
	s.Level++
	s.CurrentXP = 0
	s.XPRequired = growXP(s.XPRequired)
}

func skillLevelEvent(s Skill) Event {
	return Event{
		Kind:    EventSkillLevelUp,
		Subject: s.ID,
		Title:   s.Name,
		Level:   s.Level,
	}
}
