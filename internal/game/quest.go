package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidQuest = errors.New("invalid quest")

// HPLossRate is the user-configurable penalty applied per missed quest,
// independent of quest difficulty.
type HPLossRate string

const (
	HPLossLow    HPLossRate = "low"
	HPLossMedium HPLossRate = "medium"
	HPLossHigh   HPLossRate = "high"
)

var HPLossRates = []HPLossRate{HPLossLow, HPLossMedium, HPLossHigh}

// DefaultHPLossRate is used when the stored preference is missing or invalid.
const DefaultHPLossRate = HPLossMedium

func (r HPLossRate) IsValid() bool {
	switch r {
	case HPLossLow, HPLossMedium, HPLossHigh:
		return true
	default:
		return false
	}
}

// Penalty returns the HP lost for one missed quest.
func (r HPLossRate) Penalty() int {
	switch r {
	case HPLossLow:
		return 5
	case HPLossHigh:
		return 20
	default:
		return 10
	}
}

// Reward is the XP and coin payout of a quest.
type Reward struct {
	XP    int
	Coins int
}

// RewardFor returns the standard payout for a difficulty. Rewards are frozen
// into the quest when it is created.
func RewardFor(d Difficulty) Reward {
	switch d {
	case DifficultyEasy:
		return Reward{XP: 10, Coins: 3}
	case DifficultyHard:
		return Reward{XP: 30, Coins: 10}
	case DifficultyEpic:
		return Reward{XP: 50, Coins: 20}
	default:
		return Reward{XP: 20, Coins: 5}
	}
}

// QuestDraft is a quest before it is assigned an identifier.
type QuestDraft struct {
	Title         string
	Description   string
	Frequency     Frequency
	Difficulty    Difficulty
	SkillCategory SkillCategory
	Category      QuestCategory
	Priority      Priority
	XPReward      int
	CoinReward    int
	DueDate       string
}

// NewQuest validates d and returns an active quest with the given id.
func NewQuest(id string, d QuestDraft) (Quest, error) {
	title := strings.TrimSpace(d.Title)
	switch {
	case title == "":
		return Quest{}, fmt.Errorf("%w: empty title", ErrInvalidQuest)
	case !d.Frequency.IsValid():
		return Quest{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidQuest, d.Frequency)
	case !d.Difficulty.IsValid():
		return Quest{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidQuest, d.Difficulty)
	case !d.SkillCategory.IsValid():
		return Quest{}, fmt.Errorf("%w: unknown skill category %q", ErrInvalidQuest, d.SkillCategory)
	case !d.Category.IsValid():
		return Quest{}, fmt.Errorf("%w: unknown category %q", ErrInvalidQuest, d.Category)
	case !d.Priority.IsValid():
		return Quest{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidQuest, d.Priority)
	case d.XPReward < 0 || d.CoinReward < 0:
		return Quest{}, fmt.Errorf("%w: negative reward", ErrInvalidQuest)
	}
	if d.DueDate != "" {
		if _, err := time.Parse(DateLayout, d.DueDate); err != nil {
			return Quest{}, fmt.Errorf("%w: due date %q: %v", ErrInvalidQuest, d.DueDate, err)
		}
	}

	return Quest{
		ID:            id,
		Title:         title,
		Description:   strings.TrimSpace(d.Description),
		Frequency:     d.Frequency,
		Difficulty:    d.Difficulty,
		Completed:     false,
		SkillCategory: d.SkillCategory,
		Category:      d.Category,
		Priority:      d.Priority,
		XPReward:      d.XPReward,
		CoinReward:    d.CoinReward,
		DueDate:       d.DueDate,
	}, nil
}

// CompleteQuest marks the quest with the given id as completed. ok is false
// when the quest is missing or was already completed.
func CompleteQuest(quests []Quest, id string) (out []Quest, completed Quest, ok bool) {
	out = CloneQuests(quests)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if out[i].Completed {
			return out, Quest{}, false
		}
		out[i].Completed = true
		return out, out[i], true
	}
	return out, Quest{}, false
}

// ResetQuests marks every quest of frequency f as active again and reports
// how many quests were reset.
func ResetQuests(quests []Quest, f Frequency) ([]Quest, int) {
	out := CloneQuests(quests)
	n := 0
	for i := range out {
		if out[i].Frequency != f {
			continue
		}
		out[i].Completed = false
		n++
	}
	return out, n
}

// IsOverdue reports whether q is incomplete and now is past the start of
// its due date, taken as midnight in now's location. A quest due today is
// overdue for the rest of that day.
func IsOverdue(q Quest, now time.Time) bool {
	if q.Completed || q.DueDate == "" {
		return false
	}
	due, err := ParseDate(q.DueDate, now.Location())
	if err != nil {
		return false
	}
	return due.Before(now)
}

// DeadlineSweep summarizes one pass of SweepDeadlines.
type DeadlineSweep struct {
	Missed  []Quest
	Penalty int // total HP penalty, before flooring against the character
}

// SweepDeadlines closes or reschedules every overdue quest. One-time quests
// are marked completed (failed). Recurring quests get a new due date one
// period after today, not after the old due date.
func SweepDeadlines(quests []Quest, now time.Time, rate HPLossRate) ([]Quest, DeadlineSweep) {
	out := CloneQuests(quests)
	var sweep DeadlineSweep
	today := StartOfDay(now)

	for i := range out {
		q := &out[i]
		if !IsOverdue(*q, now) {
			continue
		}
		sweep.Missed = append(sweep.Missed, *q)
		sweep.Penalty += rate.Penalty()

		switch q.Frequency {
		case FrequencyOneTime:
			q.Completed = true
		case FrequencyWeekly:
			q.DueDate = FormatDate(today.AddDate(0, 0, 7))
		default:
			q.DueDate = FormatDate(today.AddDate(0, 0, 1))
		}
	}
	return out, sweep
}
