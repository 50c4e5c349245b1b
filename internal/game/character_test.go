package game

import "testing"

// ============================================================
// Thresholds
// ============================================================

func TestMaxXPAt(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 150},
		{3, 225},
		{4, 337},
		{5, 505}, // 100*1.5^4 = 506.25 without per-step truncation
		{6, 757},
	}
	for _, c := range cases {
		if got := MaxXPAt(c.level); got != c.want {
			t.Fatalf("MaxXPAt(%d) = %d, want %d", c.level, got, c.want)
		}
	}
}

func TestNewCharacter(t *testing.T) {
	c := NewCharacter("c1", "Ayla", ClassRanger)
	if c.Level != 1 || c.XP != 0 || c.MaxXP != 100 {
		t.Fatalf("unexpected progression: %+v", c)
	}
	if c.HP != 100 || c.MaxHP != 100 || c.Coins != 0 {
		t.Fatalf("unexpected vitals: %+v", c)
	}
	if c.ID != "c1" || c.Class != ClassRanger {
		t.Fatalf("unexpected identity: %+v", c)
	}
}

// ============================================================
// Rewards
// ============================================================

func TestGrantRewardMediumQuestFiveTimes(t *testing.T) {
	c := NewCharacter("c1", "Ayla", ClassMage)
	reward := RewardFor(DifficultyMedium)

	c, events := GrantReward(c, reward.XP, reward.Coins)
	if c.XP != 20 || c.Level != 1 || c.Coins != 5 {
		t.Fatalf("after one quest: %+v", c)
	}
	if len(events) != 0 {
		t.Fatalf("expected no level-up, got %v", events)
	}

	for i := 0; i < 3; i++ {
		c, _ = GrantReward(c, reward.XP, reward.Coins)
	}
	c, events = GrantReward(c, reward.XP, reward.Coins)
	if c.Level != 2 || c.XP != 0 || c.MaxXP != 150 {
		t.Fatalf("after five quests: %+v", c)
	}
	if c.Coins != 25 {
		t.Fatalf("expected 25 coins, got %d", c.Coins)
	}
	if len(events) != 1 || events[0].Kind != EventLevelUp || events[0].Level != 2 {
		t.Fatalf("expected one level-up to 2, got %v", events)
	}
}

func TestGrantRewardMultipleLevelUps(t *testing.T) {
	c := NewCharacter("c1", "Ayla", ClassWarrior)

	// 100 + 150 + 225 = 475 crosses three thresholds, 25 left over.
	c, events := GrantReward(c, 500, 0)
	if c.Level != 4 {
		t.Fatalf("expected level 4, got %d", c.Level)
	}
	if c.XP != 25 || c.MaxXP != 337 {
		t.Fatalf("unexpected xp %d/%d", c.XP, c.MaxXP)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 level-up events, got %d", len(events))
	}
	for i, ev := range events {
		if ev.Level != i+2 {
			t.Fatalf("event %d: level %d", i, ev.Level)
		}
	}
}

func TestGrantRewardKeepsXPBelowMax(t *testing.T) {
	c := NewCharacter("c1", "Ayla", ClassBard)
	prevLevel := c.Level
	for _, xp := range []int{1, 7, 99, 150, 3, 1000, 42, 10000} {
		c, _ = GrantReward(c, xp, 1)
		if c.XP < 0 || c.XP >= c.MaxXP {
			t.Fatalf("xp out of range after +%d: %d/%d", xp, c.XP, c.MaxXP)
		}
		if c.Level < prevLevel {
			t.Fatalf("level decreased from %d to %d", prevLevel, c.Level)
		}
		if c.MaxXP != MaxXPAt(c.Level) {
			t.Fatalf("maxXp %d does not match level %d", c.MaxXP, c.Level)
		}
		prevLevel = c.Level
	}
}

func TestGrantRewardIgnoresNegativeAmounts(t *testing.T) {
	c := NewCharacter("c1", "Ayla", ClassRogue)
	c.Coins = 10
	c.XP = 50

	got, events := GrantReward(c, -20, -5)
	if got != c {
		t.Fatalf("negative reward changed character: %+v", got)
	}
	if events != nil {
		t.Fatal("expected no events")
	}
}

// ============================================================
// HP loss
// ============================================================

func TestLoseHPFloorsAtZero(t *testing.T) {
	c := NewCharacter("c1", "Ayla", ClassRogue)
	c.HP = 8
	c = LoseHP(c, 10)
	if c.HP != 0 {
		t.Fatalf("expected 0 HP, got %d", c.HP)
	}
	c = LoseHP(c, 5)
	if c.HP != 0 {
		t.Fatalf("expected HP to stay at 0, got %d", c.HP)
	}
}
