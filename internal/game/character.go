package game

const (
	// BaseMaxXP is the XP needed to leave level 1.
	BaseMaxXP = 100

	DefaultMaxHP = 100
)

// growXP applies one ×1.5 growth step, truncated toward zero. Character
// thresholds and skill thresholds both grow with it.
func growXP(xp int) int {
	return xp * 3 / 2
}

// MaxXPAt returns the XP threshold of the given level. The threshold is
// truncated after every step, so MaxXPAt(5) is 505 rather than the 506 a
// single exponentiation would give.
func MaxXPAt(level int) int {
	xp := BaseMaxXP
	for l := 1; l < level; l++ {
		xp = growXP(xp)
	}
	return xp
}

// NewCharacter returns a level 1 character at full health.
func NewCharacter(id, name string, class CharacterClass) Character {
	return Character{
		ID:    id,
		Name:  name,
		Class: class,
		Level: 1,
		XP:    0,
		MaxXP: MaxXPAt(1),
		HP:    DefaultMaxHP,
		MaxHP: DefaultMaxHP,
		Coins: 0,
	}
}

// GrantReward adds coins and XP. XP overflow rolls into as many level-ups as
// it covers; one EventLevelUp is returned per level gained.
func GrantReward(c Character, xp, coins int) (Character, []Event) {
	if coins > 0 {
		c.Coins += coins
	}
	if xp <= 0 {
		return c, nil
	}
	if c.MaxXP <= 0 {
		c.MaxXP = MaxXPAt(c.Level)
	}

	var events []Event
	c.XP += xp
	for c.XP >= c.MaxXP {
		c.XP -= c.MaxXP
		c.Level++
		c.MaxXP = MaxXPAt(c.Level)
		events = append(events, Event{
			Kind:    EventLevelUp,
			Subject: c.ID,
			Title:   c.Name,
			Level:   c.Level,
		})
	}
	return c, events
}

// LoseHP subtracts amount from HP, flooring at zero.
func LoseHP(c Character, amount int) Character {
	if amount <= 0 {
		return c
	}
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
	return c
}
