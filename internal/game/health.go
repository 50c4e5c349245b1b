package game

import "time"

const (
	// HPRegenPerHour is the passive regeneration rate.
	HPRegenPerHour = 5

	// regenStep is the time it takes to regenerate one HP.
	regenStep = time.Hour / HPRegenPerHour
)

// Regenerate applies passive HP recovery for the time elapsed since
// lastUpdate. The timestamp only moves forward when at least one HP was
// gained, so partial progress toward the next point is kept.
func Regenerate(c Character, lastUpdate, now time.Time) (Character, time.Time) {
	if c.HP >= c.MaxHP {
		return c, lastUpdate
	}
	elapsed := now.Sub(lastUpdate)
	if elapsed <= 0 {
		return c, lastUpdate
	}
	regen := int(elapsed / regenStep)
	if regen <= 0 {
		return c, lastUpdate
	}
	c.HP += regen
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	return c, now
}

// NextRegenAt returns when the next HP point will be available. ok is false
// when the character is already at full health.
func NextRegenAt(c Character, lastUpdate, now time.Time) (next time.Time, ok bool) {
	if c.HP >= c.MaxHP {
		return time.Time{}, false
	}
	elapsed := now.Sub(lastUpdate)
	if elapsed < 0 {
		return lastUpdate.Add(regenStep), true
	}
	steps := elapsed/regenStep + 1
	return lastUpdate.Add(steps * regenStep), true
}
