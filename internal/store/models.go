package store

import "time"

// StateEntry is one raw row of the key/value state table.
type StateEntry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Activity is one journaled game event.
type Activity struct {
	ID        int64
	Kind      string
	Subject   string
	XP        int
	Coins     int
	HPDelta   int
	Detail    string
	CreatedAt time.Time
}

// ActivityFilter is used to filter journal rows in queries.
type ActivityFilter struct {
	Kind  string
	From  *time.Time
	To    *time.Time
	Limit int
}

// DailyXP is quest XP and coins earned on one UTC day.
type DailyXP struct {
	Date   string
	XP     int64
	Coins  int64
	Quests int
}
