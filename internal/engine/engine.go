// Package engine owns the canonical game state. It loads and persists it
// through a key/value Store, applies the rules in package game for every
// command, and fans the resulting events out to a journal and a listener.
package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sadopc/lifequest/internal/game"
)

// Store is the persistence seam. Values are JSON documents.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Journal records every published event.
type Journal interface {
	Append(ev game.Event) error
}

// Listener is called once per published event, outside the engine lock.
type Listener func(game.Event)

// Preferences are the user settings stored next to the game state.
type Preferences struct {
	DarkMode      bool
	Notifications bool
	HPLossRate    game.HPLossRate
}

func defaultPreferences() Preferences {
	return Preferences{
		DarkMode:      true,
		Notifications: false,
		HPLossRate:    game.DefaultHPLossRate,
	}
}

type Option func(*Engine)

func WithClock(c game.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithIDGenerator(g game.IDGenerator) Option {
	return func(e *Engine) { e.newID = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

func WithListener(l Listener) Option {
	return func(e *Engine) { e.listener = l }
}

type Engine struct {
	mu sync.Mutex

	store    Store
	clock    game.Clock
	newID    game.IDGenerator
	log      *slog.Logger
	journal  Journal
	listener Listener

	character    *game.Character
	quests       []game.Quest
	skills       []game.Skill
	achievements []game.Achievement

	lastDailyReset  string
	lastWeeklyReset string
	lastHPUpdate    time.Time

	prefs Preferences
}

// New returns an engine seeded with the default catalogs. Call Load to
// replace the seeds with persisted state.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		clock: game.SystemClock{},
		newID: game.NewID,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		prefs: defaultPreferences(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.quests = game.DefaultQuests()
	e.skills = game.DefaultSkills()
	e.achievements = game.DefaultAchievements()
	return e
}

// ============================================================
// Accessors
// ============================================================

// Character returns a copy of the character. ok is false before one has
// been created.
func (e *Engine) Character() (c game.Character, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.character == nil {
		return game.Character{}, false
	}
	return *e.character, true
}

func (e *Engine) Quests() []game.Quest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.CloneQuests(e.quests)
}

func (e *Engine) Skills() []game.Skill {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.CloneSkills(e.skills)
}

func (e *Engine) Achievements() []game.Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.CloneAchievements(e.achievements)
}

func (e *Engine) Preferences() Preferences {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prefs
}

func (e *Engine) LastHPUpdate() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastHPUpdate
}

// NextRegenAt reports when the next HP point regenerates. ok is false when
// there is no character or it is at full health.
func (e *Engine) NextRegenAt() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.character == nil {
		return time.Time{}, false
	}
	return game.NextRegenAt(*e.character, e.lastHPUpdate, e.clock.Now())
}

// ============================================================
// Events
// ============================================================

// stamp sets the timestamp of every event to now.
func stamp(events []game.Event, now time.Time) []game.Event {
	for i := range events {
		events[i].At = now
	}
	return events
}

func (e *Engine) publish(events []game.Event) {
	for _, ev := range events {
		level := slog.LevelInfo
		if ev.Kind == game.EventHPChanged || ev.Kind == game.EventQuestsReset {
			level = slog.LevelDebug
		}
		e.log.Log(context.Background(), level, ev.Message(), "kind", ev.Kind, "subject", ev.Subject)

		if e.journal != nil {
			if err := e.journal.Append(ev); err != nil {
				e.log.Error("journal event", "kind", ev.Kind, "err", err)
			}
		}
		if e.listener != nil {
			e.listener(ev)
		}
	}
}
