package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sadopc/lifequest/internal/game"
	"github.com/sadopc/lifequest/internal/store"
)

var start = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

type memStore struct {
	data   map[string][]byte
	getErr error
	putErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, store.ErrNotFound)
	}
	return v, nil
}

func (m *memStore) Put(key string, value []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recorder struct {
	events []game.Event
}

func (r *recorder) Append(ev game.Event) error {
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) kinds() []game.EventKind {
	var out []game.EventKind
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (r *recorder) has(kind game.EventKind, subject string) bool {
	for _, ev := range r.events {
		if ev.Kind == kind && (subject == "" || ev.Subject == subject) {
			return true
		}
	}
	return false
}

func sequentialIDs() game.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// newTestEngine loads an engine over st with a fixed clock and a recording
// journal.
func newTestEngine(t *testing.T, st Store) (*Engine, *fakeClock, *recorder) {
	t.Helper()
	clock := &fakeClock{now: start}
	rec := &recorder{}
	e := New(st,
		WithClock(clock),
		WithIDGenerator(sequentialIDs()),
		WithJournal(rec),
	)
	e.Load()
	return e, clock, rec
}

func putJSON(t *testing.T, st *memStore, key string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	st.data[key] = data
}

func getJSON(t *testing.T, st *memStore, key string, v any) {
	t.Helper()
	data, ok := st.data[key]
	if !ok {
		t.Fatalf("key %s not persisted", key)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", key, err)
	}
}

func mustCreate(t *testing.T, e *Engine) game.Character {
	t.Helper()
	c, ok := e.CreateCharacter("Ayla", game.ClassRanger)
	if !ok {
		t.Fatal("create character failed")
	}
	return c
}

func achievementByID(t *testing.T, e *Engine, id string) game.Achievement {
	t.Helper()
	for _, a := range e.Achievements() {
		if a.ID == id {
			if a.Progress == nil {
				a.Progress = &game.Progress{}
			}
			return a
		}
	}
	t.Fatalf("achievement %s not found", id)
	return game.Achievement{}
}

func mediumDraft(title string) game.QuestDraft {
	r := game.RewardFor(game.DifficultyMedium)
	return game.QuestDraft{
		Title:         title,
		Frequency:     game.FrequencyDaily,
		Difficulty:    game.DifficultyMedium,
		SkillCategory: game.SkillCareer,
		Category:      game.QuestMainStory,
		XPReward:      r.XP,
		CoinReward:    r.Coins,
	}
}

// ============================================================
// Load
// ============================================================

func TestLoadSeedsEmptyStore(t *testing.T) {
	st := newMemStore()
	e, _, _ := newTestEngine(t, st)

	if _, ok := e.Character(); ok {
		t.Fatal("expected no character")
	}
	if len(e.Quests()) != 5 || len(e.Skills()) != 6 || len(e.Achievements()) != 6 {
		t.Fatal("expected default catalogs")
	}
	p := e.Preferences()
	if !p.DarkMode || p.Notifications || p.HPLossRate != game.HPLossMedium {
		t.Fatalf("unexpected preferences: %+v", p)
	}

	var daily string
	getJSON(t, st, KeyLastDailyReset, &daily)
	if daily != "2026-10-18" {
		t.Fatalf("expected today's reset date, got %s", daily)
	}
	for _, k := range []string{KeyQuests, KeySkills, KeyAchievements, KeyLastWeeklyReset, KeyLastHPUpdate, KeyHPLossRate} {
		if _, ok := st.data[k]; !ok {
			t.Fatalf("key %s not written back", k)
		}
	}
	if _, ok := st.data[KeyCharacter]; ok {
		t.Fatal("character should not be written before creation")
	}
}

func TestLoadFallsBackOnCorruptJSON(t *testing.T) {
	st := newMemStore()
	st.data[KeyQuests] = []byte("{not json")
	st.data[KeyCharacter] = []byte(`"nope"`)
	st.data[KeyHPLossRate] = []byte(`"extreme"`)

	e, _, _ := newTestEngine(t, st)
	if len(e.Quests()) != 5 {
		t.Fatal("corrupt quests should fall back to seeds")
	}
	if _, ok := e.Character(); ok {
		t.Fatal("corrupt character should be ignored")
	}
	if e.Preferences().HPLossRate != game.HPLossMedium {
		t.Fatal("unknown loss rate should fall back to medium")
	}

	// The repaired state is written back.
	var quests []game.Quest
	getJSON(t, st, KeyQuests, &quests)
	if len(quests) != 5 {
		t.Fatalf("expected repaired quests, got %d", len(quests))
	}
}

func TestLoadSurvivesStoreErrors(t *testing.T) {
	st := newMemStore()
	st.getErr = errors.New("disk on fire")
	st.putErr = errors.New("disk on fire")

	e, _, _ := newTestEngine(t, st)
	if len(e.Quests()) != 5 {
		t.Fatal("expected seeds when the store is unreadable")
	}
	mustCreate(t, e)
	if !e.CompleteQuest("1") {
		t.Fatal("commands should keep working without persistence")
	}
	c, _ := e.Character()
	if c.XP != 20 {
		t.Fatalf("expected in-memory reward, got xp %d", c.XP)
	}
}

func TestLoadRestoresPersistedState(t *testing.T) {
	st := newMemStore()
	e, _, _ := newTestEngine(t, st)
	created := mustCreate(t, e)
	e.CompleteQuest("1")
	e.SetNotifications(true)

	reloaded, _, _ := newTestEngine(t, st)
	c, ok := reloaded.Character()
	if !ok || c.ID != created.ID || c.XP != 20 || c.Coins != 5 {
		t.Fatalf("unexpected reloaded character: %+v", c)
	}
	if !reloaded.Quests()[0].Completed {
		t.Fatal("completion not persisted")
	}
	if !reloaded.Preferences().Notifications {
		t.Fatal("preference not persisted")
	}
	for _, a := range reloaded.Achievements() {
		if a.ID == game.AchFirstSteps && !a.Unlocked {
			t.Fatal("unlock not persisted")
		}
	}
}

func TestLoadAppliesRegeneration(t *testing.T) {
	st := newMemStore()
	c := game.NewCharacter("c1", "Ayla", game.ClassMage)
	c.HP = 50
	putJSON(t, st, KeyCharacter, c)
	putJSON(t, st, KeyLastHPUpdate, start.Add(-2*time.Hour))

	e, _, rec := newTestEngine(t, st)
	got, _ := e.Character()
	if got.HP != 60 {
		t.Fatalf("expected 60 HP after 2h, got %d", got.HP)
	}
	if !e.LastHPUpdate().Equal(start) {
		t.Fatal("last HP update should advance to now")
	}
	if !rec.has(game.EventHPChanged, "c1") {
		t.Fatal("expected hp_changed event")
	}
}

func TestLoadStartupResets(t *testing.T) {
	st := newMemStore()
	quests := game.DefaultQuests()
	for i := range quests {
		quests[i].Completed = true
	}
	putJSON(t, st, KeyQuests, quests)
	putJSON(t, st, KeyLastDailyReset, "2026-10-17")
	putJSON(t, st, KeyLastWeeklyReset, "2026-10-10")

	e, _, rec := newTestEngine(t, st)
	for _, q := range e.Quests() {
		if q.Completed {
			t.Fatalf("quest %s should be reset", q.ID)
		}
	}
	var weekly string
	getJSON(t, st, KeyLastWeeklyReset, &weekly)
	if weekly != "2026-10-18" {
		t.Fatalf("expected weekly reset date to move to today, got %s", weekly)
	}
	resets := 0
	for _, k := range rec.kinds() {
		if k == game.EventQuestsReset {
			resets++
		}
	}
	if resets != 2 {
		t.Fatalf("expected daily and weekly reset events, got %v", rec.kinds())
	}
}

func TestLoadWeeklyResetNotDue(t *testing.T) {
	st := newMemStore()
	quests := game.DefaultQuests()
	for i := range quests {
		quests[i].Completed = true
	}
	putJSON(t, st, KeyQuests, quests)
	putJSON(t, st, KeyLastDailyReset, "2026-10-18")
	putJSON(t, st, KeyLastWeeklyReset, "2026-10-12")

	e, _, _ := newTestEngine(t, st)
	for _, q := range e.Quests() {
		if !q.Completed {
			t.Fatalf("quest %s should not be reset", q.ID)
		}
	}
}

// ============================================================
// Character
// ============================================================

func TestCreateCharacter(t *testing.T) {
	e, _, rec := newTestEngine(t, newMemStore())

	if _, ok := e.CreateCharacter("  ", game.ClassBard); ok {
		t.Fatal("blank name should be rejected")
	}
	if _, ok := e.CreateCharacter("Ayla", "Paladin"); ok {
		t.Fatal("unknown class should be rejected")
	}

	c := mustCreate(t, e)
	if c.ID != "id-1" || c.Level != 1 || c.MaxXP != 100 || c.HP != 100 {
		t.Fatalf("unexpected character: %+v", c)
	}
	if _, ok := e.CreateCharacter("Other", game.ClassMage); ok {
		t.Fatal("second character should be a no-op")
	}
	got, _ := e.Character()
	if got.Name != "Ayla" {
		t.Fatal("existing character was replaced")
	}
	if !rec.has(game.EventCharacterCreated, "id-1") {
		t.Fatal("expected character_created event")
	}
}

func TestUpdateAvatar(t *testing.T) {
	e, _, _ := newTestEngine(t, newMemStore())
	if e.UpdateAvatar("https://example.com/a.png") {
		t.Fatal("no character yet")
	}
	mustCreate(t, e)
	if !e.UpdateAvatar(" https://example.com/a.png ") {
		t.Fatal("avatar update failed")
	}
	c, _ := e.Character()
	if c.AvatarURL != "https://example.com/a.png" {
		t.Fatalf("unexpected avatar %q", c.AvatarURL)
	}
}

// ============================================================
// Quests
// ============================================================

func TestCompleteMediumQuestsScenario(t *testing.T) {
	e, _, rec := newTestEngine(t, newMemStore())
	mustCreate(t, e)

	var ids []string
	for i := 0; i < 5; i++ {
		q, ok := e.AddQuest(mediumDraft(fmt.Sprintf("Quest %d", i)))
		if !ok {
			t.Fatal("add quest failed")
		}
		ids = append(ids, q.ID)
	}

	e.CompleteQuest(ids[0])
	c, _ := e.Character()
	if c.XP != 20 || c.Level != 1 || c.Coins != 5 {
		t.Fatalf("after one quest: %+v", c)
	}

	for _, id := range ids[1:] {
		e.CompleteQuest(id)
	}
	c, _ = e.Character()
	if c.Level != 2 || c.XP != 0 || c.MaxXP != 150 || c.Coins != 25 {
		t.Fatalf("after five quests: %+v", c)
	}
	if !rec.has(game.EventLevelUp, c.ID) {
		t.Fatal("expected level_up event")
	}
}

func TestCompleteQuestIsIdempotent(t *testing.T) {
	e, _, rec := newTestEngine(t, newMemStore())
	mustCreate(t, e)

	if !e.CompleteQuest("1") {
		t.Fatal("first completion failed")
	}
	c1, _ := e.Character()
	n := len(rec.events)

	if e.CompleteQuest("1") {
		t.Fatal("second completion should be a no-op")
	}
	c2, _ := e.Character()
	if c1 != c2 || len(rec.events) != n {
		t.Fatal("second completion changed state")
	}
	if e.CompleteQuest("missing") {
		t.Fatal("unknown quest should be a no-op")
	}
}

func TestCompleteQuestWithoutCharacter(t *testing.T) {
	e, _, _ := newTestEngine(t, newMemStore())
	if e.CompleteQuest("1") {
		t.Fatal("expected no-op without character")
	}
	if e.Quests()[0].Completed {
		t.Fatal("quest should stay active")
	}
}

func TestCompleteQuestRoutesSkillXP(t *testing.T) {
	e, _, rec := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	e.CompleteQuest("1") // Health, 20 XP

	for _, s := range e.Skills() {
		want := 0
		if s.Category == game.SkillHealth {
			want = 20
		}
		if s.CurrentXP != want {
			t.Fatalf("skill %s has %d XP, want %d", s.Name, s.CurrentXP, want)
		}
	}
	if !rec.has(game.EventAchievementUnlocked, game.AchFirstSteps) {
		t.Fatal("expected first steps unlock")
	}
	ev := rec.events[len(rec.events)-1]
	if !ev.At.Equal(start) {
		t.Fatalf("event not stamped with clock time: %v", ev.At)
	}
}

func TestAddQuestRejectsInvalidDraft(t *testing.T) {
	e, _, _ := newTestEngine(t, newMemStore())
	d := mediumDraft("Juggle")
	d.SkillCategory = "Circus"
	if _, ok := e.AddQuest(d); ok {
		t.Fatal("expected rejection")
	}
	if len(e.Quests()) != 5 {
		t.Fatal("quest list changed")
	}
}

func TestAddQuestStoresRewardsAsGiven(t *testing.T) {
	st := newMemStore()
	e, _, _ := newTestEngine(t, st)
	d := mediumDraft("Custom")
	d.XPReward, d.CoinReward = 77, 1

	q, ok := e.AddQuest(d)
	if !ok || q.XPReward != 77 || q.CoinReward != 1 || q.Completed {
		t.Fatalf("unexpected quest: %+v", q)
	}
	var quests []game.Quest
	getJSON(t, st, KeyQuests, &quests)
	if len(quests) != 6 || quests[5].ID != q.ID {
		t.Fatal("new quest not persisted at the end of the list")
	}
}

func TestManualResets(t *testing.T) {
	e, _, _ := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	for _, id := range []string{"1", "2", "3"} {
		e.CompleteQuest(id)
	}

	if n := e.ResetDailyQuests(); n != 2 {
		t.Fatalf("expected 2 daily quests reset, got %d", n)
	}
	qs := e.Quests()
	if qs[0].Completed || qs[1].Completed || !qs[2].Completed {
		t.Fatal("daily reset touched the wrong quests")
	}
	if n := e.ResetWeeklyQuests(); n != 3 {
		t.Fatalf("expected 3 weekly quests reset, got %d", n)
	}
	if e.Quests()[2].Completed {
		t.Fatal("weekly quest still completed")
	}
}

func TestManualResetsUpdateQuestProgress(t *testing.T) {
	e, _, _ := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	for _, id := range []string{"1", "2", "3"} {
		e.CompleteQuest(id)
	}
	if a := achievementByID(t, e, game.AchQuestMaster); a.Progress.Current != 3 {
		t.Fatalf("expected progress 3, got %d", a.Progress.Current)
	}

	e.ResetDailyQuests()
	if a := achievementByID(t, e, game.AchQuestMaster); a.Progress.Current != 1 {
		t.Fatalf("expected progress 1 after daily reset, got %d", a.Progress.Current)
	}
	e.ResetWeeklyQuests()
	if a := achievementByID(t, e, game.AchQuestMaster); a.Progress.Current != 0 {
		t.Fatalf("expected progress 0 after weekly reset, got %d", a.Progress.Current)
	}
	if a := achievementByID(t, e, game.AchFirstSteps); !a.Unlocked {
		t.Fatal("first steps must stay unlocked")
	}
}

// ============================================================
// Deadlines and health
// ============================================================

func TestDeadlineSweepScenario(t *testing.T) {
	e, _, rec := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	e.ApplyHPLoss(50)

	d := mediumDraft("Stretch")
	d.DueDate = "2026-10-16"
	q, _ := e.AddQuest(d)

	if n := e.CheckQuestDeadlines(); n != 1 {
		t.Fatalf("expected 1 missed quest, got %d", n)
	}
	c, _ := e.Character()
	if c.HP != 40 {
		t.Fatalf("expected 40 HP, got %d", c.HP)
	}
	for _, got := range e.Quests() {
		if got.ID == q.ID && (got.DueDate != "2026-10-19" || got.Completed) {
			t.Fatalf("unexpected quest after sweep: %+v", got)
		}
	}
	var expired *game.Event
	for i := range rec.events {
		if rec.events[i].Kind == game.EventQuestsExpired {
			expired = &rec.events[i]
		}
	}
	if expired == nil || expired.Count != 1 || expired.HPDelta != -10 {
		t.Fatalf("unexpected expired event: %+v", expired)
	}

	if n := e.CheckQuestDeadlines(); n != 0 {
		t.Fatal("rescheduled quest should not be missed again today")
	}
}

func TestDeadlineSweepUsesLossRate(t *testing.T) {
	e, _, _ := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	if e.SetHPLossRate("extreme") {
		t.Fatal("unknown rate accepted")
	}
	if !e.SetHPLossRate(game.HPLossHigh) {
		t.Fatal("high rate rejected")
	}

	for _, due := range []string{"2026-10-01", "2026-10-17"} {
		d := mediumDraft("Late " + due)
		d.Frequency = game.FrequencyOneTime
		d.DueDate = due
		e.AddQuest(d)
	}
	e.CheckQuestDeadlines()
	c, _ := e.Character()
	if c.HP != 60 {
		t.Fatalf("expected 2 x 20 HP penalty, got hp %d", c.HP)
	}
}

func TestDeadlineSweepQuestDueToday(t *testing.T) {
	e, _, _ := newTestEngine(t, newMemStore())
	mustCreate(t, e)

	d := mediumDraft("Renew passport")
	d.Frequency = game.FrequencyOneTime
	d.DueDate = "2026-10-18"
	q, _ := e.AddQuest(d)

	if n := e.CheckQuestDeadlines(); n != 1 {
		t.Fatalf("expected quest due today to be missed at 10:00, got %d", n)
	}
	c, _ := e.Character()
	if c.HP != 90 {
		t.Fatalf("expected 90 HP, got %d", c.HP)
	}
	for _, got := range e.Quests() {
		if got.ID == q.ID && !got.Completed {
			t.Fatalf("one-time quest should be closed: %+v", got)
		}
	}
}

func TestDeadlineSweepEvaluatesAchievements(t *testing.T) {
	st := newMemStore()
	e, _, rec := newTestEngine(t, st)
	mustCreate(t, e)

	d := mediumDraft("Call the bank")
	d.Frequency = game.FrequencyOneTime
	d.DueDate = "2026-10-17"
	e.AddQuest(d)
	e.CheckQuestDeadlines()

	if a := achievementByID(t, e, game.AchFirstSteps); !a.Unlocked || a.Progress.Current != 1 {
		t.Fatalf("expired one-time quest should count as completed: %+v", a)
	}
	if a := achievementByID(t, e, game.AchQuestMaster); a.Progress.Current != 1 {
		t.Fatalf("expected quest master progress 1, got %d", a.Progress.Current)
	}
	if !rec.has(game.EventAchievementUnlocked, game.AchFirstSteps) {
		t.Fatal("expected achievement_unlocked event")
	}

	var saved []game.Achievement
	getJSON(t, st, KeyAchievements, &saved)
	for _, a := range saved {
		if a.ID == game.AchFirstSteps && !a.Unlocked {
			t.Fatal("unlock not persisted")
		}
	}
}

func TestApplyHPLossFloorsAtZero(t *testing.T) {
	e, clock, _ := newTestEngine(t, newMemStore())
	if e.ApplyHPLoss(10) {
		t.Fatal("no character yet")
	}
	mustCreate(t, e)
	clock.Advance(time.Hour)

	e.ApplyHPLoss(500)
	c, _ := e.Character()
	if c.HP != 0 {
		t.Fatalf("expected 0 HP, got %d", c.HP)
	}
	if !e.LastHPUpdate().Equal(clock.now) {
		t.Fatal("HP loss should restart regeneration")
	}
	if e.ApplyHPLoss(-5) {
		t.Fatal("negative loss should be ignored")
	}
}

func TestRegenerateOnSchedule(t *testing.T) {
	e, clock, _ := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	e.ApplyHPLoss(30)

	clock.Advance(11 * time.Minute)
	if e.Regenerate() {
		t.Fatal("no HP before 12 minutes")
	}
	next, ok := e.NextRegenAt()
	if !ok || !next.Equal(start.Add(12*time.Minute)) {
		t.Fatalf("unexpected next regen %v", next)
	}

	clock.Advance(time.Minute)
	if !e.Regenerate() {
		t.Fatal("expected 1 HP at 12 minutes")
	}
	c, _ := e.Character()
	if c.HP != 71 {
		t.Fatalf("expected 71 HP, got %d", c.HP)
	}
}

func TestRecoveryNotUnlockedByGradualRegen(t *testing.T) {
	e, clock, rec := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	e.ApplyHPLoss(85)

	clock.Advance(3 * time.Hour)
	e.Regenerate()
	c, _ := e.Character()
	if c.HP != 30 {
		t.Fatalf("expected 30 HP, got %d", c.HP)
	}

	clock.Advance(17 * time.Hour)
	e.Regenerate()
	c, _ = e.Character()
	if c.HP != 100 {
		t.Fatalf("expected full health, got %d", c.HP)
	}
	if rec.has(game.EventAchievementUnlocked, game.AchSurvivor) {
		t.Fatal("15 -> 30 -> 100 should not unlock survivor")
	}
}

func TestRecoveryAchievementSingleStep(t *testing.T) {
	e, clock, rec := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	e.ApplyHPLoss(85)

	clock.Advance(20 * time.Hour)
	e.Regenerate()
	c, _ := e.Character()
	if c.HP != 100 {
		t.Fatalf("expected full health, got %d", c.HP)
	}
	if !rec.has(game.EventAchievementUnlocked, game.AchSurvivor) {
		t.Fatal("15 -> 100 should unlock survivor")
	}
	for _, a := range e.Achievements() {
		if a.ID == game.AchSurvivor && (a.DateUnlocked == nil || !a.DateUnlocked.Equal(clock.now)) {
			t.Fatalf("unexpected unlock date: %v", a.DateUnlocked)
		}
	}
}

func TestRecoveryRequiresLowHealth(t *testing.T) {
	e, clock, rec := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	e.ApplyHPLoss(50)
	clock.Advance(24 * time.Hour)
	e.Regenerate()

	if rec.has(game.EventAchievementUnlocked, game.AchSurvivor) {
		t.Fatal("recovery from 50 HP should not unlock survivor")
	}
}

func TestRunMaintenanceUpdatesQuestProgress(t *testing.T) {
	e, clock, _ := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	for _, id := range []string{"1", "2", "3"} {
		e.CompleteQuest(id)
	}

	clock.Advance(18 * time.Hour)
	e.RunMaintenance()

	completed := 0
	for _, q := range e.Quests() {
		if q.Completed {
			completed++
		}
	}
	if completed != 1 {
		t.Fatalf("expected 1 completed quest after rollover, got %d", completed)
	}
	if a := achievementByID(t, e, game.AchQuestMaster); a.Progress.Current != completed {
		t.Fatalf("quest master progress %d, want %d", a.Progress.Current, completed)
	}
}

func TestRunMaintenanceDailyRollover(t *testing.T) {
	e, clock, _ := newTestEngine(t, newMemStore())
	mustCreate(t, e)
	e.CompleteQuest("1")

	clock.Advance(6 * time.Hour)
	e.RunMaintenance()
	if !e.Quests()[0].Completed {
		t.Fatal("same day maintenance should not reset")
	}

	clock.Advance(12 * time.Hour)
	e.RunMaintenance()
	if e.Quests()[0].Completed {
		t.Fatal("next day maintenance should reset daily quests")
	}
}

// ============================================================
// Skills and accessors
// ============================================================

func TestLevelUpSkill(t *testing.T) {
	e, _, rec := newTestEngine(t, newMemStore())
	if !e.LevelUpSkill("4") {
		t.Fatal("level up failed")
	}
	for _, s := range e.Skills() {
		if s.ID == "4" && (s.Level != 2 || s.XPRequired != 150) {
			t.Fatalf("unexpected skill: %+v", s)
		}
	}
	if e.LevelUpSkill("missing") {
		t.Fatal("unknown skill should be a no-op")
	}
	if !rec.has(game.EventSkillLevelUp, "4") {
		t.Fatal("expected skill_level_up event")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	e, _, _ := newTestEngine(t, newMemStore())
	qs := e.Quests()
	qs[0].Completed = true
	as := e.Achievements()
	as[0].Progress.Current = 99

	if e.Quests()[0].Completed {
		t.Fatal("quest accessor leaked internal state")
	}
	if e.Achievements()[0].Progress.Current == 99 {
		t.Fatal("achievement accessor leaked internal state")
	}
}

func TestListenerReceivesEvents(t *testing.T) {
	var got []game.Event
	e := New(newMemStore(),
		WithClock(&fakeClock{now: start}),
		WithListener(func(ev game.Event) { got = append(got, ev) }),
	)
	e.Load()
	e.CreateCharacter("Ayla", game.ClassRogue)
	if len(got) == 0 || got[0].Kind != game.EventCharacterCreated {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestEngineOverSQLiteStore(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	e := New(s, WithClock(&fakeClock{now: start}), WithJournal(s))
	e.Load()
	e.CreateCharacter("Ayla", game.ClassWarrior)
	e.CompleteQuest("1")

	days, err := s.DailyXP(start.Add(-time.Hour), start.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0].XP != 20 {
		t.Fatalf("unexpected daily xp: %+v", days)
	}

	reloaded := New(s, WithClock(&fakeClock{now: start}))
	reloaded.Load()
	if c, ok := reloaded.Character(); !ok || c.XP != 20 {
		t.Fatalf("unexpected reloaded character: %+v", c)
	}
}
