package store

import (
	"fmt"
	"time"

	"github.com/sadopc/lifequest/internal/game"
)

// Append journals one game event. Events without a timestamp are stamped
// with the current time.
func (s *Store) Append(ev game.Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO activity (kind, subject, xp, coins, hp_delta, detail, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(ev.Kind), ev.Subject, ev.XP, ev.Coins, ev.HPDelta, ev.Message(), at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append activity %s: %w", ev.Kind, err)
	}
	return nil
}

func (s *Store) ListActivity(f ActivityFilter) ([]Activity, error) {
	query := `SELECT id, kind, subject, xp, coins, hp_delta, detail, created_at FROM activity WHERE 1=1`
	var args []any

	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, f.Kind)
	}
	if f.From != nil {
		query += ` AND created_at >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND created_at < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Kind, &a.Subject, &a.XP, &a.Coins, &a.HPDelta, &a.Detail, &createdAt); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("activity %d created_at: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DailyXP sums the rewards of completed quests per day in [from, to).
func (s *Store) DailyXP(from, to time.Time) ([]DailyXP, error) {
	rows, err := s.db.Query(`
		SELECT date(created_at) AS day, COALESCE(SUM(xp), 0), COALESCE(SUM(coins), 0), COUNT(*)
		FROM activity
		WHERE kind = ?
		  AND created_at >= ? AND created_at < ?
		GROUP BY day
		ORDER BY day`,
		string(game.EventQuestCompleted),
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily xp: %w", err)
	}
	defer rows.Close()

	var days []DailyXP
	for rows.Next() {
		var d DailyXP
		if err := rows.Scan(&d.Date, &d.XP, &d.Coins, &d.Quests); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// TodayXP returns the quest XP earned since local midnight.
func (s *Store) TodayXP(now time.Time) (int64, error) {
	var total int64
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(xp), 0)
		FROM activity
		WHERE kind = ? AND created_at >= ?`,
		string(game.EventQuestCompleted), game.StartOfDay(now).UTC().Format(time.RFC3339),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("today xp: %w", err)
	}
	return total, nil
}
