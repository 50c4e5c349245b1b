package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/lifequest/internal/game"
	"github.com/sadopc/lifequest/internal/store"
)

type jsonExport struct {
	ExportedAt string         `json:"exported_at"`
	Count      int            `json:"count"`
	Totals     jsonTotals     `json:"totals"`
	Activity   []jsonActivity `json:"activity"`
}

type jsonTotals struct {
	QuestsCompleted int `json:"quests_completed"`
	XP              int `json:"xp"`
	Coins           int `json:"coins"`
	HPLost          int `json:"hp_lost"`
}

type jsonActivity struct {
	ID      int64  `json:"id"`
	Time    string `json:"time"`
	Kind    string `json:"kind"`
	Subject string `json:"subject,omitempty"`
	XP      int    `json:"xp,omitempty"`
	Coins   int    `json:"coins,omitempty"`
	HPDelta int    `json:"hp_delta,omitempty"`
	Detail  string `json:"detail"`
}

func ToJSON(activities []store.Activity, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(activities),
	}

	for _, a := range activities {
		// hp_changed rows already cover every loss, so totals are taken
		// from them and from completed quests only.
		switch game.EventKind(a.Kind) {
		case game.EventQuestCompleted:
			export.Totals.QuestsCompleted++
			export.Totals.XP += a.XP
			export.Totals.Coins += a.Coins
		case game.EventHPChanged:
			if a.HPDelta < 0 {
				export.Totals.HPLost -= a.HPDelta
			}
		}

		export.Activity = append(export.Activity, jsonActivity{
			ID:      a.ID,
			Time:    a.CreatedAt.Local().Format(time.RFC3339),
			Kind:    a.Kind,
			Subject: a.Subject,
			XP:      a.XP,
			Coins:   a.Coins,
			HPDelta: a.HPDelta,
			Detail:  a.Detail,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
