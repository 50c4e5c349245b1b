package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/lifequest/internal/store"
)

func ToCSV(activities []store.Activity, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Time", "Kind", "Subject", "XP", "Coins", "HP", "Detail"}); err != nil {
		return err
	}

	for _, a := range activities {
		row := []string{
			fmt.Sprintf("%d", a.ID),
			a.CreatedAt.Local().Format(time.RFC3339),
			a.Kind,
			a.Subject,
			fmt.Sprintf("%d", a.XP),
			fmt.Sprintf("%d", a.Coins),
			formatSigned(a.HPDelta),
			a.Detail,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// formatSigned renders n with an explicit sign, or "0".
func formatSigned(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
