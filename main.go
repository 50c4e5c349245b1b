package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/lifequest/internal/config"
	"github.com/sadopc/lifequest/internal/engine"
	"github.com/sadopc/lifequest/internal/export"
	"github.com/sadopc/lifequest/internal/game"
	"github.com/sadopc/lifequest/internal/store"
	"github.com/sadopc/lifequest/internal/tui"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "lifequest",
		Short:         "Turn your habits into an RPG",
		Long:          "lifequest is a terminal life-RPG: complete quests to earn XP and coins, level up skills and unlock achievements.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(dbPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides LIFEQUEST_DB)")
	cmd.AddCommand(newExportCmd(&dbPath))
	return cmd
}

func loadConfig(dbPath string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
		if os.Getenv("LIFEQUEST_LOG") == "" {
			cfg.LogPath = config.DefaultLogPath(dbPath)
		}
	}
	return cfg, nil
}

func openLog(cfg config.Config) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))
	return log, func() { f.Close() }, nil
}

func run(cfg config.Config) error {
	log, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	// The TUI drains this channel; a full buffer drops events rather than
	// blocking the engine.
	events := make(chan game.Event, 64)
	e := engine.New(s,
		engine.WithLogger(log),
		engine.WithJournal(s),
		engine.WithListener(func(ev game.Event) {
			select {
			case events <- ev:
			default:
			}
		}),
	)
	e.Load()

	sched, err := engine.NewScheduler(e, cfg.RegenInterval, cfg.MaintenanceSpec(), log)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	log.Info("lifequest started", "db", cfg.DBPath, "regen", cfg.RegenInterval, "maintenance", cfg.MaintenanceSpec())

	p := tea.NewProgram(tui.NewApp(e, s, events), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func newExportCmd(dbPath *string) *cobra.Command {
	var format, out, kind string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the activity journal to CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}

			cfg, err := loadConfig(*dbPath)
			if err != nil {
				return err
			}
			s, err := store.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer s.Close()

			activities, err := s.ListActivity(store.ActivityFilter{Kind: kind})
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("lifequest-export-%s.%s", time.Now().Format("2006-01-02"), format)
			}
			if format == "csv" {
				err = export.ToCSV(activities, out)
			} else {
				err = export.ToJSON(activities, out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(activities), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default lifequest-export-<date>.<format>)")
	cmd.Flags().StringVar(&kind, "kind", "", "only export events of this kind (e.g. quest_completed)")
	return cmd
}
