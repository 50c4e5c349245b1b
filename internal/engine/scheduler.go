package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler drives periodic regeneration and maintenance on cron's own
// goroutines. The engine lock serializes its jobs with UI commands.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers Regenerate every regenEvery and RunMaintenance on
// the cron spec. A zero interval or an empty spec disables that job.
func NewScheduler(e *Engine, regenEvery time.Duration, maintenanceSpec string, log *slog.Logger) (*Scheduler, error) {
	cronLog := cron.DiscardLogger
	if log != nil {
		cronLog = cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelError))
	}
	c := cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog)))

	if regenEvery > 0 {
		c.Schedule(cron.Every(regenEvery), cron.FuncJob(func() { e.Regenerate() }))
	}
	if maintenanceSpec != "" {
		if _, err := c.AddFunc(maintenanceSpec, e.RunMaintenance); err != nil {
			return nil, fmt.Errorf("schedule maintenance %q: %w", maintenanceSpec, err)
		}
	}
	if log != nil {
		log.Debug("scheduler configured", "regen", regenEvery, "maintenance", maintenanceSpec, "jobs", len(c.Entries()))
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}
