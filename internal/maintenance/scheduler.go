package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/isdelr/shopsmart-be/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const runTimeout = 30 * time.Second

var statements = []string{
	"PRAGMA optimize",
	"PRAGMA wal_checkpoint(TRUNCATE)",
}

// Scheduler runs SQLite housekeeping on a cron schedule.
type Scheduler struct {
	db      *sql.DB
	metrics *metrics.Metrics
	cron    *cron.Cron
}

// NewScheduler creates a new scheduler instance. m may be nil.
func NewScheduler(db *sql.DB, m *metrics.Metrics) *Scheduler {
	return &Scheduler{db: db, metrics: m}
}

// Start registers the maintenance job under schedule (standard five-field cron or
// a descriptor such as "@daily") and starts the cron runner.
func (s *Scheduler) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", schedule, err)
	}
	s.cron = c
	c.Start()
	log.Info().Str("schedule", schedule).Msg("Database maintenance scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped database maintenance scheduler")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	result := "success"
	if err := s.RunOnce(ctx); err != nil {
		result = "error"
		log.Error().Err(err).Msg("Database maintenance failed")
	}
	if s.metrics != nil {
		s.metrics.MaintenanceRuns.WithLabelValues(result).Inc()
	}
}

// RunOnce executes the maintenance statements immediately.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := time.Now()
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	log.Info().Dur("took", time.Since(start)).Msg("Database maintenance completed")
	return nil
}
