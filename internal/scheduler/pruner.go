// Package scheduler runs periodic maintenance jobs for the service.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/policygen/internal/config"
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/logfields"
)

const pruneTimeout = 30 * time.Second

// Pruner deletes history entries older than a cutoff.
type Pruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// HistoryPruner removes generation records past their retention window on
// a fixed interval.
type HistoryPruner struct {
	scheduler gocron.Scheduler
	store     Pruner
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	logger    *slog.Logger

	mu    sync.Mutex
	jobID string
}

// NewHistoryPruner creates a pruner for store using the history settings.
func NewHistoryPruner(store Pruner, cfg config.HistoryConfig, logger *slog.Logger) (*HistoryPruner, error) {
	if store == nil {
		return nil, errors.InternalError("history pruner requires a store").Build()
	}
	if cfg.RetentionDays <= 0 || cfg.PruneInterval <= 0 {
		return nil, errors.ConfigError("history retention and prune interval must be positive").
			WithContext("retention_days", cfg.RetentionDays).
			WithContext("prune_interval", cfg.PruneInterval.String()).
			Build()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create gocron scheduler").Build()
	}

	return &HistoryPruner{
		scheduler: s,
		store:     store,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval:  cfg.PruneInterval,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Cutoff is the oldest timestamp that survives a prune run at now.
func (p *HistoryPruner) Cutoff(now time.Time) time.Time {
	return now.Add(-p.retention)
}

// PruneNow deletes expired records immediately.
func (p *HistoryPruner) PruneNow(ctx context.Context) (int64, error) {
	cutoff := p.Cutoff(p.now())
	n, err := p.store.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	p.logger.Info("Pruned generation history",
		slog.Int64("removed", n),
		slog.String("cutoff", cutoff.UTC().Format(time.RFC3339)))
	return n, nil
}

// Start schedules the prune job, running it once right away.
func (p *HistoryPruner) Start() error {
	job, err := p.scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(p.run),
		gocron.WithName("history-prune"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create history prune job").Build()
	}

	p.mu.Lock()
	p.jobID = job.ID().String()
	p.mu.Unlock()

	p.logger.Info("Starting history pruner", slog.Duration("interval", p.interval))
	p.scheduler.Start()
	return nil
}

// JobID returns the gocron job id once Start has succeeded.
func (p *HistoryPruner) JobID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jobID
}

// Stop waits for a running prune to finish and shuts the scheduler down.
func (p *HistoryPruner) Stop() error {
	p.logger.Info("Stopping history pruner")
	return p.scheduler.Shutdown()
}

func (p *HistoryPruner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()
	if _, err := p.PruneNow(ctx); err != nil {
		p.logger.Error("History prune failed", logfields.Error(err))
	}
}
