package cron

import (
	"context"
	"fmt"
	"time"

	"agendamento/config"
	"agendamento/services/booking"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeOrphanSweep = "appointments:sweep_orphans"

// OrphanSweeper deletes appointments left without service links.
type OrphanSweeper interface {
	SweepOrphans(ctx context.Context, grace time.Duration) (int, error)
}

// SweepPayload travels with each scheduled sweep task.
type SweepPayload struct {
	Grace time.Duration `json:"grace"`
}

// Worker runs the periodic orphan sweep on the Redis-backed task queue.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	logger    *zap.Logger
}

// NewSweepTask builds the task the scheduler enqueues on every tick.
func NewSweepTask(grace time.Duration) (*asynq.Task, error) {
	b, err := json.Marshal(SweepPayload{Grace: grace})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOrphanSweep, b, asynq.MaxRetry(1), asynq.Timeout(time.Minute)), nil
}

// StartOrphanSweeper schedules a sweep every cfg.OrphanSweepInterval and starts processing it.
// It returns nil when the sweep is disabled or no Redis is configured.
func StartOrphanSweeper(cfg config.Config, sweeper OrphanSweeper, logger *zap.Logger) (*Worker, error) {
	if cfg.OrphanSweepInterval <= 0 || cfg.RedisAddr == "" {
		return nil, nil
	}
	if err := checkGrace(cfg); err != nil {
		return nil, err
	}

	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	task, err := NewSweepTask(cfg.OrphanSweepGrace)
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	if _, err := scheduler.Register("@every "+cfg.OrphanSweepInterval.String(), task); err != nil {
		return nil, fmt.Errorf("failed to register orphan sweep: %w", err)
	}

	server := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{"default": 1},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOrphanSweep, handleSweepTask(sweeper, logger))

	if err := server.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start task server: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		server.Shutdown()
		return nil, fmt.Errorf("failed to start task scheduler: %w", err)
	}

	logger.Info("Orphan sweep scheduled",
		zap.Duration("every", cfg.OrphanSweepInterval),
		zap.Duration("grace", cfg.OrphanSweepGrace),
	)
	return &Worker{server: server, scheduler: scheduler, logger: logger}, nil
}

// checkGrace requires the grace period to outlast a whole Submit, which makes two store calls
// each bounded by STORE_TIMEOUT.
func checkGrace(cfg config.Config) error {
	floor := booking.MinSweepGrace
	if storeBound := 2 * cfg.StoreTimeout; storeBound >= floor {
		floor = storeBound + time.Second
	}
	if cfg.OrphanSweepGrace < floor {
		return fmt.Errorf("%w: ORPHAN_SWEEP_GRACE=%s, need at least %s", booking.ErrSweepGraceTooShort, cfg.OrphanSweepGrace, floor)
	}
	return nil
}

// Shutdown stops scheduling and waits for a running sweep to finish.
func (w *Worker) Shutdown() {
	if w == nil {
		return
	}
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("Orphan sweep stopped")
}

func handleSweepTask(sweeper OrphanSweeper, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p SweepPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid sweep payload", zap.Error(err))
			return fmt.Errorf("invalid sweep payload: %v: %w", err, asynq.SkipRetry)
		}

		n, err := sweeper.SweepOrphans(ctx, p.Grace)
		if err != nil {
			logger.Error("Orphan sweep failed", zap.Int("deleted", n), zap.Error(err))
			return err
		}
		logger.Info("Orphan sweep finished", zap.Int("deleted", n))
		return nil
	}
}
