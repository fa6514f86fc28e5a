package cron

import (
	"context"
	"fmt"
	"time"

	"apptreminders/config"
	"apptreminders/models"
	"apptreminders/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderDispatcher runs one dispatch pass.
type ReminderDispatcher interface {
	Run(ctx context.Context) (*models.DispatchResult, error)
}

// NotificationSweeper runs one retention sweep.
type NotificationSweeper interface {
	Run(ctx context.Context) (*models.SweepResult, error)
}

// ReminderWorker drives the dispatcher and sweeper from an asynq scheduler
// when no external scheduler is available.
type ReminderWorker struct {
	cfg       *config.Config
	logger    *zap.Logger
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func NewReminderWorker(cfg *config.Config, dispatcher ReminderDispatcher, sweeper NotificationSweeper, logger *zap.Logger) *ReminderWorker {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisSchedulerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			// Ticks are handled one at a time per process.
			Concurrency: 1,
			Queues: map[string]int{
				tasks.QueueReminders: 1,
			},
			Logger: logger.Sugar(),
		},
	)

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeDispatchReminders, handleDispatchTask(dispatcher, logger))
	mux.HandleFunc(tasks.TypeCleanupNotifications, handleCleanupTask(sweeper, logger))

	return &ReminderWorker{
		cfg:       cfg,
		logger:    logger,
		server:    srv,
		scheduler: scheduler,
		mux:       mux,
	}
}

// Start registers the periodic entries and starts the scheduler and the task server.
func (w *ReminderWorker) Start() error {
	if _, err := w.scheduler.Register(w.cfg.DispatchSchedule, tasks.NewDispatchTask(w.cfg.TaskMaxRetry)); err != nil {
		return fmt.Errorf("register dispatch schedule %q: %w", w.cfg.DispatchSchedule, err)
	}
	if _, err := w.scheduler.Register(w.cfg.SweepSchedule, tasks.NewCleanupTask(w.cfg.TaskMaxRetry)); err != nil {
		return fmt.Errorf("register sweep schedule %q: %w", w.cfg.SweepSchedule, err)
	}

	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start reminder worker: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("start reminder scheduler: %w", err)
	}

	w.logger.Info("Reminder worker started",
		zap.String("dispatchSchedule", w.cfg.DispatchSchedule),
		zap.String("sweepSchedule", w.cfg.SweepSchedule))
	return nil
}

func (w *ReminderWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("Reminder worker stopped")
}

func handleDispatchTask(dispatcher ReminderDispatcher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		result, err := dispatcher.Run(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", task.Type(), err)
		}
		if result != nil {
			logger.Debug("Dispatch task finished", zap.String("runId", result.RunID), zap.Int("processed", result.Processed))
		}
		return nil
	}
}

func handleCleanupTask(sweeper NotificationSweeper, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		result, err := sweeper.Run(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", task.Type(), err)
		}
		if result != nil {
			logger.Debug("Cleanup task finished", zap.String("runId", result.RunID), zap.Int("deleted", result.DeletedCount))
		}
		return nil
	}
}
