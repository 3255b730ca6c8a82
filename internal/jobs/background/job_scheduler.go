package background

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"stocktrack/internal/jobs"
	"stocktrack/internal/services"
)

// JobScheduler manages the periodic background jobs
type JobScheduler struct {
	scheduler   gocron.Scheduler
	sweeper     *jobs.ReorderSweeper
	authService services.AuthService
	logger      *zap.Logger
	jobJobs     map[string]gocron.Job
	mu          sync.RWMutex
}

// NewJobScheduler creates a new job scheduler with the standard jobs
// registered: the reorder sweep and the token cleanup tick.
func NewJobScheduler(sweeper *jobs.ReorderSweeper, authService services.AuthService, sweepInterval, tokenCleanupInterval time.Duration, logger *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		sweeper:     sweeper,
		authService: authService,
		logger:      logger,
		jobJobs:     make(map[string]gocron.Job),
	}

	js.registerJobs(sweepInterval, tokenCleanupInterval)

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler", zap.Int("jobs", len(js.jobJobs)))
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(sweepInterval, tokenCleanupInterval time.Duration) {
	sweepJob, err := js.scheduler.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(js.runReorderSweep),
		gocron.WithName("reorder-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		js.logger.Error("failed to register reorder sweep job", zap.Error(err))
	} else {
		js.jobJobs["reorder-sweep"] = sweepJob
	}

	cleanupJob, err := js.scheduler.NewJob(
		gocron.DurationJob(tokenCleanupInterval),
		gocron.NewTask(js.runTokenCleanup),
		gocron.WithName("token-cleanup"),
	)
	if err != nil {
		js.logger.Error("failed to register token cleanup job", zap.Error(err))
	} else {
		js.jobJobs["token-cleanup"] = cleanupJob
	}
}

func (js *JobScheduler) runReorderSweep() {
	if err := js.sweeper.Sweep(context.Background()); err != nil {
		js.logger.Error("reorder sweep failed", zap.Error(err))
	}
}

func (js *JobScheduler) runTokenCleanup() {
	if err := js.authService.CleanupExpiredTokens(context.Background()); err != nil {
		js.logger.Error("token cleanup failed", zap.Error(err))
	}
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobJobs[name] = job
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobJobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobJobs, name)
		return err
	}
	return nil
}

// JobNames returns the registered job names
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobJobs))
	for name := range js.jobJobs {
		names = append(names, name)
	}
	return names
}
