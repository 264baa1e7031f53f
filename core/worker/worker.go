package worker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"go-events-api/core/config"
	"go-events-api/core/constants"
	"go-events-api/core/logger"
	reminderSvc "go-events-api/modules/reminder/service"
	syncSvc "go-events-api/modules/sync/service"
	userEntity "go-events-api/modules/user/entity"
)

// JobPayload addresses a background task to one user. An empty email means
// fan out across every account.
type JobPayload struct {
	Email string `json:"email"`
}

type ReminderRunner interface {
	RunReminderJob(ctx context.Context, userEmail string) (*reminderSvc.RunResult, error)
}

type SyncRunner interface {
	RunSuperSync(ctx context.Context, userEmail string) (*syncSvc.SyncResult, error)
}

type UserLister interface {
	ListAll(ctx context.Context) ([]*userEntity.User, error)
}

// Worker runs the reminder and sync jobs on a schedule and on demand. The
// HTTP endpoints stay available for manual triggers; the per-user lock keeps
// the two paths from overlapping.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	client    *asynq.Client

	cfg       config.WorkerConfig
	reminders ReminderRunner
	sync      SyncRunner
	users     UserLister
}

func New(cfg *config.Config, reminders ReminderRunner, sync SyncRunner, users UserLister) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	return &Worker{
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues:      map[string]int{constants.QueueDefault: 1},
		}),
		scheduler: asynq.NewScheduler(redisOpt, nil),
		client:    asynq.NewClient(redisOpt),
		cfg:       cfg.Worker,
		reminders: reminders,
		sync:      sync,
		users:     users,
	}
}

// Start registers the cron entries and brings up the task server. Both are
// non-blocking; call Shutdown to stop them.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskReminderRun, w.handleReminder)
	mux.HandleFunc(constants.TaskSyncRun, w.handleSync)

	fanOut, err := json.Marshal(JobPayload{})
	if err != nil {
		return err
	}
	if _, err := w.scheduler.Register(w.cfg.ReminderCron,
		asynq.NewTask(constants.TaskReminderRun, fanOut),
		asynq.Queue(constants.QueueDefault)); err != nil {
		return err
	}
	if _, err := w.scheduler.Register(w.cfg.SyncCron,
		asynq.NewTask(constants.TaskSyncRun, fanOut),
		asynq.Queue(constants.QueueDefault)); err != nil {
		return err
	}

	if err := w.server.Start(mux); err != nil {
		return err
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return err
	}
	logger.Info("Worker:Start", "reminder_cron", w.cfg.ReminderCron, "sync_cron", w.cfg.SyncCron)
	return nil
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	_ = w.client.Close()
}

// EnqueueReminder queues an immediate reminder pass for one user.
func (w *Worker) EnqueueReminder(ctx context.Context, email string) error {
	return w.enqueue(ctx, constants.TaskReminderRun, email)
}

// EnqueueSync queues an immediate sync pass for one user.
func (w *Worker) EnqueueSync(ctx context.Context, email string) error {
	return w.enqueue(ctx, constants.TaskSyncRun, email)
}

func (w *Worker) enqueue(ctx context.Context, taskType, email string) error {
	payload, err := json.Marshal(JobPayload{Email: email})
	if err != nil {
		return err
	}
	_, err = w.client.EnqueueContext(ctx, asynq.NewTask(taskType, payload), asynq.Queue(constants.QueueDefault))
	return err
}

func (w *Worker) handleReminder(ctx context.Context, task *asynq.Task) error {
	return w.runForTargets(ctx, task, "reminder", func(ctx context.Context, email string) error {
		_, err := w.reminders.RunReminderJob(ctx, email)
		return err
	})
}

func (w *Worker) handleSync(ctx context.Context, task *asynq.Task) error {
	return w.runForTargets(ctx, task, "sync", func(ctx context.Context, email string) error {
		_, err := w.sync.RunSuperSync(ctx, email)
		return err
	})
}

// runForTargets resolves the task payload to one user or all users and runs
// the job per user. Per-user failures are logged, not returned: one broken
// account must not retry the whole fan-out.
func (w *Worker) runForTargets(ctx context.Context, task *asynq.Task, job string, run func(context.Context, string) error) error {
	var payload JobPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}
	runID := uuid.NewString()

	if payload.Email != "" {
		logger.Info("Worker:runForTargets:Single", "run_id", runID, "job", job, "email", payload.Email)
		return run(ctx, payload.Email)
	}

	users, err := w.users.ListAll(ctx)
	if err != nil {
		return err
	}
	logger.Info("Worker:runForTargets:FanOut", "run_id", runID, "job", job, "users", len(users))
	for _, u := range users {
		if err := run(ctx, u.Email); err != nil {
			logger.Warn("Worker:runForTargets:UserFailed", "run_id", runID, "job", job, "email", u.Email, "error", err)
		}
	}
	return nil
}
