package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Run()
}

// CronJob runs on its own cron schedule instead of the default tick.
type CronJob interface {
	Schedule() string
	Job
}

// TaskExecutor drives background jobs through a shared cron. A job that
// is still running when its next slot arrives is skipped, never stacked.
type TaskExecutor struct {
	cron    *cron.Cron
	jobs    []Job
	crons   []CronJob
	running mapset.Set[Job]
	mu      sync.Mutex
}

func NewTaskExecutor(jobs []Job, crons []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:    cron.New(),
		jobs:    jobs,
		crons:   crons,
		running: mapset.NewSet[Job](),
	}
}

// Run registers every job with the cron and starts it.
func (t *TaskExecutor) Run() {
	for _, job := range t.crons {
		if err := t.cron.AddFunc(job.Schedule(), t.guarded(job)); err != nil {
			logrus.Errorf("failed to add task to cron: %v", err)
			panic(err)
		}
	}

	for _, job := range t.jobs {
		if err := t.cron.AddFunc("@every 1s", t.guarded(job)); err != nil {
			logrus.Errorf("failed to add task to cron: %v", err)
			panic(err)
		}
	}

	t.cron.Start()
}

func (t *TaskExecutor) guarded(job Job) func() {
	return func() {
		t.mu.Lock()
		if t.running.Contains(job) {
			t.mu.Unlock()
			logrus.Warn("task is already running")
			return
		}
		t.running.Add(job)
		t.mu.Unlock()

		defer func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.running.Remove(job)
		}()

		job.Run()
	}
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
}
