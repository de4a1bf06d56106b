// Package batch runs watermark removal tasks through a bounded worker
// pool. A failing file is recorded on its task and never aborts the rest
// of the batch.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inkwash/inkwash/internal/model"
)

// ProcessFunc performs the actual watermark removal for one task.
type ProcessFunc func(ctx context.Context, task *model.Task) error

// Summary totals one batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Stopped   int
	Elapsed   time.Duration
}

// Runner executes tasks with a fixed number of workers.
type Runner struct {
	workers  int
	mu       sync.RWMutex
	tasks    map[string]*model.Task
	order    []string
	onUpdate func(*model.Task)
}

// NewRunner creates a runner with the given worker count.
func NewRunner(workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		workers: workers,
		tasks:   make(map[string]*model.Task),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (r *Runner) SetUpdateCallback(callback func(*model.Task)) {
	r.onUpdate = callback
}

// Add registers a task with the runner.
func (r *Runner) Add(task *model.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
}

// Get returns a task by ID.
func (r *Runner) Get(id string) (*model.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, exists := r.tasks[id]
	return task, exists
}

// Tasks returns all tasks in registration order.
func (r *Runner) Tasks() []*model.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*model.Task, 0, len(r.order))
	for _, id := range r.order {
		tasks = append(tasks, r.tasks[id])
	}
	return tasks
}

// Progress updates a task's progress and notifies the callback.
func (r *Runner) Progress(task *model.Task, p float64) {
	r.mu.Lock()
	task.SetProgress(p)
	r.mu.Unlock()
	r.notifyUpdate(task)
}

// Run processes every registered task and blocks until the batch is done.
// Cancelling the context marks tasks that have not started as Stopped;
// tasks already running finish or fail on their own.
func (r *Runner) Run(ctx context.Context, process ProcessFunc) Summary {
	start := time.Now()

	queue := make(chan *model.Task)
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				r.runTask(ctx, task, process)
			}
		}()
	}

feed:
	for _, task := range r.Tasks() {
		select {
		case <-ctx.Done():
			break feed
		case queue <- task:
		}
	}
	close(queue)
	wg.Wait()

	summary := Summary{Elapsed: time.Since(start)}
	r.mu.Lock()
	for _, id := range r.order {
		task := r.tasks[id]
		summary.Total++
		switch task.Status {
		case model.TaskStatusCompleted:
			summary.Succeeded++
		case model.TaskStatusError:
			summary.Failed++
		default:
			// Anything still pending after cancellation counts as stopped.
			task.Status = model.TaskStatusStopped
			summary.Stopped++
		}
	}
	r.mu.Unlock()

	return summary
}

// runTask drives one task through its lifecycle. Panics out of the
// processing code are captured as task errors so one broken file cannot
// take the batch down.
func (r *Runner) runTask(ctx context.Context, task *model.Task, process ProcessFunc) {
	if ctx.Err() != nil {
		r.setStatus(task, model.TaskStatusStopped)
		return
	}

	r.mu.Lock()
	task.Status = model.TaskStatusStarting
	task.StartedAt = time.Now()
	r.mu.Unlock()
	r.notifyUpdate(task)

	r.setStatus(task, model.TaskStatusProcessing)

	err := func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic: %v", rec)
			}
		}()
		return process(ctx, task)
	}()

	r.mu.Lock()
	switch {
	case err != nil && ctx.Err() != nil:
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.SetProgress(1.0)
	}
	task.FinishedAt = time.Now()
	r.mu.Unlock()
	r.notifyUpdate(task)

	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Str("input", task.InputPath).Msg(task.DisplayName())
	}
}

func (r *Runner) setStatus(task *model.Task, status model.TaskStatus) {
	r.mu.Lock()
	task.Status = status
	r.mu.Unlock()
	r.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (r *Runner) notifyUpdate(task *model.Task) {
	if r.onUpdate != nil {
		r.onUpdate(task)
	}
}
