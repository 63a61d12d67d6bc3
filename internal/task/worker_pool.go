package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// WorkerPool manages a pool of worker goroutines that process tasks
// from a task queue. It handles graceful shutdown and worker lifecycle.
type WorkerPool struct {
	taskQueue   TaskQueueReader
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *slog.Logger

	// errorHandler is called when a task execution fails.
	// If nil, errors are only logged.
	errorHandler func(task Task, err error)
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 4,
	}
}

// NewWorkerPool creates a worker pool whose workers stop when parent is
// cancelled, when Stop is called, or when the queue is closed and drained.
func NewWorkerPool(
	parent context.Context,
	taskQueue TaskQueueReader,
	config WorkerPoolConfig,
	logger *slog.Logger,
) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(parent)

	return &WorkerPool{
		taskQueue:   taskQueue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// SetErrorHandler allows setting a custom error handler for task execution failures.
// It must be called before Start and may be invoked from several workers at once.
func (p *WorkerPool) SetErrorHandler(handler func(task Task, err error)) {
	p.errorHandler = handler
}

// Start launches the worker goroutines.
func (p *WorkerPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Wait blocks until every worker has exited.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
	p.cancel()
}

// Stop cancels in-flight work and waits for the workers to exit.
func (p *WorkerPool) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	tasks := p.taskQueue.GetChannel()
	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("stopping worker", "worker_id", id)
			return
		case t, ok := <-tasks:
			if !ok {
				return
			}
			p.processTask(t, id)
		}
	}
}

func (p *WorkerPool) processTask(t Task, workerID int) {
	log := p.logger.With(
		"task_id", t.ID(),
		"task_type", t.Type(),
		"worker_id", workerID,
	)

	err := p.execute(t)
	if err == nil {
		log.Debug("task completed successfully")
		return
	}

	log.Error("task execution failed", "error", err)
	if p.errorHandler != nil {
		p.errorHandler(t, err)
	}
}

// execute runs t, converting a panic into an error so one bad task cannot
// take the pool down.
func (p *WorkerPool) execute(t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return t.Execute(p.ctx)
}

// RunAll executes tasks on a temporary pool of workerCount workers and
// returns once all of them have finished. The returned error joins every
// task failure, or is ctx.Err() when ctx ends first.
func RunAll(ctx context.Context, tasks []Task, workerCount int, logger *slog.Logger) error {
	if len(tasks) == 0 {
		return ctx.Err()
	}

	queue := NewTaskQueue(len(tasks), logger)
	for _, t := range tasks {
		if err := queue.Enqueue(t); err != nil {
			return err
		}
	}
	queue.Close()

	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}
	pool := NewWorkerPool(ctx, queue, WorkerPoolConfig{WorkerCount: workerCount}, logger)

	var (
		mu   sync.Mutex
		errs []error
	)
	pool.SetErrorHandler(func(t Task, err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	})

	pool.Start()
	pool.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}
