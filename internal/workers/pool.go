// Package workers provides a fixed-size background task pool. Vault and
// store operations run on the pool so the interactive terminal loop never
// blocks on disk or crypto work.
package workers

import (
	"context"
	"sync"

	"github.com/safepass/safepass/internal/config"
	"github.com/safepass/safepass/internal/logger"
)

// Task is a unit of background work. The context passed to the task is the
// pool's run context and is cancelled when the pool stops.
type Task func(ctx context.Context)

// Pool runs submitted tasks on a fixed number of worker goroutines.
// The pool is idle until Start is called.
type Pool struct {
	size   int
	logger *logger.Logger

	mu     sync.Mutex
	tasks  chan Task
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPool creates a Pool with cfg.PoolSize workers. A non-positive size
// falls back to a single worker.
func NewPool(cfg config.Workers, log *logger.Logger) *Pool {
	size := cfg.PoolSize
	if size <= 0 {
		size = 1
	}

	return &Pool{
		size:   size,
		logger: log.GetChildLogger(),
	}
}

// Start stops any previously running pool, then launches the worker
// goroutines. Workers exit when ctx is cancelled or Stop is called.
func (p *Pool) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	poolCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.tasks = make(chan Task, p.size*4)
	tasks := p.tasks
	p.wg.Add(p.size)
	p.mu.Unlock()

	for i := 0; i < p.size; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-poolCtx.Done():
					return
				case task, ok := <-tasks:
					if !ok {
						return
					}
					task(poolCtx)
				}
			}
		}()
	}

	p.logger.Info().Int("size", p.size).Msg("worker pool started")
}

// Submit enqueues a task for execution. It returns false when the pool is
// not running or the queue is full; the caller decides whether to run the
// task inline or drop it.
func (p *Pool) Submit(task Task) bool {
	p.mu.Lock()
	tasks := p.tasks
	p.mu.Unlock()

	if tasks == nil {
		return false
	}

	select {
	case tasks <- task:
		return true
	default:
		p.logger.Warn().Msg("task queue full, submission rejected")
		return false
	}
}

// Stop cancels the workers' context and blocks until every worker has
// exited. Safe to call when the pool is not running (no-op in that case).
func (p *Pool) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.tasks = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
