// Package worker runs team assembly jobs pulled from the job queue.
package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/okian/teamforge/internal/adapters/mq/queue"
	"github.com/okian/teamforge/internal/domain/formation"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Default worker configuration constants.
const (
	DefaultWorkerCount = 4
)

// Job is what workers read off the queue.
type Job = queue.Job

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Assembler builds one team for a job.
type Assembler interface {
	Assemble(ctx context.Context, job Job) formation.Outcome
}

// Result is the report of one finished job. Team is nil when the job failed.
type Result struct {
	TeamID   int
	Team     *model.Team
	Err      error
	Claimed  []model.Person
	Returned bool
	Latency  time.Duration
}

// OK reports whether the job produced a team.
func (r Result) OK() bool { return r.Err == nil && r.Team != nil }

// Worker processes jobs and publishes results.
type Worker interface {
	// Run starts the worker loop until the queue drains or ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker after the job in flight.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	assembler Assembler
	results   chan<- Result
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, asm Assembler, results chan<- Result, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		assembler: asm,
		results:   results,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			res := w.processJob(ctx, job)
			select {
			case w.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob runs one assembly. A panic inside the assembler is turned into
// a failed Result so the worker keeps serving the queue.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) (res Result) {
	start := time.Now()
	res.TeamID = job.TeamID

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordWorkerPanic()
			w.logger.Error(ctx, "assembly task panicked",
				logger.Int("team", job.TeamID),
				logger.Any("panic", r),
				logger.String("stack", string(debug.Stack())),
			)
			res = Result{
				TeamID: job.TeamID,
				Err:    fmt.Errorf("%w: %v", ErrTaskPanicked, r),
			}
		}
		res.Latency = time.Since(start)
		metrics.RecordAssemblyLatency(float64(res.Latency.Microseconds()) / 1000)
	}()

	out := w.assembler.Assemble(ctx, job)
	res.Team = out.Team
	res.Err = out.Err
	res.Claimed = out.Claimed
	res.Returned = out.Returned
	return res
}

// Pool runs a fixed number of workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	group   *errgroup.Group
	logger  logger.Logger
}

// NewPool creates a pool of count workers. A count below one means
// DefaultWorkerCount.
func NewPool(count int, q Queue, asm Assembler, results chan<- Result, opts ...Option) *Pool {
	if count < 1 {
		count = DefaultWorkerCount
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, count),
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < count; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewInMemoryWorker(q, asm, results, workerOpts...)
	}

	metrics.UpdateWorkerCount(count)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches every worker. Workers exit when the queue is closed and
// drained or ctx is done.
func (p *Pool) Start(ctx context.Context) {
	g := &errgroup.Group{}
	g.SetLimit(len(p.workers))
	for _, w := range p.workers {
		w := w
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					metrics.RecordWorkerPanic()
					p.logger.Error(ctx, "worker panicked",
						logger.String("worker", w.name),
						logger.Any("panic", r),
					)
					err = fmt.Errorf("%w: %s: %v", ErrTaskPanicked, w.name, r)
				}
			}()
			w.Run(ctx)
			return nil
		})
	}
	p.group = g
}

// Wait blocks until every worker has returned.
func (p *Pool) Wait() error {
	if p.group == nil {
		return nil
	}
	return p.group.Wait()
}

// Shutdown asks every worker to stop and waits for them or for ctx.
func (p *Pool) Shutdown(ctx context.Context) error {
	for i, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return err
		}
	}
	return nil
}
