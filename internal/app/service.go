// Package service wires the category pools, the job queue, the worker pool
// and the skill balancer into one team formation run.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	jobqueue "github.com/okian/teamforge/internal/adapters/mq/queue"
	workerpool "github.com/okian/teamforge/internal/adapters/mq/worker"
	"github.com/okian/teamforge/internal/domain/formation"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"
)

// Default run configuration constants.
const (
	DefaultWorkerCount = workerpool.DefaultWorkerCount
	DefaultTimeout     = 5 * time.Second
)

// assemblyAdapter adapts formation.AssembleTeam to worker.Assembler for one run.
type assemblyAdapter struct {
	pools *formation.Pools
	rng   *formation.Rand
	opts  []formation.AssembleOption
}

func (a *assemblyAdapter) Assemble(_ context.Context, job workerpool.Job) formation.Outcome {
	return formation.AssembleTeam(job.TeamID, a.pools, job.Size, a.rng, a.opts...)
}

// Service forms teams from a list of people.
type Service struct {
	workerCount     int
	timeout         time.Duration
	seed            int64
	returnUnclaimed bool
	balancerOpts    []formation.BalanceOption

	// assemble replaces the real assembler in tests.
	assemble func(pools *formation.Pools, rng *formation.Rand) workerpool.Assembler

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithTimeout bounds how long a run waits for its assembly tasks.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithSeed fixes the random source of every run. Zero means time-seeded.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithReturnUnclaimed hands people claimed by failed tasks back to the pools.
func WithReturnUnclaimed(enabled bool) Option {
	return func(s *Service) {
		s.returnUnclaimed = enabled
	}
}

// WithBalancerOptions passes options through to the skill balancer.
func WithBalancerOptions(opts ...formation.BalanceOption) Option {
	return func(s *Service) {
		s.balancerOpts = append(s.balancerOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// withAssembler swaps the assembler; used by tests to inject faults.
func withAssembler(fn func(pools *formation.Pools, rng *formation.Rand) workerpool.Assembler) Option {
	return func(s *Service) {
		s.assemble = fn
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: DefaultWorkerCount,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("formation")
	}
	if s.assemble == nil {
		s.assemble = func(pools *formation.Pools, rng *formation.Rand) workerpool.Assembler {
			a := &assemblyAdapter{pools: pools, rng: rng}
			if s.returnUnclaimed {
				a.opts = append(a.opts, formation.WithReturnUnclaimed(true))
			}
			return a
		}
	}

	return s
}

// FormTeams partitions people into category pools, assembles one team per
// leader on the worker pool and balances the teams that validated.
//
// Assembly tasks that fail or miss the wait only shorten Result.Teams. The
// error return is reserved for unusable input: no people, or a team size
// outside 1..len(people).
func (s *Service) FormTeams(ctx context.Context, people []model.Person, size int) (*Result, error) {
	if len(people) == 0 {
		return nil, ErrNoPeople
	}
	if size < 1 || size > len(people) {
		return nil, fmt.Errorf("%w: %d for %d people", ErrInvalidTeamSize, size, len(people))
	}

	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.With(logger.String("run", runID))

	rng := formation.NewRand(s.seed)
	pools := formation.Partition(people, rng)
	possible := pools.Leaders.Len()

	metrics.RecordRun(possible)
	log.Info(ctx, "forming teams",
		logger.Int("people", len(people)),
		logger.Int("size", size),
		logger.Int("leaders", possible),
		logger.Int("thinkers", pools.Thinkers.Len()),
		logger.Int("balanced", pools.Balanced.Len()),
		logger.Int("workers", s.workerCount),
	)
	if s.returnUnclaimed {
		log.Warn(ctx, "returning claimed people to pools on failed assembly")
	}

	res := &Result{RunID: runID, Possible: possible}
	if possible == 0 {
		res.Unassigned = pools.Remaining()
		res.Balance = formation.NewBalancer(s.balancerOpts...).Balance(nil)
		s.finish(ctx, log, res, pools, start)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		res.Abandoned = possible
		metrics.RecordTasksAbandoned(possible)
		log.Warn(ctx, "run cancelled before any task started", logger.Error(err))
		res.Unassigned = pools.Remaining()
		res.Balance = formation.NewBalancer(s.balancerOpts...).Balance(nil)
		s.finish(ctx, log, res, pools, start)
		return res, nil
	}

	// The queue holds exactly possible jobs, so submission never waits;
	// cancellation from here on is handled by the bounded wait.
	submitCtx := context.WithoutCancel(ctx)
	q := jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(possible))
	for id := 1; id <= possible; id++ {
		if err := q.Enqueue(submitCtx, jobqueue.Job{TeamID: id, Size: size}); err != nil {
			return nil, fmt.Errorf("submit assembly job %d: %w", id, err)
		}
	}
	if err := q.Close(); err != nil {
		return nil, fmt.Errorf("close job queue: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := make(chan workerpool.Result, possible)
	pool := workerpool.NewPool(s.workerCount, q, s.assemble(pools, rng), results,
		workerpool.WithLogger(log.Named("worker")),
	)
	pool.Start(waitCtx)

	received := s.collect(waitCtx, log, results, possible, res)
	if received == possible {
		if err := pool.Wait(); err != nil {
			log.Error(ctx, "worker pool stopped with error", logger.Error(err))
		}
	} else {
		res.Abandoned = possible - received
		metrics.RecordTasksAbandoned(res.Abandoned)
		log.Warn(ctx, "assembly tasks did not finish in time",
			logger.Int("abandoned", res.Abandoned),
			logger.Duration("timeout", s.timeout),
		)
	}

	sort.Slice(res.Teams, func(i, j int) bool { return res.Teams[i].ID < res.Teams[j].ID })

	balancer := formation.NewBalancer(append([]formation.BalanceOption{
		formation.WithSwapHook(func(strong, weak *model.Team, out, in model.Person) {
			metrics.RecordBalanceSwap()
			log.Debug(ctx, "balance swap",
				logger.Int("strong", strong.ID),
				logger.Int("weak", weak.ID),
				logger.String("out", out.ID),
				logger.String("in", in.ID),
			)
		}),
	}, s.balancerOpts...)...)
	res.Balance = balancer.Balance(res.Teams)

	// Tasks still running after a timeout may yet claim people.
	if res.Abandoned == 0 {
		res.Unassigned = pools.Remaining()
	}
	s.finish(ctx, log, res, pools, start)
	return res, nil
}

// collect reads worker results until want arrived or ctx is done and returns
// how many were read.
func (s *Service) collect(ctx context.Context, log logger.Logger, results <-chan workerpool.Result, want int, res *Result) int {
	received := 0
	for received < want {
		select {
		case r := <-results:
			received++
			if r.OK() {
				res.Teams = append(res.Teams, r.Team)
				metrics.RecordTeamFormed()
				continue
			}
			reason := formation.FailureReason(r.Err)
			if errors.Is(r.Err, workerpool.ErrTaskPanicked) {
				reason = "panic"
			}
			metrics.RecordAssemblyFailure(reason)
			if r.Returned {
				metrics.RecordPeopleReturned(len(r.Claimed))
			} else {
				metrics.RecordPeopleDiscarded(len(r.Claimed))
				res.Discarded = append(res.Discarded, r.Claimed...)
			}
			log.Debug(ctx, "team discarded",
				logger.Int("team", r.TeamID),
				logger.String("reason", reason),
				logger.Int("claimed", len(r.Claimed)),
				logger.Bool("returned", r.Returned),
				logger.Error(r.Err),
			)
		case <-ctx.Done():
			return received
		}
	}
	return received
}

func (s *Service) finish(ctx context.Context, log logger.Logger, res *Result, pools *formation.Pools, start time.Time) {
	for _, p := range pools.All() {
		metrics.UpdatePoolRemaining(p.Category().String(), p.Len())
	}
	metrics.RecordBalanceIterations(res.Balance.Iterations)
	metrics.UpdateSkillSpread("initial", res.Balance.InitialSpread)
	metrics.UpdateSkillSpread("final", res.Balance.FinalSpread)
	took := time.Since(start)
	metrics.RecordFormationDuration(float64(took.Microseconds()) / 1000)

	log.Info(ctx, "teams formed",
		logger.Int("formed", res.Formed()),
		logger.Int("possible", res.Possible),
		logger.Int("swaps", res.Balance.Swaps),
		logger.String("stop", string(res.Balance.Reason)),
		logger.Float64("spread", res.Balance.FinalSpread),
		logger.Duration("took", took),
	)
}
