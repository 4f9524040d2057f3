// Package controller drives a rename engine through preview and process.
//
// A Controller is parameterised by one Engine and one Executor. Preview runs
// the engine and reviews the result; Process re-runs the same engine over the
// same inputs at the same instant and hands the reviewed plan to the
// executor. Nothing in this package touches the filesystem.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/batchkit/internal/models"
	"github.com/harrison/batchkit/internal/plan"
)

var (
	// ErrNoFiles is returned when preview or process is called without inputs.
	ErrNoFiles = errors.New("no files selected")
	// ErrInvalidRows is returned when process is asked to hand off a batch
	// the engine could not fully compute.
	ErrInvalidRows = errors.New("batch contains invalid rows")
	// ErrBusy is returned when a process call is already running.
	ErrBusy = errors.New("a batch is already being processed")
)

// Engine computes a rename mapping. Row i of Run's result corresponds to
// names[i]. Engines that ignore time must still accept it.
type Engine interface {
	Kind() string
	Describe() string
	Run(names []string, now time.Time) []models.Row
}

// Executor receives a reviewed plan at the end of the process path.
type Executor interface {
	Execute(ctx context.Context, p *models.Plan) (*models.ExecutionResult, error)
}

// Logger defines the interface for logging batch progress.
type Logger interface {
	LogBatch(batch *models.Batch)
	LogPlanSummary(p *models.Plan)
	LogExecution(result *models.ExecutionResult)
}

// Controller coordinates one engine and one executor.
type Controller struct {
	engine   Engine
	executor Executor
	logger   Logger
	clock    func() time.Time
	review   plan.Options
	busy     atomic.Bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used when no instant is supplied.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithReview sets the plan review options (conflict policy, existence check).
func WithReview(opts plan.Options) Option {
	return func(c *Controller) {
		c.review = opts
	}
}

// New creates a Controller. The engine is required; the executor may be nil
// for preview-only use, in which case Process fails.
func New(engine Engine, executor Executor, opts ...Option) *Controller {
	if engine == nil {
		panic("engine cannot be nil")
	}
	c := &Controller{
		engine:   engine,
		executor: executor,
		clock:    time.Now,
		review:   plan.Options{Policy: plan.PolicySkip},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Describe returns the engine's configuration summary.
func (c *Controller) Describe() string {
	return c.engine.Describe()
}

// Preview runs the engine over names at the current instant and returns the
// reviewed plan. The plan's Batch.At must be passed back to Process so that
// date tokens resolve identically.
func (c *Controller) Preview(ctx context.Context, names []string) (*models.Plan, error) {
	return c.build(ctx, names, c.clock())
}

// Process re-runs the engine over names at the instant at (the current time
// when zero), refuses batches with invalid rows, and hands the reviewed plan
// to the executor. Concurrent calls fail fast with ErrBusy.
func (c *Controller) Process(ctx context.Context, names []string, at time.Time) (*models.ExecutionResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.busy.Store(false)

	if c.executor == nil {
		return nil, fmt.Errorf("process %s batch: no executor configured", c.engine.Kind())
	}
	if at.IsZero() {
		at = c.clock()
	}

	p, err := c.build(ctx, names, at)
	if err != nil {
		return nil, err
	}
	if n := p.Batch.InvalidCount(); n > 0 {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidRows, n, len(p.Batch.Rows))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := c.executor.Execute(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("execute batch %s: %w", p.Batch.ID, err)
	}
	if c.logger != nil {
		c.logger.LogExecution(result)
	}
	return result, nil
}

func (c *Controller) build(ctx context.Context, names []string, at time.Time) (*models.Plan, error) {
	if len(names) == 0 {
		return nil, ErrNoFiles
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch := &models.Batch{
		ID:          uuid.NewString(),
		Kind:        c.engine.Kind(),
		Description: c.engine.Describe(),
		At:          at,
		Rows:        c.engine.Run(names, at),
	}
	if len(batch.Rows) != len(names) {
		return nil, fmt.Errorf("%s engine returned %d rows for %d inputs", batch.Kind, len(batch.Rows), len(names))
	}

	p := plan.Build(batch, c.review)
	if c.logger != nil {
		c.logger.LogBatch(batch)
		c.logger.LogPlanSummary(p)
	}
	return p, nil
}
