package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/opflow/internal/fixture"
	"github.com/roach88/opflow/internal/flow"
	"github.com/roach88/opflow/internal/ir"
	"github.com/roach88/opflow/internal/operations"
	"github.com/roach88/opflow/internal/verify"
)

// Harness executes scenarios.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger routes translator and builder debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a Harness. Without WithLogger all output is discarded.
func New(opts ...Option) *Harness {
	h := &Harness{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(context.Background(), scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Load the fixture
//  2. Translate the body with a fresh Factory
//  3. Build the graph when the body is a block
//  4. Check tree and graph laws
//  5. Evaluate assertions
//
// The returned error is reserved for runs that could not complete: an
// unloadable fixture, a cancelled context, or a translator contract
// violation. Failed checks are reported through Result.Pass and Errors.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fx, err := fixture.LoadFile(scenario.Fixture)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}

	result, err := h.Translate(ctx, fx, scenario.Packed())
	if err != nil {
		return nil, err
	}
	result.Scenario = scenario.Name

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	h.logger.Debug("scenario finished", "scenario", scenario.Name, "pass", result.Pass, "errors", len(result.Errors))
	return result, nil
}

// Translate runs steps 2 to 4 of Run on a loaded fixture. The result is
// named after the fixture and carries no assertion failures.
func (h *Harness) Translate(ctx context.Context, fx *fixture.Fixture, pack bool) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := h.logger.With("fixture", fx.Name)

	result := NewResult(fx.Name)
	result.FixtureHash = fx.Hash
	result.Packed = pack

	err := contained(func() {
		f := operations.New(fx.Model, operations.WithLogger(logger))
		result.root = f.Create(fx.Root)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to translate: %w", err)
	}
	if result.root == nil {
		return nil, fmt.Errorf("failed to translate: fixture %s produced no operation", fx.Name)
	}

	if body, ok := result.root.(*ir.Block); ok {
		err = contained(func() {
			result.blocks = flow.Build(body, flow.WithLogger(logger), flow.WithPack(pack))
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build graph: %w", err)
		}
	}

	if err := h.dump(result); err != nil {
		return nil, err
	}

	for _, finding := range verify.Tree(result.root).Findings {
		result.AddError("tree: " + finding)
	}
	if result.blocks != nil {
		for _, finding := range verify.Graph(result.blocks, pack).Findings {
			result.AddError("graph: " + finding)
		}
	}
	return result, nil
}

func (h *Harness) dump(result *Result) error {
	var err error
	result.Tree = ir.Format(result.root)
	if result.TreeHash, err = ir.TreeHash(result.root); err != nil {
		return fmt.Errorf("failed to hash tree: %w", err)
	}
	if result.blocks == nil {
		return nil
	}
	result.Graph = flow.Format(result.blocks)
	if result.GraphHash, err = flow.GraphHash(result.blocks); err != nil {
		return fmt.Errorf("failed to hash graph: %w", err)
	}
	return nil
}

// contained runs fn and turns a contract panic into an error. Any other
// panic propagates.
func contained(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*ir.ContractError)
			if !ok {
				panic(r)
			}
			err = ce
		}
	}()
	fn()
	return nil
}
