package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/skillcheck/pkg/inventory"
	"github.com/yaklabco/skillcheck/pkg/lint"
)

// Runner orchestrates multi-package checking using a lint.Checker.
type Runner struct {
	// Checker audits a single package.
	Checker *lint.Checker
}

// New creates a new Runner with the given checker.
func New(checker *lint.Checker) *Runner {
	return &Runner{Checker: checker}
}

// job is one package root with its position in discovery order.
type job struct {
	index int
	root  string
}

// Run discovers packages under opts.Paths and checks them concurrently.
// It returns a deterministic collection of PackageOutcome values and aggregate stats.
//
// The runner:
//   - Discovers package roots matching the options
//   - Checks packages concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
//
// Each package check is itself sequential; workers share nothing but the
// read-only checker.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	roots, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Packages: make([]PackageOutcome, 0, len(roots)),
		Stats:    newStats(),
	}
	result.Stats.PackagesDiscovered = len(roots)

	if len(roots) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(roots))

	workCh := make(chan job)
	outCh := make(chan indexedOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for idx, root := range roots {
			select {
			case <-ctx.Done():
				return
			case workCh <- job{index: idx, root: root}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; slot outcomes by discovery index.
	outcomes := make([]*PackageOutcome, len(roots))
	for out := range outCh {
		outcomes[out.index] = &out.outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

type indexedOutcome struct {
	index   int
	outcome PackageOutcome
}

// worker checks packages from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan job,
	outCh chan<- indexedOutcome,
	opts Options,
) {
	for work := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.checkPackage(ctx, work.root, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- indexedOutcome{index: work.index, outcome: outcome}:
		}
	}
}

func (r *Runner) checkPackage(ctx context.Context, root string, opts Options) PackageOutcome {
	outcome := PackageOutcome{Root: root}
	start := time.Now()

	res, err := r.Checker.Check(ctx, root)
	outcome.Duration = time.Since(start)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = res

	if opts.Inventory && !res.HasIssuesFor(lint.RulePathInvalid) && !res.HasIssuesFor(lint.RuleEntryMissing) {
		var ignore []string
		if opts.Config != nil {
			ignore = opts.Config.Ignore
		}
		if inv, invErr := inventory.Scan(ctx, res.Root, ignore); invErr == nil {
			outcome.Inventory = inv
		}
	}

	return outcome
}
