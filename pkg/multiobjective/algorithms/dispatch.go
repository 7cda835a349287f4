package algorithms

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"k8s.io/klog/v2"

	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

// evalResult pairs a batch slot with the outcome of its fitness call.
type evalResult struct {
	index      int
	objectives []float64
	err        error
}

// dispatcher evaluates a batch of decision vectors concurrently on a
// bounded worker pool. Results are collected into an index-addressed
// buffer, so completion order never leaks into the population. Workers
// only ever see their own decision vector; they never touch shared
// population state.
type dispatcher struct {
	fitness        framework.FitnessFunc
	numObjectives  int
	workers        int
	maxFailureRate float64
	drainTimeout   time.Duration
}

// evaluateBatch runs the fitness callable for every vector in batch and
// returns one result per slot, positionally. Per-individual failures
// (error return or panic) are recorded in the slot without aborting the
// batch; when the failed fraction exceeds the ceiling a *DispatchError is
// returned alongside the results. On context cancellation no new work is
// handed out; in-flight evaluations are awaited up to the drain timeout
// and then abandoned, their slots marked failed, and the context error is
// returned.
func (d *dispatcher) evaluateBatch(ctx context.Context, batch [][]float64) ([]evalResult, error) {
	logger := klog.FromContext(ctx)

	out := make(chan evalResult, len(batch))
	var next atomic.Int64
	for w := 0; w < d.workers; w++ {
		go func() {
			for {
				i := int(next.Add(1)) - 1
				if i >= len(batch) {
					return
				}
				if err := ctx.Err(); err != nil {
					out <- evalResult{index: i, err: err}
					continue
				}
				out <- d.evaluate(i, batch[i])
			}
		}()
	}

	results := make([]evalResult, len(batch))
	collected := make([]bool, len(batch))
	pending := len(batch)
	for pending > 0 {
		select {
		case r := <-out:
			results[r.index] = r
			collected[r.index] = true
			pending--
		case <-ctx.Done():
			d.drain(results, collected, out, pending)
			d.logFailures(logger, results)
			return results, ctx.Err()
		}
	}

	d.logFailures(logger, results)
	if failed := countFailed(results); float64(failed) > d.maxFailureRate*float64(len(batch)) {
		return results, &DispatchError{
			Failed: failed,
			Batch:  len(batch),
			Reason: fmt.Sprintf("failure rate above ceiling %.2f, fitness function unusable", d.maxFailureRate),
		}
	}
	return results, nil
}

// drain awaits in-flight evaluations after cancellation. Slots still
// missing when the timeout fires are abandoned and treated as failures;
// their worker goroutines finish into the buffered channel and exit.
func (d *dispatcher) drain(results []evalResult, collected []bool, out <-chan evalResult, pending int) {
	timer := time.NewTimer(d.drainTimeout)
	defer timer.Stop()
	for pending > 0 {
		select {
		case r := <-out:
			results[r.index] = r
			collected[r.index] = true
			pending--
		case <-timer.C:
			for i := range results {
				if !collected[i] {
					results[i] = evalResult{index: i, err: fmt.Errorf("evaluation abandoned after %s drain timeout", d.drainTimeout)}
				}
			}
			return
		}
	}
}

// evaluate invokes the fitness callable for one slot, converting panics
// and malformed objective vectors into per-slot errors.
func (d *dispatcher) evaluate(idx int, x []float64) (res evalResult) {
	defer func() {
		if r := recover(); r != nil {
			res = evalResult{index: idx, err: &EvalError{Index: idx, Err: fmt.Errorf("fitness callable panicked: %v", r)}}
		}
	}()

	objs, err := d.fitness(x)
	if err != nil {
		return evalResult{index: idx, err: &EvalError{Index: idx, Err: err}}
	}
	if len(objs) != d.numObjectives {
		return evalResult{index: idx, err: &EvalError{Index: idx, Err: fmt.Errorf("fitness returned %d objectives, want %d", len(objs), d.numObjectives)}}
	}
	return evalResult{index: idx, objectives: objs}
}

func (d *dispatcher) logFailures(logger klog.Logger, results []evalResult) {
	for _, r := range results {
		if r.err != nil {
			logger.V(5).Info("evaluation failed", "individual", r.index, "err", r.err)
		}
	}
}

func countFailed(results []evalResult) int {
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}
	return failed
}
