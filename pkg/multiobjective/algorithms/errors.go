package algorithms

import "fmt"

// ConfigError reports an invalid Config field. It is fatal at
// initialization; the run never starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// EvalError records a fitness failure for a single individual in a batch.
// It is recovered locally: the individual is excluded from ranking for the
// generation and the run continues.
type EvalError struct {
	Index int
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("fitness evaluation failed for individual %d: %v", e.Index, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// DispatchError means the fitness function is unusable: the failed
// fraction of a batch exceeded the configured ceiling, or cancellation
// left evaluations behind after the drain timeout. It is fatal and moves
// the run to Failed.
type DispatchError struct {
	Failed int
	Batch  int
	Reason string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("evaluation dispatch failed (%d/%d evaluations failed): %s", e.Failed, e.Batch, e.Reason)
}

// CheckpointError reports a corrupt or incompatible checkpoint. It is
// fatal to the resume attempt; the checkpoint file itself is never
// modified.
type CheckpointError struct {
	Path string
	Err  error
}

func (e *CheckpointError) Error() string {
	return fmt.Sprintf("checkpoint %s: %v", e.Path, e.Err)
}

func (e *CheckpointError) Unwrap() error { return e.Err }
