package tasks

import "github.com/example/taskflow/domain/task"

// State is the terminal state of one mutation attempt. Every attempt
// passes through validation (skipped for delete) and submission, and
// terminates in exactly one of ValidationFailed, Succeeded or Failed.
type State string

const (
	// StateValidationFailed means the payload never reached the store.
	StateValidationFailed State = "validation_failed"
	// StateSucceeded means the store acknowledged the mutation and the
	// cache was invalidated.
	StateSucceeded State = "succeeded"
	// StateFailed means the store rejected the mutation; the cache was
	// left untouched.
	StateFailed State = "failed"
)

// Result is the outcome of one mutation attempt.
type Result struct {
	State State
	// Task is the stored record, set on StateSucceeded for create and
	// update.
	Task *task.Task
	// Violations holds the field-level failures on StateValidationFailed,
	// at most one per field.
	Violations []task.Violation
	// Err is the store-reported reason on StateFailed.
	Err error
}

func validationFailed(verr *task.ValidationError) Result {
	return Result{State: StateValidationFailed, Violations: verr.Violations}
}

func failed(err error) Result {
	return Result{State: StateFailed, Err: err}
}

func succeeded(t *task.Task) Result {
	return Result{State: StateSucceeded, Task: t}
}
