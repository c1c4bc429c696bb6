package engine

// Task describes a single planned file copy. A Task is immutable once
// planned and owned exclusively by the run that created it.
type Task struct {
	Src  string
	Dst  string
	Size int64
}

// OutcomeKind classifies how a task finished.
type OutcomeKind int

const (
	Copied OutcomeKind = iota
	IOError
	Mismatch // digest comparison failed after an otherwise clean copy
	Skipped  // cancellation was requested before the task started
)

// Outcome is the result of exactly one Task. Workers never raise failures
// out of the pool; every failure becomes an Outcome folded into the run's
// counters.
type Outcome struct {
	Task Task
	Kind OutcomeKind
	Err  error
}
