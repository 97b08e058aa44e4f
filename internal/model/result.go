package model

// Outcome records which terminal path a removal run took.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeNothingFound
	OutcomeNothingSelected
	OutcomeDeclined
	OutcomeDryRun
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeNothingFound:
		return "nothing found"
	case OutcomeNothingSelected:
		return "nothing selected"
	case OutcomeDeclined:
		return "declined"
	case OutcomeDryRun:
		return "dry run"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// RemovalError is one target whose deletion failed.
type RemovalError struct {
	Path string
	Err  error
}

func (e RemovalError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e RemovalError) Unwrap() error {
	return e.Err
}

// RemovalResult accumulates the outcome of one removal run.
// Removed counts successful deletions only; dry-run entries count toward nothing.
type RemovalResult struct {
	Outcome    Outcome
	Selected   []Target
	Removed    int
	BytesFreed int64
	BackupPath string
	Errors     []RemovalError
}

func (r *RemovalResult) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *RemovalResult) recordSuccess(t Target) {
	r.Removed++
	r.BytesFreed += t.Size
}

func (r *RemovalResult) recordFailure(t Target, err error) {
	r.Errors = append(r.Errors, RemovalError{Path: t.Path, Err: err})
}

// Record applies a single target outcome. Each call is atomic with respect to
// the counters: a target is either fully counted as removed or listed in Errors.
func (r *RemovalResult) Record(t Target, err error) {
	if err != nil {
		r.recordFailure(t, err)
		return
	}
	r.recordSuccess(t)
}
