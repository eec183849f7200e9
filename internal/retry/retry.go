package retry

import (
	"takeout/internal/pathident"
)

// Kind classifies the coordinator's decision for one chunk after a write
// attempt.
type Kind int

const (
	// ChunkSucceeded means the diagnostics named no failures; the chunk is
	// done. Empty diagnostics are indistinguishable from total success, so
	// re-enqueuing here would risk an infinite loop against a tool that
	// prints nothing parseable.
	ChunkSucceeded Kind = iota
	// RetrySubset means some members failed; Pending holds exactly those
	// members, so the queue strictly shrinks every round.
	RetrySubset
	// DiagnosticMismatch means the diagnostics named failures but none
	// belong to this chunk. The chunk is failed-terminal for this batch;
	// retrying it unchanged is what used to livelock.
	DiagnosticMismatch
)

func (k Kind) String() string {
	switch k {
	case ChunkSucceeded:
		return "succeeded"
	case RetrySubset:
		return "retry-subset"
	case DiagnosticMismatch:
		return "diagnostic-mismatch"
	default:
		return "unknown"
	}
}

// Decision is the coordinator's verdict for one chunk.
type Decision struct {
	Kind    Kind
	Pending []string
}

// Plan computes the next pending subset for a chunk whose write attempt
// produced the given failure fingerprint set. Members are matched by
// canonical identity, so encoding differences between the diagnostics and
// the chunk cannot cause a false mismatch.
func Plan(members []string, failed *pathident.Set) Decision {
	if failed == nil || failed.Len() == 0 {
		return Decision{Kind: ChunkSucceeded}
	}

	var pending []string
	for _, member := range members {
		if failed.Contains(pathident.Canonicalize(member)) {
			pending = append(pending, pathident.Canonicalize(member).Path())
		}
	}
	if len(pending) == 0 {
		return Decision{Kind: DiagnosticMismatch}
	}
	return Decision{Kind: RetrySubset, Pending: pending}
}
