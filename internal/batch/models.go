package batch

import "time"

// Status represents the lifecycle of a batch chunk.
type Status string

const (
	// StatusPending means the chunk has members awaiting a write attempt.
	StatusPending Status = "pending"
	// StatusWriting means a write attempt is in flight.
	StatusWriting Status = "writing"
	// StatusCompleted means every member was written.
	StatusCompleted Status = "completed"
	// StatusFailed means the chunk was abandoned: attempts exhausted or a
	// terminal error.
	StatusFailed Status = "failed"
	// StatusMismatch means diagnostics named failures outside the chunk;
	// the chunk is failed-terminal for this batch.
	StatusMismatch Status = "mismatch"
)

var allStatuses = []Status{
	StatusPending,
	StatusWriting,
	StatusCompleted,
	StatusFailed,
	StatusMismatch,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Valid reports whether the status is a known lifecycle value.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Terminal reports whether the chunk will see no further write attempts.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusMismatch:
		return true
	default:
		return false
	}
}

// Chunk is one batch unit of member file paths submitted together to the
// external write tool. Members always hold the currently pending subset;
// completed members are dropped on re-enqueue so the queue strictly shrinks.
type Chunk struct {
	ID        string
	BatchID   string
	Members   []string
	Status    Status
	Attempts  int
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}
