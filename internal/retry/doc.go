// Package retry decides what happens to a batch chunk after a write attempt:
// done, retry the failed subset, or fail terminally on a diagnostic mismatch.
//
// The decision rules exist to guarantee termination. A chunk is only ever
// re-enqueued with a strict subset of its members, and ambiguous diagnostics
// resolve toward stopping rather than looping.
package retry
