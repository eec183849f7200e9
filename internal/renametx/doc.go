// Package renametx performs the paired rename of a media file and its
// sidecar as one transaction with reverse-order rollback.
//
// Success is only reported once the in-memory record reflects the new media
// path, so callers observe path and filesystem state together. The rollback
// path uses an explicit stack of completed steps; a rollback failure is a
// reported condition, never a panic or returned error, because at that point
// the archive needs human attention and the rest of the batch must proceed.
package renametx
