package raidsync

import "fmt"

// ErrorCode enumerates the error classes a sync run can report, per the
// fatal/skip/noisy taxonomy of the sync driver.
type ErrorCode int

const (
	// Unknown is an unspecified error condition.
	Unknown ErrorCode = iota
	// FatalPreparation covers failures before any block work starts: parity
	// create/extend failure, or a parity file smaller than the loaded state.
	FatalPreparation
	// FatalIO covers parity writes, data-disk reads, data-disk closes, and
	// data-disk opens that fail with anything other than "file missing".
	// The sync loop aborts to cleanup on this class.
	FatalIO
	// SilentCorruption is a hash mismatch against a previously recorded,
	// trusted hash: the data on a disk changed without going through the
	// tool. Treated the same as FatalIO, but callers should be pointed at
	// a separate repair/check workflow.
	SilentCorruption
	// ConcurrentMutation is a benign, non-fatal condition: a file vanished
	// or changed mid-sync. The position is skipped, the run still reports
	// an error at the end so the user re-syncs.
	ConcurrentMutation
	// CleanupNoisy is an error encountered while closing handles or parity
	// files during cleanup. It is recorded but never stops cleanup.
	CleanupNoisy
)

func (c ErrorCode) String() string {
	switch c {
	case FatalPreparation:
		return "fatal-preparation"
	case FatalIO:
		return "fatal-io"
	case SilentCorruption:
		return "silent-corruption"
	case ConcurrentMutation:
		return "concurrent-mutation"
	case CleanupNoisy:
		return "cleanup-noisy"
	default:
		return "unknown"
	}
}

// Error is a raidsync-specific error carrying a classification code, the
// wrapped cause, and optional context (block position, disk name, path).
type Error struct {
	Code     ErrorCode
	Err      error
	UserData any
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Errorf("raidsync: %s: %v (%v)", e.Code, e.Err, e.UserData).Error()
}

// Unwrap allows errors.Is/As to reach the wrapped cause.
func (e Error) Unwrap() error {
	return e.Err
}
