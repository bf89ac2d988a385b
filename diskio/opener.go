// Package diskio implements the per-disk file handle pool and the aligned
// block buffer pool the sync engine reads into. One File is open per disk
// slot at a time (swapped when the underlying file changes), and buffers are
// allocated once per run, sized (N disks + L parity) and reused across every
// block position.
package diskio

import "context"

// Stat is the subset of file metadata the sync engine compares against a
// block descriptor's recorded File to detect concurrent modification.
type Stat struct {
	Size    int64
	ModSec  int64
	ModNsec int64
	Inode   uint64
}

// File is an open data-disk file handle.
type File interface {
	// ReadAt reads into buf starting at offset. Implementations return the
	// number of bytes actually read; a short read at EOF is not an error.
	ReadAt(buf []byte, offset int64) (int, error)
	Close() error
}

// Opener opens data-disk files for reading. sequential is a hint requesting
// sequential-read optimization (the negation of Config.SkipSequential).
//
// Open must classify failures: a missing file returns an error wrapping
// ErrMissing, a permissions failure wraps ErrDenied; anything else is an
// opaque fatal error.
type Opener interface {
	Open(ctx context.Context, path string, sequential bool) (File, Stat, error)
}
