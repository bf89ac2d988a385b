// Package parityfile implements the create/extend/write-at/fsync/close
// lifecycle of a parity stream. A parity file is a raw byte stream with no
// header: position p maps to offset p*blockSize, and there are one or two
// such files (primary parity, and q-parity at level 2).
package parityfile

import "context"

// File is the parity-file primitive the sync engine writes through.
type File interface {
	// Size returns the file's current size in bytes.
	Size() int64
	// Extend grows (or, if already larger, leaves unchanged) the file to
	// newSize bytes. skipFallocate is a hint; DirectFile extends sparsely
	// whether or not it is set.
	Extend(ctx context.Context, newSize int64, skipFallocate bool) error
	// WriteAt writes block at byte offset offset. block must be exactly
	// blockSize bytes, the file's per-position stride.
	WriteAt(ctx context.Context, block []byte, offset int64) error
	// Fsync durably flushes written data before the caller may persist a
	// catalog checkpoint that depends on it.
	Fsync() error
	// Close releases the underlying OS handle.
	Close() error
}
