package raidsync

import "fmt"

// Config carries the array-wide settings the sync engine consumes from its
// collaborators (spec §6 "Consumed from collaborators").
type Config struct {
	// BlockSize is the fixed block size in bytes, shared by every disk and
	// parity file. Must be a power of two.
	BlockSize int
	// Level is the parity count: 1 (single parity) or 2 (parity + q-parity).
	Level int
	// HashKey seeds the keyed hash used to fingerprint block contents.
	HashKey uint64
	// AutosaveBytes is the byte threshold between catalog checkpoints.
	// Zero disables autosave.
	AutosaveBytes int64
	// SkipSequential disables the sequential-read-ahead hint on data disk
	// opens.
	SkipSequential bool
	// SkipFallocate is forwarded to parityfile.File.Extend as a hint;
	// DirectFile extends sparsely whether or not it is set.
	SkipFallocate bool
	// ParityPath is the primary parity file location.
	ParityPath string
	// QarityPath is the Q-parity file location, used only when Level >= 2.
	QarityPath string
}

// Validate reports a raidsync.Error classified as FatalPreparation if the
// configuration cannot drive a sync run.
func (c Config) Validate() error {
	if c.BlockSize <= 0 || c.BlockSize&(c.BlockSize-1) != 0 {
		return Error{Code: FatalPreparation, Err: fmt.Errorf("block size %d is not a positive power of two", c.BlockSize)}
	}
	if c.Level != 1 && c.Level != 2 {
		return Error{Code: FatalPreparation, Err: fmt.Errorf("level must be 1 or 2, got %d", c.Level)}
	}
	if c.ParityPath == "" {
		return Error{Code: FatalPreparation, Err: fmt.Errorf("parity path is required")}
	}
	if c.Level >= 2 && c.QarityPath == "" {
		return Error{Code: FatalPreparation, Err: fmt.Errorf("qarity path is required at level 2")}
	}
	return nil
}

// AutosaveLimit derives the position-count autosave cadence from the
// configured byte threshold: autosave_limit = autosave_bytes / (N * block_size),
// measured in positions because one position reads N*block_size bytes total.
// Returns 0 (autosave disabled) when AutosaveBytes is 0 or diskCount is 0.
func (c Config) AutosaveLimit(diskCount int) int64 {
	if c.AutosaveBytes <= 0 || diskCount <= 0 {
		return 0
	}
	perPosition := int64(diskCount) * int64(c.BlockSize)
	if perPosition <= 0 {
		return 0
	}
	return c.AutosaveBytes / perPosition
}
