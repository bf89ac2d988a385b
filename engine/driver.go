package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sharedcode/raidsync"
	"github.com/sharedcode/raidsync/blockhash"
	"github.com/sharedcode/raidsync/catalog"
	"github.com/sharedcode/raidsync/diskio"
	"github.com/sharedcode/raidsync/parityfile"
	"github.com/sharedcode/raidsync/raidcodec"
)

// ProgressFunc is invoked after every actionable position is committed (or
// skipped). Returning true requests the driver stop; the stop takes effect
// between positions, never mid-position, and the cleanup/finalize path runs
// exactly as on normal completion.
type ProgressFunc func(pos, done, total int64) (stop bool)

// ParitySizeFunc derives the number of positions the parity file(s) should
// cover given the catalog's current file inventory (the "parity_size"
// collaborator hook of spec §6).
type ParitySizeFunc func(cat *catalog.BlockCatalog) int64

// OverflowFunc is invoked when extending a parity file fails, so the catalog
// can be rewritten to reflect a smaller usable parity region before the run
// fails (the "parity_overflow" collaborator hook of spec §6).
type OverflowFunc func(cat *catalog.BlockCatalog, actualSize int64)

// ParityOpener creates or opens the parity file at path for the duration of
// one sync run.
type ParityOpener func(ctx context.Context, path string) (parityfile.File, error)

// Driver is the sync engine's SyncDriver + PrepareAndFinalize: the
// per-position cross-disk pipeline (open, stat-check, read, hash, encode,
// write, advance state) plus the pre-trim / parity-sizing / end-of-run
// fsync-and-close sequence around it.
type Driver struct {
	Config raidsync.Config
	Codec  *raidcodec.Codec
	Hasher blockhash.Hasher
	Opener diskio.Opener

	OpenParity ParityOpener
	ParitySize ParitySizeFunc
	Overflow   OverflowFunc
	Progress   ProgressFunc

	// Now returns the current time, called once per Sync and reused for
	// every actionable position's recorded timestamp (mirrors the C
	// original's single now = time(0) call at driver entry). Defaults to
	// time.Now when nil.
	Now func() time.Time

	unrecoverableFatal   int
	unrecoverableSkipped int
}
