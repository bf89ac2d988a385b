package engine

import (
	"context"
	"fmt"

	"github.com/sharedcode/raidsync"
	"github.com/sharedcode/raidsync/catalog"
	"github.com/sharedcode/raidsync/parityfile"
)

// Sync is the state_sync entry point (spec §4.5 + §6): it prepares the
// parity file(s) for this run, executes the second-pass pipeline over
// [blockstart, blockstart+blockcount) (or to the end, when blockcount is 0),
// and finalizes (fsync + close) the parity file(s) regardless of outcome.
//
// blockstart must be <= the catalog's current parity size; exceeding it is a
// fatal usage error. Sync returns a non-nil raidsync.Error iff any
// unrecoverable event occurred (fatal abort, write failure, close failure,
// hash mismatch, or concurrent file mutation) — the parity file(s) are
// still fsynced and closed in that case.
func (d *Driver) Sync(ctx context.Context, cat *catalog.BlockCatalog, blockstart, blockcount int64) error {
	d.unrecoverableFatal = 0
	d.unrecoverableSkipped = 0

	blockmax := d.ParitySize(cat)

	// Positions beyond the new parity size can have no live file anchoring
	// a reason to keep a DELETED descriptor (invariant 3).
	cat.TrimOutOfRange(blockmax)

	if blockstart > blockmax {
		return raidsync.Error{
			Code: raidsync.FatalPreparation,
			Err:  fmt.Errorf("blockstart %d exceeds parity size %d", blockstart, blockmax),
		}
	}
	if blockcount != 0 && blockstart+blockcount < blockmax {
		blockmax = blockstart + blockcount
	}

	parity, err := d.prepareParityFile(ctx, d.Config.ParityPath, cat, blockmax)
	if err != nil {
		return err
	}

	var qarity parityfile.File
	if d.Config.Level >= 2 {
		qarity, err = d.prepareParityFile(ctx, d.Config.QarityPath, cat, blockmax)
		if err != nil {
			_ = parity.Close()
			return err
		}
	}

	var runErr error
	if blockstart < blockmax {
		runErr = d.RunPass(ctx, cat, parity, qarity, blockstart, blockmax)
	}

	finalizeErr := finalize(parity, qarity)

	if runErr != nil {
		return runErr
	}
	return finalizeErr
}

// prepareParityFile creates path, validates its pre-existing size against
// the catalog's last-known parity size, and extends it to blockmax
// positions, invoking the Overflow hook on extension failure.
func (d *Driver) prepareParityFile(ctx context.Context, path string, cat *catalog.BlockCatalog, blockmax int64) (parityfile.File, error) {
	f, err := d.OpenParity(ctx, path)
	if err != nil {
		return nil, raidsync.Error{Code: raidsync.FatalPreparation, Err: fmt.Errorf("open parity file %s: %w", path, err)}
	}

	loadedSize := cat.LoadedBlockMax() * int64(d.Config.BlockSize)
	if f.Size() < loadedSize {
		_ = f.Close()
		return nil, raidsync.Error{
			Code: raidsync.FatalPreparation,
			Err:  fmt.Errorf("parity file %s is smaller than expected %d", path, loadedSize),
		}
	}

	size := blockmax * int64(d.Config.BlockSize)
	if err := f.Extend(ctx, size, d.Config.SkipFallocate); err != nil {
		if d.Overflow != nil {
			d.Overflow(cat, f.Size())
		}
		_ = f.Close()
		return nil, raidsync.Error{Code: raidsync.FatalPreparation, Err: fmt.Errorf("extend parity file %s to %d: %w", path, size, err)}
	}

	return f, nil
}

// finalize fsyncs and closes both parity files regardless of run outcome,
// recording any failure as CleanupNoisy without skipping the remaining
// close.
func finalize(parity, qarity parityfile.File) error {
	var first error
	record := func(err error) {
		if err != nil && first == nil {
			first = raidsync.Error{Code: raidsync.CleanupNoisy, Err: err}
		}
	}

	record(parity.Fsync())
	record(parity.Close())
	if qarity != nil {
		record(qarity.Fsync())
		record(qarity.Close())
	}
	return first
}
