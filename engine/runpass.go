package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sharedcode/raidsync"
	"github.com/sharedcode/raidsync/catalog"
	"github.com/sharedcode/raidsync/diskio"
	"github.com/sharedcode/raidsync/parityfile"
)

// RunPass is the SyncDriver second pass (spec §4.4): for every position in
// [blockstart, blockmax), it recomputes the action flags, skips or processes
// the position, and commits parity + catalog state transitions. It returns
// on the first fatal error; either way, every open disk handle is closed
// before RunPass returns.
func (d *Driver) RunPass(ctx context.Context, cat *catalog.BlockCatalog, parity, qarity parityfile.File, blockstart, blockmax int64) (err error) {
	disks := cat.Disks()
	n := len(disks)

	pool := diskio.NewPool(n, d.Opener)
	// Step F: every open slot is closed regardless of how the loop below
	// exits. A close failure never overrides an earlier fatal error, but it
	// does turn an otherwise-clean run non-zero.
	defer func() {
		if closeErr := pool.CloseAll(); closeErr != nil {
			d.unrecoverableFatal++
			if err == nil {
				err = raidsync.Error{Code: raidsync.CleanupNoisy, Err: closeErr}
			}
		}
	}()

	buffers := diskio.NewBufferPool(n, d.Config.Level, d.Config.BlockSize)

	countmax := Scanner{}.Count(disks, blockstart, blockmax)
	autosaveLimit := d.Config.AutosaveLimit(n)
	autosaveMissing := countmax
	var autosaveDone int64

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	runStart := now()

	var done int64
	for pos := blockstart; pos < blockmax; pos++ {
		oneValid, oneInvalid := actionable(disks, pos)

		// Step B: non-actionable position.
		if !(oneValid && oneInvalid) {
			for _, disk := range disks {
				if disk == nil {
					continue
				}
				if b := disk.At(pos); b != nil && b.State == catalog.DELETED {
					disk.Set(pos, nil)
					cat.MarkDirty()
				}
			}
			continue
		}

		autosaveDone++
		autosaveMissing--

		// Step C: populate buffers.
		skip, fatalErr := d.populatePosition(ctx, pool, buffers, disks, pos)
		if fatalErr != nil {
			return fatalErr
		}

		// Step D: parity commit.
		if !skip {
			if err := d.commitParity(ctx, parity, qarity, buffers, disks, pos, cat, runStart); err != nil {
				return err
			}
		}

		// Step E: bookkeeping.
		cat.MarkDirty()
		done++

		if d.Progress != nil {
			if stop := d.Progress(pos, done, countmax); stop {
				break
			}
		}

		if autosaveLimit > 0 && autosaveDone >= autosaveLimit && autosaveMissing >= autosaveLimit {
			autosaveDone = 0
			// Parity must be durable before the catalog snapshot that claims
			// it is, so a crash between here and the next position still
			// leaves a re-syncable state (property 7).
			if err := parity.Fsync(); err != nil {
				return raidsync.Error{Code: raidsync.FatalIO, Err: err}
			}
			if qarity != nil {
				if err := qarity.Fsync(); err != nil {
					return raidsync.Error{Code: raidsync.FatalIO, Err: err}
				}
			}
			if err := cat.Save(ctx); err != nil {
				return err
			}
		}
	}

	if d.unrecoverableFatal > 0 || d.unrecoverableSkipped > 0 {
		return raidsync.Error{
			Code: raidsync.ConcurrentMutation,
			Err:  fmt.Errorf("sync finished with %d fatal and %d skipped unrecoverable events", d.unrecoverableFatal, d.unrecoverableSkipped),
		}
	}
	return nil
}

// populatePosition implements Step C: for every disk, zero-fill or
// read+hash the block at pos into buffers, fanned out across disks within
// this one position. It returns skip=true when a benign concurrent
// mutation was detected on at least one disk (the position is abandoned but
// the run continues), or a non-nil error for any fatal condition (the
// caller aborts the entire run).
func (d *Driver) populatePosition(ctx context.Context, pool *diskio.HandlePool, buffers *diskio.BufferPool, disks []*catalog.Disk, pos int64) (bool, error) {
	bufs := buffers.Buffers()
	n := len(disks)

	for j := 0; j < n; j++ {
		buffers.Zero(j)
	}

	var skip atomic.Bool
	var fatal atomic.Pointer[raidsync.Error]

	tr := raidsync.NewTaskRunner(ctx, n)
	for j := 0; j < n; j++ {
		j := j
		tr.Go(func() error {
			disk := disks[j]
			if disk == nil {
				return nil
			}
			b := disk.At(pos)
			if !catalog.HasFile(b) {
				return nil
			}

			stat, err := pool.EnsureOpen(ctx, j, b.File.Path, !d.Config.SkipSequential)
			if err != nil {
				if errors.Is(err, diskio.ErrMissing) {
					slog.Warn("file vanished during sync, skipping position", "path", b.File.Path, "pos", pos)
					d.unrecoverableSkipped++
					skip.Store(true)
					return nil
				}
				fatal.Store(&raidsync.Error{Code: raidsync.FatalIO, Err: fmt.Errorf("open %s: %w", b.File.Path, err)})
				return nil
			}

			if stat.Size != b.File.Size || stat.ModSec != b.File.ModSec || stat.ModNsec != b.File.ModNsec || stat.Inode != b.File.Inode {
				slog.Warn("file modified during sync, skipping position", "path", b.File.Path, "pos", pos)
				d.unrecoverableSkipped++
				skip.Store(true)
				return nil
			}

			if _, err := pool.Read(j, bufs[j], b.PosInFile*int64(d.Config.BlockSize)); err != nil {
				fatal.Store(&raidsync.Error{Code: raidsync.FatalIO, Err: fmt.Errorf("read %s at block %d: %w", b.File.Path, b.PosInFile, err)})
				return nil
			}

			h := d.Hasher.Sum(bufs[j])
			// A descriptor whose state allows a prior hash but whose Hash is
			// empty has none recorded: store the fresh one instead.
			if catalog.HasHash(b) && len(b.Hash) > 0 {
				if !bytes.Equal(h, b.Hash) {
					fatal.Store(&raidsync.Error{Code: raidsync.SilentCorruption, Err: fmt.Errorf("hash mismatch for %s at position %d; run the repair/check workflow", b.File.Path, pos)})
					return nil
				}
			} else {
				b.Hash = h
			}
			return nil
		})
	}
	_ = tr.Wait()

	if f := fatal.Load(); f != nil {
		return false, *f
	}
	return skip.Load(), nil
}

// commitParity implements Step D: encode and write parity for a fully
// populated position, then advance every disk's descriptor state.
func (d *Driver) commitParity(ctx context.Context, parity, qarity parityfile.File, buffers *diskio.BufferPool, disks []*catalog.Disk, pos int64, cat *catalog.BlockCatalog, runStart time.Time) error {
	bufs := buffers.Buffers()
	if err := d.Codec.Encode(bufs); err != nil {
		return raidsync.Error{Code: raidsync.FatalIO, Err: err}
	}

	n := len(disks)
	offset := pos * int64(d.Config.BlockSize)

	if err := parity.WriteAt(ctx, bufs[n], offset); err != nil {
		return raidsync.Error{Code: raidsync.FatalIO, Err: err}
	}
	if d.Config.Level >= 2 {
		if err := qarity.WriteAt(ctx, bufs[n+1], offset); err != nil {
			return raidsync.Error{Code: raidsync.FatalIO, Err: err}
		}
	}

	for _, disk := range disks {
		if disk == nil {
			continue
		}
		b := disk.At(pos)
		if b == nil {
			continue
		}
		if b.State == catalog.DELETED {
			disk.Set(pos, nil)
			continue
		}
		b.State = catalog.BLK
	}

	cat.SetSyncedAt(pos, runStart)
	return nil
}
