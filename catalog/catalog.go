package catalog

import (
	"context"
	"time"

	"github.com/sharedcode/raidsync"
)

// BlockCatalog is the aggregate over every disk's block array that the sync
// engine reads and mutates. The parity_size/parity_overflow collaborator
// hooks named in spec §6 are engine.ParitySizeFunc and engine.OverflowFunc.
type BlockCatalog struct {
	disks      []*Disk
	dirty      bool
	syncedAt   map[int64]time.Time
	marshaler  raidsync.Marshaler
	snapshotAt func(ctx context.Context, data []byte) error
	// loadedBlockMax is the parity size, in positions, that was already on
	// disk when this catalog was loaded (0 for a fresh array). PrepareAndFinalize
	// uses it to detect a parity file truncated since the last successful sync.
	loadedBlockMax int64
}

// LoadedBlockMax returns the parity size (in positions) recorded as already
// present on disk as of catalog load time.
func (c *BlockCatalog) LoadedBlockMax() int64 {
	return c.loadedBlockMax
}

// SetLoadedBlockMax records the parity size (in positions) the catalog
// loader observed on disk. Called once by the catalog's external loader,
// before any sync run.
func (c *BlockCatalog) SetLoadedBlockMax(blockMax int64) {
	c.loadedBlockMax = blockMax
}

// New creates a BlockCatalog over the given disks. persist, when non-nil, is
// invoked by Save with the marshaled snapshot; it stands in for the
// out-of-scope catalog serializer (e.g. writing to the content file).
func New(disks []*Disk, persist func(ctx context.Context, data []byte) error) *BlockCatalog {
	return &BlockCatalog{
		disks:      disks,
		syncedAt:   make(map[int64]time.Time),
		marshaler:  raidsync.NewMarshaler(),
		snapshotAt: persist,
	}
}

// Disks returns the ordered disk slots. A nil entry is a slot present in the
// array layout with no physical disk attached in this run.
func (c *BlockCatalog) Disks() []*Disk {
	return c.disks
}

// DiskCount returns len(Disks()).
func (c *BlockCatalog) DiskCount() int {
	return len(c.disks)
}

// Dirty reports whether any mutation has occurred since the last Save.
func (c *BlockCatalog) Dirty() bool {
	return c.dirty
}

// MarkDirty flags the catalog as having unsaved state.
func (c *BlockCatalog) MarkDirty() {
	c.dirty = true
}

// SetSyncedAt records the timestamp associated with position pos, populated
// once per sync run and reused for every actionable position (mirrors the
// original driver's single now := time.Now() at entry).
func (c *BlockCatalog) SetSyncedAt(pos int64, t time.Time) {
	c.syncedAt[pos] = t
}

// SyncedAt returns the timestamp recorded for pos, if any.
func (c *BlockCatalog) SyncedAt(pos int64) (time.Time, bool) {
	t, ok := c.syncedAt[pos]
	return t, ok
}

// snapshot is the JSON-serializable view of the catalog used by Save.
type snapshot struct {
	Disks []diskSnapshot
}

type diskSnapshot struct {
	Name   string
	Blocks []*Block
}

// Save persists a consistent snapshot of the catalog and clears the dirty
// flag on success. Must be invoked only between positions (never mid-position)
// so the snapshot is self-consistent; the sync driver calls Save only at
// autosave checkpoints, between positions and after parity has been fsynced.
// It does not save at the end of a run.
func (c *BlockCatalog) Save(ctx context.Context) error {
	if c.snapshotAt == nil {
		c.dirty = false
		return nil
	}
	snap := snapshot{Disks: make([]diskSnapshot, len(c.disks))}
	for i, d := range c.disks {
		snap.Disks[i] = diskSnapshot{Name: d.Name, Blocks: d.Blocks}
	}
	data, err := c.marshaler.Marshal(snap)
	if err != nil {
		return raidsync.Error{Code: raidsync.FatalIO, Err: err}
	}
	if err := c.snapshotAt(ctx, data); err != nil {
		return raidsync.Error{Code: raidsync.FatalIO, Err: err}
	}
	c.dirty = false
	return nil
}

// TrimOutOfRange rewrites every DELETED descriptor at position >= paritySize
// on every disk to EMPTY (invariant 3), marking the catalog dirty if any
// change occurred. Called once at sync start, before any block work.
func (c *BlockCatalog) TrimOutOfRange(paritySize int64) {
	for _, d := range c.disks {
		if d == nil {
			continue
		}
		if d.TrimDeletedFrom(paritySize) {
			c.dirty = true
		}
	}
}
