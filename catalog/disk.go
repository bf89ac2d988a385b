package catalog

// Disk is a named data source owning a sparse, index-addressable array of
// Block descriptors. The array grows on demand; positions beyond its current
// length are implicitly EMPTY (represented by a nil *Block).
type Disk struct {
	Name   string
	Blocks []*Block
}

// NewDisk creates an empty Disk.
func NewDisk(name string) *Disk {
	return &Disk{Name: name}
}

// Size returns the number of positions currently addressable on this disk.
// Positions >= Size() are implicitly EMPTY.
func (d *Disk) Size() int64 {
	return int64(len(d.Blocks))
}

// At returns the descriptor at pos, or nil (EMPTY) if pos is out of range.
func (d *Disk) At(pos int64) *Block {
	if pos < 0 || pos >= int64(len(d.Blocks)) {
		return nil
	}
	return d.Blocks[pos]
}

// Set stores b at pos, growing the backing slice as needed. Setting nil
// reverts the position to the canonical EMPTY sentinel.
func (d *Disk) Set(pos int64, b *Block) {
	if pos < 0 {
		return
	}
	if pos >= int64(len(d.Blocks)) {
		grown := make([]*Block, pos+1)
		copy(grown, d.Blocks)
		d.Blocks = grown
	}
	d.Blocks[pos] = b
}

// TrimDeletedFrom rewrites every DELETED descriptor at position >= from to
// EMPTY. Used by BlockCatalog.TrimOutOfRange for the pre-sync out-of-range
// trim (invariant 3).
func (d *Disk) TrimDeletedFrom(from int64) (changed bool) {
	for pos := from; pos < int64(len(d.Blocks)); pos++ {
		if b := d.Blocks[pos]; b != nil && b.State == DELETED {
			d.Blocks[pos] = nil
			changed = true
		}
	}
	return changed
}
