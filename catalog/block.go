// Package catalog models the per-disk sparse array of block descriptors the
// sync engine reconciles against on-disk file contents. The catalog parser
// and serializer that populate these arrays from an on-disk format are out
// of scope for this module; BlockCatalog here is the in-memory surface the
// engine reads and mutates, plus a JSON-based autosave snapshot used as the
// crash-safe checkpoint.
package catalog

// BlockState tags the lifecycle state of a block descriptor. Modeled as an
// enum rather than a pointer sentinel: a nil *Block in a Disk's slice is the
// canonical "no descriptor" entry and is treated as EMPTY everywhere.
type BlockState int

const (
	// EMPTY means no file occupies this position on this disk.
	EMPTY BlockState = iota
	// BLK means the position is fully protected: a file chunk occupies it,
	// its hash is known and trusted, and parity covers it.
	BLK
	// CHG means the file at this position changed since the last sync;
	// parity does not yet reflect it.
	CHG
	// NEW means a file newly occupies this position; parity does not yet
	// reflect it.
	NEW
	// REP means the file was replaced at this position; parity does not
	// yet reflect it.
	REP
	// DELETED means a file previously occupied this position and was
	// removed; parity still reflects its old contents.
	DELETED
)

func (s BlockState) String() string {
	switch s {
	case EMPTY:
		return "EMPTY"
	case BLK:
		return "BLK"
	case CHG:
		return "CHG"
	case NEW:
		return "NEW"
	case REP:
		return "REP"
	case DELETED:
		return "DELETED"
	default:
		return "UNKNOWN"
	}
}

// FileInfo describes the file a file-bearing block references.
type FileInfo struct {
	Size    int64
	ModSec  int64
	ModNsec int64
	Inode   uint64
	Path    string
}

// Block is a single position's descriptor on one disk.
type Block struct {
	State BlockState
	// Hash is trusted iff HasHash(b) holds (BLK, CHG, REP). NEW descriptors
	// carry no prior hash to compare against and must have this overwritten,
	// never compared, on re-read. An empty Hash means no hash is recorded;
	// the sync driver then stores the fresh one instead of comparing.
	Hash []byte
	// File is nil unless HasFile(b) is true.
	File *FileInfo
	// PosInFile is the block's position within File (0-based).
	PosInFile int64
}

// HasFile reports whether b is backed by a live file chunk.
// A nil block (the canonical EMPTY sentinel) has no file.
func HasFile(b *Block) bool {
	if b == nil {
		return false
	}
	switch b.State {
	case BLK, CHG, NEW, REP:
		return true
	default:
		return false
	}
}

// HasInvalidParity reports whether the parity bytes at b's position do not
// yet reflect b's current contents (or b's absence, for DELETED).
func HasInvalidParity(b *Block) bool {
	if b == nil {
		return false
	}
	switch b.State {
	case CHG, NEW, REP, DELETED:
		return true
	default:
		return false
	}
}

// HasHash reports whether b carries a previously recorded hash that must be
// compared against (rather than overwritten) on re-read.
func HasHash(b *Block) bool {
	if b == nil {
		return false
	}
	switch b.State {
	case BLK, CHG, REP:
		return true
	default:
		return false
	}
}
