// Package engine implements the two-pass sync pipeline: a PlanScanner first
// pass that counts the work ahead, and a SyncDriver second pass that reads,
// hashes, RAID-encodes, and writes parity for every actionable block
// position, followed by PrepareAndFinalize's pre-trim and end-of-run fsync.
package engine

import "github.com/sharedcode/raidsync/catalog"

// actionable reports whether position pos has at least one file-bearing
// descriptor and at least one invalid-parity descriptor across disks.
// Shared by Scanner.Count and Driver's per-position Step A.
func actionable(disks []*catalog.Disk, pos int64) (oneValid, oneInvalid bool) {
	for _, d := range disks {
		if d == nil {
			continue
		}
		b := d.At(pos)
		if catalog.HasFile(b) {
			oneValid = true
		}
		if catalog.HasInvalidParity(b) {
			oneInvalid = true
		}
	}
	return oneValid, oneInvalid
}

// Scanner implements the PlanScanner first pass (spec §4.3): a pure count of
// how many positions in [blockstart, blockmax) need work, used both for
// progress reporting and to derive the autosave cadence before any I/O runs.
type Scanner struct{}

// Count returns the number of actionable positions in [blockstart, blockmax).
func (Scanner) Count(disks []*catalog.Disk, blockstart, blockmax int64) int64 {
	var n int64
	for pos := blockstart; pos < blockmax; pos++ {
		oneValid, oneInvalid := actionable(disks, pos)
		if oneValid && oneInvalid {
			n++
		}
	}
	return n
}
