// Package raidsync defines the shared types, configuration, errors, and
// helpers used across the sync engine: the Config a caller supplies, the
// Error/ErrorCode taxonomy the engine reports, logging setup, a retry helper
// for transient I/O, and a small TaskRunner for bounded fan-out.
//
// Concrete subsystems live in subpackages: catalog (block descriptors),
// diskio (per-disk handle pool and aligned buffers), raidcodec (RAID parity
// encoding), blockhash (keyed content hashing), parityfile (parity file I/O),
// and engine (the PlanScanner/SyncDriver pipeline itself).
package raidsync
