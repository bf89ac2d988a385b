// Package raidcodec computes parity across a set of equally sized data
// buffers, given a parity level of 1 or 2. It is grounded on the Reed-Solomon
// wrapper in the teacher's fs/erasure package, but thinner: callers here
// supply one block-sized buffer per data disk directly (there is no
// single-blob Split/Join step, since the sync engine's buffers already are
// the shards).
package raidcodec

import (
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Codec encodes parity for a fixed disk count and level, reusing one
// reedsolomon.Encoder across every block position.
type Codec struct {
	dataShards   int
	parityShards int
	enc          reedsolomon.Encoder
}

// New builds a Codec for dataShards data disks and level parity shards
// (level must be 1 or 2). dataShards must be >= 1. At level 1 the single
// parity shard is the XOR of the data shards.
func New(dataShards, level int) (*Codec, error) {
	if dataShards < 1 {
		return nil, fmt.Errorf("raidcodec: dataShards must be >= 1, got %d", dataShards)
	}
	if level != 1 && level != 2 {
		return nil, fmt.Errorf("raidcodec: level must be 1 or 2, got %d", level)
	}
	enc, err := reedsolomon.New(dataShards, level, reedsolomon.WithFastOneParityMatrix())
	if err != nil {
		return nil, fmt.Errorf("raidcodec: %w", err)
	}
	return &Codec{dataShards: dataShards, parityShards: level, enc: enc}, nil
}

// DataShards returns the configured data disk count.
func (c *Codec) DataShards() int {
	return c.dataShards
}

// ParityShards returns the configured parity level (1 or 2).
func (c *Codec) ParityShards() int {
	return c.parityShards
}

// Encode computes parity in place. buffers must have exactly
// DataShards()+ParityShards() elements, each the same length (the block
// size); buffers[0:DataShards()] hold data-disk contents, and
// buffers[DataShards():] are overwritten with the computed parity.
func (c *Codec) Encode(buffers [][]byte) error {
	want := c.dataShards + c.parityShards
	if len(buffers) != want {
		return fmt.Errorf("raidcodec: expected %d buffers, got %d", want, len(buffers))
	}
	if err := c.enc.Encode(buffers); err != nil {
		return fmt.Errorf("raidcodec: encode: %w", err)
	}
	return nil
}

// Verify reports whether the parity buffers in buffers are consistent with
// the data buffers, without modifying them. Exposed for the "check"
// workflow and for tests; the sync engine itself never needs to verify what
// it just wrote.
func (c *Codec) Verify(buffers [][]byte) (bool, error) {
	ok, err := c.enc.Verify(buffers)
	if err != nil {
		return false, fmt.Errorf("raidcodec: verify: %w", err)
	}
	return ok, nil
}
