package diskio

import "github.com/ncw/directio"

// BufferPool holds (N+L) block-sized buffers reused across every position of
// a sync pass: indices [0,N) are data-disk slots, indices [N,N+L) receive
// RAID-computed parity. All buffers are views into one contiguous region
// allocated via directio.AlignedBlock, buffer k starting at offset
// k*blockSize, so each satisfies O_DIRECT's sector-alignment requirement
// whenever blockSize is a multiple of that alignment.
type BufferPool struct {
	buffers [][]byte
}

// NewBufferPool allocates n+l aligned buffers of blockSize bytes each.
func NewBufferPool(n, l, blockSize int) *BufferPool {
	region := directio.AlignedBlock((n + l) * blockSize)
	buffers := make([][]byte, n+l)
	for i := range buffers {
		buffers[i] = region[i*blockSize : (i+1)*blockSize : (i+1)*blockSize]
	}
	return &BufferPool{buffers: buffers}
}

// Buffers returns the full (N+L)-length buffer slice.
func (p *BufferPool) Buffers() [][]byte {
	return p.buffers
}

// Zero clears every byte of buffer i. Called for every position, for every
// slot, before it is populated — eliding this memset is only sound when the
// read that follows is asserted to fill the entire block, so this
// implementation always zeroes first rather than relying on that invariant.
func (p *BufferPool) Zero(i int) {
	b := p.buffers[i]
	for k := range b {
		b[k] = 0
	}
}
