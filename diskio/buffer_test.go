package diskio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferPoolAllocatesNPlusL(t *testing.T) {
	p := NewBufferPool(3, 2, 64)
	bufs := p.Buffers()
	require.Len(t, bufs, 5)
	for _, b := range bufs {
		assert.Len(t, b, 64)
	}
}

func TestZeroClearsBuffer(t *testing.T) {
	p := NewBufferPool(1, 1, 8)
	bufs := p.Buffers()
	for i := range bufs[0] {
		bufs[0][i] = 0xFF
	}
	p.Zero(0)
	assert.Equal(t, make([]byte, 8), bufs[0])
}
