package raidcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(b byte, size int) []byte {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = b
	}
	return buf
}

func TestNewRejectsBadParams(t *testing.T) {
	_, err := New(0, 1)
	assert.Error(t, err)

	_, err = New(2, 3)
	assert.Error(t, err)
}

func TestEncodeLevel1XOR(t *testing.T) {
	c, err := New(2, 1)
	require.NoError(t, err)

	buffers := [][]byte{
		block(0x0F, 4),
		block(0xF0, 4),
		make([]byte, 4),
	}
	require.NoError(t, c.Encode(buffers))
	assert.Equal(t, block(0xFF, 4), buffers[2])
}

func TestEncodeRejectsWrongBufferCount(t *testing.T) {
	c, err := New(2, 1)
	require.NoError(t, err)

	err = c.Encode([][]byte{block(1, 4)})
	assert.Error(t, err)
}

func TestVerifyAgreesWithEncode(t *testing.T) {
	c, err := New(3, 2)
	require.NoError(t, err)

	buffers := [][]byte{
		block(1, 8),
		block(2, 8),
		block(3, 8),
		make([]byte, 8),
		make([]byte, 8),
	}
	require.NoError(t, c.Encode(buffers))

	ok, err := c.Verify(buffers)
	require.NoError(t, err)
	assert.True(t, ok)

	buffers[0][0] ^= 0xFF
	ok, err = c.Verify(buffers)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDataAndParityShards(t *testing.T) {
	c, err := New(4, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, c.DataShards())
	assert.Equal(t, 2, c.ParityShards())
}
