package parityfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimFileExtendAndWrite(t *testing.T) {
	f := NewSimFile()
	ctx := context.Background()

	require.NoError(t, f.Extend(ctx, 16, false))
	assert.Equal(t, int64(16), f.Size())

	require.NoError(t, f.WriteAt(ctx, []byte{1, 2, 3, 4}, 4))
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2, 3, 4}, f.ReadAt(0, 8))
}

func TestSimFileExtendIsNoOpWhenSmaller(t *testing.T) {
	f := NewSimFile()
	ctx := context.Background()
	require.NoError(t, f.Extend(ctx, 16, false))
	require.NoError(t, f.Extend(ctx, 8, false))
	assert.Equal(t, int64(16), f.Size())
}

func TestSimFileWriteGrowsPastCurrentSize(t *testing.T) {
	f := NewSimFile()
	ctx := context.Background()
	require.NoError(t, f.WriteAt(ctx, []byte{9, 9}, 4))
	assert.Equal(t, int64(6), f.Size())
}

func TestSimFileFailWriteAt(t *testing.T) {
	f := NewSimFile()
	f.FailWriteAt[8] = true
	err := f.WriteAt(context.Background(), []byte{1}, 8)
	assert.Error(t, err)
}

func TestSimFileFsyncAndCloseCounts(t *testing.T) {
	f := NewSimFile()
	require.NoError(t, f.Fsync())
	require.NoError(t, f.Fsync())
	require.NoError(t, f.Close())
	assert.Equal(t, 2, f.FsyncCalls)
	assert.Equal(t, 1, f.CloseCalls)
}
