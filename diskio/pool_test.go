package diskio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureOpenIsNoOpForSamePath(t *testing.T) {
	opener := NewSimOpener()
	opener.PutFile("/a", []byte("0123456789"), Stat{Size: 10})

	pool := NewPool(1, opener)
	ctx := context.Background()

	stat, err := pool.EnsureOpen(ctx, 0, "/a", true)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stat.Size)

	stat2, err := pool.EnsureOpen(ctx, 0, "/a", true)
	require.NoError(t, err)
	assert.Equal(t, stat, stat2)
}

func TestEnsureOpenSwapsDifferentPath(t *testing.T) {
	opener := NewSimOpener()
	opener.PutFile("/a", []byte("aaaa"), Stat{Size: 4})
	opener.PutFile("/b", []byte("bbbbbb"), Stat{Size: 6})

	pool := NewPool(1, opener)
	ctx := context.Background()

	_, err := pool.EnsureOpen(ctx, 0, "/a", true)
	require.NoError(t, err)

	stat, err := pool.EnsureOpen(ctx, 0, "/b", true)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stat.Size)
}

func TestEnsureOpenMissingFile(t *testing.T) {
	opener := NewSimOpener()
	pool := NewPool(1, opener)

	_, err := pool.EnsureOpen(context.Background(), 0, "/nope", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissing))
}

func TestReadZeroPadsShortRead(t *testing.T) {
	opener := NewSimOpener()
	opener.PutFile("/a", []byte("0123"), Stat{Size: 4})

	pool := NewPool(1, opener)
	ctx := context.Background()
	_, err := pool.EnsureOpen(ctx, 0, "/a", true)
	require.NoError(t, err)

	buf := make([]byte, 8)
	n, err := pool.Read(0, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("0123\x00\x00\x00\x00"), buf)
}

func TestReadOnUnopenedSlotErrors(t *testing.T) {
	pool := NewPool(1, NewSimOpener())
	_, err := pool.Read(0, make([]byte, 4), 0)
	assert.Error(t, err)
}

func TestCloseAllClosesEverySlot(t *testing.T) {
	opener := NewSimOpener()
	opener.PutFile("/a", []byte("aaaa"), Stat{Size: 4})
	opener.PutFile("/b", []byte("bbbb"), Stat{Size: 4})

	pool := NewPool(2, opener)
	ctx := context.Background()
	_, err := pool.EnsureOpen(ctx, 0, "/a", true)
	require.NoError(t, err)
	_, err = pool.EnsureOpen(ctx, 1, "/b", true)
	require.NoError(t, err)

	assert.NoError(t, pool.CloseAll())
}
