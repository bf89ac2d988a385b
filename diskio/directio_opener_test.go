package diskio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ncw/directio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blockSize = 4096

func TestDirectIOOpenerReadsBackWhatWasWritten(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.bin")

	block := directio.AlignedBlock(blockSize)
	copy(block, []byte("disk contents"))
	require.NoError(t, os.WriteFile(path, block, 0o644))

	opener := NewDirectIOOpener()
	f, stat, err := opener.Open(ctx, path, true)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, int64(blockSize), stat.Size)

	buf := make([]byte, blockSize)
	n, err := f.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, blockSize, n)
	assert.Equal(t, "disk contents", string(buf[:len("disk contents")]))
}

func TestDirectIOOpenerMissingFile(t *testing.T) {
	opener := NewDirectIOOpener()
	_, _, err := opener.Open(context.Background(), filepath.Join(t.TempDir(), "nope.bin"), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissing)
}
