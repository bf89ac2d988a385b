package raidsync

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient glitch")
		}
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryFailsFastOnPermanentError(t *testing.T) {
	attempts := 0
	gaveUp := false
	err := Retry(context.Background(), func(context.Context) error {
		attempts++
		return os.ErrNotExist
	}, func(context.Context) {
		gaveUp = true
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "a permanent error must not be retried")
	assert.True(t, gaveUp)
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not exist", os.ErrNotExist, false},
		{"permission", os.ErrPermission, false},
		{"context canceled", context.Canceled, false},
		{"read only fs text", errors.New("write /x: read-only file system"), false},
		{"generic transient", errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRetry(tt.err))
		})
	}
}
