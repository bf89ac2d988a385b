package raidsync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "fatal-io", FatalIO.String())
	assert.Equal(t, "unknown", ErrorCode(99).String())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk gone")
	err := Error{Code: FatalIO, Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "fatal-io")
}
