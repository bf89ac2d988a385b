package raidsync

import (
	"context"
	"errors"
	log "log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retry executes task with Fibonacci backoff up to 5 retries, consulting
// ShouldRetry after every failed attempt so permanent errors (missing file,
// permission denied, read-only filesystem, ...) fail fast instead of
// exhausting the backoff schedule. Whenever the task finally fails (retries
// exhausted or a permanent error), gaveUpTask is invoked (when not nil)
// before the final error is returned. Used at the
// transient-I/O boundary in diskio/parityfile; it is never wrapped around
// the classification logic in the sync driver itself.
func Retry(ctx context.Context, task func(ctx context.Context) error, gaveUpTask func(ctx context.Context)) error {
	b := retry.NewFibonacci(1 * time.Second)
	err := retry.Do(ctx, retry.WithMaxRetries(5, b), func(ctx context.Context) error {
		if err := task(ctx); err != nil {
			if ShouldRetry(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		log.Warn(err.Error() + ", gave up")
		if gaveUpTask != nil {
			gaveUpTask(ctx)
		}
		return err
	}
	return nil
}

// ShouldRetry reports whether err is transient and worth retrying.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, os.ErrExist) {
		return false
	}
	switch {
	case errors.Is(err, syscall.EROFS),
		errors.Is(err, syscall.ENOSPC),
		errors.Is(err, syscall.EDQUOT),
		errors.Is(err, syscall.EMFILE),
		errors.Is(err, syscall.ENFILE),
		errors.Is(err, syscall.EACCES),
		errors.Is(err, syscall.EPERM),
		errors.Is(err, syscall.ENAMETOOLONG),
		errors.Is(err, syscall.ENOTDIR),
		errors.Is(err, syscall.EISDIR),
		errors.Is(err, syscall.EXDEV),
		errors.Is(err, syscall.EEXIST),
		errors.Is(err, syscall.EINVAL):
		return false
	}
	if strings.Contains(err.Error(), "read-only file system") {
		return false
	}
	return true
}
