package diskio

import "errors"

// ErrMissing is returned by Opener.Open when the file vanished, classified
// as a benign concurrent-mutation event (the position is skipped, the run
// still reports an error at the end).
var ErrMissing = errors.New("diskio: file missing")

// ErrDenied is returned by Opener.Open on a permissions failure, classified
// as fatal.
var ErrDenied = errors.New("diskio: permission denied")
