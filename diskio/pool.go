package diskio

import (
	"context"
	"errors"
	"io"
)

// slot tracks the single currently-open file (if any) for one disk index,
// plus the stat snapshot captured at open time.
type slot struct {
	path string
	file File
	stat Stat
	open bool
}

// HandlePool holds one open file handle per data-disk slot. It never reopens
// the same path twice in succession: EnsureOpen is a no-op when the slot
// already has the requested path open, so sequential read-ahead hints are
// not defeated across consecutive positions on the same file.
type HandlePool struct {
	opener Opener
	slots  []slot
}

// NewPool creates a HandlePool with n slots (one per disk), backed by opener.
func NewPool(n int, opener Opener) *HandlePool {
	return &HandlePool{opener: opener, slots: make([]slot, n)}
}

// EnsureOpen makes slot j's open file be path, closing any different file
// currently held in that slot first. A close failure here is unexpected
// (we only ever read) and is therefore fatal, per spec.
func (p *HandlePool) EnsureOpen(ctx context.Context, j int, path string, sequential bool) (Stat, error) {
	s := &p.slots[j]
	if s.open && s.path == path {
		return s.stat, nil
	}
	if s.open {
		if err := s.file.Close(); err != nil {
			return Stat{}, err
		}
		s.open = false
	}
	f, stat, err := p.opener.Open(ctx, path, sequential)
	if err != nil {
		return Stat{}, err
	}
	s.file = f
	s.path = path
	s.stat = stat
	s.open = true
	return stat, nil
}

// Read reads into buf (already sized to the block length) at posInFile
// *block size offset; a short read at EOF is zero-padded and the actual
// byte count read from the file is returned.
func (p *HandlePool) Read(j int, buf []byte, offset int64) (int, error) {
	s := &p.slots[j]
	if !s.open {
		return 0, errors.New("diskio: read on unopened slot")
	}
	n, err := s.file.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return n, nil
}

// CloseAll closes every currently-open slot. Every slot is attempted
// regardless of earlier failures; the first error encountered (if any) is
// returned to the caller after all slots have been closed.
func (p *HandlePool) CloseAll() error {
	var first error
	for i := range p.slots {
		s := &p.slots[i]
		if !s.open {
			continue
		}
		if err := s.file.Close(); err != nil && first == nil {
			first = err
		}
		s.open = false
		s.path = ""
	}
	return first
}
