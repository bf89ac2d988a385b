package diskio

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// simFile is an in-memory data file used by SimOpener.
type simFile struct {
	data []byte
}

func (f *simFile) ReadAt(buf []byte, offset int64) (int, error) {
	if offset >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(buf, f.data[offset:])
	if n < len(buf) {
		return n, io.EOF
	}
	return n, nil
}

func (f *simFile) Close() error { return nil }

// SimOpener is an in-memory Opener used by tests in place of real disks,
// mirroring the teacher's fileIOSimulator/DirectIOSim injectable-fake
// pattern. It is concurrency-safe so multiple disks can be exercised by the
// sync driver's per-position fan-out.
type SimOpener struct {
	mu    sync.Mutex
	files map[string]*simFile
	stats map[string]Stat
	// missing marks a path as deleted mid-run, so Open returns ErrMissing.
	missing map[string]bool
}

// NewSimOpener returns an empty SimOpener.
func NewSimOpener() *SimOpener {
	return &SimOpener{
		files:   make(map[string]*simFile),
		stats:   make(map[string]Stat),
		missing: make(map[string]bool),
	}
}

// PutFile registers path's content and stat snapshot.
func (s *SimOpener) PutFile(path string, data []byte, stat Stat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = &simFile{data: data}
	s.stats[path] = stat
	delete(s.missing, path)
}

// Touch rewrites path's stat (simulating an external mtime/size/inode
// change) without touching the stored content.
func (s *SimOpener) Touch(path string, stat Stat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[path] = stat
}

// Delete marks path as vanished: subsequent Open calls return ErrMissing.
func (s *SimOpener) Delete(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missing[path] = true
}

// Open implements Opener.
func (s *SimOpener) Open(ctx context.Context, path string, sequential bool) (File, Stat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missing[path] {
		return nil, Stat{}, fmt.Errorf("%w: %s", ErrMissing, path)
	}
	f, ok := s.files[path]
	if !ok {
		return nil, Stat{}, fmt.Errorf("%w: %s", ErrMissing, path)
	}
	return f, s.stats[path], nil
}
