// Package watch implements incremental tailing of transcript files: a
// single-file tail for per-session streams, a tree tail over the whole
// projects directory, and tail-window state inference for running agents.
package watch

import (
	"bytes"
	"io"
	"os"

	"github.com/kyoungmook/claude-dashboard/internal/logparse"
	"github.com/kyoungmook/claude-dashboard/internal/model"
)

// SessionTail tracks one transcript file and returns messages appended since
// the previous read.
type SessionTail struct {
	path    string
	offset  int64
	mtimeNs int64
}

// NewSessionTail creates a tail over path with the bookmark at byte 0.
func NewSessionTail(path string) *SessionTail {
	return &SessionTail{path: path}
}

// InitAtEnd moves the bookmark to the current end of file so the next read
// only sees content appended afterwards.
func (t *SessionTail) InitAtEnd() {
	fi, err := os.Stat(t.path)
	if err != nil {
		t.offset = 0
		t.mtimeNs = 0
		return
	}
	t.offset = fi.Size()
	t.mtimeNs = fi.ModTime().UnixNano()
}

// ReadNew returns the visible messages appended since the last read. An
// unchanged (size, mtime) pair skips I/O entirely; a shrunken file is treated
// as rotated and re-read from the start.
func (t *SessionTail) ReadNew() []model.Message {
	fi, err := os.Stat(t.path)
	if err != nil {
		return nil
	}

	if fi.ModTime().UnixNano() == t.mtimeNs && fi.Size() == t.offset {
		return nil
	}
	if fi.Size() < t.offset {
		t.offset = 0
	}

	data, n, ok := readFrom(t.path, t.offset)
	if !ok {
		return nil
	}

	var messages []model.Message
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		msg, ok := logparse.Decode(line)
		if !ok || msg.IsMeta {
			continue
		}
		messages = append(messages, *msg)
	}

	t.offset += n
	t.mtimeNs = fi.ModTime().UnixNano()
	return messages
}

// readFrom reads the file from offset to EOF. The byte count is returned
// separately so callers advance their bookmark by exactly what was consumed.
func readFrom(path string, offset int64) ([]byte, int64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, false
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, false
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, 0, false
	}
	return data, int64(len(data)), true
}
