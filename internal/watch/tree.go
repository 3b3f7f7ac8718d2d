package watch

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyoungmook/claude-dashboard/internal/logparse"
	"github.com/kyoungmook/claude-dashboard/internal/model"
	"github.com/kyoungmook/claude-dashboard/internal/session"
)

// initialTailBytes bounds the first read of a file that has no bookmark yet,
// so discovering a large pre-existing transcript does not replay its history.
const initialTailBytes = 4096

const livePreviewChars = 100

type filePosition struct {
	offset  int64
	mtimeNs int64
}

// TreeTail tracks every session file under a projects directory and returns
// lightweight live events for newly appended records. Instances are not safe
// for concurrent use; each stream owns its own TreeTail.
type TreeTail struct {
	projectsDir string
	positions   map[string]filePosition
}

// NewTreeTail creates a tail over the given projects directory.
func NewTreeTail(projectsDir string) *TreeTail {
	return &TreeTail{
		projectsDir: projectsDir,
		positions:   make(map[string]filePosition),
	}
}

// InitAtEnd primes bookmarks for every existing file at its current EOF, so a
// following Scan reports no history.
func (t *TreeTail) InitAtEnd() {
	t.eachSessionFile(func(path, _ string) {
		fi, err := os.Stat(path)
		if err != nil {
			return
		}
		t.positions[path] = filePosition{offset: fi.Size(), mtimeNs: fi.ModTime().UnixNano()}
	})
}

// Scan reads the delta of every changed file and returns the decoded live
// events. Unreadable files are skipped for this cycle.
func (t *TreeTail) Scan() []model.LiveEvent {
	var events []model.LiveEvent
	t.eachSessionFile(func(path, projectDirName string) {
		events = append(events, t.readDelta(path, session.DecodeProjectName(projectDirName))...)
	})
	return events
}

func (t *TreeTail) eachSessionFile(fn func(path, projectDirName string)) {
	entries, err := os.ReadDir(t.projectsDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		projectDir := filepath.Join(t.projectsDir, entry.Name())
		files, err := os.ReadDir(projectDir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
				continue
			}
			fn(filepath.Join(projectDir, f.Name()), entry.Name())
		}
	}
}

func (t *TreeTail) readDelta(path, projectName string) []model.LiveEvent {
	fi, err := os.Stat(path)
	if err != nil {
		return nil
	}

	pos, known := t.positions[path]
	if known && fi.ModTime().UnixNano() == pos.mtimeNs && fi.Size() == pos.offset {
		return nil
	}

	// First contact starts in the tail window instead of byte 0; a shrunken
	// file re-reads from the start, which never has a partial first line.
	initial := !known
	var offset int64
	switch {
	case known && fi.Size() < pos.offset:
		offset = 0
		initial = true
	case known:
		offset = pos.offset
	default:
		offset = fi.Size() - initialTailBytes
		if offset < 0 {
			offset = 0
		}
	}

	data, n, ok := readFrom(path, offset)
	if !ok {
		return nil
	}

	lines := bytes.Split(data, []byte("\n"))
	if initial && offset > 0 && len(lines) > 0 {
		lines = lines[1:]
	}

	var events []model.LiveEvent
	sessionID := ""
	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		rec, ok := logparse.ParseRecord(line)
		if !ok {
			continue
		}
		if sessionID == "" {
			sessionID = rec.SessionID
		}
		msg := logparse.ToMessage(rec)
		if msg == nil {
			continue
		}

		id := sessionID
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(path), ".jsonl")
		}
		toolNames := make([]string, 0, len(msg.ToolCalls))
		for _, tc := range msg.ToolCalls {
			toolNames = append(toolNames, tc.Name)
		}

		events = append(events, model.LiveEvent{
			Timestamp:      msg.Timestamp,
			ProjectName:    projectName,
			SessionID:      id,
			MsgType:        msg.Type,
			ContentPreview: truncateRunes(msg.ContentText, livePreviewChars),
			ToolCalls:      toolNames,
			OutputTokens:   msg.Usage.OutputTokens,
			DurationMs:     msg.DurationMs,
			Model:          msg.Model,
		})
	}

	t.positions[path] = filePosition{offset: offset + n, mtimeNs: fi.ModTime().UnixNano()}
	return events
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
