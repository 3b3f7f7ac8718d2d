package watch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newProjectsDir(t *testing.T) (projectsDir, sessionPath string) {
	t.Helper()
	projectsDir = t.TempDir()
	projectDir := filepath.Join(projectsDir, "-tmp-proj")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return projectsDir, filepath.Join(projectDir, "sess-1.jsonl")
}

func TestTreeTail_NoHistoryAfterInit(t *testing.T) {
	projectsDir, path := newProjectsDir(t)
	writeFile(t, path, `{"type":"user","message":{"content":"old"}}`+"\n")

	tail := NewTreeTail(projectsDir)
	tail.InitAtEnd()

	if got := tail.Scan(); len(got) != 0 {
		t.Errorf("Scan after init = %d events, want 0", len(got))
	}
}

func TestTreeTail_ReportsAppends(t *testing.T) {
	projectsDir, path := newProjectsDir(t)
	writeFile(t, path, "")
	tail := NewTreeTail(projectsDir)
	tail.InitAtEnd()

	appendFile(t, path,
		`{"type":"user","sessionId":"sess-1","timestamp":"2025-06-01T10:00:00Z","message":{"content":"hello"}}`+"\n")

	events := tail.Scan()
	if len(events) != 1 {
		t.Fatalf("Scan = %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.ProjectName != "tmp-proj" || ev.SessionID != "sess-1" || ev.MsgType != "user" {
		t.Errorf("event = %+v", ev)
	}
	if ev.ContentPreview != "hello" {
		t.Errorf("ContentPreview = %q", ev.ContentPreview)
	}

	if got := tail.Scan(); len(got) != 0 {
		t.Errorf("second Scan = %d events, want 0", len(got))
	}
}

func TestTreeTail_MetaIncluded(t *testing.T) {
	// Unlike the single-session tail, the tree feed keeps meta records.
	projectsDir, path := newProjectsDir(t)
	writeFile(t, path, "")
	tail := NewTreeTail(projectsDir)
	tail.InitAtEnd()

	appendFile(t, path, `{"type":"user","isMeta":true,"message":{"content":"injected"}}`+"\n")

	if got := tail.Scan(); len(got) != 1 {
		t.Errorf("Scan = %d events, want 1 (meta record kept)", len(got))
	}
}

func TestTreeTail_FirstContactSkipsPartialLine(t *testing.T) {
	// A file larger than the initial tail window starts mid-line; the first
	// (possibly partial) line of the window must not be reported.
	projectsDir, path := newProjectsDir(t)

	line := `{"type":"user","message":{"content":"` + strings.Repeat("x", 200) + `"}}` + "\n"
	var content strings.Builder
	for i := 0; i < 40; i++ { // ~9.6KB, well past the 4096-byte window
		content.WriteString(line)
	}
	writeFile(t, path, content.String())

	tail := NewTreeTail(projectsDir)
	events := tail.Scan()

	if len(events) == 0 {
		t.Fatal("expected tail-window events on first contact")
	}
	// Window is 4096 bytes over ~240-byte lines: at most 17 whole lines.
	if len(events) > 17 {
		t.Errorf("got %d events, want the tail window only", len(events))
	}
	for _, ev := range events {
		if !strings.HasPrefix(ev.ContentPreview, "xxx") {
			t.Errorf("event preview %q looks like a partial line leaked", ev.ContentPreview)
		}
	}
}

func TestTreeTail_ShrunkenFileRereadFromStart(t *testing.T) {
	projectsDir, path := newProjectsDir(t)
	writeFile(t, path, strings.Repeat(`{"type":"user","message":{"content":"old"}}`+"\n", 10))
	tail := NewTreeTail(projectsDir)
	tail.InitAtEnd()

	writeFile(t, path, `{"type":"user","message":{"content":"fresh"}}`+"\n")

	events := tail.Scan()
	if len(events) != 1 || events[0].ContentPreview != "fresh" {
		t.Errorf("events = %+v, want single fresh event", events)
	}
}

func TestTreeTail_SessionIDFallsBackToStem(t *testing.T) {
	projectsDir, path := newProjectsDir(t)
	writeFile(t, path, "")
	tail := NewTreeTail(projectsDir)
	tail.InitAtEnd()

	appendFile(t, path, `{"type":"user","message":{"content":"no session id"}}`+"\n")

	events := tail.Scan()
	if len(events) != 1 || events[0].SessionID != "sess-1" {
		t.Errorf("events = %+v, want file-stem session id", events)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo wörld", 5); got != "héllo" {
		t.Errorf("truncateRunes = %q", got)
	}
	if got := truncateRunes("short", 100); got != "short" {
		t.Errorf("truncateRunes = %q", got)
	}
}
