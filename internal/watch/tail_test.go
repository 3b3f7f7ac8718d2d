package watch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
}

func TestSessionTail_NoHistoryAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sess.jsonl")
	writeFile(t, path,
		`{"type":"user","message":{"content":"old"}}`+"\n"+
			`{"type":"assistant","message":{"content":"older"}}`+"\n")

	tail := NewSessionTail(path)
	tail.InitAtEnd()

	if got := tail.ReadNew(); len(got) != 0 {
		t.Errorf("ReadNew after init = %d messages, want 0", len(got))
	}
}

func TestSessionTail_ReportsAppendsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sess.jsonl")
	writeFile(t, path, "")
	tail := NewSessionTail(path)
	tail.InitAtEnd()

	appendFile(t, path,
		`{"type":"user","timestamp":"2025-06-01T10:00:00Z","message":{"content":"one"}}`+"\n"+
			`{"type":"assistant","timestamp":"2025-06-01T10:00:01Z","message":{"content":"two"}}`+"\n")

	msgs := tail.ReadNew()
	if len(msgs) != 2 {
		t.Fatalf("ReadNew = %d messages, want 2", len(msgs))
	}
	if msgs[0].ContentText != "one" || msgs[1].ContentText != "two" {
		t.Errorf("messages = %q, %q", msgs[0].ContentText, msgs[1].ContentText)
	}

	if got := tail.ReadNew(); len(got) != 0 {
		t.Errorf("second ReadNew = %d messages, want 0", len(got))
	}
}

func TestSessionTail_SkipsMetaMessages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sess.jsonl")
	writeFile(t, path, "")
	tail := NewSessionTail(path)
	tail.InitAtEnd()

	appendFile(t, path,
		`{"type":"user","isMeta":true,"message":{"content":"injected"}}`+"\n"+
			`{"type":"user","message":{"content":"real"}}`+"\n")

	msgs := tail.ReadNew()
	if len(msgs) != 1 || msgs[0].ContentText != "real" {
		t.Errorf("msgs = %+v, want only the non-meta message", msgs)
	}
}

func TestSessionTail_ShrunkenFileResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sess.jsonl")
	writeFile(t, path, strings.Repeat(`{"type":"user","message":{"content":"x"}}`+"\n", 5))
	tail := NewSessionTail(path)
	tail.InitAtEnd()

	writeFile(t, path, `{"type":"user","message":{"content":"fresh"}}`+"\n")

	msgs := tail.ReadNew()
	if len(msgs) != 1 || msgs[0].ContentText != "fresh" {
		t.Errorf("msgs = %+v, want single fresh message after truncation", msgs)
	}
}

func TestSessionTail_MissingFile(t *testing.T) {
	tail := NewSessionTail(filepath.Join(t.TempDir(), "gone.jsonl"))
	tail.InitAtEnd()
	if got := tail.ReadNew(); len(got) != 0 {
		t.Errorf("ReadNew on missing file = %d, want 0", len(got))
	}
}
