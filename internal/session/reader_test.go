package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTranscript creates a temp JSONL file from raw lines.
func writeTranscript(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abc12345-0000-0000-0000-000000000000.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSession_Rollup(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","sessionId":"sess-1","gitBranch":"main","version":"2.0.1","cwd":"/tmp/proj","timestamp":"2025-06-01T10:00:00Z","message":{"role":"user","content":"do the thing"}}`,
		`{"type":"assistant","timestamp":"2025-06-01T10:00:05Z","message":{"role":"assistant","model":"claude-sonnet-4-5","content":[{"type":"tool_use","id":"tu1","name":"Read","input":{"file_path":"/tmp/a"}}],"usage":{"input_tokens":100,"output_tokens":50}}}`,
	)

	meta, messages := ReadSession(path)
	if meta.SessionID != "sess-1" || meta.GitBranch != "main" || meta.Version != "2.0.1" {
		t.Errorf("meta = %+v", meta)
	}
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}

	info := BuildSessionInfo(path, "-Users-me-proj", meta, messages)
	if info.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", info.MessageCount)
	}
	if got := info.TotalUsage.Total(); got != 150 {
		t.Errorf("TotalUsage.Total() = %d, want 150", got)
	}
	if info.ToolCallsCount != 1 || len(info.ToolNames) != 1 || info.ToolNames[0] != "Read" {
		t.Errorf("tool rollup = %d %v", info.ToolCallsCount, info.ToolNames)
	}
	if info.FirstTimestamp != "2025-06-01T10:00:00Z" || info.LastTimestamp != "2025-06-01T10:00:05Z" {
		t.Errorf("timestamps = %q..%q", info.FirstTimestamp, info.LastTimestamp)
	}
	if len(info.ModelsUsed) != 1 || info.ModelsUsed[0] != "claude-sonnet-4-5" {
		t.Errorf("ModelsUsed = %v", info.ModelsUsed)
	}
}

func TestReadSession_MetaExcludedFromCount(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","isMeta":true,"timestamp":"2025-06-01T10:00:00Z","message":{"content":"injected"}}`,
		`{"type":"user","timestamp":"2025-06-01T10:01:00Z","message":{"content":"real"}}`,
	)
	meta, messages := ReadSession(path)
	info := BuildSessionInfo(path, "-tmp-p", meta, messages)

	if info.MessageCount != 1 {
		t.Errorf("MessageCount = %d, want 1 (meta excluded)", info.MessageCount)
	}
	// meta records still contribute to the time range
	if info.FirstTimestamp != "2025-06-01T10:00:00Z" {
		t.Errorf("FirstTimestamp = %q", info.FirstTimestamp)
	}
}

func TestReadSession_SessionIDFallsBackToStem(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","timestamp":"2025-06-01T10:00:00Z","message":{"content":"no ids here"}}`,
	)
	meta, messages := ReadSession(path)
	info := BuildSessionInfo(path, "-tmp-p", meta, messages)

	want := strings.TrimSuffix(filepath.Base(path), ".jsonl")
	if info.SessionID != want {
		t.Errorf("SessionID = %q, want file stem %q", info.SessionID, want)
	}
}

func TestReadSession_UnreadableFile(t *testing.T) {
	meta, messages := ReadSession(filepath.Join(t.TempDir(), "missing.jsonl"))
	if meta.SessionID != "" || len(messages) != 0 {
		t.Error("expected empty results for missing file")
	}
}

func TestReadMetadata_ShortCircuits(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","sessionId":"s","gitBranch":"b","version":"v","cwd":"/c","timestamp":"2025-06-01T10:00:00Z"}`,
		`{"type":"user","sessionId":"other","gitBranch":"other"}`,
	)
	meta := ReadMetadata(path)
	if meta.SessionID != "s" || meta.GitBranch != "b" {
		t.Errorf("first-write-wins violated: %+v", meta)
	}
}

func TestDecodeProjectName(t *testing.T) {
	cases := []struct {
		dir, home, want string
	}{
		{"-Users-me-Documents-work-gitlore", "Users-me", "gitlore"},
		{"-Users-me-Documents-notes", "Users-me", "notes"},
		{"-Users-me-side-project", "Users-me", "side-project"},
		{"-Users-me", "Users-me", "~"},
		{"-tmp-scratch", "Users-me", "tmp-scratch"},
		{"-Users-me-proj", "", "Users-me-proj"},
	}
	for _, c := range cases {
		if got := decodeProjectName(c.dir, c.home); got != c.want {
			t.Errorf("decodeProjectName(%q, %q) = %q, want %q", c.dir, c.home, got, c.want)
		}
	}
}

func TestDisplayPath(t *testing.T) {
	cases := []struct {
		dir, home, want string
	}{
		{"-Users-me-Documents-work-gitlore", "Users-me", "~/Documents-work-gitlore"},
		{"-Users-me", "Users-me", "~"},
		{"-tmp-scratch", "Users-me", "tmp-scratch"},
	}
	for _, c := range cases {
		if got := displayPath(c.dir, c.home); got != c.want {
			t.Errorf("displayPath(%q, %q) = %q, want %q", c.dir, c.home, got, c.want)
		}
	}
}
