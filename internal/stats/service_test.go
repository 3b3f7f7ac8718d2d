package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kyoungmook/claude-dashboard/internal/config"
	"github.com/kyoungmook/claude-dashboard/internal/session"
)

const (
	leadSessionID = "aaaa1111-2222-3333-4444-555566667777"
	soloSessionID = "bbbb1111-2222-3333-4444-555566667777"
)

// newTestService builds a Service over claudeDir with UTC display times and
// zero cache TTLs so every call recomputes from disk.
func newTestService(t *testing.T, claudeDir string) *Service {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.General.ClaudeDir = claudeDir
	cfg.General.DisplayTimezone = "UTC"
	cfg.Cache = config.CacheConfig{}
	return New(cfg, session.NewCorpus(claudeDir, nil))
}

// writeLines writes a JSONL file, creating parent directories.
func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

// transcriptLines builds a minimal two-message session transcript. The user
// line is padded past the corpus size floor.
func transcriptLines(sessionID, ts, modelID string, usageJSON string) []string {
	return []string{
		`{"type":"user","sessionId":"` + sessionID + `","timestamp":"` + ts +
			`","message":{"role":"user","content":"` + strings.Repeat("q", 80) + `"}}`,
		`{"type":"assistant","timestamp":"` + ts + `","message":{"role":"assistant","model":"` + modelID +
			`","content":[{"type":"tool_use","id":"t1","name":"Read","input":{"file_path":"/a"}}],"usage":` + usageJSON + `}}`,
	}
}

func sessionPath(claudeDir, projectDirName, sessionID string) string {
	return filepath.Join(claudeDir, "projects", projectDirName, sessionID+".jsonl")
}
