package watch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeState(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sess.jsonl")
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInferState_MissingOrEmpty(t *testing.T) {
	if got := InferState(filepath.Join(t.TempDir(), "gone.jsonl")); got.State != StateIdle {
		t.Errorf("missing file state = %q, want idle", got.State)
	}
	if got := InferState(writeState(t)); got.State != StateIdle {
		t.Errorf("empty file state = %q, want idle", got.State)
	}
}

func TestInferState_UserRecord(t *testing.T) {
	got := InferState(writeState(t, `{"type":"user","message":{"content":"hi"}}`))
	if got.State != StateTyping || got.Status != "generating response..." {
		t.Errorf("got %+v", got)
	}
}

func TestInferState_AssistantThinking(t *testing.T) {
	got := InferState(writeState(t,
		`{"type":"assistant","message":{"model":"claude-opus-4-5","content":[{"type":"text","text":"..."}]}}`))
	if got.State != StateTyping || got.Status != "thinking..." {
		t.Errorf("got %+v", got)
	}
	if got.Model != "claude-opus-4-5" {
		t.Errorf("Model = %q", got.Model)
	}
}

func TestInferState_ToolStates(t *testing.T) {
	cases := []struct {
		tool, wantState string
	}{
		{"Read", StateReading},
		{"Grep", StateReading},
		{"Edit", StateTyping},
		{"Bash", StateTyping},
		{"AskUserQuestion", StateWaiting},
		{"SomeFutureTool", StateTyping},
	}
	for _, c := range cases {
		got := InferState(writeState(t,
			`{"type":"assistant","message":{"content":[{"type":"tool_use","name":"`+c.tool+`"}]}}`))
		if got.State != c.wantState || got.ToolName != c.tool {
			t.Errorf("tool %s: got %+v, want state %s", c.tool, got, c.wantState)
		}
	}
}

func TestInferState_LastToolUseWins(t *testing.T) {
	got := InferState(writeState(t,
		`{"type":"assistant","message":{"content":[{"type":"tool_use","name":"Read"},{"type":"tool_use","name":"Edit"}]}}`))
	if got.ToolName != "Edit" || got.State != StateTyping {
		t.Errorf("got %+v, want last tool_use block", got)
	}
}

func TestInferState_SystemIsIdle(t *testing.T) {
	got := InferState(writeState(t, `{"type":"system","subtype":"turn_duration","durationMs":100}`))
	if got.State != StateIdle {
		t.Errorf("system record state = %q, want idle", got.State)
	}
}

func TestInferState_SkipsTrailingGarbage(t *testing.T) {
	got := InferState(writeState(t,
		`{"type":"user","message":{"content":"hi"}}`,
		`not json at all`))
	if got.State != StateTyping {
		t.Errorf("state = %q, want typing from last valid record", got.State)
	}
}

func TestInferState_SubagentMarker(t *testing.T) {
	got := InferState(writeState(t,
		`{"type":"user","parentToolUseID":"tu_123","message":{"content":"spawned"}}`,
		`{"type":"assistant","message":{"content":[{"type":"tool_use","name":"Edit"}]}}`))
	if !got.IsSubagent {
		t.Error("expected subagent marker to be detected")
	}
	if got.State != StateTyping || got.ToolName != "Edit" {
		t.Errorf("got %+v", got)
	}

	got = InferState(writeState(t, `{"type":"user","message":{"content":"plain"}}`))
	if got.IsSubagent {
		t.Error("subagent reported without marker")
	}
}

func TestInferState_LargeFileUsesTailOnly(t *testing.T) {
	filler := `{"type":"assistant","message":{"content":[{"type":"tool_use","name":"Read"}]}}`
	lines := make([]string, 0, 200)
	for i := 0; i < 199; i++ {
		lines = append(lines, filler)
	}
	lines = append(lines, `{"type":"user","message":{"content":"latest"}}`)

	got := InferState(writeState(t, lines...))
	if got.State != StateTyping || got.Status != "generating response..." {
		t.Errorf("got %+v, want classification from the final record", got)
	}
}
