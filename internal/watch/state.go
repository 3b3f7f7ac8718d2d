package watch

import (
	"bytes"
	"encoding/json"
	"os"
)

// Agent states inferred from a transcript's tail window.
const (
	StateIdle    = "idle"
	StateReading = "reading"
	StateTyping  = "typing"
	StateWaiting = "waiting"
)

type toolState struct {
	state  string
	status string
}

// toolStateMap maps the tool active in the last assistant record to a display
// state. Read-like tools render as reading, write/execute tools as typing.
var toolStateMap = map[string]toolState{
	"Read":            {StateReading, "reading file..."},
	"Grep":            {StateReading, "searching code..."},
	"Glob":            {StateReading, "scanning files..."},
	"WebFetch":        {StateReading, "fetching web page..."},
	"WebSearch":       {StateReading, "searching the web..."},
	"Edit":            {StateTyping, "editing code..."},
	"Write":           {StateTyping, "writing file..."},
	"Bash":            {StateTyping, "running command..."},
	"AskUserQuestion": {StateWaiting, "waiting for input..."},
	"Task":            {StateTyping, "running subagent..."},
	"TaskCreate":      {StateTyping, "creating task..."},
	"SendMessage":     {StateTyping, "sending message..."},
	"EnterPlanMode":   {StateTyping, "planning..."},
	"NotebookEdit":    {StateTyping, "editing notebook..."},
}

var defaultToolState = toolState{StateTyping, "using tool..."}

// InferredState is the result of tail-window state inference.
type InferredState struct {
	State      string
	ToolName   string
	Status     string
	Model      string
	IsSubagent bool
}

var idleState = InferredState{State: StateIdle}

// tailRecord is the minimal shape needed to classify the last record. The
// Type pointer distinguishes a missing key from an empty value.
type tailRecord struct {
	Type    *string `json:"type"`
	Message struct {
		Model   string          `json:"model"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

// InferState reads at most the last 4096 bytes of the file and derives the
// current activity state from them. It never reads the whole file.
func InferState(path string) InferredState {
	fi, err := os.Stat(path)
	if err != nil || fi.Size() == 0 {
		return idleState
	}

	offset := fi.Size() - initialTailBytes
	if offset < 0 {
		offset = 0
	}
	data, _, ok := readFrom(path, offset)
	if !ok {
		return idleState
	}

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	if offset > 0 && len(lines) > 0 {
		// The window cut mid-line; the first line is guaranteed partial.
		lines = lines[1:]
	}

	// Two independent passes: the reverse pass picks the last record, the
	// forward pass detects the subagent marker anywhere in the window.
	result := classifyLastRecord(lines)
	result.IsSubagent = windowHasParentToolUse(lines)
	return result
}

func classifyLastRecord(lines [][]byte) InferredState {
	var rec *tailRecord
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 {
			continue
		}
		var candidate tailRecord
		if err := json.Unmarshal(line, &candidate); err != nil {
			continue
		}
		if candidate.Type == nil {
			continue
		}
		rec = &candidate
		break
	}
	if rec == nil {
		return idleState
	}

	switch *rec.Type {
	case "user":
		return InferredState{State: StateTyping, Status: "generating response..."}
	case "assistant":
		model := rec.Message.Model
		if name := lastToolUseName(rec.Message.Content); name != "" {
			ts, ok := toolStateMap[name]
			if !ok {
				ts = defaultToolState
			}
			return InferredState{State: ts.state, ToolName: name, Status: ts.status, Model: model}
		}
		return InferredState{State: StateTyping, Status: "thinking...", Model: model}
	default:
		// system and anything unrecognized count as idle
		return idleState
	}
}

func lastToolUseName(content json.RawMessage) string {
	var blocks []struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if json.Unmarshal(content, &blocks) != nil {
		return ""
	}
	name := ""
	for _, b := range blocks {
		if b.Type == "tool_use" {
			name = b.Name
		}
	}
	return name
}

func windowHasParentToolUse(lines [][]byte) bool {
	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var obj map[string]json.RawMessage
		if json.Unmarshal(line, &obj) != nil {
			continue
		}
		if _, ok := obj["parentToolUseID"]; ok {
			return true
		}
	}
	return false
}
