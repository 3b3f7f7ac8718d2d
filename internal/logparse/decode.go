// Package logparse decodes raw transcript JSONL lines into typed messages.
// Decoding is tolerant by construction: unknown record types are dropped,
// missing fields default, and a malformed field never rejects the rest of
// the record.
package logparse

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/kyoungmook/claude-dashboard/internal/model"
)

const (
	thinkingPreviewChars  = 200
	toolInputPreviewChars = 100
)

// Record is the wire shape of one transcript line. Only the fields this
// system consumes are declared; everything else on the line is ignored.
type Record struct {
	Type       string          `json:"type"`
	Subtype    string          `json:"subtype"`
	SessionID  string          `json:"sessionId"`
	GitBranch  string          `json:"gitBranch"`
	Version    string          `json:"version"`
	Cwd        string          `json:"cwd"`
	Timestamp  string          `json:"timestamp"`
	UUID       string          `json:"uuid"`
	IsMeta     bool            `json:"isMeta"`
	DurationMs int64           `json:"durationMs"`
	Message    *RecordMessage  `json:"message"`
	ParentTool json.RawMessage `json:"parentToolUseID"`
}

// HasParentToolUse reports whether the record carries a parentToolUseID key,
// the marker of a sub-agent transcript.
func (r *Record) HasParentToolUse() bool {
	return r.ParentTool != nil
}

// RecordMessage is the message envelope within a record.
type RecordMessage struct {
	Role    string          `json:"role"`
	Model   string          `json:"model"`
	Content json.RawMessage `json:"content"`
	Usage   *RecordUsage    `json:"usage"`
}

// RecordUsage holds raw token counts from the API response.
type RecordUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
}

// contentBlock is one element of a structured content list.
type contentBlock struct {
	Type     string          `json:"type"`
	Text     string          `json:"text"`
	Thinking string          `json:"thinking"`
	Name     string          `json:"name"`
	ID       string          `json:"id"`
	Input    json.RawMessage `json:"input"`
}

// ParseRecord decodes one JSONL line into a Record. A line that is not a
// JSON object is rejected; a field of the wrong type is tolerated and left
// at its zero value.
func ParseRecord(line []byte) (*Record, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, false
		}
		// Field-level type mismatch: the rest of the record decoded fine.
	}
	return &rec, true
}

// Decode parses one JSONL line and converts it to a Message. The second
// return is false when the line is malformed or its type is not one of
// user/assistant/system.
func Decode(line []byte) (*model.Message, bool) {
	rec, ok := ParseRecord(line)
	if !ok {
		return nil, false
	}
	msg := ToMessage(rec)
	if msg == nil {
		return nil, false
	}
	return msg, true
}

// ToMessage converts a parsed record into a Message, or nil when the record
// type carries no conversational meaning (snapshots, progress, etc.).
func ToMessage(rec *Record) *model.Message {
	switch rec.Type {
	case "user", "assistant", "system":
	default:
		return nil
	}

	var (
		role    = rec.Type
		modelID string
		content json.RawMessage
		usage   model.TokenUsage
	)
	if rec.Message != nil {
		if rec.Message.Role != "" {
			role = rec.Message.Role
		}
		modelID = rec.Message.Model
		content = rec.Message.Content
		usage = extractUsage(rec.Message.Usage)
	}

	var toolCalls []model.ToolCall
	if rec.Type == "assistant" {
		toolCalls = extractToolCalls(content)
	}

	return &model.Message{
		Type:        rec.Type,
		Role:        role,
		ContentText: extractText(content),
		Model:       modelID,
		Usage:       usage,
		ToolCalls:   toolCalls,
		Timestamp:   rec.Timestamp,
		UUID:        rec.UUID,
		IsMeta:      rec.IsMeta,
		Subtype:     rec.Subtype,
		DurationMs:  rec.DurationMs,
	}
}

func extractUsage(u *RecordUsage) model.TokenUsage {
	if u == nil {
		return model.TokenUsage{}
	}
	return model.TokenUsage{
		InputTokens:              u.InputTokens,
		OutputTokens:             u.OutputTokens,
		CacheReadInputTokens:     u.CacheReadInputTokens,
		CacheCreationInputTokens: u.CacheCreationInputTokens,
	}
}

// extractText flattens a content value into display text. A plain string is
// used verbatim; a block list joins text blocks with newlines and renders
// thinking blocks as a truncated bracketed preview. Other block kinds are
// ignored.
func extractText(content json.RawMessage) string {
	if len(content) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(content, &elems); err != nil {
		return ""
	}

	var parts []string
	for _, elem := range elems {
		var block contentBlock
		if err := json.Unmarshal(elem, &block); err == nil && block.Type != "" {
			switch block.Type {
			case "text":
				parts = append(parts, block.Text)
			case "thinking":
				parts = append(parts, "[thinking] "+truncate(block.Thinking, thinkingPreviewChars))
			}
			continue
		}
		var str string
		if err := json.Unmarshal(elem, &str); err == nil {
			parts = append(parts, str)
		}
	}
	return strings.Join(parts, "\n")
}

// extractToolCalls pulls tool_use blocks out of an assistant content list.
func extractToolCalls(content json.RawMessage) []model.ToolCall {
	if len(content) == 0 {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(content, &elems); err != nil {
		return nil
	}

	var calls []model.ToolCall
	for _, elem := range elems {
		var block contentBlock
		if err := json.Unmarshal(elem, &block); err != nil || block.Type != "tool_use" {
			continue
		}
		name := block.Name
		if name == "" {
			name = "unknown"
		}
		calls = append(calls, model.ToolCall{
			Name:         name,
			ToolUseID:    block.ID,
			InputPreview: previewInput(block.Input),
		})
	}
	return calls
}

// previewInput returns the first 100 characters of the compact JSON encoding
// of a tool input, or "" when the input is absent or empty.
func previewInput(input json.RawMessage) string {
	trimmed := bytes.TrimSpace(input)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return ""
	}
	return truncate(buf.String(), toolInputPreviewChars)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
