// Package model defines domain types for transcript messages, sessions, and
// the aggregate snapshots served by the dashboard.
package model

// TokenUsage holds the four token counters reported per API response.
// Values combine by element-wise addition.
type TokenUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
}

// Total returns the sum of all four counters.
func (u TokenUsage) Total() int64 {
	return u.InputTokens + u.OutputTokens + u.CacheReadInputTokens + u.CacheCreationInputTokens
}

// Add returns the element-wise sum of two usages.
func (u TokenUsage) Add(o TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:              u.InputTokens + o.InputTokens,
		OutputTokens:             u.OutputTokens + o.OutputTokens,
		CacheReadInputTokens:     u.CacheReadInputTokens + o.CacheReadInputTokens,
		CacheCreationInputTokens: u.CacheCreationInputTokens + o.CacheCreationInputTokens,
	}
}

// ToolCall is one tool invocation extracted from an assistant message.
type ToolCall struct {
	Name         string `json:"name"`
	ToolUseID    string `json:"tool_use_id"`
	InputPreview string `json:"input_preview"`
}

// Message is the decoded form of one transcript record.
type Message struct {
	Type        string     `json:"type"`
	Role        string     `json:"role"`
	ContentText string     `json:"content_text"`
	Model       string     `json:"model"`
	Usage       TokenUsage `json:"usage"`
	ToolCalls   []ToolCall `json:"tool_calls"`
	Timestamp   string     `json:"timestamp"`
	UUID        string     `json:"uuid"`
	IsMeta      bool       `json:"is_meta"`
	Subtype     string     `json:"subtype"`
	DurationMs  int64      `json:"duration_ms"`
}

// LiveEvent is the lightweight projection of a newly appended record,
// emitted on the live stream. It carries previews, not full content.
type LiveEvent struct {
	Timestamp      string   `json:"timestamp"`
	ProjectName    string   `json:"project_name"`
	SessionID      string   `json:"session_id"`
	MsgType        string   `json:"msg_type"`
	ContentPreview string   `json:"content_preview"`
	ToolCalls      []string `json:"tool_calls"`
	OutputTokens   int64    `json:"output_tokens"`
	DurationMs     int64    `json:"duration_ms"`
	Model          string   `json:"model"`
}
