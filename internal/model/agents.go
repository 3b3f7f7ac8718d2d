package model

// AgentDefinition is a custom agent parsed from ~/.claude/agents/*.md
// frontmatter.
type AgentDefinition struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
	Model       string   `json:"model"`
}

// SubagentActivity is the rollup of one subagent JSONL file.
type SubagentActivity struct {
	SessionID         string   `json:"session_id"`
	AgentID           string   `json:"agent_id"`
	ProjectName       string   `json:"project_name"`
	MessageCount      int      `json:"message_count"`
	TotalInputTokens  int64    `json:"total_input_tokens"`
	TotalOutputTokens int64    `json:"total_output_tokens"`
	ToolsUsed         []string `json:"tools_used"`
	FirstTimestamp    string   `json:"first_timestamp"`
	LastTimestamp     string   `json:"last_timestamp"`
	Model             string   `json:"model"`
}

// ToolCount pairs a tool name with its invocation count.
type ToolCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AgentStats aggregates subagent invocations by inferred agent type.
type AgentStats struct {
	AgentName         string      `json:"agent_name"`
	Description       string      `json:"description"`
	InvocationCount   int         `json:"invocation_count"`
	TotalInputTokens  int64       `json:"total_input_tokens"`
	TotalOutputTokens int64       `json:"total_output_tokens"`
	ToolCounts        []ToolCount `json:"tool_counts"`
	Model             string      `json:"model"`
}

// ReplayEvent is one entry in a session's merged subagent timeline.
type ReplayEvent struct {
	Timestamp  string `json:"timestamp"`
	AgentID    string `json:"agent_id"`
	AgentLabel string `json:"agent_label"`
	EventType  string `json:"event_type"`
	Content    string `json:"content"`
	ToolName   string `json:"tool_name"`
	Model      string `json:"model"`
}

// TeamSession is a lead session that spawned subagents.
type TeamSession struct {
	SessionID      string   `json:"session_id"`
	ProjectName    string   `json:"project_name"`
	AgentCount     int      `json:"agent_count"`
	MessageCount   int      `json:"message_count"`
	FirstTimestamp string   `json:"first_timestamp"`
	LastTimestamp  string   `json:"last_timestamp"`
	AgentIDs       []string `json:"agent_ids"`
}

// TeamMember is one member entry in a team config.
type TeamMember struct {
	Name      string `json:"name"`
	AgentID   string `json:"agent_id"`
	AgentType string `json:"agent_type"`
}

// Team is a named group of sessions defined by teams/<name>/config.json.
type Team struct {
	TeamName string       `json:"team_name"`
	Members  []TeamMember `json:"members"`
}

// TaskItem is one task file under tasks/<list-id>/.
type TaskItem struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	ActiveForm  string   `json:"active_form"`
	Blocks      []string `json:"blocks"`
	BlockedBy   []string `json:"blocked_by"`
}

// TaskList groups the tasks of one list directory.
type TaskList struct {
	ListID       string     `json:"list_id"`
	Tasks        []TaskItem `json:"tasks"`
	LastModified string     `json:"last_modified"`
}

// AgentState is the inferred live state of one running agent, derived from
// the tail bytes of its transcript.
type AgentState struct {
	State      string `json:"state"` // idle | reading | typing | waiting
	ToolName   string `json:"tool_name"`
	ToolStatus string `json:"tool_status"`
	Model      string `json:"model"`
	IsSubagent bool   `json:"is_subagent"`
}

// PixelAgentState is one desk on the pixel-office live board.
type PixelAgentState struct {
	AgentID        string `json:"agent_id"`
	ProjectName    string `json:"project_name"`
	State          string `json:"state"`
	ToolName       string `json:"tool_name"`
	ToolStatus     string `json:"tool_status"`
	Model          string `json:"model"`
	DeskIndex      int    `json:"desk_index"`
	LastActivityTS string `json:"last_activity_ts"`
	SessionID      string `json:"session_id"`
	IsSubagent     bool   `json:"is_subagent"`
	TeamName       string `json:"team_name"`
}
