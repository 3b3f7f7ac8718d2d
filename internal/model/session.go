package model

// SessionMetadata holds the per-session fields filled opportunistically while
// scanning a transcript. Each field keeps the first non-empty value seen.
type SessionMetadata struct {
	SessionID string
	GitBranch string
	Version   string
	Cwd       string
}

// Complete reports whether every metadata field has been populated.
func (m SessionMetadata) Complete() bool {
	return m.SessionID != "" && m.GitBranch != "" && m.Version != "" && m.Cwd != ""
}

// SessionInfo is the rollup of one session JSONL file.
//
// Timestamps are the raw ISO-8601 strings from the log, compared
// lexicographically. The format is fixed-width zero-padded UTC, so string
// min/max equals chronological min/max without a datetime parse.
type SessionInfo struct {
	SessionID      string     `json:"session_id"`
	ProjectPath    string     `json:"project_path"`
	ProjectName    string     `json:"project_name"`
	FilePath       string     `json:"file_path"`
	FirstTimestamp string     `json:"first_timestamp"`
	LastTimestamp  string     `json:"last_timestamp"`
	MessageCount   int        `json:"message_count"`
	TotalUsage     TokenUsage `json:"total_usage"`
	ModelsUsed     []string   `json:"models_used"`
	ToolCallsCount int        `json:"tool_calls_count"`
	ToolNames      []string   `json:"tool_names"`
	GitBranch      string     `json:"git_branch"`
	Version        string     `json:"version"`
}
