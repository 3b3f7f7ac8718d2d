package model

// DailyActivity holds per-day message/session/tool counts.
type DailyActivity struct {
	Date          string `json:"date"`
	MessageCount  int    `json:"message_count"`
	SessionCount  int    `json:"session_count"`
	ToolCallCount int    `json:"tool_call_count"`
}

// ModelUsageStats holds token totals and cost for a single model.
type ModelUsageStats struct {
	ModelID                  string  `json:"model_id"`
	DisplayName              string  `json:"display_name"`
	InputTokens              int64   `json:"input_tokens"`
	OutputTokens             int64   `json:"output_tokens"`
	CacheReadInputTokens     int64   `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64   `json:"cache_creation_input_tokens"`
	CostUSD                  float64 `json:"cost_usd"`
}

// LongestSession identifies the longest recorded session.
type LongestSession struct {
	SessionID     string  `json:"session_id"`
	DurationHours float64 `json:"duration_hours"`
	MessageCount  int     `json:"message_count"`
}

// OverviewStats is the top-level dashboard summary.
type OverviewStats struct {
	TotalSessions         int               `json:"total_sessions"`
	TotalMessages         int               `json:"total_messages"`
	TotalToolCalls        int               `json:"total_tool_calls"`
	FirstSessionDate      string            `json:"first_session_date"`
	DailyActivity         []DailyActivity   `json:"daily_activity"`
	ModelUsage            []ModelUsageStats `json:"model_usage"`
	HourCounts            map[string]int    `json:"hour_counts"`
	TotalCostUSD          float64           `json:"total_cost_usd"`
	LongestSession        LongestSession    `json:"longest_session"`
	AvgMessagesPerSession float64           `json:"avg_messages_per_session"`
	ActiveDays            int               `json:"active_days"`
}

// ProjectStats is the per-project rollup across sessions.
type ProjectStats struct {
	ProjectPath    string     `json:"project_path"`
	ProjectName    string     `json:"project_name"`
	SessionCount   int        `json:"session_count"`
	TotalMessages  int        `json:"total_messages"`
	TotalUsage     TokenUsage `json:"total_usage"`
	TotalCostUSD   float64    `json:"total_cost_usd"`
	ToolCallsCount int        `json:"tool_calls_count"`
	ModelsUsed     []string   `json:"models_used"`
	LastActivity   string     `json:"last_activity"`
}

// ToolUsage holds call frequency for one tool across the corpus.
type ToolUsage struct {
	Name          string  `json:"name"`
	CallCount     int     `json:"call_count"`
	SessionCount  int     `json:"session_count"`
	AvgPerSession float64 `json:"avg_per_session"`
}

// SessionToolUsage lists a session's tool-call volume for the tools page.
type SessionToolUsage struct {
	SessionID      string `json:"session_id"`
	ProjectName    string `json:"project_name"`
	ToolCallsCount int    `json:"tool_calls_count"`
	Date           string `json:"date"`
}

// DailyTokens holds one day's token totals by kind.
type DailyTokens struct {
	Date          string `json:"date"`
	Input         int64  `json:"input"`
	Output        int64  `json:"output"`
	CacheRead     int64  `json:"cache_read"`
	CacheCreation int64  `json:"cache_creation"`
}

// ModelCost holds session-derived token totals and cost for one model.
type ModelCost struct {
	ModelID             string  `json:"model_id"`
	DisplayName         string  `json:"display_name"`
	InputTokens         int64   `json:"input_tokens"`
	OutputTokens        int64   `json:"output_tokens"`
	CacheReadTokens     int64   `json:"cache_read_tokens"`
	CacheCreationTokens int64   `json:"cache_creation_tokens"`
	CostUSD             float64 `json:"cost_usd"`
}

// CacheEfficiency summarizes prompt-cache effectiveness across the corpus.
type CacheEfficiency struct {
	CacheReadTokens     int64   `json:"cache_read_tokens"`
	CacheCreationTokens int64   `json:"cache_creation_tokens"`
	DirectInputTokens   int64   `json:"direct_input_tokens"`
	TotalInputTokens    int64   `json:"total_input_tokens"`
	EfficiencyPct       float64 `json:"efficiency_pct"`
}
