package stats

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kyoungmook/claude-dashboard/internal/model"
	"github.com/kyoungmook/claude-dashboard/internal/session"
)

const (
	replayContentChars = 500
	replayCommandChars = 200
	agentLabelChars    = 7
)

// subRecord is the lenient wire shape of one subagent JSONL line.
type subRecord struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Message   *struct {
		Model   string          `json:"model"`
		Content json.RawMessage `json:"content"`
		Usage   *struct {
			InputTokens              int64 `json:"input_tokens"`
			OutputTokens             int64 `json:"output_tokens"`
			CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
			CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

// eachSubLine streams the parseable lines of one subagent file. Scan buffers
// match the session reader's so oversized lines do not abort the walk.
func eachSubLine(path string, fn func(rec subRecord)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 256*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec subRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				continue
			}
		}
		fn(rec)
	}
	return nil
}

var frontmatterTools = regexp.MustCompile(`"([^"]+)"`)

// parseAgentDefinition reads the YAML-ish frontmatter block of one
// agents/*.md file. Files without a name field are skipped.
func parseAgentDefinition(path string) *model.AgentDefinition {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	text := string(data)
	if !strings.HasPrefix(text, "---") {
		return nil
	}
	end := strings.Index(text[3:], "---")
	if end == -1 {
		return nil
	}

	var def model.AgentDefinition
	for _, line := range strings.Split(text[3:3+end], "\n") {
		switch {
		case strings.HasPrefix(line, "name:"):
			def.Name = strings.TrimSpace(strings.TrimPrefix(line, "name:"))
		case strings.HasPrefix(line, "description:"):
			def.Description = strings.TrimSpace(strings.TrimPrefix(line, "description:"))
		case strings.HasPrefix(line, "model:"):
			def.Model = strings.TrimSpace(strings.TrimPrefix(line, "model:"))
		case strings.HasPrefix(line, "tools:"):
			for _, m := range frontmatterTools.FindAllStringSubmatch(line, -1) {
				def.Tools = append(def.Tools, m[1])
			}
		}
	}
	if def.Name == "" {
		return nil
	}
	return &def
}

// AgentDefinitions lists the custom agents defined under agents/*.md.
func (s *Service) AgentDefinitions() []model.AgentDefinition {
	return cached(s, "agent_definitions", s.overviewTTL(), func() []model.AgentDefinition {
		entries, err := os.ReadDir(s.agentsDir())
		if err != nil {
			return nil
		}
		var out []model.AgentDefinition
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			if def := parseAgentDefinition(filepath.Join(s.agentsDir(), e.Name())); def != nil {
				out = append(out, *def)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	})
}

// SubagentActivities scans every <session>/subagents/*.jsonl file into a
// per-invocation rollup, most recent first.
func (s *Service) SubagentActivities() []model.SubagentActivity {
	return cached(s, "subagent_activities", s.agentsTTL(), func() []model.SubagentActivity {
		var out []model.SubagentActivity
		s.eachSubagentDir(func(projectName, sessionID, subagentsDir string) {
			files, err := os.ReadDir(subagentsDir)
			if err != nil {
				return
			}
			for _, f := range files {
				if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
					continue
				}
				path := filepath.Join(subagentsDir, f.Name())
				if act := parseSubagentFile(path, projectName, sessionID); act != nil {
					out = append(out, *act)
				}
			}
		})
		sort.Slice(out, func(i, j int) bool { return out[i].LastTimestamp > out[j].LastTimestamp })
		return out
	})
}

func (s *Service) eachSubagentDir(fn func(projectName, sessionID, subagentsDir string)) {
	entries, err := os.ReadDir(s.projectsDir())
	if err != nil {
		return
	}
	for _, project := range entries {
		if !project.IsDir() {
			continue
		}
		projectName := session.DecodeProjectName(project.Name())
		projectDir := filepath.Join(s.projectsDir(), project.Name())
		sessions, err := os.ReadDir(projectDir)
		if err != nil {
			continue
		}
		for _, sess := range sessions {
			if !sess.IsDir() {
				continue
			}
			subagentsDir := filepath.Join(projectDir, sess.Name(), "subagents")
			if fi, err := os.Stat(subagentsDir); err != nil || !fi.IsDir() {
				continue
			}
			fn(projectName, sess.Name(), subagentsDir)
		}
	}
}

func parseSubagentFile(path, projectName, sessionID string) *model.SubagentActivity {
	act := model.SubagentActivity{
		SessionID:   sessionID,
		AgentID:     strings.TrimSuffix(filepath.Base(path), ".jsonl"),
		ProjectName: projectName,
	}
	tools := make(map[string]bool)

	err := eachSubLine(path, func(rec subRecord) {
		act.MessageCount++
		if ts := rec.Timestamp; ts != "" {
			if act.FirstTimestamp == "" || ts < act.FirstTimestamp {
				act.FirstTimestamp = ts
			}
			if ts > act.LastTimestamp {
				act.LastTimestamp = ts
			}
		}
		msg := rec.Message
		if msg == nil {
			return
		}
		if act.Model == "" && msg.Model != "" {
			act.Model = msg.Model
		}
		if u := msg.Usage; u != nil {
			act.TotalInputTokens += u.InputTokens + u.CacheReadInputTokens + u.CacheCreationInputTokens
			act.TotalOutputTokens += u.OutputTokens
		}
		for _, b := range contentBlocks(msg.Content) {
			if b.Type == "tool_use" && b.Name != "" {
				tools[b.Name] = true
			}
		}
	})
	if err != nil || act.MessageCount == 0 {
		return nil
	}

	for name := range tools {
		act.ToolsUsed = append(act.ToolsUsed, name)
	}
	sort.Strings(act.ToolsUsed)
	return &act
}

// InferAgentType classifies a subagent file by its id. This is a filename
// heuristic, not an authoritative field.
func InferAgentType(agentID string) string {
	clean := strings.ReplaceAll(agentID, "agent-", "")
	if strings.Contains(clean, "prompt_suggestion") {
		return "prompt-suggestion"
	}
	return "subagent"
}

// AgentAnalytics aggregates subagent activity by inferred agent type.
func (s *Service) AgentAnalytics() []model.AgentStats {
	return cached(s, "agent_analytics", s.agentsTTL(), func() []model.AgentStats {
		definitions := make(map[string]model.AgentDefinition)
		for _, d := range s.AgentDefinitions() {
			definitions[d.Name] = d
		}

		type bucket struct {
			stats model.AgentStats
			tools map[string]int
		}
		agents := make(map[string]*bucket)
		for _, act := range s.SubagentActivities() {
			agentType := InferAgentType(act.AgentID)
			b := agents[agentType]
			if b == nil {
				b = &bucket{
					stats: model.AgentStats{AgentName: agentType},
					tools: make(map[string]int),
				}
				if def, ok := definitions[agentType]; ok {
					b.stats.Description = def.Description
					b.stats.Model = def.Model
				}
				agents[agentType] = b
			}
			b.stats.InvocationCount++
			b.stats.TotalInputTokens += act.TotalInputTokens
			b.stats.TotalOutputTokens += act.TotalOutputTokens
			for _, tool := range act.ToolsUsed {
				b.tools[tool]++
			}
		}

		out := make([]model.AgentStats, 0, len(agents))
		for _, b := range agents {
			for name, count := range b.tools {
				b.stats.ToolCounts = append(b.stats.ToolCounts, model.ToolCount{Name: name, Count: count})
			}
			sort.Slice(b.stats.ToolCounts, func(i, j int) bool {
				if b.stats.ToolCounts[i].Count != b.stats.ToolCounts[j].Count {
					return b.stats.ToolCounts[i].Count > b.stats.ToolCounts[j].Count
				}
				return b.stats.ToolCounts[i].Name < b.stats.ToolCounts[j].Name
			})
			out = append(out, b.stats)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].InvocationCount != out[j].InvocationCount {
				return out[i].InvocationCount > out[j].InvocationCount
			}
			return out[i].AgentName < out[j].AgentName
		})
		return out
	})
}

// AgentDetail returns the definition, aggregate stats, invocation list, and
// per-project distribution for one agent type.
func (s *Service) AgentDetail(agentName string) (*model.AgentDefinition, *model.AgentStats, []model.SubagentActivity, map[string]int) {
	var def *model.AgentDefinition
	for _, d := range s.AgentDefinitions() {
		if d.Name == agentName {
			d := d
			def = &d
			break
		}
	}

	var agentStats *model.AgentStats
	for _, a := range s.AgentAnalytics() {
		if a.AgentName == agentName {
			a := a
			agentStats = &a
			break
		}
	}

	var activities []model.SubagentActivity
	projectDist := make(map[string]int)
	for _, act := range s.SubagentActivities() {
		if InferAgentType(act.AgentID) != agentName {
			continue
		}
		activities = append(activities, act)
		projectDist[act.ProjectName]++
	}
	return def, agentStats, activities, projectDist
}

// TeamSessions lists the lead sessions that spawned subagents.
func (s *Service) TeamSessions() []model.TeamSession {
	return cached(s, "team_sessions", s.agentsTTL(), func() []model.TeamSession {
		var out []model.TeamSession
		s.eachSubagentDir(func(projectName, sessionID, subagentsDir string) {
			files, err := os.ReadDir(subagentsDir)
			if err != nil {
				return
			}
			ts := model.TeamSession{SessionID: sessionID, ProjectName: projectName}
			for _, f := range files {
				if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
					continue
				}
				ts.AgentIDs = append(ts.AgentIDs, strings.TrimSuffix(f.Name(), ".jsonl"))
				_ = eachSubLine(filepath.Join(subagentsDir, f.Name()), func(rec subRecord) {
					ts.MessageCount++
					if t := rec.Timestamp; t != "" {
						if ts.FirstTimestamp == "" || t < ts.FirstTimestamp {
							ts.FirstTimestamp = t
						}
						if t > ts.LastTimestamp {
							ts.LastTimestamp = t
						}
					}
				})
			}
			if len(ts.AgentIDs) == 0 {
				return
			}
			ts.AgentCount = len(ts.AgentIDs)
			sort.Strings(ts.AgentIDs)
			out = append(out, ts)
		})
		sort.Slice(out, func(i, j int) bool { return out[i].LastTimestamp > out[j].LastTimestamp })
		return out
	})
}

// ReplayEvents merges the subagent files of one lead session into a single
// chronological timeline of task, message, and tool_use events.
func (s *Service) ReplayEvents(sessionID string) []model.ReplayEvent {
	subagentsDir := s.findSubagentsDir(sessionID)
	if subagentsDir == "" {
		return nil
	}
	files, err := os.ReadDir(subagentsDir)
	if err != nil {
		return nil
	}

	var events []model.ReplayEvent
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
			continue
		}
		agentID := strings.TrimSuffix(f.Name(), ".jsonl")
		label := strings.ReplaceAll(agentID, "agent-", "")
		if len(label) > agentLabelChars {
			label = label[:agentLabelChars]
		}

		_ = eachSubLine(filepath.Join(subagentsDir, f.Name()), func(rec subRecord) {
			if rec.Message == nil {
				return
			}
			events = append(events, replayFromRecord(rec, agentID, label)...)
		})
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp < events[j].Timestamp })
	return events
}

func replayFromRecord(rec subRecord, agentID, label string) []model.ReplayEvent {
	base := model.ReplayEvent{
		Timestamp:  rec.Timestamp,
		AgentID:    agentID,
		AgentLabel: label,
	}
	content := rec.Message.Content

	switch rec.Type {
	case "user":
		text := flattenReplayText(content)
		if text == "" {
			return nil
		}
		ev := base
		ev.EventType = "task"
		ev.Content = truncateChars(text, replayContentChars)
		return []model.ReplayEvent{ev}

	case "assistant":
		var events []model.ReplayEvent
		blocks := contentBlocks(content)
		if blocks == nil {
			// a plain string assistant message is a single message event
			var text string
			if json.Unmarshal(content, &text) == nil && strings.TrimSpace(text) != "" {
				ev := base
				ev.EventType = "message"
				ev.Content = truncateChars(strings.TrimSpace(text), replayContentChars)
				ev.Model = rec.Message.Model
				events = append(events, ev)
			}
			return events
		}
		for _, b := range blocks {
			switch b.Type {
			case "text":
				text := strings.TrimSpace(b.Text)
				if text == "" {
					continue
				}
				ev := base
				ev.EventType = "message"
				ev.Content = truncateChars(text, replayContentChars)
				ev.Model = rec.Message.Model
				events = append(events, ev)
			case "tool_use":
				ev := base
				ev.EventType = "tool_use"
				ev.ToolName = b.Name
				ev.Content = previewToolInput(b.Input)
				ev.Model = rec.Message.Model
				events = append(events, ev)
			}
		}
		return events
	}
	return nil
}

type replayBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

func contentBlocks(content json.RawMessage) []replayBlock {
	var blocks []replayBlock
	if json.Unmarshal(content, &blocks) != nil {
		return nil
	}
	return blocks
}

// flattenReplayText joins the text blocks of a content value; a plain string
// is used as-is.
func flattenReplayText(content json.RawMessage) string {
	var text string
	if json.Unmarshal(content, &text) == nil {
		return strings.TrimSpace(text)
	}
	var raw []json.RawMessage
	if json.Unmarshal(content, &raw) != nil {
		return ""
	}
	var parts []string
	for _, el := range raw {
		var b replayBlock
		if json.Unmarshal(el, &b) == nil && b.Type == "text" {
			parts = append(parts, b.Text)
			continue
		}
		var s string
		if json.Unmarshal(el, &s) == nil {
			parts = append(parts, s)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// previewToolInput picks the most descriptive input field: file path, command
// head, pattern, or query. First match wins; empty otherwise.
func previewToolInput(input json.RawMessage) string {
	var fields map[string]json.RawMessage
	if json.Unmarshal(input, &fields) != nil {
		return ""
	}
	str := func(key string) (string, bool) {
		raw, ok := fields[key]
		if !ok {
			return "", false
		}
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return "", true
		}
		return s, true
	}
	if path, ok := str("file_path"); ok {
		return path
	}
	if cmd, ok := str("command"); ok {
		return truncateChars(cmd, replayCommandChars)
	}
	if pat, ok := str("pattern"); ok {
		return "pattern: " + pat
	}
	if q, ok := str("query"); ok {
		return "query: " + q
	}
	return ""
}

func (s *Service) findSubagentsDir(sessionID string) string {
	if !session.ValidSessionID(sessionID) {
		return ""
	}
	root, err := filepath.Abs(s.projectsDir())
	if err != nil {
		return ""
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		candidate := filepath.Join(root, e.Name(), sessionID, "subagents")
		resolved, err := filepath.Abs(candidate)
		if err != nil || !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
			continue
		}
		if fi, err := os.Stat(resolved); err == nil && fi.IsDir() {
			return resolved
		}
	}
	return ""
}

func truncateChars(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
