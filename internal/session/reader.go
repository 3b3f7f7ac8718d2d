package session

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kyoungmook/claude-dashboard/internal/logparse"
	"github.com/kyoungmook/claude-dashboard/internal/model"
)

// Scanner line buffer sizing: assistant records carry full content blocks
// and can run to megabytes.
const (
	scanBufInitial = 256 * 1024
	scanBufMax     = 4 * 1024 * 1024
)

// ReadSession reads a session file in one pass, returning its metadata and
// every decoded message in file order. Malformed lines are skipped; an
// unreadable file yields empty results.
func ReadSession(path string) (model.SessionMetadata, []model.Message) {
	var (
		meta     model.SessionMetadata
		messages []model.Message
	)

	scanFile(path, func(rec *logparse.Record) bool {
		if !meta.Complete() {
			updateMetadata(&meta, rec)
		}
		if msg := logparse.ToMessage(rec); msg != nil {
			messages = append(messages, *msg)
		}
		return true
	})

	return meta, messages
}

// ReadMetadata extracts only the session metadata, short-circuiting once all
// four fields are populated.
func ReadMetadata(path string) model.SessionMetadata {
	var meta model.SessionMetadata
	scanFile(path, func(rec *logparse.Record) bool {
		updateMetadata(&meta, rec)
		return !meta.Complete()
	})
	return meta
}

// scanFile streams parsed records to fn until fn returns false or the file
// ends. I/O errors are absorbed: the caller sees whatever was read so far.
func scanFile(path string, fn func(*logparse.Record) bool) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scanBufInitial), scanBufMax)
	for scanner.Scan() {
		rec, ok := logparse.ParseRecord(scanner.Bytes())
		if !ok {
			continue
		}
		if !fn(rec) {
			return
		}
	}
}

// updateMetadata applies first-write-wins per field, considering only user
// and assistant records.
func updateMetadata(meta *model.SessionMetadata, rec *logparse.Record) {
	if rec.Type != "user" && rec.Type != "assistant" {
		return
	}
	if meta.SessionID == "" && rec.SessionID != "" {
		meta.SessionID = rec.SessionID
	}
	if meta.GitBranch == "" && rec.GitBranch != "" {
		meta.GitBranch = rec.GitBranch
	}
	if meta.Version == "" && rec.Version != "" {
		meta.Version = rec.Version
	}
	if meta.Cwd == "" && rec.Cwd != "" {
		meta.Cwd = rec.Cwd
	}
}

// BuildSessionInfo rolls a parsed session up into its SessionInfo.
func BuildSessionInfo(path, projectDirName string, meta model.SessionMetadata, messages []model.Message) model.SessionInfo {
	var (
		firstTS, lastTS string
		usage           model.TokenUsage
		visible         int
		toolCalls       int
		toolNames       []string
		modelSet        = make(map[string]struct{})
	)

	for _, m := range messages {
		if m.Timestamp != "" {
			if firstTS == "" || m.Timestamp < firstTS {
				firstTS = m.Timestamp
			}
			if m.Timestamp > lastTS {
				lastTS = m.Timestamp
			}
		}
		if !m.IsMeta {
			visible++
		}
		usage = usage.Add(m.Usage)
		if m.Model != "" {
			modelSet[m.Model] = struct{}{}
		}
		toolCalls += len(m.ToolCalls)
		for _, tc := range m.ToolCalls {
			toolNames = append(toolNames, tc.Name)
		}
	}

	models := make([]string, 0, len(modelSet))
	for m := range modelSet {
		models = append(models, m)
	}
	sort.Strings(models)

	sessionID := meta.SessionID
	if sessionID == "" {
		sessionID = strings.TrimSuffix(filepath.Base(path), ".jsonl")
	}

	return model.SessionInfo{
		SessionID:      sessionID,
		ProjectPath:    DisplayPath(projectDirName),
		ProjectName:    DecodeProjectName(projectDirName),
		FilePath:       path,
		FirstTimestamp: firstTS,
		LastTimestamp:  lastTS,
		MessageCount:   visible,
		TotalUsage:     usage,
		ModelsUsed:     models,
		ToolCallsCount: toolCalls,
		ToolNames:      toolNames,
		GitBranch:      meta.GitBranch,
		Version:        meta.Version,
	}
}
