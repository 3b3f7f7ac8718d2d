// Package store provides a SQLite-backed cache of parsed session rollups so
// cold starts skip reparsing unchanged transcript files.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kyoungmook/claude-dashboard/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store persists SessionInfo rows keyed by transcript file path.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// TrackedFiles returns file_path -> FileInfo for every stored session.
func (s *Store) TrackedFiles() (map[string]FileInfo, error) {
	rows, err := s.db.Query("SELECT file_path, file_mtime_ns, file_size FROM sessions")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveSession inserts or replaces the rollup for one transcript file.
func (s *Store) SaveSession(info model.SessionInfo, mtimeNs, sizeBytes int64) error {
	toolNames, err := json.Marshal(info.ToolNames)
	if err != nil {
		return err
	}
	models, err := json.Marshal(info.ModelsUsed)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO sessions
		(file_path, session_id, project_name, project_path,
		 first_timestamp, last_timestamp, message_count,
		 input_tokens, output_tokens, cache_read_tokens, cache_creation_tokens,
		 tool_calls_count, tool_names, models_used, git_branch, version,
		 file_mtime_ns, file_size, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		info.FilePath, info.SessionID, info.ProjectName, info.ProjectPath,
		info.FirstTimestamp, info.LastTimestamp, info.MessageCount,
		info.TotalUsage.InputTokens, info.TotalUsage.OutputTokens,
		info.TotalUsage.CacheReadInputTokens, info.TotalUsage.CacheCreationInputTokens,
		info.ToolCallsCount, string(toolNames), string(models),
		info.GitBranch, info.Version,
		mtimeNs, sizeBytes, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoadAll reads every stored session rollup, keyed by file path.
func (s *Store) LoadAll() (map[string]model.SessionInfo, error) {
	rows, err := s.db.Query(`SELECT
		file_path, session_id, project_name, project_path,
		first_timestamp, last_timestamp, message_count,
		input_tokens, output_tokens, cache_read_tokens, cache_creation_tokens,
		tool_calls_count, tool_names, models_used, git_branch, version
		FROM sessions`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]model.SessionInfo)
	for rows.Next() {
		var (
			info                     model.SessionInfo
			projectPath, branch, ver sql.NullString
			firstTS, lastTS          sql.NullString
			toolNamesRaw, modelsRaw  sql.NullString
		)
		err := rows.Scan(
			&info.FilePath, &info.SessionID, &info.ProjectName, &projectPath,
			&firstTS, &lastTS, &info.MessageCount,
			&info.TotalUsage.InputTokens, &info.TotalUsage.OutputTokens,
			&info.TotalUsage.CacheReadInputTokens, &info.TotalUsage.CacheCreationInputTokens,
			&info.ToolCallsCount, &toolNamesRaw, &modelsRaw, &branch, &ver,
		)
		if err != nil {
			return nil, err
		}
		info.ProjectPath = projectPath.String
		info.FirstTimestamp = firstTS.String
		info.LastTimestamp = lastTS.String
		info.GitBranch = branch.String
		info.Version = ver.String
		if toolNamesRaw.Valid && toolNamesRaw.String != "" {
			_ = json.Unmarshal([]byte(toolNamesRaw.String), &info.ToolNames)
		}
		if modelsRaw.Valid && modelsRaw.String != "" {
			_ = json.Unmarshal([]byte(modelsRaw.String), &info.ModelsUsed)
		}
		result[info.FilePath] = info
	}
	return result, rows.Err()
}

// DeleteByPath removes the row for one transcript file.
func (s *Store) DeleteByPath(filePath string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE file_path = ?", filePath)
	return err
}

// SessionCount returns the number of stored rollups.
func (s *Store) SessionCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	return count, err
}

// DefaultPath returns the platform cache location of the store database.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "claude-dashboard", "sessions.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "claude-dashboard", "sessions.db")
}
