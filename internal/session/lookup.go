package session

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kyoungmook/claude-dashboard/internal/model"
)

// Session filenames are UUID-shaped. Anything else is rejected before touching
// the filesystem so a request cannot name a path outside the projects root.
var sessionIDPattern = regexp.MustCompile(`^[a-f0-9-]{8,}$`)

// ValidSessionID reports whether id is a plausible session file stem.
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

// FindSessionFile locates the transcript for the given session id under the
// projects root. It returns the file path and the project directory name.
func (c *Corpus) FindSessionFile(sessionID string) (string, string, error) {
	if !ValidSessionID(sessionID) {
		return "", "", fmt.Errorf("invalid session id %q", sessionID)
	}

	root, err := filepath.Abs(c.projectsDir)
	if err != nil {
		return "", "", err
	}

	for _, dir := range c.ProjectDirs() {
		path := filepath.Join(root, dir, sessionID+".jsonl")
		resolved, err := filepath.Abs(path)
		if err != nil || !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
			continue
		}
		if _, err := os.Stat(resolved); err == nil {
			return resolved, dir, nil
		}
	}
	return "", "", fmt.Errorf("session %s not found", sessionID)
}

// Detail is a session rollup together with its full message list.
type Detail struct {
	Info     model.SessionInfo `json:"info"`
	Messages []model.Message   `json:"messages"`
}

// SessionDetail reads the full transcript for the given session id.
func (c *Corpus) SessionDetail(sessionID string) (*Detail, error) {
	path, projectDir, err := c.FindSessionFile(sessionID)
	if err != nil {
		return nil, err
	}
	meta, messages := ReadSession(path)
	return &Detail{
		Info:     BuildSessionInfo(path, projectDir, meta, messages),
		Messages: messages,
	}, nil
}

// GroupByProject buckets sessions by project name, preserving the input order
// within each bucket.
func GroupByProject(sessions []model.SessionInfo) map[string][]model.SessionInfo {
	grouped := make(map[string][]model.SessionInfo)
	for _, s := range sessions {
		grouped[s.ProjectName] = append(grouped[s.ProjectName], s)
	}
	return grouped
}

// Search returns sessions whose project name or session id contains the query,
// case-insensitively.
func Search(sessions []model.SessionInfo, query string) []model.SessionInfo {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return sessions
	}
	var out []model.SessionInfo
	for _, s := range sessions {
		if strings.Contains(strings.ToLower(s.ProjectName), q) ||
			strings.Contains(strings.ToLower(s.SessionID), q) {
			out = append(out, s)
		}
	}
	return out
}
