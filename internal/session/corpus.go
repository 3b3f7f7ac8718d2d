package session

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/kyoungmook/claude-dashboard/internal/model"
	"github.com/kyoungmook/claude-dashboard/internal/store"
)

// Files smaller than this hold no meaningful session content and are skipped.
const minSessionBytes = 100

type memoEntry struct {
	mtimeNs int64
	size    int64
	info    model.SessionInfo
}

// Corpus scans the projects directory and keeps per-file parse results memoized
// by (mtime, size), so repeated scans only reparse files that changed on disk.
// An optional SQLite store survives process restarts.
type Corpus struct {
	projectsDir string
	store       *store.Store

	mu   sync.Mutex
	memo map[string]memoEntry
}

// NewCorpus creates a corpus over claudeDir/projects. st may be nil.
func NewCorpus(claudeDir string, st *store.Store) *Corpus {
	c := &Corpus{
		projectsDir: filepath.Join(claudeDir, "projects"),
		store:       st,
		memo:        make(map[string]memoEntry),
	}
	c.warmFromStore()
	return c
}

// ProjectsDir returns the directory the corpus scans.
func (c *Corpus) ProjectsDir() string {
	return c.projectsDir
}

func (c *Corpus) warmFromStore() {
	if c.store == nil {
		return
	}
	infos, err := c.store.LoadAll()
	if err != nil {
		return
	}
	tracked, err := c.store.TrackedFiles()
	if err != nil {
		return
	}
	for path, info := range infos {
		fi, ok := tracked[path]
		if !ok {
			continue
		}
		c.memo[path] = memoEntry{mtimeNs: fi.MtimeNs, size: fi.SizeBytes, info: info}
	}
}

type candidate struct {
	path           string
	projectDirName string
	mtimeNs        int64
	size           int64
}

// Sessions scans every project for session files, reparsing only those whose
// (mtime, size) changed since the last scan. Results are sorted by last
// activity, most recent first.
func (c *Corpus) Sessions() []model.SessionInfo {
	candidates := c.discover()

	c.mu.Lock()
	seen := make(map[string]bool, len(candidates))
	var toParse []candidate
	for _, cand := range candidates {
		seen[cand.path] = true
		if e, ok := c.memo[cand.path]; ok && e.mtimeNs == cand.mtimeNs && e.size == cand.size {
			continue
		}
		toParse = append(toParse, cand)
	}
	// Drop memo entries for files that no longer exist on disk.
	for path := range c.memo {
		if !seen[path] {
			delete(c.memo, path)
			if c.store != nil {
				_ = c.store.DeleteByPath(path)
			}
		}
	}
	c.mu.Unlock()

	if len(toParse) > 0 {
		c.parseAll(toParse)
	}

	c.mu.Lock()
	sessions := make([]model.SessionInfo, 0, len(c.memo))
	for _, e := range c.memo {
		sessions = append(sessions, e.info)
	}
	c.mu.Unlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastTimestamp > sessions[j].LastTimestamp
	})
	return sessions
}

func (c *Corpus) discover() []candidate {
	entries, err := os.ReadDir(c.projectsDir)
	if err != nil {
		return nil
	}

	var candidates []candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		projectDir := filepath.Join(c.projectsDir, entry.Name())
		files, err := os.ReadDir(projectDir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
				continue
			}
			fi, err := f.Info()
			if err != nil {
				continue
			}
			if fi.Size() < minSessionBytes {
				continue
			}
			candidates = append(candidates, candidate{
				path:           filepath.Join(projectDir, f.Name()),
				projectDirName: entry.Name(),
				mtimeNs:        fi.ModTime().UnixNano(),
				size:           fi.Size(),
			})
		}
	}
	return candidates
}

// parseAll parses the given files with a bounded worker pool and memoizes the
// results.
func (c *Corpus) parseAll(toParse []candidate) {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(toParse) {
		numWorkers = len(toParse)
	}

	work := make(chan int, len(toParse))
	results := make([]model.SessionInfo, len(toParse))
	var wg sync.WaitGroup

	for i := range toParse {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				cand := toParse[idx]
				meta, messages := ReadSession(cand.path)
				results[idx] = BuildSessionInfo(cand.path, cand.projectDirName, meta, messages)
			}
		}()
	}
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cand := range toParse {
		c.memo[cand.path] = memoEntry{mtimeNs: cand.mtimeNs, size: cand.size, info: results[i]}
		if c.store != nil {
			_ = c.store.SaveSession(results[i], cand.mtimeNs, cand.size)
		}
	}
}

// ProjectDirs lists the project directory names under the projects root.
func (c *Corpus) ProjectDirs() []string {
	entries, err := os.ReadDir(c.projectsDir)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs
}

// WalkSessionFiles calls fn for every session file path under the projects
// root, including files in nested subagent directories.
func (c *Corpus) WalkSessionFiles(fn func(path, projectDirName string)) {
	entries, err := os.ReadDir(c.projectsDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		projectDir := filepath.Join(c.projectsDir, entry.Name())
		_ = filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
				return nil
			}
			fn(path, entry.Name())
			return nil
		})
	}
}
