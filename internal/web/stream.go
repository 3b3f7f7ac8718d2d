package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kyoungmook/claude-dashboard/internal/model"
	"github.com/kyoungmook/claude-dashboard/internal/watch"
)

// sseWriter wraps one SSE connection. Every stream polls on a fixed cadence
// and emits a comment heartbeat when a cycle produced no data, so proxies and
// clients can tell the connection is alive.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	return &sseWriter{w: w, flusher: flusher}, true
}

func (s *sseWriter) data(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(s.w, "data: %s\n\n", payload)
	s.flusher.Flush()
}

func (s *sseWriter) dataRaw(payload string) {
	_, _ = fmt.Fprintf(s.w, "data: %s\n\n", payload)
	s.flusher.Flush()
}

func (s *sseWriter) heartbeat() {
	_, _ = fmt.Fprint(s.w, ": heartbeat\n\n")
	s.flusher.Flush()
}

// handleLiveStream tails the whole projects tree. Each connection owns its
// own tracker primed at EOF, so two viewers never share bookmarks.
func (s *Server) handleLiveStream(w http.ResponseWriter, r *http.Request) {
	sse, ok := newSSEWriter(w)
	if !ok {
		return
	}
	subID := uuid.NewString()[:8]
	log.Printf("live stream %s connected from %s", subID, r.RemoteAddr)
	defer log.Printf("live stream %s closed", subID)

	tail := watch.NewTreeTail(s.stats.ProjectsDir())
	tail.InitAtEnd()

	ticker := time.NewTicker(s.livePollInterval())
	defer ticker.Stop()

	for {
		events := tail.Scan()
		if len(events) > 0 {
			for _, ev := range events {
				sse.data(ev)
			}
		} else {
			sse.heartbeat()
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// handleSessionStream tails one session file, pushing only messages appended
// after the connection was opened.
func (s *Server) handleSessionStream(w http.ResponseWriter, r *http.Request) {
	sse, ok := newSSEWriter(w)
	if !ok {
		return
	}
	sessionID := r.PathValue("id")

	path, _, err := s.stats.FindSessionFile(sessionID)
	if err != nil {
		sse.dataRaw(`{"error": "session not found"}`)
		return
	}

	subID := uuid.NewString()[:8]
	log.Printf("session stream %s connected for %s", subID, shortID(sessionID))
	defer log.Printf("session stream %s closed", subID)

	tail := watch.NewSessionTail(path)
	tail.InitAtEnd()

	ticker := time.NewTicker(s.sessionPollInterval())
	defer ticker.Stop()

	for {
		messages := tail.ReadNew()
		if len(messages) > 0 {
			for _, msg := range messages {
				sse.data(newSessionStreamPayload(msg))
			}
		} else {
			sse.heartbeat()
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// sessionStreamPayload is a Message with tool calls flattened to names, the
// shape the session page consumes.
type sessionStreamPayload struct {
	model.Message
	ToolCalls []string `json:"tool_calls"`
}

func newSessionStreamPayload(msg model.Message) sessionStreamPayload {
	names := make([]string, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		names = append(names, tc.Name)
	}
	return sessionStreamPayload{Message: msg, ToolCalls: names}
}

// handlePixelStream pushes the active-agents snapshot whenever it changes,
// heartbeating otherwise.
func (s *Server) handlePixelStream(w http.ResponseWriter, r *http.Request) {
	sse, ok := newSSEWriter(w)
	if !ok {
		return
	}
	subID := uuid.NewString()[:8]
	log.Printf("pixel stream %s connected from %s", subID, r.RemoteAddr)
	defer log.Printf("pixel stream %s closed", subID)

	ticker := time.NewTicker(s.livePollInterval())
	defer ticker.Stop()

	previous := ""
	for {
		agents := s.stats.ActiveAgents()
		payload, err := json.Marshal(agents)
		if err == nil && string(payload) != previous {
			sse.dataRaw(string(payload))
			previous = string(payload)
		} else {
			sse.heartbeat()
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
