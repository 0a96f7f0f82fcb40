package server

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/vecscope/vecscope/internal/detect"
)

var upgrader = websocket.Upgrader{
	// The dashboard is served from this same host; CORS already gates the
	// API, so the origin check mirrors it.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// changeEvent is pushed to the dashboard when the watched database changes.
type changeEvent struct {
	Event string `json:"event"`
	Path  string `json:"path"`
}

// debounceWindow coalesces bursts of filesystem events (index rewrites
// touch several files) into one notification.
const debounceWindow = 500 * time.Millisecond

// handleWatch upgrades to a websocket and pushes a "changed" event
// whenever the resolved database artifact's directory changes on disk,
// letting the dashboard offer a reload without polling.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "missing required query parameter: path", http.StatusBadRequest)
		return
	}

	det, err := detect.DetectWithOptions(path, s.loader.DetectOptions)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	watchDir := det.Path
	if info, err := os.Stat(det.Path); err == nil && !info.IsDir() {
		watchDir = filepath.Dir(det.Path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(watchDir); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Drain client messages so we notice a disconnect.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-closed:
			return
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			_ = err // transient watcher errors are not actionable for the client
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
				fire = debounce.C
			} else {
				debounce.Reset(debounceWindow)
			}
		case <-fire:
			debounce = nil
			fire = nil
			if err := conn.WriteJSON(changeEvent{Event: "changed", Path: det.Path}); err != nil {
				return
			}
		}
	}
}
