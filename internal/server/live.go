package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/doxynav/internal/navtree"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reloadDelay coalesces the burst of events an editor or generator produces
// when rewriting a file.
const reloadDelay = 150 * time.Millisecond

// liveMessage is the outgoing websocket message format.
type liveMessage struct {
	Type     string            `json:"type"` // "document" or "error"
	Version  int               `json:"version"`
	Document *navtree.Document `json:"document,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(msg liveMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(msg)
}

// hub tracks connected websocket clients.
type hub struct {
	log     *zap.Logger
	mu      sync.Mutex
	clients map[*client]struct{}
}

func newHub(log *zap.Logger) *hub {
	return &hub{log: log, clients: make(map[*client]struct{})}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *hub) broadcast(msg liveMessage) {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.send(msg); err != nil {
			h.log.Debug("dropping websocket client", zap.Error(err))
			h.remove(c)
			c.conn.Close()
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}

func (s *Server) snapshot() liveMessage {
	if s.source == nil {
		return liveMessage{Type: "error", Error: "no navigation document loaded"}
	}
	doc, version := s.source.Current()
	if doc == nil {
		return liveMessage{Type: "error", Error: "no navigation document loaded"}
	}
	return liveMessage{Type: "document", Version: version, Document: doc}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	c := &client{conn: conn}
	s.hub.add(c)
	defer func() {
		s.hub.remove(c)
		conn.Close()
	}()

	if err := c.send(s.snapshot()); err != nil {
		return
	}

	// Clients only listen; reading drives ping/close handling.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("websocket read", zap.Error(err))
			}
			return
		}
	}
}

// Reload reloads the source from disk and pushes the result to every
// websocket client. A failed load is pushed as an error message and the
// previous document stays served.
func (s *Server) Reload() error {
	if s.source == nil {
		return fmt.Errorf("server has no document source")
	}
	if err := s.source.Load(); err != nil {
		s.log.Warn("reload failed", zap.String("path", s.source.Path()), zap.Error(err))
		_, version := s.source.Current()
		s.hub.broadcast(liveMessage{Type: "error", Version: version, Error: err.Error()})
		return err
	}
	msg := s.snapshot()
	s.log.Info("navigation data reloaded", zap.String("path", s.source.Path()), zap.Int("version", msg.Version))
	s.hub.broadcast(msg)
	return nil
}

// Watch reloads the document whenever a script in its directory changes,
// until ctx is cancelled. The directory is watched rather than the file so
// that replace-by-rename writes are seen.
func (s *Server) Watch(ctx context.Context) error {
	if s.source == nil || s.source.Path() == "" {
		return fmt.Errorf("server has no document file to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.source.Path())
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	s.log.Info("watching for changes", zap.String("dir", dir))

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(ev) {
				continue
			}
			s.log.Debug("change detected", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			_ = s.Reload()
		}
	}
}

// relevant reports whether ev touches the document or, when deferred scripts
// are resolved, one of its sibling scripts.
func (s *Server) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Clean(ev.Name) == filepath.Clean(s.source.Path()) {
		return true
	}
	return s.source.resolve && strings.HasSuffix(ev.Name, ".js")
}
