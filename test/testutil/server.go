// Package testutil provides an in-process mirror server for tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"
)

// Route describes how the mirror server answers one path.
type Route struct {
	Status     int               // response status, 200 when zero
	Body       []byte            // response body
	Headers    map[string]string // extra response headers
	OmitLength bool              // send the body chunked, without Content-Length
	Stall      bool              // never answer; wait until the client goes away
	ChunkSize  int               // with ChunkDelay, bytes written per flush
	ChunkDelay time.Duration     // pause between flushed chunks
}

// MirrorServer is an httptest server with per-path behaviour and hit counting.
type MirrorServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Route
	hits   map[string]int
	done   chan struct{}
}

// NewMirrorServer starts a server that is closed when the test ends.
func NewMirrorServer(t *testing.T) *MirrorServer {
	t.Helper()
	s := &MirrorServer{
		routes: make(map[string]Route),
		hits:   make(map[string]int),
		done:   make(chan struct{}),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(func() {
		close(s.done)
		s.Server.Close()
	})
	return s
}

// Handle registers the behaviour for path.
func (s *MirrorServer) Handle(path string, route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = route
}

// ServeFile registers a 200 response with body for path.
func (s *MirrorServer) ServeFile(path string, body []byte) {
	s.Handle(path, Route{Body: body})
}

// ServeCatalog registers a JSON catalog document for path.
func (s *MirrorServer) ServeCatalog(path, document string) {
	s.Handle(path, Route{
		Body:    []byte(document),
		Headers: map[string]string{"Content-Type": "application/json"},
	})
}

// URLFor returns the absolute URL of path.
func (s *MirrorServer) URLFor(path string) string {
	return s.Server.URL + path
}

// Hits returns how many requests path received.
func (s *MirrorServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits returns the number of requests received on any path.
func (s *MirrorServer) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

func (s *MirrorServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	route, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if route.Stall {
		select {
		case <-r.Context().Done():
		case <-s.done:
		}
		return
	}

	for k, v := range route.Headers {
		w.Header().Set(k, v)
	}
	if !route.OmitLength {
		w.Header().Set("Content-Length", strconv.Itoa(len(route.Body)))
	}
	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	flusher, _ := w.(http.Flusher)
	if route.ChunkDelay <= 0 {
		_, _ = w.Write(route.Body)
		if route.OmitLength && flusher != nil {
			flusher.Flush()
		}
		return
	}

	size := route.ChunkSize
	if size <= 0 {
		size = 1024
	}
	for off := 0; off < len(route.Body); off += size {
		end := min(off+size, len(route.Body))
		if _, err := w.Write(route.Body[off:end]); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		select {
		case <-r.Context().Done():
			return
		case <-s.done:
			return
		case <-time.After(route.ChunkDelay):
		}
	}
}

// SetupTestConfig writes a config file with the given YAML content into a
// temporary directory and returns its path.
func SetupTestConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

// CatalogDocument renders a one-list catalog with a single flat item.
func CatalogDocument(list, item string, urls ...string) string {
	doc := fmt.Sprintf(`{%q:{%q:[`, list, item)
	for i, u := range urls {
		if i > 0 {
			doc += ","
		}
		doc += strconv.Quote(u)
	}
	return doc + "]}}"
}
