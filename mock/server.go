// Package mock provides a canned trading API backend for tests and
// examples: routes return fixed JSON bodies, authentication failures
// can be forced, and token-refresh calls are counted so refresh
// deduplication is observable.
package mock

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

const refreshPath = "/api/v1/auth/token"

// Response is one canned reply.
type Response struct {
	Status      int
	Body        string
	ContentType string
	Headers     map[string]string
}

// Server is a fake backend. Configure routes with Handle, then point
// a client at URL().
type Server struct {
	httpSrv *httptest.Server

	mu           sync.Mutex
	routes       map[string]Response
	unauthorized bool
	refreshCalls int

	// RefreshDelay stalls the token-refresh handler, keeping the
	// refresh flight open long enough for tests to pile callers onto
	// it.
	RefreshDelay time.Duration

	// AccessToken, when set, is returned as the access_token cookie
	// by the refresh handler.
	AccessToken string
}

func NewServer() *Server {
	s := &Server{routes: make(map[string]Response)}
	s.httpSrv = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) URL() string { return s.httpSrv.URL }

func (s *Server) Close() { s.httpSrv.Close() }

// Handle registers a canned response for "METHOD /api/v1/path".
func (s *Server) Handle(method, path string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = resp
}

// SetUnauthorized forces every non-refresh call to return a 401 with
// the backend's structured error body.
func (s *Server) SetUnauthorized(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unauthorized = v
}

// RefreshCalls reports how many token-refresh requests arrived.
func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost && r.URL.Path == refreshPath {
		s.serveRefresh(w)
		return
	}

	s.mu.Lock()
	unauthorized := s.unauthorized
	resp, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if unauthorized {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"NOT_AUTHENTICATED","message":"Not authenticated","details":null}`))
		return
	}
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"NOT_FOUND","message":"No such route","details":null}`))
		return
	}

	ct := resp.ContentType
	if ct == "" {
		ct = "application/json"
	}
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", ct)
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}

func (s *Server) serveRefresh(w http.ResponseWriter) {
	s.mu.Lock()
	s.refreshCalls++
	delay := s.RefreshDelay
	token := s.AccessToken
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if token != "" {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: token, Path: "/", HttpOnly: true})
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Access token generated successfully."}`))
}
