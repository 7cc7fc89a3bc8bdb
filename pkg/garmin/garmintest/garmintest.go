// Package garmintest provides an in-process fake of the Connect API for tests.
package garmintest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/germanamz/garmin-mcp/pkg/garmin"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

// Profile is the social profile served by every fake server.
const Profile = `{"displayName":"runner42","fullName":"Ada Runner","profileId":9001}`

// Request is a request observed by the fake server.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// Response is a canned reply.
type Response struct {
	Status int
	Body   string
}

// Server is a fake Connect API. Routes are keyed by "METHOD /path"; a
// missing route answers 404.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]Response
	requests []Request
}

// NewServer starts a fake server closed on test cleanup.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{routes: map[string]Response{
		"GET /userprofile-service/socialProfile": {Status: http.StatusOK, Body: Profile},
	}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)

	return s
}

// Handle sets the reply for method and path.
func (s *Server) Handle(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = Response{Status: status, Body: body}
}

// OK is Handle with 200 for GET.
func (s *Server) OK(path, body string) { s.Handle(http.MethodGet, path, http.StatusOK, body) }

// Requests returns the observed requests, excluding the profile lookup.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, 0, len(s.requests))
	for _, r := range s.requests {
		if r.Path == "/userprofile-service/socialProfile" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Last returns the most recent request (excluding the profile lookup).
func (s *Server) Last() Request {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return Request{}
	}
	return reqs[len(reqs)-1]
}

// Client returns an API bound to this server with the profile loaded.
func (s *Server) Client(t *testing.T) *garmin.API {
	t.Helper()

	api := garmin.New(s.URL, "test-token", s.Server.Client())
	if _, err := api.LoadProfile(context.Background()); err != nil {
		t.Fatalf("garmintest: load profile: %v", err)
	}
	return api
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   strings.TrimSpace(string(body)),
	})
	resp, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}

// Call invokes the tool named name from tools with args and returns its text
// and whether it was flagged as an error. It fails the test if the tool is
// missing or returns an error other than *result.Error.
func Call(t *testing.T, tools []toolbox.Tool, name, args string) (string, bool) {
	t.Helper()

	for _, tool := range tools {
		if tool.Name != name {
			continue
		}

		out, err := tool.Handler(context.Background(), json.RawMessage(args))
		if err == nil {
			return out, false
		}

		var re *result.Error
		if !errors.As(err, &re) {
			t.Fatalf("garmintest: %s returned a raw error: %v", name, err)
		}
		return re.Result.String(), true
	}

	t.Fatalf("garmintest: tool %q not found", name)
	return "", false
}
