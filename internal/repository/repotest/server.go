// Package repotest provides an in-process fake of the methods repository
// API for tests.
package repotest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// APIPrefix is where the fake mounts the API; BaseURL includes it.
const APIPrefix = "/service/api"

// Request is one request as the fake saw it.
type Request struct {
	Method      string
	Path        string
	RawQuery    string
	Body        string
	ContentType string
	Auth        string
}

// Server records requests and answers with the status codes the real
// repository uses, unless an override is set with Respond.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	status   int
	body     string
}

// NewServer starts a fake repository and closes it when the test ends.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{}
	r := chi.NewRouter()
	r.Use(s.record)
	r.Route(APIPrefix+"/{collection}", func(r chi.Router) {
		r.Use(collectionOnly)
		r.Post("/", s.create)
		r.Get("/", s.list)
		r.Get("/{namespace}/{name}/{snapshotID}", s.get)
		r.Delete("/{namespace}/{name}/{snapshotID}", s.redact)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the value to pass as --url.
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

// Respond makes every later request answer with status and body.
func (s *Server) Respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request, failing the test if there is none.
func (s *Server) Last(t *testing.T) Request {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("repotest: no requests received")
	}
	return reqs[len(reqs)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			Body:        string(body),
			ContentType: r.Header.Get("Content-Type"),
			Auth:        r.Header.Get("Authorization"),
		})
		status, override := s.status, s.body
		s.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			io.WriteString(w, override)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func collectionOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "collection") {
		case "methods", "configurations":
			next.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var entity map[string]any
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		http.Error(w, "malformed entity", http.StatusBadRequest)
		return
	}
	entity["snapshotId"] = 1
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entity)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, "[]")
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("onlyPayload") == "true" {
		io.WriteString(w, "task hello {}")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"namespace":%q,"name":%q,"snapshotId":%s}`,
		chi.URLParam(r, "namespace"), chi.URLParam(r, "name"), chi.URLParam(r, "snapshotID"))
}

func (s *Server) redact(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
