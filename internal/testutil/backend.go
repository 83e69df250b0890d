package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/apiclient"
	"github.com/dalemusser/learnadmin/internal/app/api/backend"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BackendCall is one request received by a FakeBackend.
type BackendCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Auth   string
}

// DecodeBody unmarshals the recorded JSON body into out.
func (c BackendCall) DecodeBody(out any) error {
	return json.Unmarshal(c.Body, out)
}

// FakeBackend is an httptest server standing in for the REST backend. It
// records every call and answers with canned {status,message,data}
// envelopes. Unregistered routes answer 404.
type FakeBackend struct {
	Server *httptest.Server

	t      *testing.T
	router chi.Router
	mu     sync.Mutex
	calls  []BackendCall
}

// NewFakeBackend starts a FakeBackend that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{t: t, router: chi.NewRouter()}
	b.router.Use(b.record)
	b.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteEnvelope(w, http.StatusNotFound, "route not found", nil)
	})
	b.Server = httptest.NewServer(b.router)
	t.Cleanup(b.Server.Close)
	return b
}

// WriteEnvelope writes a backend-style JSON envelope. status < 300 sets
// "status": true.
func WriteEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status < 300,
		"message": message,
		"data":    data,
	})
}

func (b *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		b.mu.Lock()
		b.calls = append(b.calls, BackendCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
			Auth:   r.Header.Get("Authorization"),
		})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Reply answers method+pattern with a success envelope carrying data.
func (b *FakeBackend) Reply(method, pattern string, data any) {
	b.router.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteEnvelope(w, http.StatusOK, "ok", data)
	})
}

// Fail answers method+pattern with status and an error envelope.
func (b *FakeBackend) Fail(method, pattern string, status int, message string) {
	b.router.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteEnvelope(w, status, message, nil)
	})
}

// HandleFunc registers a custom handler.
func (b *FakeBackend) HandleFunc(method, pattern string, h http.HandlerFunc) {
	b.router.MethodFunc(method, pattern, h)
}

// URL is the base URL of the fake backend.
func (b *FakeBackend) URL() string { return b.Server.URL }

// Calls returns a copy of every call received so far.
func (b *FakeBackend) Calls() []BackendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]BackendCall(nil), b.calls...)
}

// Count returns how many calls matched method and path exactly.
func (b *FakeBackend) Count(method, path string) int {
	n := 0
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent call matching method and path.
func (b *FakeBackend) Last(method, path string) (BackendCall, bool) {
	calls := b.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method && calls[i].Path == path {
			return calls[i], true
		}
	}
	return BackendCall{}, false
}

// Client returns an apiclient bound to the fake backend.
func (b *FakeBackend) Client() *apiclient.Client {
	return apiclient.New(apiclient.Config{BaseURL: b.URL()}, zap.NewNop())
}

// Runner returns a slice runner over the fake backend with a fresh memory
// cache.
func (b *FakeBackend) Runner() *slice.Runner {
	return slice.NewRunner(b.Client(), apicache.NewMemory(), 0, nil, zap.NewNop())
}

// Backend returns every API slice wired to the fake backend.
func (b *FakeBackend) Backend() *backend.Backend {
	c := b.Client()
	return backend.New(c, slice.NewRunner(c, apicache.NewMemory(), 0, nil, zap.NewNop()))
}
