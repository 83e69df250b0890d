package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/api/apiclient"
	"go.uber.org/zap"
)

func newClient(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apiclient.New(apiclient.Config{BaseURL: srv.URL}, zap.NewNop())
}

func TestDo_SendsTokenQueryAndBody(t *testing.T) {
	var gotAuth, gotPath, gotQuery, gotReqID string
	var gotBody map[string]any
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.Query().Get("courseId")
		gotReqID = r.Header.Get("X-Request-ID")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"id":"m1"}}`))
	})

	env, err := c.Do(context.Background(), apiclient.Request{
		Name:   "modules.update",
		Method: http.MethodPatch,
		Path:   "/modules/{id}",
		Params: map[string]string{"id": "a b"},
		Query:  url.Values{"courseId": {"c1"}},
		Body:   map[string]string{"title": "Intro"},
		Token:  "tok",
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/modules/a%20b" {
		t.Errorf("path = %q, want escaped id", gotPath)
	}
	if gotQuery != "c1" {
		t.Errorf("courseId = %q", gotQuery)
	}
	if gotReqID == "" {
		t.Error("expected X-Request-ID header")
	}
	if gotBody["title"] != "Intro" {
		t.Errorf("body = %v", gotBody)
	}

	var out struct{ ID string }
	if err := apiclient.DecodeData(env, &out); err != nil || out.ID != "m1" {
		t.Errorf("DecodeData = %+v, %v", out, err)
	}
}

func TestDo_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"401 envelope", 401, `{"status":false,"message":"Token expired"}`, apiclient.ErrUnauthorized, "Token expired"},
		{"404 envelope", 404, `{"status":false,"message":"Course not found"}`, apiclient.ErrNotFound, "Course not found"},
		{"403 envelope", 403, `{"status":false,"message":"Nope"}`, apiclient.ErrForbidden, "Nope"},
		{"500 plain text", 500, `upstream exploded`, nil, "upstream exploded"},
		{"200 status false", 200, `{"status":false,"message":"Title already used"}`, nil, "Title already used"},
		{"502 html", 502, `<html>bad gateway</html>`, nil, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Do(context.Background(), apiclient.Request{Name: "x", Path: "/x"})
			if err == nil {
				t.Fatal("expected error")
			}
			var apiErr *apiclient.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("expected errors.Is(%v)", tt.sentinel)
			}
			if got := apiclient.ErrorMessage(err, "fallback"); got != tt.message {
				t.Errorf("ErrorMessage = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := apiclient.New(apiclient.Config{BaseURL: base}, zap.NewNop())
	_, err := c.Do(context.Background(), apiclient.Request{Name: "x", Path: "/x"})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 0 || apiErr.Err == nil {
		t.Fatalf("expected transport APIError, got %#v", err)
	}
	if apiclient.IsUnauthorized(err) {
		t.Error("transport error must not be unauthorized")
	}
}

func TestDo_MissingPathParam(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called")
	})
	if _, err := c.Do(context.Background(), apiclient.Request{Path: "/course/{id}"}); err == nil {
		t.Error("expected error for missing id")
	}
}

func TestExpandPath(t *testing.T) {
	got, err := apiclient.ExpandPath("/assignment/{id}/submissions", map[string]string{"id": "x/y"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "/assignment/x%2Fy/submissions" {
		t.Errorf("ExpandPath = %q", got)
	}
	if _, err := apiclient.ExpandPath("/a/{id", nil); err == nil {
		t.Error("expected error for unterminated placeholder")
	}
}
