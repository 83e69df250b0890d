package limits

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFormBody(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, r.PostForm.Get("q"))
	})
	h := FormBody(16)(echo)

	tests := []struct {
		name        string
		contentType string
		body        string
		unknownLen  bool
		wantStatus  int
	}{
		{"small form", "application/x-www-form-urlencoded", "q=hello", false, http.StatusOK},
		{"declared too large", "application/x-www-form-urlencoded", "q=" + strings.Repeat("a", 32), false, http.StatusRequestEntityTooLarge},
		{"streamed too large", "application/x-www-form-urlencoded", "q=" + strings.Repeat("a", 32), true, http.StatusBadRequest},
		{"multipart passes through", "multipart/form-data; boundary=x", strings.Repeat("a", 32), false, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", tc.contentType)
			if tc.unknownLen {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestFormBody_NoBody(t *testing.T) {
	called := false
	h := FormBody(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("GET without body was not passed through")
	}
}
