package uploads_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/features/uploads"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auditlog"
	"github.com/dalemusser/learnadmin/internal/app/system/upload"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0, 0, 0, 13, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0,
}

func fakeCDN(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("CDN parse: %v", err)
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.test/" + r.FormValue("key")})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func multipartRequest(t *testing.T, kind, filename, contentType string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	_, _ = part.Write(body)
	_ = mw.Close()

	req := testutil.WithUser(httptest.NewRequest(http.MethodPost, "/uploads/"+kind, &buf), testutil.AdminUser())
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return testutil.WithChiURLParam(req, "kind", kind)
}

func newHandler(t *testing.T, cdnStatus int, limits upload.Limits) (*uploads.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	zl := zap.New(core)
	cdn := fakeCDN(t, cdnStatus)
	up := upload.NewUploader(upload.Config{Endpoint: cdn.URL, Limits: limits}, zap.NewNop())
	act := actions.New(testutil.SessionManager(t), auditlog.New(nil, zl, auditlog.Uniform(auditlog.ModeLog)), zap.NewNop())
	return uploads.NewHandler(up, act, zap.NewNop()), logs
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHandleUpload(t *testing.T) {
	png := append(append([]byte{}, pngHeader...), make([]byte, 64)...)

	tests := []struct {
		name       string
		kind       string
		ctype      string
		body       []byte
		cdnStatus  int
		wantStatus int
		wantKey    string
	}{
		{"image ok", "image", "image/png", png, http.StatusOK, http.StatusOK, "url"},
		{"unknown kind", "audio", "image/png", png, http.StatusOK, http.StatusBadRequest, "error"},
		{"wrong type", "document", "image/png", png, http.StatusOK, http.StatusBadRequest, "error"},
		{"cdn down", "image", "image/png", png, http.StatusInternalServerError, http.StatusBadGateway, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHandler(t, tt.cdnStatus, upload.Limits{})
			rec := httptest.NewRecorder()
			h.HandleUpload(rec, multipartRequest(t, tt.kind, "cover.png", tt.ctype, tt.body))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := decode(t, rec); got[tt.wantKey] == "" {
				t.Errorf("response = %v, want %q", got, tt.wantKey)
			}
		})
	}
}

func TestHandleUpload_TooLarge(t *testing.T) {
	h, _ := newHandler(t, http.StatusOK, upload.Limits{ImageMB: 1})
	body := append(append([]byte{}, pngHeader...), make([]byte, 3<<20)...)

	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartRequest(t, "image", "big.png", "image/png", body))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestHandleUpload_Audited(t *testing.T) {
	png := append(append([]byte{}, pngHeader...), make([]byte, 64)...)
	h, logs := newHandler(t, http.StatusOK, upload.Limits{})

	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartRequest(t, "image", "cover.png", "image/png", png))

	entries := logs.FilterMessage("audit event").All()
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_type"] != "file_uploaded" || fields["actor_id"] != testutil.AdminUser().ID {
		t.Errorf("audit fields = %v", fields)
	}
}
