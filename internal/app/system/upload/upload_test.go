package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0, 0, 0, 13, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0,
}

var pdfHeader = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

func TestLimits_RulesDefaults(t *testing.T) {
	rules := Limits{}.Rules()
	if got := rules[KindImage].MaxBytes; got != 5*mb {
		t.Errorf("image max = %d, want %d", got, 5*mb)
	}
	if got := rules[KindVideo].MaxBytes; got != 500*mb {
		t.Errorf("video max = %d, want %d", got, 500*mb)
	}
	if got := rules[KindDocument].MaxBytes; got != 20*mb {
		t.Errorf("document max = %d, want %d", got, 20*mb)
	}
	if got := (Limits{ImageMB: 2}).Rules()[KindImage].MaxBytes; got != 2*mb {
		t.Errorf("override image max = %d, want %d", got, 2*mb)
	}
	if _, err := (Limits{}).RuleFor("audio"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("RuleFor(audio) err = %v, want ErrUnknownKind", err)
	}
}

func TestValidate(t *testing.T) {
	image, _ := Limits{}.RuleFor(KindImage)
	video, _ := Limits{}.RuleFor(KindVideo)

	tests := []struct {
		name     string
		rule     Rule
		declared string
		sniffed  string
		size     int64
		want     error
	}{
		{"png ok", image, "image/png", "image/png", 1024, nil},
		{"declared with params", image, "image/jpeg; charset=binary", "image/jpeg", 10, nil},
		{"octet-stream declared", image, "application/octet-stream", "image/webp", 10, nil},
		{"no declared type", video, "", "video/mp4", 10, nil},
		{"empty", image, "image/png", "image/png", 0, ErrEmpty},
		{"too large", image, "image/png", "image/png", 5*mb + 1, ErrTooLarge},
		{"exactly at limit", image, "image/png", "image/png", 5 * mb, nil},
		{"declared wrong", image, "application/pdf", "image/png", 10, ErrUnsupportedType},
		{"sniffed wrong", image, "image/png", "text/html; charset=utf-8", 10, ErrUnsupportedType},
		{"video quicktime", video, "video/quicktime", "video/quicktime", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rule, tt.declared, tt.sniffed, tt.size)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSniff_KeepsWholeStream(t *testing.T) {
	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 5000)...)
	mt, r, err := Sniff(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if mt != "image/png" {
		t.Errorf("mime = %q, want image/png", mt)
	}
	got, _ := io.ReadAll(r)
	if !bytes.Equal(got, body) {
		t.Errorf("stream length %d, want %d", len(got), len(body))
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"intro.mp4", "intro.mp4"},
		{"My Lesson (final).pdf", "My_Lesson__final_.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\cover.png`, "C__Users_me_cover.png"},
		{"", "file"},
		{"ünïcode.png", "__n__code.png"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := strings.Repeat("a", 150) + ".pdf"
	got := SanitizeFilename(long)
	if len(got) != 100 || !strings.HasSuffix(got, ".pdf") {
		t.Errorf("long name -> %q (len %d), want 100 chars ending .pdf", got, len(got))
	}
}

func TestKey(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	key := Key(KindImage, "cover art.png", now)
	re := regexp.MustCompile(`^images/2026/03/[0-9a-f]{8}-cover_art\.png$`)
	if !re.MatchString(key) {
		t.Errorf("Key = %q, want match %s", key, re)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrTooLarge, http.StatusRequestEntityTooLarge},
		{ErrUnsupportedType, http.StatusBadRequest},
		{ErrEmpty, http.StatusBadRequest},
		{ErrUnknownKind, http.StatusBadRequest},
		{ErrCDN, http.StatusBadGateway},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type cdnCall struct {
	auth     string
	key      string
	kind     string
	filename string
	size     int
}

func fakeCDN(t *testing.T, status int, reply any) (*httptest.Server, *[]cdnCall) {
	t.Helper()
	var calls []cdnCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		c := cdnCall{
			auth: r.Header.Get("Authorization"),
			key:  r.FormValue("key"),
			kind: r.FormValue("kind"),
		}
		if f, hdr, err := r.FormFile("file"); err == nil {
			b, _ := io.ReadAll(f)
			c.filename = hdr.Filename
			c.size = len(b)
		}
		calls = append(calls, c)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestUploader_Upload(t *testing.T) {
	srv, calls := fakeCDN(t, http.StatusOK, map[string]string{"url": "https://cdn.example.com/x.pdf"})
	u := NewUploader(Config{Endpoint: srv.URL, Token: "cdn-secret"}, zap.NewNop())

	res, err := u.Upload(context.Background(), KindDocument, "syllabus.pdf", "application/pdf",
		bytes.NewReader(pdfHeader), int64(len(pdfHeader)))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.URL != "https://cdn.example.com/x.pdf" {
		t.Errorf("URL = %q", res.URL)
	}
	if !strings.HasPrefix(res.Key, "documents/") || !strings.HasSuffix(res.Key, "-syllabus.pdf") {
		t.Errorf("Key = %q", res.Key)
	}
	if len(*calls) != 1 {
		t.Fatalf("CDN calls = %d, want 1", len(*calls))
	}
	c := (*calls)[0]
	if c.auth != "Bearer cdn-secret" {
		t.Errorf("Authorization = %q", c.auth)
	}
	if c.key != res.Key || c.kind != "document" {
		t.Errorf("form key/kind = %q/%q", c.key, c.kind)
	}
	if c.size != len(pdfHeader) {
		t.Errorf("file size = %d, want %d", c.size, len(pdfHeader))
	}
}

func TestUploader_EnvelopeReply(t *testing.T) {
	srv, _ := fakeCDN(t, http.StatusOK, map[string]any{
		"status": true, "data": map[string]string{"url": "https://cdn.example.com/c.png"},
	})
	u := NewUploader(Config{Endpoint: srv.URL}, zap.NewNop())
	res, err := u.Upload(context.Background(), KindImage, "c.png", "image/png",
		bytes.NewReader(pngHeader), int64(len(pngHeader)))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.URL != "https://cdn.example.com/c.png" {
		t.Errorf("URL = %q", res.URL)
	}
}

func TestUploader_RejectsBeforeSending(t *testing.T) {
	srv, calls := fakeCDN(t, http.StatusOK, map[string]string{"url": "x"})
	u := NewUploader(Config{Endpoint: srv.URL}, zap.NewNop())

	_, err := u.Upload(context.Background(), KindImage, "notes.pdf", "application/pdf",
		bytes.NewReader(pdfHeader), int64(len(pdfHeader)))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
	_, err = u.Upload(context.Background(), KindImage, "big.png", "image/png",
		bytes.NewReader(pngHeader), 6*mb)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
	if len(*calls) != 0 {
		t.Errorf("CDN was called %d times for rejected files", len(*calls))
	}
}

func TestUploader_CDNFailure(t *testing.T) {
	srv, _ := fakeCDN(t, http.StatusInternalServerError, map[string]string{"message": "disk full"})
	u := NewUploader(Config{Endpoint: srv.URL}, zap.NewNop())
	_, err := u.Upload(context.Background(), KindImage, "c.png", "image/png",
		bytes.NewReader(pngHeader), int64(len(pngHeader)))
	if !errors.Is(err, ErrCDN) {
		t.Fatalf("err = %v, want ErrCDN", err)
	}
	if StatusFor(err) != http.StatusBadGateway {
		t.Errorf("StatusFor = %d, want 502", StatusFor(err))
	}
}
