// Package upload validates admin file uploads (course thumbnails, lesson
// videos, lesson documents) and forwards them to the CDN.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Kind selects the rule set an upload is checked against.
type Kind string

const (
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
)

// Sentinel errors matched with errors.Is.
var (
	ErrUnknownKind     = errors.New("upload: unknown upload kind")
	ErrEmpty           = errors.New("upload: file is empty")
	ErrTooLarge        = errors.New("upload: file is too large")
	ErrUnsupportedType = errors.New("upload: unsupported file type")
	ErrCDN             = errors.New("upload: CDN rejected the upload")
)

const mb = int64(1 << 20)

// sniffLen is how much of the file is read to detect its type.
const sniffLen = 3072

// Limits caps upload sizes in megabytes. Zero fields take the defaults
// (image 5, video 500, document 20).
type Limits struct {
	ImageMB    int
	VideoMB    int
	DocumentMB int
}

// Rule is the accepted MIME set and size cap for one Kind.
type Rule struct {
	Kind     Kind
	MaxBytes int64
	Types    []string
}

// Rules returns the rule for every kind under l.
func (l Limits) Rules() map[Kind]Rule {
	orDefault := func(v, d int) int64 {
		if v <= 0 {
			return int64(d) * mb
		}
		return int64(v) * mb
	}
	return map[Kind]Rule{
		KindImage: {
			Kind:     KindImage,
			MaxBytes: orDefault(l.ImageMB, 5),
			Types:    []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
		},
		KindVideo: {
			Kind:     KindVideo,
			MaxBytes: orDefault(l.VideoMB, 500),
			Types:    []string{"video/mp4", "video/webm", "video/quicktime"},
		},
		KindDocument: {
			Kind:     KindDocument,
			MaxBytes: orDefault(l.DocumentMB, 20),
			Types:    []string{"application/pdf"},
		},
	}
}

// RuleFor returns the rule for kind.
func (l Limits) RuleFor(kind Kind) (Rule, error) {
	r, ok := l.Rules()[kind]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return r, nil
}

// Validate checks size, the client-declared type and the sniffed type.
// A declared type of "" or application/octet-stream is ignored; the sniffed
// type must always be allowed.
func Validate(rule Rule, declared, sniffed string, size int64) error {
	if size <= 0 {
		return ErrEmpty
	}
	if size > rule.MaxBytes {
		return fmt.Errorf("%w: %s limit is %d MB", ErrTooLarge, rule.Kind, rule.MaxBytes/mb)
	}
	if declared != "" && !mimetype.EqualsAny(declared, "application/octet-stream") &&
		!mimetype.EqualsAny(declared, rule.Types...) {
		return fmt.Errorf("%w: declared %s", ErrUnsupportedType, declared)
	}
	if !mimetype.EqualsAny(sniffed, rule.Types...) {
		return fmt.Errorf("%w: detected %s", ErrUnsupportedType, sniffed)
	}
	return nil
}

// Sniff detects the MIME type from the head of r and returns a reader that
// still yields the whole stream.
func Sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]
	mt := mimetype.Detect(head)
	return mt.String(), io.MultiReader(bytes.NewReader(head), r), nil
}

// Key names an object as <kind>s/YYYY/MM/<uuid8>-<sanitized filename>.
func Key(kind Kind, filename string, now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("%ss/%04d/%02d/%s-%s", kind, now.Year(), int(now.Month()),
		uuid.NewString()[:8], SanitizeFilename(filename))
}

// SanitizeFilename keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with '_'. Names are capped at 100 bytes, keeping the
// extension.
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filepath.ToSlash(filename))
	if filename == "." || filename == "/" {
		filename = ""
	}
	out := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.' {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "file"
	}
	if len(out) > 100 {
		ext := filepath.Ext(string(out))
		if ext != "" && len(ext) < 10 {
			out = append(out[:100-len(ext)], ext...)
		} else {
			out = out[:100]
		}
	}
	return string(out)
}

// StatusFor maps an upload error to the HTTP status returned to the
// browser.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnknownKind), errors.Is(err, ErrEmpty), errors.Is(err, ErrUnsupportedType):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
