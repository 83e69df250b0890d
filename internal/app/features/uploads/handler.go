// internal/app/features/uploads/handler.go
package uploads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/upload"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// Handler accepts file uploads from course and lesson forms and answers
// with JSON, since the caller is a script on the form page.
type Handler struct {
	Uploader *upload.Uploader
	Act      *actions.Runner
	Log      *zap.Logger
}

// NewHandler constructs an upload Handler.
func NewHandler(uploader *upload.Uploader, act *actions.Runner, logger *zap.Logger) *Handler {
	return &Handler{Uploader: uploader, Act: act, Log: logger}
}

type uploadResponse struct {
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// message turns an upload error into the text shown next to the file input.
func message(err error) string {
	switch {
	case errors.Is(err, upload.ErrUnknownKind):
		return "Unknown upload type."
	case errors.Is(err, upload.ErrEmpty):
		return "The file is empty."
	case errors.Is(err, upload.ErrTooLarge):
		return "The file is too large."
	case errors.Is(err, upload.ErrUnsupportedType):
		return "This file type is not allowed."
	}
	return "Upload failed. Please try again."
}

func writeJSON(w http.ResponseWriter, status int, resp uploadResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleUpload handles POST /uploads/{kind} with a multipart "file" field.
//
//	200 {"url": "https://cdn.example.com/images/2026/10/ab12cd34-cover.png"}
//	400 {"error": "This file type is not allowed."}
//	413 {"error": "The file is too large."}
//	502 {"error": "Upload failed. Please try again."}
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	kind := upload.Kind(chi.URLParam(r, "kind"))
	rule, err := h.Uploader.Limits().RuleFor(kind)
	if err != nil {
		writeJSON(w, upload.StatusFor(err), uploadResponse{Error: message(err)})
		return
	}

	// Leave headroom for the multipart framing around the file.
	maxBody := rule.MaxBytes + 1<<20
	if r.ContentLength > maxBody {
		writeJSON(w, http.StatusRequestEntityTooLarge, uploadResponse{Error: message(upload.ErrTooLarge)})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSON(w, http.StatusRequestEntityTooLarge, uploadResponse{Error: message(upload.ErrTooLarge)})
			return
		}
		writeJSON(w, http.StatusBadRequest, uploadResponse{Error: "Invalid upload."})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, uploadResponse{Error: "No file was provided."})
		return
	}
	defer file.Close()

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "upload "+string(kind))
	defer cancel()

	res, err := h.Uploader.Upload(ctx, kind, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	h.Act.AuditLog.Action(ctx, r, audit.EventFileUploaded, "upload", res.Key, err, map[string]string{
		"kind":     string(kind),
		"filename": upload.SanitizeFilename(header.Filename),
	})
	if err != nil {
		status := upload.StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.Log.Error("upload failed", zap.String("kind", string(kind)), zap.Error(err))
		}
		writeJSON(w, status, uploadResponse{Error: message(err)})
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{URL: res.URL})
}
