// internal/app/features/lessons/view.go
package lessons

import (
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeView shows a lesson with its content rendered through the sanitizer.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := auth.Token(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get lesson")
	defer cancel()

	l, err := h.API.Lessons.Get(ctx, token, id)
	if err != nil {
		h.Act.Fail(w, r, err, "Lesson not found.", "/lessons")
		return
	}
	var module string
	if m, err := h.API.Modules.Get(ctx, token, l.ModuleID); err == nil {
		module = m.Title
	}

	templates.Render(w, r, "lesson_view", viewData{
		BaseVM:      viewdata.NewBaseVM(w, r, l.Title, listURL(l.ModuleID)),
		ID:          l.ID,
		ModuleID:    l.ModuleID,
		Module:      module,
		Title:       l.Title,
		Type:        format.Label(l.Type),
		Duration:    duration(l.Duration),
		Order:       l.Order,
		IsPreview:   l.IsPreview,
		VideoURL:    l.VideoURL,
		DocumentURL: l.DocumentURL,
		Content:     htmlsanitize.PrepareForDisplay(l.Content),
		Updated:     format.DateTime(l.UpdatedAt),
	})
}
