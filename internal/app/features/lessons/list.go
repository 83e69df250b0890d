// internal/app/features/lessons/list.go
package lessons

import (
	"net/http"
	"sort"
	"strings"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"golang.org/x/sync/errgroup"
)

// ServeList handles GET /lessons?module=<id>&type=&q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	moduleID := query.Get(r, "module")
	typ := query.Get(r, "type")
	q := query.Search(r, "q")
	token := auth.Token(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list lessons")
	defer cancel()

	var (
		modules []models.Module
		lessons []models.Lesson
		g       errgroup.Group
	)
	g.Go(func() (err error) {
		modules, err = h.API.Modules.List(ctx, token, "")
		return err
	})
	g.Go(func() (err error) {
		lessons, err = h.API.Lessons.List(ctx, token, moduleID)
		return err
	})
	var loadErr string
	if err := g.Wait(); err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load lessons.")
		if done {
			return
		}
		loadErr = msg
	}

	names := moduleNames(modules)
	data := listData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Lessons", "/modules"),
		ModuleID:      moduleID,
		Q:             q,
		Type:          typ,
		ModuleOptions: moduleOptions(modules, moduleID),
		TypeOptions:   format.Options(models.LessonTypes, typ),
		Rows:          rows(filter(lessons, q, typ), names),
	}
	if name := names[moduleID]; name != "" {
		data.Title = "Lessons · " + name
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "lessons-table-wrap" {
		templates.RenderSnippet(w, "lessons_table", data)
		return
	}
	templates.Render(w, r, "lessons_list", data)
}

func filter(lessons []models.Lesson, q, typ string) []models.Lesson {
	fq := text.Fold(q)
	out := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if typ != "" && l.Type != typ {
			continue
		}
		if fq != "" && !strings.Contains(text.Fold(l.Title), fq) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func rows(lessons []models.Lesson, names map[string]string) []lessonRow {
	sorted := append([]models.Lesson(nil), lessons...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ModuleID != sorted[j].ModuleID {
			return sorted[i].ModuleID < sorted[j].ModuleID
		}
		return sorted[i].Order < sorted[j].Order
	})
	out := make([]lessonRow, 0, len(sorted))
	for _, l := range sorted {
		out = append(out, lessonRow{
			ID:        l.ID,
			ModuleID:  l.ModuleID,
			Module:    names[l.ModuleID],
			Order:     l.Order,
			Title:     l.Title,
			Type:      format.Label(l.Type),
			Duration:  duration(l.Duration),
			IsPreview: l.IsPreview,
		})
	}
	return out
}

func duration(minutes int) string {
	if minutes <= 0 {
		return "—"
	}
	return format.Count(minutes) + " min"
}

func moduleNames(modules []models.Module) map[string]string {
	out := make(map[string]string, len(modules))
	for _, m := range modules {
		out[m.ID] = m.Title
	}
	return out
}

func moduleOptions(modules []models.Module, selected string) []format.Option {
	out := make([]format.Option, 0, len(modules))
	for _, m := range modules {
		out = append(out, format.Option{Value: m.ID, Label: m.Title, Selected: m.ID == selected})
	}
	return out
}
