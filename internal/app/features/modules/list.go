// internal/app/features/modules/list.go
package modules

import (
	"context"
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

// ServeList handles GET /modules?course=<id>. Without a course it lists
// every module; with one it lists that course's outline in order and
// offers reordering.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	courseID := query.Get(r, "course")
	q := query.Search(r, "q")
	token := auth.Token(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list modules")
	defer cancel()

	var (
		courses []models.Course
		modules []models.Module
		g       errgroup.Group
	)
	g.Go(func() (err error) {
		courses, err = h.API.Courses.List(ctx, token)
		return err
	})
	g.Go(func() (err error) {
		modules, err = h.API.Modules.List(ctx, token, courseID)
		return err
	})
	var loadErr string
	if err := g.Wait(); err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load modules.")
		if done {
			return
		}
		loadErr = msg
	}

	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}

	data := listData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Modules", "/courses"),
		CourseID:      courseID,
		CourseTitle:   titles[courseID],
		Q:             q,
		CourseOptions: format.CourseOptions(courses, courseID),
		Rows:          rows(filter(modules, q), titles),
		CanReorder:    courseID != "" && q == "",
	}
	if data.CourseTitle != "" {
		data.Title = "Modules · " + data.CourseTitle
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "modules-table-wrap" {
		templates.RenderSnippet(w, "modules_table", data)
		return
	}
	templates.Render(w, r, "modules_list", data)
}

func filter(modules []models.Module, q string) []models.Module {
	fq := text.Fold(q)
	out := make([]models.Module, 0, len(modules))
	for _, m := range modules {
		if fq == "" || strings.Contains(text.Fold(m.Title), fq) {
			out = append(out, m)
		}
	}
	return out
}

// ordered returns modules sorted by their order index, ties by title.
func ordered(modules []models.Module) []models.Module {
	out := append([]models.Module(nil), modules...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CourseID != out[j].CourseID {
			return out[i].CourseID < out[j].CourseID
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func rows(modules []models.Module, titles map[string]string) []moduleRow {
	sorted := ordered(modules)
	out := make([]moduleRow, 0, len(sorted))
	for i, m := range sorted {
		out = append(out, moduleRow{
			ID:          m.ID,
			CourseID:    m.CourseID,
			CourseTitle: titles[m.CourseID],
			Order:       m.Order,
			Title:       m.Title,
			Description: m.Description,
			Lessons:     format.Count(m.LessonCount),
			First:       i == 0,
			Last:        i == len(sorted)-1,
		})
	}
	return out
}

// courseModules fetches the modules of one course in order.
func (h *Handler) courseModules(ctx context.Context, token, courseID string) ([]models.Module, error) {
	modules, err := h.API.Modules.List(ctx, token, courseID)
	if err != nil {
		return nil, err
	}
	return ordered(modules), nil
}
