// internal/app/features/notifications/list.go
package notifications

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
)

// ServeList handles GET /notifications, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := query.Search(r, "q")
	audience := query.Get(r, "audience")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list notifications")
	defer cancel()

	all, err := h.API.Notifications.List(ctx, auth.Token(r))
	var loadErr string
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load notifications.")
		if done {
			return
		}
		loadErr = msg
	}

	filtered := newestFirst(filter(all, q, audience))
	page, rng := paging.Window(filtered, paging.ParseStart(r), paging.PageSize)

	data := listData{
		BaseVM:          viewdata.NewBaseVM(w, r, "Notifications", "/dashboard"),
		Q:               q,
		Audience:        audience,
		AudienceOptions: format.Options(models.NotificationAudiences, audience),
		Rows:            rows(page),
		Range:           rng,
		PageQuery:       paging.Query(url.Values{"q": {q}, "audience": {audience}}),
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "notifications-table-wrap" {
		templates.RenderSnippet(w, "notifications_table", data)
		return
	}
	templates.Render(w, r, "notifications_list", data)
}

func filter(all []models.Notification, q, audience string) []models.Notification {
	needle := text.Fold(q)
	var out []models.Notification
	for _, n := range all {
		if audience != "" && n.Audience != audience {
			continue
		}
		if needle != "" &&
			!strings.Contains(text.Fold(n.Title), needle) &&
			!strings.Contains(text.Fold(htmlsanitize.StripTags(n.Message)), needle) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func newestFirst(in []models.Notification) []models.Notification {
	sort.SliceStable(in, func(i, j int) bool { return in[i].CreatedAt.After(in[j].CreatedAt) })
	return in
}

func rows(all []models.Notification) []notificationRow {
	out := make([]notificationRow, 0, len(all))
	for _, n := range all {
		out = append(out, notificationRow{
			ID:       n.ID,
			Title:    n.Title,
			Message:  htmlsanitize.PrepareForDisplay(n.Message),
			Audience: format.Label(n.Audience),
			Type:     n.Type,
			SentBy:   n.SentBy,
			Sent:     format.DateTime(n.CreatedAt),
		})
	}
	return out
}
