// internal/app/features/users/list.go
package users

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

func listFilter(r *http.Request) stats.UserFilter {
	return stats.UserFilter{
		Search: query.Search(r, "q"),
		Status: query.Get(r, "status"),
	}
}

// ServeList handles GET /users with ?q= and ?status=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := listFilter(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	users, err := h.API.Users.List(ctx, auth.Token(r))
	var loadErr string
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load users.")
		if done {
			return
		}
		loadErr = msg
	}

	filtered := stats.FilterUsers(users, f)
	page, rng := paging.Window(filtered, paging.ParseStart(r), paging.PageSize)
	counts := stats.Count(users, func(u models.User) string { return u.Status }, models.UserStatuses)

	data := listData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Users", "/dashboard"),
		Q:             f.Search,
		Status:        f.Status,
		StatusOptions: format.Options(models.UserStatuses, f.Status),
		Total:         format.Count(len(users)),
		Active:        format.Count(counts[models.UserActive]),
		Blocked:       format.Count(counts[models.UserBlocked]),
		Rows:          rows(page),
		Range:         rng,
		PageQuery:     paging.Query(url.Values{"q": {f.Search}, "status": {f.Status}}),
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "users-table-wrap" {
		templates.RenderSnippet(w, "users_table", data)
		return
	}
	templates.Render(w, r, "users_list", data)
}

func row(u models.User) userRow {
	return userRow{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Status:    u.Status,
		Blocked:   u.Status == models.UserBlocked,
		Courses:   format.Count(u.EnrolledCourses),
		Joined:    format.Date(u.CreatedAt),
		LastLogin: format.DatePtr(u.LastLoginAt),
	}
}

func rows(users []models.User) []userRow {
	out := make([]userRow, 0, len(users))
	for _, u := range users {
		out = append(out, row(u))
	}
	return out
}
