// internal/app/features/admins/list.go
package admins

import (
	"net/http"
	"sort"
	"strings"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/normalize"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
)

// ServeList handles GET /admins. Operators are few, so there is no paging.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := query.Search(r, "q")
	role := normalize.FilterID(query.Get(r, "role"))
	u, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list admins")
	defer cancel()

	all, err := h.API.Admins.List(ctx, auth.Token(r))
	var loadErr string
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load admins.")
		if done {
			return
		}
		loadErr = msg
	}

	var selfID string
	if u != nil {
		selfID = u.ID
	}
	data := listData{
		BaseVM:     viewdata.NewBaseVM(w, r, "Admins", "/dashboard"),
		Q:          q,
		Role:       role,
		RoleFilter: roleOptions(role),
		Rows:       rows(byRank(filter(all, q, role)), selfID),
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "admins-table-wrap" {
		templates.RenderSnippet(w, "admins_table", data)
		return
	}
	templates.Render(w, r, "admins_list", data)
}

func roleOptions(selected string) []format.Option {
	out := make([]format.Option, 0, len(permissions.Roles))
	for _, role := range permissions.Roles {
		out = append(out, format.Option{Value: role, Label: viewdata.RoleLabel(role), Selected: role == selected})
	}
	return out
}

func filter(all []models.Admin, q, role string) []models.Admin {
	needle := text.Fold(q)
	var out []models.Admin
	for _, a := range all {
		if role != "" && permissions.Normalize(a.Role) != role {
			continue
		}
		if needle != "" && !strings.Contains(text.Fold(a.Name), needle) && !strings.Contains(text.Fold(a.Email), needle) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// byRank lists the most privileged operators first, then by name.
func byRank(in []models.Admin) []models.Admin {
	sort.SliceStable(in, func(i, j int) bool {
		ri, rj := permissions.Rank(in[i].Role), permissions.Rank(in[j].Role)
		if ri != rj {
			return ri > rj
		}
		return text.Fold(in[i].Name) < text.Fold(in[j].Name)
	})
	return in
}

func rows(all []models.Admin, selfID string) []adminRow {
	out := make([]adminRow, 0, len(all))
	for _, a := range all {
		role := permissions.Normalize(a.Role)
		var last string
		if !a.LastLogin.IsZero() {
			last = format.DateTime(a.LastLogin)
		}
		out = append(out, adminRow{
			ID:          a.ID,
			Name:        a.Name,
			Email:       a.Email,
			Role:        role,
			RoleLabel:   viewdata.RoleLabel(role),
			Status:      a.Status,
			Joined:      format.Date(a.CreatedAt),
			LastLogin:   last,
			Self:        a.ID == selfID,
			RoleOptions: roleOptions(role),
		})
	}
	return out
}
