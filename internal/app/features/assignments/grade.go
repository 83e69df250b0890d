// internal/app/features/assignments/grade.go
package assignments

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/toast"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

const maxFeedback = 5000

// HandleGrade handles POST /assignments/{id}/submissions/{sid}/grade. The
// score must lie between 0 and the assignment's max score.
func (h *Handler) HandleGrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sid := chi.URLParam(r, "sid")
	back := "/assignments/" + id
	token := auth.Token(r)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", back)
		return
	}
	score, ok := formutil.Float(r, "score", -1)
	if !ok || score < 0 {
		h.Act.Notify(w, r, toast.Error("Score must be a number of 0 or more."))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	feedback := htmlsanitize.StripTags(formutil.Trimmed(r, "feedback"))
	if rs := []rune(feedback); len(rs) > maxFeedback {
		feedback = string(rs[:maxFeedback])
	}

	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Submission graded.",
		Failure:  "Failed to grade submission.",
		Redirect: back,
		Events:   []string{"submissions:refresh"},
		Audit: &actions.Audit{
			Event: audit.EventSubmissionGraded, Resource: "submission", ResourceID: sid,
			Details: map[string]string{"assignment": id, "score": formutil.Trimmed(r, "score")},
		},
	}, func(ctx context.Context) error {
		a, err := h.API.Assignments.Get(ctx, token, id)
		if err != nil {
			return err
		}
		if a.MaxScore > 0 && score > float64(a.MaxScore) {
			return fmt.Errorf("Score must be between 0 and %d.", a.MaxScore)
		}
		_, err = h.API.Assignments.Grade(ctx, token, sid, models.GradeInput{Score: score, Feedback: feedback})
		return err
	})
}
