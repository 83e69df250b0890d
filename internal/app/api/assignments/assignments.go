// Package assignments is the backend slice for /assignment and its
// submissions.
package assignments

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func assignmentID(a models.Assignment) string { return a.ID }

var (
	listEP = slice.Endpoint{
		Name: "assignments.list", Method: http.MethodGet, Path: "/assignment",
		Provides: slice.ProvideList(api.TagAssignment, assignmentID),
	}
	getEP = slice.Endpoint{
		Name: "assignments.get", Method: http.MethodGet, Path: "/assignment/{id}",
		Provides: slice.ProvideItem(api.TagAssignment, assignmentID),
	}
	createEP = slice.Endpoint{
		Name: "assignments.create", Method: http.MethodPost, Path: "/assignment",
		Invalidates: slice.InvalidateList(api.TagAssignment),
	}
	updateEP = slice.Endpoint{
		Name: "assignments.update", Method: http.MethodPatch, Path: "/assignment/{id}",
		Invalidates: slice.InvalidateItem(api.TagAssignment),
	}
	deleteEP = slice.Endpoint{
		Name: "assignments.delete", Method: http.MethodDelete, Path: "/assignment/{id}",
		Invalidates: slice.InvalidateItem(api.TagAssignment, apicache.List(api.TagSubmission)),
	}
	submissionsEP = slice.Endpoint{
		Name: "assignments.submissions", Method: http.MethodGet, Path: "/assignment/{id}/submissions",
		Provides: slice.ProvideList(api.TagSubmission, func(s models.Submission) string { return s.ID }),
	}
	// Grading changes submission state and the assignment's graded count.
	gradeEP = slice.Endpoint{
		Name: "assignments.grade", Method: http.MethodPatch, Path: "/assignment/submission/{id}",
		Invalidates: slice.InvalidateItem(api.TagSubmission, apicache.List(api.TagAssignment)),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

// List returns assignments, optionally restricted to one course.
func (s *Slice) List(ctx context.Context, token, courseID string) ([]models.Assignment, error) {
	call := slice.Call{Token: token}
	if courseID != "" {
		call.Query = url.Values{"courseId": {courseID}}
	}
	return slice.Query[[]models.Assignment](ctx, s.r, listEP, call)
}

func (s *Slice) Get(ctx context.Context, token, id string) (models.Assignment, error) {
	return slice.Query[models.Assignment](ctx, s.r, getEP, slice.ID(token, id))
}

func (s *Slice) Create(ctx context.Context, token string, in models.AssignmentInput) (models.Assignment, error) {
	return slice.Mutate[models.Assignment](ctx, s.r, createEP, slice.Call{Token: token, Body: in})
}

func (s *Slice) Update(ctx context.Context, token, id string, in models.AssignmentInput) (models.Assignment, error) {
	call := slice.ID(token, id)
	call.Body = in
	return slice.Mutate[models.Assignment](ctx, s.r, updateEP, call)
}

func (s *Slice) Delete(ctx context.Context, token, id string) error {
	return slice.Exec(ctx, s.r, deleteEP, slice.ID(token, id))
}

// Submissions lists the submissions for an assignment.
func (s *Slice) Submissions(ctx context.Context, token, assignmentID string) ([]models.Submission, error) {
	return slice.Query[[]models.Submission](ctx, s.r, submissionsEP, slice.ID(token, assignmentID))
}

// Grade scores one submission.
func (s *Slice) Grade(ctx context.Context, token, submissionID string, in models.GradeInput) (models.Submission, error) {
	call := slice.ID(token, submissionID)
	call.Body = in
	return slice.Mutate[models.Submission](ctx, s.r, gradeEP, call)
}
