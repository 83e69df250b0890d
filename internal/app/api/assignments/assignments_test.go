package assignments_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
)

func TestAssignments_GradeInvalidatesSubmissions(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/assignment/{id}/submissions", testutil.Submissions())
	be.Reply(http.MethodPatch, "/assignment/submission/{id}", models.Submission{ID: "s1", Status: models.SubmissionGraded})
	b := be.Backend()
	ctx := context.Background()

	subs, err := b.Assignments.Submissions(ctx, "tok", "a1")
	if err != nil || len(subs) != 2 {
		t.Fatalf("Submissions = %d, %v", len(subs), err)
	}
	graded, err := b.Assignments.Grade(ctx, "tok", "s1", models.GradeInput{Score: 91, Feedback: "Great"})
	if err != nil || graded.Status != models.SubmissionGraded {
		t.Fatalf("Grade = %+v, %v", graded, err)
	}
	call, ok := be.Last(http.MethodPatch, "/assignment/submission/s1")
	if !ok {
		t.Fatal("grade call not recorded")
	}
	var in models.GradeInput
	if err := call.DecodeBody(&in); err != nil || in.Score != 91 {
		t.Errorf("grade body = %+v, %v", in, err)
	}

	_, _ = b.Assignments.Submissions(ctx, "tok", "a1")
	if n := be.Count(http.MethodGet, "/assignment/a1/submissions"); n != 2 {
		t.Errorf("submissions calls = %d, want 2 after grading", n)
	}
}
