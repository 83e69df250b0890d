package enrollments_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/api/backend"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
)

func TestEnrollments_Paths(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/enrollments", testutil.Enrollments())
	be.Reply(http.MethodGet, "/enrollments/{id}", testutil.Enrollments()[0])
	be.Reply(http.MethodPatch, "/enrollments/{id}", models.Enrollment{ID: "e1", Status: models.EnrollmentCompleted})
	be.Reply(http.MethodDelete, "/enrollments/{id}", nil)
	b := be.Backend()
	ctx := context.Background()

	list, err := b.Enrollments.List(ctx, "tok")
	if err != nil || len(list) != len(testutil.Enrollments()) {
		t.Fatalf("List = %d, %v", len(list), err)
	}
	got, err := b.Enrollments.Get(ctx, "tok", "e1")
	if err != nil || got.StudentName != "Grace Hopper" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	updated, err := b.Enrollments.Update(ctx, "tok", "e1", models.EnrollmentUpdate{Status: models.EnrollmentCompleted})
	if err != nil || updated.Status != models.EnrollmentCompleted {
		t.Fatalf("Update = %+v, %v", updated, err)
	}
	call, _ := be.Last(http.MethodPatch, "/enrollments/e1")
	var body map[string]string
	if err := call.DecodeBody(&body); err != nil || body["status"] != models.EnrollmentCompleted {
		t.Errorf("update body = %s", call.Body)
	}
	if _, ok := body["paymentStatus"]; ok {
		t.Errorf("empty payment status sent: %s", call.Body)
	}
	if err := b.Enrollments.Delete(ctx, "tok", "e1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if c, _ := be.Last(http.MethodDelete, "/enrollments/e1"); c.Auth != "Bearer tok" {
		t.Errorf("Authorization = %q", c.Auth)
	}
}

func TestEnrollments_Invalidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(context.Context, *backend.Backend) error
		// stale lists are refetched after the mutation; the rest stay cached.
		stale map[string]bool
	}{
		{
			name: "update",
			mutate: func(ctx context.Context, b *backend.Backend) error {
				_, err := b.Enrollments.Update(ctx, "tok", "e1", models.EnrollmentUpdate{PaymentStatus: models.PaymentRefunded})
				return err
			},
			stale: map[string]bool{"/enrollments": true, "/analytics/overview": true, "/course": false, "/users": false},
		},
		{
			name: "delete",
			mutate: func(ctx context.Context, b *backend.Backend) error {
				return b.Enrollments.Delete(ctx, "tok", "e1")
			},
			stale: map[string]bool{"/enrollments": true, "/analytics/overview": true, "/course": true, "/users": true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := testutil.NewFakeBackend(t)
			be.Reply(http.MethodGet, "/enrollments", testutil.Enrollments())
			be.Reply(http.MethodGet, "/analytics/overview", testutil.Overview())
			be.Reply(http.MethodGet, "/course", testutil.Courses())
			be.Reply(http.MethodGet, "/users", testutil.Users())
			be.Reply(http.MethodPatch, "/enrollments/{id}", testutil.Enrollments()[0])
			be.Reply(http.MethodDelete, "/enrollments/{id}", nil)
			b := be.Backend()
			ctx := context.Background()

			warm := func() {
				_, _ = b.Enrollments.List(ctx, "tok")
				_, _ = b.Analytics.Overview(ctx, "tok")
				_, _ = b.Courses.List(ctx, "tok")
				_, _ = b.Users.List(ctx, "tok")
			}
			warm()
			warm()
			if err := tt.mutate(ctx, b); err != nil {
				t.Fatal(err)
			}
			warm()

			for path, stale := range tt.stale {
				want := 1
				if stale {
					want = 2
				}
				if n := be.Count(http.MethodGet, path); n != want {
					t.Errorf("GET %s calls = %d, want %d", path, n, want)
				}
			}
		})
	}
}

func TestEnrollments_FailedDeleteKeepsCache(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/enrollments/{id}", testutil.Enrollments()[0])
	be.Fail(http.MethodDelete, "/enrollments/{id}", http.StatusConflict, "Enrollment has payments")
	b := be.Backend()
	ctx := context.Background()

	_, _ = b.Enrollments.Get(ctx, "tok", "e1")
	if err := b.Enrollments.Delete(ctx, "tok", "e1"); err == nil {
		t.Fatal("expected error")
	}
	_, _ = b.Enrollments.Get(ctx, "tok", "e1")
	if n := be.Count(http.MethodGet, "/enrollments/e1"); n != 1 {
		t.Errorf("get calls = %d, want 1", n)
	}
}
