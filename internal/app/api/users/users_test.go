package users_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
)

func TestUsers_Paths(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/users", testutil.Users())
	be.Reply(http.MethodGet, "/users/{id}", testutil.Users()[0])
	be.Reply(http.MethodPatch, "/users/{id}/status", nil)
	b := be.Backend()
	ctx := context.Background()

	list, err := b.Users.List(ctx, "tok")
	if err != nil || len(list) != len(testutil.Users()) {
		t.Fatalf("List = %d, %v", len(list), err)
	}
	got, err := b.Users.Get(ctx, "tok", "u1")
	if err != nil || got.Name != "Grace Hopper" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if err := b.Users.SetStatus(ctx, "tok", "u1", models.StatusUpdate{Status: models.UserBlocked, Reason: "spam"}); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	var body models.StatusUpdate
	if c, _ := be.Last(http.MethodPatch, "/users/u1/status"); c.DecodeBody(&body) != nil || body.Status != models.UserBlocked || body.Reason != "spam" {
		t.Errorf("status body = %+v", body)
	}
}

func TestUsers_SetStatusInvalidates(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/users", testutil.Users())
	be.Reply(http.MethodGet, "/users/{id}", testutil.Users()[0])
	be.Reply(http.MethodGet, "/users/u4", testutil.Users()[len(testutil.Users())-1])
	be.Reply(http.MethodGet, "/enrollments", testutil.Enrollments())
	be.Reply(http.MethodPatch, "/users/{id}/status", nil)
	b := be.Backend()
	ctx := context.Background()

	warm := func() {
		_, _ = b.Users.List(ctx, "tok")
		_, _ = b.Users.Get(ctx, "tok", "u1")
		_, _ = b.Users.Get(ctx, "tok", "u4")
		_, _ = b.Enrollments.List(ctx, "tok")
	}
	warm()
	warm()
	if err := b.Users.SetStatus(ctx, "tok", "u1", models.StatusUpdate{Status: models.UserBlocked}); err != nil {
		t.Fatal(err)
	}
	warm()

	tests := map[string]int{
		"/users":       2,
		"/users/u1":    2,
		"/users/u4":    1,
		"/enrollments": 1,
	}
	for path, want := range tests {
		if n := be.Count(http.MethodGet, path); n != want {
			t.Errorf("GET %s calls = %d, want %d", path, n, want)
		}
	}
}

func TestUsers_FailedStatusKeepsCache(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/users", testutil.Users())
	be.Fail(http.MethodPatch, "/users/{id}/status", http.StatusNotFound, "User not found")
	b := be.Backend()
	ctx := context.Background()

	_, _ = b.Users.List(ctx, "tok")
	if err := b.Users.SetStatus(ctx, "tok", "zz", models.StatusUpdate{Status: models.UserBlocked}); err == nil {
		t.Fatal("expected error")
	}
	_, _ = b.Users.List(ctx, "tok")
	if n := be.Count(http.MethodGet, "/users"); n != 1 {
		t.Errorf("list calls = %d, want 1", n)
	}
}
