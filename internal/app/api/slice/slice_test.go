package slice_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/apiclient"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/testutil"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var (
	listItems = slice.Endpoint{
		Name:     "items.list",
		Method:   http.MethodGet,
		Path:     "/items",
		Provides: slice.ProvideList("Item", func(i item) string { return i.ID }),
	}
	getItem = slice.Endpoint{
		Name:     "items.get",
		Method:   http.MethodGet,
		Path:     "/items/{id}",
		Provides: slice.ProvideItem("Item", func(i item) string { return i.ID }),
	}
	updateItem = slice.Endpoint{
		Name:        "items.update",
		Method:      http.MethodPatch,
		Path:        "/items/{id}",
		Invalidates: slice.InvalidateItem("Item"),
	}
)

func TestQuery_CachesUntilMutation(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/items", []item{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}})
	be.Reply(http.MethodPatch, "/items/{id}", item{ID: "1", Name: "uno"})
	r := be.Runner()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := slice.Query[[]item](ctx, r, listItems, slice.Call{Token: "tok"})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(got) != 2 || got[1].Name != "two" {
			t.Fatalf("Query = %+v", got)
		}
	}
	if n := be.Count(http.MethodGet, "/items"); n != 1 {
		t.Errorf("backend list calls = %d, want 1 (cached)", n)
	}

	updated, err := slice.Mutate[item](ctx, r, updateItem, slice.Call{
		Token:  "tok",
		Params: map[string]string{"id": "1"},
		Body:   map[string]string{"name": "uno"},
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if updated.Name != "uno" {
		t.Errorf("Mutate result = %+v", updated)
	}

	_, _ = slice.Query[[]item](ctx, r, listItems, slice.Call{Token: "tok"})
	if n := be.Count(http.MethodGet, "/items"); n != 2 {
		t.Errorf("backend list calls after update = %d, want 2", n)
	}
}

func TestQuery_ScopedByToken(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/items", []item{{ID: "1"}})
	r := be.Runner()
	ctx := context.Background()

	_, _ = slice.Query[[]item](ctx, r, listItems, slice.Call{Token: "a"})
	_, _ = slice.Query[[]item](ctx, r, listItems, slice.Call{Token: "b"})
	if n := be.Count(http.MethodGet, "/items"); n != 2 {
		t.Errorf("backend calls = %d, want 2 (one per admin)", n)
	}
	if c, _ := be.Last(http.MethodGet, "/items"); c.Auth != "Bearer b" {
		t.Errorf("Authorization = %q", c.Auth)
	}
}

func TestMutate_FailureKeepsCache(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/items/{id}", item{ID: "1", Name: "one"})
	be.Fail(http.MethodPatch, "/items/{id}", http.StatusUnprocessableEntity, "Name taken")
	r := be.Runner()
	ctx := context.Background()

	_, _ = slice.Query[item](ctx, r, getItem, slice.ID("tok", "1"))
	_, err := slice.Mutate[item](ctx, r, updateItem, slice.ID("tok", "1"))
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := apiclient.ErrorMessage(err, "fb"); msg != "Name taken" {
		t.Errorf("ErrorMessage = %q", msg)
	}
	_, _ = slice.Query[item](ctx, r, getItem, slice.ID("tok", "1"))
	if n := be.Count(http.MethodGet, "/items/1"); n != 1 {
		t.Errorf("detail calls = %d, want 1 (failed mutation must not invalidate)", n)
	}
}

func TestQuery_ErrorNotCached(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Fail(http.MethodGet, "/items", http.StatusUnauthorized, "Token expired")
	r := be.Runner()

	for i := 0; i < 2; i++ {
		_, err := slice.Query[[]item](context.Background(), r, listItems, slice.Call{Token: "tok"})
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	}
	if n := be.Count(http.MethodGet, "/items"); n != 2 {
		t.Errorf("backend calls = %d, want 2", n)
	}
}

func TestQuery_NoCache(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	be.Reply(http.MethodGet, "/items", []item{{ID: "1"}})
	r := slice.NewRunner(be.Client(), nil, 0, nil, nil)

	for i := 0; i < 2; i++ {
		if _, err := slice.Query[[]item](context.Background(), r, listItems, slice.Call{}); err != nil {
			t.Fatal(err)
		}
	}
	if n := be.Count(http.MethodGet, "/items"); n != 2 {
		t.Errorf("backend calls = %d, want 2 without cache", n)
	}
}

func TestTagHelpers(t *testing.T) {
	tags := slice.ProvideList("Course", func(s string) string { return s })([]string{"a", "", "b"})
	want := []apicache.Tag{apicache.List("Course"), apicache.Item("Course", "a"), apicache.Item("Course", "b")}
	if len(tags) != len(want) {
		t.Fatalf("ProvideList = %v", tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tag[%d] = %v, want %v", i, tags[i], want[i])
		}
	}

	inv := slice.InvalidateItem("Course", apicache.List("Module"))(slice.ID("tok", "c9"))
	if len(inv) != 3 || inv[1] != apicache.Item("Course", "c9") || inv[2] != apicache.List("Module") {
		t.Errorf("InvalidateItem = %v", inv)
	}
	if got := slice.InvalidateList("Review")(slice.Call{}); len(got) != 1 || got[0] != apicache.List("Review") {
		t.Errorf("InvalidateList = %v", got)
	}
}
