package apicache

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestMemory_GetSetExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	if err := m.Set(ctx, "k", []byte("v"), []Tag{List("Course")}, time.Minute); err != nil {
		t.Fatal(err)
	}
	if got, ok, _ := m.Get(ctx, "k"); !ok || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, ok)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("entry should expire at its TTL")
	}
	if m.Len() != 0 {
		t.Errorf("expired entry should be removed on read, Len = %d", m.Len())
	}
}

func TestMemory_InvalidateTags(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.Set(ctx, "list", []byte("l"), []Tag{List("Course"), Item("Course", "c1"), Item("Course", "c2")}, 0)
	_ = m.Set(ctx, "c1", []byte("1"), []Tag{Item("Course", "c1")}, 0)
	_ = m.Set(ctx, "c2", []byte("2"), []Tag{Item("Course", "c2")}, 0)
	_ = m.Set(ctx, "mods", []byte("m"), []Tag{List("Module")}, 0)

	n, err := m.InvalidateTags(ctx, Item("Course", "c1"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2 (list + detail)", n)
	}
	for key, want := range map[string]bool{"list": false, "c1": false, "c2": true, "mods": true} {
		if _, ok, _ := m.Get(ctx, key); ok != want {
			t.Errorf("after invalidate, %s present = %v, want %v", key, ok, want)
		}
	}

	n, _ = m.InvalidateTags(ctx, Item("Course", "c2"), List("Module"))
	if n != 2 {
		t.Errorf("second invalidate removed %d, want 2", n)
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
	if n, _ := m.InvalidateTags(ctx, List("Nothing")); n != 0 {
		t.Errorf("unknown tag removed %d", n)
	}
}

func TestMemory_SetReplacesTags(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.Set(ctx, "k", []byte("a"), []Tag{Item("Review", "r1")}, 0)
	_ = m.Set(ctx, "k", []byte("b"), []Tag{Item("Review", "r2")}, 0)

	if n, _ := m.InvalidateTags(ctx, Item("Review", "r1")); n != 0 {
		t.Errorf("old tag should no longer reference the key, removed %d", n)
	}
	if got, ok, _ := m.Get(ctx, "k"); !ok || string(got) != "b" {
		t.Errorf("Get = %q, %v", got, ok)
	}
}

func TestMemory_PruneAndFlush(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemory()
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "short", []byte("s"), nil, time.Second)
	_ = m.Set(ctx, "long", []byte("l"), nil, time.Hour)
	now = now.Add(2 * time.Second)

	if n := m.Prune(); n != 1 {
		t.Errorf("Prune = %d, want 1", n)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	_ = m.Flush(ctx)
	if m.Len() != 0 {
		t.Errorf("Len after Flush = %d", m.Len())
	}
}

func TestKey(t *testing.T) {
	q := url.Values{"courseId": {"c1"}}
	a := Key("token-a", "modules.list", nil, q)
	b := Key("token-b", "modules.list", nil, q)
	if a == b {
		t.Error("keys for different tokens must differ")
	}
	if a != Key("token-a", "modules.list", nil, url.Values{"courseId": {"c1"}}) {
		t.Error("key must be deterministic")
	}
	if a == Key("token-a", "modules.list", nil, url.Values{"courseId": {"c2"}}) {
		t.Error("query must be part of the key")
	}
	if Key("t", "courses.get", map[string]string{"id": "1"}, nil) == Key("t", "courses.get", map[string]string{"id": "2"}, nil) {
		t.Error("params must be part of the key")
	}
	for _, k := range []string{a, b} {
		if strings.Contains(k, "token-") {
			t.Errorf("raw token leaked into key %q", k)
		}
	}
}
