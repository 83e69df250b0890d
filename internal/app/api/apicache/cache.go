// Package apicache holds query results keyed by request and labelled with
// tags. Mutations invalidate tags, which drops every entry carrying them so
// the next read refetches from the backend.
package apicache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// ListID marks a tag that stands for a whole collection.
const ListID = "LIST"

// DefaultTTL bounds how long a cached query is served without refetching.
const DefaultTTL = 60 * time.Second

// Tag labels cached data with the record type and id it contains.
type Tag struct {
	Type string
	ID   string
}

// List returns the collection tag for typ.
func List(typ string) Tag { return Tag{Type: typ, ID: ListID} }

// Item returns the tag for one record.
func Item(typ, id string) Tag { return Tag{Type: typ, ID: id} }

func (t Tag) String() string { return t.Type + ":" + t.ID }

// Cache stores query results. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, tags []Tag, ttl time.Duration) error
	// InvalidateTags drops every entry carrying any of tags and returns how
	// many entries were removed.
	InvalidateTags(ctx context.Context, tags ...Tag) (int, error)
	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Key builds a cache key for one query. The token is hashed so entries of
// different admins never collide and raw tokens never reach the cache.
func Key(token, endpoint string, params map[string]string, query url.Values) string {
	sum := sha256.Sum256([]byte(token))
	var b strings.Builder
	b.WriteString(hex.EncodeToString(sum[:8]))
	b.WriteByte('|')
	b.WriteString(endpoint)
	if len(params) > 0 {
		p := url.Values{}
		for k, v := range params {
			p.Set(k, v)
		}
		b.WriteByte('|')
		b.WriteString(p.Encode())
	}
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}
	return b.String()
}
