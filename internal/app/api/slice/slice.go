// Package slice declares backend endpoints together with the cache tags
// they provide or invalidate, and runs them through the shared client.
//
// Reads go through Query, which serves from the cache when it can and
// records the tags the result provides. Writes go through Mutate, which
// invalidates the endpoint's tags once the backend has accepted the change.
package slice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/apiclient"
	"github.com/dalemusser/learnadmin/internal/app/system/metrics"
	"go.uber.org/zap"
)

// Endpoint is one declared backend call.
type Endpoint struct {
	Name   string
	Method string
	Path   string
	// Provides returns the tags a query result carries. Called with the
	// decoded result.
	Provides func(result any) []apicache.Tag
	// Invalidates returns the tags a successful mutation makes stale.
	Invalidates func(call Call) []apicache.Tag
}

// Call carries the per-request inputs for an Endpoint.
type Call struct {
	Token  string
	Params map[string]string
	Query  url.Values
	Body   any
}

// ID is shorthand for a call whose only path param is {id}.
func ID(token, id string) Call {
	return Call{Token: token, Params: map[string]string{"id": id}}
}

// Doer is the part of *apiclient.Client a Runner needs.
type Doer interface {
	Do(ctx context.Context, req apiclient.Request) (*apiclient.Envelope, error)
}

// Runner executes endpoints. Cache may be nil, in which case every query
// goes to the backend.
type Runner struct {
	Client  Doer
	Cache   apicache.Cache
	TTL     time.Duration
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

// NewRunner builds a Runner. A nil logger is replaced with zap.NewNop.
func NewRunner(client Doer, cache apicache.Cache, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = apicache.DefaultTTL
	}
	return &Runner{Client: client, Cache: cache, TTL: ttl, Metrics: m, Log: logger}
}

func (r *Runner) request(ep Endpoint, call Call) apiclient.Request {
	method := ep.Method
	if method == "" {
		method = http.MethodGet
	}
	return apiclient.Request{
		Name:   ep.Name,
		Method: method,
		Path:   ep.Path,
		Params: call.Params,
		Query:  call.Query,
		Body:   call.Body,
		Token:  call.Token,
	}
}

// Query runs a read endpoint, serving from the cache on a hit.
func Query[T any](ctx context.Context, r *Runner, ep Endpoint, call Call) (T, error) {
	var out T
	key := apicache.Key(call.Token, ep.Name, call.Params, call.Query)

	if r.Cache != nil {
		raw, ok, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Metrics.CacheLookup("error")
			r.Log.Warn("cache get failed", zap.String("endpoint", ep.Name), zap.Error(err))
		case ok:
			if err := json.Unmarshal(raw, &out); err == nil {
				r.Metrics.CacheLookup("hit")
				return out, nil
			}
			r.Metrics.CacheLookup("error")
			r.Log.Warn("cached value undecodable, refetching", zap.String("endpoint", ep.Name))
		default:
			r.Metrics.CacheLookup("miss")
		}
	}

	env, err := r.Client.Do(ctx, r.request(ep, call))
	if err != nil {
		return out, err
	}
	if err := apiclient.DecodeData(env, &out); err != nil {
		return out, err
	}

	if r.Cache != nil {
		var tags []apicache.Tag
		if ep.Provides != nil {
			tags = ep.Provides(out)
		}
		raw, err := json.Marshal(out)
		if err == nil {
			err = r.Cache.Set(ctx, key, raw, tags, r.TTL)
		}
		if err != nil {
			r.Log.Warn("cache set failed", zap.String("endpoint", ep.Name), zap.Error(err))
		}
	}
	return out, nil
}

// Mutate runs a write endpoint and, on success, invalidates its tags.
func Mutate[T any](ctx context.Context, r *Runner, ep Endpoint, call Call) (T, error) {
	var out T
	env, err := r.Client.Do(ctx, r.request(ep, call))
	if err != nil {
		return out, err
	}
	r.invalidate(ctx, ep, call)
	if err := apiclient.DecodeData(env, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Exec is Mutate for endpoints whose response data is ignored.
func Exec(ctx context.Context, r *Runner, ep Endpoint, call Call) error {
	_, err := Mutate[json.RawMessage](ctx, r, ep, call)
	return err
}

func (r *Runner) invalidate(ctx context.Context, ep Endpoint, call Call) {
	if r.Cache == nil || ep.Invalidates == nil {
		return
	}
	tags := ep.Invalidates(call)
	if len(tags) == 0 {
		return
	}
	n, err := r.Cache.InvalidateTags(ctx, tags...)
	if err != nil {
		r.Log.Warn("cache invalidation failed", zap.String("endpoint", ep.Name), zap.Error(err))
		return
	}
	r.Metrics.CacheInvalidated(n)
	r.Log.Debug("cache invalidated",
		zap.String("endpoint", ep.Name),
		zap.Int("entries", n))
}
