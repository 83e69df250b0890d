package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Check is one dependency check. A failing Critical check turns the
// response into a 503; other failures only mark it degraded.
type Check struct {
	Name     string
	Critical bool
	Run      func(ctx context.Context) error
}

// MongoCheck pings the audit database.
func MongoCheck(client *mongo.Client) Check {
	return Check{Name: "mongo", Run: func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}}
}

// Handler holds the checks run for GET /health.
type Handler struct {
	Checks []Check
	Log    *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(logger *zap.Logger, checks ...Check) *Handler {
	return &Handler{Checks: checks, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Serve handles GET /health.
//
// All checks run concurrently under the ping timeout:
//
//	{ "status":"ok", "checks":{"backend":"ok","cache":"ok","mongo":"ok"} }
//
// A failed critical check yields 503 with status "error"; a failed
// non-critical check yields 200 with status "degraded".
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(h.Checks))}
	var (
		mu       sync.Mutex
		critical bool
	)

	var g errgroup.Group
	for _, c := range h.Checks {
		g.Go(func() error {
			err := c.Run(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				resp.Checks[c.Name] = "ok"
				return nil
			}
			h.Log.Warn("health-check failed", zap.String("check", c.Name), zap.Error(err))
			resp.Checks[c.Name] = "error: " + err.Error()
			if c.Critical {
				critical = true
			} else if resp.Status == "ok" {
				resp.Status = "degraded"
			}
			return nil
		})
	}
	_ = g.Wait()

	w.Header().Set("Content-Type", "application/json")
	if critical {
		resp.Status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
