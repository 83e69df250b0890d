// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/learnadmin/internal/app/system/workers"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the connections and shared runtime state built before the
// router: Mongo for audit events, the query cache, the login limiter and
// the worker that prunes both.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Redis is nil unless cache_backend is redis.
	Redis *redis.Client
	Cache apicache.Cache

	Limiter *ratelimit.LoginLimiter
	Pruner  *workers.CachePruner
}
