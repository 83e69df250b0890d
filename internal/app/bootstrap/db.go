// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/system/indexes"
	"github.com/dalemusser/learnadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/timezones"
	"github.com/dalemusser/learnadmin/internal/app/system/validators"
	"github.com/dalemusser/learnadmin/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// pruneInterval is how often expired cache entries and limiter windows are
// swept.
const pruneInterval = time.Minute

// ConnectDB opens Mongo and, when configured, Redis, then builds the query
// cache and login limiter on top of them.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	timeouts.ConfigureFromEnv()

	var deps DBDeps

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(appCfg.MongoURI).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}
	deps.MongoClient = client
	deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	pruneTargets := map[string]workers.Pruner{}

	switch appCfg.CacheBackend {
	case CacheRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     appCfg.RedisAddr,
			Password: appCfg.RedisPassword,
			DB:       appCfg.RedisDB,
		})
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			_ = client.Disconnect(context.Background())
			return DBDeps{}, fmt.Errorf("ping redis: %w", err)
		}
		deps.Redis = rdb
		deps.Cache = apicache.NewRedis(rdb, "")
		logger.Info("query cache: redis", zap.String("addr", appCfg.RedisAddr))
	default:
		mem := apicache.NewMemory()
		deps.Cache = mem
		pruneTargets["query cache"] = mem
		logger.Info("query cache: memory")
	}

	deps.Limiter = ratelimit.NewLoginLimiter(appCfg.LoginRateIP, appCfg.LoginRateEmail)
	pruneTargets["login limiter"] = deps.Limiter
	deps.Pruner = workers.NewCachePruner(logger, pruneInterval, pruneTargets)

	return deps, nil
}

// EnsureSchema attaches the audit_events validator, reconciles its indexes
// and loads the embedded timezone list so a broken data file fails startup
// rather than the first request.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if err := validators.EnsureAll(ctx, deps.MongoDatabase, logger); err != nil {
		return fmt.Errorf("validators: %w", err)
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase, appCfg.AuditRetention, logger); err != nil {
		return fmt.Errorf("indexes: %w", err)
	}
	if err := timezones.Load(); err != nil {
		return fmt.Errorf("load timezones: %w", err)
	}
	logger.Info("schema ready")
	return nil
}
