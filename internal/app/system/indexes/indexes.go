// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditCollection is the collection the audit store writes to.
const AuditCollection = "audit_events"

// Named audit indexes.
const (
	AuditByTime          = "audit_time"
	AuditByActor         = "audit_actor_time"
	AuditByCategoryEvent = "audit_category_event_time"
	AuditByResource      = "audit_resource"
	AuditRetention       = "audit_ttl"
)

/*
EnsureAll is called at startup. It reconciles the audit_events indexes so a
rename or option change in code is applied to an existing database. A
retention of zero keeps audit events forever and removes any TTL index left
from an earlier setting.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, retention time.Duration, logger *zap.Logger) error {
	coll := db.Collection(AuditCollection)
	if err := ensureIndexSet(ctx, coll, AuditModels(retention), logger); err != nil {
		return fmt.Errorf("%s: %w", AuditCollection, err)
	}
	if retention <= 0 {
		if err := dropIfPresent(ctx, coll, AuditRetention, logger); err != nil {
			return fmt.Errorf("%s: %w", AuditCollection, err)
		}
	}
	return nil
}

// AuditModels returns the desired audit_events indexes.
func AuditModels(retention time.Duration) []mongo.IndexModel {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName(AuditByTime),
		},
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName(AuditByActor),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName(AuditByCategoryEvent),
		},
		{
			Keys:    bson.D{{Key: "resource", Value: 1}, {Key: "resource_id", Value: 1}},
			Options: options.Index().SetName(AuditByResource),
		},
	}
	if retention > 0 {
		models = append(models, mongo.IndexModel{
			Keys: bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().
				SetName(AuditRetention).
				SetExpireAfterSeconds(int32(retention / time.Second)),
		})
	}
	return models
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
	TTL    *int32 `bson:"expireAfterSeconds,omitempty"`
}

type desired struct {
	name   string
	sig    string
	unique bool
	ttl    int32
}

func describe(m mongo.IndexModel) desired {
	d := desired{sig: keySig(m.Keys.(bson.D))}
	if m.Options != nil {
		if m.Options.Name != nil {
			d.name = *m.Options.Name
		}
		if m.Options.Unique != nil {
			d.unique = *m.Options.Unique
		}
		if m.Options.ExpireAfterSeconds != nil {
			d.ttl = *m.Options.ExpireAfterSeconds
		}
	}
	return d
}

// matches reports whether ex already serves d without a rebuild.
func (d desired) matches(ex existingIndex) bool {
	unique := ex.Unique != nil && *ex.Unique
	var ttl int32
	if ex.TTL != nil {
		ttl = *ex.TTL
	}
	return unique == d.unique && ttl == d.ttl && (d.name == "" || ex.Name == d.name)
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listIndexes(ctx context.Context, coll *mongo.Collection, logger *zap.Logger) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bySig := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			logger.Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		bySig[keySig(idx.Key)] = idx
	}
	return bySig, cur.Err()
}

// ensureIndexSet creates each model, replacing an index on the same keys
// whose name, uniqueness or TTL differs.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) error {
	existing, err := listIndexes(ctx, coll, logger)
	if err != nil {
		// A collection that does not exist yet has no indexes to reconcile.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		d := describe(m)
		start := time.Now()
		log := logger.With(
			zap.String("collection", coll.Name()),
			zap.String("name", d.name),
			zap.String("keys", d.sig))

		if ex, ok := existing[d.sig]; ok {
			if d.matches(ex) {
				log.Debug("index up to date")
				continue
			}
			log.Info("replacing index", zap.String("existing", ex.Name))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop %s: %v", d.name, ex.Name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && d.unique {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index, duplicates present", d.name))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", d.name, err))
			}
			log.Warn("index ensure failed", zap.Error(err))
			continue
		}
		log.Info("index ensured",
			zap.Bool("unique", d.unique),
			zap.Int32("ttl_seconds", d.ttl),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func dropIfPresent(ctx context.Context, coll *mongo.Collection, name string, logger *zap.Logger) error {
	existing, err := listIndexes(ctx, coll, logger)
	if err != nil {
		return nil
	}
	for _, ex := range existing {
		if ex.Name != name {
			continue
		}
		if _, err := coll.Indexes().DropOne(ctx, name); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
		logger.Info("index dropped", zap.String("collection", coll.Name()), zap.String("name", name))
	}
	return nil
}
