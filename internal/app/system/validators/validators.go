// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the collections the dashboard owns (if missing) and tries
// to attach JSON-Schema validators. On servers that don't support
// collMod/validators (e.g. some DocumentDB versions), we log and skip.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll, logger); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema, logger); err != nil {
			if unsupported(err) {
				logger.Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("audit_events", AuditSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureCollection creates name unless it already exists. A concurrent
// create from another instance counts as existing.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, logger *zap.Logger) (created bool, err error) {
	names, listErr := db.ListCollectionNames(ctx, bson.M{"name": name})
	if listErr == nil && len(names) > 0 {
		logger.Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if commandFailed(err, []int32{48}, "already exists", "namespace exists") {
			return false, nil
		}
		logger.Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	logger.Info("created collection", zap.String("collection", name))
	return true, nil
}

// setValidator attaches schema with moderate validation, so documents that
// were already invalid can still be updated.
func setValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M, logger *zap.Logger) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	logger.Info("validator ensured", zap.String("collection", name))
	return nil
}

// unsupported reports whether the server lacks collMod or validators.
func unsupported(err error) bool {
	return commandFailed(err, []int32{59, 115}, "no such command", "not implemented", "not supported")
}

// commandFailed matches err by server code or, for servers that report
// differently, by message fragment.
func commandFailed(err error, codes []int32, fragments ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && slices.Contains(codes, ce.Code) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

// AuditSchema requires the fields the audit log page filters on.
func AuditSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"timestamp", "category", "event_type", "success"},
			"properties": bson.M{
				"timestamp":  bson.M{"bsonType": "date"},
				"category":   bson.M{"enum": bson.A{audit.CategoryAuth, audit.CategoryAdmin}},
				"event_type": bson.M{"bsonType": "string", "minLength": 1},
				"success":    bson.M{"bsonType": "bool"},
				"actor_id":   bson.M{"bsonType": "string"},
				"ip":         bson.M{"bsonType": "string"},
				"details":    bson.M{"bsonType": "object"},
			},
		},
	}
}
