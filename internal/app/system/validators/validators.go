// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/jawahirullah/portal/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Content collections carry closed enumerations the forms also enforce.
	ensure(models.CollBooks, publishSchema("title", "title_tamil"))
	ensure(models.CollSpeeches, publishSchema("title", "title_tamil", "video_url"))
	ensure(models.CollBlogs, blogsSchema())
	ensure(models.CollContacts, contactsSchema())
	ensure(models.CollUpdates, updatesSchema())
	ensure(models.CollTestimonials, testimonialsSchema())
	ensure(models.CollNewsletter, newsletterSchema())

	// Auth collections.
	ensure(models.CollAdmins, adminsSchema())
	ensure(models.CollAuthSessions, nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func enumOf[T ~string](vals []T) bson.A {
	out := bson.A{}
	for _, s := range models.StringsOf(vals) {
		out = append(out, s)
	}
	return out
}

func timestamps(props bson.M) bson.M {
	props["created_at"] = bson.M{"bsonType": "date"}
	props["updated_at"] = bson.M{"bsonType": "date"}
	return props
}

// publishSchema covers books and speeches: required non-blank fields plus
// the draft/published status.
func publishSchema(required ...string) bson.M {
	props := bson.M{"status": bson.M{"enum": enumOf(models.PublishStatuses)}}
	req := bson.A{"status"}
	for _, f := range required {
		props[f] = nonBlank
		req = append(req, f)
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   req,
			"properties": timestamps(props),
		},
	}
}

func blogsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "slug", "status", "publish_date"},
			"properties": timestamps(bson.M{
				"title":        nonBlank,
				"title_tamil":  bson.M{"bsonType": "string"},
				"slug":         bson.M{"bsonType": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
				"status":       bson.M{"enum": enumOf(models.PublishStatuses)},
				"publish_date": bson.M{"bsonType": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
				"tags":         bson.M{"bsonType": bson.A{"array", "null"}, "items": bson.M{"bsonType": "string"}},
			}),
		},
	}
}

func contactsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "message", "status"},
			"properties": timestamps(bson.M{
				"name":          nonBlank,
				"email":         nonBlank,
				"message":       nonBlank,
				"status":        bson.M{"enum": enumOf(models.ContactStatuses)},
				"replied":       bson.M{"bsonType": "bool"},
				"reply_message": bson.M{"bsonType": "string"},
				"reply_date":    bson.M{"bsonType": bson.A{"date", "null"}},
			}),
		},
	}
}

func updatesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"type", "text", "text_tamil"},
			"properties": timestamps(bson.M{
				"type":       bson.M{"enum": enumOf(models.UpdateTypes)},
				"icon":       bson.M{"bsonType": "string"},
				"text":       nonBlank,
				"text_tamil": nonBlank,
			}),
		},
	}
}

func testimonialsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "designation", "content"},
			"properties": timestamps(bson.M{
				"name":        nonBlank,
				"designation": nonBlank,
				"photo":       bson.M{"bsonType": "string"},
				"content":     nonBlank,
			}),
		},
	}
}

func newsletterSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "status"},
			"properties": timestamps(bson.M{
				"email":         nonBlank,
				"status":        bson.M{"enum": enumOf(models.SubscriptionStatuses)},
				"subscribed_at": bson.M{"bsonType": "date"},
			}),
		},
	}
}

func adminsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "password_hash", "is_active"},
			"properties": bson.M{
				"email":         nonBlank,
				"display_name":  bson.M{"bsonType": "string"},
				"password_hash": nonBlank,
				"is_active":     bson.M{"bsonType": "bool"},
				"last_login_at": bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}
