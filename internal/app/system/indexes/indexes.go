// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jawahirullah/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each collection's index set is reconciled
idempotently. Errors are aggregated so every problem is visible and startup
can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, spec := range Specs() {
		if err := ensureIndexSet(ctx, db.Collection(spec.Collection), spec.Indexes); err != nil {
			problems = append(problems, spec.Collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Spec is the desired index set of one collection.
type Spec struct {
	Collection string
	Indexes    []mongo.IndexModel
}

// Specs lists every collection's desired indexes.
func Specs() []Spec {
	return []Spec{
		{models.CollBooks, publishedContent("books")},
		{models.CollSpeeches, publishedContent("speeches")},
		{models.CollBlogs, append(publishedContent("blogs"),
			mongo.IndexModel{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_blogs_slug"),
			},
			mongo.IndexModel{
				Keys:    bson.D{{Key: "title", Value: 1}},
				Options: options.Index().SetName("idx_blogs_title"),
			},
		)},
		{models.CollContacts, []mongo.IndexModel{
			createdDesc("contacts"),
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_contacts_status_created"),
			},
		}},
		{models.CollUpdates, []mongo.IndexModel{createdDesc("updates")}},
		{models.CollTestimonials, []mongo.IndexModel{createdDesc("testimonials")}},
		{models.CollNewsletter, []mongo.IndexModel{
			createdDesc("newsletter"),
			// One subscription per address; a repeat signup surfaces as already-exists.
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_newsletter_email"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_newsletter_status"),
			},
		}},
		{models.CollAdmins, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_admins_email"),
			},
		}},
		{models.CollAuthSessions, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "token", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_auth_sessions_token"),
			},
			// TTL: MongoDB removes records once expires_at has passed.
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_auth_sessions_expires"),
			},
		}},
	}
}

// createdDesc backs the default list order (created_at, newest first).
func createdDesc(prefix string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_" + prefix + "_created"),
	}
}

// publishedContent covers the admin list and the public "published only" query.
func publishedContent(prefix string) []mongo.IndexModel {
	return []mongo.IndexModel{
		createdDesc(prefix),
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_" + prefix + "_status_created"),
		},
	}
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name               string `bson:"name"`
	Key                bson.D `bson:"key"`
	Unique             *bool  `bson:"unique,omitempty"`
	ExpireAfterSeconds *int32 `bson:"expireAfterSeconds,omitempty"`
}

type desired struct {
	name   string
	sig    string
	unique bool
	ttl    *int32
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
		d.ttl = m.Options.ExpireAfterSeconds
	}
	return d
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameOptions(d desired, ex existingIndex) bool {
	exUnique := ex.Unique != nil && *ex.Unique
	if d.unique != exUnique {
		return false
	}
	switch {
	case d.ttl == nil && ex.ExpireAfterSeconds == nil:
		return true
	case d.ttl == nil || ex.ExpireAfterSeconds == nil:
		return false
	}
	return *d.ttl == *ex.ExpireAfterSeconds
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	existing := listExisting(ctx, coll)

	for _, m := range models {
		d := describe(m)
		start := time.Now()
		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", d.name),
			zap.String("keys", d.sig),
			zap.Bool("unique", d.unique),
		}

		if ex, ok := existing[d.sig]; ok {
			if sameOptions(d, ex) && (d.name == "" || ex.Name == d.name) {
				zap.L().Debug("reusing existing index", fields...)
				continue
			}
			// Same keys, different name or options: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				zap.L().Warn("drop existing index failed", append(fields, zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), d.name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed", append(fields, zap.Error(err))...)
			if isDuplicateKeyErr(err) && d.unique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), d.name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), d.name, err))
			}
			continue
		}
		zap.L().Info("index ensured", append(fields, zap.String("took", time.Since(start).String()))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
