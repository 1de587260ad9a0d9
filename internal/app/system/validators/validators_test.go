package validators_test

import (
	"testing"
	"time"

	"github.com/jawahirullah/portal/internal/app/system/validators"
	"github.com/jawahirullah/portal/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func setup(t *testing.T) *mongo.Database {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return db
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}

	for _, expected := range []string{
		"books", "speeches", "blogs", "contacts", "updates",
		"testimonials", "newsletter_subscriptions", "admins", "auth_sessions",
	} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestValidators(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	now := time.Now().UTC()

	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{"valid book", "books", bson.M{"title": "Book", "title_tamil": "நூல்", "status": "published", "created_at": now}, false},
		{"book bad status", "books", bson.M{"title": "Book", "title_tamil": "நூல்", "status": "archived"}, true},
		{"book blank title", "books", bson.M{"title": "  ", "title_tamil": "நூல்", "status": "draft"}, true},
		{"valid speech", "speeches", bson.M{"title": "S", "title_tamil": "பே", "video_url": "https://youtu.be/x", "status": "draft"}, false},
		{"speech without video", "speeches", bson.M{"title": "S", "title_tamil": "பே", "status": "draft"}, true},
		{"valid blog", "blogs", bson.M{"title": "Post", "slug": "my-post", "status": "draft", "publish_date": "2024-01-31", "tags": bson.A{"a"}}, false},
		{"blog bad slug", "blogs", bson.M{"title": "Post", "slug": "My Post", "status": "draft", "publish_date": "2024-01-31"}, true},
		{"blog bad date", "blogs", bson.M{"title": "Post", "slug": "p", "status": "draft", "publish_date": "31/01/2024"}, true},
		{"valid contact", "contacts", bson.M{"name": "N", "email": "n@x.io", "message": "hi", "status": "unread", "replied": false}, false},
		{"contact bad status", "contacts", bson.M{"name": "N", "email": "n@x.io", "message": "hi", "status": "archived"}, true},
		{"valid update", "updates", bson.M{"type": "event", "text": "T", "text_tamil": "த"}, false},
		{"update bad type", "updates", bson.M{"type": "rumour", "text": "T", "text_tamil": "த"}, true},
		{"valid testimonial", "testimonials", bson.M{"name": "N", "designation": "D", "content": "C"}, false},
		{"testimonial missing content", "testimonials", bson.M{"name": "N", "designation": "D"}, true},
		{"valid subscription", "newsletter_subscriptions", bson.M{"email": "a@b.c", "status": "active", "subscribed_at": now}, false},
		{"subscription bad status", "newsletter_subscriptions", bson.M{"email": "a@b.c", "status": "pending"}, true},
		{"admin missing hash", "admins", bson.M{"email": "a@b.c", "is_active": true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc)
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error inserting into %s", tt.coll)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("insert into %s failed: %v", tt.coll, err)
			}
		})
	}
}
