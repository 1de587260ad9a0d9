package indexes_test

import (
	"testing"

	"github.com/jawahirullah/portal/internal/app/system/indexes"
	"github.com/jawahirullah/portal/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSpecsNamesAreUnique(t *testing.T) {
	for _, spec := range indexes.Specs() {
		seen := map[string]bool{}
		for _, m := range spec.Indexes {
			if m.Options == nil || m.Options.Name == nil {
				t.Errorf("%s: index without a name", spec.Collection)
				continue
			}
			name := *m.Options.Name
			if seen[name] {
				t.Errorf("%s: duplicate index name %q", spec.Collection, name)
			}
			seen[name] = true
		}
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesNamedIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	for _, spec := range indexes.Specs() {
		cur, err := db.Collection(spec.Collection).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("List indexes on %s: %v", spec.Collection, err)
		}
		names := map[string]bool{}
		for cur.Next(ctx) {
			var idx bson.M
			if err := cur.Decode(&idx); err != nil {
				continue
			}
			if name, ok := idx["name"].(string); ok {
				names[name] = true
			}
		}
		cur.Close(ctx)

		for _, m := range spec.Indexes {
			if !names[*m.Options.Name] {
				t.Errorf("expected index %q on %s", *m.Options.Name, spec.Collection)
			}
		}
	}
}

func TestEnsureAll_UniqueSlugEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := db.Collection("blogs").InsertOne(ctx, bson.M{"slug": "hello", "title": "Hello"}); err != nil {
		t.Fatalf("Insert blog failed: %v", err)
	}
	if _, err := db.Collection("blogs").InsertOne(ctx, bson.M{"slug": "hello", "title": "Again"}); err == nil {
		t.Error("expected duplicate key error for unique index on blogs.slug")
	}
}
