package memstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/docstore/memstore"
	"github.com/jawahirullah/portal/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	models.Base `bson:",inline"`
	Title       string   `bson:"title"`
	Status      string   `bson:"status"`
	Tags        []string `bson:"tags"`
}

func fixedClock() *docstore.Clock {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return docstore.NewClock(func() time.Time { return start })
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	db := memstore.New(fixedClock())
	notes := memstore.Open[note](db, "notes")

	id, err := notes.Create(ctx, note{Base: models.Base{ID: "ignored"}, Title: "A"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NotEqual(t, "ignored", id)

	got, err := notes.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "A", got.Title)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	notes := memstore.Open[note](memstore.New(nil), "notes")
	got, err := notes.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMergesAndBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	notes := memstore.Open[note](memstore.New(fixedClock()), "notes")

	id, err := notes.Create(ctx, note{Title: "A", Status: "draft", Tags: []string{"x"}})
	require.NoError(t, err)
	before, _ := notes.GetByID(ctx, id)

	require.NoError(t, notes.Update(ctx, id, docstore.Patch{"status": "published"}))

	after, err := notes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "published", after.Status)
	assert.Equal(t, "A", after.Title)
	assert.Equal(t, []string{"x"}, after.Tags)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestUpdateIgnoresManagedFields(t *testing.T) {
	ctx := context.Background()
	notes := memstore.Open[note](memstore.New(nil), "notes")
	id, _ := notes.Create(ctx, note{Title: "A"})
	before, _ := notes.GetByID(ctx, id)

	err := notes.Update(ctx, id, docstore.Patch{"_id": "other", "created_at": time.Unix(0, 0)})
	require.NoError(t, err)

	after, _ := notes.GetByID(ctx, id)
	require.NotNil(t, after)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}

func TestUpdateAndDeleteMissingAreNotFound(t *testing.T) {
	ctx := context.Background()
	notes := memstore.Open[note](memstore.New(nil), "notes")

	err := notes.Update(ctx, "missing", docstore.Patch{"title": "x"})
	assert.Equal(t, docstore.CodeNotFound, docstore.CodeOf(err))

	err = notes.Delete(ctx, "missing")
	assert.Equal(t, docstore.CodeNotFound, docstore.CodeOf(err))
}

func TestDeleteRemovesDocument(t *testing.T) {
	ctx := context.Background()
	notes := memstore.Open[note](memstore.New(nil), "notes")
	id, _ := notes.Create(ctx, note{Title: "A"})

	require.NoError(t, notes.Delete(ctx, id))
	got, err := notes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := notes.GetAll(ctx, docstore.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.True(t, docstore.IsNotFound(notes.Delete(ctx, id)))
}

func TestGetAllNewestFirstByDefault(t *testing.T) {
	ctx := context.Background()
	notes := memstore.Open[note](memstore.New(fixedClock()), "notes")
	for _, title := range []string{"first", "second", "third"} {
		_, err := notes.Create(ctx, note{Title: title})
		require.NoError(t, err)
	}

	all, err := notes.GetAll(ctx, docstore.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "first", all[2].Title)

	asc, err := notes.GetAll(ctx, docstore.ListOptions{OrderBy: "title", Direction: docstore.Asc, Limit: 2})
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, "first", asc[0].Title)
	assert.Equal(t, "second", asc[1].Title)
}

func TestGetByStatus(t *testing.T) {
	ctx := context.Background()
	notes := memstore.Open[note](memstore.New(nil), "notes")
	_, _ = notes.Create(ctx, note{Title: "a", Status: "draft"})
	_, _ = notes.Create(ctx, note{Title: "b", Status: "published"})
	_, _ = notes.Create(ctx, note{Title: "c", Status: "published"})

	pub, err := notes.GetByStatus(ctx, "published")
	require.NoError(t, err)
	require.Len(t, pub, 2)
	assert.Equal(t, "c", pub[0].Title)
}

func TestSearchIsExactPrefix(t *testing.T) {
	ctx := context.Background()
	notes := memstore.Open[note](memstore.New(nil), "notes")
	for _, title := range []string{"Tamil Nadu", "Tamil", "tamil lower", "Taxes"} {
		_, _ = notes.Create(ctx, note{Title: title})
	}

	got, err := notes.Search(ctx, "title", "Tamil")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Tamil", got[0].Title)
	assert.Equal(t, "Tamil Nadu", got[1].Title)
}

func TestUniqueFieldRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	db := memstore.New(nil)
	db.Unique("notes", "title")
	notes := memstore.Open[note](db, "notes")

	_, err := notes.Create(ctx, note{Title: "same"})
	require.NoError(t, err)
	_, err = notes.Create(ctx, note{Title: "same"})
	assert.Equal(t, docstore.CodeAlreadyExists, docstore.CodeOf(err))
}

func TestFaultFailsEveryCall(t *testing.T) {
	ctx := context.Background()
	db := memstore.New(nil)
	notes := memstore.Open[note](db, "notes")
	id, _ := notes.Create(ctx, note{Title: "a"})

	db.SetFault(docstore.NewError(docstore.CodeUnavailable, "list", "offline"))
	_, err := notes.GetAll(ctx, docstore.ListOptions{})
	assert.Equal(t, docstore.CodeUnavailable, docstore.CodeOf(err))
	assert.Error(t, notes.Delete(ctx, id))

	db.SetFault(nil)
	got, err := notes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	notes := memstore.Open[note](memstore.New(nil), "notes")
	_, _ = notes.Create(ctx, note{Title: "a", Status: "unread"})
	_, _ = notes.Create(ctx, note{Title: "b", Status: "read"})
	_, _ = notes.Create(ctx, note{Title: "c", Status: "unread"})

	n, err := notes.Count(ctx, map[string]any{"status": "unread"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = notes.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

type counted struct {
	models.Base `bson:",inline"`
	Views       int `bson:"views"`
}

func TestIncrementIsAtomicAndKeepsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	posts := memstore.Open[counted](memstore.New(nil), "posts")

	id, err := posts.Create(ctx, counted{Views: 5})
	require.NoError(t, err)
	before, err := posts.GetByID(ctx, id)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, posts.Increment(ctx, id, "views", 1))
		}()
	}
	wg.Wait()

	after, err := posts.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 55, after.Views)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestIncrementMissing(t *testing.T) {
	ctx := context.Background()
	posts := memstore.Open[counted](memstore.New(nil), "posts")
	assert.True(t, docstore.IsNotFound(posts.Increment(ctx, "nope", "views", 1)))

	notes := memstore.Open[note](memstore.New(nil), "notes")
	id, err := notes.Create(ctx, note{Title: "A"})
	require.NoError(t, err)
	assert.Equal(t, docstore.CodeInvalidArgument, docstore.CodeOf(notes.Increment(ctx, id, "title", 1)))
	require.NoError(t, notes.Increment(ctx, id, "hits", 2), "a missing field starts at zero")
}
