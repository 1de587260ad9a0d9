// Package docstore defines the contract the site uses to persist its
// content: one collection per entity, store-assigned ids and timestamps,
// merge updates and hard deletes.
//
// Two implementations exist. mongostore talks to MongoDB and is what runs in
// production. memstore keeps everything in process and is used by tests and
// by the "memory" store backend for local work without a database.
package docstore

import (
	"context"
)

// Direction is a sort direction for list queries.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// FieldCreatedAt is the default ordering field.
const FieldCreatedAt = "created_at"

// ListOptions controls GetAll ordering and size. The zero value lists
// everything ordered by created_at, newest first.
type ListOptions struct {
	OrderBy   string
	Direction Direction
	Limit     int64 // 0 means no limit
}

// Normalize fills defaults.
func (o ListOptions) Normalize() ListOptions {
	if o.OrderBy == "" {
		o.OrderBy = FieldCreatedAt
	}
	if o.Direction != Asc {
		o.Direction = Desc
	}
	if o.Limit < 0 {
		o.Limit = 0
	}
	return o
}

// Patch is a partial field set keyed by stored field name. Fields not named
// in the patch are left untouched by Update.
type Patch map[string]any

// Collection is the document-store surface for one entity type T.
//
// T is a struct embedding models.Base inline. Create ignores any id or
// timestamps present on the value and assigns its own.
type Collection[T any] interface {
	Create(ctx context.Context, doc T) (string, error)
	GetByID(ctx context.Context, id string) (*T, error) // nil, nil when absent
	GetAll(ctx context.Context, opts ListOptions) ([]T, error)
	GetByStatus(ctx context.Context, status string) ([]T, error)
	Update(ctx context.Context, id string, patch Patch) error
	// Increment atomically adds by to a numeric field (a missing field
	// counts as 0). It is a counter, not an edit: updated_at is unchanged.
	Increment(ctx context.Context, id, field string, by int64) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, field, prefix string) ([]T, error)
	Count(ctx context.Context, filter map[string]any) (int64, error)
}

// SearchUpperBound returns the inclusive upper bound of a prefix range query:
// every string starting with prefix sorts between prefix and this value.
func SearchUpperBound(prefix string) string {
	return prefix + "\uf8ff"
}

// stripped are the fields Create owns.
var stripped = []string{"_id", "created_at", "updated_at"}

// StripManaged removes store-managed fields from a marshalled document.
func StripManaged(m map[string]any) {
	for _, k := range stripped {
		delete(m, k)
	}
}
