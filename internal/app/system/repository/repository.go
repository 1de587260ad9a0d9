// Package repository holds the per-page view of one content collection:
// the loaded items, a loading flag and the last user-facing error.
//
// A Repository belongs to one page mount (one request). Every mutation
// refreshes the whole list afterwards, so Items always reflects the store
// as of the last successful fetch.
package repository

import (
	"context"
	"sync"

	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/errnorm"
	"go.uber.org/zap"
)

// Error is returned by Refresh; Message is already normalized for display.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// State is a point-in-time copy of a Repository's observable fields.
type State[T any] struct {
	Items   []T
	Loading bool
	Err     string
}

// Repository wraps a docstore collection for one page.
type Repository[T any] struct {
	coll docstore.Collection[T]
	name string
	log  *zap.Logger

	mu      sync.Mutex
	items   []T
	loading bool
	err     string
}

// New returns an empty repository. Call Refresh (or use Mount) to load it.
func New[T any](coll docstore.Collection[T], name string, log *zap.Logger) *Repository[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository[T]{coll: coll, name: name, log: log}
}

// Mount builds a repository and performs the initial fetch. A failed fetch
// leaves Items empty and Err set; the repository is still usable.
func Mount[T any](ctx context.Context, coll docstore.Collection[T], name string, log *zap.Logger) *Repository[T] {
	r := New(coll, name, log)
	_ = r.Refresh(ctx)
	return r
}

// Refresh loads every document ordered by creation time, newest first.
// On failure the previous Items are kept and Err is set.
func (r *Repository[T]) Refresh(ctx context.Context) error {
	r.mu.Lock()
	r.loading = true
	r.err = ""
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.loading = false
		r.mu.Unlock()
	}()

	items, err := r.coll.GetAll(ctx, docstore.ListOptions{})
	if err != nil {
		return r.fail("list", err)
	}

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return nil
}

// Create stores doc and refreshes. The store assigns id and timestamps.
func (r *Repository[T]) Create(ctx context.Context, doc T) (string, bool) {
	r.ClearError()
	id, err := r.coll.Create(ctx, doc)
	if err != nil {
		_ = r.fail("create", err)
		return "", false
	}
	_ = r.Refresh(ctx)
	return id, true
}

// Update merges patch into the document with id and refreshes. There is no
// existence pre-check; a missing id surfaces as a not-found Err.
func (r *Repository[T]) Update(ctx context.Context, id string, patch docstore.Patch) bool {
	r.ClearError()
	if err := r.coll.Update(ctx, id, patch); err != nil {
		_ = r.fail("update", err)
		return false
	}
	_ = r.Refresh(ctx)
	return true
}

// Delete removes the document with id and refreshes.
func (r *Repository[T]) Delete(ctx context.Context, id string) bool {
	r.ClearError()
	if err := r.coll.Delete(ctx, id); err != nil {
		_ = r.fail("delete", err)
		return false
	}
	_ = r.Refresh(ctx)
	return true
}

// GetByID is a point lookup that does not touch Items. It returns nil when
// the document is absent or the lookup failed; Err tells the two apart.
func (r *Repository[T]) GetByID(ctx context.Context, id string) *T {
	r.ClearError()
	doc, err := r.coll.GetByID(ctx, id)
	if err != nil {
		_ = r.fail("get", err)
		return nil
	}
	return doc
}

// ListByStatus is a read-through query that does not touch Items.
func (r *Repository[T]) ListByStatus(ctx context.Context, status string) []T {
	r.ClearError()
	docs, err := r.coll.GetByStatus(ctx, status)
	if err != nil {
		_ = r.fail("list by status", err)
		return nil
	}
	return docs
}

// Search is an exact-prefix query on field that does not touch Items.
func (r *Repository[T]) Search(ctx context.Context, field, prefix string) []T {
	r.ClearError()
	docs, err := r.coll.Search(ctx, field, prefix)
	if err != nil {
		_ = r.fail("search", err)
		return nil
	}
	return docs
}

// ClearError resets Err.
func (r *Repository[T]) ClearError() {
	r.mu.Lock()
	r.err = ""
	r.mu.Unlock()
}

// Items returns a copy of the loaded documents.
func (r *Repository[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Repository[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *Repository[T]) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// State returns a snapshot of items, loading flag and error.
func (r *Repository[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return State[T]{Items: out, Loading: r.loading, Err: r.err}
}

func (r *Repository[T]) fail(op string, err error) error {
	msg := errnorm.Message(err)
	r.log.Warn("repository operation failed",
		zap.String("collection", r.name),
		zap.String("op", op),
		zap.Error(err))

	r.mu.Lock()
	r.err = msg
	r.mu.Unlock()
	return &Error{Op: op, Message: msg, Err: err}
}

// Filter returns the items for which keep is true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
