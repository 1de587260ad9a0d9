// Package memstore is an in-process docstore. Documents are held as BSON
// maps, so values round-trip exactly as they would through MongoDB.
//
// It backs unit tests and the "memory" store backend. A DB can be told to
// fail every call with a given error to exercise error paths.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DB holds any number of named collections.
type DB struct {
	mu     sync.Mutex
	clock  *docstore.Clock
	colls  map[string]*coll
	unique map[string][]string // collection -> unique fields
	fault  error
	calls  int
}

type coll struct {
	docs map[string]*entry
	seq  int64
}

type entry struct {
	doc bson.M
	seq int64
}

// New returns an empty DB. A nil clock gets a fresh one.
func New(clock *docstore.Clock) *DB {
	if clock == nil {
		clock = docstore.NewClock(nil)
	}
	return &DB{
		clock:  clock,
		colls:  map[string]*coll{},
		unique: map[string][]string{},
	}
}

// SetFault makes every following call fail with err until SetFault(nil).
func (db *DB) SetFault(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.fault = err
}

// Unique declares field as unique within the named collection, the way a
// unique index would in MongoDB.
func (db *DB) Unique(name, field string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.unique[name] = append(db.unique[name], field)
}

// Calls reports how many operations have been attempted against db.
func (db *DB) Calls() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.calls
}

func (db *DB) get(name string) *coll {
	c, ok := db.colls[name]
	if !ok {
		c = &coll{docs: map[string]*entry{}}
		db.colls[name] = c
	}
	return c
}

// begin locks db and reports the injected fault, if any. Callers must
// unlock when begin returns nil.
func (db *DB) begin(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return docstore.Wrap(docstore.CodeUnavailable, op, err)
	}
	db.mu.Lock()
	db.calls++
	if db.fault != nil {
		err := db.fault
		db.mu.Unlock()
		return err
	}
	return nil
}

// Collection is a docstore.Collection over one named collection of a DB.
type Collection[T any] struct {
	db   *DB
	name string
}

// Open returns the named collection of db.
func Open[T any](db *DB, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

var _ docstore.Collection[struct{}] = (*Collection[struct{}])(nil)

func (s *Collection[T]) Create(ctx context.Context, doc T) (string, error) {
	m, err := toDoc(doc)
	if err != nil {
		return "", docstore.Wrap(docstore.CodeInvalidArgument, "create", err)
	}
	docstore.StripManaged(m)

	if err := s.db.begin(ctx, "create"); err != nil {
		return "", err
	}
	defer s.db.mu.Unlock()

	c := s.db.get(s.name)
	if err := s.checkUnique(c, "", m); err != nil {
		return "", err
	}

	id := primitive.NewObjectID().Hex()
	now := s.db.clock.Now()
	m["_id"] = id
	m["created_at"] = now
	m["updated_at"] = now

	c.seq++
	c.docs[id] = &entry{doc: m, seq: c.seq}
	return id, nil
}

func (s *Collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if err := s.db.begin(ctx, "get"); err != nil {
		return nil, err
	}
	defer s.db.mu.Unlock()

	e, ok := s.db.get(s.name).docs[id]
	if !ok {
		return nil, nil
	}
	out, err := fromDoc[T](e.doc)
	if err != nil {
		return nil, docstore.Wrap(docstore.CodeUnknown, "get", err)
	}
	return &out, nil
}

func (s *Collection[T]) GetAll(ctx context.Context, opts docstore.ListOptions) ([]T, error) {
	opts = opts.Normalize()
	if err := s.db.begin(ctx, "list"); err != nil {
		return nil, err
	}
	defer s.db.mu.Unlock()

	entries := s.db.get(s.name).all()
	sortEntries(entries, opts.OrderBy, opts.Direction == docstore.Desc)
	if opts.Limit > 0 && int64(len(entries)) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return decodeAll[T]("list", entries)
}

func (s *Collection[T]) GetByStatus(ctx context.Context, status string) ([]T, error) {
	if err := s.db.begin(ctx, "list by status"); err != nil {
		return nil, err
	}
	defer s.db.mu.Unlock()

	var matched []*entry
	for _, e := range s.db.get(s.name).all() {
		if v, ok := e.doc["status"].(string); ok && v == status {
			matched = append(matched, e)
		}
	}
	sortEntries(matched, docstore.FieldCreatedAt, true)
	return decodeAll[T]("list by status", matched)
}

func (s *Collection[T]) Update(ctx context.Context, id string, patch docstore.Patch) error {
	if patch == nil {
		patch = docstore.Patch{}
	}
	set, err := toDoc(map[string]any(patch))
	if err != nil {
		return docstore.Wrap(docstore.CodeInvalidArgument, "update", err)
	}
	docstore.StripManaged(set)

	if err := s.db.begin(ctx, "update"); err != nil {
		return err
	}
	defer s.db.mu.Unlock()

	c := s.db.get(s.name)
	e, ok := c.docs[id]
	if !ok {
		return docstore.NewError(docstore.CodeNotFound, "update", "no document with id "+id)
	}

	merged := bson.M{}
	for k, v := range e.doc {
		merged[k] = v
	}
	for k, v := range set {
		merged[k] = v
	}
	if err := s.checkUnique(c, id, merged); err != nil {
		return err
	}
	merged["updated_at"] = s.db.clock.Now()
	e.doc = merged
	return nil
}

func (s *Collection[T]) Increment(ctx context.Context, id, field string, by int64) error {
	if err := s.db.begin(ctx, "increment"); err != nil {
		return err
	}
	defer s.db.mu.Unlock()

	e, ok := s.db.get(s.name).docs[id]
	if !ok {
		return docstore.NewError(docstore.CodeNotFound, "increment", "no document with id "+id)
	}
	var cur int64
	switch v := e.doc[field].(type) {
	case nil:
	case int32:
		cur = int64(v)
	case int64:
		cur = v
	case int:
		cur = int64(v)
	case float64:
		cur = int64(v)
	default:
		return docstore.NewError(docstore.CodeInvalidArgument, "increment", field+" is not a number")
	}
	e.doc[field] = cur + by
	return nil
}

func (s *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := s.db.begin(ctx, "delete"); err != nil {
		return err
	}
	defer s.db.mu.Unlock()

	c := s.db.get(s.name)
	if _, ok := c.docs[id]; !ok {
		return docstore.NewError(docstore.CodeNotFound, "delete", "no document with id "+id)
	}
	delete(c.docs, id)
	return nil
}

func (s *Collection[T]) Search(ctx context.Context, field, prefix string) ([]T, error) {
	if err := s.db.begin(ctx, "search"); err != nil {
		return nil, err
	}
	defer s.db.mu.Unlock()

	hi := docstore.SearchUpperBound(prefix)
	var matched []*entry
	for _, e := range s.db.get(s.name).all() {
		v, ok := e.doc[field].(string)
		if ok && v >= prefix && v <= hi {
			matched = append(matched, e)
		}
	}
	sortEntries(matched, field, false)
	return decodeAll[T]("search", matched)
}

// Count supports plain equality filters only.
func (s *Collection[T]) Count(ctx context.Context, filter map[string]any) (int64, error) {
	if filter == nil {
		filter = map[string]any{}
	}
	want, err := toDoc(filter)
	if err != nil {
		return 0, docstore.Wrap(docstore.CodeInvalidArgument, "count", err)
	}
	if err := s.db.begin(ctx, "count"); err != nil {
		return 0, err
	}
	defer s.db.mu.Unlock()

	var n int64
	for _, e := range s.db.get(s.name).docs {
		if matches(e.doc, want) {
			n++
		}
	}
	return n, nil
}

func (s *Collection[T]) checkUnique(c *coll, selfID string, doc bson.M) error {
	for _, field := range s.db.unique[s.name] {
		v, ok := doc[field]
		if !ok {
			continue
		}
		for id, e := range c.docs {
			if id == selfID {
				continue
			}
			if other, ok := e.doc[field]; ok && compare(v, other) == 0 {
				return docstore.NewError(docstore.CodeAlreadyExists, "write",
					"duplicate value for unique field "+field)
			}
		}
	}
	return nil
}

func (c *coll) all() []*entry {
	out := make([]*entry, 0, len(c.docs))
	for _, e := range c.docs {
		out = append(out, e)
	}
	return out
}

// sortEntries orders by field, breaking ties by insertion order in the
// same direction so equal keys list newest first when descending.
func sortEntries(entries []*entry, field string, desc bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		c := compare(entries[i].doc[field], entries[j].doc[field])
		if c == 0 {
			c = compareInt(entries[i].seq, entries[j].seq)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func matches(doc, want bson.M) bool {
	for k, v := range want {
		if compare(doc[k], v) != 0 {
			return false
		}
	}
	return true
}

func decodeAll[T any](op string, entries []*entry) ([]T, error) {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		v, err := fromDoc[T](e.doc)
		if err != nil {
			return nil, docstore.Wrap(docstore.CodeUnknown, op, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = bson.M{}
	}
	return m, nil
}

func fromDoc[T any](m bson.M) (T, error) {
	var out T
	raw, err := bson.Marshal(m)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(raw, &out)
	return out, err
}

// rank orders values of different kinds, loosely following MongoDB's
// comparison order.
func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case int32, int64, int, float64:
		return 1
	case string:
		return 2
	case bool:
		return 4
	case primitive.DateTime, time.Time:
		return 5
	}
	return 3
}

func compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return compareInt(int64(ra), int64(rb))
	}
	switch ra {
	case 1:
		return compareFloat(num(a), num(b))
	case 2:
		return strings.Compare(a.(string), b.(string))
	case 4:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		}
		return 1
	case 5:
		return compareInt(millis(a), millis(b))
	}
	return 0
}

func num(v any) float64 {
	switch n := v.(type) {
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func millis(v any) int64 {
	switch t := v.(type) {
	case primitive.DateTime:
		return int64(t)
	case time.Time:
		return t.UnixMilli()
	}
	return 0
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
