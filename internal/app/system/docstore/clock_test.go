package docstore_test

import (
	"testing"
	"time"

	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/stretchr/testify/assert"
)

func TestClockIsStrictlyIncreasing(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 123456789, time.FixedZone("IST", 5*3600+1800))
	c := docstore.NewClock(func() time.Time { return at })

	a := c.Now()
	b := c.Now()
	assert.Equal(t, time.UTC, a.Location())
	assert.Equal(t, 0, a.Nanosecond()%int(time.Millisecond))
	assert.True(t, b.After(a))
	assert.Equal(t, time.Millisecond, b.Sub(a))
}

func TestListOptionsNormalize(t *testing.T) {
	o := docstore.ListOptions{Limit: -3}.Normalize()
	assert.Equal(t, docstore.FieldCreatedAt, o.OrderBy)
	assert.Equal(t, docstore.Desc, o.Direction)
	assert.EqualValues(t, 0, o.Limit)

	o = docstore.ListOptions{OrderBy: "title", Direction: docstore.Asc}.Normalize()
	assert.Equal(t, "title", o.OrderBy)
	assert.Equal(t, docstore.Asc, o.Direction)
}

func TestCodeOf(t *testing.T) {
	err := docstore.NewError(docstore.CodeNotFound, "get", "missing")
	assert.Equal(t, docstore.CodeNotFound, docstore.CodeOf(err))
	assert.True(t, docstore.IsNotFound(err))
	assert.Equal(t, "get: missing", err.Error())
	assert.Equal(t, docstore.CodeUnknown, docstore.CodeOf(assert.AnError))
}
