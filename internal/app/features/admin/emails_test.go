package admin

import (
	"net/http"
	"strings"
	"testing"

	"github.com/jawahirullah/portal/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestExportSubscriptions(t *testing.T) {
	hs := newHarness(t)
	hs.fx.CreateSubscription("first@example.com")
	hs.fx.CreateSubscription("second@example.com")

	rec := testutil.NewRecorder()
	hs.h.ExportSubscriptions(rec, testutil.NewRequest("GET", "/admin/emails/export"))

	rec.AssertStatus(t, http.StatusOK)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "subscribers-")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "email,status,subscribed_at", lines[0])
	rec.AssertContains(t, "first@example.com,active")
	rec.AssertContains(t, "second@example.com,active")
}

func TestExportSubscriptions_StoreFailure(t *testing.T) {
	hs := newHarness(t)
	hs.fx.DB.SetFault(assert.AnError)

	rec := testutil.NewRecorder()
	hs.h.ExportSubscriptions(rec, testutil.NewRequest("GET", "/admin/emails/export"))
	rec.AssertRedirect(t, "/admin/emails?error=export")
}
