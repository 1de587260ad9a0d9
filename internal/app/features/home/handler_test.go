package home

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jawahirullah/portal/internal/domain/models"
	"github.com/jawahirullah/portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures, *homeVM) {
	t.Helper()
	fx := testutil.NewFixtures(t)
	h := NewHandler(fx.Stores, zap.NewNop())
	var got homeVM
	h.Render = func(_ http.ResponseWriter, _ *http.Request, name string, data any) {
		require.Equal(t, "home", name)
		got = data.(homeVM)
	}
	return h, fx, &got
}

func TestServeRoot_Empty(t *testing.T) {
	h, _, vm := newTestHandler(t)
	h.ServeRoot(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.Empty(t, vm.Books)
	assert.Nil(t, vm.LatestSpeech)
	assert.Nil(t, vm.LatestBlog)
	assert.Positive(t, vm.YearsService)
}

func TestServeRoot_PublishedOnly(t *testing.T) {
	h, fx, vm := newTestHandler(t)
	for _, title := range []string{"A", "B", "C", "D"} {
		fx.CreateBook(title, models.StatusPublished)
	}
	fx.CreateBook("Draft", models.StatusDraft)
	fx.CreateSpeech("Talk", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.StatusPublished)
	fx.CreateSpeech("Unlisted", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.StatusDraft)
	fx.CreateBlog("Post", "post", models.StatusPublished)
	fx.CreateUpdate(models.UpdateEvent, "Rally")
	fx.CreateTestimonial("Meena")

	h.ServeRoot(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, 4, vm.BookCount)
	assert.Len(t, vm.Books, featuredBooks)
	assert.Equal(t, "D", vm.Books[0].Title, "newest first")
	assert.Equal(t, 1, vm.SpeechCount)
	require.NotNil(t, vm.LatestSpeech)
	assert.Equal(t, "Talk", vm.LatestSpeech.Title)
	assert.NotEmpty(t, vm.LatestSpeech.Thumb)
	require.NotNil(t, vm.LatestBlog)
	assert.Equal(t, "post", vm.LatestBlog.Slug)
	assert.Len(t, vm.Updates, 1)
	assert.Len(t, vm.Testimonials, 1)
}

func TestServeRoot_StoreFailureStillRenders(t *testing.T) {
	h, fx, vm := newTestHandler(t)
	fx.DB.SetFault(assert.AnError)

	rec := httptest.NewRecorder()
	h.ServeRoot(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, vm.Books)
	assert.NotEmpty(t, vm.SiteName)
}
