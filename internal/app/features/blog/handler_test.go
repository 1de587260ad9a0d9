package blog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jawahirullah/portal/internal/app/system/prefs"
	"github.com/jawahirullah/portal/internal/domain/models"
	"github.com/jawahirullah/portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capture struct {
	name string
	data any
}

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures, *capture) {
	t.Helper()
	fx := testutil.NewFixtures(t)
	h := NewHandler(fx.Stores, nil, zap.NewNop())
	c := &capture{}
	h.Render = func(_ http.ResponseWriter, _ *http.Request, name string, data any) {
		c.name, c.data = name, data
	}
	return h, fx, c
}

func showRequest(slug string) *http.Request {
	return testutil.WithChiURLParam(httptest.NewRequest("GET", "/blog/"+slug, nil), "slug", slug)
}

func TestList_TagFilter(t *testing.T) {
	h, fx, c := newTestHandler(t)
	fx.CreateBlog("Water", "water", models.StatusPublished) // tagged "policy"
	fx.CreateBlog("Draft", "draft", models.StatusDraft)

	h.List(httptest.NewRecorder(), httptest.NewRequest("GET", "/blog?tag=Policy", nil))
	vm := c.data.(listVM)
	require.Len(t, vm.Posts, 1)
	assert.Equal(t, []string{"policy"}, vm.Tags)

	h.List(httptest.NewRecorder(), httptest.NewRequest("GET", "/blog?tag=sports", nil))
	assert.Empty(t, c.data.(listVM).Posts)
}

func TestShow_RendersMarkdownAndCountsView(t *testing.T) {
	h, fx, c := newTestHandler(t)
	id := fx.CreateBlog("Water for All", "water-for-all", models.StatusPublished)

	h.Show(httptest.NewRecorder(), showRequest("water-for-all"))
	require.Equal(t, "blog_post", c.name)
	vm := c.data.(postVM)
	assert.Contains(t, string(vm.Body), "<h1")
	assert.Contains(t, string(vm.Body), "Water for All")
	assert.Equal(t, 1, vm.Post.Views)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, err := fx.Stores.Blogs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Views)
}

func TestShow_ConcurrentViewsAllCounted(t *testing.T) {
	fx := testutil.NewFixtures(t)
	id := fx.CreateBlog("Water for All", "water-for-all", models.StatusPublished)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	before, err := fx.Stores.Blogs.GetByID(ctx, id)
	require.NoError(t, err)

	const readers = 20
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := NewHandler(fx.Stores, nil, zap.NewNop())
			h.Render = func(http.ResponseWriter, *http.Request, string, any) {}
			h.Show(httptest.NewRecorder(), showRequest("water-for-all"))
		}()
	}
	wg.Wait()

	after, err := fx.Stores.Blogs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, readers, after.Views)
	assert.True(t, after.UpdatedAt.Equal(before.UpdatedAt), "a page view is not an edit")
}

func TestShow_TamilBody(t *testing.T) {
	h, fx, c := newTestHandler(t)
	fx.CreateBlog("Water", "water", models.StatusPublished)

	r := showRequest("water")
	r = r.WithContext(prefs.WithPrefs(r.Context(), prefs.Prefs{Locale: prefs.LocaleTA, Theme: prefs.ThemeLight}))
	h.Show(httptest.NewRecorder(), r)

	vm := c.data.(postVM)
	assert.Contains(t, string(vm.Body), "உள்ளடக்கம்")
	assert.Equal(t, "Water (த)", vm.Title)
}

func TestShow_DraftAndPrefixAreNotFound(t *testing.T) {
	h, fx, c := newTestHandler(t)
	fx.CreateBlog("Hidden", "hidden", models.StatusDraft)
	fx.CreateBlog("Water", "water-rights", models.StatusPublished)

	for _, slug := range []string{"hidden", "water"} {
		c.name = ""
		rec := httptest.NewRecorder()
		func() {
			// The 404 page itself needs the template engine.
			defer func() { _ = recover() }()
			h.Show(rec, showRequest(slug))
		}()
		assert.Equal(t, http.StatusNotFound, rec.Code, slug)
		assert.NotEqual(t, "blog_post", c.name, slug)
	}
}

func TestShow_SanitizesBody(t *testing.T) {
	h, fx, c := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	_, err := fx.Stores.Blogs.Create(ctx, models.BlogPost{
		Title:   "XSS",
		Slug:    "xss",
		Content: "Hello <script>alert(1)</script>",
		Status:  models.StatusPublished,
	})
	require.NoError(t, err)

	h.Show(httptest.NewRecorder(), showRequest("xss"))
	body := string(c.data.(postVM).Body)
	assert.False(t, strings.Contains(body, "<script"), body)
	assert.Contains(t, body, "Hello")
}
