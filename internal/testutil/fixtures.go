package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/docstore/memstore"
	"github.com/jawahirullah/portal/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures seeds content into in-memory stores.
type Fixtures struct {
	t      *testing.T
	DB     *memstore.DB
	Stores content.Stores
}

// NewFixtures returns empty in-memory content stores.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	db := memstore.New(docstore.NewClock(nil))
	return &Fixtures{t: t, DB: db, Stores: content.NewMemory(db)}
}

func create[T any](f *Fixtures, coll docstore.Collection[T], doc T) string {
	f.t.Helper()
	ctx, cancel := TestContext()
	defer cancel()
	id, err := coll.Create(ctx, doc)
	if err != nil {
		f.t.Fatalf("seed %T: %v", doc, err)
	}
	return id
}

// CreateBook seeds a book with the given status.
func (f *Fixtures) CreateBook(title string, status models.PublishStatus) string {
	f.t.Helper()
	return create(f, f.Stores.Books, models.Book{
		Title:         title,
		TitleTamil:    title + " (த)",
		CoverImageURL: "https://res.cloudinary.com/demo/image/upload/books/cover.jpg",
		BuyLink:       "https://example.com/buy",
		Status:        status,
	})
}

// CreateSpeech seeds a YouTube speech.
func (f *Fixtures) CreateSpeech(title, videoURL string, status models.PublishStatus) string {
	f.t.Helper()
	return create(f, f.Stores.Speeches, models.Speech{
		Title:      title,
		TitleTamil: title + " (த)",
		VideoURL:   videoURL,
		Status:     status,
	})
}

// CreateBlog seeds a blog post with slug.
func (f *Fixtures) CreateBlog(title, slug string, status models.PublishStatus) string {
	f.t.Helper()
	return create(f, f.Stores.Blogs, models.BlogPost{
		Title:        title,
		TitleTamil:   title + " (த)",
		Excerpt:      "Excerpt of " + title,
		ExcerptTamil: "சுருக்கம்",
		Content:      "# " + title + "\n\nBody text.",
		ContentTamil: "உள்ளடக்கம்",
		PublishDate:  "2024-01-15",
		Status:       status,
		Tags:         []string{"policy"},
		ReadingTime:  1,
		Slug:         slug,
	})
}

// CreateContact seeds an unread contact message.
func (f *Fixtures) CreateContact(name, email, subject string) string {
	f.t.Helper()
	return create(f, f.Stores.Contacts, models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: "Hello from " + name,
		Status:  models.ContactUnread,
	})
}

// CreateSubscription seeds an active newsletter subscription.
func (f *Fixtures) CreateSubscription(email string) string {
	f.t.Helper()
	return create(f, f.Stores.Newsletter, models.NewsletterSubscription{
		Email:  email,
		Status: models.SubscriptionActive,
	})
}

// CreateUpdate seeds a feed update.
func (f *Fixtures) CreateUpdate(kind models.UpdateType, text string) string {
	f.t.Helper()
	return create(f, f.Stores.Updates, models.Update{Type: kind, Icon: "📢", Text: text, TextTamil: text + " (த)"})
}

// CreateTestimonial seeds a testimonial.
func (f *Fixtures) CreateTestimonial(name string) string {
	f.t.Helper()
	return create(f, f.Stores.Testimonials, models.Testimonial{
		Name:        name,
		Designation: "Resident",
		Photo:       "https://res.cloudinary.com/demo/image/upload/testimonials/p.jpg",
		Content:     "A kind word from " + name,
	})
}
