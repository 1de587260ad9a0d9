// internal/app/store/content/content.go
package content

import (
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/docstore/memstore"
	"github.com/jawahirullah/portal/internal/app/system/docstore/mongostore"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores bundles one document collection per content entity.
type Stores struct {
	Books        docstore.Collection[models.Book]
	Speeches     docstore.Collection[models.Speech]
	Blogs        docstore.Collection[models.BlogPost]
	Contacts     docstore.Collection[models.ContactMessage]
	Updates      docstore.Collection[models.Update]
	Testimonials docstore.Collection[models.Testimonial]
	Newsletter   docstore.Collection[models.NewsletterSubscription]
}

// NewMongo opens every content collection on db. All collections share
// clock so timestamps are strictly increasing across the site.
func NewMongo(db *mongo.Database, clock *docstore.Clock) Stores {
	return Stores{
		Books:        mongostore.New[models.Book](db, models.CollBooks, clock),
		Speeches:     mongostore.New[models.Speech](db, models.CollSpeeches, clock),
		Blogs:        mongostore.New[models.BlogPost](db, models.CollBlogs, clock),
		Contacts:     mongostore.New[models.ContactMessage](db, models.CollContacts, clock),
		Updates:      mongostore.New[models.Update](db, models.CollUpdates, clock),
		Testimonials: mongostore.New[models.Testimonial](db, models.CollTestimonials, clock),
		Newsletter:   mongostore.New[models.NewsletterSubscription](db, models.CollNewsletter, clock),
	}
}

// NewMemory opens every content collection on an in-process DB and declares
// the same unique fields the MongoDB indexes enforce.
func NewMemory(db *memstore.DB) Stores {
	db.Unique(models.CollBlogs, "slug")
	db.Unique(models.CollNewsletter, "email")
	return Stores{
		Books:        memstore.Open[models.Book](db, models.CollBooks),
		Speeches:     memstore.Open[models.Speech](db, models.CollSpeeches),
		Blogs:        memstore.Open[models.BlogPost](db, models.CollBlogs),
		Contacts:     memstore.Open[models.ContactMessage](db, models.CollContacts),
		Updates:      memstore.Open[models.Update](db, models.CollUpdates),
		Testimonials: memstore.Open[models.Testimonial](db, models.CollTestimonials),
		Newsletter:   memstore.Open[models.NewsletterSubscription](db, models.CollNewsletter),
	}
}
