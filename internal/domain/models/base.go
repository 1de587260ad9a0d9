// internal/domain/models/base.go
package models

import "time"

// Base carries the fields every stored document shares.
//
// ID is assigned by the document store at creation and never changes.
// CreatedAt is set once; UpdatedAt is refreshed on every update. Both are
// UTC with millisecond precision, which is what the store persists.
type Base struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection names. One collection per entity; documents never reference
// each other across collections.
const (
	CollBooks        = "books"
	CollSpeeches     = "speeches"
	CollBlogs        = "blogs"
	CollContacts     = "contacts"
	CollUpdates      = "updates"
	CollTestimonials = "testimonials"
	CollNewsletter   = "newsletter_subscriptions"
	CollAdmins       = "admins"
	CollAuthSessions = "auth_sessions"
)

// DefaultSiteName is the site title in each locale.
const (
	DefaultSiteName   = "Dr. MH Jawahirullah"
	DefaultSiteNameTA = "டாக்டர் எம்.எச். ஜவாஹிருல்லாஹ்"
)
