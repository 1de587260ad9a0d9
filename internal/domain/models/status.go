// internal/domain/models/status.go
package models

// PublishStatus is the lifecycle state of books, speeches and blog posts.
type PublishStatus string

const (
	StatusDraft     PublishStatus = "draft"
	StatusPublished PublishStatus = "published"
)

// PublishStatuses is the full set of allowed publish states.
var PublishStatuses = []PublishStatus{StatusDraft, StatusPublished}

// Valid reports whether s is one of PublishStatuses.
func (s PublishStatus) Valid() bool {
	for _, v := range PublishStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ContactStatus tracks how far a contact message has been handled.
type ContactStatus string

const (
	ContactUnread  ContactStatus = "unread"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

var ContactStatuses = []ContactStatus{ContactUnread, ContactRead, ContactReplied}

func (s ContactStatus) Valid() bool {
	for _, v := range ContactStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// SubscriptionStatus is the state of a newsletter subscription.
type SubscriptionStatus string

const (
	SubscriptionActive       SubscriptionStatus = "active"
	SubscriptionUnsubscribed SubscriptionStatus = "unsubscribed"
)

var SubscriptionStatuses = []SubscriptionStatus{SubscriptionActive, SubscriptionUnsubscribed}

func (s SubscriptionStatus) Valid() bool {
	for _, v := range SubscriptionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// UpdateType categorizes entries in the news/updates feed.
type UpdateType string

const (
	UpdateAnnouncement UpdateType = "announcement"
	UpdateAchievement  UpdateType = "achievement"
	UpdateEvent        UpdateType = "event"
	UpdateMedia        UpdateType = "media"
	UpdatePolicy       UpdateType = "policy"
)

var UpdateTypes = []UpdateType{UpdateAnnouncement, UpdateAchievement, UpdateEvent, UpdateMedia, UpdatePolicy}

func (t UpdateType) Valid() bool {
	for _, v := range UpdateTypes {
		if t == v {
			return true
		}
	}
	return false
}

// StringsOf converts a slice of string-kinded enum values to plain strings,
// for schema enums and select options.
func StringsOf[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
