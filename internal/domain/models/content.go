// internal/domain/models/content.go
package models

import "time"

// Book is a published work listed on the Books page.
type Book struct {
	Base          `bson:",inline"`
	Title         string        `bson:"title" json:"title"`
	TitleTamil    string        `bson:"title_tamil" json:"title_tamil"`
	CoverImageURL string        `bson:"cover_image_url" json:"cover_image_url"`
	BuyLink       string        `bson:"buy_link" json:"buy_link"`
	Status        PublishStatus `bson:"status" json:"status"`
}

// Speech is a recorded speech, usually hosted on YouTube.
type Speech struct {
	Base         `bson:",inline"`
	Title        string        `bson:"title" json:"title"`
	TitleTamil   string        `bson:"title_tamil" json:"title_tamil"`
	VideoURL     string        `bson:"video_url" json:"video_url"`
	ThumbnailURL string        `bson:"thumbnail_url" json:"thumbnail_url"`
	Status       PublishStatus `bson:"status" json:"status"`
}

// BlogPost is a bilingual article. Content fields hold Markdown.
type BlogPost struct {
	Base             `bson:",inline"`
	Title            string        `bson:"title" json:"title"`
	TitleTamil       string        `bson:"title_tamil" json:"title_tamil"`
	Excerpt          string        `bson:"excerpt" json:"excerpt"`
	ExcerptTamil     string        `bson:"excerpt_tamil" json:"excerpt_tamil"`
	Content          string        `bson:"content" json:"content"`
	ContentTamil     string        `bson:"content_tamil" json:"content_tamil"`
	FeaturedImageURL string        `bson:"featured_image_url" json:"featured_image_url"`
	PublishDate      string        `bson:"publish_date" json:"publish_date"` // YYYY-MM-DD
	Status           PublishStatus `bson:"status" json:"status"`
	Category         string        `bson:"category" json:"category"`
	CategoryTamil    string        `bson:"category_tamil" json:"category_tamil"`
	Tags             []string      `bson:"tags" json:"tags"`
	ReadingTime      int           `bson:"reading_time" json:"reading_time"` // minutes
	Slug             string        `bson:"slug" json:"slug"`
	Views            int           `bson:"views" json:"views"`
	Comments         int           `bson:"comments" json:"comments"`
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	Base         `bson:",inline"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	Phone        string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject      string        `bson:"subject" json:"subject"`
	Message      string        `bson:"message" json:"message"`
	Status       ContactStatus `bson:"status" json:"status"`
	Replied      bool          `bson:"replied" json:"replied"`
	ReplyMessage string        `bson:"reply_message,omitempty" json:"reply_message,omitempty"`
	ReplyDate    *time.Time    `bson:"reply_date,omitempty" json:"reply_date,omitempty"`
}

// Update is an entry in the news/updates feed shown on the home page.
type Update struct {
	Base      `bson:",inline"`
	Type      UpdateType `bson:"type" json:"type"`
	Icon      string     `bson:"icon" json:"icon"`
	Text      string     `bson:"text" json:"text"`
	TextTamil string     `bson:"text_tamil" json:"text_tamil"`
}

// Testimonial is a quote shown on the home page.
type Testimonial struct {
	Base        `bson:",inline"`
	Name        string `bson:"name" json:"name"`
	Designation string `bson:"designation" json:"designation"`
	Photo       string `bson:"photo" json:"photo"`
	Content     string `bson:"content" json:"content"`
}

// NewsletterSubscription is one e-mail address signed up from the footer.
type NewsletterSubscription struct {
	Base         `bson:",inline"`
	Email        string             `bson:"email" json:"email"`
	Status       SubscriptionStatus `bson:"status" json:"status"`
	SubscribedAt time.Time          `bson:"subscribed_at" json:"subscribed_at"`
}
