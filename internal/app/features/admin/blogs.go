package admin

import (
	"strings"
	"time"

	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/forms"
	"github.com/jawahirullah/portal/internal/app/system/markdown"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/domain/models"
)

// Slug and reading time may be left blank; they are derived from the title
// and the English content.
type blogForm struct {
	Title            string `form:"title" label:"Title" validate:"required"`
	TitleTamil       string `form:"title_tamil" label:"Tamil title" validate:"required"`
	Excerpt          string `form:"excerpt" label:"Excerpt" validate:"required"`
	ExcerptTamil     string `form:"excerpt_tamil" label:"Tamil excerpt"`
	Content          string `form:"content" label:"Content" validate:"required"`
	ContentTamil     string `form:"content_tamil" label:"Tamil content"`
	FeaturedImageURL string `form:"featured_image_url"`
	PublishDate      string `form:"publish_date" label:"Publish date" validate:"required,isodate"`
	Status           string `form:"status" label:"Status" validate:"required,oneof=draft published"`
	Category         string `form:"category" label:"Category"`
	CategoryTamil    string `form:"category_tamil" label:"Tamil category"`
	Tags             string `form:"tags" label:"Tags"`
	ReadingTime      int    `form:"reading_time" label:"Reading time" validate:"omitempty,min=1,max=600"`
	Slug             string `form:"slug" label:"Slug" validate:"omitempty,slug"`
}

func (h *Handler) blogs() crud[models.BlogPost, blogForm] {
	return crud[models.BlogPost, blogForm]{h: h, e: entity[models.BlogPost, blogForm]{
		tab:      TabBlogs,
		name:     models.CollBlogs,
		template: "admin_blog_form",
		coll:     func(s content.Stores) docstore.Collection[models.BlogPost] { return s.Blogs },
		fields: []string{
			"title", "title_tamil", "excerpt", "excerpt_tamil", "content", "content_tamil",
			"featured_image_url", "publish_date", "status", "category", "category_tamil",
			"tags", "reading_time", "slug",
		},
		uploads: []upload[blogForm]{{
			input:    "featured_image",
			folder:   media.FolderBlogs,
			required: "Please upload a featured image",
			target:   func(f *blogForm) *string { return &f.FeaturedImageURL },
		}},
		defaults: func() blogForm {
			return blogForm{Status: string(models.StatusDraft), PublishDate: today()}
		},
		fromDoc: func(b models.BlogPost) blogForm {
			return blogForm{
				Title:            b.Title,
				TitleTamil:       b.TitleTamil,
				Excerpt:          b.Excerpt,
				ExcerptTamil:     b.ExcerptTamil,
				Content:          b.Content,
				ContentTamil:     b.ContentTamil,
				FeaturedImageURL: b.FeaturedImageURL,
				PublishDate:      b.PublishDate,
				Status:           string(b.Status),
				Category:         b.Category,
				CategoryTamil:    b.CategoryTamil,
				Tags:             strings.Join(b.Tags, ", "),
				ReadingTime:      b.ReadingTime,
				Slug:             b.Slug,
			}
		},
		toDoc: func(f blogForm) models.BlogPost {
			return models.BlogPost{
				Title:            f.Title,
				TitleTamil:       f.TitleTamil,
				Excerpt:          f.Excerpt,
				ExcerptTamil:     f.ExcerptTamil,
				Content:          f.Content,
				ContentTamil:     f.ContentTamil,
				FeaturedImageURL: f.FeaturedImageURL,
				PublishDate:      f.PublishDate,
				Status:           models.PublishStatus(f.Status),
				Category:         f.Category,
				CategoryTamil:    f.CategoryTamil,
				Tags:             forms.SplitTags(f.Tags),
				ReadingTime:      f.ReadingTime,
				Slug:             f.Slug,
			}
		},
		check: func(f *blogForm, errs forms.Errors) {
			// A Tamil-only title has no ASCII to build a slug from.
			if f.Slug == "" && f.Title != "" && forms.Slugify(f.Title) == "" {
				errs.Add("slug", "Slug is required when the title has no Latin letters")
			}
		},
		derive: func(f *blogForm) {
			if f.Slug == "" {
				f.Slug = forms.Slugify(f.Title)
			}
			if f.ReadingTime == 0 {
				f.ReadingTime = markdown.ReadingTime(f.Content)
			}
		},
	}}
}

func today() string { return time.Now().Format("2006-01-02") }
