package admin

import (
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/domain/models"
)

var (
	publishStatuses = models.StringsOf(models.PublishStatuses)
	updateTypes     = models.StringsOf(models.UpdateTypes)
)

type bookForm struct {
	Title         string `form:"title" label:"Title" validate:"required"`
	TitleTamil    string `form:"title_tamil" label:"Tamil title" validate:"required"`
	CoverImageURL string `form:"cover_image_url"`
	BuyLink       string `form:"buy_link" label:"Buy link" validate:"omitempty,url"`
	Status        string `form:"status" label:"Status" validate:"required,oneof=draft published"`
}

func (h *Handler) books() crud[models.Book, bookForm] {
	return crud[models.Book, bookForm]{h: h, e: entity[models.Book, bookForm]{
		tab:      TabBooks,
		name:     models.CollBooks,
		template: "admin_book_form",
		coll:     func(s content.Stores) docstore.Collection[models.Book] { return s.Books },
		fields:   []string{"title", "title_tamil", "cover_image_url", "buy_link", "status"},
		uploads: []upload[bookForm]{{
			input:    "cover_image",
			folder:   media.FolderBooks,
			required: "Please upload a cover image",
			target:   func(f *bookForm) *string { return &f.CoverImageURL },
		}},
		defaults: func() bookForm { return bookForm{Status: string(models.StatusDraft)} },
		fromDoc: func(b models.Book) bookForm {
			return bookForm{
				Title:         b.Title,
				TitleTamil:    b.TitleTamil,
				CoverImageURL: b.CoverImageURL,
				BuyLink:       b.BuyLink,
				Status:        string(b.Status),
			}
		},
		toDoc: func(f bookForm) models.Book {
			return models.Book{
				Title:         f.Title,
				TitleTamil:    f.TitleTamil,
				CoverImageURL: f.CoverImageURL,
				BuyLink:       f.BuyLink,
				Status:        models.PublishStatus(f.Status),
			}
		},
	}}
}
