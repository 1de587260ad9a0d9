package admin

import (
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/domain/models"
)

type testimonialForm struct {
	Name        string `form:"name" label:"Name" validate:"required"`
	Designation string `form:"designation" label:"Designation" validate:"required"`
	Photo       string `form:"photo_url"`
	Content     string `form:"content" label:"Testimonial" validate:"required,max=2000"`
}

func (h *Handler) testimonials() crud[models.Testimonial, testimonialForm] {
	return crud[models.Testimonial, testimonialForm]{h: h, e: entity[models.Testimonial, testimonialForm]{
		tab:      TabTestimonials,
		name:     models.CollTestimonials,
		template: "admin_testimonial_form",
		coll:     func(s content.Stores) docstore.Collection[models.Testimonial] { return s.Testimonials },
		fields:   []string{"name", "designation", "photo", "content"},
		uploads: []upload[testimonialForm]{{
			input:    "photo",
			folder:   media.FolderTestimonials,
			required: "Please upload a photo",
			target:   func(f *testimonialForm) *string { return &f.Photo },
		}},
		fromDoc: func(t models.Testimonial) testimonialForm {
			return testimonialForm{Name: t.Name, Designation: t.Designation, Photo: t.Photo, Content: t.Content}
		},
		toDoc: func(f testimonialForm) models.Testimonial {
			return models.Testimonial{Name: f.Name, Designation: f.Designation, Photo: f.Photo, Content: f.Content}
		},
	}}
}
