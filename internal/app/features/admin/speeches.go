package admin

import (
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/domain/models"
)

// A speech needs a video: either a link (usually YouTube) or an uploaded
// file. The thumbnail is optional and derived from YouTube links.
type speechForm struct {
	Title        string `form:"title" label:"Title" validate:"required"`
	TitleTamil   string `form:"title_tamil" label:"Tamil title" validate:"required"`
	VideoURL     string `form:"video_url" label:"Video URL" validate:"omitempty,url"`
	ThumbnailURL string `form:"thumbnail_url" label:"Thumbnail URL" validate:"omitempty,url"`
	Status       string `form:"status" label:"Status" validate:"required,oneof=draft published"`
}

func (h *Handler) speeches() crud[models.Speech, speechForm] {
	return crud[models.Speech, speechForm]{h: h, e: entity[models.Speech, speechForm]{
		tab:      TabSpeeches,
		name:     models.CollSpeeches,
		template: "admin_speech_form",
		coll:     func(s content.Stores) docstore.Collection[models.Speech] { return s.Speeches },
		fields:   []string{"title", "title_tamil", "video_url", "thumbnail_url", "status"},
		uploads: []upload[speechForm]{
			{
				input:    "video",
				folder:   media.FolderVideos,
				video:    true,
				required: "Please enter a video URL or upload a video",
				target:   func(f *speechForm) *string { return &f.VideoURL },
			},
			{
				input:  "thumbnail",
				folder: media.FolderSpeeches,
				target: func(f *speechForm) *string { return &f.ThumbnailURL },
			},
		},
		defaults: func() speechForm { return speechForm{Status: string(models.StatusDraft)} },
		fromDoc: func(s models.Speech) speechForm {
			return speechForm{
				Title:        s.Title,
				TitleTamil:   s.TitleTamil,
				VideoURL:     s.VideoURL,
				ThumbnailURL: s.ThumbnailURL,
				Status:       string(s.Status),
			}
		},
		toDoc: func(f speechForm) models.Speech {
			return models.Speech{
				Title:        f.Title,
				TitleTamil:   f.TitleTamil,
				VideoURL:     f.VideoURL,
				ThumbnailURL: f.ThumbnailURL,
				Status:       models.PublishStatus(f.Status),
			}
		},
		derive: func(f *speechForm) {
			if f.ThumbnailURL == "" {
				f.ThumbnailURL = media.YouTubeThumbnail(f.VideoURL)
			}
		},
	}}
}
