package admin

import (
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/domain/models"
)

// defaultIcons is used when an update is saved without an icon.
var defaultIcons = map[models.UpdateType]string{
	models.UpdateAnnouncement: "📢",
	models.UpdateAchievement:  "🏆",
	models.UpdateEvent:        "📅",
	models.UpdateMedia:        "📺",
	models.UpdatePolicy:       "📜",
}

type updateForm struct {
	Type      string `form:"type" label:"Type" validate:"required,oneof=announcement achievement event media policy"`
	Icon      string `form:"icon" label:"Icon" validate:"max=16"`
	Text      string `form:"text" label:"Text" validate:"required"`
	TextTamil string `form:"text_tamil" label:"Tamil text" validate:"required"`
}

func (h *Handler) updates() crud[models.Update, updateForm] {
	return crud[models.Update, updateForm]{h: h, e: entity[models.Update, updateForm]{
		tab:      TabUpdates,
		name:     models.CollUpdates,
		template: "admin_update_form",
		coll:     func(s content.Stores) docstore.Collection[models.Update] { return s.Updates },
		fields:   []string{"type", "icon", "text", "text_tamil"},
		defaults: func() updateForm { return updateForm{Type: string(models.UpdateAnnouncement)} },
		fromDoc: func(u models.Update) updateForm {
			return updateForm{Type: string(u.Type), Icon: u.Icon, Text: u.Text, TextTamil: u.TextTamil}
		},
		toDoc: func(f updateForm) models.Update {
			return models.Update{Type: models.UpdateType(f.Type), Icon: f.Icon, Text: f.Text, TextTamil: f.TextTamil}
		},
		derive: func(f *updateForm) {
			if f.Icon == "" {
				f.Icon = defaultIcons[models.UpdateType(f.Type)]
			}
		},
	}}
}
