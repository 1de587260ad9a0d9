// Package shared holds view helpers used by more than one public page.
package shared

import (
	"context"

	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/app/system/repository"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

// SpeechCard is a speech plus the URLs its card needs.
type SpeechCard struct {
	models.Speech
	Embed string // YouTube embed URL, or "" for an uploaded video
	Thumb string
}

// SpeechCards decorates speeches for display. Uploaded videos keep their
// stored thumbnail; YouTube links without one get YouTube's.
func SpeechCards(speeches []models.Speech) []SpeechCard {
	out := make([]SpeechCard, 0, len(speeches))
	for _, s := range speeches {
		c := SpeechCard{Speech: s, Embed: media.YouTubeEmbed(s.VideoURL), Thumb: s.ThumbnailURL}
		if c.Thumb == "" {
			c.Thumb = media.YouTubeThumbnail(s.VideoURL)
		}
		out = append(out, c)
	}
	return out
}

// Published lists the published documents of coll, newest first. A failed
// load is logged and yields an empty list so the page still renders.
func Published[T any](ctx context.Context, coll docstore.Collection[T], name string, log *zap.Logger) []T {
	repo := repository.New(coll, name, log)
	items := repo.ListByStatus(ctx, string(models.StatusPublished))
	if msg := repo.Err(); msg != "" {
		log.Warn("load published content failed", zap.String("collection", name), zap.String("error", msg))
	}
	return items
}

// All lists every document of coll, newest first, up to limit (0 for all).
func All[T any](ctx context.Context, coll docstore.Collection[T], name string, limit int64, log *zap.Logger) []T {
	items, err := coll.GetAll(ctx, docstore.ListOptions{Limit: limit})
	if err != nil {
		log.Warn("load content failed", zap.String("collection", name), zap.Error(err))
		return nil
	}
	return items
}

// First returns at most n items.
func First[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
