package admin

import (
	"context"

	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/errnorm"
	"github.com/jawahirullah/portal/internal/app/system/prefs"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// recentLimit is how many of the newest documents the stats tab shows.
const recentLimit = 5

type statsVM struct {
	Books       int64
	Speeches    int64
	Blogs       int64
	Unread      int64
	Subscribers int64

	// Choices is nil when no tally is wired.
	Choices *prefs.Choices

	RecentBooks    []models.Book
	RecentSpeeches []models.Speech
	RecentBlogs    []models.BlogPost
	RecentContacts []models.ContactMessage
}

// stats loads the counters and recent lists concurrently. The first failure
// cancels the rest and is returned as a display message.
func (h *Handler) stats(ctx context.Context) (statsVM, string) {
	var vm statsVM
	if h.Choices != nil {
		c := h.Choices.Snapshot()
		vm.Choices = &c
	}
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, n func(context.Context) (int64, error)) {
		g.Go(func() error {
			v, err := n(gctx)
			*dst = v
			return err
		})
	}
	count(&vm.Books, func(c context.Context) (int64, error) { return h.Stores.Books.Count(c, nil) })
	count(&vm.Speeches, func(c context.Context) (int64, error) { return h.Stores.Speeches.Count(c, nil) })
	count(&vm.Blogs, func(c context.Context) (int64, error) { return h.Stores.Blogs.Count(c, nil) })
	count(&vm.Unread, func(c context.Context) (int64, error) {
		return h.Stores.Contacts.Count(c, map[string]any{"status": string(models.ContactUnread)})
	})
	count(&vm.Subscribers, func(c context.Context) (int64, error) {
		return h.Stores.Newsletter.Count(c, map[string]any{"status": string(models.SubscriptionActive)})
	})

	g.Go(func() (err error) { vm.RecentBooks, err = recent(gctx, h.Stores.Books); return })
	g.Go(func() (err error) { vm.RecentSpeeches, err = recent(gctx, h.Stores.Speeches); return })
	g.Go(func() (err error) { vm.RecentBlogs, err = recent(gctx, h.Stores.Blogs); return })
	g.Go(func() (err error) { vm.RecentContacts, err = recent(gctx, h.Stores.Contacts); return })

	if err := g.Wait(); err != nil {
		h.Log.Warn("load dashboard stats failed", zap.Error(err))
		return vm, errnorm.Message(err)
	}
	return vm, ""
}

func recent[T any](ctx context.Context, coll docstore.Collection[T]) ([]T, error) {
	return coll.GetAll(ctx, docstore.ListOptions{Limit: recentLimit})
}
