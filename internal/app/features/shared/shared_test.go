package shared_test

import (
	"testing"

	"github.com/jawahirullah/portal/internal/app/features/shared"
	"github.com/jawahirullah/portal/internal/domain/models"
	"github.com/jawahirullah/portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSpeechCards(t *testing.T) {
	cards := shared.SpeechCards([]models.Speech{
		{Title: "yt", VideoURL: "https://youtu.be/dQw4w9WgXcQ"},
		{Title: "upload", VideoURL: "https://res.cloudinary.com/demo/video/upload/videos/a.mp4", ThumbnailURL: "https://res.cloudinary.com/demo/image/upload/speeches/a.jpg"},
	})
	require.Len(t, cards, 2)
	assert.NotEmpty(t, cards[0].Embed)
	assert.NotEmpty(t, cards[0].Thumb)
	assert.Empty(t, cards[1].Embed)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/speeches/a.jpg", cards[1].Thumb)
}

func TestPublished_OnlyPublished(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateBook("Out", models.StatusPublished)
	fx.CreateBook("Hidden", models.StatusDraft)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	books := shared.Published(ctx, fx.Stores.Books, models.CollBooks, zap.NewNop())
	require.Len(t, books, 1)
	assert.Equal(t, "Out", books[0].Title)
}

func TestFirst(t *testing.T) {
	assert.Equal(t, []int{1, 2}, shared.First([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, shared.First([]int{1}, 3))
}
