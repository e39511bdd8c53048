package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom-api/models"
	"newsroom-api/services"
)

func TestContentService_BackfillsEmptySummary(t *testing.T) {
	f := newFixture(t)
	post := f.published(t, "Summarised")

	_, err := f.contents.Create(f.ctx, f.admin, models.ContentInput{
		PostID: &post.ID,
		Text:   ptr("First sentence. Second *sentence*! Third sentence?"),
	})
	require.NoError(t, err)

	stored, err := f.posts.Get(f.ctx, f.admin, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First sentence. Second sentence!", stored.ShortDescription)

	// An existing summary is never overwritten.
	_, err = f.contents.Create(f.ctx, f.admin, models.ContentInput{
		PostID: &post.ID,
		Text:   ptr("Another text. More."),
	})
	require.NoError(t, err)
	stored, err = f.posts.Get(f.ctx, f.admin, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First sentence. Second sentence!", stored.ShortDescription)
}

func TestContentService_OnlyMainTextBackfills(t *testing.T) {
	f := newFixture(t)
	post := f.published(t, "Quoted")

	_, err := f.contents.Create(f.ctx, f.admin, models.ContentInput{
		PostID:      &post.ID,
		ContentType: ptr(models.ContentQuote),
		Text:        ptr("A quote."),
	})
	require.NoError(t, err)

	stored, err := f.posts.Get(f.ctx, f.admin, post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ShortDescription)
}

func TestContentService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	post := f.published(t, "Post")
	missing := uint(404)

	var verr *services.ValidationError
	_, err := f.contents.Create(f.ctx, f.admin, models.ContentInput{Text: ptr("x")})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "post")

	_, err = f.contents.Create(f.ctx, f.admin, models.ContentInput{PostID: &missing})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid pk - object does not exist.", verr.Fields["post"])

	_, err = f.contents.Create(f.ctx, f.admin, models.ContentInput{
		PostID:      &post.ID,
		ContentType: ptr(models.ContentType("Poll")),
		PhotoID:     &missing,
		Video:       ptr("not a url"),
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "content_type")
	assert.Contains(t, verr.Fields, "photo")
	assert.Contains(t, verr.Fields, "video")

	photo, err := f.photos.Create(f.ctx, f.admin, models.PhotoInput{Title: "Cover", URL: "https://cdn.example.com/a.jpg"})
	require.NoError(t, err)
	content, err := f.contents.Create(f.ctx, f.admin, models.ContentInput{
		PostID:      &post.ID,
		ContentType: ptr(models.ContentGallery),
		PhotoID:     &photo.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, content.Photo)
	assert.Equal(t, photo.URL, content.Photo.URL)
}

func TestContentService_PermissionsFollowPostState(t *testing.T) {
	f := newFixture(t)
	reporter := f.actor(t, models.RoleReporter)
	editor := f.actor(t, models.RoleEditor)

	draft := f.draft(t, reporter, "Draft")
	approved := f.published(t, "Approved")

	newBlock := func(postID uint) *models.Content {
		c, err := f.contents.Create(f.ctx, reporter, models.ContentInput{PostID: &postID, Text: ptr("body")})
		require.NoError(t, err)
		return c
	}

	t.Run("draft", func(t *testing.T) {
		block := newBlock(draft.ID)
		_, err := f.contents.Update(f.ctx, reporter, block.ID, models.ContentInput{Title: ptr("reporter")})
		assert.NoError(t, err)
		_, err = f.contents.Update(f.ctx, editor, block.ID, models.ContentInput{Title: ptr("editor")})
		assert.NoError(t, err)

		assert.ErrorIs(t, f.contents.Delete(f.ctx, editor, block.ID), services.ErrForbidden)
		assert.NoError(t, f.contents.Delete(f.ctx, reporter, block.ID))
	})

	t.Run("approved", func(t *testing.T) {
		block := newBlock(approved.ID)
		_, err := f.contents.Update(f.ctx, reporter, block.ID, models.ContentInput{Title: ptr("reporter")})
		assert.ErrorIs(t, err, services.ErrForbidden)
		_, err = f.contents.Update(f.ctx, editor, block.ID, models.ContentInput{Title: ptr("editor")})
		assert.NoError(t, err)

		assert.ErrorIs(t, f.contents.Delete(f.ctx, reporter, block.ID), services.ErrForbidden)
		assert.ErrorIs(t, f.contents.Delete(f.ctx, editor, block.ID), services.ErrForbidden)
		assert.NoError(t, f.contents.Delete(f.ctx, f.admin, block.ID))
	})

	t.Run("cannot move", func(t *testing.T) {
		block := newBlock(draft.ID)
		_, err := f.contents.Update(f.ctx, editor, block.ID, models.ContentInput{PostID: &approved.ID})
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}
