package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom-api/models"
	"newsroom-api/services"
)

func TestFeedbackService_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	reporter := f.actor(t, models.RoleReporter)
	editor := f.actor(t, models.RoleEditor)
	post := f.draft(t, reporter, "Needs work")

	_, err := f.feedback.Create(f.ctx, editor, models.FeedbackInput{PostID: 999, Text: "??"})
	assert.ErrorIs(t, err, services.ErrValidation)

	fb, err := f.feedback.Create(f.ctx, editor, models.FeedbackInput{PostID: post.ID, Text: "Tighten the lead"})
	require.NoError(t, err)
	require.NotNil(t, fb.Owner)
	assert.Equal(t, editor.ID, fb.Owner.ID)

	_, err = f.feedback.Update(f.ctx, reporter, fb.ID, models.FeedbackInput{Text: "ignored"})
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.ErrorIs(t, f.feedback.Delete(f.ctx, reporter, fb.ID), services.ErrForbidden)

	fb, err = f.feedback.Update(f.ctx, editor, fb.ID, models.FeedbackInput{Text: "Tighten the lead, please"})
	require.NoError(t, err)
	assert.Equal(t, "Tighten the lead, please", fb.Text)

	list, total, err := f.feedback.List(f.ctx, reporter, models.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	require.NoError(t, f.feedback.Delete(f.ctx, editor, fb.ID))
	_, err = f.feedback.Get(f.ctx, editor, fb.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestPhotoService(t *testing.T) {
	f := newFixture(t)
	reader := f.actor(t, models.RoleUser)

	_, err := f.photos.Create(f.ctx, reader, models.PhotoInput{Title: "x", URL: "https://x.io/p.png"})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.photos.Create(f.ctx, f.admin, models.PhotoInput{Title: " ", URL: "ftp://x"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "url")

	photo, err := f.photos.Create(f.ctx, f.admin, models.PhotoInput{Title: "Skyline", URL: "https://x.io/p.png"})
	require.NoError(t, err)

	photo, err = f.photos.Update(f.ctx, f.admin, photo.ID, models.PhotoInput{Title: "Skyline at night", URL: photo.URL})
	require.NoError(t, err)
	assert.Equal(t, "Skyline at night", photo.Title)

	require.NoError(t, f.photos.Delete(f.ctx, f.admin, photo.ID))
	_, err = f.photos.Get(f.ctx, f.admin, photo.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
