package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom-api/models"
	"newsroom-api/services"
)

func TestVideoService(t *testing.T) {
	f := newFixture(t)
	reporter := f.actor(t, models.RoleReporter)
	reader := f.actor(t, models.RoleUser)

	_, err := f.videos.Create(f.ctx, reader, models.VideoInput{Title: "Clip", URL: "https://video.example.com/1"})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.videos.Create(f.ctx, reporter, models.VideoInput{Title: strings.Repeat("v", 256), URL: "https://video.example.com/1"})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.videos.Create(f.ctx, reporter, models.VideoInput{Title: "Clip", URL: "video.example.com/1"})
	assert.ErrorIs(t, err, services.ErrValidation)

	video, err := f.videos.Create(f.ctx, reporter, models.VideoInput{Title: " Clip ", URL: "https://video.example.com/1", Text: "Match highlights"})
	require.NoError(t, err)
	assert.Equal(t, "Clip", video.Title)

	updated, err := f.videos.Update(f.ctx, reporter, video.ID, models.VideoInput{Title: "Full match", URL: "https://video.example.com/2"})
	require.NoError(t, err)
	assert.Equal(t, "https://video.example.com/2", updated.URL)

	items, total, err := f.videos.Browse(f.ctx, models.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Full match", items[0].Title)

	shown, err := f.videos.Show(f.ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, video.ID, shown.ID)

	require.NoError(t, f.videos.Delete(f.ctx, reporter, video.ID))
	_, err = f.videos.Show(f.ctx, video.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestGalleryService(t *testing.T) {
	f := newFixture(t)

	_, err := f.galleries.Create(f.ctx, f.admin, models.GalleryInput{Title: "Spring", PhotoID: 404})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "photo")

	photo, err := f.photos.Create(f.ctx, f.admin, models.PhotoInput{Title: "Blossom", URL: "https://cdn.example.com/blossom.jpg"})
	require.NoError(t, err)
	other, err := f.photos.Create(f.ctx, f.admin, models.PhotoInput{Title: "Rain", URL: "https://cdn.example.com/rain.jpg"})
	require.NoError(t, err)

	item, err := f.galleries.Create(f.ctx, f.admin, models.GalleryInput{Title: "Spring", PhotoID: photo.ID, Description: "Season opener"})
	require.NoError(t, err)
	require.NotNil(t, item.Photo)
	assert.Equal(t, photo.URL, item.Photo.URL)

	item, err = f.galleries.Update(f.ctx, f.admin, item.ID, models.GalleryInput{Title: "Showers", PhotoID: other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.URL, item.Photo.URL)
	assert.Empty(t, item.Description)

	_, err = f.galleries.Create(f.ctx, f.admin, models.GalleryInput{Title: "Also rain", PhotoID: other.ID})
	require.NoError(t, err)

	// Removing the photo takes its gallery entries with it.
	require.NoError(t, f.photos.Delete(f.ctx, f.admin, other.ID))
	_, total, err := f.galleries.List(f.ctx, f.admin, models.Page{})
	require.NoError(t, err)
	assert.Zero(t, total)
	_, err = f.galleries.Get(f.ctx, f.admin, item.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestPhotoService_PublicBrowse(t *testing.T) {
	f := newFixture(t)

	_, err := f.photos.Create(f.ctx, f.admin, models.PhotoInput{Title: "Skyline", URL: "https://cdn.example.com/sky.jpg"})
	require.NoError(t, err)

	_, _, err = f.photos.List(f.ctx, models.Actor{}, models.Page{})
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	photos, total, err := f.photos.Browse(f.ctx, models.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Skyline", photos[0].Title)
}
