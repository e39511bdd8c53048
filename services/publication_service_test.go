package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom-api/models"
	"newsroom-api/services"
)

func TestPublicationService_Run(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	expired, err := f.posts.Create(f.ctx, f.admin, models.PostInput{Title: ptr("Expired"), EndDate: ptr(now.Add(-time.Hour))})
	require.NoError(t, err)
	running, err := f.posts.Create(f.ctx, f.admin, models.PostInput{Title: ptr("Running"), EndDate: ptr(now.Add(time.Hour))})
	require.NoError(t, err)
	f.published(t, "Forever")

	story, err := f.stories.Create(f.ctx, f.admin, models.StoryInput{
		Title:      ptr("Past event"),
		CoverPhoto: ptr("https://x.io/e.png"),
		Status:     ptr(models.StoryActive),
		StartDate:  ptr(now.Add(-48 * time.Hour)),
		EndDate:    ptr(now.Add(-24 * time.Hour)),
	})
	require.NoError(t, err)

	svc := services.NewPublicationService(f.db.Posts(), f.db.Stories())
	svc.SetClock(func() time.Time { return now })

	closed, archived, err := svc.Run(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)
	assert.Equal(t, int64(1), archived)

	post, err := f.posts.Get(f.ctx, f.admin, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, post.Status)
	assert.NotNil(t, post.DeletedAt)

	post, err = f.posts.Get(f.ctx, f.admin, running.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, post.Status)

	s, err := f.stories.Get(f.ctx, f.admin, story.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StoryArchived, s.Status)

	closed, archived, err = svc.Run(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, closed)
	assert.Zero(t, archived)
}
