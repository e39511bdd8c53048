package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom-api/models"
	"newsroom-api/services"
)

func TestStoryService_CreateAndSlug(t *testing.T) {
	f := newFixture(t)
	reporter := f.actor(t, models.RoleReporter)
	reader := f.actor(t, models.RoleUser)

	_, err := f.stories.Create(f.ctx, reader, models.StoryInput{Title: ptr("x"), CoverPhoto: ptr("https://x.io/a.png")})
	assert.ErrorIs(t, err, services.ErrForbidden)

	var verr *services.ValidationError
	_, err = f.stories.Create(f.ctx, reporter, models.StoryInput{})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "cover_photo")

	first, err := f.stories.Create(f.ctx, reporter, models.StoryInput{Title: ptr("World Cup"), CoverPhoto: ptr("https://x.io/a.png")})
	require.NoError(t, err)
	assert.Equal(t, "world-cup", first.Slug)
	assert.Equal(t, models.StoryPending, first.Status)
	assert.Zero(t, first.Views)

	second, err := f.stories.Create(f.ctx, reporter, models.StoryInput{Title: ptr("World Cup"), CoverPhoto: ptr("https://x.io/b.png")})
	require.NoError(t, err)
	assert.Equal(t, "world-cup-1", second.Slug)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = f.stories.Update(f.ctx, reporter, first.ID, models.StoryInput{StartDate: &start, EndDate: ptr(start.Add(-time.Hour))})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_date")
}

func TestStoryService_AddPostBackfillsDescription(t *testing.T) {
	f := newFixture(t)
	long := strings.Repeat("word ", 80)
	post, err := f.posts.Create(f.ctx, f.admin, models.PostInput{Title: ptr("Lead"), ShortDescription: ptr(long)})
	require.NoError(t, err)

	story, err := f.stories.Create(f.ctx, f.admin, models.StoryInput{Title: ptr("Coverage"), CoverPhoto: ptr("https://x.io/c.png")})
	require.NoError(t, err)

	story, err = f.stories.AddPost(f.ctx, f.admin, story.ID, post.ID)
	require.NoError(t, err)
	assert.Len(t, []rune(story.Description), 255)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(long), story.Description[:20]))

	_, err = f.stories.AddPost(f.ctx, f.admin, story.ID, 999)
	assert.ErrorIs(t, err, services.ErrValidation)

	posts, err := f.stories.Posts(f.ctx, f.admin, story.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	require.NoError(t, f.stories.RemovePost(f.ctx, f.admin, story.ID, post.ID))
	assert.ErrorIs(t, f.stories.RemovePost(f.ctx, f.admin, story.ID, post.ID), services.ErrNotFound)
}

func TestStoryService_PublicReads(t *testing.T) {
	f := newFixture(t)
	reporter := f.actor(t, models.RoleReporter)
	story, err := f.stories.Create(f.ctx, f.admin, models.StoryInput{Title: ptr("Live"), CoverPhoto: ptr("https://x.io/d.png")})
	require.NoError(t, err)

	_, err = f.stories.Detail(f.ctx, story.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.stories.Update(f.ctx, f.admin, story.ID, models.StoryInput{Status: ptr(models.StoryActive)})
	require.NoError(t, err)

	detail, err := f.stories.Detail(f.ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Views)

	visible := f.published(t, "Visible")
	hidden := f.draft(t, reporter, "Hidden")
	_, err = f.stories.AddPost(f.ctx, f.admin, story.ID, visible.ID)
	require.NoError(t, err)
	_, err = f.stories.AddPost(f.ctx, f.admin, story.ID, hidden.ID)
	require.NoError(t, err)

	posts, err := f.stories.PublicPosts(f.ctx, story.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, visible.ID, posts[0].ID)

	active, total, err := f.stories.ListActive(f.ctx, models.StoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, active, 1)
}

func TestStoryService_LongTitles(t *testing.T) {
	f := newFixture(t)

	var verr *services.ValidationError
	_, err := f.stories.Create(f.ctx, f.admin, models.StoryInput{Title: ptr(strings.Repeat("y", 256)), CoverPhoto: ptr("https://x.io/a.png")})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")

	story, err := f.stories.Create(f.ctx, f.admin, models.StoryInput{Title: ptr(strings.Repeat("y", 255)), CoverPhoto: ptr("https://x.io/a.png")})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(story.Slug), 191)
}
