package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsroom-api/models"
	"newsroom-api/repositories/memory"
	"newsroom-api/services"
	"newsroom-api/utils"
)

// MockMailer is a testify mock of services.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPostApproved(ctx context.Context, author *models.User, post *models.Post) error {
	args := m.Called(ctx, author, post)
	return args.Error(0)
}

type fixture struct {
	ctx       context.Context
	db        *memory.DB
	mailer    *MockMailer
	posts     *services.PostService
	comments  *services.CommentService
	reactions *services.ReactionService
	contents  *services.ContentService
	stories   *services.StoryService
	taxonomy  *services.TaxonomyService
	photos    *services.PhotoService
	feedback  *services.FeedbackService
	users     *services.UserService
	videos    *services.VideoService
	galleries *services.GalleryService
	site      *services.SiteService

	seq   int
	admin models.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.NewDB()
	mailer := &MockMailer{}
	t.Cleanup(func() { mailer.AssertExpectations(t) })

	cache, err := utils.NewCache[[]models.CategoryNode](16, time.Minute)
	require.NoError(t, err)

	posts := services.NewPostService(db.Posts(), db.Comments(), db.Reactions(), mailer)
	posts.NotifySynchronously()

	f := &fixture{
		ctx:       context.Background(),
		db:        db,
		mailer:    mailer,
		posts:     posts,
		comments:  services.NewCommentService(db.Comments(), db.Posts(), db.Reactions()),
		reactions: services.NewReactionService(db.Reactions(), db.Posts(), db.Comments()),
		contents:  services.NewContentService(db.Contents(), db.Posts(), db.Photos()),
		stories:   services.NewStoryService(db.Stories(), db.Posts()),
		taxonomy:  services.NewTaxonomyService(db.Categories(), db.Keywords(), cache),
		photos:    services.NewPhotoService(db.Photos()),
		feedback:  services.NewFeedbackService(db.Feedback(), db.Posts()),
		users:     services.NewUserService(db.Users()),
		videos:    services.NewVideoService(db.Videos()),
		galleries: services.NewGalleryService(db.Galleries(), db.Photos()),
		site:      services.NewSiteService(db.Settings(), db.SocialMedia(), db.Contacts(), db.Opinions()),
	}
	f.admin = f.actor(t, models.RoleAdmin)
	return f
}

// actor stores a new active account with role and returns it as an actor.
func (f *fixture) actor(t *testing.T, role models.Role) models.Actor {
	t.Helper()
	f.seq++
	user := &models.User{
		Email:     fmt.Sprintf("%s%d@example.com", role.String(), f.seq),
		FirstName: role.String(),
		LastName:  fmt.Sprint(f.seq),
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, f.db.Users().Create(f.ctx, user))
	return user.Actor()
}

// draft creates an unapproved post owned by a reporter.
func (f *fixture) draft(t *testing.T, reporter models.Actor, title string) *models.Post {
	t.Helper()
	post, err := f.posts.Create(f.ctx, reporter, models.PostInput{Title: ptr(title)})
	require.NoError(t, err)
	require.False(t, post.IsApproved)
	return post
}

// published creates an approved, open post.
func (f *fixture) published(t *testing.T, title string) *models.Post {
	t.Helper()
	post, err := f.posts.Create(f.ctx, f.admin, models.PostInput{Title: ptr(title)})
	require.NoError(t, err)
	require.True(t, post.PubliclyVisible())
	return post
}

// comment adds an approved comment to a post, or a reply when parent is set.
func (f *fixture) comment(t *testing.T, by models.Actor, postID, parentID uint, body string) *models.Comment {
	t.Helper()
	in := models.CommentInput{Body: body}
	if parentID != 0 {
		in.RepliedCommentID = &parentID
	} else {
		in.PostID = &postID
	}
	c, err := f.comments.Create(f.ctx, by, in)
	require.NoError(t, err)
	c, err = f.comments.Approve(f.ctx, f.admin, c.ID, true)
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T {
	return &v
}
