package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsroom-api/models"
	"newsroom-api/utils"
)

const storyDescriptionMax = 255

// StoryService manages curated, time-boxed collections of posts.
type StoryService struct {
	stories StoryRepository
	posts   PostRepository
	log     *slog.Logger
	now     func() time.Time
}

func NewStoryService(stories StoryRepository, posts PostRepository) *StoryService {
	return &StoryService{
		stories: stories,
		posts:   posts,
		log:     slog.Default().With("service", "stories"),
		now:     time.Now,
	}
}

func (s *StoryService) Create(ctx context.Context, actor models.Actor, in models.StoryInput) (*models.Story, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	if in.Title == nil {
		verr.Add("title", "This field is required.")
	}
	if in.CoverPhoto == nil {
		verr.Add("cover_photo", "This field is required.")
	}
	story := &models.Story{Status: models.StoryPending, StartDate: s.now()}
	applyStoryInput(story, in, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	create := func(slug string) error {
		story.ID = 0
		story.Slug = slug
		return s.stories.Create(ctx, story)
	}
	if err := s.write(ctx, story, !story.CustomSlug, create); err != nil {
		return nil, err
	}
	s.log.Info("story created", "story_id", story.ID, "slug", story.Slug)
	return s.stories.GetByID(ctx, story.ID)
}

func (s *StoryService) Update(ctx context.Context, actor models.Actor, id uint, in models.StoryInput) (*models.Story, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldBase := utils.Slugify(story.Title)
	hadCustomSlug := story.CustomSlug

	verr := &ValidationError{}
	applyStoryInput(story, in, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	regenerate := !story.CustomSlug &&
		(story.Slug == "" || hadCustomSlug || utils.Slugify(story.Title) != oldBase)
	save := func(slug string) error {
		story.Slug = slug
		return s.stories.Update(ctx, story)
	}
	if err := s.write(ctx, story, regenerate, save); err != nil {
		return nil, err
	}
	return s.stories.GetByID(ctx, id)
}

func (s *StoryService) write(ctx context.Context, story *models.Story, regenerate bool, write func(slug string) error) error {
	if !regenerate {
		return writeWithFixedSlug(story.Slug, write)
	}
	taken := func(ctx context.Context, slug string) (bool, error) {
		return s.stories.SlugExists(ctx, slug, story.ID)
	}
	return writeWithSlug(ctx, story.Title, "story", taken, write)
}

func (s *StoryService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return err
	}
	if _, err := s.stories.GetByID(ctx, id); err != nil {
		return err
	}
	return s.stories.Delete(ctx, id)
}

func (s *StoryService) Get(ctx context.Context, actor models.Actor, id uint) (*models.Story, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.stories.GetByID(ctx, id)
}

func (s *StoryService) List(ctx context.Context, actor models.Actor, filter models.StoryFilter) ([]models.Story, int64, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, 0, err
	}
	filter.Page = filter.Page.Normalize(models.DefaultPageSize)
	return s.stories.List(ctx, filter)
}

// AddPost links a post into the story. A story without a description takes
// the short description of the post.
func (s *StoryService) AddPost(ctx context.Context, actor models.Actor, storyID, postID uint) (*models.Story, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, ErrNotFound) {
		return nil, NewValidationError("post", "Invalid pk - object does not exist.")
	}
	if err != nil {
		return nil, err
	}

	if err := s.stories.AddPost(ctx, storyID, postID); err != nil {
		return nil, err
	}

	if story.Description == "" && post.ShortDescription != "" {
		story.Description = truncateRunes(post.ShortDescription, storyDescriptionMax)
		if err := s.stories.Update(ctx, story); err != nil {
			return nil, fmt.Errorf("backfill story description: %w", err)
		}
	}
	return s.stories.GetByID(ctx, storyID)
}

func (s *StoryService) RemovePost(ctx context.Context, actor models.Actor, storyID, postID uint) error {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return err
	}
	if _, err := s.stories.GetByID(ctx, storyID); err != nil {
		return err
	}
	return s.stories.RemovePost(ctx, storyID, postID)
}

// Posts lists the story's posts. Staff see all of them.
func (s *StoryService) Posts(ctx context.Context, actor models.Actor, storyID uint) ([]models.Post, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	if _, err := s.stories.GetByID(ctx, storyID); err != nil {
		return nil, err
	}
	return s.stories.Posts(ctx, storyID, false)
}

// ListActive is the public story listing.
func (s *StoryService) ListActive(ctx context.Context, filter models.StoryFilter) ([]models.Story, int64, error) {
	filter.Status = models.StoryActive
	filter.Page = filter.Page.Normalize(models.DefaultPageSize)
	return s.stories.List(ctx, filter)
}

// Detail is the public read of a story. Anything but an active story is not found.
func (s *StoryService) Detail(ctx context.Context, id uint) (*models.Story, error) {
	story, err := s.activeStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.stories.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	story.Views++
	return story, nil
}

// PublicPosts lists the open, approved posts of an active story.
func (s *StoryService) PublicPosts(ctx context.Context, id uint) ([]models.Post, error) {
	if _, err := s.activeStory(ctx, id); err != nil {
		return nil, err
	}
	return s.stories.Posts(ctx, id, true)
}

func (s *StoryService) activeStory(ctx context.Context, id uint) (*models.Story, error) {
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if story.Status != models.StoryActive {
		return nil, notFound("story")
	}
	return story, nil
}

func applyStoryInput(story *models.Story, in models.StoryInput, verr *ValidationError) {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			verr.Add("title", "This field may not be blank.")
		}
		checkLength(verr, "title", title, maxTitleLength)
		story.Title = title
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			verr.Add("status", fmt.Sprintf("%q is not a valid choice.", *in.Status))
		}
		story.Status = *in.Status
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		checkLength(verr, "description", description, storyDescriptionMax)
		story.Description = description
	}
	if in.StartDate != nil {
		story.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		end := *in.EndDate
		story.EndDate = &end
	}
	if story.EndDate != nil && story.EndDate.Before(story.StartDate) {
		verr.Add("end_date", "End date must not be before the start date.")
	}
	if in.ShowInHomePage != nil {
		story.ShowInHomePage = *in.ShowInHomePage
	}
	if in.CoverPhoto != nil {
		cover := strings.TrimSpace(*in.CoverPhoto)
		if !utils.IsValidURL(cover) {
			verr.Add("cover_photo", "Enter a valid URL.")
		}
		story.CoverPhoto = cover
	}
	if in.Ordering != nil {
		story.Ordering = *in.Ordering
	}
	if in.CustomSlug != nil {
		story.CustomSlug = *in.CustomSlug
	}
	if in.Slug != nil && story.CustomSlug {
		slug := utils.Slugify(*in.Slug)
		if slug == "" {
			verr.Add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
		}
		story.Slug = slug
	}
	if story.CustomSlug && story.Slug == "" {
		verr.Add("slug", "A slug is required when custom_slug is set.")
	}
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
