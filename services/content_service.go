package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsroom-api/models"
	"newsroom-api/utils"
)

const summarySentences = 2

// ContentService manages the ordered body blocks of a post. Who may change a
// block depends on whether its post is still a draft.
type ContentService struct {
	contents ContentRepository
	posts    PostRepository
	photos   Store[models.Photo]
}

func NewContentService(contents ContentRepository, posts PostRepository, photos Store[models.Photo]) *ContentService {
	return &ContentService{contents: contents, posts: posts, photos: photos}
}

func (s *ContentService) Create(ctx context.Context, actor models.Actor, in models.ContentInput) (*models.Content, error) {
	if err := Authorize(actor, ActionContentCreate); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	if in.PostID == nil {
		verr.Add("post", "This field is required.")
	}
	content := &models.Content{ContentType: models.ContentMainText, Ordering: 1}
	s.apply(ctx, content, in, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, *in.PostID)
	if errors.Is(err, ErrNotFound) {
		return nil, NewValidationError("post", "Invalid pk - object does not exist.")
	}
	if err != nil {
		return nil, err
	}
	content.PostID = post.ID

	if err := s.contents.Create(ctx, content); err != nil {
		return nil, err
	}
	if err := s.backfillSummary(ctx, post, content); err != nil {
		return nil, err
	}
	return s.contents.GetByID(ctx, content.ID)
}

func (s *ContentService) Update(ctx context.Context, actor models.Actor, id uint, in models.ContentInput) (*models.Content, error) {
	content, post, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, contentAction(post, false)); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	if in.PostID != nil && *in.PostID != content.PostID {
		verr.Add("post", "A content block cannot be moved to another post.")
	}
	s.apply(ctx, content, in, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.contents.Update(ctx, content); err != nil {
		return nil, err
	}
	if err := s.backfillSummary(ctx, post, content); err != nil {
		return nil, err
	}
	return s.contents.GetByID(ctx, id)
}

func (s *ContentService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	_, post, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := Authorize(actor, contentAction(post, true)); err != nil {
		return err
	}
	return s.contents.Delete(ctx, id)
}

func (s *ContentService) Get(ctx context.Context, actor models.Actor, id uint) (*models.Content, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.contents.GetByID(ctx, id)
}

func (s *ContentService) ListByPost(ctx context.Context, actor models.Actor, postID uint) ([]models.Content, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.contents.ListByPost(ctx, postID)
}

func (s *ContentService) load(ctx context.Context, actor models.Actor, id uint) (*models.Content, *models.Post, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, nil, err
	}
	content, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	post, err := s.posts.GetByID(ctx, content.PostID)
	if err != nil {
		return nil, nil, err
	}
	return content, post, nil
}

func (s *ContentService) apply(ctx context.Context, content *models.Content, in models.ContentInput, verr *ValidationError) {
	if in.ContentType != nil {
		if !in.ContentType.Valid() {
			verr.Add("content_type", fmt.Sprintf("%q is not a valid choice.", *in.ContentType))
		}
		content.ContentType = *in.ContentType
	}
	if in.Ordering != nil {
		content.Ordering = *in.Ordering
	}
	if in.Title != nil {
		content.Title = strings.TrimSpace(*in.Title)
	}
	if in.Text != nil {
		content.Text = *in.Text
	}
	if in.Video != nil {
		video := strings.TrimSpace(*in.Video)
		if video != "" && !utils.IsValidURL(video) {
			verr.Add("video", "Enter a valid URL.")
		}
		content.Video = video
	}
	if in.PhotoID != nil {
		if *in.PhotoID == 0 {
			content.PhotoID = nil
		} else if _, err := s.photos.Get(ctx, *in.PhotoID); err != nil {
			verr.Add("photo", "Invalid pk - object does not exist.")
		} else {
			id := *in.PhotoID
			content.PhotoID = &id
		}
		content.Photo = nil
	}
}

// backfillSummary fills an empty post summary from the first sentences of a
// Main Text block.
func (s *ContentService) backfillSummary(ctx context.Context, post *models.Post, content *models.Content) error {
	if content.ContentType != models.ContentMainText || strings.TrimSpace(post.ShortDescription) != "" {
		return nil
	}
	summary := utils.TruncateSentences(utils.PlainText(content.Text), summarySentences)
	if summary == "" {
		return nil
	}
	if err := s.posts.SetShortDescriptionIfEmpty(ctx, post.ID, summary); err != nil {
		return fmt.Errorf("backfill short description: %w", err)
	}
	post.ShortDescription = summary
	return nil
}
