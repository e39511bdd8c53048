package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"newsroom-api/models"
)

// FeedbackService stores staff notes on posts. Only the author of a note may
// change or remove it.
type FeedbackService struct {
	feedback Store[models.Feedback]
	posts    PostRepository
	now      func() time.Time
}

func NewFeedbackService(feedback Store[models.Feedback], posts PostRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, posts: posts, now: time.Now}
}

func (s *FeedbackService) Create(ctx context.Context, actor models.Actor, in models.FeedbackInput) (*models.Feedback, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, NewValidationError("text", "This field may not be blank.")
	}
	if _, err := s.posts.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewValidationError("post", "Invalid pk - object does not exist.")
		}
		return nil, err
	}

	fb := &models.Feedback{
		PostID:   in.PostID,
		OwnerID:  actor.ID,
		Text:     text,
		PostDate: s.now(),
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, err
	}
	return s.feedback.Get(ctx, fb.ID)
}

func (s *FeedbackService) Update(ctx context.Context, actor models.Actor, id uint, in models.FeedbackInput) (*models.Feedback, error) {
	fb, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, NewValidationError("text", "This field may not be blank.")
	}
	if in.PostID != 0 && in.PostID != fb.PostID {
		return nil, NewValidationError("post", "Feedback cannot be moved to another post.")
	}
	fb.Text = text
	fb.Owner = nil
	if err := s.feedback.Save(ctx, fb); err != nil {
		return nil, err
	}
	return s.feedback.Get(ctx, id)
}

func (s *FeedbackService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.feedback.Delete(ctx, id)
}

func (s *FeedbackService) Get(ctx context.Context, actor models.Actor, id uint) (*models.Feedback, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.feedback.Get(ctx, id)
}

func (s *FeedbackService) List(ctx context.Context, actor models.Actor, page models.Page) ([]models.Feedback, int64, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, 0, err
	}
	return s.feedback.List(ctx, page.Normalize(models.DefaultPageSize))
}

func (s *FeedbackService) owned(ctx context.Context, actor models.Actor, id uint) (*models.Feedback, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	fb, err := s.feedback.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if fb.OwnerID != actor.ID {
		return nil, forbidden("only the author of the feedback can change it")
	}
	return fb, nil
}
