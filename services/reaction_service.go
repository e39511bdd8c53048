package services

import (
	"context"
	"fmt"

	"newsroom-api/models"
)

// ReactionService toggles likes and dislikes on posts and comments.
type ReactionService struct {
	reactions ReactionRepository
	posts     PostRepository
	comments  CommentRepository
}

func NewReactionService(reactions ReactionRepository, posts PostRepository, comments CommentRepository) *ReactionService {
	return &ReactionService{reactions: reactions, posts: posts, comments: comments}
}

// Toggle puts the actor in the requested set and out of the opposite one,
// then returns fresh counts. Re-sending the same direction is a no-op.
func (s *ReactionService) Toggle(ctx context.Context, actor models.Actor, subject models.Subject, direction models.Direction) (*models.ReactionCounts, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !direction.Valid() {
		return nil, NewValidationError("direction", fmt.Sprintf("%q is not a valid choice.", direction))
	}
	if err := s.ensureSubject(ctx, subject, true); err != nil {
		return nil, err
	}

	if err := s.reactions.Toggle(ctx, subject, actor.ID, direction); err != nil {
		return nil, err
	}

	tally, err := s.reactions.Tally(ctx, subject.Type, []uint{subject.ID}, actor.ID)
	if err != nil {
		return nil, err
	}
	counts := tally[subject.ID]
	return &counts, nil
}

// Counts returns the reaction counts of a subject as seen by actor.
func (s *ReactionService) Counts(ctx context.Context, actor models.Actor, subject models.Subject) (*models.ReactionCounts, error) {
	if err := s.ensureSubject(ctx, subject, true); err != nil {
		return nil, err
	}
	tally, err := s.reactions.Tally(ctx, subject.Type, []uint{subject.ID}, actor.ID)
	if err != nil {
		return nil, err
	}
	counts := tally[subject.ID]
	return &counts, nil
}

// Members lists who liked and disliked a subject. Staff only.
func (s *ReactionService) Members(ctx context.Context, actor models.Actor, subject models.Subject) (*models.ReactionMembers, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	if err := s.ensureSubject(ctx, subject, false); err != nil {
		return nil, err
	}
	return s.reactions.Members(ctx, subject)
}

func (s *ReactionService) ensureSubject(ctx context.Context, subject models.Subject, public bool) error {
	switch subject.Type {
	case models.SubjectPost:
		post, err := s.posts.GetByID(ctx, subject.ID)
		if err != nil {
			return err
		}
		if public && !post.PubliclyVisible() {
			return notFound("post")
		}
		return nil
	case models.SubjectComment:
		comment, err := s.comments.GetByID(ctx, subject.ID)
		if err != nil || !public {
			return err
		}
		post, err := threadPost(ctx, s.comments, s.posts, comment)
		if err != nil {
			return err
		}
		if !post.PubliclyVisible() {
			return notFound("comment")
		}
		return nil
	default:
		return NewValidationError("subject", fmt.Sprintf("%q is not a valid subject type.", subject.Type))
	}
}
