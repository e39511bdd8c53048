package services

import (
	"context"
	"log/slog"
	"time"

	"newsroom-api/models"
	"newsroom-api/utils"
)

// CommentService manages the one level comment tree under posts.
type CommentService struct {
	comments  CommentRepository
	posts     PostRepository
	reactions ReactionRepository
	log       *slog.Logger
	now       func() time.Time
}

func NewCommentService(comments CommentRepository, posts PostRepository, reactions ReactionRepository) *CommentService {
	return &CommentService{
		comments:  comments,
		posts:     posts,
		reactions: reactions,
		log:       slog.Default().With("service", "comments"),
		now:       time.Now,
	}
}

// Create adds a comment to a public post or a reply to an existing comment.
// New comments wait for approval.
func (s *CommentService) Create(ctx context.Context, actor models.Actor, in models.CommentInput) (*models.Comment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	body := utils.SanitizeComment(in.Body)
	if body == "" {
		verr.Add("comment", "This field may not be blank.")
	}
	switch {
	case in.PostID != nil && in.RepliedCommentID != nil:
		verr.Add("replied_comment", "A comment can target a post or another comment, not both.")
	case in.PostID == nil && in.RepliedCommentID == nil:
		verr.Add("post", "Either post or replied_comment is required.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if in.PostID != nil {
		post, err := s.posts.GetByID(ctx, *in.PostID)
		if err != nil {
			return nil, err
		}
		if !post.PubliclyVisible() {
			return nil, notFound("post")
		}
	} else {
		parent, err := s.comments.GetByID(ctx, *in.RepliedCommentID)
		if err != nil {
			return nil, err
		}
		post, err := threadPost(ctx, s.comments, s.posts, parent)
		if err != nil {
			return nil, err
		}
		if !post.PubliclyVisible() {
			return nil, notFound("post")
		}
	}

	comment := &models.Comment{
		PostID:           in.PostID,
		RepliedCommentID: in.RepliedCommentID,
		CommentedByID:    actor.ID,
		Body:             body,
		PostDate:         s.now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.log.Info("comment created", "comment_id", comment.ID, "user_id", actor.ID)
	return s.comments.GetByID(ctx, comment.ID)
}

// Update changes the text of a comment. Only its author may do this.
func (s *CommentService) Update(ctx context.Context, actor models.Actor, id uint, body string) (*models.Comment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.CommentedByID != actor.ID {
		return nil, forbidden("only the author can edit a comment")
	}
	body = utils.SanitizeComment(body)
	if body == "" {
		return nil, NewValidationError("comment", "This field may not be blank.")
	}
	if err := s.comments.UpdateBody(ctx, id, body); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, id)
}

// Delete removes a comment with its replies. Allowed for the author and admins.
func (s *CommentService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.CommentedByID != actor.ID && !Can(actor.Role, ActionCommentDeleteAny) {
		return forbidden("only the author or an admin can delete a comment")
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("comment deleted", "comment_id", id, "deleted_by", actor.ID)
	return nil
}

func (s *CommentService) Approve(ctx context.Context, actor models.Actor, id uint, approved bool) (*models.Comment, error) {
	if err := Authorize(actor, ActionCommentApprove); err != nil {
		return nil, err
	}
	if _, err := s.comments.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.comments.SetApproved(ctx, id, approved); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, id)
}

// Count is the number of direct comments on a post plus their direct replies,
// approved or not.
func (s *CommentService) Count(ctx context.Context, postID uint) (int64, error) {
	return s.comments.CountForPost(ctx, postID)
}

// Thread returns the approved comments of a public post with their approved replies.
func (s *CommentService) Thread(ctx context.Context, actor models.Actor, postID uint) ([]models.CommentNode, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.PubliclyVisible() {
		return nil, notFound("post")
	}
	return buildThread(ctx, s.comments, s.reactions, actor, postID)
}

func (s *CommentService) Get(ctx context.Context, actor models.Actor, id uint) (*models.Comment, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, id)
}

// List is the staff view over all comments regardless of approval.
func (s *CommentService) List(ctx context.Context, actor models.Actor, filter models.CommentFilter) ([]models.Comment, int64, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, 0, err
	}
	filter.Page = filter.Page.Normalize(models.DefaultPageSize)
	return s.comments.List(ctx, filter)
}

// maxReplyDepth bounds the walk from a reply up to its post.
const maxReplyDepth = 32

// threadPost returns the post a comment belongs to, following reply links up
// to the top-level comment.
func threadPost(ctx context.Context, comments CommentRepository, posts PostRepository, c *models.Comment) (*models.Post, error) {
	for depth := 0; c.PostID == nil; depth++ {
		if c.RepliedCommentID == nil || depth == maxReplyDepth {
			return nil, notFound("post")
		}
		parent, err := comments.GetByID(ctx, *c.RepliedCommentID)
		if err != nil {
			return nil, err
		}
		c = parent
	}
	return posts.GetByID(ctx, *c.PostID)
}

func buildThread(ctx context.Context, comments CommentRepository, reactions ReactionRepository, actor models.Actor, postID uint) ([]models.CommentNode, error) {
	top, err := comments.TopLevel(ctx, postID, true)
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return []models.CommentNode{}, nil
	}

	ids := make([]uint, 0, len(top))
	for _, c := range top {
		ids = append(ids, c.ID)
	}
	replies, err := comments.Replies(ctx, ids, true)
	if err != nil {
		return nil, err
	}
	for _, r := range replies {
		ids = append(ids, r.ID)
	}

	tally, err := reactions.Tally(ctx, models.SubjectComment, ids, actor.ID)
	if err != nil {
		return nil, err
	}

	children := make(map[uint][]models.CommentNode, len(top))
	for _, r := range replies {
		parent := *r.RepliedCommentID
		children[parent] = append(children[parent], models.CommentNode{Comment: r, ReactionCounts: tally[r.ID]})
	}

	nodes := make([]models.CommentNode, 0, len(top))
	for _, c := range top {
		nodes = append(nodes, models.CommentNode{
			Comment:        c,
			ReactionCounts: tally[c.ID],
			Replies:        children[c.ID],
		})
	}
	return nodes, nil
}
