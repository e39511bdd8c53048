package memory

import (
	"context"
	"sort"

	"newsroom-api/models"
	"newsroom-api/services"
)

type CommentRepository struct {
	db *DB
}

func (db *DB) Comments() *CommentRepository {
	return &CommentRepository{db: db}
}

func (db *DB) hydrateComment(c *models.Comment) {
	c.CommentedBy = db.users[c.CommentedByID]
}

func (db *DB) inThread(c models.Comment, postID uint) bool {
	if c.PostID != nil {
		return *c.PostID == postID
	}
	if c.RepliedCommentID == nil {
		return false
	}
	parent, ok := db.comments[*c.RepliedCommentID]
	return ok && parent.PostID != nil && *parent.PostID == postID
}

// withReplies returns ids plus every comment replying to them, at any depth.
func (db *DB) withReplies(ids []uint) []uint {
	all := append([]uint(nil), ids...)
	for i := 0; i < len(all); i++ {
		for cid, c := range db.comments {
			if c.RepliedCommentID != nil && *c.RepliedCommentID == all[i] && !contains(all, cid) {
				all = append(all, cid)
			}
		}
	}
	return all
}

func (r *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := r.db.now()
	comment.ID = r.db.next("comments")
	comment.CreatedAt = now
	comment.UpdatedAt = now
	stored := *comment
	stored.CommentedBy = models.User{}
	r.db.comments[comment.ID] = stored
	r.db.createReactionSets(models.SubjectComment, comment.ID)
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	r.db.hydrateComment(&c)
	return &c, nil
}

func (r *CommentRepository) UpdateBody(_ context.Context, id uint, body string) error {
	return r.modify(id, func(c *models.Comment) { c.Body = body })
}

func (r *CommentRepository) SetApproved(_ context.Context, id uint, approved bool) error {
	return r.modify(id, func(c *models.Comment) { c.IsApproved = approved })
}

func (r *CommentRepository) modify(id uint, fn func(*models.Comment)) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return services.ErrNotFound
	}
	fn(&c)
	c.UpdatedAt = r.db.now()
	r.db.comments[id] = c
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[id]; !ok {
		return services.ErrNotFound
	}
	doomed := r.db.withReplies([]uint{id})
	r.db.deleteReactionSets(models.SubjectComment, doomed...)
	for _, cid := range doomed {
		delete(r.db.comments, cid)
	}
	return nil
}

func (r *CommentRepository) CountForPost(_ context.Context, postID uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, c := range r.db.comments {
		if r.db.inThread(c, postID) {
			n++
		}
	}
	return n, nil
}

func (r *CommentRepository) TopLevel(_ context.Context, postID uint, approvedOnly bool) ([]models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Comment
	for _, c := range r.db.comments {
		if c.PostID == nil || *c.PostID != postID || (approvedOnly && !c.IsApproved) {
			continue
		}
		r.db.hydrateComment(&c)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PostDate.Equal(out[j].PostDate) {
			return out[i].PostDate.After(out[j].PostDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *CommentRepository) Replies(_ context.Context, parentIDs []uint, approvedOnly bool) ([]models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Comment{}
	for _, c := range r.db.comments {
		if c.RepliedCommentID == nil || !contains(parentIDs, *c.RepliedCommentID) || (approvedOnly && !c.IsApproved) {
			continue
		}
		r.db.hydrateComment(&c)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PostDate.Equal(out[j].PostDate) {
			return out[i].PostDate.Before(out[j].PostDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CommentRepository) List(_ context.Context, filter models.CommentFilter) ([]models.Comment, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Comment
	for _, c := range r.db.comments {
		if filter.PostID != 0 && !r.db.inThread(c, filter.PostID) {
			continue
		}
		if filter.Approved != nil && c.IsApproved != *filter.Approved {
			continue
		}
		r.db.hydrateComment(&c)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, filter.Page), int64(len(out)), nil
}
