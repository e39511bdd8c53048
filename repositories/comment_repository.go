package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom-api/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}
		return createReactionSets(tx, models.SubjectComment, comment.ID)
	}))
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("CommentedBy").First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *CommentRepository) UpdateBody(ctx context.Context, id uint, body string) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("comment", body).Error
}

func (r *CommentRepository) SetApproved(ctx context.Context, id uint, approved bool) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("is_approved", approved).Error
}

// withReplies returns ids plus every comment that replies to them, at any depth.
func withReplies(tx *gorm.DB, ids []uint) ([]uint, error) {
	all := append([]uint(nil), ids...)
	frontier := ids
	for len(frontier) > 0 {
		var next []uint
		if err := tx.Model(&models.Comment{}).Where("replied_comment_id IN ?", frontier).Pluck("id", &next).Error; err != nil {
			return nil, err
		}
		all = append(all, next...)
		frontier = next
	}
	return all, nil
}

// Delete removes the comment, its replies at any depth and all of their reaction sets.
func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := withReplies(tx, []uint{id})
		if err != nil {
			return err
		}
		if err := deleteReactionSets(tx, models.SubjectComment, ids); err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&models.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func (r *CommentRepository) threadOf(db *gorm.DB, postID uint) *gorm.DB {
	direct := r.db.Model(&models.Comment{}).Select("id").Where("post_id = ?", postID)
	return db.Where("(post_id = ? OR replied_comment_id IN (?))", postID, direct)
}

func (r *CommentRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.threadOf(r.db.WithContext(ctx).Model(&models.Comment{}), postID).Count(&count).Error
	return count, err
}

func (r *CommentRepository) TopLevel(ctx context.Context, postID uint, approvedOnly bool) ([]models.Comment, error) {
	q := r.db.WithContext(ctx).Preload("CommentedBy").Where("post_id = ?", postID)
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	var comments []models.Comment
	if err := q.Order("post_date DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) Replies(ctx context.Context, parentIDs []uint, approvedOnly bool) ([]models.Comment, error) {
	replies := []models.Comment{}
	if len(parentIDs) == 0 {
		return replies, nil
	}
	q := r.db.WithContext(ctx).Preload("CommentedBy").Where("replied_comment_id IN ?", parentIDs)
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	if err := q.Order("post_date ASC, id ASC").Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *CommentRepository) List(ctx context.Context, filter models.CommentFilter) ([]models.Comment, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Comment{})
		if filter.PostID != 0 {
			q = r.threadOf(q, filter.PostID)
		}
		if filter.Approved != nil {
			q = q.Where("is_approved = ?", *filter.Approved)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	comments := make([]models.Comment, 0, filter.Limit)
	err := base().Preload("CommentedBy").
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
