package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom-api/models"
)

// postCategory is the many2many join row between posts and categories.
type postCategory struct {
	PostID     uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey"`
}

func (postCategory) TableName() string { return "post_categories" }

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	return translateSlug(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		if err := replaceCategories(tx, post.ID, categoryIDs); err != nil {
			return err
		}
		return createReactionSets(tx, models.SubjectPost, post.ID)
	}))
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Keyword").
		Preload("Categories").
		Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC, id ASC")
		}).
		Preload("Contents.Photo").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	return translateSlug(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(post).
			Select("*").
			Omit("id", "views", "created_at", clause.Associations).
			Updates(post).Error
		if err != nil {
			return err
		}
		if categoryIDs == nil {
			return nil
		}
		return replaceCategories(tx, post.ID, categoryIDs)
	}))
}

// replaceCategories makes the post's category set exactly ids. Unknown ids get
// a bare category row so links never dangle.
func replaceCategories(tx *gorm.DB, postID uint, ids []uint) error {
	if err := tx.Where("post_id = ?", postID).Delete(&postCategory{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	categories := make([]models.Category, 0, len(ids))
	links := make([]postCategory, 0, len(ids))
	for _, id := range ids {
		categories = append(categories, models.Category{ID: id})
		links = append(links, postCategory{PostID: postID, CategoryID: id})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
		return err
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			ids, err := withReplies(tx, commentIDs)
			if err != nil {
				return err
			}
			if err := deleteReactionSets(tx, models.SubjectComment, ids); err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		if err := deleteReactionSets(tx, models.SubjectPost, []uint{id}); err != nil {
			return err
		}
		for _, dependent := range []interface{}{
			&models.Content{}, &models.SavedPost{}, &models.StoryContent{}, &models.Feedback{}, &postCategory{},
		} {
			if err := tx.Where("post_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func (r *PostRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostRepository) filtered(ctx context.Context, filter models.PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.PublicOnly {
		q = q.Where("posts.is_approved = ? AND posts.status = ?", true, models.StatusOpen)
	}
	if filter.Status != "" {
		q = q.Where("posts.status = ?", filter.Status)
	}
	if filter.Approved != nil {
		q = q.Where("posts.is_approved = ?", *filter.Approved)
	}
	if filter.CategoryID != 0 {
		linked := r.db.Model(&postCategory{}).Select("post_id").Where("category_id = ?", filter.CategoryID)
		q = q.Where("posts.id IN (?)", linked)
	}
	if filter.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.KeywordID != 0 {
		q = q.Where("posts.keyword_id = ?", filter.KeywordID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("(LOWER(posts.title) LIKE ? OR LOWER(posts.short_description) LIKE ?)", like, like)
	}
	if filter.EditorsChoice != nil {
		q = q.Where("posts.is_editors_choice = ?", *filter.EditorsChoice)
	}
	if filter.HomePage != nil {
		q = q.Where("posts.show_in_home_page = ?", *filter.HomePage)
	}
	if filter.Multimedia != nil {
		q = q.Where("posts.is_multimedia = ?", *filter.Multimedia)
	}
	if filter.TopNews != nil {
		q = q.Where("posts.top_news = ?", *filter.TopNews)
	}
	if len(filter.IDs) > 0 {
		q = q.Where("posts.id IN ?", filter.IDs)
	}
	return q
}

func (r *PostRepository) List(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]models.Post, 0, filter.Limit)
	err := r.filtered(ctx, filter).
		Preload("Author").
		Preload("Keyword").
		Preload("Categories").
		Order("posts.publish_date DESC, posts.id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Related returns public posts sharing a category with post, newest first.
func (r *PostRepository) Related(ctx context.Context, post *models.Post, limit int) ([]models.Post, error) {
	related := []models.Post{}
	categoryIDs := post.CategoryIDs()
	if len(categoryIDs) == 0 {
		return related, nil
	}
	linked := r.db.Model(&postCategory{}).Select("post_id").Where("category_id IN ?", categoryIDs)
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Keyword").
		Where("is_approved = ? AND status = ?", true, models.StatusOpen).
		Where("id <> ? AND id IN (?)", post.ID, linked).
		Order("publish_date DESC, id DESC").
		Limit(limit).
		Find(&related).Error
	if err != nil {
		return nil, err
	}
	return related, nil
}

// IncrementViews bumps the counter in SQL so concurrent readers never lose a view.
func (r *PostRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *PostRepository) SetShortDescriptionIfEmpty(ctx context.Context, id uint, text string) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND (short_description IS NULL OR short_description = '')", id).
		UpdateColumn("short_description", text).Error
}

// CloseExpired closes every post whose end date has passed.
func (r *PostRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("status <> ? AND end_date IS NOT NULL AND end_date <= ?", models.StatusClosed, now).
		Updates(map[string]interface{}{
			"status":     models.StatusClosed,
			"deleted_at": now,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *PostRepository) SetSaved(ctx context.Context, userID, postID uint, saved bool) error {
	db := r.db.WithContext(ctx)
	if saved {
		return db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SavedPost{UserID: userID, PostID: postID}).Error
	}
	return db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{}).Error
}

func (r *PostRepository) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// ListSaved returns the reader's bookmarked posts that are still public, most
// recently saved first.
func (r *PostRepository) ListSaved(ctx context.Context, userID uint, page models.Page) ([]models.Post, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Post{}).
			Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
			Where("saved_posts.user_id = ?", userID).
			Where("posts.is_approved = ? AND posts.status = ?", true, models.StatusOpen)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	posts := make([]models.Post, 0, page.Limit)
	err := base().
		Preload("Author").
		Preload("Keyword").
		Preload("Categories").
		Order("saved_posts.created_at DESC, posts.id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
