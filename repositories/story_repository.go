package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom-api/models"
)

type StoryRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

func (r *StoryRepository) Create(ctx context.Context, story *models.Story) error {
	return translateSlug(r.db.WithContext(ctx).Create(story).Error)
}

func (r *StoryRepository) GetByID(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, translate(err)
	}
	return &story, nil
}

func (r *StoryRepository) Update(ctx context.Context, story *models.Story) error {
	err := r.db.WithContext(ctx).Model(story).
		Select("*").
		Omit("id", "views", "created_at").
		Updates(story).Error
	return translateSlug(err)
}

func (r *StoryRepository) Delete(ctx context.Context, id uint) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("story_id = ?", id).Delete(&models.StoryContent{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Story{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func (r *StoryRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Story{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *StoryRepository) List(ctx context.Context, filter models.StoryFilter) ([]models.Story, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Story{})
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.HomePage != nil {
			q = q.Where("show_in_home_page = ?", *filter.HomePage)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	stories := make([]models.Story, 0, filter.Limit)
	err := base().
		Order("ordering ASC, start_date DESC, id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&stories).Error
	if err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

func (r *StoryRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Story{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *StoryRepository) AddPost(ctx context.Context, storyID, postID uint) error {
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.StoryContent{StoryID: storyID, PostID: postID}).Error)
}

func (r *StoryRepository) RemovePost(ctx context.Context, storyID, postID uint) error {
	result := r.db.WithContext(ctx).
		Where("story_id = ? AND post_id = ?", storyID, postID).
		Delete(&models.StoryContent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

// Posts returns the posts linked to a story in the order they were added.
func (r *StoryRepository) Posts(ctx context.Context, storyID uint, publicOnly bool) ([]models.Post, error) {
	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Keyword").
		Preload("Categories").
		Joins("JOIN story_contents ON story_contents.post_id = posts.id").
		Where("story_contents.story_id = ?", storyID)
	if publicOnly {
		q = q.Where("posts.is_approved = ? AND posts.status = ?", true, models.StatusOpen)
	}
	posts := []models.Post{}
	if err := q.Order("story_contents.id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ArchiveExpired archives stories whose end date has passed.
func (r *StoryRepository) ArchiveExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Story{}).
		Where("status <> ? AND end_date IS NOT NULL AND end_date <= ?", models.StoryArchived, now).
		Updates(map[string]interface{}{
			"status":     models.StoryArchived,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
