package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom-api/models"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Create(ctx context.Context, content *models.Content) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(content).Error)
}

func (r *ContentRepository) GetByID(ctx context.Context, id uint) (*models.Content, error) {
	var content models.Content
	if err := r.db.WithContext(ctx).Preload("Photo").First(&content, id).Error; err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

func (r *ContentRepository) Update(ctx context.Context, content *models.Content) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(content).Error)
}

func (r *ContentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Content{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *ContentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Content, error) {
	contents := []models.Content{}
	err := r.db.WithContext(ctx).Preload("Photo").
		Where("post_id = ?", postID).
		Order("ordering ASC, id ASC").
		Find(&contents).Error
	return contents, err
}
