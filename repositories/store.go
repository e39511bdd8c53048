package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom-api/models"
)

// StoreOption customises a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	order      string
	preloads   []string
	beforeDrop func(tx *gorm.DB, id uint) error
}

// WithOrder sets the ORDER BY used by List and All.
func WithOrder(order string) StoreOption {
	return func(c *storeConfig) { c.order = order }
}

// WithPreload eager loads the named associations on every read.
func WithPreload(associations ...string) StoreOption {
	return func(c *storeConfig) { c.preloads = append(c.preloads, associations...) }
}

// WithDeleteHook runs fn in the delete transaction before the row goes away,
// typically to detach rows that reference it.
func WithDeleteHook(fn func(tx *gorm.DB, id uint) error) StoreOption {
	return func(c *storeConfig) { c.beforeDrop = fn }
}

// Store is gorm backed CRUD for the small reference tables.
type Store[T any] struct {
	db  *gorm.DB
	cfg storeConfig
}

func NewStore[T any](db *gorm.DB, opts ...StoreOption) *Store[T] {
	cfg := storeConfig{order: "id ASC"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[T]{db: db, cfg: cfg}
}

func (s *Store[T]) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, p := range s.cfg.preloads {
		q = q.Preload(p)
	}
	return q
}

func (s *Store[T]) Create(ctx context.Context, item *T) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

func (s *Store[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := s.query(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *Store[T]) Save(ctx context.Context, item *T) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error)
}

func (s *Store[T]) Delete(ctx context.Context, id uint) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.cfg.beforeDrop != nil {
			if err := s.cfg.beforeDrop(tx, id); err != nil {
				return err
			}
		}
		result := tx.Delete(new(T), id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func (s *Store[T]) List(ctx context.Context, page models.Page) ([]T, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, page.Limit)
	err := s.query(ctx).Order(s.cfg.order).Offset(page.Offset()).Limit(page.Limit).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.query(ctx).Order(s.cfg.order).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DetachCategory drops the post links of a category and promotes its children.
func DetachCategory(tx *gorm.DB, id uint) error {
	if err := tx.Where("category_id = ?", id).Delete(&postCategory{}).Error; err != nil {
		return err
	}
	return tx.Model(&models.Category{}).Where("parent_id = ?", id).Update("parent_id", nil).Error
}

// DetachKeyword clears the keyword from every post that uses it.
func DetachKeyword(tx *gorm.DB, id uint) error {
	return tx.Model(&models.Post{}).Where("keyword_id = ?", id).Update("keyword_id", nil).Error
}

// DetachPhoto clears the photo from content blocks that show it and removes
// the gallery entries built on it.
func DetachPhoto(tx *gorm.DB, id uint) error {
	if err := tx.Model(&models.Content{}).Where("photo_id = ?", id).Update("photo_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("photo_id = ?", id).Delete(&models.Gallery{}).Error
}
