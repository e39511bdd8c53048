package memory

import (
	"context"
	"sort"

	"newsroom-api/models"
	"newsroom-api/services"
)

type ContentRepository struct {
	db *DB
}

func (db *DB) Contents() *ContentRepository {
	return &ContentRepository{db: db}
}

func (db *DB) hydrateContent(c *models.Content) {
	c.Photo = nil
	if c.PhotoID != nil {
		if p, ok := db.photos.rows[*c.PhotoID]; ok {
			c.Photo = &p
		}
	}
}

func (db *DB) contentsOf(postID uint) []models.Content {
	contents := []models.Content{}
	for _, c := range db.contents {
		if c.PostID == postID {
			db.hydrateContent(&c)
			contents = append(contents, c)
		}
	}
	sort.Slice(contents, func(i, j int) bool {
		if contents[i].Ordering != contents[j].Ordering {
			return contents[i].Ordering < contents[j].Ordering
		}
		return contents[i].ID < contents[j].ID
	})
	return contents
}

func (r *ContentRepository) Create(_ context.Context, content *models.Content) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := r.db.now()
	content.ID = r.db.next("contents")
	content.CreatedAt = now
	content.UpdatedAt = now
	stored := *content
	stored.Photo = nil
	r.db.contents[content.ID] = stored
	return nil
}

func (r *ContentRepository) GetByID(_ context.Context, id uint) (*models.Content, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.contents[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	r.db.hydrateContent(&c)
	return &c, nil
}

func (r *ContentRepository) Update(_ context.Context, content *models.Content) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.contents[content.ID]; !ok {
		return services.ErrNotFound
	}
	content.UpdatedAt = r.db.now()
	stored := *content
	stored.Photo = nil
	r.db.contents[content.ID] = stored
	return nil
}

func (r *ContentRepository) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.contents[id]; !ok {
		return services.ErrNotFound
	}
	delete(r.db.contents, id)
	return nil
}

func (r *ContentRepository) ListByPost(_ context.Context, postID uint) ([]models.Content, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.contentsOf(postID), nil
}
