package memory

import (
	"context"
	"sort"
	"time"

	"newsroom-api/models"
	"newsroom-api/services"
)

type StoryRepository struct {
	db *DB
}

func (db *DB) Stories() *StoryRepository {
	return &StoryRepository{db: db}
}

func (db *DB) storySlugTaken(slug string, excludeID uint) bool {
	for id, s := range db.stories {
		if id != excludeID && s.Slug == slug {
			return true
		}
	}
	return false
}

func (r *StoryRepository) Create(_ context.Context, story *models.Story) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.storySlugTaken(story.Slug, 0) {
		return services.ErrDuplicateSlug
	}
	now := r.db.now()
	story.ID = r.db.next("stories")
	story.CreatedAt = now
	story.UpdatedAt = now
	r.db.stories[story.ID] = *story
	return nil
}

func (r *StoryRepository) GetByID(_ context.Context, id uint) (*models.Story, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stories[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &s, nil
}

func (r *StoryRepository) Update(_ context.Context, story *models.Story) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.stories[story.ID]
	if !ok {
		return services.ErrNotFound
	}
	if r.db.storySlugTaken(story.Slug, story.ID) {
		return services.ErrDuplicateSlug
	}
	updated := *story
	updated.Views = stored.Views
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = r.db.now()
	r.db.stories[story.ID] = updated
	return nil
}

func (r *StoryRepository) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stories[id]; !ok {
		return services.ErrNotFound
	}
	delete(r.db.storyPosts, id)
	delete(r.db.stories, id)
	return nil
}

func (r *StoryRepository) SlugExists(_ context.Context, slug string, excludeID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.storySlugTaken(slug, excludeID), nil
}

func (r *StoryRepository) List(_ context.Context, filter models.StoryFilter) ([]models.Story, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Story
	for _, s := range r.db.stories {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.HomePage != nil && s.ShowInHomePage != *filter.HomePage {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ordering != out[j].Ordering {
			return out[i].Ordering < out[j].Ordering
		}
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID > out[j].ID
	})
	return paginate(out, filter.Page), int64(len(out)), nil
}

func (r *StoryRepository) IncrementViews(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if s, ok := r.db.stories[id]; ok {
		s.Views++
		r.db.stories[id] = s
	}
	return nil
}

func (r *StoryRepository) AddPost(_ context.Context, storyID, postID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if !contains(r.db.storyPosts[storyID], postID) {
		r.db.storyPosts[storyID] = append(r.db.storyPosts[storyID], postID)
	}
	return nil
}

func (r *StoryRepository) RemovePost(_ context.Context, storyID, postID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if !contains(r.db.storyPosts[storyID], postID) {
		return services.ErrNotFound
	}
	r.db.storyPosts[storyID] = without(r.db.storyPosts[storyID], postID)
	return nil
}

func (r *StoryRepository) Posts(_ context.Context, storyID uint, publicOnly bool) ([]models.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	posts := []models.Post{}
	for _, id := range r.db.storyPosts[storyID] {
		p, ok := r.db.posts[id]
		if !ok || (publicOnly && !p.PubliclyVisible()) {
			continue
		}
		r.db.hydratePost(&p, false)
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *StoryRepository) ArchiveExpired(_ context.Context, now time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, s := range r.db.stories {
		if s.Status != models.StoryArchived && s.EndDate != nil && !s.EndDate.After(now) {
			s.Status = models.StoryArchived
			r.db.stories[id] = s
			n++
		}
	}
	return n, nil
}
