package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"newsroom-api/models"
	"newsroom-api/services"
)

type PostRepository struct {
	db *DB
}

func (db *DB) Posts() *PostRepository {
	return &PostRepository{db: db}
}

func stripPost(p models.Post) models.Post {
	p.Author = models.User{}
	p.Keyword = nil
	p.Categories = nil
	p.Contents = nil
	return p
}

func (db *DB) slugTaken(slug string, excludeID uint) bool {
	for id, p := range db.posts {
		if id != excludeID && p.Slug == slug {
			return true
		}
	}
	return false
}

func (db *DB) linkCategories(postID uint, ids []uint) {
	linked := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := db.categories.rows[id]; !ok {
			db.categories.rows[id] = models.Category{ID: id}
			if db.ids["categories"] < id {
				db.ids["categories"] = id
			}
		}
		if !contains(linked, id) {
			linked = append(linked, id)
		}
	}
	db.postCats[postID] = linked
}

func (db *DB) hydratePost(p *models.Post, withContents bool) {
	p.Author = db.users[p.AuthorID]
	p.Keyword = nil
	if p.KeywordID != nil {
		if k, ok := db.keywords.rows[*p.KeywordID]; ok {
			p.Keyword = &k
		}
	}

	catIDs := append([]uint(nil), db.postCats[p.ID]...)
	sort.Slice(catIDs, func(i, j int) bool { return catIDs[i] < catIDs[j] })
	p.Categories = make([]models.Category, 0, len(catIDs))
	for _, id := range catIDs {
		if c, ok := db.categories.rows[id]; ok {
			p.Categories = append(p.Categories, c)
		}
	}

	p.Contents = nil
	if withContents {
		p.Contents = db.contentsOf(p.ID)
	}
}

func (r *PostRepository) Create(_ context.Context, post *models.Post, categoryIDs []uint) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.slugTaken(post.Slug, 0) {
		return services.ErrDuplicateSlug
	}
	now := db.now()
	post.ID = db.next("posts")
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Views == 0 {
		post.Views = 1
	}
	db.posts[post.ID] = stripPost(*post)
	db.linkCategories(post.ID, categoryIDs)
	db.createReactionSets(models.SubjectPost, post.ID)
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id uint) (*models.Post, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.posts[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	db.hydratePost(&p, true)
	return &p, nil
}

func (r *PostRepository) Update(_ context.Context, post *models.Post, categoryIDs []uint) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	stored, ok := db.posts[post.ID]
	if !ok {
		return services.ErrNotFound
	}
	if db.slugTaken(post.Slug, post.ID) {
		return services.ErrDuplicateSlug
	}
	updated := stripPost(*post)
	updated.Views = stored.Views
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = db.now()
	db.posts[post.ID] = updated
	if categoryIDs != nil {
		db.linkCategories(post.ID, categoryIDs)
	}
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id uint) error {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.posts[id]; !ok {
		return services.ErrNotFound
	}

	var doomed []uint
	for cid, c := range db.comments {
		if c.PostID != nil && *c.PostID == id {
			doomed = append(doomed, cid)
		}
	}
	doomed = db.withReplies(doomed)
	db.deleteReactionSets(models.SubjectComment, doomed...)
	for _, cid := range doomed {
		delete(db.comments, cid)
	}

	db.deleteReactionSets(models.SubjectPost, id)
	for cid, c := range db.contents {
		if c.PostID == id {
			delete(db.contents, cid)
		}
	}
	for user, posts := range db.saved {
		db.saved[user] = without(posts, id)
	}
	for story, posts := range db.storyPosts {
		db.storyPosts[story] = without(posts, id)
	}
	for fid, f := range db.feedback.rows {
		if f.PostID == id {
			delete(db.feedback.rows, fid)
		}
	}
	delete(db.postCats, id)
	delete(db.posts, id)
	return nil
}

func (r *PostRepository) SlugExists(_ context.Context, slug string, excludeID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.slugTaken(slug, excludeID), nil
}

func (db *DB) matchPost(p models.Post, f models.PostFilter) bool {
	if f.PublicOnly && !p.PubliclyVisible() {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Approved != nil && p.IsApproved != *f.Approved {
		return false
	}
	if f.CategoryID != 0 && !contains(db.postCats[p.ID], f.CategoryID) {
		return false
	}
	if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
		return false
	}
	if f.KeywordID != 0 && (p.KeywordID == nil || *p.KeywordID != f.KeywordID) {
		return false
	}
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" &&
		!strings.Contains(strings.ToLower(p.Title), search) &&
		!strings.Contains(strings.ToLower(p.ShortDescription), search) {
		return false
	}
	if f.EditorsChoice != nil && p.IsEditorsChoice != *f.EditorsChoice {
		return false
	}
	if f.HomePage != nil && p.ShowInHomePage != *f.HomePage {
		return false
	}
	if f.Multimedia != nil && p.IsMultimedia != *f.Multimedia {
		return false
	}
	if f.TopNews != nil && (p.TopNews == nil || *p.TopNews != *f.TopNews) {
		return false
	}
	if len(f.IDs) > 0 && !contains(f.IDs, p.ID) {
		return false
	}
	return true
}

func newestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].PublishDate.Equal(posts[j].PublishDate) {
			return posts[i].PublishDate.After(posts[j].PublishDate)
		}
		return posts[i].ID > posts[j].ID
	})
}

func (r *PostRepository) List(_ context.Context, filter models.PostFilter) ([]models.Post, int64, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	var matched []models.Post
	for _, p := range db.posts {
		if db.matchPost(p, filter) {
			db.hydratePost(&p, false)
			matched = append(matched, p)
		}
	}
	newestFirst(matched)
	return paginate(matched, filter.Page), int64(len(matched)), nil
}

func (r *PostRepository) Related(_ context.Context, post *models.Post, limit int) ([]models.Post, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	related := []models.Post{}
	cats := post.CategoryIDs()
	for _, p := range db.posts {
		if p.ID == post.ID || !p.PubliclyVisible() {
			continue
		}
		for _, c := range cats {
			if contains(db.postCats[p.ID], c) {
				db.hydratePost(&p, false)
				related = append(related, p)
				break
			}
		}
	}
	newestFirst(related)
	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

func (r *PostRepository) IncrementViews(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok {
		return nil
	}
	p.Views++
	r.db.posts[id] = p
	return nil
}

func (r *PostRepository) SetShortDescriptionIfEmpty(_ context.Context, id uint, text string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if ok && p.ShortDescription == "" {
		p.ShortDescription = text
		r.db.posts[id] = p
	}
	return nil
}

func (r *PostRepository) CloseExpired(_ context.Context, now time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, p := range r.db.posts {
		if p.Status != models.StatusClosed && p.EndDate != nil && !p.EndDate.After(now) {
			p.Status = models.StatusClosed
			stamp := now
			p.DeletedAt = &stamp
			r.db.posts[id] = p
			n++
		}
	}
	return n, nil
}

func (r *PostRepository) SetSaved(_ context.Context, userID, postID uint, saved bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current := r.db.saved[userID]
	if !saved {
		r.db.saved[userID] = without(current, postID)
		return nil
	}
	if !contains(current, postID) {
		r.db.saved[userID] = append(current, postID)
	}
	return nil
}

func (r *PostRepository) IsSaved(_ context.Context, userID, postID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return contains(r.db.saved[userID], postID), nil
}

func (r *PostRepository) ListSaved(_ context.Context, userID uint, page models.Page) ([]models.Post, int64, error) {
	db := r.db
	db.mu.Lock()
	defer db.mu.Unlock()

	ids := db.saved[userID]
	var posts []models.Post
	for i := len(ids) - 1; i >= 0; i-- {
		p, ok := db.posts[ids[i]]
		if !ok || !p.PubliclyVisible() {
			continue
		}
		db.hydratePost(&p, false)
		posts = append(posts, p)
	}
	return paginate(posts, page), int64(len(posts)), nil
}
