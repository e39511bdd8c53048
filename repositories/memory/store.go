package memory

import (
	"context"

	"newsroom-api/models"
	"newsroom-api/services"
)

type table[T any] struct {
	rows map[uint]T
	id   func(*T) *uint
}

func newTable[T any](id func(*T) *uint) *table[T] {
	return &table[T]{rows: make(map[uint]T), id: id}
}

// Store is the in-memory services.Store.
type Store[T any] struct {
	db       *DB
	kind     string
	t        *table[T]
	hydrate  func(*T)
	onDelete func(id uint)
}

func (s *Store[T]) Create(_ context.Context, item *T) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	id := s.db.next(s.kind)
	*s.t.id(item) = id
	s.t.rows[id] = *item
	return nil
}

func (s *Store[T]) Get(_ context.Context, id uint) (*T, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	item, ok := s.t.rows[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	if s.hydrate != nil {
		s.hydrate(&item)
	}
	return &item, nil
}

func (s *Store[T]) Save(_ context.Context, item *T) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	id := *s.t.id(item)
	if _, ok := s.t.rows[id]; !ok {
		return services.ErrNotFound
	}
	s.t.rows[id] = *item
	return nil
}

func (s *Store[T]) Delete(_ context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.t.rows[id]; !ok {
		return services.ErrNotFound
	}
	if s.onDelete != nil {
		s.onDelete(id)
	}
	delete(s.t.rows, id)
	return nil
}

func (s *Store[T]) List(_ context.Context, page models.Page) ([]T, int64, error) {
	all := s.all()
	return paginate(all, page), int64(len(all)), nil
}

func (s *Store[T]) All(_ context.Context) ([]T, error) {
	return s.all(), nil
}

func (s *Store[T]) all() []T {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	items := make([]T, 0, len(s.t.rows))
	for _, id := range sortedKeys(s.t.rows) {
		item := s.t.rows[id]
		if s.hydrate != nil {
			s.hydrate(&item)
		}
		items = append(items, item)
	}
	return items
}

func (db *DB) Categories() *Store[models.Category] {
	return &Store[models.Category]{
		db:   db,
		kind: "categories",
		t:    db.categories,
		onDelete: func(id uint) {
			for postID, cats := range db.postCats {
				db.postCats[postID] = without(cats, id)
			}
			for childID, c := range db.categories.rows {
				if c.ParentID != nil && *c.ParentID == id {
					c.ParentID = nil
					db.categories.rows[childID] = c
				}
			}
		},
	}
}

func (db *DB) Keywords() *Store[models.PostIdentifier] {
	return &Store[models.PostIdentifier]{
		db:   db,
		kind: "keywords",
		t:    db.keywords,
		onDelete: func(id uint) {
			for postID, p := range db.posts {
				if p.KeywordID != nil && *p.KeywordID == id {
					p.KeywordID = nil
					db.posts[postID] = p
				}
			}
		},
	}
}

func (db *DB) Photos() *Store[models.Photo] {
	return &Store[models.Photo]{
		db:   db,
		kind: "photos",
		t:    db.photos,
		onDelete: func(id uint) {
			for contentID, c := range db.contents {
				if c.PhotoID != nil && *c.PhotoID == id {
					c.PhotoID = nil
					db.contents[contentID] = c
				}
			}
			for galleryID, g := range db.galleries.rows {
				if g.PhotoID == id {
					delete(db.galleries.rows, galleryID)
				}
			}
		},
	}
}

func (db *DB) Feedback() *Store[models.Feedback] {
	return &Store[models.Feedback]{
		db:   db,
		kind: "feedback",
		t:    db.feedback,
		hydrate: func(f *models.Feedback) {
			if u, ok := db.users[f.OwnerID]; ok {
				f.Owner = &u
			}
		},
	}
}

func (db *DB) Galleries() *Store[models.Gallery] {
	return &Store[models.Gallery]{
		db:   db,
		kind: "galleries",
		t:    db.galleries,
		hydrate: func(g *models.Gallery) {
			if p, ok := db.photos.rows[g.PhotoID]; ok {
				g.Photo = &p
			}
		},
	}
}

func (db *DB) Videos() *Store[models.Video] {
	return &Store[models.Video]{db: db, kind: "videos", t: db.videos}
}

func (db *DB) Settings() *Store[models.SiteSettings] {
	return &Store[models.SiteSettings]{db: db, kind: "settings", t: db.settings}
}

func (db *DB) SocialMedia() *Store[models.SocialMedia] {
	return &Store[models.SocialMedia]{db: db, kind: "social_media", t: db.social}
}

func (db *DB) Contacts() *Store[models.ContactMessage] {
	return &Store[models.ContactMessage]{db: db, kind: "contacts", t: db.contacts}
}

func (db *DB) Opinions() *Store[models.Opinion] {
	return &Store[models.Opinion]{db: db, kind: "opinions", t: db.opinions}
}
