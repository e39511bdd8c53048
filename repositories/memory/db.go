// Package memory is an in-process implementation of the repository interfaces.
// It backs the service and handler tests and mirrors the constraints the SQL
// schema enforces: unique slugs and emails, companion reaction sets and
// cascading deletes.
package memory

import (
	"sort"
	"sync"
	"time"

	"newsroom-api/models"
	"newsroom-api/services"
)

var (
	_ services.UserRepository      = (*UserRepository)(nil)
	_ services.PostRepository      = (*PostRepository)(nil)
	_ services.ContentRepository   = (*ContentRepository)(nil)
	_ services.CommentRepository   = (*CommentRepository)(nil)
	_ services.ReactionRepository  = (*ReactionRepository)(nil)
	_ services.StoryRepository     = (*StoryRepository)(nil)
	_ services.Store[models.Photo] = (*Store[models.Photo])(nil)
)

// DB holds every table. Repositories built from the same DB share its lock,
// so multi-table writes are atomic.
type DB struct {
	mu  sync.Mutex
	now func() time.Time
	ids map[string]uint

	users      map[uint]models.User
	posts      map[uint]models.Post
	postCats   map[uint][]uint
	contents   map[uint]models.Content
	comments   map[uint]models.Comment
	sets       map[uint]models.ReactionSet
	members    map[uint][]uint
	saved      map[uint][]uint
	stories    map[uint]models.Story
	storyPosts map[uint][]uint
	categories *table[models.Category]
	keywords   *table[models.PostIdentifier]
	photos     *table[models.Photo]
	feedback   *table[models.Feedback]
	videos     *table[models.Video]
	galleries  *table[models.Gallery]
	settings   *table[models.SiteSettings]
	social     *table[models.SocialMedia]
	contacts   *table[models.ContactMessage]
	opinions   *table[models.Opinion]
}

func NewDB() *DB {
	return &DB{
		now:        time.Now,
		ids:        make(map[string]uint),
		users:      make(map[uint]models.User),
		posts:      make(map[uint]models.Post),
		postCats:   make(map[uint][]uint),
		contents:   make(map[uint]models.Content),
		comments:   make(map[uint]models.Comment),
		sets:       make(map[uint]models.ReactionSet),
		members:    make(map[uint][]uint),
		saved:      make(map[uint][]uint),
		stories:    make(map[uint]models.Story),
		storyPosts: make(map[uint][]uint),
		categories: newTable(func(c *models.Category) *uint { return &c.ID }),
		keywords:   newTable(func(k *models.PostIdentifier) *uint { return &k.ID }),
		photos:     newTable(func(p *models.Photo) *uint { return &p.ID }),
		feedback:   newTable(func(f *models.Feedback) *uint { return &f.ID }),
		videos:     newTable(func(v *models.Video) *uint { return &v.ID }),
		galleries:  newTable(func(g *models.Gallery) *uint { return &g.ID }),
		settings:   newTable(func(s *models.SiteSettings) *uint { return &s.ID }),
		social:     newTable(func(m *models.SocialMedia) *uint { return &m.ID }),
		contacts:   newTable(func(c *models.ContactMessage) *uint { return &c.ID }),
		opinions:   newTable(func(o *models.Opinion) *uint { return &o.ID }),
	}
}

func (db *DB) next(kind string) uint {
	db.ids[kind]++
	return db.ids[kind]
}

// ReactionSets returns how many reaction sets exist for a subject.
func (db *DB) ReactionSets(subject models.Subject) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, s := range db.sets {
		if s.SubjectType == subject.Type && s.SubjectID == subject.ID {
			n++
		}
	}
	return n
}

// StoredViews reads the persisted view counter of a post.
func (db *DB) StoredViews(postID uint) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.posts[postID].Views
}

func (db *DB) createReactionSets(subjectType models.SubjectType, id uint) {
	for _, d := range []models.Direction{models.Like, models.Dislike} {
		setID := db.next("reaction_sets")
		db.sets[setID] = models.ReactionSet{
			ID:          setID,
			SubjectType: subjectType,
			SubjectID:   id,
			Direction:   d,
			CreatedAt:   db.now(),
		}
	}
}

func (db *DB) deleteReactionSets(subjectType models.SubjectType, ids ...uint) {
	doomed := make(map[uint]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	for setID, s := range db.sets {
		if s.SubjectType == subjectType && doomed[s.SubjectID] {
			delete(db.sets, setID)
			delete(db.members, setID)
		}
	}
}

func (db *DB) setsOf(subject models.Subject) map[models.Direction]uint {
	found := make(map[models.Direction]uint, 2)
	for id, s := range db.sets {
		if s.SubjectType == subject.Type && s.SubjectID == subject.ID {
			found[s.Direction] = id
		}
	}
	return found
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []uint, id uint) []uint {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func paginate[T any](items []T, page models.Page) []T {
	start, end := page.Slice(len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
