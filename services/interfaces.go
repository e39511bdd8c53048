package services

import (
	"context"
	"time"

	"newsroom-api/models"
)

// UserRepository persists accounts. Create returns ErrConflict for a taken email.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int64, error)
}

// PostRepository persists posts together with their category links, reaction
// companions and bookmarks.
type PostRepository interface {
	// Create inserts the post, links categoryIDs (creating bare rows for unknown
	// ids) and creates its like and dislike sets, all in one transaction.
	// A taken slug yields ErrDuplicateSlug.
	Create(ctx context.Context, post *models.Post, categoryIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// Update saves the post's columns. A non-nil categoryIDs replaces the
	// category set exactly; nil leaves it untouched.
	Update(ctx context.Context, post *models.Post, categoryIDs []uint) error
	// Delete removes the post with its contents, comments and reaction sets.
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error)
	Related(ctx context.Context, post *models.Post, limit int) ([]models.Post, error)
	IncrementViews(ctx context.Context, id uint) error
	SetShortDescriptionIfEmpty(ctx context.Context, id uint, text string) error
	CloseExpired(ctx context.Context, now time.Time) (int64, error)

	SetSaved(ctx context.Context, userID, postID uint, saved bool) error
	IsSaved(ctx context.Context, userID, postID uint) (bool, error)
	ListSaved(ctx context.Context, userID uint, page models.Page) ([]models.Post, int64, error)
}

type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	GetByID(ctx context.Context, id uint) (*models.Content, error)
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id uint) error
	ListByPost(ctx context.Context, postID uint) ([]models.Content, error)
}

// CommentRepository persists comments. Create also creates the comment's
// reaction sets; Delete removes the comment, its replies and their sets.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	UpdateBody(ctx context.Context, id uint, body string) error
	SetApproved(ctx context.Context, id uint, approved bool) error
	Delete(ctx context.Context, id uint) error
	// CountForPost counts direct comments of the post plus their direct replies.
	CountForPost(ctx context.Context, postID uint) (int64, error)
	TopLevel(ctx context.Context, postID uint, approvedOnly bool) ([]models.Comment, error)
	Replies(ctx context.Context, parentIDs []uint, approvedOnly bool) ([]models.Comment, error)
	List(ctx context.Context, filter models.CommentFilter) ([]models.Comment, int64, error)
}

// ReactionRepository owns the like/dislike sets.
type ReactionRepository interface {
	// Toggle removes the user from the opposite set and adds them to the
	// requested one atomically. Missing sets yield ErrNotFound.
	Toggle(ctx context.Context, subject models.Subject, userID uint, direction models.Direction) error
	// Tally returns counts for each id, with flags relative to userID (0 for anonymous).
	Tally(ctx context.Context, subjectType models.SubjectType, ids []uint, userID uint) (map[uint]models.ReactionCounts, error)
	Members(ctx context.Context, subject models.Subject) (*models.ReactionMembers, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uint) (*models.Story, error)
	Update(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, filter models.StoryFilter) ([]models.Story, int64, error)
	IncrementViews(ctx context.Context, id uint) error
	AddPost(ctx context.Context, storyID, postID uint) error
	RemovePost(ctx context.Context, storyID, postID uint) error
	Posts(ctx context.Context, storyID uint, publicOnly bool) ([]models.Post, error)
	ArchiveExpired(ctx context.Context, now time.Time) (int64, error)
}

// Store is plain CRUD for the small reference entities.
type Store[T any] interface {
	Create(ctx context.Context, item *T) error
	Get(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page models.Page) ([]T, int64, error)
	All(ctx context.Context) ([]T, error)
}

// Mailer delivers transactional email.
type Mailer interface {
	SendPostApproved(ctx context.Context, author *models.User, post *models.Post) error
}
