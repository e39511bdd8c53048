package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"newsroom-api/models"
	"newsroom-api/services"
)

const mysqlDuplicateEntry = 1062

// translate maps gorm and driver errors onto the service sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return services.ErrNotFound
	case isDuplicate(err):
		return services.ErrConflict
	}
	return err
}

// translateSlug is translate for writes guarded by a unique slug index.
func translateSlug(err error) error {
	if isDuplicate(err) {
		return services.ErrDuplicateSlug
	}
	return translate(err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

var (
	_ services.UserRepository         = (*UserRepository)(nil)
	_ services.PostRepository         = (*PostRepository)(nil)
	_ services.ContentRepository      = (*ContentRepository)(nil)
	_ services.CommentRepository      = (*CommentRepository)(nil)
	_ services.ReactionRepository     = (*ReactionRepository)(nil)
	_ services.StoryRepository        = (*StoryRepository)(nil)
	_ services.Store[models.Category] = (*Store[models.Category])(nil)
)
