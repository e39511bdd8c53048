package database

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newsroom-api/config"
	"newsroom-api/models"
)

// Initialize opens the connection for the configured driver. Duplicate key
// errors are translated to gorm.ErrDuplicatedKey.
func Initialize(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(LogLevel(cfg.DBLogLevel)),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql", "":
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// LogLevel maps DB_LOG_LEVEL to gorm's logger level, defaulting to warn.
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.PostIdentifier{},
		&models.Post{},
		&models.Photo{},
		&models.Content{},
		&models.Comment{},
		&models.ReactionSet{},
		&models.ReactionMember{},
		&models.SavedPost{},
		&models.Story{},
		&models.StoryContent{},
		&models.Feedback{},
		&models.Video{},
		&models.Gallery{},
		&models.SiteSettings{},
		&models.SocialMedia{},
		&models.ContactMessage{},
		&models.Opinion{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	addCustomIndexes(db)
	return nil
}

type customIndex struct {
	table   string
	name    string
	columns string
}

var customIndexes = []customIndex{
	{"posts", "idx_posts_public_feed", "status, is_approved, publish_date DESC"},
	{"posts", "idx_posts_author_publish", "author_id, publish_date DESC"},
	{"comments", "idx_comments_post_date", "post_id, post_date DESC"},
	{"comments", "idx_comments_reply_date", "replied_comment_id, post_date"},
	{"contents", "idx_contents_post_ordering", "post_id, ordering"},
	{"saved_posts", "idx_saved_posts_user_created", "user_id, created_at DESC"},
	{"stories", "idx_stories_listing", "status, ordering, start_date DESC"},
}

// addCustomIndexes creates composite indexes the struct tags cannot express.
// Failures are logged and do not stop startup.
func addCustomIndexes(db *gorm.DB) {
	for _, idx := range customIndexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}
		stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(stmt).Error; err != nil {
			slog.Warn("could not create index", "index", idx.name, "error", err)
		}
	}
}

var defaultCategories = []models.Category{
	{Title: "News", Ordering: 1},
	{Title: "Politics", Ordering: 2},
	{Title: "Economy", Ordering: 3},
	{Title: "World", Ordering: 4},
	{Title: "Sport", Ordering: 5},
	{Title: "Culture", Ordering: 6},
}

// SeedData creates the default categories and the bootstrap admin on an
// empty database.
func SeedData(db *gorm.DB, cfg *config.Config) error {
	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if categoryCount == 0 {
		categories := append([]models.Category(nil), defaultCategories...)
		if err := db.Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		slog.Info("seeded default categories", "count", len(categories))
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if adminCount > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Email:     strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		Password:  string(hash),
		FirstName: "Site",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("seeded admin account", "email", admin.Email)
	return nil
}
