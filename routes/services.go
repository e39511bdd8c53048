package routes

import (
	"fmt"

	"gorm.io/gorm"

	"newsroom-api/config"
	"newsroom-api/models"
	"newsroom-api/repositories"
	"newsroom-api/services"
	"newsroom-api/utils"
)

// NewServices wires the gorm repositories into the services.
func NewServices(db *gorm.DB, cfg *config.Config, mailer services.Mailer) (Services, error) {
	posts := repositories.NewPostRepository(db)
	comments := repositories.NewCommentRepository(db)
	reactions := repositories.NewReactionRepository(db)
	contents := repositories.NewContentRepository(db)
	stories := repositories.NewStoryRepository(db)
	users := repositories.NewUserRepository(db)

	categories := repositories.NewStore[models.Category](db,
		repositories.WithOrder("ordering ASC, title ASC"),
		repositories.WithDeleteHook(repositories.DetachCategory),
	)
	keywords := repositories.NewStore[models.PostIdentifier](db,
		repositories.WithOrder("title ASC"),
		repositories.WithDeleteHook(repositories.DetachKeyword),
	)
	photos := repositories.NewStore[models.Photo](db,
		repositories.WithOrder("id DESC"),
		repositories.WithDeleteHook(repositories.DetachPhoto),
	)
	feedback := repositories.NewStore[models.Feedback](db,
		repositories.WithOrder("post_date DESC, id DESC"),
		repositories.WithPreload("Owner"),
	)
	videos := repositories.NewStore[models.Video](db, repositories.WithOrder("id DESC"))
	galleries := repositories.NewStore[models.Gallery](db,
		repositories.WithOrder("created_at DESC, id DESC"),
		repositories.WithPreload("Photo"),
	)
	settings := repositories.NewStore[models.SiteSettings](db)
	social := repositories.NewStore[models.SocialMedia](db, repositories.WithOrder("position ASC, id ASC"))
	contacts := repositories.NewStore[models.ContactMessage](db, repositories.WithOrder("send_date DESC, id DESC"))
	opinions := repositories.NewStore[models.Opinion](db, repositories.WithOrder("send_date DESC, id DESC"))

	tree, err := utils.NewCache[[]models.CategoryNode](cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		return Services{}, fmt.Errorf("category cache: %w", err)
	}

	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	return Services{
		Auth:        services.NewAuthService(users, tokens),
		Posts:       services.NewPostService(posts, comments, reactions, mailer),
		Comments:    services.NewCommentService(comments, posts, reactions),
		Reactions:   services.NewReactionService(reactions, posts, comments),
		Contents:    services.NewContentService(contents, posts, photos),
		Taxonomy:    services.NewTaxonomyService(categories, keywords, tree),
		Photos:      services.NewPhotoService(photos),
		Feedback:    services.NewFeedbackService(feedback, posts),
		Stories:     services.NewStoryService(stories, posts),
		Users:       services.NewUserService(users),
		Publication: services.NewPublicationService(posts, stories),
		Videos:      services.NewVideoService(videos),
		Galleries:   services.NewGalleryService(galleries, photos),
		Site:        services.NewSiteService(settings, social, contacts, opinions),
	}, nil
}
