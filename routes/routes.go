package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsroom-api/config"
	"newsroom-api/controllers"
	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth      *services.AuthService
	Posts     *services.PostService
	Comments  *services.CommentService
	Reactions *services.ReactionService
	Contents  *services.ContentService
	Taxonomy  *services.TaxonomyService
	Photos    *services.PhotoService
	Feedback  *services.FeedbackService
	Stories   *services.StoryService
	Users     *services.UserService

	Publication *services.PublicationService
	Videos      *services.VideoService
	Galleries   *services.GalleryService
	Site        *services.SiteService
}

// SetupRoutes registers the public and private APIs. The rate limiter sweep
// stops when stop is closed.
func SetupRoutes(r *gin.Engine, svc Services, cfg *config.Config, stop <-chan struct{}) {
	authController := controllers.NewAuthController(svc.Auth)
	postController := controllers.NewPostController(svc.Posts)
	commentController := controllers.NewCommentController(svc.Comments)
	reactionController := controllers.NewReactionController(svc.Reactions)
	contentController := controllers.NewContentController(svc.Contents)
	taxonomyController := controllers.NewTaxonomyController(svc.Taxonomy)
	photoController := controllers.NewPhotoController(svc.Photos)
	feedbackController := controllers.NewFeedbackController(svc.Feedback)
	storyController := controllers.NewStoryController(svc.Stories)
	userController := controllers.NewUserController(svc.Users)
	videoController := controllers.NewVideoController(svc.Videos)
	galleryController := controllers.NewGalleryController(svc.Galleries)
	siteController := controllers.NewSiteController(svc.Site)

	requireAuth := middleware.AuthMiddleware(svc.Auth)
	optionalAuth := middleware.OptionalAuth(svc.Auth)
	limit := middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst, stop)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.ValidateJSON(), middleware.Pagination(models.DefaultPageSize))

	// Public API
	public := v1.Group("/public")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", limit, authController.Register)
			auth.POST("/login", limit, authController.Login)
			auth.POST("/logout", requireAuth, authController.Logout)
		}

		profile := public.Group("/profile", requireAuth)
		{
			profile.GET("", authController.GetProfile)
			profile.PATCH("", authController.UpdateProfile)
			profile.PUT("/password", limit, authController.ChangePassword)
			profile.GET("/saved-posts", postController.GetSavedPosts)
		}

		posts := public.Group("/posts")
		{
			posts.GET("", optionalAuth, postController.GetPosts)
			posts.GET("/:id", optionalAuth, postController.GetPost)
			posts.GET("/:id/comments", optionalAuth, commentController.GetComments)
			posts.POST("/:id/save", requireAuth, postController.SavePost)
			posts.PATCH("/:id/like", requireAuth, limit, reactionController.LikePost)
			posts.PATCH("/:id/dislike", requireAuth, limit, reactionController.DislikePost)
		}

		comments := public.Group("/comments", requireAuth)
		{
			comments.POST("", limit, commentController.CreateComment)
			comments.PATCH("/:id", commentController.UpdateComment)
			comments.DELETE("/:id", commentController.DeleteComment)
			comments.PATCH("/:id/like", limit, reactionController.LikeComment)
			comments.PATCH("/:id/dislike", limit, reactionController.DislikeComment)
		}

		public.GET("/categories", taxonomyController.GetCategoryTree)

		stories := public.Group("/stories")
		{
			stories.GET("", storyController.GetStories)
			stories.GET("/:id", storyController.GetStory)
			stories.GET("/:id/posts", storyController.GetStoryPosts)
		}

		authors := public.Group("/authors")
		{
			authors.GET("", userController.GetAuthors)
			authors.GET("/:id", userController.GetAuthor)
			authors.GET("/:id/posts", optionalAuth, postController.GetAuthorPosts)
		}

		public.GET("/videos", videoController.GetVideos)
		public.GET("/videos/:id", videoController.GetPublicVideo)
		public.GET("/photos", photoController.GetPhotos)
		public.GET("/photos/:id", photoController.GetPublicPhoto)

		public.GET("/settings", siteController.GetSettings)
		public.GET("/settings/social-media", siteController.GetSocialLinks)
		public.POST("/contact-form", limit, siteController.SubmitContact)
		public.POST("/opinion", limit, siteController.SubmitOpinion)
	}

	// Private API, staff only
	private := v1.Group("/private", requireAuth, middleware.RequireStaff())
	{
		private.GET("/options", userController.GetOptions)

		posts := private.Group("/posts")
		{
			posts.GET("", postController.ListPosts)
			posts.POST("", postController.CreatePost)
			posts.GET("/:id", postController.GetPrivatePost)
			posts.PATCH("/:id", postController.UpdatePost)
			posts.PATCH("/:id/update-non-approved", postController.UpdateNonApproved)
			posts.PATCH("/:id/update-approved", postController.UpdateApproved)
			posts.DELETE("/:id", postController.DeletePost)
		}

		contents := private.Group("/contents")
		{
			contents.GET("", contentController.GetContents)
			contents.POST("", contentController.CreateContent)
			contents.GET("/:id", contentController.GetContent)
			contents.PATCH("/:id", contentController.UpdateContent)
			contents.DELETE("/:id", contentController.DeleteContent)
		}

		categories := private.Group("/categories")
		{
			categories.GET("", taxonomyController.ListCategories)
			categories.POST("", taxonomyController.CreateCategory)
			categories.GET("/:id", taxonomyController.GetCategory)
			categories.PUT("/:id", taxonomyController.UpdateCategory)
			categories.DELETE("/:id", taxonomyController.DeleteCategory)
		}

		keywords := private.Group("/keywords")
		{
			keywords.GET("", taxonomyController.ListKeywords)
			keywords.POST("", taxonomyController.CreateKeyword)
			keywords.GET("/:id", taxonomyController.GetKeyword)
			keywords.PUT("/:id", taxonomyController.UpdateKeyword)
			keywords.DELETE("/:id", taxonomyController.DeleteKeyword)
		}

		photos := private.Group("/photos")
		{
			photos.GET("", photoController.ListPhotos)
			photos.POST("", photoController.CreatePhoto)
			photos.GET("/:id", photoController.GetPhoto)
			photos.PUT("/:id", photoController.UpdatePhoto)
			photos.DELETE("/:id", photoController.DeletePhoto)
		}

		feedback := private.Group("/feedback")
		{
			feedback.GET("", feedbackController.ListFeedback)
			feedback.POST("", feedbackController.CreateFeedback)
			feedback.GET("/:id", feedbackController.GetFeedback)
			feedback.PATCH("/:id", feedbackController.UpdateFeedback)
			feedback.DELETE("/:id", feedbackController.DeleteFeedback)
		}

		stories := private.Group("/stories")
		{
			stories.GET("", storyController.ListStories)
			stories.POST("", storyController.CreateStory)
			stories.GET("/:id", storyController.GetPrivateStory)
			stories.PATCH("/:id", storyController.UpdateStory)
			stories.DELETE("/:id", storyController.DeleteStory)
			stories.GET("/:id/contents", storyController.GetStoryContents)
			stories.POST("/:id/contents", storyController.AddStoryContent)
			stories.DELETE("/:id/contents/:post_id", storyController.RemoveStoryContent)
		}

		comments := private.Group("/comments")
		{
			comments.GET("", commentController.ListComments)
			comments.GET("/:id", commentController.GetComment)
			comments.DELETE("/:id", commentController.DeleteComment)
			comments.PATCH("/:id/approve", commentController.ApproveComment)
		}

		private.GET("/reactions/:type/:id", reactionController.GetMembers)

		videos := private.Group("/videos")
		{
			videos.GET("", videoController.ListVideos)
			videos.POST("", videoController.CreateVideo)
			videos.GET("/:id", videoController.GetVideo)
			videos.PUT("/:id", videoController.UpdateVideo)
			videos.DELETE("/:id", videoController.DeleteVideo)
		}

		gallery := private.Group("/gallery")
		{
			gallery.GET("", galleryController.ListGallery)
			gallery.POST("", galleryController.CreateGallery)
			gallery.GET("/:id", galleryController.GetGallery)
			gallery.PUT("/:id", galleryController.UpdateGallery)
			gallery.DELETE("/:id", galleryController.DeleteGallery)
		}

		private.GET("/settings", siteController.GetSettings)
		private.PATCH("/settings", siteController.UpdateSettings)

		social := private.Group("/social-media")
		{
			social.GET("", siteController.GetSocialLinks)
			social.POST("", siteController.CreateSocial)
			social.GET("/:id", siteController.GetSocial)
			social.PUT("/:id", siteController.UpdateSocial)
			social.DELETE("/:id", siteController.DeleteSocial)
		}

		contactForms := private.Group("/contact-forms")
		{
			contactForms.GET("", siteController.ListContacts)
			contactForms.GET("/:id", siteController.GetContact)
		}

		opinions := private.Group("/opinions")
		{
			opinions.GET("", siteController.ListOpinions)
			opinions.GET("/:id", siteController.GetOpinion)
			opinions.DELETE("/:id", siteController.DeleteOpinion)
		}

		users := private.Group("/users")
		{
			users.GET("", userController.ListUsers)
			users.PATCH("/:id", userController.UpdateUser)
		}
	}
}

// SetupCORS answers preflight requests and allows the configured origins.
// A "*" entry allows any origin.
func SetupCORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID, X-RateLimit-Remaining, X-RateLimit-Reset")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
