package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type PostController struct {
	posts *services.PostService
}

func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

func postFilter(c *gin.Context) models.PostFilter {
	filter := models.PostFilter{
		CategoryID:    queryUint(c, "category"),
		AuthorID:      queryUint(c, "author"),
		KeywordID:     queryUint(c, "keyword"),
		Search:        strings.TrimSpace(c.Query("search")),
		EditorsChoice: queryBool(c, "is_editors_choice"),
		HomePage:      queryBool(c, "show_in_home_page"),
		Multimedia:    queryBool(c, "is_multimedia"),
		Page:          middleware.GetPage(c),
	}
	if top := queryUint(c, "top_news"); top != 0 {
		slot := models.TopNews(top)
		filter.TopNews = &slot
	}
	return filter
}

// GetPosts is the public feed.
func (pc *PostController) GetPosts(c *gin.Context) {
	feed, err := pc.posts.ListPublic(c.Request.Context(), middleware.CurrentActor(c), postFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// GetPost is the public detail view.
func (pc *PostController) GetPost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := pc.posts.Detail(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (pc *PostController) SavePost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	saved, err := pc.posts.ToggleSave(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_saved_by_auth_user": saved})
}

func (pc *PostController) GetSavedPosts(c *gin.Context) {
	feed, err := pc.posts.ListSaved(c.Request.Context(), middleware.CurrentActor(c), middleware.GetPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// GetAuthorPosts lists an author's public posts, four per page.
func (pc *PostController) GetAuthorPosts(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	filter := services.AuthorPostsFilter(id, middleware.GetPage(c).Page)
	feed, err := pc.posts.ListPublic(c.Request.Context(), middleware.CurrentActor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// ListPosts is the staff listing over every post.
func (pc *PostController) ListPosts(c *gin.Context) {
	filter := postFilter(c)
	if status := models.PostStatus(c.Query("status")); status.Valid() {
		filter.Status = status
	}
	filter.Approved = queryBool(c, "is_approved")

	posts, total, err := pc.posts.List(c.Request.Context(), middleware.CurrentActor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, posts, filter.Page, total)
}

func (pc *PostController) CreatePost(c *gin.Context) {
	var req models.PostInput
	if !bindJSON(c, &req) {
		return
	}
	post, err := pc.posts.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (pc *PostController) GetPrivatePost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	post, err := pc.posts.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// UpdatePost applies the full update for editors and admins and the draft
// update for reporters.
func (pc *PostController) UpdatePost(c *gin.Context) {
	if services.Can(middleware.CurrentActor(c).Role, services.ActionPostUpdateFull) {
		pc.UpdateApproved(c)
		return
	}
	pc.UpdateNonApproved(c)
}

func (pc *PostController) UpdateNonApproved(c *gin.Context) {
	pc.update(c, pc.posts.UpdateLimited)
}

func (pc *PostController) UpdateApproved(c *gin.Context) {
	pc.update(c, pc.posts.UpdateFull)
}

type postUpdater func(ctx context.Context, actor models.Actor, id uint, in models.PostInput) (*models.Post, error)

func (pc *PostController) update(c *gin.Context, apply postUpdater) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.PostInput
	if !bindJSON(c, &req) {
		return
	}
	post, err := apply(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (pc *PostController) DeletePost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := pc.posts.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Post deleted successfully", nil)
}
