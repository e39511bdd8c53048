package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type StoryController struct {
	stories *services.StoryService
}

func NewStoryController(stories *services.StoryService) *StoryController {
	return &StoryController{stories: stories}
}

type storyPostRequest struct {
	PostID uint `json:"post" binding:"required"`
}

func storyFilter(c *gin.Context) models.StoryFilter {
	return models.StoryFilter{
		HomePage: queryBool(c, "show_in_home_page"),
		Page:     middleware.GetPage(c),
	}
}

// GetStories lists active stories.
func (sc *StoryController) GetStories(c *gin.Context) {
	filter := storyFilter(c)
	stories, total, err := sc.stories.ListActive(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, stories, filter.Page, total)
}

func (sc *StoryController) GetStory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	story, err := sc.stories.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (sc *StoryController) GetStoryPosts(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	posts, err := sc.stories.PublicPosts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (sc *StoryController) ListStories(c *gin.Context) {
	filter := storyFilter(c)
	if status := models.StoryStatus(c.Query("status")); status.Valid() {
		filter.Status = status
	}
	stories, total, err := sc.stories.List(c.Request.Context(), middleware.CurrentActor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, stories, filter.Page, total)
}

func (sc *StoryController) CreateStory(c *gin.Context) {
	var req models.StoryInput
	if !bindJSON(c, &req) {
		return
	}
	story, err := sc.stories.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (sc *StoryController) GetPrivateStory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	story, err := sc.stories.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (sc *StoryController) UpdateStory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.StoryInput
	if !bindJSON(c, &req) {
		return
	}
	story, err := sc.stories.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (sc *StoryController) DeleteStory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := sc.stories.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Story deleted successfully", nil)
}

// GetStoryContents lists every post of a story for staff.
func (sc *StoryController) GetStoryContents(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	posts, err := sc.stories.Posts(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (sc *StoryController) AddStoryContent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req storyPostRequest
	if !bindJSON(c, &req) {
		return
	}
	story, err := sc.stories.AddPost(c.Request.Context(), middleware.CurrentActor(c), id, req.PostID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (sc *StoryController) RemoveStoryContent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	postID, ok := paramID(c, "post_id")
	if !ok {
		return
	}
	if err := sc.stories.RemovePost(c.Request.Context(), middleware.CurrentActor(c), id, postID); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Post removed from story", nil)
}
