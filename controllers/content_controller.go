package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type ContentController struct {
	contents *services.ContentService
}

func NewContentController(contents *services.ContentService) *ContentController {
	return &ContentController{contents: contents}
}

// GetContents lists the blocks of the post given by the post query parameter.
func (cc *ContentController) GetContents(c *gin.Context) {
	postID := queryUint(c, "post")
	if postID == 0 {
		utils.SendFieldErrors(c, map[string]string{"post": "This query parameter is required."})
		return
	}
	contents, err := cc.contents.ListByPost(c.Request.Context(), middleware.CurrentActor(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contents)
}

func (cc *ContentController) CreateContent(c *gin.Context) {
	var req models.ContentInput
	if !bindJSON(c, &req) {
		return
	}
	content, err := cc.contents.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, content)
}

func (cc *ContentController) GetContent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	content, err := cc.contents.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (cc *ContentController) UpdateContent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.ContentInput
	if !bindJSON(c, &req) {
		return
	}
	content, err := cc.contents.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (cc *ContentController) DeleteContent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := cc.contents.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Content deleted successfully", nil)
}
