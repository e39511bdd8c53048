package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type ReactionController struct {
	reactions *services.ReactionService
}

func NewReactionController(reactions *services.ReactionService) *ReactionController {
	return &ReactionController{reactions: reactions}
}

func (rc *ReactionController) LikePost(c *gin.Context) {
	rc.toggle(c, models.SubjectPost, models.Like)
}

func (rc *ReactionController) DislikePost(c *gin.Context) {
	rc.toggle(c, models.SubjectPost, models.Dislike)
}

func (rc *ReactionController) LikeComment(c *gin.Context) {
	rc.toggle(c, models.SubjectComment, models.Like)
}

func (rc *ReactionController) DislikeComment(c *gin.Context) {
	rc.toggle(c, models.SubjectComment, models.Dislike)
}

func (rc *ReactionController) toggle(c *gin.Context, subjectType models.SubjectType, direction models.Direction) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	subject := models.Subject{Type: subjectType, ID: id}
	counts, err := rc.reactions.Toggle(c.Request.Context(), middleware.CurrentActor(c), subject, direction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// GetMembers lists the user ids in the like and dislike sets of a post or comment.
func (rc *ReactionController) GetMembers(c *gin.Context) {
	subjectType := models.SubjectType(c.Param("type"))
	if !subjectType.Valid() {
		utils.SendError(c, http.StatusNotFound, "Not found")
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	members, err := rc.reactions.Members(c.Request.Context(), middleware.CurrentActor(c), models.Subject{Type: subjectType, ID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
