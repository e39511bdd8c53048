package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type CommentController struct {
	comments *services.CommentService
}

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

type updateCommentRequest struct {
	Body string `json:"comment" binding:"required"`
}

type approveCommentRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	var req models.CommentInput
	if !bindJSON(c, &req) {
		return
	}
	comment, err := cc.comments.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetComments returns the approved thread of a public post.
func (cc *CommentController) GetComments(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	thread, err := cc.comments.Thread(c.Request.Context(), middleware.CurrentActor(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := cc.comments.Count(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment_count": count, "comments": thread})
}

func (cc *CommentController) UpdateComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := cc.comments.Update(c.Request.Context(), middleware.CurrentActor(c), id, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := cc.comments.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Comment deleted successfully", nil)
}

// ListComments is the staff listing, optionally narrowed to a post or approval state.
func (cc *CommentController) ListComments(c *gin.Context) {
	filter := models.CommentFilter{
		PostID:   queryUint(c, "post"),
		Approved: queryBool(c, "is_approved"),
		Page:     middleware.GetPage(c),
	}
	comments, total, err := cc.comments.List(c.Request.Context(), middleware.CurrentActor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, comments, filter.Page, total)
}

func (cc *CommentController) GetComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	comment, err := cc.comments.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (cc *CommentController) ApproveComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req approveCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := cc.comments.Approve(c.Request.Context(), middleware.CurrentActor(c), id, *req.IsApproved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}
