package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type FeedbackController struct {
	feedback *services.FeedbackService
}

func NewFeedbackController(feedback *services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedback: feedback}
}

func (fc *FeedbackController) ListFeedback(c *gin.Context) {
	page := middleware.GetPage(c)
	items, total, err := fc.feedback.List(c.Request.Context(), middleware.CurrentActor(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, items, page, total)
}

func (fc *FeedbackController) CreateFeedback(c *gin.Context) {
	var req models.FeedbackInput
	if !bindJSON(c, &req) {
		return
	}
	fb, err := fc.feedback.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (fc *FeedbackController) GetFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	fb, err := fc.feedback.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (fc *FeedbackController) UpdateFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.FeedbackInput
	if !bindJSON(c, &req) {
		return
	}
	fb, err := fc.feedback.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (fc *FeedbackController) DeleteFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := fc.feedback.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Feedback deleted successfully", nil)
}
