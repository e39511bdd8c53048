package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type SiteController struct {
	site *services.SiteService
}

func NewSiteController(site *services.SiteService) *SiteController {
	return &SiteController{site: site}
}

func (sc *SiteController) GetSettings(c *gin.Context) {
	settings, err := sc.site.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (sc *SiteController) UpdateSettings(c *gin.Context) {
	var req models.SiteSettingsInput
	if !bindJSON(c, &req) {
		return
	}
	settings, err := sc.site.UpdateSettings(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetSocialLinks accepts ?position=side|header|footer.
func (sc *SiteController) GetSocialLinks(c *gin.Context) {
	links, err := sc.site.SocialLinks(c.Request.Context(), models.SocialPosition(c.Query("position")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (sc *SiteController) CreateSocial(c *gin.Context) {
	var req models.SocialMediaInput
	if !bindJSON(c, &req) {
		return
	}
	link, err := sc.site.CreateSocial(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (sc *SiteController) GetSocial(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	link, err := sc.site.GetSocial(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (sc *SiteController) UpdateSocial(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.SocialMediaInput
	if !bindJSON(c, &req) {
		return
	}
	link, err := sc.site.UpdateSocial(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (sc *SiteController) DeleteSocial(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := sc.site.DeleteSocial(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Social media link deleted successfully", nil)
}

func (sc *SiteController) SubmitContact(c *gin.Context) {
	var req models.ContactInput
	if !bindJSON(c, &req) {
		return
	}
	msg, err := sc.site.SubmitContact(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (sc *SiteController) SubmitOpinion(c *gin.Context) {
	var req models.ContactInput
	if !bindJSON(c, &req) {
		return
	}
	op, err := sc.site.SubmitOpinion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, op)
}

func (sc *SiteController) ListContacts(c *gin.Context) {
	page := middleware.GetPage(c)
	items, total, err := sc.site.ListContacts(c.Request.Context(), middleware.CurrentActor(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, items, page, total)
}

func (sc *SiteController) GetContact(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	msg, err := sc.site.GetContact(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (sc *SiteController) ListOpinions(c *gin.Context) {
	page := middleware.GetPage(c)
	items, total, err := sc.site.ListOpinions(c.Request.Context(), middleware.CurrentActor(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, items, page, total)
}

func (sc *SiteController) GetOpinion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	op, err := sc.site.GetOpinion(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

func (sc *SiteController) DeleteOpinion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := sc.site.DeleteOpinion(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Opinion deleted successfully", nil)
}
