package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type PhotoController struct {
	photos *services.PhotoService
}

func NewPhotoController(photos *services.PhotoService) *PhotoController {
	return &PhotoController{photos: photos}
}

func (pc *PhotoController) ListPhotos(c *gin.Context) {
	page := middleware.GetPage(c)
	photos, total, err := pc.photos.List(c.Request.Context(), middleware.CurrentActor(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, photos, page, total)
}

func (pc *PhotoController) CreatePhoto(c *gin.Context) {
	var req models.PhotoInput
	if !bindJSON(c, &req) {
		return
	}
	photo, err := pc.photos.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (pc *PhotoController) GetPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	photo, err := pc.photos.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

func (pc *PhotoController) UpdatePhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.PhotoInput
	if !bindJSON(c, &req) {
		return
	}
	photo, err := pc.photos.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

func (pc *PhotoController) DeletePhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := pc.photos.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Photo deleted successfully", nil)
}

func (pc *PhotoController) GetPhotos(c *gin.Context) {
	page := middleware.GetPage(c)
	photos, total, err := pc.photos.Browse(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, photos, page, total)
}

func (pc *PhotoController) GetPublicPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	photo, err := pc.photos.Show(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}
