package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type VideoController struct {
	videos *services.VideoService
}

func NewVideoController(videos *services.VideoService) *VideoController {
	return &VideoController{videos: videos}
}

func (vc *VideoController) GetVideos(c *gin.Context) {
	page := middleware.GetPage(c)
	videos, total, err := vc.videos.Browse(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, videos, page, total)
}

func (vc *VideoController) GetPublicVideo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	video, err := vc.videos.Show(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (vc *VideoController) ListVideos(c *gin.Context) {
	page := middleware.GetPage(c)
	videos, total, err := vc.videos.List(c.Request.Context(), middleware.CurrentActor(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, videos, page, total)
}

func (vc *VideoController) CreateVideo(c *gin.Context) {
	var req models.VideoInput
	if !bindJSON(c, &req) {
		return
	}
	video, err := vc.videos.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

func (vc *VideoController) GetVideo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	video, err := vc.videos.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (vc *VideoController) UpdateVideo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.VideoInput
	if !bindJSON(c, &req) {
		return
	}
	video, err := vc.videos.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (vc *VideoController) DeleteVideo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := vc.videos.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Video deleted successfully", nil)
}

type GalleryController struct {
	galleries *services.GalleryService
}

func NewGalleryController(galleries *services.GalleryService) *GalleryController {
	return &GalleryController{galleries: galleries}
}

func (gc *GalleryController) ListGallery(c *gin.Context) {
	page := middleware.GetPage(c)
	items, total, err := gc.galleries.List(c.Request.Context(), middleware.CurrentActor(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, items, page, total)
}

func (gc *GalleryController) CreateGallery(c *gin.Context) {
	var req models.GalleryInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := gc.galleries.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (gc *GalleryController) GetGallery(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := gc.galleries.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (gc *GalleryController) UpdateGallery(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.GalleryInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := gc.galleries.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (gc *GalleryController) DeleteGallery(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := gc.galleries.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Gallery item deleted successfully", nil)
}
