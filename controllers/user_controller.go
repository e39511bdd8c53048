package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (uc *UserController) GetAuthors(c *gin.Context) {
	page := middleware.GetPage(c)
	authors, total, err := uc.users.Authors(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, authors, page, total)
}

func (uc *UserController) GetAuthor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	author, err := uc.users.Author(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

// ListUsers is the admin account listing.
func (uc *UserController) ListUsers(c *gin.Context) {
	filter := models.UserFilter{
		StaffOnly: c.Query("staff") == "true",
		Role:      models.Role(queryUint(c, "role")),
		Search:    strings.TrimSpace(c.Query("search")),
		Page:      middleware.GetPage(c),
	}
	users, total, err := uc.users.List(c.Request.Context(), middleware.CurrentActor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, users, filter.Page, total)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.UserAdminUpdate
	if !bindJSON(c, &req) {
		return
	}
	user, err := uc.users.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetOptions returns the choice lists used by editing clients.
func (uc *UserController) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, models.BuildOptions())
}
