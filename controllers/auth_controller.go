package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := ac.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := ac.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout is a no-op on the server; clients discard the token.
func (ac *AuthController) Logout(c *gin.Context) {
	utils.SendSuccess(c, "Logged out successfully", nil)
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	user, err := ac.auth.Profile(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}
	user, err := ac.auth.UpdateProfile(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req models.PasswordChange
	if !bindJSON(c, &req) {
		return
	}
	if err := ac.auth.ChangePassword(c.Request.Context(), middleware.CurrentActor(c), req); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Password updated successfully", nil)
}
