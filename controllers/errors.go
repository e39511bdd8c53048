package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

// respondError writes the HTTP response matching a service error.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.SendFieldErrors(c, verr.Fields)
	case errors.Is(err, services.ErrValidation):
		utils.SendValidationError(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrUnauthenticated):
		utils.SendError(c, http.StatusUnauthorized, "Authentication credentials were not provided")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.SendError(c, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrInactiveUser):
		utils.SendError(c, http.StatusForbidden, services.ErrInactiveUser.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.SendError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrDuplicateSlug):
		utils.SendError(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindJSON decodes the request body into req, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.SendValidationError(c, err.Error())
		return false
	}
	return true
}

// paramID parses a positive integer path parameter, answering 404 otherwise.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.SendError(c, http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// queryBool returns nil when the parameter is absent or malformed.
func queryBool(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func sendPage[T any](c *gin.Context, items []T, page models.Page, total int64) {
	if items == nil {
		items = []T{}
	}
	utils.SendPaginated(c, items, page.Page, page.Limit, total)
}
