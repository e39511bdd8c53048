package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"newsroom-api/services"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"field errors", services.NewValidationError("title", "This field is required."), http.StatusBadRequest, `"validation_errors":{"title"`},
		{"plain validation", fmt.Errorf("%w: bad cursor", services.ErrValidation), http.StatusBadRequest, "bad cursor"},
		{"not found", fmt.Errorf("post: %w", services.ErrNotFound), http.StatusNotFound, "Not found"},
		{"anonymous", services.ErrUnauthenticated, http.StatusUnauthorized, "credentials"},
		{"bad login", services.ErrInvalidCredentials, http.StatusUnauthorized, ""},
		{"inactive", services.ErrInactiveUser, http.StatusForbidden, ""},
		{"forbidden", fmt.Errorf("%w: editors cannot delete", services.ErrForbidden), http.StatusForbidden, "editors cannot delete"},
		{"conflict", services.ErrConflict, http.StatusConflict, ""},
		{"duplicate slug", services.ErrDuplicateSlug, http.StatusConflict, ""},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestRespondErrorRecordsUnexpected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("disk full"))

	assert.Len(t, c.Errors, 1)
	assert.NotContains(t, w.Body.String(), "disk full")
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for raw, want := range map[string]uint{"17": 17, "0": 0, "abc": 0, "-3": 0} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		id, ok := paramID(c, "id")

		assert.Equal(t, want, id, raw)
		assert.Equal(t, want != 0, ok, raw)
		if !ok {
			assert.Equal(t, http.StatusNotFound, w.Code, raw)
		}
	}
}

func TestQueryHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?category=4&is_approved=false&search=x&flag=maybe", nil)

	assert.Equal(t, uint(4), queryUint(c, "category"))
	assert.Equal(t, uint(0), queryUint(c, "search"))

	approved := queryBool(c, "is_approved")
	if assert.NotNil(t, approved) {
		assert.False(t, *approved)
	}
	assert.Nil(t, queryBool(c, "flag"))
	assert.Nil(t, queryBool(c, "missing"))
}
