package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestSendFieldErrorsCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Header("X-Request-ID", "req-42")

	SendFieldErrors(c, map[string]string{"title": "This field is required."})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())
	var body ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body.RequestID)
	assert.Equal(t, "This field is required.", body.Details["title"])
}

func TestSendPaginated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendPaginated(c, []int{1, 2}, 1, 2, 5)

	var body PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalPages)
	assert.True(t, body.HasMore)
	assert.Equal(t, int64(5), body.Total)
}

func TestValidators(t *testing.T) {
	assert.True(t, IsValidEmail("editor@news.example.com"))
	assert.False(t, IsValidEmail("editor@"))

	assert.True(t, IsValidPassword("Secret1"))
	assert.True(t, IsValidPassword("abc12!"))
	assert.False(t, IsValidPassword("abcdef"))
	assert.False(t, IsValidPassword("Ab1"))

	assert.True(t, IsValidURL("https://cdn.example.com/a.jpg"))
	assert.False(t, IsValidURL("/relative/a.jpg"))
	assert.False(t, IsValidURL("ftp://example.com/a.jpg"))
}
