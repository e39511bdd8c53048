package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// requestIDHeader mirrors middleware.RequestIDHeader; utils cannot import middleware.
const requestIDHeader = "X-Request-ID"

type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Code      int    `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ValidationErrorResponse carries per-field messages.
type ValidationErrorResponse struct {
	Error     string            `json:"error"`
	Code      int               `json:"code"`
	Details   map[string]string `json:"validation_errors"`
	RequestID string            `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PaginatedResponse is the envelope of the private listings.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	HasMore    bool        `json:"has_more"`
}

func requestID(c *gin.Context) string {
	return c.Writer.Header().Get(requestIDHeader)
}

func SendError(c *gin.Context, status int, err string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err,
		Code:      status,
		RequestID: requestID(c),
	})
}

func SendValidationError(c *gin.Context, err string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:     "Validation failed",
		Message:   err,
		Code:      http.StatusBadRequest,
		RequestID: requestID(c),
	})
}

func SendFieldErrors(c *gin.Context, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:     "Validation failed",
		Code:      http.StatusBadRequest,
		Details:   fields,
		RequestID: requestID(c),
	})
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message, Data: data})
}

// TotalPages is the page count for total rows at limit rows per page.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func SendPaginated(c *gin.Context, data interface{}, page, limit int, total int64) {
	totalPages := TotalPages(total, limit)
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	})
}
