package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid credentials"`
}

// DetailResponse represents a standard informational payload
type DetailResponse struct {
	Detail string `json:"detail" example:"Logout successful"`
}

// FieldErrors maps field names to one or more validation messages,
// e.g. {"title": ["This field is required."]}
type FieldErrors map[string][]string

// Error sends an error response with a custom status code and message
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// Detail sends a 200 OK response with a detail message
func Detail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, DetailResponse{Detail: message})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// ValidationFailed sends a 400 response with per-field error messages
func ValidationFailed(c *gin.Context, errs FieldErrors) {
	c.JSON(http.StatusBadRequest, errs)
}

// BindJSONError handles JSON decode errors in request bodies
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request format")
}
