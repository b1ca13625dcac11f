package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body
type ErrorResponse struct {
	Error string `json:"error"`          // human readable message
	Code  string `json:"code,omitempty"` // stable code from codes.go
}

// ValidationErrorResponse carries per-field messages
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields"`
}

// RespondWithError writes an ErrorResponse and aborts the chain
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error: message,
		Code:  errorCode,
	})
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

// Conflict answers a delete that is blocked by dependent rows. The record is left untouched.
func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithValidationError writes a 400 with field level messages
func RespondWithValidationError(c *gin.Context, fields map[string][]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:  "Invalid request data",
		Code:   ValidationInvalidInput,
		Fields: fields,
	})
}

// ParseAndRespond maps err with ParseError and writes it using a status derived from the code.
func ParseAndRespond(c *gin.Context, err error, resource string) {
	info := ParseError(err, resource)
	RespondWithError(c, StatusFor(info.Code), info.Code, info.Message)
}

// StatusFor returns the HTTP status used for an error code
func StatusFor(code string) int {
	switch code {
	case ResourceNotFound, CollectionNotFound, ProductNotFound, ReviewNotFound,
		CartNotFound, CartItemNotFound, OrderNotFound, PageInvalid:
		return http.StatusNotFound
	case ResourceConflict, ResourceAlreadyExists, CollectionNotEmpty, ProductInUse:
		return http.StatusConflict
	case ValidationInvalidInput, ValidationInvalidID, ValidationInvalidFormat,
		ValidationInvalidRange, ValidationRequired, CartEmpty:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
