package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Ingestion and storage error types.
//
// ErrCatalogConflict surfaces a uniqueness violation while creating a catalog
// entry, typically two concurrent first-sightings of the same scan code; the
// store rejects the second insert and the whole ingestion call fails.
// ErrStorageUnavailable means the backing store is unreachable or timed out.
var (
	ErrCatalogConflict    = New(http.StatusConflict, "Catalog entry already exists", nil)
	ErrStorageUnavailable = New(http.StatusServiceUnavailable, "Storage unavailable", nil)
)

// ValidationError reports a purchase item that is missing required fields.
// ItemIndex refers to the item's position in the submitted batch.
type ValidationError struct {
	ItemIndex     int      `json:"itemIndex"`
	MissingFields []string `json:"missingFields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("item %d is missing required fields: %v", e.ItemIndex, e.MissingFields)
}

// Error middleware for Gin
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *Error
			if e, ok := err.(*Error); ok {
				appErr = e
			} else {
				appErr = New(http.StatusInternalServerError, "Internal server error", err)
			}

			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
