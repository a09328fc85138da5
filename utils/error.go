package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ValidationError reports malformed input (bad date or time format, missing fields).
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports an absent doctor, patient, schedule date, slot or booking.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ConflictError reports a state conflict, such as booking a slot that is no
// longer available or cancelling an appointment that already completed.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string {
	return e.Reason
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a service error onto the proper HTTP status:
// validation -> 400, not found -> 404, conflict -> 409, anything else -> 500.
func RespondError(c *gin.Context, err error) {
	var (
		ve ValidationError
		ne NotFoundError
		ce ConflictError
	)
	switch {
	case errors.As(err, &ve):
		JSONError(c, http.StatusBadRequest, ve.Error(), "")
	case errors.As(err, &ne):
		JSONError(c, http.StatusNotFound, ne.Error(), "")
	case errors.As(err, &ce):
		JSONError(c, http.StatusConflict, ce.Error(), "")
	default:
		GetLogger().Error("internal error", zap.Error(err))
		JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
