package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hoteldine/apperrors"
)

// JSONResponse is the uniform envelope every endpoint answers with.
type JSONResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Success:   code >= 200 && code < 300,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Success:   false,
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}

// RespondAppError maps a service error to its stable HTTP status. Validation
// errors carry the per-field messages in the errors array.
func RespondAppError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		ErrorLogger.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondError(c, status, err)
		return
	}
	c.JSON(status, JSONResponse{
		Success:   false,
		Message:   err.Error(),
		Errors:    apperrors.FieldsOf(err),
		Timestamp: time.Now(),
	})
}
