package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondAppError maps the error taxonomy to an HTTP status. Store
// failures are logged with their cause and answered generically.
func RespondAppError(c *gin.Context, err error) {
	code := StatusForError(err)
	if code == http.StatusInternalServerError {
		if ErrorLogger != nil {
			ErrorLogger.Printf("store error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		RespondError(c, code, errors.New("error interno, intenta más tarde"))
		return
	}
	RespondError(c, code, err)
}

// FormatDate renders a timestamp the way the client screens show it.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatTime renders the clock portion of a timestamp.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}
