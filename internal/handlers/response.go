package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/internal/apperr"
)

// apiResponse is the success envelope.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// apiError is the failure envelope.
type apiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, apiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func errorBody(status int, message string) apiError {
	return apiError{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	}
}

// fail is the single error translator: any error becomes the JSON error
// envelope with the matching status, defaulting to 500.
func (h *Handler) fail(c *gin.Context, err error, logKey string, kv ...interface{}) {
	e := apperr.From(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if e.Status >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(e.Status, errorBody(e.Status, e.Message))
}

// bindJSONOrBadRequest binds the request body into dst and writes the 400
// envelope on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, err.Error()))
		return false
	}
	return true
}
