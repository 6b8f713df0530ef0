package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskassistant/internal/repositories"
	"taskassistant/internal/services"
	"taskassistant/internal/utils"
)

// respondError maps service errors to HTTP statuses. Unexpected errors
// are logged under tag and reported without details.
func respondError(c *gin.Context, log *zap.Logger, tag string, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrSubtaskNotFound),
		errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error(tag+"[err]", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, log *zap.Logger, tag string, err error) {
	log.Debug(tag+"[bind][err]", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// optionalDeadline tells an absent field from an explicit null. Values the
// deadline parser rejects count as absent.
type optionalDeadline struct {
	set   bool
	value *time.Time
}

func (d *optionalDeadline) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.set = true
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.New("deadline must be a string")
	}
	d.value = utils.ParseDeadline(raw)
	d.set = d.value != nil
	return nil
}
