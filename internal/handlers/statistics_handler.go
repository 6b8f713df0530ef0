package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskassistant/internal/services"
)

type StatisticsHandler struct {
	service services.StatisticsService
	log     *zap.Logger
}

func NewStatisticsHandler(service services.StatisticsService, log *zap.Logger) *StatisticsHandler {
	return &StatisticsHandler{service: service, log: log.Named("statistics")}
}

// @Summary      User statistics
// @Tags         Statistics
// @Produce      json
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  models.UserStatistics
// @Failure      404      {object}  map[string]string
// @Router       /statistics/user/{user_id} [get]
func (h *StatisticsHandler) UserStatistics(c *gin.Context) {
	st, err := h.service.UserStatistics(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.log, "[stats][get]", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Coaching feedback
// @Description  Cached per statistics snapshot for one hour.
// @Tags         Statistics
// @Produce      json
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  models.FeedbackResponse
// @Failure      404      {object}  map[string]string
// @Router       /statistics/user/{user_id}/feedback [get]
func (h *StatisticsHandler) Feedback(c *gin.Context) {
	fb, err := h.service.Feedback(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.log, "[stats][feedback]", err)
		return
	}
	c.JSON(http.StatusOK, fb)
}
