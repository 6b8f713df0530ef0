package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskassistant/internal/realtime"
	"taskassistant/internal/services"
)

type ChatHandler struct {
	service services.ChatService
	users   services.UserService
	hub     *realtime.TaskHub
	log     *zap.Logger
}

func NewChatHandler(service services.ChatService, users services.UserService, hub *realtime.TaskHub, log *zap.Logger) *ChatHandler {
	return &ChatHandler{service: service, users: users, hub: hub, log: log.Named("chat")}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
}

// @Summary      Talk to the assistant
// @Description  The assistant may create or decompose tasks through tools. Created tasks are returned in created_tasks.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      chatRequest  true  "Message"
// @Success      200      {object}  services.ChatResult
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[chat][send]", err)
		return
	}
	res, err := h.service.Chat(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		respondError(c, h.log, "[chat][send]", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /chat/history/:user_id
func (h *ChatHandler) History(c *gin.Context) {
	msgs, err := h.service.History(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.log, "[chat][history]", err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// Stream upgrades to a websocket that receives task_created events for
// the user until the client disconnects.
func (h *ChatHandler) Stream(c *gin.Context) {
	userID := c.Param("user_id")
	if _, err := h.users.GetByID(c.Request.Context(), userID); err != nil {
		respondError(c, h.log, "[chat][stream]", err)
		return
	}
	conn, err := realtime.Upgrade(c.Writer, c.Request)
	if err != nil {
		h.log.Warn("[chat][stream][upgrade][err]", zap.Error(err))
		return
	}
	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)

	h.log.Info("[chat][stream][open]", zap.String("user_id", userID))
	_ = conn.ReadUntilClosed()
	h.log.Info("[chat][stream][closed]", zap.String("user_id", userID))
}
