package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskassistant/internal/models"
	"taskassistant/internal/services"
	"taskassistant/internal/utils"
)

type UserHandler struct {
	service   services.UserService
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *zap.Logger
}

// NewUserHandler issues access tokens on sign-up only when jwtSecret is
// non-empty.
func NewUserHandler(service services.UserService, jwtSecret []byte, tokenTTL time.Duration, log *zap.Logger) *UserHandler {
	return &UserHandler{service: service, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log.Named("users")}
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
}

type createUserResponse struct {
	*models.User
	AccessToken string `json:"access_token,omitempty"`
}

// @Summary      Create user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      createUserRequest  true  "Username"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[user][create]", err)
		return
	}
	user, err := h.service.Create(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, h.log, "[user][create]", err)
		return
	}

	resp := createUserResponse{User: user}
	if len(h.jwtSecret) > 0 {
		tok, err := utils.IssueAccessToken(h.jwtSecret, user.ID, h.tokenTTL)
		if err != nil {
			h.log.Warn("[user][create][token][err]", zap.Error(err))
		} else {
			resp.AccessToken = tok
		}
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary      Get user by id
// @Tags         Users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, "[user][get]", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /users/name/:username
func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.log, "[user][by_name]", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
