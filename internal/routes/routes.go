package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskassistant/internal/handlers"
)

type Handlers struct {
	Users      *handlers.UserHandler
	Tasks      *handlers.TaskHandler
	Chat       *handlers.ChatHandler
	Statistics *handlers.StatisticsHandler
}

// SetupRoutes mounts the API under /api.
func SetupRoutes(r *gin.Engine, h Handlers) *gin.Engine {
	api := r.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Task Assistant API is running"})
	})

	// USERS
	users := api.Group("/users")
	{
		users.POST("", h.Users.Create)
		users.GET("/:id", h.Users.GetByID)
		users.GET("/name/:username", h.Users.GetByUsername)
	}

	// TASKS
	tasks := api.Group("/tasks")
	{
		tasks.POST("", h.Tasks.Create)
		tasks.GET("/user/:user_id", h.Tasks.ListByUser)
		tasks.GET("/:id", h.Tasks.GetByID)
		tasks.PUT("/:id", h.Tasks.Update)
		tasks.DELETE("/:id", h.Tasks.Delete)
		tasks.GET("/:id/export", h.Tasks.Export)

		tasks.POST("/:id/subtasks", h.Tasks.AddSubtask)
		tasks.PUT("/:id/subtasks/:subtask_id", h.Tasks.UpdateSubtask)
		tasks.DELETE("/:id/subtasks/:subtask_id", h.Tasks.DeleteSubtask)
	}
	api.POST("/process-task", h.Tasks.ProcessTask)
	api.POST("/emotional-support", h.Tasks.EmotionalSupport)

	// CHAT
	chat := api.Group("/chat")
	{
		chat.POST("", h.Chat.Chat)
		chat.GET("/history/:user_id", h.Chat.History)
		chat.GET("/stream/:user_id", h.Chat.Stream)
	}

	// STATISTICS
	stats := api.Group("/statistics")
	{
		stats.GET("/user/:user_id", h.Statistics.UserStatistics)
		stats.GET("/user/:user_id/feedback", h.Statistics.Feedback)
	}

	return r
}
