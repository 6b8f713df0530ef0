package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskassistant/internal/models"
	"taskassistant/internal/pdf"
	"taskassistant/internal/services"
)

type TaskHandler struct {
	service    services.TaskService
	decomposer services.DecompositionService
	pdf        pdf.Generator
	log        *zap.Logger
}

func NewTaskHandler(service services.TaskService, decomposer services.DecompositionService, gen pdf.Generator, log *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, decomposer: decomposer, pdf: gen, log: log.Named("tasks")}
}

type createTaskRequest struct {
	UserID      string           `json:"user_id" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Description *string          `json:"description"`
	Deadline    optionalDeadline `json:"deadline" swaggertype:"string"`
	Priority    string           `json:"priority"`
}

// @Summary      Create task
// @Description  Creates a task and attaches an encouraging message.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      createTaskRequest  true  "Task"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[task][create]", err)
		return
	}
	task, err := h.service.Create(c.Request.Context(), req.UserID, models.TaskCreate{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline.value,
		Priority:    models.TaskPriority(req.Priority),
	})
	if err != nil {
		respondError(c, h.log, "[task][create]", err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// @Summary      Get task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, "[task][get]", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// GET /tasks/user/:user_id
func (h *TaskHandler) ListByUser(c *gin.Context) {
	tasks, err := h.service.ListByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.log, "[task][list]", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

type updateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Deadline    optionalDeadline `json:"deadline" swaggertype:"string"`
	Priority    *string          `json:"priority"`
	Completed   *bool            `json:"completed"`
}

// @Summary      Update task
// @Description  Partial update. Setting completed=true completes every subtask.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task ID"
// @Param        task  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[task][update]", err)
		return
	}
	upd := models.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Deadline.set {
		upd.Deadline = req.Deadline.value
		upd.ClearDeadline = req.Deadline.value == nil
	}
	if req.Priority != nil {
		p := models.TaskPriority(*req.Priority)
		upd.Priority = &p
	}

	task, err := h.service.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, h.log, "[task][update]", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, "[task][delete]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// @Summary      Export task as PDF checklist
// @Tags         Tasks
// @Produce      application/pdf
// @Param        id   path  string  true  "Task ID"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id}/export [get]
func (h *TaskHandler) Export(c *gin.Context) {
	task, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, "[task][export]", err)
		return
	}
	var buf bytes.Buffer
	if err := h.pdf.TaskChecklist(&buf, task); err != nil {
		respondError(c, h.log, "[task][export]", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="task_`+task.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

type createSubtaskRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Deadline    optionalDeadline `json:"deadline" swaggertype:"string"`
	Order       int              `json:"order"`
}

// POST /tasks/:id/subtasks
func (h *TaskHandler) AddSubtask(c *gin.Context) {
	var req createSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[subtask][create]", err)
		return
	}
	task, err := h.service.AddSubtask(c.Request.Context(), c.Param("id"), models.SubtaskCreate{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline.value,
		Order:       req.Order,
	})
	if err != nil {
		respondError(c, h.log, "[subtask][create]", err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

type updateSubtaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Completed   *bool            `json:"completed"`
	Deadline    optionalDeadline `json:"deadline" swaggertype:"string"`
	Order       *int             `json:"order"`
}

// @Summary      Update subtask
// @Description  The parent task is completed exactly when all its subtasks are.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id          path      string                true  "Task ID"
// @Param        subtask_id  path      string                true  "Subtask ID"
// @Param        subtask     body      updateSubtaskRequest  true  "Fields to change"
// @Success      200         {object}  models.Task
// @Failure      404         {object}  map[string]string
// @Router       /tasks/{id}/subtasks/{subtask_id} [put]
func (h *TaskHandler) UpdateSubtask(c *gin.Context) {
	var req updateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[subtask][update]", err)
		return
	}
	task, err := h.service.UpdateSubtask(c.Request.Context(), c.Param("id"), c.Param("subtask_id"), models.SubtaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Deadline:    req.Deadline.value,
		Order:       req.Order,
	})
	if err != nil {
		respondError(c, h.log, "[subtask][update]", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id/subtasks/:subtask_id
func (h *TaskHandler) DeleteSubtask(c *gin.Context) {
	task, err := h.service.DeleteSubtask(c.Request.Context(), c.Param("id"), c.Param("subtask_id"))
	if err != nil {
		respondError(c, h.log, "[subtask][delete]", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type processTaskRequest struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
}

// @Summary      Decompose free text into a task
// @Description  Asks the model for a plan with subtasks. Falls back to a single review step when the model is unavailable.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        request  body      processTaskRequest  true  "Text and user"
// @Success      200      {object}  models.Task
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /process-task [post]
func (h *TaskHandler) ProcessTask(c *gin.Context) {
	var req processTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[task][process]", err)
		return
	}
	task, err := h.decomposer.Decompose(c.Request.Context(), req.Text, req.UserID)
	if err != nil {
		respondError(c, h.log, "[task][process]", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /emotional-support?task_id=
func (h *TaskHandler) EmotionalSupport(c *gin.Context) {
	taskID := strings.TrimSpace(c.Query("task_id"))
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_id is required"})
		return
	}
	task, err := h.service.RefreshSupport(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, h.log, "[task][support]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": task.ID, "emotional_support": task.EmotionalSupport})
}
