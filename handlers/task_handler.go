package handlers

import (
	"net/http"

	"TodoAPI/middlewares"
	"TodoAPI/models"
	"TodoAPI/services"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves /api/tasks. All routes sit behind middlewares.Auth.
type TaskHandler struct {
	svc services.TaskService
}

func NewTaskHandler(svc services.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// ---------------- CRUD ----------------

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// List handles GET /api/tasks?status=&priority=.
func (h *TaskHandler) List(c *gin.Context) {
	var q models.TaskListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	items, err := h.svc.List(c.Request.Context(), middlewares.UserID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), middlewares.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Update handles PUT /api/tasks/:id (partial: only sent fields change).
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), middlewares.UserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleComplete handles PATCH /api/tasks/:id/complete.
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.ToggleComplete(c.Request.Context(), middlewares.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Export handles POST /api/tasks/export.
func (h *TaskHandler) Export(c *gin.Context) {
	out, err := h.svc.Export(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}
