package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks service.TaskService
}

func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/api/tasks")
	{
		tasks.GET("", middleware.RequireAuth(), h.ListTasks)
		tasks.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleTeamLead), h.CreateTask)
	}
}

// ListTasks returns paginated task records
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := pagination.Parse(c)

	tasks, total, err := h.tasks.ListTasks(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   tasks,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

// CreateTask creates a task with its assignee and designated expense approver
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), actor, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, task))
}
