package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentHandler struct {
	assignments service.AssignmentService
}

func NewAssignmentHandler(assignments service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

func (h *AssignmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	assignments := router.Group("/api/assignments", middleware.RequireRole(model.RoleAdmin))
	{
		assignments.GET("", h.ListAssignments)
		assignments.POST("", h.GrantAssignment)
		assignments.DELETE("/:id", h.RevokeAssignment)
	}
}

// ListAssignments returns the per-kind review grants
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	params := pagination.Parse(c)

	assignments, total, err := h.assignments.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   assignments,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

// GrantAssignment gives an actor review authority over one request kind
func (h *AssignmentHandler) GrantAssignment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req service.GrantAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	assignment, err := h.assignments.Grant(c.Request.Context(), actor, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, assignment))
}

// RevokeAssignment removes a review grant; takes effect on the next decision
func (h *AssignmentHandler) RevokeAssignment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid assignment id"))
		return
	}

	if err := h.assignments.Revoke(c.Request.Context(), actor, id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"revoked": id}))
}
