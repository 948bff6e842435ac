package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/internal/workflow"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- DTOs ---

type ProposeTransferRequest struct {
	TaskID       string `json:"task_id" binding:"required"`
	ToUserID     string `json:"to_user_id" binding:"required"`
	TransferType string `json:"transfer_type" binding:"required"`
	Reason       string `json:"reason"`
}

type RespondTransferRequest struct {
	Action string `json:"action" binding:"required,oneof=ACCEPT REJECT"`
	Reason string `json:"reason"`
}

type TransferHandler struct {
	transfers service.TransferService
}

func NewTransferHandler(transfers service.TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

func (h *TransferHandler) RegisterRoutes(router *gin.RouterGroup) {
	transfers := router.Group("/api/transfers", middleware.RequireAuth())
	{
		transfers.POST("", h.ProposeTransfer)
		transfers.POST("/:id/respond", h.RespondTransfer)
	}
}

// ProposeTransfer creates a pending handoff proposal for a task
func (h *TransferHandler) ProposeTransfer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req ProposeTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid task_id"))
		return
	}
	toUserID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid to_user_id"))
		return
	}

	transfer, err := h.transfers.Propose(c.Request.Context(), actor, service.ProposeTransferInput{
		TaskID:       taskID,
		ToUserID:     toUserID,
		TransferType: req.TransferType,
		Reason:       req.Reason,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, transfer))
}

// RespondTransfer applies the target user's accept/reject decision
func (h *TransferHandler) RespondTransfer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid transfer id"))
		return
	}

	var req RespondTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	transfer, err := h.transfers.Respond(c.Request.Context(), actor, id, workflow.Action(req.Action), req.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, transfer))
}
