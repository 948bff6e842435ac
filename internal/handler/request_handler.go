package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/internal/workflow"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Submission DTOs, one per kind ---

type SubmitTicketRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type SubmitAdvanceRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency"`
	Reason   string          `json:"reason"`
}

type SubmitSuggestionRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

type SubmitExpenseRequest struct {
	TaskID   string          `json:"task_id" binding:"required"`
	Title    string          `json:"title" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency"`
	Category string          `json:"category"`
}

type DecisionRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

type RequestHandler struct {
	requests   service.RequestService
	aggregator service.AggregatorService
	summary    service.SummaryService
}

func NewRequestHandler(requests service.RequestService, aggregator service.AggregatorService, summary service.SummaryService) *RequestHandler {
	return &RequestHandler{requests: requests, aggregator: aggregator, summary: summary}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/requests", middleware.RequireAuth())
	{
		requests.GET("", h.ListRequests)
		requests.GET("/summary", h.GetSummary)
		requests.POST("/:kind", h.SubmitRequest)
		requests.GET("/:kind/:id", h.GetRequest)
		requests.POST("/:kind/:id/decision", h.DecideRequest)
	}
}

// ListRequests returns the merged, filtered, paginated feed of every request
// the actor may view
func (h *RequestHandler) ListRequests(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	params := pagination.Parse(c)
	filter := service.RequestFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Kind:   c.Query("kind"),
		Mine:   c.Query("mine") == "true",
		Page:   params.Page,
		Limit:  params.Limit,
	}

	page, err := h.aggregator.List(c.Request.Context(), actor, filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   page.Items,
		"total":  page.Total,
		"page":   page.Page,
		"limit":  page.Limit,
	})
}

// GetSummary returns request counts by kind and status
func (h *RequestHandler) GetSummary(c *gin.Context) {
	summary, err := h.summary.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// SubmitRequest creates a new request of the given kind in its initial status
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	rec, err := h.bindSubmission(c, workflow.Kind(c.Param("kind")), actor)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	created, err := h.requests.Submit(c.Request.Context(), rec)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// GetRequest returns a single request the actor may view
func (h *RequestHandler) GetRequest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request id"))
		return
	}

	rec, err := h.requests.Get(c.Request.Context(), actor, workflow.Kind(c.Param("kind")), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// DecideRequest applies one status transition to a request
func (h *RequestHandler) DecideRequest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request id"))
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	rec, err := h.requests.Decide(c.Request.Context(), actor, workflow.Kind(c.Param("kind")), id, workflow.Action(req.Action), req.Reason)
	if err != nil {
		// A failed dependent write still returns the committed record so the
		// client can render the approved state alongside the failure
		status := statusForError(err)
		if rec != nil {
			c.JSON(status, gin.H{
				"status": "error",
				"error":  err.Error(),
				"data":   rec,
			})
			return
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// bindSubmission binds the kind-specific payload into its concrete record
func (h *RequestHandler) bindSubmission(c *gin.Context, kind workflow.Kind, actor service.Actor) (model.Decidable, error) {
	common := model.RequestCommon{RequesterID: actor.ID}

	switch kind {
	case workflow.KindSupportTicket:
		var req SubmitTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		if req.Category == "" {
			req.Category = model.TicketCategoryOther
		}
		return &model.SupportTicket{
			RequestCommon: common,
			Subject:       req.Subject,
			Description:   req.Description,
			Category:      req.Category,
		}, nil

	case workflow.KindLeaveRequest:
		var req SubmitLeaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return &model.LeaveRequest{
			RequestCommon: common,
			LeaveType:     req.LeaveType,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			Reason:        req.Reason,
		}, nil

	case workflow.KindAdvanceRequest:
		var req SubmitAdvanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		if req.Currency == "" {
			req.Currency = "TRY"
		}
		return &model.AdvanceRequest{
			RequestCommon: common,
			Amount:        req.Amount,
			Currency:      req.Currency,
			Reason:        req.Reason,
		}, nil

	case workflow.KindSuggestion:
		var req SubmitSuggestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		if req.Category == "" {
			req.Category = model.SuggestionCategorySuggestion
		}
		return &model.Suggestion{
			RequestCommon: common,
			Subject:       req.Subject,
			Body:          req.Body,
			Category:      req.Category,
		}, nil

	case workflow.KindTaskExpense:
		var req SubmitExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		taskID, err := uuid.Parse(req.TaskID)
		if err != nil {
			return nil, err
		}
		if req.Currency == "" {
			req.Currency = "TRY"
		}
		if req.Category == "" {
			req.Category = model.ExpenseCategoryOther
		}
		return &model.TaskExpense{
			RequestCommon: common,
			TaskID:        taskID,
			ExpenseTitle:  req.Title,
			Amount:        req.Amount,
			Currency:      req.Currency,
			Category:      req.Category,
		}, nil

	default:
		// Task transfers are proposed through /api/transfers
		return nil, workflow.ErrUnknownKind
	}
}
