package service

import (
	"context"
	"encoding/json"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- DTOs ---

type CreateTaskRequest struct {
	Title      string `json:"title" binding:"required"`
	ProjectID  string `json:"project_id"`
	AssigneeID string `json:"assignee_id" binding:"required"`
	ApproverID string `json:"approver_id" binding:"required"`
}

// TaskService manages the task records backing transfers and expense claims
type TaskService interface {
	CreateTask(ctx context.Context, actor Actor, req CreateTaskRequest) (*model.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListTasks(ctx context.Context, page, limit int) ([]model.Task, int64, error)
}

type taskService struct {
	repo   repository.TaskRepository
	audit  repository.AuditRepository
	logger *zap.Logger
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.TaskRepository, audit repository.AuditRepository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, audit: audit, logger: logger}
}

func (s *taskService) CreateTask(ctx context.Context, actor Actor, req CreateTaskRequest) (*model.Task, error) {
	assigneeID, err := uuid.Parse(req.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid assignee_id", workflow.ErrValidation)
	}
	approverID, err := uuid.Parse(req.ApproverID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid approver_id", workflow.ErrValidation)
	}

	task := &model.Task{
		Title:      req.Title,
		AssigneeID: assigneeID,
		ApproverID: approverID,
		Status:     model.TaskStatusActive,
	}
	if req.ProjectID != "" {
		projectID, parseErr := uuid.Parse(req.ProjectID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid project_id", workflow.ErrValidation)
		}
		task.ProjectID = &projectID
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	details, _ := json.Marshal(map[string]string{
		"assignee_id": req.AssigneeID,
		"approver_id": req.ApproverID,
	})
	entry := &model.AuditLog{
		UserID:     &actor.ID,
		Action:     model.ActionCreateTask,
		EntityID:   task.ID.String(),
		EntityName: task.Title,
		Details:    string(details),
	}
	if auditErr := s.audit.Record(ctx, entry); auditErr != nil {
		s.logger.Warn("failed to write audit log", zap.Error(auditErr))
	}

	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *taskService) ListTasks(ctx context.Context, page, limit int) ([]model.Task, int64, error) {
	return s.repo.List(ctx, page, limit)
}
