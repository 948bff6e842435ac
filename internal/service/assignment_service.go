package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- DTOs ---

type GrantAssignmentRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
	Kind    string `json:"kind" binding:"required"`
}

type AssignmentResponse struct {
	ID        string `json:"id"`
	ActorID   string `json:"actor_id"`
	ActorName string `json:"actor_name"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

// AssignmentService manages the per-kind review grants that extend an actor's
// authority beyond their global role
type AssignmentService interface {
	List(ctx context.Context, page, limit int) ([]AssignmentResponse, int64, error)
	Grant(ctx context.Context, grantedBy Actor, req GrantAssignmentRequest) (*AssignmentResponse, error)
	Revoke(ctx context.Context, revokedBy Actor, id uuid.UUID) error
}

type assignmentService struct {
	repo   repository.AssignmentRepository
	audit  repository.AuditRepository
	logger *zap.Logger
}

// NewAssignmentService creates a new AssignmentService instance
func NewAssignmentService(repo repository.AssignmentRepository, audit repository.AuditRepository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, audit: audit, logger: logger}
}

func (s *assignmentService) List(ctx context.Context, page, limit int) ([]AssignmentResponse, int64, error) {
	assignments, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		result = append(result, toAssignmentResponse(a))
	}
	return result, total, nil
}

func (s *assignmentService) Grant(ctx context.Context, grantedBy Actor, req GrantAssignmentRequest) (*AssignmentResponse, error) {
	actorID, err := uuid.Parse(req.ActorID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid actor_id", workflow.ErrValidation)
	}
	if !workflow.IsKind(req.Kind) {
		return nil, fmt.Errorf("%w: %s", workflow.ErrUnknownKind, req.Kind)
	}

	assignment := &model.Assignment{
		ActorID: actorID,
		Kind:    req.Kind,
	}
	if err := s.repo.Grant(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to grant assignment: %w", err)
	}

	s.writeAudit(ctx, grantedBy, model.ActionGrantAssignment, assignment)

	resp := toAssignmentResponse(*assignment)
	return &resp, nil
}

func (s *assignmentService) Revoke(ctx context.Context, revokedBy Actor, id uuid.UUID) error {
	if err := s.repo.Revoke(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke assignment: %w", err)
	}

	s.writeAudit(ctx, revokedBy, model.ActionRevokeAssignment, &model.Assignment{ID: id})
	return nil
}

func (s *assignmentService) writeAudit(ctx context.Context, actor Actor, action string, assignment *model.Assignment) {
	details, _ := json.Marshal(map[string]string{
		"actor_id": assignment.ActorID.String(),
		"kind":     assignment.Kind,
	})
	entry := &model.AuditLog{
		UserID:   &actor.ID,
		Action:   action,
		EntityID: assignment.ID.String(),
		Details:  string(details),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

func toAssignmentResponse(a model.Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:        a.ID.String(),
		ActorID:   a.ActorID.String(),
		Kind:      a.Kind,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.Actor != nil {
		resp.ActorName = a.Actor.Username
	}
	return resp
}
