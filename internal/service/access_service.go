package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor is the identity a decision or listing is evaluated for
type Actor struct {
	ID   uuid.UUID
	Role string
}

// DecideGuard is a record-level capability predicate layered on top of the
// kind-level assignment check. Kind specializations register their own guard
// (the task-expense designated-approver rule) instead of special-casing the
// resolver.
type DecideGuard func(ctx context.Context, actor Actor, rec model.Decidable) error

// ViewScope describes how much of a kind an actor may see
type ViewScope int

const (
	// ScopeNone: only records the actor is a party to (requester/participant)
	ScopeNone ViewScope = iota
	// ScopeAll: every record of the kind
	ScopeAll
)

// AccessService resolves view/decide capability per actor and request kind.
// Membership is read fresh on every call, never cached: assignments can change
// between listing a request and acting on it.
type AccessService interface {
	CanView(ctx context.Context, actor Actor, rec model.Decidable) bool
	CanDecide(ctx context.Context, actor Actor, rec model.Decidable) error
	// VisibleKinds returns the per-kind view scope used by the aggregator
	VisibleKinds(ctx context.Context, actor Actor) (map[workflow.Kind]ViewScope, error)
	RegisterGuard(kind workflow.Kind, guard DecideGuard)
}

type accessService struct {
	assignments repository.AssignmentRepository
	guards      map[workflow.Kind]DecideGuard
	logger      *zap.Logger
}

// NewAccessService creates a new AccessService instance
func NewAccessService(assignments repository.AssignmentRepository, logger *zap.Logger) AccessService {
	return &accessService{
		assignments: assignments,
		guards:      make(map[workflow.Kind]DecideGuard),
		logger:      logger,
	}
}

func (s *accessService) RegisterGuard(kind workflow.Kind, guard DecideGuard) {
	s.guards[kind] = guard
}

// isParty reports whether the actor created the record or is otherwise a
// direct participant (e.g. the target of a task transfer)
func isParty(actor Actor, rec model.Decidable) bool {
	if rec.Common().RequesterID == actor.ID {
		return true
	}
	if p, ok := rec.(model.Participant); ok && p.InvolvesUser(actor.ID) {
		return true
	}
	return false
}

func (s *accessService) CanView(ctx context.Context, actor Actor, rec model.Decidable) bool {
	if isParty(actor, rec) {
		return true
	}
	if model.IsManagementRole(actor.Role) {
		return true
	}

	ok, err := s.assignments.HasAssignment(ctx, actor.ID, rec.Kind())
	if err != nil {
		s.logger.Warn("assignment lookup failed",
			zap.String("actor", actor.ID.String()),
			zap.String("kind", rec.Kind().String()),
			zap.Error(err))
		return false
	}
	return ok
}

func (s *accessService) CanDecide(ctx context.Context, actor Actor, rec model.Decidable) error {
	if !model.IsManagementRole(actor.Role) {
		ok, err := s.assignments.HasAssignment(ctx, actor.ID, rec.Kind())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: no %s review authority", workflow.ErrForbidden, rec.Kind())
		}
	}

	if guard, ok := s.guards[rec.Kind()]; ok {
		return guard(ctx, actor, rec)
	}
	return nil
}

func (s *accessService) VisibleKinds(ctx context.Context, actor Actor) (map[workflow.Kind]ViewScope, error) {
	scopes := make(map[workflow.Kind]ViewScope, len(workflow.Kinds()))
	for _, kind := range workflow.Kinds() {
		scopes[kind] = ScopeNone
	}

	if model.IsManagementRole(actor.Role) {
		for kind := range scopes {
			scopes[kind] = ScopeAll
		}
		return scopes, nil
	}

	assignments, err := s.assignments.ListByActor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if workflow.IsKind(a.Kind) {
			scopes[workflow.Kind(a.Kind)] = ScopeAll
		}
	}
	return scopes, nil
}

// ExpenseApproverGuard narrows task-expense decisions to the owning task's
// designated approver. A generic finance assignee can still view the claim
// but cannot decide it.
func ExpenseApproverGuard(tasks repository.TaskRepository) DecideGuard {
	return func(ctx context.Context, actor Actor, rec model.Decidable) error {
		expense, ok := rec.(*model.TaskExpense)
		if !ok {
			return nil
		}
		task, err := tasks.GetByID(ctx, expense.TaskID)
		if err != nil {
			return err
		}
		if task.ApproverID != actor.ID {
			return fmt.Errorf("%w: only the task's designated approver may decide this expense", workflow.ErrForbidden)
		}
		return nil
	}
}
