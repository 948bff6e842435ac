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

// Broadcaster pushes fire-and-forget events to connected portal clients
type Broadcaster interface {
	GetBroadcast() chan []byte
}

// RequestService is the workflow engine: it validates and applies status
// transitions for any request kind, parameterized only by the kind registry.
// Task transfers carry an extra in-transaction task mutation and are exposed
// through TransferService instead.
type RequestService interface {
	Submit(ctx context.Context, rec model.Decidable) (model.Decidable, error)
	Decide(ctx context.Context, actor Actor, kind workflow.Kind, id uuid.UUID, action workflow.Action, reason string) (model.Decidable, error)
	Get(ctx context.Context, actor Actor, kind workflow.Kind, id uuid.UUID) (model.Decidable, error)
}

type requestService struct {
	store      repository.RequestStore
	access     AccessService
	dispatcher *SideEffectDispatcher
	audit      repository.AuditRepository
	hub        Broadcaster
	logger     *zap.Logger
}

// NewRequestService creates a new RequestService instance
func NewRequestService(store repository.RequestStore, access AccessService, dispatcher *SideEffectDispatcher, audit repository.AuditRepository, hub Broadcaster, logger *zap.Logger) RequestService {
	return &requestService{
		store:      store,
		access:     access,
		dispatcher: dispatcher,
		audit:      audit,
		hub:        hub,
		logger:     logger,
	}
}

// Submit creates a request in its kind's initial status. Subject fields are
// validated at the HTTP binding layer; only structural checks happen here.
func (s *requestService) Submit(ctx context.Context, rec model.Decidable) (model.Decidable, error) {
	spec, err := workflow.KindSpec(rec.Kind())
	if err != nil {
		return nil, err
	}

	common := rec.Common()
	if common.RequesterID == uuid.Nil {
		return nil, fmt.Errorf("%w: requester is required", workflow.ErrValidation)
	}
	common.Status = string(spec.Initial)
	common.Version = 1

	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", rec.Kind(), err)
	}

	s.writeAudit(ctx, &common.RequesterID, model.ActionSubmitRequest, rec, map[string]interface{}{
		"kind": rec.Kind().String(),
	})
	s.notify(rec, "request.submitted")

	return rec, nil
}

// Decide applies one status transition: load with current version, authorize,
// consult the registry for legality, conditional write, then run the side
// effects registered for the target status. A lost version race returns
// ErrConflict with no mutation and no side effects.
func (s *requestService) Decide(ctx context.Context, actor Actor, kind workflow.Kind, id uuid.UUID, action workflow.Action, reason string) (model.Decidable, error) {
	if kind == workflow.KindTaskTransfer {
		return nil, fmt.Errorf("%w: task transfers are decided through the transfer endpoints", workflow.ErrValidation)
	}

	spec, err := workflow.KindSpec(kind)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if err := s.access.CanDecide(ctx, actor, rec); err != nil {
		return nil, err
	}

	common := rec.Common()
	to, err := spec.Next(common.CurrentStatus(), action)
	if err != nil {
		return nil, err
	}

	for _, field := range spec.RequiredFields(action) {
		if field == "rejection_reason" && reason == "" {
			return nil, fmt.Errorf("%w: %s is required for %s", workflow.ErrValidation, field, action)
		}
	}

	patch := repository.DecisionPatch{Status: to}
	if spec.IsTerminal(to) {
		now := time.Now()
		patch.DecidedBy = &actor.ID
		patch.DecidedAt = &now
		if reason != "" {
			patch.RejectionReason = &reason
		}
	}

	updated, err := s.store.ConditionalUpdate(ctx, kind, id, common.Version, patch)
	if err != nil {
		return nil, err
	}

	s.writeAudit(ctx, &actor.ID, model.ActionDecideRequest, updated, map[string]interface{}{
		"kind":   kind.String(),
		"action": action.String(),
		"status": string(to),
		"reason": reason,
	})
	s.notify(updated, "request.decided")

	if err := s.dispatcher.Fire(ctx, kind, to, updated, actor); err != nil {
		// The status change stands; the dependent write is surfaced for
		// manual reconciliation, never rolled back.
		s.logger.Error("side effect failed after committed transition",
			zap.String("kind", kind.String()),
			zap.String("id", id.String()),
			zap.String("status", string(to)),
			zap.Error(err))
		return updated, fmt.Errorf("%w: %v", workflow.ErrSideEffectFailed, err)
	}

	return updated, nil
}

func (s *requestService) Get(ctx context.Context, actor Actor, kind workflow.Kind, id uuid.UUID) (model.Decidable, error) {
	rec, err := s.store.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !s.access.CanView(ctx, actor, rec) {
		return nil, fmt.Errorf("%w: no view access to this request", workflow.ErrForbidden)
	}
	return rec, nil
}

// writeAudit records the action best-effort; audit failures never fail the operation
func (s *requestService) writeAudit(ctx context.Context, userID *uuid.UUID, action string, rec model.Decidable, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityID:   rec.Common().ID.String(),
		EntityName: rec.Title(),
		Details:    string(payload),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

// notify broadcasts a fire-and-forget event; delivery is not guaranteed
func (s *requestService) notify(rec model.Decidable, event string) {
	if s.hub == nil {
		return
	}
	msg, _ := json.Marshal(map[string]string{
		"event":  event,
		"kind":   rec.Kind().String(),
		"id":     rec.Common().ID.String(),
		"status": rec.Common().Status,
	})
	select {
	case s.hub.GetBroadcast() <- msg:
	default:
	}
}
