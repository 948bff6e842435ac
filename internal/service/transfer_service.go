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

// ProposeTransferInput carries the fields of a new task handoff proposal
type ProposeTransferInput struct {
	TaskID       uuid.UUID
	ToUserID     uuid.UUID
	TransferType string
	Reason       string
}

// TransferService is the two-party variant of the workflow engine for task
// handoff: the requester proposes, only the target accepts or rejects. On
// accept the task's assignee is repointed in the same transaction as the
// status flip. The proposer may be a manager delegating on behalf of the
// current assignee; decision authority still rests with the target alone.
type TransferService interface {
	Propose(ctx context.Context, requester Actor, input ProposeTransferInput) (*model.TaskTransfer, error)
	Respond(ctx context.Context, actor Actor, transferID uuid.UUID, action workflow.Action, reason string) (*model.TaskTransfer, error)
}

type transferService struct {
	store  repository.RequestStore
	tasks  repository.TaskRepository
	txm    repository.TransactionManager
	audit  repository.AuditRepository
	hub    Broadcaster
	logger *zap.Logger
}

// NewTransferService creates a new TransferService instance
func NewTransferService(store repository.RequestStore, tasks repository.TaskRepository, txm repository.TransactionManager, audit repository.AuditRepository, hub Broadcaster, logger *zap.Logger) TransferService {
	return &transferService{
		store:  store,
		tasks:  tasks,
		txm:    txm,
		audit:  audit,
		hub:    hub,
		logger: logger,
	}
}

func validTransferType(t string) bool {
	switch t {
	case model.TransferTypeReassign, model.TransferTypeDelegate, model.TransferTypeEscalate:
		return true
	}
	return false
}

// Propose creates a pending transfer of the task's current assignee to the
// target user. Multiple outstanding proposals for the same task are allowed;
// the only structural invariant is target != current assignee.
func (s *transferService) Propose(ctx context.Context, requester Actor, input ProposeTransferInput) (*model.TaskTransfer, error) {
	if !validTransferType(input.TransferType) {
		return nil, fmt.Errorf("%w: unknown transfer type %q", workflow.ErrValidation, input.TransferType)
	}

	task, err := s.tasks.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	if input.ToUserID == task.AssigneeID {
		return nil, fmt.Errorf("%w: target user already holds the task", workflow.ErrValidation)
	}

	transfer := &model.TaskTransfer{
		RequestCommon: model.RequestCommon{
			Status:      string(workflow.StatusPending),
			RequesterID: requester.ID,
			Version:     1,
		},
		TaskID:        input.TaskID,
		FromUserID:    task.AssigneeID,
		ToUserID:      input.ToUserID,
		RequestedByID: requester.ID,
		TransferType:  input.TransferType,
		Reason:        input.Reason,
	}

	if err := s.store.Insert(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to create transfer proposal: %w", err)
	}

	s.writeAudit(ctx, requester.ID, model.ActionProposeTransfer, transfer, map[string]interface{}{
		"task_id":       input.TaskID.String(),
		"to_user_id":    input.ToUserID.String(),
		"transfer_type": input.TransferType,
	})
	s.notify(transfer, "transfer.proposed")

	return transfer, nil
}

// Respond applies the target's accept/reject decision. Accept repoints the
// task assignee atomically with the transfer's compare-and-swap status write;
// reject leaves the task untouched and stores the optional reason.
func (s *transferService) Respond(ctx context.Context, actor Actor, transferID uuid.UUID, action workflow.Action, reason string) (*model.TaskTransfer, error) {
	spec, err := workflow.KindSpec(workflow.KindTaskTransfer)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.Get(ctx, workflow.KindTaskTransfer, transferID)
	if err != nil {
		return nil, err
	}
	transfer, ok := rec.(*model.TaskTransfer)
	if !ok {
		return nil, fmt.Errorf("%w: record %s is not a task transfer", workflow.ErrNotFound, transferID)
	}

	// Decision authority rests with the target alone, regardless of role
	if actor.ID != transfer.ToUserID {
		return nil, fmt.Errorf("%w: only the transfer target may respond", workflow.ErrForbidden)
	}

	to, err := spec.Next(transfer.CurrentStatus(), action)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	patch := repository.DecisionPatch{
		Status:    to,
		DecidedBy: &actor.ID,
		DecidedAt: &now,
	}
	if reason != "" {
		patch.RejectionReason = &reason
	}

	var updated *model.TaskTransfer
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		result, casErr := s.store.ConditionalUpdate(txCtx, workflow.KindTaskTransfer, transferID, transfer.Version, patch)
		if casErr != nil {
			return casErr
		}
		updated = result.(*model.TaskTransfer)

		if to == workflow.StatusAccepted {
			if reErr := s.tasks.Reassign(txCtx, transfer.TaskID, transfer.ToUserID); reErr != nil {
				return fmt.Errorf("failed to repoint task assignee: %w", reErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.writeAudit(ctx, actor.ID, model.ActionRespondTransfer, updated, map[string]interface{}{
		"task_id": transfer.TaskID.String(),
		"action":  action.String(),
		"status":  string(to),
		"reason":  reason,
	})
	s.notify(updated, "transfer.decided")

	return updated, nil
}

func (s *transferService) writeAudit(ctx context.Context, userID uuid.UUID, action string, transfer *model.TaskTransfer, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     &userID,
		Action:     action,
		EntityID:   transfer.ID.String(),
		EntityName: transfer.Title(),
		Details:    string(payload),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

func (s *transferService) notify(transfer *model.TaskTransfer, event string) {
	if s.hub == nil {
		return
	}
	msg, _ := json.Marshal(map[string]string{
		"event":  event,
		"kind":   workflow.KindTaskTransfer.String(),
		"id":     transfer.ID.String(),
		"status": transfer.Status,
	})
	select {
	case s.hub.GetBroadcast() <- msg:
	default:
	}
}
