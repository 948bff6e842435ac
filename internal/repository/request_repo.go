package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DecisionPatch is the write applied by the workflow engine when a transition
// commits. Decision fields are only populated on terminal transitions; the
// rejection reason is stored only when the caller supplied one.
type DecisionPatch struct {
	Status          workflow.Status
	DecidedBy       *uuid.UUID
	DecidedAt       *time.Time
	RejectionReason *string
}

// RequestStore is the generic query/mutation interface over the request
// record rows, keyed by kind. ConditionalUpdate is the only status-mutating
// operation and is version-conditioned: when the row no longer holds
// expectedVersion the update affects zero rows and the store reports
// workflow.ErrConflict (or ErrNotFound when the row is gone).
type RequestStore interface {
	Get(ctx context.Context, kind workflow.Kind, id uuid.UUID) (model.Decidable, error)
	ListByKind(ctx context.Context, kind workflow.Kind) ([]model.Decidable, error)
	Insert(ctx context.Context, rec model.Decidable) error
	ConditionalUpdate(ctx context.Context, kind workflow.Kind, id uuid.UUID, expectedVersion int64, patch DecisionPatch) (model.Decidable, error)
	// SetExpenseLedgerEntry records on the expense row that the finance side
	// effect already ran, making approval retries idempotent.
	SetExpenseLedgerEntry(ctx context.Context, expenseID uuid.UUID, entryID uuid.UUID) error
}

type requestStore struct {
	db *gorm.DB
}

// NewRequestStore returns a gorm-backed RequestStore
func NewRequestStore(db *gorm.DB) RequestStore {
	return &requestStore{db: db}
}

// prototype returns an empty concrete record for the kind
func prototype(kind workflow.Kind) (model.Decidable, error) {
	switch kind {
	case workflow.KindSupportTicket:
		return &model.SupportTicket{}, nil
	case workflow.KindLeaveRequest:
		return &model.LeaveRequest{}, nil
	case workflow.KindAdvanceRequest:
		return &model.AdvanceRequest{}, nil
	case workflow.KindSuggestion:
		return &model.Suggestion{}, nil
	case workflow.KindTaskTransfer:
		return &model.TaskTransfer{}, nil
	case workflow.KindTaskExpense:
		return &model.TaskExpense{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", workflow.ErrUnknownKind, kind)
	}
}

func (r *requestStore) Get(ctx context.Context, kind workflow.Kind, id uuid.UUID) (model.Decidable, error) {
	rec, err := prototype(kind)
	if err != nil {
		return nil, err
	}

	if err := GetDB(ctx, r.db).First(rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %s", workflow.ErrNotFound, kind, id)
		}
		return nil, err
	}
	return rec, nil
}

func (r *requestStore) ListByKind(ctx context.Context, kind workflow.Kind) ([]model.Decidable, error) {
	db := GetDB(ctx, r.db).Order("created_at DESC")

	switch kind {
	case workflow.KindSupportTicket:
		var rows []model.SupportTicket
		if err := db.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]model.Decidable, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	case workflow.KindLeaveRequest:
		var rows []model.LeaveRequest
		if err := db.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]model.Decidable, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	case workflow.KindAdvanceRequest:
		var rows []model.AdvanceRequest
		if err := db.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]model.Decidable, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	case workflow.KindSuggestion:
		var rows []model.Suggestion
		if err := db.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]model.Decidable, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	case workflow.KindTaskTransfer:
		var rows []model.TaskTransfer
		if err := db.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]model.Decidable, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	case workflow.KindTaskExpense:
		var rows []model.TaskExpense
		if err := db.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]model.Decidable, len(rows))
		for i := range rows {
			out[i] = &rows[i]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", workflow.ErrUnknownKind, kind)
	}
}

func (r *requestStore) Insert(ctx context.Context, rec model.Decidable) error {
	return GetDB(ctx, r.db).Create(rec).Error
}

func (r *requestStore) ConditionalUpdate(ctx context.Context, kind workflow.Kind, id uuid.UUID, expectedVersion int64, patch DecisionPatch) (model.Decidable, error) {
	proto, err := prototype(kind)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":     string(patch.Status),
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	}
	if patch.DecidedBy != nil {
		updates["decided_by"] = *patch.DecidedBy
	}
	if patch.DecidedAt != nil {
		updates["decided_at"] = *patch.DecidedAt
	}
	if patch.RejectionReason != nil {
		updates["rejection_reason"] = *patch.RejectionReason
	}

	res := GetDB(ctx, r.db).Model(proto).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Zero rows means either the record vanished or someone else won the
		// race and bumped the version. Re-read to tell the two apart.
		if _, getErr := r.Get(ctx, kind, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("%w: %s %s", workflow.ErrConflict, kind, id)
	}

	return r.Get(ctx, kind, id)
}

func (r *requestStore) SetExpenseLedgerEntry(ctx context.Context, expenseID uuid.UUID, entryID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.TaskExpense{}).
		Where("id = ?", expenseID).
		Update("ledger_entry_id", entryID).Error
}
