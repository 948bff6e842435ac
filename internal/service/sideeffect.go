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

// SideEffectHook is a mutation in another subsystem triggered when a request
// reaches a specific status. Hooks run after the status write has committed;
// they must be idempotent under retries of the same already-applied decision.
type SideEffectHook func(ctx context.Context, rec model.Decidable, actor Actor) error

type hookKey struct {
	Kind workflow.Kind
	To   workflow.Status
}

// SideEffectDispatcher holds the hooks registered per (kind, to-status) pair
// and runs them from the successful compare-and-swap path of the engine.
type SideEffectDispatcher struct {
	hooks  map[hookKey][]SideEffectHook
	logger *zap.Logger
}

// NewSideEffectDispatcher creates an empty dispatcher
func NewSideEffectDispatcher(logger *zap.Logger) *SideEffectDispatcher {
	return &SideEffectDispatcher{
		hooks:  make(map[hookKey][]SideEffectHook),
		logger: logger,
	}
}

// Register adds a hook for the (kind, to-status) pair
func (d *SideEffectDispatcher) Register(kind workflow.Kind, to workflow.Status, hook SideEffectHook) {
	key := hookKey{Kind: kind, To: to}
	d.hooks[key] = append(d.hooks[key], hook)
}

// Fire runs the hooks registered for the transition. The first failing hook
// stops the chain and its error is surfaced to the caller.
func (d *SideEffectDispatcher) Fire(ctx context.Context, kind workflow.Kind, to workflow.Status, rec model.Decidable, actor Actor) error {
	for _, hook := range d.hooks[hookKey{Kind: kind, To: to}] {
		if err := hook(ctx, rec, actor); err != nil {
			return err
		}
	}
	return nil
}

// ExpenseLedgerHook builds the finance ledger entry for an approved task
// expense: amount/currency/category from the claim, employee from the
// requester, task/project linkage from the owning task, approver from the
// deciding actor. The ledger lives in a separate storage domain, so the entry
// is written after the approval committed and the expense row records the
// created entry id — a retried approval with the marker already set is a no-op.
func ExpenseLedgerHook(store repository.RequestStore, ledger repository.LedgerStore, tasks repository.TaskRepository, logger *zap.Logger) SideEffectHook {
	return func(ctx context.Context, rec model.Decidable, actor Actor) error {
		expense, ok := rec.(*model.TaskExpense)
		if !ok {
			return fmt.Errorf("ledger hook fired for non-expense record %s", rec.Common().ID)
		}

		if expense.LedgerEntryID != nil {
			logger.Info("ledger entry already recorded, skipping",
				zap.String("expense_id", expense.ID.String()),
				zap.String("ledger_entry_id", expense.LedgerEntryID.String()))
			return nil
		}

		task, err := tasks.GetByID(ctx, expense.TaskID)
		if err != nil {
			return fmt.Errorf("failed to load task for ledger entry: %w", err)
		}

		entry := &model.FinanceLedgerEntry{
			ID:           uuid.New(),
			Amount:       expense.Amount,
			Currency:     expense.Currency,
			Category:     expense.Category,
			Description:  task.Title + " - " + expense.ExpenseTitle,
			EmployeeID:   expense.RequesterID,
			TaskID:       expense.TaskID,
			ProjectID:    task.ProjectID,
			ApprovedByID: actor.ID,
		}
		if err := ledger.RecordExpense(ctx, entry); err != nil {
			return fmt.Errorf("failed to record ledger entry: %w", err)
		}

		if err := store.SetExpenseLedgerEntry(ctx, expense.ID, entry.ID); err != nil {
			// The entry exists but the marker write failed; surface it so
			// operators can reconcile instead of risking a duplicate later.
			return fmt.Errorf("ledger entry %s created but marker write failed: %w", entry.ID, err)
		}
		expense.LedgerEntryID = &entry.ID

		logger.Info("ledger entry recorded for approved expense",
			zap.String("expense_id", expense.ID.String()),
			zap.String("ledger_entry_id", entry.ID.String()),
			zap.String("approved_by", actor.ID.String()))
		return nil
	}
}
