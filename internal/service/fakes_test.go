package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"

	"github.com/google/uuid"
)

// Test doubles built on function fields so each test wires only the calls it
// expects. Unset funcs return empty results rather than panicking.

type fakeRequestStore struct {
	GetFn                   func(ctx context.Context, kind workflow.Kind, id uuid.UUID) (model.Decidable, error)
	ListByKindFn            func(ctx context.Context, kind workflow.Kind) ([]model.Decidable, error)
	InsertFn                func(ctx context.Context, rec model.Decidable) error
	ConditionalUpdateFn     func(ctx context.Context, kind workflow.Kind, id uuid.UUID, expectedVersion int64, patch repository.DecisionPatch) (model.Decidable, error)
	SetExpenseLedgerEntryFn func(ctx context.Context, expenseID uuid.UUID, entryID uuid.UUID) error
}

func (f *fakeRequestStore) Get(ctx context.Context, kind workflow.Kind, id uuid.UUID) (model.Decidable, error) {
	if f.GetFn == nil {
		return nil, fmt.Errorf("%w: %s %s", workflow.ErrNotFound, kind, id)
	}
	return f.GetFn(ctx, kind, id)
}

func (f *fakeRequestStore) ListByKind(ctx context.Context, kind workflow.Kind) ([]model.Decidable, error) {
	if f.ListByKindFn == nil {
		return nil, nil
	}
	return f.ListByKindFn(ctx, kind)
}

func (f *fakeRequestStore) Insert(ctx context.Context, rec model.Decidable) error {
	if f.InsertFn == nil {
		return nil
	}
	return f.InsertFn(ctx, rec)
}

func (f *fakeRequestStore) ConditionalUpdate(ctx context.Context, kind workflow.Kind, id uuid.UUID, expectedVersion int64, patch repository.DecisionPatch) (model.Decidable, error) {
	if f.ConditionalUpdateFn == nil {
		return nil, fmt.Errorf("unexpected ConditionalUpdate for %s %s", kind, id)
	}
	return f.ConditionalUpdateFn(ctx, kind, id, expectedVersion, patch)
}

func (f *fakeRequestStore) SetExpenseLedgerEntry(ctx context.Context, expenseID uuid.UUID, entryID uuid.UUID) error {
	if f.SetExpenseLedgerEntryFn == nil {
		return nil
	}
	return f.SetExpenseLedgerEntryFn(ctx, expenseID, entryID)
}

type fakeAssignmentRepo struct {
	ListByActorFn   func(ctx context.Context, actorID uuid.UUID) ([]model.Assignment, error)
	HasAssignmentFn func(ctx context.Context, actorID uuid.UUID, kind workflow.Kind) (bool, error)
}

func (f *fakeAssignmentRepo) ListByActor(ctx context.Context, actorID uuid.UUID) ([]model.Assignment, error) {
	if f.ListByActorFn == nil {
		return nil, nil
	}
	return f.ListByActorFn(ctx, actorID)
}

func (f *fakeAssignmentRepo) HasAssignment(ctx context.Context, actorID uuid.UUID, kind workflow.Kind) (bool, error) {
	if f.HasAssignmentFn == nil {
		return false, nil
	}
	return f.HasAssignmentFn(ctx, actorID, kind)
}

func (f *fakeAssignmentRepo) List(ctx context.Context, page, limit int) ([]model.Assignment, int64, error) {
	return nil, 0, nil
}

func (f *fakeAssignmentRepo) Grant(ctx context.Context, assignment *model.Assignment) error {
	return nil
}

func (f *fakeAssignmentRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakeTaskRepo struct {
	GetByIDFn  func(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ReassignFn func(ctx context.Context, taskID uuid.UUID, toUserID uuid.UUID) error
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *model.Task) error {
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	if f.GetByIDFn == nil {
		return nil, fmt.Errorf("%w: task %s", workflow.ErrNotFound, id)
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeTaskRepo) List(ctx context.Context, page, limit int) ([]model.Task, int64, error) {
	return nil, 0, nil
}

func (f *fakeTaskRepo) Reassign(ctx context.Context, taskID uuid.UUID, toUserID uuid.UUID) error {
	if f.ReassignFn == nil {
		return nil
	}
	return f.ReassignFn(ctx, taskID, toUserID)
}

type fakeLedgerStore struct {
	RecordExpenseFn func(ctx context.Context, entry *model.FinanceLedgerEntry) error
}

func (f *fakeLedgerStore) RecordExpense(ctx context.Context, entry *model.FinanceLedgerEntry) error {
	if f.RecordExpenseFn == nil {
		return nil
	}
	return f.RecordExpenseFn(ctx, entry)
}

func (f *fakeLedgerStore) List(ctx context.Context, page, limit int) ([]model.FinanceLedgerEntry, int64, error) {
	return nil, 0, nil
}

type fakeAuditRepo struct {
	Entries []*model.AuditLog
}

func (f *fakeAuditRepo) Record(ctx context.Context, entry *model.AuditLog) error {
	f.Entries = append(f.Entries, entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}

// fakeTxManager runs the body without a real transaction
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}
