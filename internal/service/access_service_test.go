package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCanViewOwnRequest(t *testing.T) {
	requester := uuid.New()
	access := NewAccessService(&fakeAssignmentRepo{}, zap.NewNop())
	rec := pendingLeave(uuid.New(), requester, 1)

	assert.True(t, access.CanView(context.Background(), Actor{ID: requester, Role: model.RoleStaff}, rec))
	assert.False(t, access.CanView(context.Background(), Actor{ID: uuid.New(), Role: model.RoleStaff}, rec))
	assert.True(t, access.CanView(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager}, rec))
}

func TestCanViewTransferParticipant(t *testing.T) {
	access := NewAccessService(&fakeAssignmentRepo{}, zap.NewNop())
	target := uuid.New()
	transfer := &model.TaskTransfer{
		RequestCommon: model.RequestCommon{ID: uuid.New(), RequesterID: uuid.New(), Status: string(workflow.StatusPending)},
		TaskID:        uuid.New(),
		FromUserID:    uuid.New(),
		ToUserID:      target,
		RequestedByID: uuid.New(),
		TransferType:  model.TransferTypeReassign,
	}

	// The target never submitted the record but is a party to it
	assert.True(t, access.CanView(context.Background(), Actor{ID: target, Role: model.RoleStaff}, transfer))
	assert.False(t, access.CanView(context.Background(), Actor{ID: uuid.New(), Role: model.RoleStaff}, transfer))
}

func TestCanDecideRequiresAssignmentForStaff(t *testing.T) {
	reviewer := uuid.New()
	assignments := &fakeAssignmentRepo{
		HasAssignmentFn: func(ctx context.Context, actorID uuid.UUID, kind workflow.Kind) (bool, error) {
			return actorID == reviewer && kind == workflow.KindLeaveRequest, nil
		},
	}
	access := NewAccessService(assignments, zap.NewNop())
	rec := pendingLeave(uuid.New(), uuid.New(), 1)

	assert.NoError(t, access.CanDecide(context.Background(), Actor{ID: reviewer, Role: model.RoleStaff}, rec))
	assert.ErrorIs(t, access.CanDecide(context.Background(), Actor{ID: uuid.New(), Role: model.RoleStaff}, rec), workflow.ErrForbidden)
	assert.NoError(t, access.CanDecide(context.Background(), Actor{ID: uuid.New(), Role: model.RoleDirector}, rec))
}

// A generic finance assignee may view expense claims but only the owning
// task's designated approver may decide them.
func TestExpenseApproverGuardNarrowsDecideNotView(t *testing.T) {
	taskID := uuid.New()
	taskApprover := uuid.New()
	financeReviewer := uuid.New()

	assignments := &fakeAssignmentRepo{
		HasAssignmentFn: func(ctx context.Context, actorID uuid.UUID, kind workflow.Kind) (bool, error) {
			return kind == workflow.KindTaskExpense && (actorID == financeReviewer || actorID == taskApprover), nil
		},
	}
	tasks := &fakeTaskRepo{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Task, error) {
			return &model.Task{ID: taskID, Title: "Audit prep", AssigneeID: uuid.New(), ApproverID: taskApprover}, nil
		},
	}
	access := NewAccessService(assignments, zap.NewNop())
	access.RegisterGuard(workflow.KindTaskExpense, ExpenseApproverGuard(tasks))

	expense := &model.TaskExpense{
		RequestCommon: model.RequestCommon{ID: uuid.New(), RequesterID: uuid.New(), Status: string(workflow.StatusPending)},
		TaskID:        taskID,
		ExpenseTitle:  "printing",
		Amount:        decimal.NewFromInt(40),
	}

	finance := Actor{ID: financeReviewer, Role: model.RoleStaff}
	assert.True(t, access.CanView(context.Background(), finance, expense))
	assert.ErrorIs(t, access.CanDecide(context.Background(), finance, expense), workflow.ErrForbidden)

	assert.NoError(t, access.CanDecide(context.Background(), Actor{ID: taskApprover, Role: model.RoleStaff}, expense))

	// The guard binds management roles too
	assert.ErrorIs(t, access.CanDecide(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager}, expense), workflow.ErrForbidden)
}

func TestVisibleKinds(t *testing.T) {
	reviewer := uuid.New()
	assignments := &fakeAssignmentRepo{
		ListByActorFn: func(ctx context.Context, actorID uuid.UUID) ([]model.Assignment, error) {
			if actorID != reviewer {
				return nil, nil
			}
			return []model.Assignment{
				{ID: uuid.New(), ActorID: reviewer, Kind: string(workflow.KindSupportTicket)},
			}, nil
		},
	}
	access := NewAccessService(assignments, zap.NewNop())

	scopes, err := access.VisibleKinds(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager})
	require.NoError(t, err)
	for _, kind := range workflow.Kinds() {
		assert.Equal(t, ScopeAll, scopes[kind], "management must see all of %s", kind)
	}

	scopes, err = access.VisibleKinds(context.Background(), Actor{ID: reviewer, Role: model.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, scopes[workflow.KindSupportTicket])
	assert.Equal(t, ScopeNone, scopes[workflow.KindLeaveRequest])
	assert.Equal(t, ScopeNone, scopes[workflow.KindTaskExpense])
}
