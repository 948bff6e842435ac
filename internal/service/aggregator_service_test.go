package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// feedFixture builds 12 records spread over three kinds with strictly
// decreasing creation times, so the expected merged order is fully determined.
type feedFixture struct {
	byKind map[workflow.Kind][]model.Decidable
	// ordered holds the ids newest-first, the order the merged feed must produce
	ordered []uuid.UUID
}

func buildFeedFixture(requester uuid.UUID) feedFixture {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := feedFixture{byKind: make(map[workflow.Kind][]model.Decidable)}

	for i := 0; i < 12; i++ {
		common := model.RequestCommon{
			ID:          uuid.New(),
			Status:      string(workflow.StatusPending),
			RequesterID: requester,
			Version:     1,
			CreatedAt:   base.Add(-time.Duration(i) * time.Hour),
		}
		fx.ordered = append(fx.ordered, common.ID)

		switch i % 3 {
		case 0:
			common.Status = string(workflow.StatusOpen)
			fx.byKind[workflow.KindSupportTicket] = append(fx.byKind[workflow.KindSupportTicket],
				&model.SupportTicket{RequestCommon: common, Subject: fmt.Sprintf("ticket %d", i)})
		case 1:
			fx.byKind[workflow.KindLeaveRequest] = append(fx.byKind[workflow.KindLeaveRequest],
				&model.LeaveRequest{RequestCommon: common, LeaveType: model.LeaveTypeAnnual, StartDate: "2026-09-01", EndDate: "2026-09-02"})
		case 2:
			fx.byKind[workflow.KindSuggestion] = append(fx.byKind[workflow.KindSuggestion],
				&model.Suggestion{RequestCommon: common, Subject: fmt.Sprintf("idea %d", i)})
		}
	}
	return fx
}

func (fx feedFixture) store() *fakeRequestStore {
	return &fakeRequestStore{
		ListByKindFn: func(ctx context.Context, kind workflow.Kind) ([]model.Decidable, error) {
			return fx.byKind[kind], nil
		},
	}
}

func TestListMergesKindsNewestFirst(t *testing.T) {
	requester := uuid.New()
	fx := buildFeedFixture(requester)
	svc := NewAggregatorService(fx.store(), newTestAccess(&fakeAssignmentRepo{}), zap.NewNop())

	page, err := svc.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager}, RequestFilter{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 12, page.Total)
	require.Len(t, page.Items, 12)
	for i, item := range page.Items {
		assert.Equal(t, fx.ordered[i], item.ID, "position %d", i)
	}
	// One page mixes kinds
	kinds := map[workflow.Kind]bool{}
	for _, item := range page.Items {
		kinds[item.Kind] = true
	}
	assert.Len(t, kinds, 3)
}

func TestListPaginatesAfterMerge(t *testing.T) {
	requester := uuid.New()
	fx := buildFeedFixture(requester)
	svc := NewAggregatorService(fx.store(), newTestAccess(&fakeAssignmentRepo{}), zap.NewNop())

	page, err := svc.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager}, RequestFilter{Page: 2, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 5)
	// Page 2 of size 5 is positions 5..9 of the merged order
	for i, item := range page.Items {
		assert.Equal(t, fx.ordered[5+i], item.ID, "position %d", i)
	}

	last, err := svc.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager}, RequestFilter{Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, last.Items, 2)

	beyond, err := svc.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager}, RequestFilter{Page: 9, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 12, beyond.Total)
}

func TestListDegradesFailedKindToEmpty(t *testing.T) {
	requester := uuid.New()
	fx := buildFeedFixture(requester)
	store := &fakeRequestStore{
		ListByKindFn: func(ctx context.Context, kind workflow.Kind) ([]model.Decidable, error) {
			if kind == workflow.KindLeaveRequest {
				return nil, errors.New("relation does not exist")
			}
			return fx.byKind[kind], nil
		},
	}
	svc := NewAggregatorService(store, newTestAccess(&fakeAssignmentRepo{}), zap.NewNop())

	page, err := svc.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager}, RequestFilter{Page: 1, Limit: 20})
	require.NoError(t, err)

	// 4 of the 12 fixture records are leave requests
	assert.Equal(t, 8, page.Total)
	for _, item := range page.Items {
		assert.NotEqual(t, workflow.KindLeaveRequest, item.Kind)
	}
}

func TestListScopesStaffToOwnRecords(t *testing.T) {
	mine := uuid.New()
	fx := buildFeedFixture(uuid.New())
	// One foreign-owned feed plus a single record of our own
	ticket := &model.SupportTicket{
		RequestCommon: model.RequestCommon{
			ID:          uuid.New(),
			Status:      string(workflow.StatusOpen),
			RequesterID: mine,
			Version:     1,
			CreatedAt:   time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
		},
		Subject: "laptop battery",
	}
	fx.byKind[workflow.KindSupportTicket] = append(fx.byKind[workflow.KindSupportTicket], ticket)

	svc := NewAggregatorService(fx.store(), newTestAccess(&fakeAssignmentRepo{}), zap.NewNop())

	page, err := svc.List(context.Background(), Actor{ID: mine, Role: model.RoleStaff}, RequestFilter{Page: 1, Limit: 20})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, ticket.ID, page.Items[0].ID)
}

func TestListFilters(t *testing.T) {
	requester := uuid.New()
	fx := buildFeedFixture(requester)
	svc := NewAggregatorService(fx.store(), newTestAccess(&fakeAssignmentRepo{}), zap.NewNop())
	manager := Actor{ID: uuid.New(), Role: model.RoleManager}

	byKind, err := svc.List(context.Background(), manager, RequestFilter{Kind: string(workflow.KindSuggestion), Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 4, byKind.Total)
	for _, item := range byKind.Items {
		assert.Equal(t, workflow.KindSuggestion, item.Kind)
	}

	byStatus, err := svc.List(context.Background(), manager, RequestFilter{Status: string(workflow.StatusOpen), Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 4, byStatus.Total)

	bySearch, err := svc.List(context.Background(), manager, RequestFilter{Search: "idea 5", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, bySearch.Total)

	notMine, err := svc.List(context.Background(), manager, RequestFilter{Mine: true, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, notMine.Total)

	asOwner, err := svc.List(context.Background(), Actor{ID: requester, Role: model.RoleStaff}, RequestFilter{Mine: true, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 12, asOwner.Total)
}

func TestListRejectsUnknownKindFilter(t *testing.T) {
	svc := NewAggregatorService(&fakeRequestStore{}, newTestAccess(&fakeAssignmentRepo{}), zap.NewNop())

	_, err := svc.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager}, RequestFilter{Kind: "TIMESHEET"})
	assert.ErrorIs(t, err, workflow.ErrUnknownKind)
}

func TestListTieBreaksEqualTimestampsById(t *testing.T) {
	created := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
	a := &model.SupportTicket{RequestCommon: model.RequestCommon{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), Status: string(workflow.StatusOpen), RequesterID: uuid.New(), CreatedAt: created}, Subject: "a"}
	b := &model.LeaveRequest{RequestCommon: model.RequestCommon{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), Status: string(workflow.StatusPending), RequesterID: uuid.New(), CreatedAt: created}, LeaveType: model.LeaveTypeSick, StartDate: "2026-08-04", EndDate: "2026-08-04"}

	store := &fakeRequestStore{
		ListByKindFn: func(ctx context.Context, kind workflow.Kind) ([]model.Decidable, error) {
			switch kind {
			case workflow.KindSupportTicket:
				return []model.Decidable{a}, nil
			case workflow.KindLeaveRequest:
				return []model.Decidable{b}, nil
			default:
				return nil, nil
			}
		},
	}
	svc := NewAggregatorService(store, newTestAccess(&fakeAssignmentRepo{}), zap.NewNop())

	for i := 0; i < 5; i++ {
		page, err := svc.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleManager}, RequestFilter{Page: 1, Limit: 20})
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, a.ID, page.Items[0].ID)
		assert.Equal(t, b.ID, page.Items[1].ID)
	}
}
