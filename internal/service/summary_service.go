package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/workflow"

	"gorm.io/gorm"
)

// KindSummary holds the per-status counts for one request kind
type KindSummary struct {
	Kind     workflow.Kind    `json:"kind"`
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// SummaryResponse is the dashboard view of the whole request workload
type SummaryResponse struct {
	Kinds []KindSummary `json:"kinds"`
	Total int64         `json:"total"`
}

// SummaryService aggregates request counts by kind and status for the
// portal dashboard
type SummaryService interface {
	GetSummary(ctx context.Context) (SummaryResponse, error)
}

type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryService instance
func NewSummaryService(db *gorm.DB) SummaryService {
	return &summaryService{db: db}
}

// kindModels maps each kind to its table's model for aggregate queries
var kindModels = map[workflow.Kind]interface{}{
	workflow.KindSupportTicket:  &model.SupportTicket{},
	workflow.KindLeaveRequest:   &model.LeaveRequest{},
	workflow.KindAdvanceRequest: &model.AdvanceRequest{},
	workflow.KindSuggestion:     &model.Suggestion{},
	workflow.KindTaskTransfer:   &model.TaskTransfer{},
	workflow.KindTaskExpense:    &model.TaskExpense{},
}

func (s *summaryService) GetSummary(ctx context.Context) (SummaryResponse, error) {
	var response SummaryResponse

	for _, kind := range workflow.Kinds() {
		var rows []struct {
			Status string
			Count  int64
		}
		err := s.db.WithContext(ctx).Model(kindModels[kind]).
			Select("status, count(*) as count").
			Group("status").
			Scan(&rows).Error
		if err != nil {
			return SummaryResponse{}, err
		}

		summary := KindSummary{Kind: kind, ByStatus: make(map[string]int64)}
		for _, row := range rows {
			summary.ByStatus[row.Status] = row.Count
			summary.Total += row.Count
		}
		response.Kinds = append(response.Kinds, summary)
		response.Total += summary.Total
	}

	return response, nil
}
