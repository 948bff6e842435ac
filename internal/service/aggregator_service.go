package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestFilter narrows the merged request feed
type RequestFilter struct {
	Search string
	Status string
	Kind   string
	// Mine restricts the feed to records the actor submitted
	Mine  bool
	Page  int
	Limit int
}

// TaggedRecord is one request in the merged feed, tagged with its kind so the
// client can render kind-specific detail views
type TaggedRecord struct {
	Kind            workflow.Kind `json:"kind"`
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Status          string        `json:"status"`
	RequesterID     uuid.UUID     `json:"requester_id"`
	DecidedBy       *uuid.UUID    `json:"decided_by,omitempty"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// RequestPage is one page of the merged, filtered feed
type RequestPage struct {
	Items []TaggedRecord `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// AggregatorService merges records from every kind the actor may view into a
// single time-ordered stream. Filtering and pagination happen after the merge:
// one page can mix kinds, and page boundaries stay consistent as kinds enter
// or leave the actor's visible set.
type AggregatorService interface {
	List(ctx context.Context, actor Actor, filter RequestFilter) (RequestPage, error)
}

type aggregatorService struct {
	store  repository.RequestStore
	access AccessService
	logger *zap.Logger
}

// NewAggregatorService creates a new AggregatorService instance
func NewAggregatorService(store repository.RequestStore, access AccessService, logger *zap.Logger) AggregatorService {
	return &aggregatorService{store: store, access: access, logger: logger}
}

func (s *aggregatorService) List(ctx context.Context, actor Actor, filter RequestFilter) (RequestPage, error) {
	scopes, err := s.access.VisibleKinds(ctx, actor)
	if err != nil {
		return RequestPage{}, err
	}

	kinds := workflow.Kinds()
	if filter.Kind != "" {
		if !workflow.IsKind(filter.Kind) {
			return RequestPage{}, fmt.Errorf("%w: %s", workflow.ErrUnknownKind, filter.Kind)
		}
		kinds = []workflow.Kind{workflow.Kind(filter.Kind)}
	}

	// Per-kind fetches are order-independent reads and run concurrently.
	// A failed fetch degrades that kind to an empty contribution instead of
	// blanking the whole feed.
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		merged []TaggedRecord
	)
	for _, kind := range kinds {
		wg.Add(1)
		go func(kind workflow.Kind) {
			defer wg.Done()

			recs, listErr := s.store.ListByKind(ctx, kind)
			if listErr != nil {
				s.logger.Warn("kind fetch failed, degrading to empty",
					zap.String("kind", kind.String()), zap.Error(listErr))
				return
			}

			var tagged []TaggedRecord
			for _, rec := range recs {
				if !s.includeRecord(actor, scopes[kind], rec, filter) {
					continue
				}
				common := rec.Common()
				tagged = append(tagged, TaggedRecord{
					Kind:            kind,
					ID:              common.ID,
					Title:           rec.Title(),
					Status:          common.Status,
					RequesterID:     common.RequesterID,
					DecidedBy:       common.DecidedBy,
					DecidedAt:       common.DecidedAt,
					RejectionReason: common.RejectionReason,
					CreatedAt:       common.CreatedAt,
				})
			}

			mu.Lock()
			merged = append(merged, tagged...)
			mu.Unlock()
		}(kind)
	}
	wg.Wait()

	// Newest first; id as tie-break keeps page boundaries stable
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID.String() < merged[j].ID.String()
	})

	total := len(merged)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return RequestPage{
		Items: merged[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *aggregatorService) includeRecord(actor Actor, scope ViewScope, rec model.Decidable, filter RequestFilter) bool {
	if scope != ScopeAll && !isParty(actor, rec) {
		return false
	}
	if filter.Mine && rec.Common().RequesterID != actor.ID {
		return false
	}
	if filter.Status != "" && rec.Common().Status != filter.Status {
		return false
	}
	if filter.Search != "" && !matchesSearch(rec, filter.Search) {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match over the kind's
// searchable text fields
func matchesSearch(rec model.Decidable, term string) bool {
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(rec.Title()), needle) {
		return true
	}
	for _, field := range rec.SearchText() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
