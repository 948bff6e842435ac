package repository

import (
	"context"

	"backend/internal/model"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentRepository is the assignment directory: which kinds an actor may
// review beyond their global role. Lookups are never cached here — the
// resolver re-reads membership at decision time so a revoked grant takes
// effect immediately.
type AssignmentRepository interface {
	ListByActor(ctx context.Context, actorID uuid.UUID) ([]model.Assignment, error)
	HasAssignment(ctx context.Context, actorID uuid.UUID, kind workflow.Kind) (bool, error)
	List(ctx context.Context, page, limit int) ([]model.Assignment, int64, error)
	Grant(ctx context.Context, assignment *model.Assignment) error
	Revoke(ctx context.Context, id uuid.UUID) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository returns a new instance of AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) ListByActor(ctx context.Context, actorID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := GetDB(ctx, r.db).Where("actor_id = ?", actorID).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) HasAssignment(ctx context.Context, actorID uuid.UUID, kind workflow.Kind) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Assignment{}).
		Where("actor_id = ? AND kind = ?", actorID, string(kind)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *assignmentRepository) List(ctx context.Context, page, limit int) ([]model.Assignment, int64, error) {
	var assignments []model.Assignment
	var total int64

	if err := GetDB(ctx, r.db).Model(&model.Assignment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := GetDB(ctx, r.db).Preload("Actor").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (r *assignmentRepository) Grant(ctx context.Context, assignment *model.Assignment) error {
	return GetDB(ctx, r.db).Create(assignment).Error
}

func (r *assignmentRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Assignment{}).Error
}
