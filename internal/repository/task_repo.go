package repository

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository defines the interface for data access of Task entities
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, page, limit int) ([]model.Task, int64, error)
	// Reassign repoints the task's assignee. Runs inside the caller's
	// transaction when one is present in the context.
	Reassign(ctx context.Context, taskID uuid.UUID, toUserID uuid.UUID) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return GetDB(ctx, r.db).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := GetDB(ctx, r.db).Preload("Assignee").Preload("Approver").First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %s", workflow.ErrNotFound, id)
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, page, limit int) ([]model.Task, int64, error) {
	var tasks []model.Task
	var total int64

	if err := GetDB(ctx, r.db).Model(&model.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := GetDB(ctx, r.db).Preload("Assignee").Preload("Approver").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepository) Reassign(ctx context.Context, taskID uuid.UUID, toUserID uuid.UUID) error {
	res := GetDB(ctx, r.db).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("assignee_id", toUserID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: task %s", workflow.ErrNotFound, taskID)
	}
	return nil
}
