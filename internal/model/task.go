package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus enum constants
const (
	TaskStatusActive    = "ACTIVE"
	TaskStatusCompleted = "COMPLETED"
	TaskStatusArchived  = "ARCHIVED"
)

// Task is a unit of project work. AssigneeID is repointed by accepted
// transfers; ApproverID is the designated reviewer for expense claims
// against this task (typically the project manager).
type Task struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title      string     `gorm:"type:varchar(255);not null" json:"title"`
	ProjectID  *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	AssigneeID uuid.UUID  `gorm:"type:uuid;not null;index" json:"assignee_id"`
	Assignee   *User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	ApproverID uuid.UUID  `gorm:"type:uuid;not null;index" json:"approver_id"`
	Approver   *User      `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
	Status     string     `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
