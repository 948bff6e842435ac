package model

import (
	"backend/internal/workflow"

	"github.com/google/uuid"
)

// TransferType enum constants
const (
	TransferTypeReassign = "REASSIGN"
	TransferTypeDelegate = "DELEGATE"
	TransferTypeEscalate = "ESCALATE"
)

// TaskTransfer is a proposal to hand a task from its current assignee to
// another user. Decision authority rests with ToUserID only: RequestedByID may
// be a manager delegating on behalf of FromUserID, but only the target accepts
// or rejects. Invariant: ToUserID != FromUserID.
type TaskTransfer struct {
	RequestCommon
	TaskID        uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	Task          *Task     `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	FromUserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"from_user_id"`
	ToUserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"to_user_id"`
	RequestedByID uuid.UUID `gorm:"type:uuid;not null" json:"requested_by_id"`
	TransferType  string    `gorm:"type:varchar(20);not null" json:"transfer_type"`
	Reason        string    `gorm:"type:text" json:"reason"`
}

func (t *TaskTransfer) Kind() workflow.Kind {
	return workflow.KindTaskTransfer
}

func (t *TaskTransfer) Title() string {
	return t.TransferType + " task transfer"
}

func (t *TaskTransfer) SearchText() []string {
	return []string{t.Reason, t.TransferType}
}

// InvolvesUser reports whether the user is a party to the transfer
func (t *TaskTransfer) InvolvesUser(id uuid.UUID) bool {
	return t.FromUserID == id || t.ToUserID == id || t.RequestedByID == id
}
