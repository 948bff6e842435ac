package model

import (
	"backend/internal/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory enum constants
const (
	ExpenseCategoryTravel        = "TRAVEL"
	ExpenseCategoryAccommodation = "ACCOMMODATION"
	ExpenseCategoryMeal          = "MEAL"
	ExpenseCategoryMaterial      = "MATERIAL"
	ExpenseCategoryOther         = "OTHER"
)

// TaskExpense is an expense claim made against a task. Approval requires the
// deciding actor to be the owning task's designated approver, a narrower rule
// than the kind-level assignment. LedgerEntryID records that the finance side
// effect already ran, so a retried approval never duplicates the ledger entry.
type TaskExpense struct {
	RequestCommon
	TaskID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"task_id"`
	Task          *Task           `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	ExpenseTitle  string          `gorm:"type:varchar(255);not null" json:"title"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(10);not null;default:'TRY'" json:"currency"`
	Category      string          `gorm:"type:varchar(30);not null;default:'OTHER'" json:"category"`
	LedgerEntryID *uuid.UUID      `gorm:"type:uuid" json:"ledger_entry_id"`
}

func (e *TaskExpense) Kind() workflow.Kind {
	return workflow.KindTaskExpense
}

func (e *TaskExpense) Title() string {
	return e.ExpenseTitle
}

func (e *TaskExpense) SearchText() []string {
	return []string{e.ExpenseTitle, e.Category}
}
