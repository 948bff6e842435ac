package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinanceLedgerEntry is a cost entry in the finance subsystem. Created at most
// once per approved task expense, carrying forward the requester identity, the
// task/project linkage and the approver identity.
type FinanceLedgerEntry struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Currency     string          `gorm:"type:varchar(10);not null" json:"currency"`
	Category     string          `gorm:"type:varchar(30);not null;index" json:"category"`
	Description  string          `gorm:"type:text" json:"description"`
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	TaskID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"task_id"`
	ProjectID    *uuid.UUID      `gorm:"type:uuid;index" json:"project_id"`
	ApprovedByID uuid.UUID       `gorm:"type:uuid;not null" json:"approved_by_id"`
	CreatedAt    time.Time       `json:"created_at"`
}
