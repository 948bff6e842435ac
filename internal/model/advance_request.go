package model

import (
	"backend/internal/workflow"

	"github.com/shopspring/decimal"
)

// AdvanceRequest represents a cash-advance request against future salary
type AdvanceRequest struct {
	RequestCommon
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Currency string          `gorm:"type:varchar(10);not null;default:'TRY'" json:"currency"`
	Reason   string          `gorm:"type:text" json:"reason"`
}

func (a *AdvanceRequest) Kind() workflow.Kind {
	return workflow.KindAdvanceRequest
}

func (a *AdvanceRequest) Title() string {
	return "Advance " + a.Amount.StringFixed(2) + " " + a.Currency
}

func (a *AdvanceRequest) SearchText() []string {
	return []string{a.Reason, a.Currency}
}
