package model

import "backend/internal/workflow"

// SupportTicketCategory enum constants
const (
	TicketCategoryHardware = "HARDWARE"
	TicketCategorySoftware = "SOFTWARE"
	TicketCategoryAccess   = "ACCESS"
	TicketCategoryOther    = "OTHER"
)

// SupportTicket represents an internal IT/operations support request.
// Lifecycle: OPEN -> IN_PROGRESS -> RESOLVED -> CLOSED.
type SupportTicket struct {
	RequestCommon
	Subject     string `gorm:"type:varchar(255);not null" json:"subject"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(30);not null;default:'OTHER'" json:"category"`
}

func (t *SupportTicket) Kind() workflow.Kind {
	return workflow.KindSupportTicket
}

func (t *SupportTicket) Title() string {
	return t.Subject
}

func (t *SupportTicket) SearchText() []string {
	return []string{t.Subject, t.Description}
}
