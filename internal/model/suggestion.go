package model

import "backend/internal/workflow"

// SuggestionCategory enum constants
const (
	SuggestionCategorySuggestion = "SUGGESTION"
	SuggestionCategoryComplaint  = "COMPLAINT"
)

// Suggestion represents an employee suggestion or complaint.
// Lifecycle: PENDING -> REVIEWED -> IMPLEMENTED | REJECTED.
type Suggestion struct {
	RequestCommon
	Subject  string `gorm:"type:varchar(255);not null" json:"subject"`
	Body     string `gorm:"type:text" json:"body"`
	Category string `gorm:"type:varchar(20);not null;default:'SUGGESTION'" json:"category"`
}

func (s *Suggestion) Kind() workflow.Kind {
	return workflow.KindSuggestion
}

func (s *Suggestion) Title() string {
	return s.Subject
}

func (s *Suggestion) SearchText() []string {
	return []string{s.Subject, s.Body}
}
