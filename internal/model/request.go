package model

import (
	"time"

	"backend/internal/workflow"

	"github.com/google/uuid"
)

// RequestCommon carries the columns shared by every request kind: the status
// lifecycle, requester identity, decision fields populated on terminal
// transitions and the version used for optimistic concurrency. Status is
// mutated only through the workflow engine's conditional update.
type RequestCommon struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Status          string     `gorm:"type:varchar(20);not null;index" json:"status"`
	RequesterID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"requester_id"`
	DecidedBy       *uuid.UUID `gorm:"type:uuid" json:"decided_by"`
	DecidedAt       *time.Time `json:"decided_at"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	Version         int64      `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Common exposes the shared decision columns to the workflow engine
func (c *RequestCommon) Common() *RequestCommon {
	return c
}

// CurrentStatus returns the status as a workflow status value
func (c *RequestCommon) CurrentStatus() workflow.Status {
	return workflow.Status(c.Status)
}

// Decidable is the capability every request kind satisfies so the workflow
// engine and the aggregator can consume records generically. Kind-specific
// fields stay on the concrete types (TaskTransfer, TaskExpense, ...).
type Decidable interface {
	Common() *RequestCommon
	Kind() workflow.Kind
	// Title is the short human-readable label shown in merged request feeds
	Title() string
	// SearchText returns the text fields the aggregator matches search terms against
	SearchText() []string
}

// Participant is implemented by kinds that involve users beyond the requester
// (a transfer target, for example) who must be able to view the record.
type Participant interface {
	InvolvesUser(id uuid.UUID) bool
}
