package model

import "backend/internal/workflow"

// LeaveType enum constants
const (
	LeaveTypeAnnual    = "ANNUAL"
	LeaveTypeSick      = "SICK"
	LeaveTypeUnpaid    = "UNPAID"
	LeaveTypeMaternity = "MATERNITY"
)

// LeaveRequest represents a time-off request. Dates are stored as YYYY-MM-DD
// strings since leave is granted in whole days.
type LeaveRequest struct {
	RequestCommon
	LeaveType string `gorm:"type:varchar(20);not null" json:"leave_type"`
	StartDate string `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate   string `gorm:"type:varchar(10);not null" json:"end_date"`
	Reason    string `gorm:"type:text" json:"reason"`
}

func (l *LeaveRequest) Kind() workflow.Kind {
	return workflow.KindLeaveRequest
}

func (l *LeaveRequest) Title() string {
	return l.LeaveType + " leave " + l.StartDate + " - " + l.EndDate
}

func (l *LeaveRequest) SearchText() []string {
	return []string{l.LeaveType, l.Reason}
}
