package workflow

// Kind identifies one of the reviewable request categories handled by the portal
type Kind string

const (
	KindSupportTicket  Kind = "SUPPORT_TICKET"
	KindLeaveRequest   Kind = "LEAVE_REQUEST"
	KindAdvanceRequest Kind = "ADVANCE_REQUEST"
	KindSuggestion     Kind = "SUGGESTION"
	KindTaskTransfer   Kind = "TASK_TRANSFER"
	KindTaskExpense    Kind = "TASK_EXPENSE"
)

// Status is a lifecycle state of a request. Each kind declares its own status set.
type Status string

const (
	StatusOpen        Status = "OPEN"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusResolved    Status = "RESOLVED"
	StatusClosed      Status = "CLOSED"
	StatusPending     Status = "PENDING"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusReviewed    Status = "REVIEWED"
	StatusImplemented Status = "IMPLEMENTED"
	StatusAccepted    Status = "ACCEPTED"
)

// Action is a decision verb applied to a request by a reviewer
type Action string

const (
	ActionStart     Action = "START"
	ActionResolve   Action = "RESOLVE"
	ActionClose     Action = "CLOSE"
	ActionApprove   Action = "APPROVE"
	ActionReject    Action = "REJECT"
	ActionReview    Action = "REVIEW"
	ActionImplement Action = "IMPLEMENT"
	ActionAccept    Action = "ACCEPT"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}
