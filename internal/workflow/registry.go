package workflow

import "fmt"

// transitionKey identifies one legal move in a kind's state machine
type transitionKey struct {
	From   Status
	Action Action
}

// Spec declares the full state machine contract for one request kind:
// its ordered status set, initial status, terminal statuses, the legal
// (from, action) -> to transition table and the fields required per action.
// The workflow engine never hard-codes per-kind logic; this table is the
// single source of truth for what moves are allowed.
type Spec struct {
	Kind        Kind
	Statuses    []Status
	Initial     Status
	terminal    map[Status]bool
	transitions map[transitionKey]Status
	required    map[Action][]string
}

var registry = map[Kind]*Spec{
	KindSupportTicket: {
		Kind:     KindSupportTicket,
		Statuses: []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed},
		Initial:  StatusOpen,
		terminal: map[Status]bool{StatusClosed: true},
		transitions: map[transitionKey]Status{
			{StatusOpen, ActionStart}:         StatusInProgress,
			{StatusInProgress, ActionResolve}: StatusResolved,
			{StatusResolved, ActionClose}:     StatusClosed,
		},
	},
	KindLeaveRequest: {
		Kind:     KindLeaveRequest,
		Statuses: []Status{StatusPending, StatusApproved, StatusRejected},
		Initial:  StatusPending,
		terminal: map[Status]bool{StatusApproved: true, StatusRejected: true},
		transitions: map[transitionKey]Status{
			{StatusPending, ActionApprove}: StatusApproved,
			{StatusPending, ActionReject}:  StatusRejected,
		},
	},
	KindAdvanceRequest: {
		Kind:     KindAdvanceRequest,
		Statuses: []Status{StatusPending, StatusApproved, StatusRejected},
		Initial:  StatusPending,
		terminal: map[Status]bool{StatusApproved: true, StatusRejected: true},
		transitions: map[transitionKey]Status{
			{StatusPending, ActionApprove}: StatusApproved,
			{StatusPending, ActionReject}:  StatusRejected,
		},
	},
	KindSuggestion: {
		Kind:     KindSuggestion,
		Statuses: []Status{StatusPending, StatusReviewed, StatusImplemented, StatusRejected},
		Initial:  StatusPending,
		terminal: map[Status]bool{StatusImplemented: true, StatusRejected: true},
		transitions: map[transitionKey]Status{
			{StatusPending, ActionReview}:     StatusReviewed,
			{StatusPending, ActionReject}:     StatusRejected,
			{StatusReviewed, ActionImplement}: StatusImplemented,
			{StatusReviewed, ActionReject}:    StatusRejected,
		},
	},
	KindTaskTransfer: {
		Kind:     KindTaskTransfer,
		Statuses: []Status{StatusPending, StatusAccepted, StatusRejected},
		Initial:  StatusPending,
		terminal: map[Status]bool{StatusAccepted: true, StatusRejected: true},
		transitions: map[transitionKey]Status{
			{StatusPending, ActionAccept}: StatusAccepted,
			{StatusPending, ActionReject}: StatusRejected,
		},
	},
	KindTaskExpense: {
		Kind:     KindTaskExpense,
		Statuses: []Status{StatusPending, StatusApproved, StatusRejected},
		Initial:  StatusPending,
		terminal: map[Status]bool{StatusApproved: true, StatusRejected: true},
		transitions: map[transitionKey]Status{
			{StatusPending, ActionApprove}: StatusApproved,
			{StatusPending, ActionReject}:  StatusRejected,
		},
	},
}

// Kinds returns every registered request kind
func Kinds() []Kind {
	return []Kind{
		KindSupportTicket,
		KindLeaveRequest,
		KindAdvanceRequest,
		KindSuggestion,
		KindTaskTransfer,
		KindTaskExpense,
	}
}

// KindSpec returns the state machine contract for the given kind
func KindSpec(kind Kind) (*Spec, error) {
	spec, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return spec, nil
}

// IsKind reports whether the string names a registered kind
func IsKind(kind string) bool {
	_, ok := registry[Kind(kind)]
	return ok
}

// Next resolves the target status for (from, action).
// Returns ErrIllegalTransition when the move is not in the legal table.
func (s *Spec) Next(from Status, action Action) (Status, error) {
	to, ok := s.transitions[transitionKey{From: from, Action: action}]
	if !ok {
		return "", fmt.Errorf("%w: cannot %s a %s request in status %s", ErrIllegalTransition, action, s.Kind, from)
	}
	return to, nil
}

// IsTerminal returns true if no further transition is legal from the status
func (s *Spec) IsTerminal(status Status) bool {
	return s.terminal[status]
}

// RequiredFields returns the decision payload fields required for the action.
// Rejection reasons are deliberately not listed: a reason is optional on reject
// for every kind, the slot only records it when supplied.
func (s *Spec) RequiredFields(action Action) []string {
	return s.required[action]
}

// Actions returns the actions legal from the given status
func (s *Spec) Actions(from Status) []Action {
	var actions []Action
	for key := range s.transitions {
		if key.From == from {
			actions = append(actions, key.Action)
		}
	}
	return actions
}
