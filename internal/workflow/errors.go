package workflow

import "errors"

var (
	// ErrUnknownKind is returned when a request kind is not registered
	ErrUnknownKind = errors.New("unknown request kind")

	// ErrNotFound is returned when a request record does not exist
	ErrNotFound = errors.New("request not found")

	// ErrForbidden is returned when the actor may not view or decide the request
	ErrForbidden = errors.New("actor is not allowed to decide this request")

	// ErrIllegalTransition is returned when the action is not legal from the current status
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrConflict is returned when the record was decided concurrently by someone else
	ErrConflict = errors.New("request was already decided by another actor")

	// ErrValidation is returned when a required field for the attempted action is missing
	ErrValidation = errors.New("validation failed")

	// ErrSideEffectFailed is returned when the status change committed but a dependent
	// write in another subsystem did not. The status change is NOT rolled back.
	ErrSideEffectFailed = errors.New("side effect failed after status change committed")
)
