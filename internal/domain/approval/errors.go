package approval

import "errors"

var (
	ErrRequestNotFound = errors.New("request not found")

	ErrNotPendingSupervisor = errors.New("request is not pending supervisor approval")
	ErrNotPendingHR         = errors.New("request is not pending hr approval")
	ErrAlreadyProcessed     = errors.New("request was already processed")

	ErrNotAuthorized = errors.New("not authorized to act on this request")
	ErrSelfApproval  = errors.New("cannot approve your own request")
	ErrNotRequester  = errors.New("only the requester can cancel")

	ErrDuplicateRequest     = errors.New("an overlapping pending or approved request already exists")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrLeaveBalanceNotFound = errors.New("leave balance not found")
	ErrNotApproved          = errors.New("request is not approved")
)
