package approval

import (
	"context"
	"time"
)

// Service runs the two-level approval state machine shared by leave,
// overtime and WFH requests.
type Service interface {
	// Submit creates a request in its initial pending state. The supervisor
	// is resolved and stored at submission time.
	Submit(ctx context.Context, employeeID string, req SubmitRequest, now time.Time) (Request, error)

	ApproveBySupervisor(ctx context.Context, actor Actor, requestID string, decision DecisionRequest, now time.Time) (Request, error)
	RejectBySupervisor(ctx context.Context, actor Actor, requestID string, decision DecisionRequest, now time.Time) (Request, error)

	// ApproveByHR finalizes the request. Leave approvals deduct the balance
	// in the same transaction as the status transition.
	ApproveByHR(ctx context.Context, actor Actor, requestID string, decision DecisionRequest, now time.Time) (Request, error)
	RejectByHR(ctx context.Context, actor Actor, requestID string, decision DecisionRequest, now time.Time) (Request, error)

	// Cancel lets the requester withdraw a still-pending request.
	Cancel(ctx context.Context, actor Actor, requestID string, now time.Time) (Request, error)

	// ReimburseLeave is the HR-only cancellation of an APPROVED leave
	// request, returning the deducted days to the balance.
	ReimburseLeave(ctx context.Context, actor Actor, requestID string, now time.Time) (Request, error)

	GetByID(ctx context.Context, actor Actor, requestID string) (Request, error)
	ListMine(ctx context.Context, employeeID string) ([]Request, error)

	// ListPending returns the actor's approval inbox: HR sees every
	// HR-stage request, others see requests awaiting them as supervisor.
	ListPending(ctx context.Context, actor Actor) ([]Request, error)
}

// SupervisorResolver determines who must act first on a new request.
type SupervisorResolver interface {
	// ResolveSupervisor returns the supervisor's employee ID, or nil when
	// the request should start directly at the HR stage.
	ResolveSupervisor(ctx context.Context, employeeID string) (*string, error)
}
