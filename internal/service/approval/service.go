package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campushr/hris-engine-go/internal/domain/approval"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
	"github.com/campushr/hris-engine-go/internal/pkg/validator"
)

type service struct {
	requestRepo approval.RequestRepository
	balanceRepo approval.LeaveBalanceRepository
	supervisors approval.SupervisorResolver
	txManager   database.TxManager
}

func NewService(
	requestRepo approval.RequestRepository,
	balanceRepo approval.LeaveBalanceRepository,
	supervisors approval.SupervisorResolver,
	txManager database.TxManager,
) approval.Service {
	return &service{
		requestRepo: requestRepo,
		balanceRepo: balanceRepo,
		supervisors: supervisors,
		txManager:   txManager,
	}
}

// Submit creates the request in its initial state. The supervisor is
// resolved once, here, so later org changes do not reroute in-flight
// requests. A nil supervisor starts the chain directly at HR.
func (s *service) Submit(ctx context.Context, employeeID string, req approval.SubmitRequest, now time.Time) (approval.Request, error) {
	if err := req.Validate(); err != nil {
		return approval.Request{}, err
	}

	kind := approval.Kind(req.Kind)
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	overlapping, err := s.requestRepo.HasOverlapping(ctx, employeeID, kind, start, end)
	if err != nil {
		return approval.Request{}, fmt.Errorf("check overlapping requests: %w", err)
	}
	if overlapping {
		return approval.Request{}, approval.ErrDuplicateRequest
	}

	request := approval.Request{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Kind:       kind,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	switch kind {
	case approval.KindLeave:
		totalDays := int(end.Sub(start).Hours()/24) + 1
		request.LeaveTypeID = req.LeaveTypeID
		request.TotalDays = &totalDays

		balance, err := s.balanceRepo.GetByEmployeeAndType(ctx, employeeID, *req.LeaveTypeID, start.Year())
		if err != nil {
			return approval.Request{}, fmt.Errorf("get leave balance: %w", err)
		}
		if balance.Remaining().LessThan(decimal.NewFromInt(int64(totalDays))) {
			return approval.Request{}, approval.ErrInsufficientBalance
		}
	case approval.KindOvertime:
		otStart, _ := validator.IsValidTimeOfDay(*req.OvertimeStart)
		otEnd, _ := validator.IsValidTimeOfDay(*req.OvertimeEnd)
		request.OvertimeStart = anchorClock(start, otStart)
		request.OvertimeEnd = anchorClock(start, otEnd)
	}

	supervisorID, err := s.supervisors.ResolveSupervisor(ctx, employeeID)
	if err != nil {
		return approval.Request{}, fmt.Errorf("resolve supervisor: %w", err)
	}
	request.SupervisorID = supervisorID
	if supervisorID != nil {
		request.Status = approval.StatusPendingSupervisor
	} else {
		request.Status = approval.StatusPendingHR
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return approval.Request{}, fmt.Errorf("create request: %w", err)
	}
	return created, nil
}

func (s *service) ApproveBySupervisor(ctx context.Context, actor approval.Actor, requestID string, decision approval.DecisionRequest, now time.Time) (approval.Request, error) {
	request, err := s.supervisorStageRequest(ctx, actor, requestID)
	if err != nil {
		return approval.Request{}, err
	}

	updated, err := s.requestRepo.Transition(ctx, request.ID,
		approval.StatusPendingSupervisor, approval.StatusPendingHR,
		approval.TransitionUpdate{ActedBy: actor.EmployeeID, ActedAt: now, Note: decision.Note})
	if err != nil {
		return approval.Request{}, fmt.Errorf("transition request: %w", err)
	}
	return updated, nil
}

func (s *service) RejectBySupervisor(ctx context.Context, actor approval.Actor, requestID string, decision approval.DecisionRequest, now time.Time) (approval.Request, error) {
	request, err := s.supervisorStageRequest(ctx, actor, requestID)
	if err != nil {
		return approval.Request{}, err
	}

	updated, err := s.requestRepo.Transition(ctx, request.ID,
		approval.StatusPendingSupervisor, approval.StatusRejectedBySupervisor,
		approval.TransitionUpdate{ActedBy: actor.EmployeeID, ActedAt: now, Note: decision.Note})
	if err != nil {
		return approval.Request{}, fmt.Errorf("transition request: %w", err)
	}
	return updated, nil
}

// ApproveByHR finalizes the request. For leave, the balance deduction and
// the status transition commit or roll back together.
func (s *service) ApproveByHR(ctx context.Context, actor approval.Actor, requestID string, decision approval.DecisionRequest, now time.Time) (approval.Request, error) {
	request, err := s.hrStageRequest(ctx, actor, requestID)
	if err != nil {
		return approval.Request{}, err
	}

	update := approval.TransitionUpdate{ActedBy: actor.EmployeeID, ActedAt: now, Note: decision.Note}

	if request.Kind != approval.KindLeave {
		updated, err := s.requestRepo.Transition(ctx, request.ID, approval.StatusPendingHR, approval.StatusApproved, update)
		if err != nil {
			return approval.Request{}, fmt.Errorf("transition request: %w", err)
		}
		return updated, nil
	}

	var updated approval.Request
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := s.balanceRepo.GetByEmployeeAndType(ctx, request.EmployeeID, *request.LeaveTypeID, request.StartDate.Year())
		if err != nil {
			return fmt.Errorf("get leave balance: %w", err)
		}
		if balance.Remaining().LessThan(decimal.NewFromInt(int64(*request.TotalDays))) {
			return approval.ErrInsufficientBalance
		}

		updated, err = s.requestRepo.Transition(ctx, request.ID, approval.StatusPendingHR, approval.StatusApproved, update)
		if err != nil {
			return fmt.Errorf("transition request: %w", err)
		}
		if err := s.balanceRepo.AddUsed(ctx, balance.ID, *request.TotalDays); err != nil {
			return fmt.Errorf("deduct leave balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return approval.Request{}, err
	}
	return updated, nil
}

func (s *service) RejectByHR(ctx context.Context, actor approval.Actor, requestID string, decision approval.DecisionRequest, now time.Time) (approval.Request, error) {
	request, err := s.hrStageRequest(ctx, actor, requestID)
	if err != nil {
		return approval.Request{}, err
	}

	updated, err := s.requestRepo.Transition(ctx, request.ID,
		approval.StatusPendingHR, approval.StatusRejectedByHR,
		approval.TransitionUpdate{ActedBy: actor.EmployeeID, ActedAt: now, Note: decision.Note})
	if err != nil {
		return approval.Request{}, fmt.Errorf("transition request: %w", err)
	}
	return updated, nil
}

// Cancel withdraws a still-pending request. Only the requester can cancel;
// processed requests cannot be withdrawn this way.
func (s *service) Cancel(ctx context.Context, actor approval.Actor, requestID string, now time.Time) (approval.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.Request{}, fmt.Errorf("get request: %w", err)
	}
	if request.EmployeeID != actor.EmployeeID {
		return approval.Request{}, approval.ErrNotRequester
	}
	if !request.Status.IsPending() {
		return approval.Request{}, approval.ErrAlreadyProcessed
	}

	updated, err := s.requestRepo.Transition(ctx, request.ID,
		request.Status, approval.StatusCancelled,
		approval.TransitionUpdate{ActedBy: actor.EmployeeID, ActedAt: now, CancelledAt: &now})
	if err != nil {
		return approval.Request{}, fmt.Errorf("transition request: %w", err)
	}
	return updated, nil
}

// ReimburseLeave cancels an already APPROVED leave request and returns the
// deducted days to the balance, atomically. HR only.
func (s *service) ReimburseLeave(ctx context.Context, actor approval.Actor, requestID string, now time.Time) (approval.Request, error) {
	if !actor.IsHR() {
		return approval.Request{}, approval.ErrNotAuthorized
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.Request{}, fmt.Errorf("get request: %w", err)
	}
	if request.Kind != approval.KindLeave {
		return approval.Request{}, approval.ErrNotApproved
	}
	if request.Status != approval.StatusApproved {
		return approval.Request{}, approval.ErrNotApproved
	}

	var updated approval.Request
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := s.balanceRepo.GetByEmployeeAndType(ctx, request.EmployeeID, *request.LeaveTypeID, request.StartDate.Year())
		if err != nil {
			return fmt.Errorf("get leave balance: %w", err)
		}

		updated, err = s.requestRepo.Transition(ctx, request.ID,
			approval.StatusApproved, approval.StatusCancelled,
			approval.TransitionUpdate{ActedBy: actor.EmployeeID, ActedAt: now, CancelledAt: &now})
		if err != nil {
			return fmt.Errorf("transition request: %w", err)
		}
		if err := s.balanceRepo.AddUsed(ctx, balance.ID, -*request.TotalDays); err != nil {
			return fmt.Errorf("reimburse leave balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return approval.Request{}, err
	}
	return updated, nil
}

func (s *service) GetByID(ctx context.Context, actor approval.Actor, requestID string) (approval.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.Request{}, fmt.Errorf("get request: %w", err)
	}
	if !canView(actor, request) {
		return approval.Request{}, approval.ErrNotAuthorized
	}
	return request, nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]approval.Request, error) {
	requests, err := s.requestRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

func (s *service) ListPending(ctx context.Context, actor approval.Actor) ([]approval.Request, error) {
	if actor.IsHR() {
		requests, err := s.requestRepo.ListPendingForHR(ctx)
		if err != nil {
			return nil, fmt.Errorf("list pending hr requests: %w", err)
		}
		return requests, nil
	}
	requests, err := s.requestRepo.ListPendingForSupervisor(ctx, actor.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("list pending supervisor requests: %w", err)
	}
	return requests, nil
}

// supervisorStageRequest loads the request and enforces the supervisor-stage
// preconditions: not yet processed, not self-approval, and the actor is the
// stored supervisor (HR may step in).
func (s *service) supervisorStageRequest(ctx context.Context, actor approval.Actor, requestID string) (approval.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.Request{}, fmt.Errorf("get request: %w", err)
	}
	if request.EmployeeID == actor.EmployeeID {
		return approval.Request{}, approval.ErrSelfApproval
	}
	if request.Status.IsTerminal() {
		return approval.Request{}, approval.ErrAlreadyProcessed
	}
	if request.Status != approval.StatusPendingSupervisor {
		return approval.Request{}, approval.ErrNotPendingSupervisor
	}
	isSupervisor := request.SupervisorID != nil && *request.SupervisorID == actor.EmployeeID
	if !isSupervisor && !actor.IsHR() {
		return approval.Request{}, approval.ErrNotAuthorized
	}
	return request, nil
}

// hrStageRequest loads the request and enforces the HR-stage preconditions.
func (s *service) hrStageRequest(ctx context.Context, actor approval.Actor, requestID string) (approval.Request, error) {
	if !actor.IsHR() {
		return approval.Request{}, approval.ErrNotAuthorized
	}
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return approval.Request{}, fmt.Errorf("get request: %w", err)
	}
	if request.EmployeeID == actor.EmployeeID {
		return approval.Request{}, approval.ErrSelfApproval
	}
	if request.Status.IsTerminal() {
		return approval.Request{}, approval.ErrAlreadyProcessed
	}
	if request.Status != approval.StatusPendingHR {
		return approval.Request{}, approval.ErrNotPendingHR
	}
	return request, nil
}

func canView(actor approval.Actor, request approval.Request) bool {
	if actor.IsHR() || request.EmployeeID == actor.EmployeeID {
		return true
	}
	return request.SupervisorID != nil && *request.SupervisorID == actor.EmployeeID
}

func anchorClock(date, clock time.Time) *time.Time {
	t := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location())
	return &t
}
