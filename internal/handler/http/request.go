package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campushr/hris-engine-go/internal/domain/approval"
	"github.com/campushr/hris-engine-go/internal/handler/http/response"
)

type RequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ApproveBySupervisor(w http.ResponseWriter, r *http.Request)
	RejectBySupervisor(w http.ResponseWriter, r *http.Request)
	ApproveByHR(w http.ResponseWriter, r *http.Request)
	RejectByHR(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ReimburseLeave(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	approvalService approval.Service
}

func NewRequestHandler(approvalService approval.Service) RequestHandler {
	return &requestHandlerImpl{
		approvalService: approvalService,
	}
}

// Submit implements RequestHandler.
func (h *requestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req approval.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.approvalService.Submit(r.Context(), actor.EmployeeID, req, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted", toRequestResponse(created))
}

// Get implements RequestHandler.
func (h *requestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	req, err := h.approvalService.GetByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toRequestResponse(req))
}

// ListMine implements RequestHandler.
func (h *requestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requests, err := h.approvalService.ListMine(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toRequestResponses(requests))
}

// ListPending implements RequestHandler.
func (h *requestHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requests, err := h.approvalService.ListPending(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toRequestResponses(requests))
}

// ApproveBySupervisor implements RequestHandler.
func (h *requestHandlerImpl) ApproveBySupervisor(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.approvalService.ApproveBySupervisor)
}

// RejectBySupervisor implements RequestHandler.
func (h *requestHandlerImpl) RejectBySupervisor(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.approvalService.RejectBySupervisor)
}

// ApproveByHR implements RequestHandler.
func (h *requestHandlerImpl) ApproveByHR(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.approvalService.ApproveByHR)
}

// RejectByHR implements RequestHandler.
func (h *requestHandlerImpl) RejectByHR(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.approvalService.RejectByHR)
}

func (h *requestHandlerImpl) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, approval.Actor, string, approval.DecisionRequest, time.Time) (approval.Request, error),
) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var decision approval.DecisionRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	updated, err := fn(r.Context(), actor, chi.URLParam(r, "id"), decision, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request updated", toRequestResponse(updated))
}

// Cancel implements RequestHandler.
func (h *requestHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	updated, err := h.approvalService.Cancel(r.Context(), actor, chi.URLParam(r, "id"), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request cancelled", toRequestResponse(updated))
}

// ReimburseLeave implements RequestHandler.
func (h *requestHandlerImpl) ReimburseLeave(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	updated, err := h.approvalService.ReimburseLeave(r.Context(), actor, chi.URLParam(r, "id"), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave reimbursed", toRequestResponse(updated))
}

func toRequestResponses(requests []approval.Request) []approval.RequestResponse {
	result := make([]approval.RequestResponse, 0, len(requests))
	for _, req := range requests {
		result = append(result, toRequestResponse(req))
	}
	return result
}

func toRequestResponse(req approval.Request) approval.RequestResponse {
	resp := approval.RequestResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		Kind:       string(req.Kind),
		Status:     string(req.Status),

		StartDate: req.StartDate.Format("2006-01-02"),
		EndDate:   req.EndDate.Format("2006-01-02"),
		Reason:    req.Reason,

		LeaveTypeID: req.LeaveTypeID,
		TotalDays:   req.TotalDays,

		SupervisorID:      req.SupervisorID,
		SupervisorActedBy: req.SupervisorActedBy,
		SupervisorNote:    req.SupervisorNote,

		HrActedBy: req.HrActedBy,
		HrNote:    req.HrNote,

		CreatedAt: req.CreatedAt.Format(time.RFC3339),
	}
	if req.OvertimeStart != nil {
		s := req.OvertimeStart.Format(time.RFC3339)
		resp.OvertimeStart = &s
	}
	if req.OvertimeEnd != nil {
		s := req.OvertimeEnd.Format(time.RFC3339)
		resp.OvertimeEnd = &s
	}
	if req.SupervisorActedAt != nil {
		s := req.SupervisorActedAt.Format(time.RFC3339)
		resp.SupervisorActedAt = &s
	}
	if req.HrActedAt != nil {
		s := req.HrActedAt.Format(time.RFC3339)
		resp.HrActedAt = &s
	}
	return resp
}
