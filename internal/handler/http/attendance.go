package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/campushr/hris-engine-go/internal/domain/attendance"
	"github.com/campushr/hris-engine-go/internal/handler/http/response"
	"github.com/campushr/hris-engine-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req attendance.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.ClockIn(r.Context(), actor.EmployeeID, req, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", toRecordResponse(record))
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req attendance.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.ClockOut(r.Context(), actor.EmployeeID, req, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", toRecordResponse(record))
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	record, err := h.attendanceService.GetToday(r.Context(), actor.EmployeeID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if record == nil {
		response.Success(w, nil)
		return
	}

	response.Success(w, toRecordResponse(*record))
}

// ListMine implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	from, ok := validator.IsValidDate(r.URL.Query().Get("from"))
	if !ok {
		response.BadRequest(w, "Query parameter 'from' must be in YYYY-MM-DD format", nil)
		return
	}
	to, ok := validator.IsValidDate(r.URL.Query().Get("to"))
	if !ok {
		response.BadRequest(w, "Query parameter 'to' must be in YYYY-MM-DD format", nil)
		return
	}

	records, err := h.attendanceService.ListByRange(r.Context(), actor.EmployeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		result = append(result, toRecordResponse(record))
	}
	response.Success(w, result)
}

func toRecordResponse(record attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		Date:       record.Date.Format("2006-01-02"),

		IsWfh: record.IsWfh,

		IsLate:        record.IsLate,
		LateMinutes:   record.LateMinutes,
		LateDeduction: record.LateDeduction.String(),

		IsEarlyLeave:      record.IsEarlyLeave,
		EarlyLeaveMinutes: record.EarlyLeaveMinutes,

		IsOvertime:      record.IsOvertime,
		OvertimeMinutes: record.OvertimeMinutes,

		ActualWorkMinutes:   record.ActualWorkMinutes,
		RequiredWorkMinutes: record.RequiredWorkMinutes,

		UnderworkMinutes:   record.UnderworkMinutes,
		UnderworkDeduction: record.UnderworkDeduction.String(),

		Status: string(record.Status),
	}
	if record.ClockInTime != nil {
		t := record.ClockInTime.Format(time.RFC3339)
		resp.ClockInTime = &t
	}
	if record.ClockOutTime != nil {
		t := record.ClockOutTime.Format(time.RFC3339)
		resp.ClockOutTime = &t
	}
	return resp
}
