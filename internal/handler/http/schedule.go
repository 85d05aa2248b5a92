package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campushr/hris-engine-go/internal/domain/shift"
	"github.com/campushr/hris-engine-go/internal/handler/http/response"
	"github.com/campushr/hris-engine-go/internal/pkg/validator"
)

type ScheduleHandler interface {
	ResolveMine(w http.ResponseWriter, r *http.Request)
	ResolveRangeMine(w http.ResponseWriter, r *http.Request)
	AssignShiftPattern(w http.ResponseWriter, r *http.Request)
	ListShiftSettings(w http.ResponseWriter, r *http.Request)
	CreateOverride(w http.ResponseWriter, r *http.Request)
	DeleteOverride(w http.ResponseWriter, r *http.Request)
	CreateWorkingHours(w http.ResponseWriter, r *http.Request)
	ListWorkingHours(w http.ResponseWriter, r *http.Request)
	CreateShiftPackage(w http.ResponseWriter, r *http.Request)
	ListShiftPackages(w http.ResponseWriter, r *http.Request)
	CreateShiftPattern(w http.ResponseWriter, r *http.Request)
	ListShiftPatterns(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	shiftService shift.Service
}

func NewScheduleHandler(shiftService shift.Service) ScheduleHandler {
	return &scheduleHandlerImpl{
		shiftService: shiftService,
	}
}

// ResolveMine implements ScheduleHandler.
func (h *scheduleHandlerImpl) ResolveMine(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "Query parameter 'date' must be in YYYY-MM-DD format", nil)
			return
		}
		date = parsed
	}

	res, err := h.shiftService.Resolve(r.Context(), actor.EmployeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toResolutionResponse(res))
}

// ResolveRangeMine implements ScheduleHandler.
func (h *scheduleHandlerImpl) ResolveRangeMine(w http.ResponseWriter, r *http.Request) {
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

	resolutions, err := h.shiftService.ResolveRange(r.Context(), actor.EmployeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]shift.ResolutionResponse, 0, len(resolutions))
	for _, res := range resolutions {
		result = append(result, toResolutionResponse(res))
	}
	response.Success(w, result)
}

// AssignShiftPattern implements ScheduleHandler.
func (h *scheduleHandlerImpl) AssignShiftPattern(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req shift.AssignShiftPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	setting, err := h.shiftService.AssignShiftPattern(r.Context(), req, actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift pattern assigned", toShiftSettingResponse(setting))
}

// ListShiftSettings implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListShiftSettings(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	settings, err := h.shiftService.ListShiftSettings(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]shift.ShiftSettingResponse, 0, len(settings))
	for _, setting := range settings {
		result = append(result, toShiftSettingResponse(setting))
	}
	response.Success(w, result)
}

// CreateOverride implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateOverride(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req shift.CreateOverrideScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	schedule, err := h.shiftService.CreateOverrideSchedule(r.Context(), req, actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Override schedule saved", toOverrideResponse(schedule))
}

// DeleteOverride implements ScheduleHandler.
func (h *scheduleHandlerImpl) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.shiftService.DeleteOverrideSchedule(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Override schedule deleted", nil)
}

// CreateWorkingHours implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateWorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	wh, err := h.shiftService.CreateWorkingHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Working hours created", wh)
}

// ListWorkingHours implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListWorkingHours(w http.ResponseWriter, r *http.Request) {
	list, err := h.shiftService.ListWorkingHours(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// CreateShiftPackage implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateShiftPackage(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	pkg, err := h.shiftService.CreateShiftPackage(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift package created", pkg)
}

// ListShiftPackages implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListShiftPackages(w http.ResponseWriter, r *http.Request) {
	list, err := h.shiftService.ListShiftPackages(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// CreateShiftPattern implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateShiftPattern(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	pattern, err := h.shiftService.CreateShiftPattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift pattern created", pattern)
}

// ListShiftPatterns implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListShiftPatterns(w http.ResponseWriter, r *http.Request) {
	list, err := h.shiftService.ListShiftPatterns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

func toResolutionResponse(res shift.Resolution) shift.ResolutionResponse {
	resp := shift.ResolutionResponse{
		EmployeeID:            res.EmployeeID,
		Date:                  res.Date.Format("2006-01-02"),
		IsWorkingDay:          res.IsWorkingDay,
		IsOverride:            res.IsOverride,
		IsWfhAllowed:          res.IsWfhAllowed,
		IsOvertimeAllowed:     res.IsOvertimeAllowed,
		IsAttendanceMandatory: res.IsAttendanceMandatory,
		LateToleranceMinutes:  res.LateToleranceMinutes,
	}
	if res.WorkingHours != nil {
		resp.WorkingHoursID = &res.WorkingHours.ID
		resp.WorkingHoursName = &res.WorkingHours.Name
	}
	if res.ShiftPattern != nil {
		resp.ShiftPatternID = &res.ShiftPattern.ID
		resp.ShiftPatternName = &res.ShiftPattern.Name
	}
	if start := res.StartTime(); start != nil {
		s := start.Format(time.RFC3339)
		resp.StartTime = &s
	}
	if end := res.EndTime(); end != nil {
		s := end.Format(time.RFC3339)
		resp.EndTime = &s
	}
	return resp
}

func toShiftSettingResponse(setting shift.EmployeeShiftSetting) shift.ShiftSettingResponse {
	resp := shift.ShiftSettingResponse{
		ID:             setting.ID,
		EmployeeID:     setting.EmployeeID,
		ShiftPatternID: setting.ShiftPatternID,
		EffectiveFrom:  setting.EffectiveFrom.Format("2006-01-02"),
		Reason:         setting.Reason,
		Notes:          setting.Notes,
		CreatedAt:      setting.CreatedAt.Format(time.RFC3339),
	}
	if setting.EffectiveTo != nil {
		s := setting.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &s
	}
	return resp
}

func toOverrideResponse(schedule shift.EmployeeShiftSchedule) shift.OverrideScheduleResponse {
	return shift.OverrideScheduleResponse{
		ID:                            schedule.ID,
		EmployeeID:                    schedule.EmployeeID,
		ScheduleDate:                  schedule.ScheduleDate.Format("2006-01-02"),
		WorkingHoursID:                schedule.WorkingHoursID,
		OverrideIsWfh:                 schedule.OverrideIsWfh,
		OverrideIsOvertimeAllowed:     schedule.OverrideIsOvertimeAllowed,
		OverrideIsAttendanceMandatory: schedule.OverrideIsAttendanceMandatory,
		Notes:                         schedule.Notes,
	}
}
