package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	// MarkAttendance handles POST /attendance
	MarkAttendance(w http.ResponseWriter, r *http.Request)
	// UpdateAttendance handles PUT /attendance/{id}
	UpdateAttendance(w http.ResponseWriter, r *http.Request)
	// ListByEmployee handles GET /attendance/{id}
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	// ListAll handles GET /attendance/all
	ListAll(w http.ResponseWriter, r *http.Request)
	// Roster handles GET /attendance/roster
	Roster(w http.ResponseWriter, r *http.Request)
	// TodayStats handles GET /stats/attendance/today
	TodayStats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully", result)
}

func (h *attendanceHandlerImpl) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.ListAttendanceFilter{
		EmployeeID: chi.URLParam(r, "id"),
		StartDate:  query.Get("start"),
		EndDate:    query.Get("end"),
	}

	result, err := h.attendanceService.ListByEmployee(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.ListAttendanceFilter{
		StartDate: query.Get("start"),
		EndDate:   query.Get("end"),
	}

	result, err := h.attendanceService.ListAll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.RosterFilter{
		Date:   query.Get("date"), // format: YYYY-MM-DD, default: today
		Status: attendance.RosterStatus(query.Get("status")),
	}

	result, err := h.attendanceService.Roster(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) TodayStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.TodayStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
