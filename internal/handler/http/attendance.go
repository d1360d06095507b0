package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/attendance"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http/response"
	attendanceservice "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/attendance"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendanceservice.AttendanceService
}

func NewAttendanceHandler(s *attendanceservice.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: s}
}

type clockInRequest struct {
	Location *string `json:"location,omitempty"`
}

func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromRequest(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	var req clockInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	ip := r.RemoteAddr
	record, err := h.attendanceService.ClockIn(r.Context(), employeeID, req.Location, &ip)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clocked in", record)
}

func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Clocked out", h.attendanceService.ClockOut)
}

func (h *AttendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Break started", h.attendanceService.StartBreak)
}

func (h *AttendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Break ended", h.attendanceService.EndBreak)
}

func (h *AttendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromRequest(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	record, err := h.attendanceService.GetToday(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

func (h *AttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromRequest(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	// Default window is the current month.
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "from must be YYYY-MM-DD", nil)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "to must be YYYY-MM-DD", nil)
			return
		}
		to = parsed
	}

	records, err := h.attendanceService.ListByEmployee(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

func (h *AttendanceHandlerImpl) mutate(w http.ResponseWriter, r *http.Request, message string, fn func(ctx context.Context, employeeID string) (attendance.Attendance, error)) {
	employeeID := employeeIDFromRequest(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	record, err := fn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, message, record)
}
