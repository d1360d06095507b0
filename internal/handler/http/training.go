package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http/response"
	trainingservice "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/training"
)

type TrainingHandler interface {
	Enroll(w http.ResponseWriter, r *http.Request)
	Start(w http.ResponseWriter, r *http.Request)
	UpdateProgress(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	Fail(w http.ResponseWriter, r *http.Request)
	Drop(w http.ResponseWriter, r *http.Request)
	CompletionReport(w http.ResponseWriter, r *http.Request)
	ListMyEnrollments(w http.ResponseWriter, r *http.Request)
}

type TrainingHandlerImpl struct {
	trainingService *trainingservice.TrainingService
}

func NewTrainingHandler(s *trainingservice.TrainingService) TrainingHandler {
	return &TrainingHandlerImpl{trainingService: s}
}

type enrollRequest struct {
	TrainingID string `json:"training_id"`
	EmployeeID string `json:"employee_id"`
}

func (h *TrainingHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	// Self-enrollment when no employee is named.
	if req.EmployeeID == "" {
		req.EmployeeID = employeeIDFromRequest(r)
	}
	if req.TrainingID == "" || req.EmployeeID == "" {
		response.BadRequest(w, "training_id and employee_id are required", nil)
		return
	}

	enrollment, err := h.trainingService.Enroll(r.Context(), req.TrainingID, req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Enrolled", enrollment)
}

func (h *TrainingHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	enrollment, err := h.trainingService.Start(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Enrollment started", enrollment)
}

type progressRequest struct {
	Percentage float64 `json:"percentage"`
}

func (h *TrainingHandlerImpl) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	enrollment, err := h.trainingService.UpdateProgress(r.Context(), chi.URLParam(r, "id"), req.Percentage)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, enrollment)
}

type completeRequest struct {
	Score  *float64 `json:"score,omitempty"`
	Passed *bool    `json:"passed,omitempty"`
}

func (h *TrainingHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	enrollment, err := h.trainingService.Complete(r.Context(), chi.URLParam(r, "id"), req.Score, req.Passed)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Enrollment completed", enrollment)
}

type failRequest struct {
	Score *float64 `json:"score,omitempty"`
}

func (h *TrainingHandlerImpl) Fail(w http.ResponseWriter, r *http.Request) {
	var req failRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	enrollment, err := h.trainingService.Fail(r.Context(), chi.URLParam(r, "id"), req.Score)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Enrollment marked failed", enrollment)
}

func (h *TrainingHandlerImpl) Drop(w http.ResponseWriter, r *http.Request) {
	enrollment, err := h.trainingService.Drop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Enrollment dropped", enrollment)
}

func (h *TrainingHandlerImpl) CompletionReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.trainingService.CompletionReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

func (h *TrainingHandlerImpl) ListMyEnrollments(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromRequest(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	enrollments, err := h.trainingService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, enrollments)
}
