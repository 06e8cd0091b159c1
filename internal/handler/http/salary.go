package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/salary"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	CreateSalary(w http.ResponseWriter, r *http.Request)
	GetSalary(w http.ResponseWriter, r *http.Request)
	UpdateSalary(w http.ResponseWriter, r *http.Request)
	DeleteSalary(w http.ResponseWriter, r *http.Request)
	ListByMonth(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	ExportMonth(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// CreateSalary handles POST /salary
func (h *salaryHandlerImpl) CreateSalary(w http.ResponseWriter, r *http.Request) {
	var req salary.CreateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.CreateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Created {
		response.Created(w, "Salary record created successfully", result)
		return
	}
	response.SuccessWithMessage(w, "Salary record updated successfully", result)
}

// GetSalary handles GET /salary/{id}
func (h *salaryHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.GetSalary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSalary handles PUT /salary/{id}
func (h *salaryHandlerImpl) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	var req salary.UpdateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.salaryService.UpdateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record updated successfully", result)
}

// DeleteSalary handles DELETE /salary/{id}
func (h *salaryHandlerImpl) DeleteSalary(w http.ResponseWriter, r *http.Request) {
	if err := h.salaryService.DeleteSalary(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record deleted successfully", nil)
}

// ListByMonth handles GET /salary/month/{month}
func (h *salaryHandlerImpl) ListByMonth(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.ListByMonth(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByEmployee handles GET /salary/employee/{employee_id}
func (h *salaryHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.ListByEmployee(r.Context(), chi.URLParam(r, "employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary handles GET /salary/payroll/summary/{month}
func (h *salaryHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.Summary(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonth handles GET /salary/payroll/export/{month}
func (h *salaryHandlerImpl) ExportMonth(w http.ResponseWriter, r *http.Request) {
	doc, err := h.salaryService.ExportMonth(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, doc.Filename, doc.ContentType, doc.Content)
}

// Payslip handles GET /salary/{id}/payslip
func (h *salaryHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	doc, err := h.salaryService.Payslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, doc.Filename, doc.ContentType, doc.Content)
}
