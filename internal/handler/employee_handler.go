package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/dto"
	"github.com/skill-matrix-api/internal/middleware"
	"github.com/skill-matrix-api/internal/service"
)

type EmployeeHandler struct {
	empService service.EmployeeService
	validator  *validator.Validate
	logger     *slog.Logger
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		empService: empService,
		validator:  validator.New(),
		logger:     logger,
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	emp, err := h.empService.Create(r.Context(), middleware.OrganizationFrom(r.Context()), &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")
	managerID := parseOptionalID(r.URL.Query().Get("manager_id"))

	employees, err := h.empService.List(r.Context(), middleware.OrganizationFrom(r.Context()), department, managerID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, toEmployeeResponses(employees))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request, id int64) {
	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var req dto.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	emp, err := h.empService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.empService.Delete(r.Context(), id); err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reports возвращает прямых подчинённых сотрудника
func (h *EmployeeHandler) Reports(w http.ResponseWriter, r *http.Request, id int64) {
	employees, err := h.empService.DirectReports(r.Context(), id)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, toEmployeeResponses(employees))
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:             emp.ID,
		OrganizationID: emp.OrganizationID,
		Name:           emp.Name,
		Email:          emp.Email,
		JobTitle:       emp.JobTitle,
		JobLevel:       emp.JobLevel,
		Department:     emp.Department,
		ManagerID:      emp.ManagerID,
		CreatedAt:      emp.CreatedAt,
	}
	if emp.HireDate != nil {
		hireDate := emp.HireDate.Format("2006-01-02")
		resp.HireDate = &hireDate
	}
	return resp
}

func toEmployeeResponses(employees []domain.Employee) []dto.EmployeeResponse {
	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, toEmployeeResponse(&employees[i]))
	}
	return result
}
