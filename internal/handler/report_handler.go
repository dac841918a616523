package handler

import (
	"log/slog"
	"net/http"

	"github.com/skill-matrix-api/internal/dto"
	"github.com/skill-matrix-api/internal/middleware"
	"github.com/skill-matrix-api/internal/service"
)

// ReportHandler отдаёт агрегированные представления: матрицы средних,
// командные радары и сравнение с ожиданиями
type ReportHandler struct {
	aggService service.AggregationService
	expService service.ExpectationService
	logger     *slog.Logger
}

func NewReportHandler(aggService service.AggregationService, expService service.ExpectationService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		aggService: aggService,
		expService: expService,
		logger:     logger,
	}
}

// EmployeeMatrix - средние по всей истории журнала сотрудника.
// view=competency читает только журнал оценок компетенций.
func (h *ReportHandler) EmployeeMatrix(w http.ResponseWriter, r *http.Request, employeeID int64) {
	view := r.URL.Query().Get("view")
	orgID := middleware.OrganizationFrom(r.Context())

	var rows []service.MatrixRow
	var err error
	switch view {
	case "", "skill":
		rows, err = h.aggService.EmployeeSkillMatrix(r.Context(), employeeID, orgID)
	case "competency":
		rows, err = h.aggService.EmployeeCompetencyMatrix(r.Context(), employeeID, orgID)
	default:
		respondError(w, http.StatusBadRequest, "validation error", "view must be skill or competency")
		return
	}
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, toMatrixResponses(rows))
}

// TeamMatrix - средние по всей истории журнала команды: прямые подчинённые
// руководителя либо сотрудники подразделения
func (h *ReportHandler) TeamMatrix(w http.ResponseWriter, r *http.Request, managerID *int64) {
	view := r.URL.Query().Get("view")
	department := r.URL.Query().Get("department")
	orgID := middleware.OrganizationFrom(r.Context())

	if managerID == nil && department == "" {
		respondError(w, http.StatusBadRequest, "validation error", "manager id or department is required")
		return
	}

	var rows []service.MatrixRow
	var err error
	switch view {
	case "", "skill":
		rows, err = h.aggService.TeamSkillMatrix(r.Context(), managerID, department, orgID)
	case "competency":
		rows, err = h.aggService.TeamCompetencyMatrix(r.Context(), managerID, department, orgID)
	default:
		respondError(w, http.StatusBadRequest, "validation error", "view must be skill or competency")
		return
	}
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, toMatrixResponses(rows))
}

// TeamRadar - среднее последних значений по участникам команды.
// Участник без оценки ключа не входит в знаменатель этого ключа.
func (h *ReportHandler) TeamRadar(w http.ResponseWriter, r *http.Request, managerID int64) {
	view := r.URL.Query().Get("view")
	assessmentType := r.URL.Query().Get("type")
	if assessmentType == "" {
		assessmentType = "self"
	}
	if assessmentType != "self" && assessmentType != "manager" {
		respondError(w, http.StatusBadRequest, "validation error", "type must be self or manager")
		return
	}
	orgID := middleware.OrganizationFrom(r.Context())

	var rows []service.RadarRow
	var err error
	switch view {
	case "", "skill":
		rows, err = h.aggService.TeamSkillRadar(r.Context(), managerID, assessmentType, orgID)
	case "competency":
		rows, err = h.aggService.TeamCompetencyRadar(r.Context(), managerID, assessmentType, orgID)
	default:
		respondError(w, http.StatusBadRequest, "validation error", "view must be skill or competency")
		return
	}
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	result := make([]dto.RadarRowResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.RadarRowResponse{
			Competency: row.Competency,
			Skill:      row.Skill,
			Mean:       row.Mean,
			Members:    row.Members,
		})
	}
	respondJSON(w, http.StatusOK, result)
}

// EmployeeGaps - сравнение последних значений сотрудника с ожиданиями.
// level задаёт уровень сравнения явно; по умолчанию — текущий уровень
// сотрудника.
func (h *ReportHandler) EmployeeGaps(w http.ResponseWriter, r *http.Request, employeeID int64) {
	view := r.URL.Query().Get("view")
	level := r.URL.Query().Get("level")
	assessmentType := r.URL.Query().Get("type")
	if assessmentType != "" && assessmentType != "self" && assessmentType != "manager" {
		respondError(w, http.StatusBadRequest, "validation error", "type must be self or manager")
		return
	}
	orgID := middleware.OrganizationFrom(r.Context())

	var rows []service.GapRow
	var err error
	switch view {
	case "", "skill":
		rows, err = h.expService.SkillGaps(r.Context(), employeeID, level, assessmentType, orgID)
	case "competency":
		rows, err = h.expService.CompetencyGaps(r.Context(), employeeID, level, assessmentType, orgID)
	default:
		respondError(w, http.StatusBadRequest, "validation error", "view must be skill or competency")
		return
	}
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	result := make([]dto.GapRowResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.GapRowResponse{
			Competency: row.Competency,
			Skill:      row.Skill,
			Actual:     row.Actual,
			Expected:   row.Expected,
			Gap:        row.Gap,
		})
	}
	respondJSON(w, http.StatusOK, result)
}

func toMatrixResponses(rows []service.MatrixRow) []dto.MatrixRowResponse {
	result := make([]dto.MatrixRowResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.MatrixRowResponse{
			Competency:     row.Competency,
			Skill:          row.Skill,
			AssessmentType: row.AssessmentType,
			Mean:           row.Mean,
			Count:          row.Count,
		})
	}
	return result
}
