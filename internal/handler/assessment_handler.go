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

type AssessmentHandler struct {
	assessService service.AssessmentService
	validator     *validator.Validate
	logger        *slog.Logger
}

func NewAssessmentHandler(assessService service.AssessmentService, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessService: assessService,
		validator:     validator.New(),
		logger:        logger,
	}
}

func (h *AssessmentHandler) RecordSkill(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordSkillAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	a, err := h.assessService.RecordSkill(r.Context(), middleware.OrganizationFrom(r.Context()), &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toSkillAssessmentResponse(a))
}

func (h *AssessmentHandler) RecordCompetency(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordCompetencyAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	a, err := h.assessService.RecordCompetency(r.Context(), middleware.OrganizationFrom(r.Context()), &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCompetencyAssessmentResponse(a))
}

// Latest возвращает последнюю оценку по точному ключу: максимальная дата,
// при равенстве дат — больший id
func (h *AssessmentHandler) Latest(w http.ResponseWriter, r *http.Request, employeeID int64) {
	query := dto.LatestAssessmentQuery{
		Competency:     r.URL.Query().Get("competency"),
		Skill:          r.URL.Query().Get("skill"),
		AssessmentType: r.URL.Query().Get("type"),
	}

	if err := h.validator.Struct(&query); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	orgID := middleware.OrganizationFrom(r.Context())

	if query.Skill != "" {
		a, err := h.assessService.LatestSkill(r.Context(), employeeID, query.Competency, query.Skill, query.AssessmentType, orgID)
		if err != nil {
			handleServiceError(h.logger, w, err)
			return
		}
		respondJSON(w, http.StatusOK, toSkillAssessmentResponse(a))
		return
	}

	a, err := h.assessService.LatestCompetency(r.Context(), employeeID, query.Competency, query.AssessmentType, orgID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCompetencyAssessmentResponse(a))
}

// History возвращает дневной ряд прогресса: не более одной точки
// на пару (день, тип оценки)
func (h *AssessmentHandler) History(w http.ResponseWriter, r *http.Request, employeeID int64) {
	competency := r.URL.Query().Get("competency")
	if competency == "" {
		respondError(w, http.StatusBadRequest, "validation error", "competency is required")
		return
	}
	skill := r.URL.Query().Get("skill")
	orgID := middleware.OrganizationFrom(r.Context())

	var points []service.HistoryPoint
	var err error
	if skill != "" {
		points, err = h.assessService.SkillHistory(r.Context(), employeeID, competency, skill, orgID)
	} else {
		points, err = h.assessService.CompetencyHistory(r.Context(), employeeID, competency, orgID)
	}
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	result := make([]dto.HistoryPointResponse, 0, len(points))
	for _, p := range points {
		result = append(result, dto.HistoryPointResponse{
			Date:           p.Date.Format("2006-01-02"),
			AssessmentType: p.AssessmentType,
			Score:          p.Score,
		})
	}
	respondJSON(w, http.StatusOK, result)
}

func toSkillAssessmentResponse(a *domain.SkillAssessment) dto.AssessmentResponse {
	return dto.AssessmentResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		Competency:     a.Competency,
		Skill:          a.Skill,
		Score:          a.Score,
		AssessmentType: a.AssessmentType,
		AssessmentDate: a.AssessmentDate.Format("2006-01-02"),
		Notes:          a.Notes,
	}
}

func toCompetencyAssessmentResponse(a *domain.CompetencyAssessment) dto.AssessmentResponse {
	return dto.AssessmentResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		Competency:     a.Competency,
		Score:          a.Score,
		AssessmentType: a.AssessmentType,
		AssessmentDate: a.AssessmentDate.Format("2006-01-02"),
		Notes:          a.Notes,
	}
}
