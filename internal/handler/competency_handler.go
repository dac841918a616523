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

type CompetencyHandler struct {
	compService service.CompetencyService
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewCompetencyHandler(compService service.CompetencyService, logger *slog.Logger) *CompetencyHandler {
	return &CompetencyHandler{
		compService: compService,
		validator:   validator.New(),
		logger:      logger,
	}
}

func (h *CompetencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompetencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	comp, err := h.compService.Create(r.Context(), middleware.OrganizationFrom(r.Context()), &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, comp)
}

func (h *CompetencyHandler) List(w http.ResponseWriter, r *http.Request) {
	comps, err := h.compService.List(r.Context(), middleware.OrganizationFrom(r.Context()))
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	if comps == nil {
		comps = []domain.Competency{}
	}
	respondJSON(w, http.StatusOK, comps)
}

func (h *CompetencyHandler) GetByID(w http.ResponseWriter, r *http.Request, id int64) {
	comp, err := h.compService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, comp)
}

func (h *CompetencyHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var req dto.UpdateCompetencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	comp, err := h.compService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, comp)
}

func (h *CompetencyHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.compService.Delete(r.Context(), id); err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CompetencyHandler) CreateSkill(w http.ResponseWriter, r *http.Request, competencyID int64) {
	var req dto.CreateSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	skill, err := h.compService.CreateSkill(r.Context(), competencyID, &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, skill)
}

func (h *CompetencyHandler) ListSkills(w http.ResponseWriter, r *http.Request, competencyID int64) {
	skills, err := h.compService.ListSkills(r.Context(), competencyID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	if skills == nil {
		skills = []domain.Skill{}
	}
	respondJSON(w, http.StatusOK, skills)
}

func (h *CompetencyHandler) ListAllSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.compService.ListAllSkills(r.Context(), middleware.OrganizationFrom(r.Context()))
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	if skills == nil {
		skills = []domain.Skill{}
	}
	respondJSON(w, http.StatusOK, skills)
}

func (h *CompetencyHandler) UpdateSkill(w http.ResponseWriter, r *http.Request, skillID int64) {
	var req dto.UpdateSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	skill, err := h.compService.UpdateSkill(r.Context(), skillID, &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, skill)
}

func (h *CompetencyHandler) DeleteSkill(w http.ResponseWriter, r *http.Request, skillID int64) {
	if err := h.compService.DeleteSkill(r.Context(), skillID); err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
