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

type JobLevelHandler struct {
	levelService service.JobLevelService
	validator    *validator.Validate
	logger       *slog.Logger
}

func NewJobLevelHandler(levelService service.JobLevelService, logger *slog.Logger) *JobLevelHandler {
	return &JobLevelHandler{
		levelService: levelService,
		validator:    validator.New(),
		logger:       logger,
	}
}

func (h *JobLevelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateJobLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	level, err := h.levelService.Create(r.Context(), middleware.OrganizationFrom(r.Context()), &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, level)
}

func (h *JobLevelHandler) List(w http.ResponseWriter, r *http.Request) {
	levels, err := h.levelService.List(r.Context(), middleware.OrganizationFrom(r.Context()))
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	if levels == nil {
		levels = []domain.JobLevel{}
	}
	respondJSON(w, http.StatusOK, levels)
}

func (h *JobLevelHandler) GetByID(w http.ResponseWriter, r *http.Request, id int64) {
	level, err := h.levelService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, level)
}

func (h *JobLevelHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var req dto.UpdateJobLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	level, err := h.levelService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, level)
}

func (h *JobLevelHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.levelService.Delete(r.Context(), id); err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
