package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/skill-matrix-api/internal/dto"
	"github.com/skill-matrix-api/internal/middleware"
	"github.com/skill-matrix-api/internal/service"
)

type ExpectationHandler struct {
	expService service.ExpectationService
	validator  *validator.Validate
	logger     *slog.Logger
}

func NewExpectationHandler(expService service.ExpectationService, logger *slog.Logger) *ExpectationHandler {
	return &ExpectationHandler{
		expService: expService,
		validator:  validator.New(),
		logger:     logger,
	}
}

// UpsertSkill записывает ожидание по навыку: повторная запись того же
// составного ключа обновляет значение
func (h *ExpectationHandler) UpsertSkill(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertSkillExpectationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	exp, err := h.expService.UpsertSkill(r.Context(), middleware.OrganizationFrom(r.Context()), &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, exp)
}

func (h *ExpectationHandler) UpsertCompetency(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertCompetencyExpectationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	exp, err := h.expService.UpsertCompetency(r.Context(), middleware.OrganizationFrom(r.Context()), &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, exp)
}

// List возвращает ожидания уровня должности: и по навыкам, и по компетенциям
func (h *ExpectationHandler) List(w http.ResponseWriter, r *http.Request) {
	jobLevel := r.URL.Query().Get("job_level")
	if jobLevel == "" {
		respondError(w, http.StatusBadRequest, "validation error", "job_level is required")
		return
	}

	orgID := middleware.OrganizationFrom(r.Context())

	skillExps, err := h.expService.ListSkillByLevel(r.Context(), jobLevel, orgID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	compExps, err := h.expService.ListCompetencyByLevel(r.Context(), jobLevel, orgID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"job_level":    jobLevel,
		"skills":       skillExps,
		"competencies": compExps,
	})
}
