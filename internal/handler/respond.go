package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/dto"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, errMsg, message string) {
	respondJSON(w, status, dto.ErrorResponse{
		Error:   errMsg,
		Message: message,
	})
}

// handleServiceError переводит бизнес-ошибки в HTTP статусы
func handleServiceError(logger *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrCompetencyNotFound),
		errors.Is(err, domain.ErrSkillNotFound),
		errors.Is(err, domain.ErrJobLevelNotFound),
		errors.Is(err, domain.ErrAssessmentNotFound),
		errors.Is(err, domain.ErrInvitationNotFound):
		respondError(w, http.StatusNotFound, "not found", err.Error())

	case errors.Is(err, domain.ErrEmployeeIsManager),
		errors.Is(err, domain.ErrJobLevelInUse),
		errors.Is(err, domain.ErrDuplicateCompetencyName),
		errors.Is(err, domain.ErrDuplicateSkillName),
		errors.Is(err, domain.ErrDuplicateJobLevelName),
		errors.Is(err, domain.ErrInvitationAlreadyAccepted):
		respondError(w, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, domain.ErrSelfManager),
		errors.Is(err, domain.ErrManagerCycle),
		errors.Is(err, domain.ErrInvalidScore),
		errors.Is(err, domain.ErrUnknownJobLevel):
		respondError(w, http.StatusBadRequest, "validation error", err.Error())

	default:
		logger.Error("internal error", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// parseID разбирает числовой идентификатор из сегмента пути
func parseID(segment string) (int64, error) {
	return strconv.ParseInt(segment, 10, 64)
}

// parseOptionalID разбирает необязательный числовой параметр запроса
func parseOptionalID(raw string) *int64 {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
