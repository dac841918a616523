package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/dto"
	"github.com/skill-matrix-api/internal/repository"
)

// HistoryPoint - точка временного ряда прогресса: одна строка
// на пару (день, тип оценки)
type HistoryPoint struct {
	Date           time.Time
	AssessmentType string
	Score          float64
}

// AssessmentService определяет интерфейс журнала оценок
type AssessmentService interface {
	RecordSkill(ctx context.Context, orgID *int64, req *dto.RecordSkillAssessmentRequest) (*domain.SkillAssessment, error)
	RecordCompetency(ctx context.Context, orgID *int64, req *dto.RecordCompetencyAssessmentRequest) (*domain.CompetencyAssessment, error)
	LatestSkill(ctx context.Context, employeeID int64, competency, skill, assessmentType string, orgID *int64) (*domain.SkillAssessment, error)
	LatestCompetency(ctx context.Context, employeeID int64, competency, assessmentType string, orgID *int64) (*domain.CompetencyAssessment, error)
	SkillHistory(ctx context.Context, employeeID int64, competency, skill string, orgID *int64) ([]HistoryPoint, error)
	CompetencyHistory(ctx context.Context, employeeID int64, competency string, orgID *int64) ([]HistoryPoint, error)
}

type assessmentService struct {
	assessRepo repository.AssessmentRepository
	empRepo    repository.EmployeeRepository
}

// NewAssessmentService создаёт новый экземпляр сервиса
func NewAssessmentService(assessRepo repository.AssessmentRepository, empRepo repository.EmployeeRepository) AssessmentService {
	return &assessmentService{
		assessRepo: assessRepo,
		empRepo:    empRepo,
	}
}

// validScore проверяет диапазон 1.0–5.0 с шагом 0.5
func validScore(score float64) bool {
	if score < 1.0 || score > 5.0 {
		return false
	}
	return math.Mod(score*2, 1) == 0
}

// parseAssessmentDate разбирает дату оценки; по умолчанию — сегодня.
// Точность — календарный день, без времени.
func parseAssessmentDate(raw *string) (time.Time, error) {
	if raw == nil {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", *raw)
}

func (s *assessmentService) RecordSkill(ctx context.Context, orgID *int64, req *dto.RecordSkillAssessmentRequest) (*domain.SkillAssessment, error) {
	if !validScore(req.Score) {
		return nil, domain.ErrInvalidScore
	}

	if _, err := s.empRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	date, err := parseAssessmentDate(req.AssessmentDate)
	if err != nil {
		return nil, err
	}

	a := &domain.SkillAssessment{
		OrganizationID: orgID,
		EmployeeID:     req.EmployeeID,
		Competency:     strings.TrimSpace(req.Competency),
		Skill:          strings.TrimSpace(req.Skill),
		Score:          req.Score,
		AssessmentType: req.AssessmentType,
		AssessmentDate: date,
		Notes:          req.Notes,
	}

	if err := s.assessRepo.CreateSkill(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *assessmentService) RecordCompetency(ctx context.Context, orgID *int64, req *dto.RecordCompetencyAssessmentRequest) (*domain.CompetencyAssessment, error) {
	if !validScore(req.Score) {
		return nil, domain.ErrInvalidScore
	}

	if _, err := s.empRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	date, err := parseAssessmentDate(req.AssessmentDate)
	if err != nil {
		return nil, err
	}

	a := &domain.CompetencyAssessment{
		OrganizationID: orgID,
		EmployeeID:     req.EmployeeID,
		Competency:     strings.TrimSpace(req.Competency),
		Score:          req.Score,
		AssessmentType: req.AssessmentType,
		AssessmentDate: date,
		Notes:          req.Notes,
	}

	if err := s.assessRepo.CreateCompetency(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *assessmentService) LatestSkill(ctx context.Context, employeeID int64, competency, skill, assessmentType string, orgID *int64) (*domain.SkillAssessment, error) {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	return s.assessRepo.LatestSkill(ctx, employeeID, competency, skill, assessmentType, orgID)
}

func (s *assessmentService) LatestCompetency(ctx context.Context, employeeID int64, competency, assessmentType string, orgID *int64) (*domain.CompetencyAssessment, error) {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	return s.assessRepo.LatestCompetency(ctx, employeeID, competency, assessmentType, orgID)
}

func (s *assessmentService) SkillHistory(ctx context.Context, employeeID int64, competency, skill string, orgID *int64) ([]HistoryPoint, error) {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	rows, err := s.assessRepo.HistorySkill(ctx, employeeID, competency, skill, orgID)
	if err != nil {
		return nil, err
	}

	points := make([]HistoryPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, HistoryPoint{
			Date:           row.AssessmentDate,
			AssessmentType: row.AssessmentType,
			Score:          row.Score,
		})
	}
	return dedupeHistory(points), nil
}

func (s *assessmentService) CompetencyHistory(ctx context.Context, employeeID int64, competency string, orgID *int64) ([]HistoryPoint, error) {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	rows, err := s.assessRepo.HistoryCompetency(ctx, employeeID, competency, orgID)
	if err != nil {
		return nil, err
	}

	points := make([]HistoryPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, HistoryPoint{
			Date:           row.AssessmentDate,
			AssessmentType: row.AssessmentType,
			Score:          row.Score,
		})
	}
	return dedupeHistory(points), nil
}

// dedupeHistory схлопывает несколько оценок одного дня до одной строки
// на пару (день, тип). Вход отсортирован по (дата, id) по возрастанию,
// поэтому представителем дня остаётся строка с наибольшим id.
func dedupeHistory(points []HistoryPoint) []HistoryPoint {
	type dayKey struct {
		date string
		typ  string
	}

	index := make(map[dayKey]int)
	result := make([]HistoryPoint, 0, len(points))

	for _, p := range points {
		key := dayKey{date: p.Date.Format("2006-01-02"), typ: p.AssessmentType}
		if i, ok := index[key]; ok {
			result[i] = p
			continue
		}
		index[key] = len(result)
		result = append(result, p)
	}

	return result
}
