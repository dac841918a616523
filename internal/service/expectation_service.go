package service

import (
	"context"
	"sort"
	"strings"

	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/dto"
	"github.com/skill-matrix-api/internal/repository"
)

// GapRow - строка сравнения с ожиданием. Gap со знаком: положительный —
// выше ожидания, отрицательный — ниже. Без заданного ожидания Expected
// и Gap остаются nil, не нулём.
type GapRow struct {
	Competency string
	Skill      string
	Actual     float64
	Expected   *float64
	Gap        *float64
}

// ExpectationService определяет интерфейс ожиданий и сравнения с ними
type ExpectationService interface {
	UpsertSkill(ctx context.Context, orgID *int64, req *dto.UpsertSkillExpectationRequest) (*domain.SkillExpectation, error)
	UpsertCompetency(ctx context.Context, orgID *int64, req *dto.UpsertCompetencyExpectationRequest) (*domain.CompetencyExpectation, error)
	ListSkillByLevel(ctx context.Context, jobLevel string, orgID *int64) ([]domain.SkillExpectation, error)
	ListCompetencyByLevel(ctx context.Context, jobLevel string, orgID *int64) ([]domain.CompetencyExpectation, error)
	SkillGaps(ctx context.Context, employeeID int64, jobLevel, assessmentType string, orgID *int64) ([]GapRow, error)
	CompetencyGaps(ctx context.Context, employeeID int64, jobLevel, assessmentType string, orgID *int64) ([]GapRow, error)
}

type expectationService struct {
	expRepo    repository.ExpectationRepository
	assessRepo repository.AssessmentRepository
	empRepo    repository.EmployeeRepository
}

// NewExpectationService создаёт новый экземпляр сервиса
func NewExpectationService(
	expRepo repository.ExpectationRepository,
	assessRepo repository.AssessmentRepository,
	empRepo repository.EmployeeRepository,
) ExpectationService {
	return &expectationService{
		expRepo:    expRepo,
		assessRepo: assessRepo,
		empRepo:    empRepo,
	}
}

func (s *expectationService) UpsertSkill(ctx context.Context, orgID *int64, req *dto.UpsertSkillExpectationRequest) (*domain.SkillExpectation, error) {
	if !validScore(req.ExpectedScore) {
		return nil, domain.ErrInvalidScore
	}

	exp := &domain.SkillExpectation{
		OrganizationID: orgID,
		JobLevel:       strings.TrimSpace(req.JobLevel),
		Competency:     strings.TrimSpace(req.Competency),
		Skill:          strings.TrimSpace(req.Skill),
		ExpectedScore:  req.ExpectedScore,
	}

	if err := s.expRepo.UpsertSkill(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

func (s *expectationService) UpsertCompetency(ctx context.Context, orgID *int64, req *dto.UpsertCompetencyExpectationRequest) (*domain.CompetencyExpectation, error) {
	if !validScore(req.ExpectedScore) {
		return nil, domain.ErrInvalidScore
	}

	exp := &domain.CompetencyExpectation{
		OrganizationID: orgID,
		JobLevel:       strings.TrimSpace(req.JobLevel),
		Competency:     strings.TrimSpace(req.Competency),
		ExpectedScore:  req.ExpectedScore,
	}

	if err := s.expRepo.UpsertCompetency(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

func (s *expectationService) ListSkillByLevel(ctx context.Context, jobLevel string, orgID *int64) ([]domain.SkillExpectation, error) {
	return s.expRepo.ListSkillByLevel(ctx, jobLevel, orgID)
}

func (s *expectationService) ListCompetencyByLevel(ctx context.Context, jobLevel string, orgID *int64) ([]domain.CompetencyExpectation, error) {
	return s.expRepo.ListCompetencyByLevel(ctx, jobLevel, orgID)
}

// SkillGaps сравнивает последние значения сотрудника с ожиданиями уровня.
// Уровень не выводится из порядка таблицы уровней: пустой jobLevel означает
// текущий уровень сотрудника, сравнение со «следующим» уровнем — явный
// параметр вызывающей стороны.
func (s *expectationService) SkillGaps(ctx context.Context, employeeID int64, jobLevel, assessmentType string, orgID *int64) ([]GapRow, error) {
	emp, err := s.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if jobLevel == "" {
		jobLevel = emp.JobLevel
	}

	rows, err := s.assessRepo.ListSkillByEmployees(ctx, []int64{employeeID}, assessmentType, orgID)
	if err != nil {
		return nil, err
	}

	// Ключи без единой оценки не оцениваются: нули не подставляются
	latest := latestSkillPerKey(rows)

	result := make([]GapRow, 0, len(latest))
	for key, row := range latest {
		gap := GapRow{
			Competency: key.competency,
			Skill:      key.skill,
			Actual:     row.Score,
		}

		exp, err := s.expRepo.GetSkill(ctx, jobLevel, key.competency, key.skill, orgID)
		if err != nil {
			return nil, err
		}
		if exp != nil {
			expected := exp.ExpectedScore
			delta := row.Score - expected
			gap.Expected = &expected
			gap.Gap = &delta
		}

		result = append(result, gap)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Competency != result[j].Competency {
			return result[i].Competency < result[j].Competency
		}
		return result[i].Skill < result[j].Skill
	})
	return result, nil
}

// CompetencyGaps - то же на уровне компетенций; исходные значения берутся
// только из журнала оценок компетенций
func (s *expectationService) CompetencyGaps(ctx context.Context, employeeID int64, jobLevel, assessmentType string, orgID *int64) ([]GapRow, error) {
	emp, err := s.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if jobLevel == "" {
		jobLevel = emp.JobLevel
	}

	rows, err := s.assessRepo.ListCompetencyByEmployees(ctx, []int64{employeeID}, assessmentType, orgID)
	if err != nil {
		return nil, err
	}

	latest := latestCompetencyPerKey(rows)

	result := make([]GapRow, 0, len(latest))
	for key, row := range latest {
		gap := GapRow{
			Competency: key.competency,
			Actual:     row.Score,
		}

		exp, err := s.expRepo.GetCompetency(ctx, jobLevel, key.competency, orgID)
		if err != nil {
			return nil, err
		}
		if exp != nil {
			expected := exp.ExpectedScore
			delta := row.Score - expected
			gap.Expected = &expected
			gap.Gap = &delta
		}

		result = append(result, gap)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Competency < result[j].Competency
	})
	return result, nil
}
