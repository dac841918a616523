package repository

import (
	"context"

	"github.com/skill-matrix-api/internal/domain"
	"gorm.io/gorm"
)

// AssessmentRepository определяет интерфейс журнала оценок.
// Журнал только дополняется; «последняя» оценка разрешается по максимальной
// дате, при равенстве дат побеждает больший id.
type AssessmentRepository interface {
	CreateSkill(ctx context.Context, a *domain.SkillAssessment) error
	CreateCompetency(ctx context.Context, a *domain.CompetencyAssessment) error
	LatestSkill(ctx context.Context, employeeID int64, competency, skill, assessmentType string, orgID *int64) (*domain.SkillAssessment, error)
	LatestCompetency(ctx context.Context, employeeID int64, competency, assessmentType string, orgID *int64) (*domain.CompetencyAssessment, error)
	ListSkillByEmployees(ctx context.Context, employeeIDs []int64, assessmentType string, orgID *int64) ([]domain.SkillAssessment, error)
	ListCompetencyByEmployees(ctx context.Context, employeeIDs []int64, assessmentType string, orgID *int64) ([]domain.CompetencyAssessment, error)
	HistorySkill(ctx context.Context, employeeID int64, competency, skill string, orgID *int64) ([]domain.SkillAssessment, error)
	HistoryCompetency(ctx context.Context, employeeID int64, competency string, orgID *int64) ([]domain.CompetencyAssessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository создаёт новый экземпляр репозитория
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) CreateSkill(ctx context.Context, a *domain.SkillAssessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assessmentRepository) CreateCompetency(ctx context.Context, a *domain.CompetencyAssessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assessmentRepository) LatestSkill(ctx context.Context, employeeID int64, competency, skill, assessmentType string, orgID *int64) (*domain.SkillAssessment, error) {
	var a domain.SkillAssessment
	err := r.db.WithContext(ctx).
		Scopes(orgScopeShared(orgID)).
		Where("employee_id = ? AND competency = ? AND skill = ? AND assessment_type = ?",
			employeeID, competency, skill, assessmentType).
		Order("assessment_date DESC, id DESC").
		First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepository) LatestCompetency(ctx context.Context, employeeID int64, competency, assessmentType string, orgID *int64) (*domain.CompetencyAssessment, error) {
	var a domain.CompetencyAssessment
	err := r.db.WithContext(ctx).
		Scopes(orgScopeShared(orgID)).
		Where("employee_id = ? AND competency = ? AND assessment_type = ?",
			employeeID, competency, assessmentType).
		Order("assessment_date DESC, id DESC").
		First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListSkillByEmployees возвращает все строки журнала по набору сотрудников;
// тип оценки — необязательный фильтр. Порядок детерминированный.
func (r *assessmentRepository) ListSkillByEmployees(ctx context.Context, employeeIDs []int64, assessmentType string, orgID *int64) ([]domain.SkillAssessment, error) {
	if len(employeeIDs) == 0 {
		return []domain.SkillAssessment{}, nil
	}

	query := r.db.WithContext(ctx).
		Scopes(orgScopeShared(orgID)).
		Where("employee_id IN ?", employeeIDs)
	if assessmentType != "" {
		query = query.Where("assessment_type = ?", assessmentType)
	}

	var rows []domain.SkillAssessment
	err := query.
		Order("employee_id ASC, competency ASC, skill ASC, assessment_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *assessmentRepository) ListCompetencyByEmployees(ctx context.Context, employeeIDs []int64, assessmentType string, orgID *int64) ([]domain.CompetencyAssessment, error) {
	if len(employeeIDs) == 0 {
		return []domain.CompetencyAssessment{}, nil
	}

	query := r.db.WithContext(ctx).
		Scopes(orgScopeShared(orgID)).
		Where("employee_id IN ?", employeeIDs)
	if assessmentType != "" {
		query = query.Where("assessment_type = ?", assessmentType)
	}

	var rows []domain.CompetencyAssessment
	err := query.
		Order("employee_id ASC, competency ASC, assessment_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *assessmentRepository) HistorySkill(ctx context.Context, employeeID int64, competency, skill string, orgID *int64) ([]domain.SkillAssessment, error) {
	var rows []domain.SkillAssessment
	err := r.db.WithContext(ctx).
		Scopes(orgScopeShared(orgID)).
		Where("employee_id = ? AND competency = ? AND skill = ?", employeeID, competency, skill).
		Order("assessment_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *assessmentRepository) HistoryCompetency(ctx context.Context, employeeID int64, competency string, orgID *int64) ([]domain.CompetencyAssessment, error) {
	var rows []domain.CompetencyAssessment
	err := r.db.WithContext(ctx).
		Scopes(orgScopeShared(orgID)).
		Where("employee_id = ? AND competency = ?", employeeID, competency).
		Order("assessment_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}
