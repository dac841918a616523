package repository

import (
	"context"

	"github.com/skill-matrix-api/internal/domain"
	"gorm.io/gorm"
)

// ExpectationRepository определяет интерфейс для работы с ожиданиями.
// Составной ключ — (уровень, компетенция[, навык]) в пределах организации;
// запись без организации видима всем организациям.
type ExpectationRepository interface {
	UpsertSkill(ctx context.Context, exp *domain.SkillExpectation) error
	UpsertCompetency(ctx context.Context, exp *domain.CompetencyExpectation) error
	GetSkill(ctx context.Context, jobLevel, competency, skill string, orgID *int64) (*domain.SkillExpectation, error)
	GetCompetency(ctx context.Context, jobLevel, competency string, orgID *int64) (*domain.CompetencyExpectation, error)
	ListSkillByLevel(ctx context.Context, jobLevel string, orgID *int64) ([]domain.SkillExpectation, error)
	ListCompetencyByLevel(ctx context.Context, jobLevel string, orgID *int64) ([]domain.CompetencyExpectation, error)
}

type expectationRepository struct {
	db *gorm.DB
}

// NewExpectationRepository создаёт новый экземпляр репозитория
func NewExpectationRepository(db *gorm.DB) ExpectationRepository {
	return &expectationRepository{db: db}
}

// UpsertSkill записывает ожидание по навыку: не более одной строки
// на составной ключ, повторная запись обновляет значение
func (r *expectationRepository) UpsertSkill(ctx context.Context, exp *domain.SkillExpectation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.SkillExpectation
		err := matchOrg(tx, exp.OrganizationID).
			Where("job_level = ? AND competency = ? AND skill = ?",
				exp.JobLevel, exp.Competency, exp.Skill).
			First(&existing).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return tx.Create(exp).Error
			}
			return err
		}

		existing.ExpectedScore = exp.ExpectedScore
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*exp = existing
		return nil
	})
}

// UpsertCompetency записывает ожидание по компетенции с той же семантикой
func (r *expectationRepository) UpsertCompetency(ctx context.Context, exp *domain.CompetencyExpectation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.CompetencyExpectation
		err := matchOrg(tx, exp.OrganizationID).
			Where("job_level = ? AND competency = ?", exp.JobLevel, exp.Competency).
			First(&existing).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return tx.Create(exp).Error
			}
			return err
		}

		existing.ExpectedScore = exp.ExpectedScore
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*exp = existing
		return nil
	})
}

func (r *expectationRepository) GetSkill(ctx context.Context, jobLevel, competency, skill string, orgID *int64) (*domain.SkillExpectation, error) {
	var exp domain.SkillExpectation
	err := r.db.WithContext(ctx).
		Scopes(orgPreference(orgID)).
		Where("job_level = ? AND competency = ? AND skill = ?", jobLevel, competency, skill).
		First(&exp).Error
	if err != nil {
		// Отсутствие ожидания — не ошибка: разрыв остаётся неопределённым
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &exp, nil
}

func (r *expectationRepository) GetCompetency(ctx context.Context, jobLevel, competency string, orgID *int64) (*domain.CompetencyExpectation, error) {
	var exp domain.CompetencyExpectation
	err := r.db.WithContext(ctx).
		Scopes(orgPreference(orgID)).
		Where("job_level = ? AND competency = ?", jobLevel, competency).
		First(&exp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &exp, nil
}

func (r *expectationRepository) ListSkillByLevel(ctx context.Context, jobLevel string, orgID *int64) ([]domain.SkillExpectation, error) {
	var exps []domain.SkillExpectation
	err := r.db.WithContext(ctx).
		Scopes(orgScopeShared(orgID)).
		Where("job_level = ?", jobLevel).
		Order("competency ASC, skill ASC").
		Find(&exps).Error
	return exps, err
}

func (r *expectationRepository) ListCompetencyByLevel(ctx context.Context, jobLevel string, orgID *int64) ([]domain.CompetencyExpectation, error) {
	var exps []domain.CompetencyExpectation
	err := r.db.WithContext(ctx).
		Scopes(orgScopeShared(orgID)).
		Where("job_level = ?", jobLevel).
		Order("competency ASC").
		Find(&exps).Error
	return exps, err
}
