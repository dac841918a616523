package repository

import (
	"context"

	"github.com/skill-matrix-api/internal/domain"
	"gorm.io/gorm"
)

// SkillRepository определяет интерфейс для работы с навыками
type SkillRepository interface {
	Create(ctx context.Context, skill *domain.Skill) error
	GetByID(ctx context.Context, id int64) (*domain.Skill, error)
	ListByCompetency(ctx context.Context, competencyID int64) ([]domain.Skill, error)
	Update(ctx context.Context, skill *domain.Skill) error
	ListByOrganization(ctx context.Context, orgID *int64) ([]domain.Skill, error)
	ExistsByName(ctx context.Context, competencyID int64, name string, excludeID *int64) (bool, error)
	RenameCascade(ctx context.Context, id int64, competencyName, oldName, newName string) error
	DeleteCascade(ctx context.Context, id int64, competencyName, name string) error
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository создаёт новый экземпляр репозитория
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *domain.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *skillRepository) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	var skill domain.Skill
	err := r.db.WithContext(ctx).First(&skill, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepository) Update(ctx context.Context, skill *domain.Skill) error {
	return r.db.WithContext(ctx).Save(skill).Error
}

func (r *skillRepository) ListByCompetency(ctx context.Context, competencyID int64) ([]domain.Skill, error) {
	var skills []domain.Skill
	err := r.db.WithContext(ctx).
		Where("competency_id = ?", competencyID).
		Order("id ASC").
		Find(&skills).Error
	return skills, err
}

func (r *skillRepository) ListByOrganization(ctx context.Context, orgID *int64) ([]domain.Skill, error) {
	var skills []domain.Skill
	err := r.db.WithContext(ctx).
		Scopes(skillOrgScope(orgID)).
		Order("skills.id ASC").
		Find(&skills).Error
	return skills, err
}

func (r *skillRepository) ExistsByName(ctx context.Context, competencyID int64, name string, excludeID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&domain.Skill{}).
		Where("competency_id = ? AND name = ?", competencyID, name)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, err
}

// RenameCascade переименовывает навык и переписывает зависимые оценки
// и ожидания, привязанные по паре (компетенция, навык), одной транзакцией
func (r *skillRepository) RenameCascade(ctx context.Context, id int64, competencyName, oldName, newName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Skill{}).
			Where("id = ?", id).
			Update("name", newName).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.SkillExpectation{}).
			Where("competency = ? AND skill = ?", competencyName, oldName).
			Update("skill", newName).Error; err != nil {
			return err
		}
		return tx.Model(&domain.SkillAssessment{}).
			Where("competency = ? AND skill = ?", competencyName, oldName).
			Update("skill", newName).Error
	})
}

// DeleteCascade удаляет навык вместе с оценками и ожиданиями,
// привязанными по паре (компетенция, навык)
func (r *skillRepository) DeleteCascade(ctx context.Context, id int64, competencyName, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("competency = ? AND skill = ?", competencyName, name).
			Delete(&domain.SkillAssessment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("competency = ? AND skill = ?", competencyName, name).
			Delete(&domain.SkillExpectation{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Skill{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrSkillNotFound
		}
		return nil
	})
}
