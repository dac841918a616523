package repository

import (
	"context"

	"github.com/skill-matrix-api/internal/domain"
	"gorm.io/gorm"
)

// CompetencyRepository определяет интерфейс для работы с компетенциями
type CompetencyRepository interface {
	Create(ctx context.Context, comp *domain.Competency) error
	GetByID(ctx context.Context, id int64) (*domain.Competency, error)
	List(ctx context.Context, orgID *int64) ([]domain.Competency, error)
	Update(ctx context.Context, comp *domain.Competency) error
	ExistsByName(ctx context.Context, name string, orgID *int64, excludeID *int64) (bool, error)
	RenameCascade(ctx context.Context, id int64, oldName, newName string) error
	DeleteCascade(ctx context.Context, id int64, name string) error
}

type competencyRepository struct {
	db *gorm.DB
}

// NewCompetencyRepository создаёт новый экземпляр репозитория
func NewCompetencyRepository(db *gorm.DB) CompetencyRepository {
	return &competencyRepository{db: db}
}

func (r *competencyRepository) Create(ctx context.Context, comp *domain.Competency) error {
	return r.db.WithContext(ctx).Create(comp).Error
}

func (r *competencyRepository) GetByID(ctx context.Context, id int64) (*domain.Competency, error) {
	var comp domain.Competency
	err := r.db.WithContext(ctx).
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&comp, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrCompetencyNotFound
		}
		return nil, err
	}
	return &comp, nil
}

func (r *competencyRepository) List(ctx context.Context, orgID *int64) ([]domain.Competency, error) {
	var comps []domain.Competency
	err := r.db.WithContext(ctx).
		Scopes(orgScope(orgID)).
		Order("id ASC").
		Find(&comps).Error
	return comps, err
}

func (r *competencyRepository) Update(ctx context.Context, comp *domain.Competency) error {
	return r.db.WithContext(ctx).Save(comp).Error
}

func (r *competencyRepository) ExistsByName(ctx context.Context, name string, orgID *int64, excludeID *int64) (bool, error) {
	var count int64
	query := matchOrg(r.db.WithContext(ctx).Model(&domain.Competency{}), orgID).
		Where("name = ?", name)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, err
}

// RenameCascade переименовывает компетенцию и в той же транзакции
// переписывает все зависимые строки, привязанные по старому имени.
// Без каскада исторические оценки и ожидания осиротеют: они исчезают
// из всех агрегаций, потому что привязка идёт по строке имени.
func (r *competencyRepository) RenameCascade(ctx context.Context, id int64, oldName, newName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Competency{}).
			Where("id = ?", id).
			Update("name", newName).Error; err != nil {
			return err
		}

		dependents := []interface{}{
			&domain.SkillExpectation{},
			&domain.CompetencyExpectation{},
			&domain.SkillAssessment{},
			&domain.CompetencyAssessment{},
		}
		for _, model := range dependents {
			if err := tx.Model(model).
				Where("competency = ?", oldName).
				Update("competency", newName).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCascade удаляет компетенцию, её навыки и все оценки и ожидания,
// привязанные по имени компетенции, одной транзакцией
func (r *competencyRepository) DeleteCascade(ctx context.Context, id int64, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("competency = ?", name).Delete(&domain.SkillAssessment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("competency = ?", name).Delete(&domain.CompetencyAssessment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("competency = ?", name).Delete(&domain.SkillExpectation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("competency = ?", name).Delete(&domain.CompetencyExpectation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("competency_id = ?", id).Delete(&domain.Skill{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Competency{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrCompetencyNotFound
		}
		return nil
	})
}
