package repository

import (
	"context"

	"github.com/skill-matrix-api/internal/domain"
	"gorm.io/gorm"
)

// JobLevelRepository определяет интерфейс для работы с уровнями должностей
type JobLevelRepository interface {
	Create(ctx context.Context, level *domain.JobLevel) error
	GetByID(ctx context.Context, id int64) (*domain.JobLevel, error)
	GetByName(ctx context.Context, name string, orgID *int64) (*domain.JobLevel, error)
	List(ctx context.Context, orgID *int64) ([]domain.JobLevel, error)
	Update(ctx context.Context, level *domain.JobLevel) error
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string, orgID *int64, excludeID *int64) (bool, error)
	RenameCascade(ctx context.Context, id int64, orgID *int64, oldName, newName string) error
}

type jobLevelRepository struct {
	db *gorm.DB
}

// NewJobLevelRepository создаёт новый экземпляр репозитория
func NewJobLevelRepository(db *gorm.DB) JobLevelRepository {
	return &jobLevelRepository{db: db}
}

func (r *jobLevelRepository) Create(ctx context.Context, level *domain.JobLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

func (r *jobLevelRepository) GetByID(ctx context.Context, id int64) (*domain.JobLevel, error) {
	var level domain.JobLevel
	err := r.db.WithContext(ctx).First(&level, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrJobLevelNotFound
		}
		return nil, err
	}
	return &level, nil
}

func (r *jobLevelRepository) GetByName(ctx context.Context, name string, orgID *int64) (*domain.JobLevel, error) {
	var level domain.JobLevel
	err := r.db.WithContext(ctx).
		Scopes(orgScope(orgID)).
		Where("name = ?", name).
		First(&level).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrJobLevelNotFound
		}
		return nil, err
	}
	return &level, nil
}

func (r *jobLevelRepository) List(ctx context.Context, orgID *int64) ([]domain.JobLevel, error) {
	var levels []domain.JobLevel
	err := r.db.WithContext(ctx).
		Scopes(orgScope(orgID)).
		Order("id ASC").
		Find(&levels).Error
	return levels, err
}

func (r *jobLevelRepository) Update(ctx context.Context, level *domain.JobLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

func (r *jobLevelRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.JobLevel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrJobLevelNotFound
	}
	return nil
}

// RenameCascade переименовывает уровень и переписывает ссылки по имени:
// ярлык уровня у сотрудников и ключ job_level в таблицах ожиданий
func (r *jobLevelRepository) RenameCascade(ctx context.Context, id int64, orgID *int64, oldName, newName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.JobLevel{}).
			Where("id = ?", id).
			Update("name", newName).Error; err != nil {
			return err
		}
		if err := matchOrg(tx.Model(&domain.Employee{}), orgID).
			Where("job_level = ?", oldName).
			Update("job_level", newName).Error; err != nil {
			return err
		}
		if err := matchOrg(tx.Model(&domain.SkillExpectation{}), orgID).
			Where("job_level = ?", oldName).
			Update("job_level", newName).Error; err != nil {
			return err
		}
		return matchOrg(tx.Model(&domain.CompetencyExpectation{}), orgID).
			Where("job_level = ?", oldName).
			Update("job_level", newName).Error
	})
}

func (r *jobLevelRepository) ExistsByName(ctx context.Context, name string, orgID *int64, excludeID *int64) (bool, error) {
	var count int64
	query := matchOrg(r.db.WithContext(ctx).Model(&domain.JobLevel{}), orgID).
		Where("name = ?", name)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, err
}
