package repository

import (
	"context"

	"github.com/skill-matrix-api/internal/domain"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, orgID *int64, department string, managerID *int64) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	GetDirectReports(ctx context.Context, managerID int64) ([]domain.Employee, error)
	CountByManager(ctx context.Context, managerID int64) (int64, error)
	CountByJobLevel(ctx context.Context, orgID *int64, levelName string) (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context, orgID *int64, department string, managerID *int64) ([]domain.Employee, error) {
	query := r.db.WithContext(ctx).Scopes(orgScope(orgID))

	if department != "" {
		query = query.Where("department = ?", department)
	}
	if managerID != nil {
		query = query.Where("manager_id = ?", *managerID)
	}

	var employees []domain.Employee
	err := query.Order("id ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// GetDirectReports возвращает прямых подчинённых: один уровень, без
// транзитивного обхода дерева
func (r *employeeRepository) GetDirectReports(ctx context.Context, managerID int64) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) CountByManager(ctx context.Context, managerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("manager_id = ?", managerID).
		Count(&count).Error
	return count, err
}

func (r *employeeRepository) CountByJobLevel(ctx context.Context, orgID *int64, levelName string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Scopes(orgScope(orgID)).
		Where("job_level = ?", levelName).
		Count(&count).Error
	return count, err
}
