package service

import (
	"context"
	"strings"
	"time"

	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/dto"
	"github.com/skill-matrix-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, orgID *int64, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, orgID *int64, department string, managerID *int64) ([]domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	DirectReports(ctx context.Context, managerID int64) ([]domain.Employee, error)
}

type employeeService struct {
	empRepo   repository.EmployeeRepository
	levelRepo repository.JobLevelRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository, levelRepo repository.JobLevelRepository) EmployeeService {
	return &employeeService{empRepo: empRepo, levelRepo: levelRepo}
}

func (s *employeeService) Create(ctx context.Context, orgID *int64, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	// Проверяем существование руководителя
	if req.ManagerID != nil {
		if _, err := s.empRepo.GetByID(ctx, *req.ManagerID); err != nil {
			return nil, err
		}
	}

	if err := s.checkJobLevel(ctx, strings.TrimSpace(req.JobLevel), orgID); err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		OrganizationID: orgID,
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		JobTitle:       strings.TrimSpace(req.JobTitle),
		JobLevel:       strings.TrimSpace(req.JobLevel),
		Department:     strings.TrimSpace(req.Department),
		ManagerID:      req.ManagerID,
	}

	if req.HireDate != nil {
		hireDate, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return nil, err
		}
		emp.HireDate = &hireDate
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context, orgID *int64, department string, managerID *int64) ([]domain.Employee, error) {
	return s.empRepo.List(ctx, orgID, department, managerID)
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		emp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		emp.Email = strings.TrimSpace(*req.Email)
	}
	if req.JobTitle != nil {
		emp.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.JobLevel != nil {
		newLevel := strings.TrimSpace(*req.JobLevel)
		if err := s.checkJobLevel(ctx, newLevel, emp.OrganizationID); err != nil {
			return nil, err
		}
		emp.JobLevel = newLevel
	}
	if req.Department != nil {
		emp.Department = strings.TrimSpace(*req.Department)
	}

	if req.ClearManager {
		emp.ManagerID = nil
	} else if req.ManagerID != nil {
		newManagerID := *req.ManagerID

		if newManagerID == id {
			return nil, domain.ErrSelfManager
		}

		if _, err := s.empRepo.GetByID(ctx, newManagerID); err != nil {
			return nil, err
		}

		// Дерево руководителей не должно зацикливаться:
		// поднимаемся по цепочке от нового руководителя
		isSubordinate, err := s.isInManagerChain(ctx, newManagerID, id)
		if err != nil {
			return nil, err
		}
		if isSubordinate {
			return nil, domain.ErrManagerCycle
		}

		emp.ManagerID = &newManagerID
	}

	if req.HireDate != nil {
		hireDate, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return nil, err
		}
		emp.HireDate = &hireDate
	}

	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

// checkJobLevel сверяет непустую метку уровня со справочником организации
func (s *employeeService) checkJobLevel(ctx context.Context, name string, orgID *int64) error {
	if name == "" {
		return nil
	}
	_, err := s.levelRepo.GetByName(ctx, name, orgID)
	if err != nil {
		if err == domain.ErrJobLevelNotFound {
			return domain.ErrUnknownJobLevel
		}
		return err
	}
	return nil
}

// isInManagerChain проверяет, встречается ли ancestorID в цепочке
// руководителей, начиная с startID
func (s *employeeService) isInManagerChain(ctx context.Context, startID, ancestorID int64) (bool, error) {
	visited := make(map[int64]bool)
	current := startID

	for {
		if current == ancestorID {
			return true, nil
		}
		if visited[current] {
			return false, nil
		}
		visited[current] = true

		emp, err := s.empRepo.GetByID(ctx, current)
		if err != nil {
			if err == domain.ErrEmployeeNotFound {
				return false, nil
			}
			return false, err
		}
		if emp.ManagerID == nil {
			return false, nil
		}
		current = *emp.ManagerID
	}
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.empRepo.GetByID(ctx, id); err != nil {
		return err
	}

	// Удаление заблокировано, пока сотрудник числится чьим-то руководителем
	count, err := s.empRepo.CountByManager(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrEmployeeIsManager
	}

	return s.empRepo.Delete(ctx, id)
}

func (s *employeeService) DirectReports(ctx context.Context, managerID int64) ([]domain.Employee, error) {
	if _, err := s.empRepo.GetByID(ctx, managerID); err != nil {
		return nil, err
	}

	return s.empRepo.GetDirectReports(ctx, managerID)
}
