package service

import (
	"context"
	"strings"

	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/dto"
	"github.com/skill-matrix-api/internal/repository"
)

// JobLevelService определяет интерфейс бизнес-логики для уровней должностей
type JobLevelService interface {
	Create(ctx context.Context, orgID *int64, req *dto.CreateJobLevelRequest) (*domain.JobLevel, error)
	GetByID(ctx context.Context, id int64) (*domain.JobLevel, error)
	List(ctx context.Context, orgID *int64) ([]domain.JobLevel, error)
	Update(ctx context.Context, id int64, req *dto.UpdateJobLevelRequest) (*domain.JobLevel, error)
	Delete(ctx context.Context, id int64) error
}

type jobLevelService struct {
	levelRepo repository.JobLevelRepository
	empRepo   repository.EmployeeRepository
}

// NewJobLevelService создаёт новый экземпляр сервиса
func NewJobLevelService(levelRepo repository.JobLevelRepository, empRepo repository.EmployeeRepository) JobLevelService {
	return &jobLevelService{
		levelRepo: levelRepo,
		empRepo:   empRepo,
	}
}

func (s *jobLevelService) Create(ctx context.Context, orgID *int64, req *dto.CreateJobLevelRequest) (*domain.JobLevel, error) {
	name := strings.TrimSpace(req.Name)

	exists, err := s.levelRepo.ExistsByName(ctx, name, orgID, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateJobLevelName
	}

	level := &domain.JobLevel{
		OrganizationID: orgID,
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
	}

	if err := s.levelRepo.Create(ctx, level); err != nil {
		return nil, err
	}

	return level, nil
}

func (s *jobLevelService) GetByID(ctx context.Context, id int64) (*domain.JobLevel, error) {
	return s.levelRepo.GetByID(ctx, id)
}

func (s *jobLevelService) List(ctx context.Context, orgID *int64) ([]domain.JobLevel, error) {
	return s.levelRepo.List(ctx, orgID)
}

func (s *jobLevelService) Update(ctx context.Context, id int64, req *dto.UpdateJobLevelRequest) (*domain.JobLevel, error) {
	level, err := s.levelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)

		if newName != level.Name {
			exists, err := s.levelRepo.ExistsByName(ctx, newName, level.OrganizationID, &id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateJobLevelName
			}

			// Сотрудники и ожидания ссылаются на уровень по имени
			if err := s.levelRepo.RenameCascade(ctx, id, level.OrganizationID, level.Name, newName); err != nil {
				return nil, err
			}
			level.Name = newName
		}
	}

	if req.Description != nil {
		level.Description = strings.TrimSpace(*req.Description)
		if err := s.levelRepo.Update(ctx, level); err != nil {
			return nil, err
		}
	}

	return level, nil
}

func (s *jobLevelService) Delete(ctx context.Context, id int64) error {
	level, err := s.levelRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Удаление заблокировано, пока уровень присвоен сотрудникам
	count, err := s.empRepo.CountByJobLevel(ctx, level.OrganizationID, level.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrJobLevelInUse
	}

	return s.levelRepo.Delete(ctx, id)
}
