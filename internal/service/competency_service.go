package service

import (
	"context"
	"strings"

	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/dto"
	"github.com/skill-matrix-api/internal/repository"
)

// CompetencyService определяет интерфейс бизнес-логики для компетенций
// и входящих в них навыков
type CompetencyService interface {
	Create(ctx context.Context, orgID *int64, req *dto.CreateCompetencyRequest) (*domain.Competency, error)
	GetByID(ctx context.Context, id int64) (*domain.Competency, error)
	List(ctx context.Context, orgID *int64) ([]domain.Competency, error)
	Update(ctx context.Context, id int64, req *dto.UpdateCompetencyRequest) (*domain.Competency, error)
	Delete(ctx context.Context, id int64) error

	CreateSkill(ctx context.Context, competencyID int64, req *dto.CreateSkillRequest) (*domain.Skill, error)
	ListSkills(ctx context.Context, competencyID int64) ([]domain.Skill, error)
	ListAllSkills(ctx context.Context, orgID *int64) ([]domain.Skill, error)
	UpdateSkill(ctx context.Context, skillID int64, req *dto.UpdateSkillRequest) (*domain.Skill, error)
	DeleteSkill(ctx context.Context, skillID int64) error
}

type competencyService struct {
	compRepo  repository.CompetencyRepository
	skillRepo repository.SkillRepository
}

// NewCompetencyService создаёт новый экземпляр сервиса
func NewCompetencyService(compRepo repository.CompetencyRepository, skillRepo repository.SkillRepository) CompetencyService {
	return &competencyService{
		compRepo:  compRepo,
		skillRepo: skillRepo,
	}
}

func (s *competencyService) Create(ctx context.Context, orgID *int64, req *dto.CreateCompetencyRequest) (*domain.Competency, error) {
	name := strings.TrimSpace(req.Name)

	// Имя компетенции уникально в пределах организации
	exists, err := s.compRepo.ExistsByName(ctx, name, orgID, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateCompetencyName
	}

	comp := &domain.Competency{
		OrganizationID: orgID,
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
	}

	if err := s.compRepo.Create(ctx, comp); err != nil {
		return nil, err
	}

	return comp, nil
}

func (s *competencyService) GetByID(ctx context.Context, id int64) (*domain.Competency, error) {
	return s.compRepo.GetByID(ctx, id)
}

func (s *competencyService) List(ctx context.Context, orgID *int64) ([]domain.Competency, error) {
	return s.compRepo.List(ctx, orgID)
}

func (s *competencyService) Update(ctx context.Context, id int64, req *dto.UpdateCompetencyRequest) (*domain.Competency, error) {
	comp, err := s.compRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)

		if newName != comp.Name {
			exists, err := s.compRepo.ExistsByName(ctx, newName, comp.OrganizationID, &id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateCompetencyName
			}

			// Оценки и ожидания привязаны по имени: переименование
			// переписывает зависимые строки в той же транзакции
			if err := s.compRepo.RenameCascade(ctx, id, comp.Name, newName); err != nil {
				return nil, err
			}
			comp.Name = newName
		}
	}

	if req.Description != nil {
		comp.Description = strings.TrimSpace(*req.Description)
		if err := s.compRepo.Update(ctx, comp); err != nil {
			return nil, err
		}
	}

	return comp, nil
}

func (s *competencyService) Delete(ctx context.Context, id int64) error {
	comp, err := s.compRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.compRepo.DeleteCascade(ctx, id, comp.Name)
}

func (s *competencyService) CreateSkill(ctx context.Context, competencyID int64, req *dto.CreateSkillRequest) (*domain.Skill, error) {
	if _, err := s.compRepo.GetByID(ctx, competencyID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)

	exists, err := s.skillRepo.ExistsByName(ctx, competencyID, name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateSkillName
	}

	skill := &domain.Skill{
		CompetencyID: competencyID,
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
	}

	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}

	return skill, nil
}

func (s *competencyService) ListSkills(ctx context.Context, competencyID int64) ([]domain.Skill, error) {
	if _, err := s.compRepo.GetByID(ctx, competencyID); err != nil {
		return nil, err
	}

	return s.skillRepo.ListByCompetency(ctx, competencyID)
}

// ListAllSkills возвращает навыки, видимые организации: из её собственных
// компетенций и из компетенций без привязки
func (s *competencyService) ListAllSkills(ctx context.Context, orgID *int64) ([]domain.Skill, error) {
	return s.skillRepo.ListByOrganization(ctx, orgID)
}

func (s *competencyService) UpdateSkill(ctx context.Context, skillID int64, req *dto.UpdateSkillRequest) (*domain.Skill, error) {
	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}

	comp, err := s.compRepo.GetByID(ctx, skill.CompetencyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)

		if newName != skill.Name {
			exists, err := s.skillRepo.ExistsByName(ctx, skill.CompetencyID, newName, &skillID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateSkillName
			}

			if err := s.skillRepo.RenameCascade(ctx, skillID, comp.Name, skill.Name, newName); err != nil {
				return nil, err
			}
			skill.Name = newName
		}
	}

	if req.Description != nil {
		skill.Description = strings.TrimSpace(*req.Description)
		if err := s.skillRepo.Update(ctx, skill); err != nil {
			return nil, err
		}
	}

	return skill, nil
}

func (s *competencyService) DeleteSkill(ctx context.Context, skillID int64) error {
	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}

	comp, err := s.compRepo.GetByID(ctx, skill.CompetencyID)
	if err != nil {
		return err
	}

	return s.skillRepo.DeleteCascade(ctx, skillID, comp.Name, skill.Name)
}
