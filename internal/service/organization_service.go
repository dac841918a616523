package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/dto"
	"github.com/skill-matrix-api/internal/repository"
)

// OrganizationService определяет интерфейс бизнес-логики для организаций
// и приглашений. Доставка писем — вне сервиса: приглашение существует
// как запись с токеном.
type OrganizationService interface {
	Create(ctx context.Context, req *dto.CreateOrganizationRequest) (*domain.Organization, error)
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
	CreateInvitation(ctx context.Context, orgID int64, req *dto.CreateInvitationRequest) (*domain.Invitation, error)
	AcceptInvitation(ctx context.Context, token string) (*domain.Invitation, error)
}

type organizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService создаёт новый экземпляр сервиса
func NewOrganizationService(orgRepo repository.OrganizationRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo}
}

func (s *organizationService) Create(ctx context.Context, req *dto.CreateOrganizationRequest) (*domain.Organization, error) {
	org := &domain.Organization{
		Name:      strings.TrimSpace(req.Name),
		CreatedBy: strings.TrimSpace(req.CreatedBy),
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) CreateInvitation(ctx context.Context, orgID int64, req *dto.CreateInvitationRequest) (*domain.Invitation, error) {
	if _, err := s.orgRepo.GetByID(ctx, orgID); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "employee"
	}

	inv := &domain.Invitation{
		OrganizationID: orgID,
		Email:          strings.TrimSpace(req.Email),
		Token:          uuid.NewString(),
		Role:           role,
	}

	if err := s.orgRepo.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// AcceptInvitation принимает приглашение по токену; повторное принятие
// отклоняется
func (s *organizationService) AcceptInvitation(ctx context.Context, token string) (*domain.Invitation, error) {
	inv, err := s.orgRepo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if inv.AcceptedAt != nil {
		return nil, domain.ErrInvitationAlreadyAccepted
	}

	now := time.Now().UTC()
	inv.AcceptedAt = &now

	if err := s.orgRepo.UpdateInvitation(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
