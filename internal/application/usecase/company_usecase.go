package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo    repository.CompanyRepository
	modules *ModuleService
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, modules *ModuleService) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, modules: modules}
}

// Create crea una empresa con todos los módulos activos y sin vencimiento.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	for _, name := range AllModules {
		if err := uc.modules.Activate(ctx, company.ID, name, nil); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(ctx, company)
}

// GetByID obtiene una empresa con sus módulos activos.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, company)
}

func (uc *CompanyUseCase) toResponse(ctx context.Context, c *entity.Company) (*dto.CompanyResponse, error) {
	active, err := uc.modules.ActiveModules(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Email:     c.Email,
		Status:    c.Status,
		Modules:   active,
		CreatedAt: c.CreatedAt,
	}, nil
}
