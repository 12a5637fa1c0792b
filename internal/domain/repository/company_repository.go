package repository

import (
	"context"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetModule devuelve la activación del módulo o nil si nunca fue contratado.
	GetModule(ctx context.Context, companyID, moduleName string) (*entity.CompanyModule, error)
	UpsertModule(ctx context.Context, module *entity.CompanyModule) error
}
