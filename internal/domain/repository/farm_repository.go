package repository

import (
	"context"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
)

// FarmRepository define el puerto de persistencia para haciendas y sus talhões.
type FarmRepository interface {
	Create(ctx context.Context, farm *entity.Farm) error
	GetByID(ctx context.Context, id string) (*entity.Farm, error)
	Update(ctx context.Context, farm *entity.Farm) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Farm, error)

	CreateField(ctx context.Context, field *entity.Field) error
	GetField(ctx context.Context, id string) (*entity.Field, error)
	ListFields(ctx context.Context, farmID string) ([]*entity.Field, error)
}

// FleetRepository catálogo de culturas, máquinas y operadores.
type FleetRepository interface {
	CreateCrop(ctx context.Context, crop *entity.Crop) error
	GetCrop(ctx context.Context, id string) (*entity.Crop, error)
	ListCrops(ctx context.Context, companyID string) ([]*entity.Crop, error)

	CreateMachine(ctx context.Context, machine *entity.Machine) error
	GetMachine(ctx context.Context, id string) (*entity.Machine, error)
	ListMachines(ctx context.Context, companyID string) ([]*entity.Machine, error)

	CreateOperator(ctx context.Context, operator *entity.Operator) error
	GetOperator(ctx context.Context, id string) (*entity.Operator, error)
	ListOperators(ctx context.Context, companyID string) ([]*entity.Operator, error)
}
