package repository

import (
	"context"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
)

// ServiceOrderFilter filtros de listado de órdenes de servicio.
type ServiceOrderFilter struct {
	CompanyID string
	FarmID    string
	Status    string
	Limit     int
	Offset    int
}

// ServiceOrderRepository persiste órdenes de servicio con sus líneas y eventos.
type ServiceOrderRepository interface {
	NextNumber(ctx context.Context, companyID string) (int, error)
	Create(ctx context.Context, order *entity.ServiceOrder) error
	GetByID(ctx context.Context, id string) (*entity.ServiceOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ServiceOrder, error)
	// Update reemplaza cabecera y líneas.
	Update(ctx context.Context, order *entity.ServiceOrder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ServiceOrderFilter) ([]*entity.ServiceOrder, error)

	AppendEvent(ctx context.Context, event *entity.ServiceOrderEvent) error
	ListEvents(ctx context.Context, orderID string) ([]*entity.ServiceOrderEvent, error)
}

// PurchaseOrderFilter filtros de listado de órdenes de compra.
type PurchaseOrderFilter struct {
	CompanyID string
	FarmID    string
	Status    string
	Limit     int
	Offset    int
}

// PurchaseOrderRepository persiste órdenes de compra.
type PurchaseOrderRepository interface {
	NextNumber(ctx context.Context, companyID string) (int, error)
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PurchaseOrderFilter) ([]*entity.PurchaseOrder, error)
}
