package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySearchKey(ctx context.Context, companyID, key string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateReferencePrice(ctx context.Context, productID string, price decimal.Decimal) error
	ListByCompany(ctx context.Context, companyID, search string, limit, offset int) ([]*entity.Product, error)
	// IsReferenced indica si algún registro de inventario, línea de orden u orden de compra usa el producto.
	IsReferenced(ctx context.Context, productID string) (bool, error)
	Delete(ctx context.Context, id string) error
}
