package repository

import (
	"context"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
)

// InventoryRecordRepository stock por (producto, hacienda). Dentro de una transacción,
// los métodos ForUpdate bloquean la fila hasta el commit.
type InventoryRecordRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error)
	GetByKey(ctx context.Context, productID, farmID string) (*entity.InventoryRecord, error)
	GetByKeyForUpdate(ctx context.Context, productID, farmID string) (*entity.InventoryRecord, error)
	Create(ctx context.Context, record *entity.InventoryRecord) error
	Update(ctx context.Context, record *entity.InventoryRecord) error
	ListByCompany(ctx context.Context, companyID, farmID string, limit, offset int) ([]*entity.InventoryRecord, error)
}

// HistoryRepository historial append-only: no existen Update ni Delete.
type HistoryRepository interface {
	Append(ctx context.Context, entry *entity.HistoryEntry) error
	ListByRecord(ctx context.Context, recordID string, limit, offset int) ([]*entity.HistoryEntry, error)
	ListByReference(ctx context.Context, reference string) ([]*entity.HistoryEntry, error)
}
