package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

var (
	_ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)
	_ repository.HistoryRepository         = (*HistoryRepo)(nil)
)

// InventoryRecordRepo stock por (producto, hacienda). Acepta pool o tx (Querier).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador.
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const recordColumns = `id, company_id, product_id, farm_id, physical_stock, reserved_qty, created_at, updated_at`

func (r *InventoryRecordRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return one(r.q.QueryRow(ctx, `SELECT `+recordColumns+` FROM inventory_records WHERE id = $1`, id), scanRecord)
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRecordRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return one(r.q.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM inventory_records WHERE id = $1 FOR UPDATE`, id), scanRecord)
}

// GetByKey lectura sin bloqueo por (producto, hacienda), para reportes.
func (r *InventoryRecordRepo) GetByKey(ctx context.Context, productID, farmID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM inventory_records WHERE product_id = $1 AND farm_id = $2`
	return one(r.q.QueryRow(ctx, query, productID, farmID), scanRecord)
}

// GetByKeyForUpdate igual que GetForUpdate pero por (producto, hacienda).
func (r *InventoryRecordRepo) GetByKeyForUpdate(ctx context.Context, productID, farmID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM inventory_records WHERE product_id = $1 AND farm_id = $2
		FOR UPDATE`
	return one(r.q.QueryRow(ctx, query, productID, farmID), scanRecord)
}

// Create inserta el registro; si otra transacción ya creó el mismo (producto, hacienda) no hace nada.
func (r *InventoryRecordRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, farm_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.CompanyID, rec.ProductID, rec.FarmID, rec.PhysicalStock, rec.ReservedQty,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

func (r *InventoryRecordRepo) Update(ctx context.Context, rec *entity.InventoryRecord) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_records SET physical_stock = $2, reserved_qty = $3, updated_at = $4 WHERE id = $1`,
		rec.ID, rec.PhysicalStock, rec.ReservedQty, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista el stock de la empresa; farmID vacío incluye todas las haciendas.
func (r *InventoryRecordRepo) ListByCompany(ctx context.Context, companyID, farmID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM inventory_records
		WHERE company_id = $1 AND ($2::text = '' OR farm_id::text = $2)
		ORDER BY farm_id, product_id
		LIMIT $3 OFFSET $4`
	return many(ctx, r.q, scanRecord, query, companyID, farmID, limitOrAll(limit), offset)
}

func scanRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(&rec.ID, &rec.CompanyID, &rec.ProductID, &rec.FarmID,
		&rec.PhysicalStock, &rec.ReservedQty, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// HistoryRepo historial append-only. La columna seq fija el orden de inserción.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

const historyColumns = `id, record_id, company_id, product_id, farm_id, kind, quantity, description,
	reference, actor, created_at`

func (r *HistoryRepo) Append(ctx context.Context, e *entity.HistoryEntry) error {
	query := `
		INSERT INTO inventory_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.RecordID, e.CompanyID, e.ProductID, e.FarmID, e.Kind, e.Quantity, e.Description,
		e.Reference, e.Actor, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// ListByRecord del más reciente al más antiguo.
func (r *HistoryRepo) ListByRecord(ctx context.Context, recordID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM inventory_history WHERE record_id = $1
		ORDER BY seq DESC
		LIMIT $2 OFFSET $3`
	return many(ctx, r.q, scanHistory, query, recordID, limitOrAll(limit), offset)
}

// ListByReference en orden de registro.
func (r *HistoryRepo) ListByReference(ctx context.Context, reference string) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM inventory_history WHERE reference = $1
		ORDER BY seq`
	return many(ctx, r.q, scanHistory, query, reference)
}

func scanHistory(row pgx.Row) (*entity.HistoryEntry, error) {
	var e entity.HistoryEntry
	err := row.Scan(&e.ID, &e.RecordID, &e.CompanyID, &e.ProductID, &e.FarmID, &e.Kind, &e.Quantity,
		&e.Description, &e.Reference, &e.Actor, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
