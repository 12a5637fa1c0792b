package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, company_id, number, product_id, farm_id, quantity, unit, unit_price,
	total_value, status, supplier, invoice_number, created_by, approved_by, approved_at,
	received_by, received_at, created_at, updated_at`

func (r *PurchaseOrderRepo) NextNumber(ctx context.Context, companyID string) (int, error) {
	return nextNumber(ctx, r.q, companyID, "purchase_order")
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.Number, o.ProductID, o.FarmID, o.Quantity, o.Unit, o.UnitPrice,
		o.TotalValue, o.Status, o.Supplier, o.InvoiceNumber, o.CreatedBy, o.ApprovedBy, o.ApprovedAt,
		o.ReceivedBy, o.ReceivedAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return one(r.q.QueryRow(ctx,
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id), scanPurchaseOrder)
}

// GetForUpdate bloquea la orden; evita recepciones dobles concurrentes.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return one(r.q.QueryRow(ctx,
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id), scanPurchaseOrder)
}

func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET
			quantity = $2, unit = $3, unit_price = $4, total_value = $5, status = $6, supplier = $7,
			invoice_number = $8, approved_by = $9, approved_at = $10, received_by = $11,
			received_at = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.Quantity, o.Unit, o.UnitPrice, o.TotalValue, o.Status, o.Supplier,
		o.InvoiceNumber, o.ApprovedBy, o.ApprovedAt, o.ReceivedBy,
		o.ReceivedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE company_id = $1
		  AND ($2::text = '' OR farm_id::text = $2)
		  AND ($3::text = '' OR status = $3)
		ORDER BY number DESC
		LIMIT $4 OFFSET $5`
	return many(ctx, r.q, scanPurchaseOrder, query,
		f.CompanyID, f.FarmID, f.Status, limitOrAll(f.Limit), f.Offset)
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.Number, &o.ProductID, &o.FarmID, &o.Quantity, &o.Unit, &o.UnitPrice,
		&o.TotalValue, &o.Status, &o.Supplier, &o.InvoiceNumber, &o.CreatedBy, &o.ApprovedBy, &o.ApprovedAt,
		&o.ReceivedBy, &o.ReceivedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
