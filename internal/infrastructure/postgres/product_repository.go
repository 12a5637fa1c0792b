package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, name, search_key, active_ingredient, unit_measure, category,
	default_purchase_qty, reference_price, created_at, updated_at`

// Create persiste un nuevo insumo. (company_id, search_key) es único.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.CompanyID, product.Name, product.SearchKey, product.ActiveIngredient,
		product.UnitMeasure, product.Category, product.DefaultPurchaseQty, product.ReferencePrice,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySearchKey busca por nombre normalizado dentro de la empresa.
func (r *ProductRepo) GetBySearchKey(ctx context.Context, companyID, key string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 AND search_key = $2`,
		companyID, key)
	p, err := scanProduct(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by key: %w", err)
	}
	return p, nil
}

// Update actualiza los datos maestros del insumo.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, search_key = $3, active_ingredient = $4, unit_measure = $5,
		       category = $6, default_purchase_qty = $7, reference_price = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.SearchKey, product.ActiveIngredient, product.UnitMeasure,
		product.Category, product.DefaultPurchaseQty, product.ReferencePrice, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateReferencePrice actualiza solo el precio de referencia (al recibir una compra).
func (r *ProductRepo) UpdateReferencePrice(ctx context.Context, productID string, price decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET reference_price = $2, updated_at = now() WHERE id = $1`,
		productID, price)
	if err != nil {
		return fmt.Errorf("update reference price: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista insumos ordenados por nombre; search filtra por subcadena del nombre normalizado.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID, search string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1 AND ($2 = '' OR strpos(search_key, $2) > 0)
		ORDER BY search_key
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, search, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// IsReferenced indica si el producto tiene stock, líneas de orden u órdenes de compra.
func (r *ProductRepo) IsReferenced(ctx context.Context, productID string) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM inventory_records WHERE product_id = $1)
		    OR EXISTS (SELECT 1 FROM service_order_lines WHERE product_id = $1)
		    OR EXISTS (SELECT 1 FROM purchase_orders WHERE product_id = $1)`
	var used bool
	if err := r.q.QueryRow(ctx, query, productID).Scan(&used); err != nil {
		return false, fmt.Errorf("check product references: %w", err)
	}
	return used, nil
}

// Delete elimina un insumo sin referencias.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.SearchKey, &p.ActiveIngredient, &p.UnitMeasure, &p.Category,
		&p.DefaultPurchaseQty, &p.ReferencePrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
