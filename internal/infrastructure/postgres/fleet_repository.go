package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

var _ repository.FleetRepository = (*FleetRepo)(nil)

// FleetRepo culturas, máquinas y operadores.
type FleetRepo struct {
	q Querier
}

// NewFleetRepository construye el adaptador. Acepta pool o tx (Querier).
func NewFleetRepository(q Querier) *FleetRepo {
	return &FleetRepo{q: q}
}

func (r *FleetRepo) CreateCrop(ctx context.Context, c *entity.Crop) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO crops (id, company_id, name, season, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.CompanyID, c.Name, c.Season, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert crop: %w", err)
	}
	return nil
}

func (r *FleetRepo) GetCrop(ctx context.Context, id string) (*entity.Crop, error) {
	return one(r.q.QueryRow(ctx,
		`SELECT id, company_id, name, season, created_at FROM crops WHERE id = $1`, id), scanCrop)
}

func (r *FleetRepo) ListCrops(ctx context.Context, companyID string) ([]*entity.Crop, error) {
	return many(ctx, r.q, scanCrop,
		`SELECT id, company_id, name, season, created_at FROM crops WHERE company_id = $1 ORDER BY name`, companyID)
}

func (r *FleetRepo) CreateMachine(ctx context.Context, m *entity.Machine) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO machines (id, company_id, name, kind, tank_capacity, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.CompanyID, m.Name, m.Kind, m.TankCapacity, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert machine: %w", err)
	}
	return nil
}

func (r *FleetRepo) GetMachine(ctx context.Context, id string) (*entity.Machine, error) {
	return one(r.q.QueryRow(ctx,
		`SELECT id, company_id, name, kind, tank_capacity, created_at FROM machines WHERE id = $1`, id), scanMachine)
}

func (r *FleetRepo) ListMachines(ctx context.Context, companyID string) ([]*entity.Machine, error) {
	return many(ctx, r.q, scanMachine,
		`SELECT id, company_id, name, kind, tank_capacity, created_at FROM machines WHERE company_id = $1 ORDER BY name`, companyID)
}

func (r *FleetRepo) CreateOperator(ctx context.Context, o *entity.Operator) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO operators (id, company_id, name, document, active, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.CompanyID, o.Name, o.Document, o.Active, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert operator: %w", err)
	}
	return nil
}

func (r *FleetRepo) GetOperator(ctx context.Context, id string) (*entity.Operator, error) {
	return one(r.q.QueryRow(ctx,
		`SELECT id, company_id, name, document, active, created_at FROM operators WHERE id = $1`, id), scanOperator)
}

func (r *FleetRepo) ListOperators(ctx context.Context, companyID string) ([]*entity.Operator, error) {
	return many(ctx, r.q, scanOperator,
		`SELECT id, company_id, name, document, active, created_at FROM operators WHERE company_id = $1 ORDER BY name`, companyID)
}

func scanCrop(row pgx.Row) (*entity.Crop, error) {
	var c entity.Crop
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Season, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanMachine(row pgx.Row) (*entity.Machine, error) {
	var m entity.Machine
	if err := row.Scan(&m.ID, &m.CompanyID, &m.Name, &m.Kind, &m.TankCapacity, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanOperator(row pgx.Row) (*entity.Operator, error) {
	var o entity.Operator
	if err := row.Scan(&o.ID, &o.CompanyID, &o.Name, &o.Document, &o.Active, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// one aplica scan a una fila; (nil, nil) si no existe.
func one[T any](row pgx.Row, scan func(pgx.Row) (*T, error)) (*T, error) {
	v, err := scan(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %T: %w", v, err)
	}
	return v, nil
}

// many ejecuta query y escanea todas las filas.
func many[T any](ctx context.Context, q Querier, scan func(pgx.Row) (*T, error), query string, args ...any) ([]*T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var list []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
