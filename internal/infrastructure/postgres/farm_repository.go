package postgres

import (
	"context"
	"fmt"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

var _ repository.FarmRepository = (*FarmRepo)(nil)

// FarmRepo haciendas y talhões sobre PostgreSQL.
type FarmRepo struct {
	q Querier
}

// NewFarmRepository construye el adaptador. Acepta pool o tx (Querier).
func NewFarmRepository(q Querier) *FarmRepo {
	return &FarmRepo{q: q}
}

func (r *FarmRepo) Create(ctx context.Context, farm *entity.Farm) error {
	query := `
		INSERT INTO farms (id, company_id, name, city, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		farm.ID, farm.CompanyID, farm.Name, farm.City, farm.State, farm.CreatedAt, farm.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert farm: %w", err)
	}
	return nil
}

func (r *FarmRepo) GetByID(ctx context.Context, id string) (*entity.Farm, error) {
	query := `
		SELECT id, company_id, name, city, state, created_at, updated_at
		FROM farms WHERE id = $1`
	var f entity.Farm
	err := r.q.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.CompanyID, &f.Name, &f.City, &f.State, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get farm: %w", err)
	}
	return &f, nil
}

func (r *FarmRepo) Update(ctx context.Context, farm *entity.Farm) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE farms SET name = $2, city = $3, state = $4, updated_at = $5 WHERE id = $1`,
		farm.ID, farm.Name, farm.City, farm.State, farm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update farm: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FarmRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Farm, error) {
	query := `
		SELECT id, company_id, name, city, state, created_at, updated_at
		FROM farms WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	defer rows.Close()

	var list []*entity.Farm
	for rows.Next() {
		var f entity.Farm
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.Name, &f.City, &f.State, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan farm: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

func (r *FarmRepo) CreateField(ctx context.Context, field *entity.Field) error {
	query := `
		INSERT INTO fields (id, company_id, farm_id, name, area, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		field.ID, field.CompanyID, field.FarmID, field.Name, field.Area, field.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert field: %w", err)
	}
	return nil
}

func (r *FarmRepo) GetField(ctx context.Context, id string) (*entity.Field, error) {
	query := `SELECT id, company_id, farm_id, name, area, created_at FROM fields WHERE id = $1`
	var f entity.Field
	err := r.q.QueryRow(ctx, query, id).Scan(&f.ID, &f.CompanyID, &f.FarmID, &f.Name, &f.Area, &f.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get field: %w", err)
	}
	return &f, nil
}

func (r *FarmRepo) ListFields(ctx context.Context, farmID string) ([]*entity.Field, error) {
	query := `
		SELECT id, company_id, farm_id, name, area, created_at
		FROM fields WHERE farm_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var list []*entity.Field
	for rows.Next() {
		var f entity.Field
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.FarmID, &f.Name, &f.Area, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
