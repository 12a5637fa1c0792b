package postgres

import (
	"context"
	"fmt"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, document, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Document, company.Email, company.Status,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT id, name, document, email, status, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Document, &c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// GetModule lee la activación de un módulo; nil si la empresa nunca lo tuvo.
func (r *CompanyRepo) GetModule(ctx context.Context, companyID, moduleName string) (*entity.CompanyModule, error) {
	const query = `
		SELECT company_id, module_name, is_active, activated_at, expires_at
		FROM company_modules
		WHERE company_id = $1 AND module_name = $2`
	var m entity.CompanyModule
	err := r.q.QueryRow(ctx, query, companyID, moduleName).Scan(
		&m.CompanyID, &m.ModuleName, &m.IsActive, &m.ActivatedAt, &m.ExpiresAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module %s: %w", moduleName, err)
	}
	return &m, nil
}

// UpsertModule activa, renueva o desactiva un módulo.
func (r *CompanyRepo) UpsertModule(ctx context.Context, m *entity.CompanyModule) error {
	const query = `
		INSERT INTO company_modules (company_id, module_name, is_active, activated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, module_name)
		DO UPDATE SET is_active = EXCLUDED.is_active,
		              activated_at = EXCLUDED.activated_at,
		              expires_at = EXCLUDED.expires_at`
	_, err := r.q.Exec(ctx, query, m.CompanyID, m.ModuleName, m.IsActive, m.ActivatedAt, m.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert module %s: %w", m.ModuleName, err)
	}
	return nil
}
