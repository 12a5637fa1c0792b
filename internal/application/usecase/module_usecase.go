package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

// AllModules módulos contratables, en el orden en que se listan.
var AllModules = []string{entity.ModuleInventory, entity.ModuleServiceOrders, entity.ModulePurchasing}

// ModuleService verifica qué módulos tiene activos una empresa.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	companyRepo repository.CompanyRepository
	now         func() time.Time
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo, now: time.Now}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Devuelve false (sin error) si la empresa no tiene el módulo contratado.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	m, err := s.companyRepo.GetModule(ctx, companyID, moduleName)
	if err != nil {
		return false, err
	}
	return m != nil && m.ActiveAt(s.now()), nil
}

// ActiveModules lista los módulos habilitados hoy.
func (s *ModuleService) ActiveModules(ctx context.Context, companyID string) ([]string, error) {
	out := make([]string, 0, len(AllModules))
	for _, name := range AllModules {
		ok, err := s.HasActiveModule(ctx, companyID, name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// Activate habilita un módulo; expiresAt nil significa sin vencimiento.
func (s *ModuleService) Activate(ctx context.Context, companyID, moduleName string, expiresAt *time.Time) error {
	if !slices.Contains(AllModules, moduleName) {
		return domain.ErrInvalidInput
	}
	return s.companyRepo.UpsertModule(ctx, &entity.CompanyModule{
		CompanyID:   companyID,
		ModuleName:  moduleName,
		IsActive:    true,
		ActivatedAt: s.now(),
		ExpiresAt:   expiresAt,
	})
}

// Deactivate deshabilita un módulo conservando su registro.
func (s *ModuleService) Deactivate(ctx context.Context, companyID, moduleName string) error {
	m, err := s.companyRepo.GetModule(ctx, companyID, moduleName)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	m.IsActive = false
	return s.companyRepo.UpsertModule(ctx, m)
}
