package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/catalog"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo de insumos. El stock vive en el inventario por hacienda.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un insumo. El nombre normalizado es único por empresa.
func (uc *ProductUseCase) Create(ctx context.Context, s entity.Session, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	category, ok := catalog.NormalizeCategory(in.Category)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if in.DefaultPurchaseQty.IsNegative() || in.ReferencePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	name := catalog.DisplayName(in.Name)
	key := catalog.SearchKey(name)
	existing, err := uc.repo.GetBySearchKey(ctx, s.CompanyID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		CompanyID:          s.CompanyID,
		Name:               name,
		SearchKey:          key,
		ActiveIngredient:   in.ActiveIngredient,
		UnitMeasure:        in.UnitMeasure,
		Category:           category,
		DefaultPurchaseQty: in.DefaultPurchaseQty,
		ReferencePrice:     in.ReferencePrice,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un insumo de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, s entity.Session, id string) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, s, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update actualiza los campos enviados.
func (uc *ProductUseCase) Update(ctx context.Context, s entity.Session, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, s, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = catalog.DisplayName(*in.Name)
		p.SearchKey = catalog.SearchKey(p.Name)
		other, err := uc.repo.GetBySearchKey(ctx, s.CompanyID, p.SearchKey)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != p.ID {
			return nil, domain.ErrDuplicate
		}
	}
	if in.ActiveIngredient != nil {
		p.ActiveIngredient = *in.ActiveIngredient
	}
	if in.Category != nil {
		category, ok := catalog.NormalizeCategory(*in.Category)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		p.Category = category
	}
	if in.DefaultPurchaseQty != nil {
		if in.DefaultPurchaseQty.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.DefaultPurchaseQty = *in.DefaultPurchaseQty
	}
	if in.ReferencePrice != nil {
		if in.ReferencePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.ReferencePrice = *in.ReferencePrice
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List lista insumos de la empresa; search se compara contra el nombre normalizado.
func (uc *ProductUseCase) List(ctx context.Context, s entity.Session, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, s.CompanyID, catalog.SearchKey(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete borra un insumo que ningún registro de inventario ni orden referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, s entity.Session, id string) error {
	p, err := uc.get(ctx, s, id)
	if err != nil {
		return err
	}
	used, err := uc.repo.IsReferenced(ctx, p.ID)
	if err != nil {
		return err
	}
	if used {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, p.ID)
}

func (uc *ProductUseCase) get(ctx context.Context, s entity.Session, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != s.CompanyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		ActiveIngredient:   p.ActiveIngredient,
		UnitMeasure:        p.UnitMeasure,
		Category:           p.Category,
		DefaultPurchaseQty: p.DefaultPurchaseQty,
		ReferencePrice:     p.ReferencePrice.Round(2),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
