package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

// FarmUseCase haciendas y talhões de la empresa.
type FarmUseCase struct {
	repo repository.FarmRepository
}

// NewFarmUseCase construye el caso de uso.
func NewFarmUseCase(repo repository.FarmRepository) *FarmUseCase {
	return &FarmUseCase{repo: repo}
}

// Create crea una hacienda.
func (uc *FarmUseCase) Create(ctx context.Context, s entity.Session, in dto.CreateFarmRequest) (*dto.FarmResponse, error) {
	now := time.Now()
	farm := &entity.Farm{
		ID:        uuid.New().String(),
		CompanyID: s.CompanyID,
		Name:      strings.TrimSpace(in.Name),
		City:      in.City,
		State:     strings.ToUpper(in.State),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, farm); err != nil {
		return nil, err
	}
	return toFarmResponse(farm, nil), nil
}

// GetByID devuelve la hacienda con sus talhões.
func (uc *FarmUseCase) GetByID(ctx context.Context, s entity.Session, id string) (*dto.FarmResponse, error) {
	farm, err := uc.get(ctx, s, id)
	if err != nil {
		return nil, err
	}
	fields, err := uc.repo.ListFields(ctx, farm.ID)
	if err != nil {
		return nil, err
	}
	return toFarmResponse(farm, fields), nil
}

// List lista haciendas de la empresa.
func (uc *FarmUseCase) List(ctx context.Context, s entity.Session, page dto.PageRequest) (*dto.FarmListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, s.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FarmResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFarmResponse(f, nil))
	}
	return &dto.FarmListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AddField agrega un talhão con área positiva en hectáreas.
func (uc *FarmUseCase) AddField(ctx context.Context, s entity.Session, farmID string, in dto.CreateFieldRequest) (*dto.FieldResponse, error) {
	if !in.Area.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	farm, err := uc.get(ctx, s, farmID)
	if err != nil {
		return nil, err
	}
	field := &entity.Field{
		ID:        uuid.New().String(),
		CompanyID: s.CompanyID,
		FarmID:    farm.ID,
		Name:      strings.TrimSpace(in.Name),
		Area:      in.Area,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateField(ctx, field); err != nil {
		return nil, err
	}
	out := toFieldResponse(field)
	return &out, nil
}

func (uc *FarmUseCase) get(ctx context.Context, s entity.Session, id string) (*entity.Farm, error) {
	farm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if farm == nil || farm.CompanyID != s.CompanyID {
		return nil, domain.ErrNotFound
	}
	return farm, nil
}

func toFarmResponse(f *entity.Farm, fields []*entity.Field) *dto.FarmResponse {
	out := &dto.FarmResponse{
		ID:        f.ID,
		Name:      f.Name,
		City:      f.City,
		State:     f.State,
		CreatedAt: f.CreatedAt,
	}
	for _, field := range fields {
		out.Fields = append(out.Fields, toFieldResponse(field))
	}
	return out
}

func toFieldResponse(f *entity.Field) dto.FieldResponse {
	return dto.FieldResponse{ID: f.ID, FarmID: f.FarmID, Name: f.Name, Area: f.Area}
}
