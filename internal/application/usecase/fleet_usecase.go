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

// FleetUseCase culturas, máquinas y operadores referenciados por las órdenes de servicio.
type FleetUseCase struct {
	repo repository.FleetRepository
}

// NewFleetUseCase construye el caso de uso.
func NewFleetUseCase(repo repository.FleetRepository) *FleetUseCase {
	return &FleetUseCase{repo: repo}
}

func (uc *FleetUseCase) CreateCrop(ctx context.Context, s entity.Session, in dto.CreateCropRequest) (*dto.CropResponse, error) {
	crop := &entity.Crop{
		ID:        uuid.New().String(),
		CompanyID: s.CompanyID,
		Name:      strings.TrimSpace(in.Name),
		Season:    in.Season,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateCrop(ctx, crop); err != nil {
		return nil, err
	}
	return &dto.CropResponse{ID: crop.ID, Name: crop.Name, Season: crop.Season}, nil
}

func (uc *FleetUseCase) ListCrops(ctx context.Context, s entity.Session) ([]dto.CropResponse, error) {
	list, err := uc.repo.ListCrops(ctx, s.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CropResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CropResponse{ID: c.ID, Name: c.Name, Season: c.Season})
	}
	return out, nil
}

// CreateMachine el tanque define las cargas de cada orden, por eso debe ser positivo.
func (uc *FleetUseCase) CreateMachine(ctx context.Context, s entity.Session, in dto.CreateMachineRequest) (*dto.MachineResponse, error) {
	if !in.TankCapacity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.Machine{
		ID:           uuid.New().String(),
		CompanyID:    s.CompanyID,
		Name:         strings.TrimSpace(in.Name),
		Kind:         in.Kind,
		TankCapacity: in.TankCapacity,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.CreateMachine(ctx, m); err != nil {
		return nil, err
	}
	return toMachineResponse(m), nil
}

func (uc *FleetUseCase) ListMachines(ctx context.Context, s entity.Session) ([]dto.MachineResponse, error) {
	list, err := uc.repo.ListMachines(ctx, s.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MachineResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMachineResponse(m))
	}
	return out, nil
}

func (uc *FleetUseCase) CreateOperator(ctx context.Context, s entity.Session, in dto.CreateOperatorRequest) (*dto.OperatorResponse, error) {
	op := &entity.Operator{
		ID:        uuid.New().String(),
		CompanyID: s.CompanyID,
		Name:      strings.TrimSpace(in.Name),
		Document:  in.Document,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateOperator(ctx, op); err != nil {
		return nil, err
	}
	return toOperatorResponse(op), nil
}

func (uc *FleetUseCase) ListOperators(ctx context.Context, s entity.Session) ([]dto.OperatorResponse, error) {
	list, err := uc.repo.ListOperators(ctx, s.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OperatorResponse, 0, len(list))
	for _, op := range list {
		out = append(out, *toOperatorResponse(op))
	}
	return out, nil
}

func toMachineResponse(m *entity.Machine) *dto.MachineResponse {
	return &dto.MachineResponse{ID: m.ID, Name: m.Name, Kind: m.Kind, TankCapacity: m.TankCapacity}
}

func toOperatorResponse(op *entity.Operator) *dto.OperatorResponse {
	return &dto.OperatorResponse{ID: op.ID, Name: op.Name, Document: op.Document, Active: op.Active}
}
