package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/memory"
)

var session = entity.Session{UserID: "u1", CompanyID: "c1", Role: entity.RoleAdmin}

func TestProduct_NombreNormalizadoUnico(t *testing.T) {
	store := memory.NewStore()
	uc := NewProductUseCase(store.Repos().Products)
	ctx := context.Background()

	p, err := uc.Create(ctx, session, dto.CreateProductRequest{Name: "  óleo   mineral ", UnitMeasure: "L", Category: "adjuvante"})
	require.NoError(t, err)
	assert.Equal(t, "Óleo Mineral", p.Name)
	assert.Equal(t, entity.CategoryAdjuvant, p.Category)

	_, err = uc.Create(ctx, session, dto.CreateProductRequest{Name: "OLEO MINERAL", UnitMeasure: "L", Category: "ADJUVANTE"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, session, dto.CreateProductRequest{Name: "Ureia", UnitMeasure: "kg", Category: "desconocida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, session, "Óleo", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestProduct_DeleteReferenciado(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	uc := NewProductUseCase(repos.Products)
	ctx := context.Background()

	p, err := uc.Create(ctx, session, dto.CreateProductRequest{Name: "Glifosato", UnitMeasure: "L", Category: "HERBICIDA"})
	require.NoError(t, err)
	require.NoError(t, repos.Records.Create(ctx, &entity.InventoryRecord{ID: "r1", CompanyID: "c1", ProductID: p.ID, FarmID: "f1"}))

	assert.ErrorIs(t, uc.Delete(ctx, session, p.ID), domain.ErrConflict)

	q, err := uc.Create(ctx, session, dto.CreateProductRequest{Name: "Atrazina", UnitMeasure: "L", Category: "HERBICIDA"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, session, q.ID))
	_, err = uc.GetByID(ctx, session, q.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_UpdateNoPisaOtro(t *testing.T) {
	store := memory.NewStore()
	uc := NewProductUseCase(store.Repos().Products)
	ctx := context.Background()
	_, err := uc.Create(ctx, session, dto.CreateProductRequest{Name: "Glifosato", UnitMeasure: "L", Category: "HERBICIDA"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, session, dto.CreateProductRequest{Name: "Atrazina", UnitMeasure: "L", Category: "HERBICIDA"})
	require.NoError(t, err)

	name := "glifosato"
	_, err = uc.Update(ctx, session, b.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	price := decimal.RequireFromString("41.5")
	res, err := uc.Update(ctx, session, b.ID, dto.UpdateProductRequest{ReferencePrice: &price})
	require.NoError(t, err)
	assert.True(t, res.ReferencePrice.Equal(price))
}

func TestFarm_TalhoesYAislamiento(t *testing.T) {
	store := memory.NewStore()
	uc := NewFarmUseCase(store.Repos().Farms)
	ctx := context.Background()

	farm, err := uc.Create(ctx, session, dto.CreateFarmRequest{Name: "Santa Rita", State: "mt"})
	require.NoError(t, err)
	assert.Equal(t, "MT", farm.State)

	_, err = uc.AddField(ctx, session, farm.ID, dto.CreateFieldRequest{Name: "T1", Area: decimal.NewFromInt(12)})
	require.NoError(t, err)
	_, err = uc.AddField(ctx, session, farm.ID, dto.CreateFieldRequest{Name: "T2", Area: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, session, farm.ID)
	require.NoError(t, err)
	require.Len(t, got.Fields, 1)

	_, err = uc.GetByID(ctx, entity.Session{UserID: "x", CompanyID: "c2"}, farm.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFleet_MaquinaRequiereTanque(t *testing.T) {
	store := memory.NewStore()
	uc := NewFleetUseCase(store.Repos().Fleet)
	ctx := context.Background()

	_, err := uc.CreateMachine(ctx, session, dto.CreateMachineRequest{Name: "Uniport", TankCapacity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateMachine(ctx, session, dto.CreateMachineRequest{Name: "Uniport", TankCapacity: decimal.NewFromInt(2000)})
	require.NoError(t, err)
	op, err := uc.CreateOperator(ctx, session, dto.CreateOperatorRequest{Name: "João"})
	require.NoError(t, err)
	assert.True(t, op.Active)

	machines, err := uc.ListMachines(ctx, session)
	require.NoError(t, err)
	assert.Len(t, machines, 1)
}

func TestModuleService_Vencimiento(t *testing.T) {
	store := memory.NewStore()
	svc := NewModuleService(store.Companies())
	companies := NewCompanyUseCase(store.Companies(), svc)
	ctx := context.Background()

	c, err := companies.Create(ctx, dto.CreateCompanyRequest{Name: "Fazenda", Document: "12345678000199"})
	require.NoError(t, err)
	assert.Equal(t, AllModules, c.Modules)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, svc.Activate(ctx, c.ID, entity.ModulePurchasing, &past))
	ok, err := svc.HasActiveModule(ctx, c.ID, entity.ModulePurchasing)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Deactivate(ctx, c.ID, entity.ModuleInventory))
	active, err := svc.ActiveModules(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.ModuleServiceOrders}, active)

	assert.ErrorIs(t, svc.Activate(ctx, c.ID, "billing", nil), domain.ErrInvalidInput)
}
