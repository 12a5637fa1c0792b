package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/memory"
)

var session = entity.Session{UserID: "u1", CompanyID: "c1", Role: entity.RoleAdmin}

func newUseCase(t *testing.T) (*inventory.UseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", CompanyID: "c1", Name: "Glifosato", SearchKey: "glifosato", UnitMeasure: "L"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "px", CompanyID: "c2", Name: "Ajeno", SearchKey: "ajeno", UnitMeasure: "L"}))
	require.NoError(t, repos.Farms.Create(ctx, &entity.Farm{ID: "f1", CompanyID: "c1", Name: "Santa Rita"}))
	require.NoError(t, repos.Farms.Create(ctx, &entity.Farm{ID: "f2", CompanyID: "c1", Name: "Boa Vista"}))
	require.NoError(t, repos.Farms.Create(ctx, &entity.Farm{ID: "fx", CompanyID: "c2", Name: "Outra"}))
	uc := inventory.NewUseCase(memory.NewTxRunner(store), repos.Records, repos.History, zerolog.Nop())
	return uc, store
}

func TestUseCase_EntradaCreaRegistro(t *testing.T) {
	uc, _ := newUseCase(t)
	res, err := uc.Entry(context.Background(), session, dto.StockEntryRequest{ProductID: "p1", FarmID: "f1", Quantity: d("25.5")})
	require.NoError(t, err)
	assert.True(t, res.PhysicalStock.Equal(d("25.5")))
	assert.True(t, res.AvailableQty.Equal(d("25.5")))

	again, err := uc.Entry(context.Background(), session, dto.StockEntryRequest{ProductID: "p1", FarmID: "f1", Quantity: d("4.5")})
	require.NoError(t, err)
	assert.Equal(t, res.ID, again.ID)
	assert.True(t, again.PhysicalStock.Equal(d("30")))
}

func TestUseCase_EntradaValidaCatalogo(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Entry(ctx, session, dto.StockEntryRequest{ProductID: "px", FarmID: "f1", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Entry(ctx, session, dto.StockEntryRequest{ProductID: "p1", FarmID: "fx", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Entry(ctx, session, dto.StockEntryRequest{ProductID: "p1", FarmID: "f1", Quantity: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUseCase_SalidaInsuficienteNoModifica(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	rec, err := uc.Entry(ctx, session, dto.StockEntryRequest{ProductID: "p1", FarmID: "f1", Quantity: d("10")})
	require.NoError(t, err)

	_, err = uc.Exit(ctx, session, rec.ID, dto.StockExitRequest{Quantity: d("11"), Reason: "perda"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := uc.Get(ctx, session, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.PhysicalStock.Equal(d("10")))

	out, err := uc.Exit(ctx, session, rec.ID, dto.StockExitRequest{Quantity: d("4"), Reason: "perda"})
	require.NoError(t, err)
	assert.True(t, out.PhysicalStock.Equal(d("6")))
}

func TestUseCase_TransferenciaEHistorial(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	rec, err := uc.Entry(ctx, session, dto.StockEntryRequest{ProductID: "p1", FarmID: "f1", Quantity: d("100")})
	require.NoError(t, err)

	res, err := uc.Transfer(ctx, session, dto.TransferRequest{SourceRecordID: rec.ID, DestFarmID: "f2", Quantity: d("30")})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Reference)
	assert.True(t, res.Source.PhysicalStock.Equal(d("70")))
	assert.True(t, res.Destination.PhysicalStock.Equal(d("30")))

	hist, err := uc.History(ctx, session, rec.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 2)
	assert.Equal(t, entity.HistoryKindExit, hist.Items[0].Kind)
	assert.Equal(t, res.Reference, hist.Items[0].Reference)
	assert.Equal(t, "u1", hist.Items[0].Actor)

	list, err := uc.List(ctx, session, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

func TestUseCase_TransferenciaAHaciendaAjena(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	rec, err := uc.Entry(ctx, session, dto.StockEntryRequest{ProductID: "p1", FarmID: "f1", Quantity: d("10")})
	require.NoError(t, err)

	_, err = uc.Transfer(ctx, session, dto.TransferRequest{SourceRecordID: rec.ID, DestFarmID: "fx", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
	_, err = uc.Transfer(ctx, session, dto.TransferRequest{SourceRecordID: rec.ID, DestFarmID: "f1", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
}

func TestUseCase_RegistroDeOtraEmpresa(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	rec, err := uc.Entry(ctx, session, dto.StockEntryRequest{ProductID: "p1", FarmID: "f1", Quantity: d("10")})
	require.NoError(t, err)

	other := entity.Session{UserID: "u9", CompanyID: "c2"}
	_, err = uc.Get(ctx, other, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Exit(ctx, other, rec.ID, dto.StockExitRequest{Quantity: d("1"), Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
