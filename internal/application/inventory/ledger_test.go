package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	domaininv "github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/memory"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func seedRecord(t *testing.T, tx repository.TxRunner, product, farm, qty string) *entity.InventoryRecord {
	t.Helper()
	var rec *entity.InventoryRecord
	err := tx.Run(context.Background(), func(repos repository.TxRepos) error {
		l := inventory.FromTx(repos)
		r, err := l.FindOrCreate(context.Background(), "c1", product, farm)
		if err != nil {
			return err
		}
		rec, err = l.AdjustPhysical(context.Background(), r.ID, d(qty), inventory.Note{Reason: "saldo inicial"})
		return err
	})
	require.NoError(t, err)
	return rec
}

func TestLedger_FindOrCreateEsIdempotente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	l := inventory.FromTx(store.Repos())

	a, err := l.FindOrCreate(ctx, "c1", "p1", "f1")
	require.NoError(t, err)
	b, err := l.FindOrCreate(ctx, "c1", "p1", "f1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.True(t, a.PhysicalStock.IsZero())

	hist, err := store.Repos().History.ListByRecord(ctx, a.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestLedger_EscenarioReservaYConsumo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	rec := seedRecord(t, tx, "p1", "f1", "100")
	l := inventory.FromTx(store.Repos())

	rec, err := l.Reserve(ctx, rec.ID, d("40"), inventory.Note{Reference: "os-1"})
	require.NoError(t, err)
	assert.True(t, rec.Available().Equal(d("60")))

	_, err = l.Reserve(ctx, rec.ID, d("70"), inventory.Note{Reference: "os-2"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	rec, err = l.Consume(ctx, rec.ID, d("40"), inventory.Note{Reference: "os-1"})
	require.NoError(t, err)
	assert.True(t, rec.PhysicalStock.Equal(d("60")))
	assert.True(t, rec.ReservedQty.IsZero())

	hist, err := store.Repos().History.ListByRecord(ctx, rec.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, entity.HistoryKindExit, hist[0].Kind)
	assert.True(t, hist[0].Quantity.Equal(d("-40")))
	assert.Equal(t, entity.HistoryKindReserve, hist[1].Kind)
	assert.Equal(t, entity.HistoryKindEntry, hist[2].Kind)
}

func TestLedger_SalidaNoTocaReservado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rec := seedRecord(t, memory.NewTxRunner(store), "p1", "f1", "50")
	l := inventory.FromTx(store.Repos())
	_, err := l.Reserve(ctx, rec.ID, d("30"), inventory.Note{})
	require.NoError(t, err)

	_, err = l.AdjustPhysical(ctx, rec.ID, d("-25"), inventory.Note{})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := l.AdjustPhysical(ctx, rec.ID, d("-20"), inventory.Note{})
	require.NoError(t, err)
	assert.True(t, got.Available().IsZero())
}

func TestLedger_ReleaseSinReservaNoRegistra(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rec := seedRecord(t, memory.NewTxRunner(store), "p1", "f1", "10")
	l := inventory.FromTx(store.Repos())

	got, err := l.Release(ctx, rec.ID, d("5"), inventory.Note{})
	require.NoError(t, err)
	assert.True(t, got.ReservedQty.IsZero())

	hist, err := store.Repos().History.ListByRecord(ctx, rec.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestLedger_TransferenciaCreaDestinoYComparteReferencia(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	src := seedRecord(t, memory.NewTxRunner(store), "p1", "f1", "100")
	l := inventory.FromTx(store.Repos())

	s, dst, err := l.Transfer(ctx, src.ID, "f2", d("30"), inventory.Note{Reference: "tr-1", Actor: "u1"})
	require.NoError(t, err)
	assert.True(t, s.PhysicalStock.Equal(d("70")))
	assert.Equal(t, "f2", dst.FarmID)
	assert.Equal(t, "p1", dst.ProductID)
	assert.True(t, dst.PhysicalStock.Equal(d("30")))

	byRef, err := store.Repos().History.ListByReference(ctx, "tr-1")
	require.NoError(t, err)
	require.Len(t, byRef, 2)
	assert.Equal(t, entity.HistoryKindExit, byRef[0].Kind)
	assert.Equal(t, src.ID, byRef[0].RecordID)
	assert.Equal(t, entity.HistoryKindEntry, byRef[1].Kind)
	assert.Equal(t, dst.ID, byRef[1].RecordID)
}

func TestLedger_TransferenciaInvalida(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	src := seedRecord(t, memory.NewTxRunner(store), "p1", "f1", "10")
	l := inventory.FromTx(store.Repos())

	_, _, err := l.Transfer(ctx, src.ID, "f1", d("1"), inventory.Note{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
	_, _, err = l.Transfer(ctx, src.ID, "", d("1"), inventory.Note{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
	_, _, err = l.Transfer(ctx, src.ID, "f2", d("11"), inventory.Note{})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, _, err = l.Transfer(ctx, "no-existe", "f2", d("1"), inventory.Note{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_ReserveAllTodoONada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	a := seedRecord(t, tx, "p1", "f1", "100")
	b := seedRecord(t, tx, "p2", "f1", "5")
	l := inventory.FromTx(store.Repos())

	reqs := []domaininv.Requirement{
		{ProductID: "p1", FarmID: "f1", Qty: d("40")},
		{ProductID: "p2", FarmID: "f1", Qty: d("8")},
		{ProductID: "p3", FarmID: "f1", Qty: d("1")},
	}
	held, shortages, err := l.ReserveAll(ctx, reqs, inventory.Note{Reference: "os-1"})
	require.NoError(t, err)
	assert.False(t, held)
	require.Len(t, shortages, 2)

	gotA, _ := store.Repos().Records.GetByID(ctx, a.ID)
	gotB, _ := store.Repos().Records.GetByID(ctx, b.ID)
	assert.True(t, gotA.ReservedQty.IsZero())
	assert.True(t, gotB.ReservedQty.IsZero())

	held, shortages, err = l.ReserveAll(ctx, reqs[:1], inventory.Note{Reference: "os-1"})
	require.NoError(t, err)
	assert.True(t, held)
	assert.Empty(t, shortages)
	gotA, _ = store.Repos().Records.GetByID(ctx, a.ID)
	assert.True(t, gotA.ReservedQty.Equal(d("40")))

	require.NoError(t, l.ReleaseAll(ctx, reqs, inventory.Note{Reference: "os-1"}))
	gotA, _ = store.Repos().Records.GetByID(ctx, a.ID)
	assert.True(t, gotA.ReservedQty.IsZero())
	assert.True(t, gotA.PhysicalStock.Equal(d("100")))
}

func TestLedger_ConsumeAllConvierteReservaEnSalida(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	a := seedRecord(t, memory.NewTxRunner(store), "p1", "f1", "100")
	l := inventory.FromTx(store.Repos())
	reqs := []domaininv.Requirement{
		{ProductID: "p1", FarmID: "f1", Qty: d("15")},
		{ProductID: "p1", FarmID: "f1", Qty: d("5")},
	}
	held, _, err := l.ReserveAll(ctx, reqs, inventory.Note{})
	require.NoError(t, err)
	require.True(t, held)

	require.NoError(t, l.ConsumeAll(ctx, reqs, inventory.Note{}))
	got, _ := store.Repos().Records.GetByID(ctx, a.ID)
	assert.True(t, got.PhysicalStock.Equal(d("80")))
	assert.True(t, got.ReservedQty.IsZero())
}
