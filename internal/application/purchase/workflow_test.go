package purchase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/purchase"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/memory"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

var session = entity.Session{UserID: "u1", CompanyID: "c1", Role: entity.RoleAdmin}

func newWorkflow(t *testing.T) (*purchase.Workflow, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	require.NoError(t, repos.Farms.Create(ctx, &entity.Farm{ID: "f1", CompanyID: "c1", Name: "Santa Rita"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "p1", CompanyID: "c1", Name: "Glifosato", SearchKey: "glifosato", UnitMeasure: "L",
		DefaultPurchaseQty: d("20"), ReferencePrice: d("30"),
	}))
	return purchase.NewWorkflow(memory.NewTxRunner(store), repos.PurchaseOrders, zerolog.Nop()), store
}

func TestCreate_UsaCantidadPorDefecto(t *testing.T) {
	wf, _ := newWorkflow(t)
	res, err := wf.Create(context.Background(), session, dto.CreatePurchaseOrderRequest{ProductID: "p1", FarmID: "f1", UnitPrice: d("32.5")})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPending, res.Status)
	assert.True(t, res.Quantity.Equal(d("20")))
	assert.True(t, res.TotalValue.Equal(d("650")))
	assert.Equal(t, "L", res.Unit)
	assert.Equal(t, 1, res.Number)
}

func TestCreate_ProductoInexistente(t *testing.T) {
	wf, _ := newWorkflow(t)
	_, err := wf.Create(context.Background(), session, dto.CreatePurchaseOrderRequest{ProductID: "p9", FarmID: "f1", UnitPrice: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_SumaStockUnaSolaVez(t *testing.T) {
	wf, store := newWorkflow(t)
	ctx := context.Background()
	qty := d("50")
	po, err := wf.Create(ctx, session, dto.CreatePurchaseOrderRequest{ProductID: "p1", FarmID: "f1", Quantity: &qty, UnitPrice: d("28")})
	require.NoError(t, err)

	recv := dto.ReceivePurchaseOrderRequest{Supplier: "AgroSul", InvoiceNumber: "NF-123", UpdateReferencePrice: true}
	_, err = wf.Receive(ctx, session, po.ID, recv)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = wf.Approve(ctx, session, po.ID)
	require.NoError(t, err)
	res, err := wf.Receive(ctx, session, po.ID, recv)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, res.Status)
	assert.Equal(t, "AgroSul", res.Supplier)
	assert.NotNil(t, res.ReceivedAt)

	_, err = wf.Receive(ctx, session, po.ID, recv)
	assert.ErrorIs(t, err, domain.ErrAlreadyReceived)

	rec, err := store.Repos().Records.GetByKeyForUpdate(ctx, "p1", "f1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.PhysicalStock.Equal(d("50")))

	hist, err := store.Repos().History.ListByReference(ctx, po.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.HistoryKindEntry, hist[0].Kind)
	assert.Contains(t, hist[0].Description, "NF-123")

	product, err := store.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, product.ReferencePrice.Equal(d("28")))
}

func TestCancelYDelete(t *testing.T) {
	wf, _ := newWorkflow(t)
	ctx := context.Background()
	a, err := wf.Create(ctx, session, dto.CreatePurchaseOrderRequest{ProductID: "p1", FarmID: "f1", UnitPrice: d("1")})
	require.NoError(t, err)

	res, err := wf.Cancel(ctx, session, a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCancelled, res.Status)
	_, err = wf.Approve(ctx, session, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	require.NoError(t, wf.Delete(ctx, session, a.ID))
	_, err = wf.Get(ctx, session, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	b, err := wf.Create(ctx, session, dto.CreatePurchaseOrderRequest{ProductID: "p1", FarmID: "f1", UnitPrice: d("1")})
	require.NoError(t, err)
	_, err = wf.Approve(ctx, session, b.ID)
	require.NoError(t, err)
	_, err = wf.Receive(ctx, session, b.ID, dto.ReceivePurchaseOrderRequest{Supplier: "X", InvoiceNumber: "1"})
	require.NoError(t, err)
	assert.ErrorIs(t, wf.Delete(ctx, session, b.ID), domain.ErrConflict)
	_, err = wf.Cancel(ctx, session, b.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestList_OtraEmpresaNoVe(t *testing.T) {
	wf, _ := newWorkflow(t)
	ctx := context.Background()
	_, err := wf.Create(ctx, session, dto.CreatePurchaseOrderRequest{ProductID: "p1", FarmID: "f1", UnitPrice: d("1")})
	require.NoError(t, err)

	list, err := wf.List(ctx, session, "", entity.PurchaseStatusPending, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	list, err = wf.List(ctx, entity.Session{UserID: "x", CompanyID: "c2"}, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestRoundUpToPack(t *testing.T) {
	assert.True(t, purchase.RoundUpToPack(d("7.5"), d("20")).Equal(d("20")))
	assert.True(t, purchase.RoundUpToPack(d("40"), d("20")).Equal(d("40")))
	assert.True(t, purchase.RoundUpToPack(d("41"), d("20")).Equal(d("60")))
	assert.True(t, purchase.RoundUpToPack(d("3.2"), decimal.Zero).Equal(d("3.2")))
}
