package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/inventory"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func record(physical, reserved string) *entity.InventoryRecord {
	return &entity.InventoryRecord{
		ID:            "rec-1",
		ProductID:     "prod-1",
		FarmID:        "farm-a",
		PhysicalStock: d(physical),
		ReservedQty:   d(reserved),
	}
}

// Escenario completo: reservar 40, consumir 40, devolver 10 de sobra.
func TestLedger_ReserveConsumeLeftover(t *testing.T) {
	r := record("100", "0")

	m, err := inventory.Reserve(r, d("40"))
	require.NoError(t, err)
	assert.Equal(t, entity.HistoryKindReserve, m.Kind)
	assert.True(t, m.Delta.Equal(d("40")))
	assert.True(t, r.ReservedQty.Equal(d("40")))
	assert.True(t, r.Available().Equal(d("60")))

	m = inventory.Consume(r, d("40"))
	assert.Equal(t, entity.HistoryKindExit, m.Kind)
	assert.True(t, m.Delta.Equal(d("-40")))
	assert.True(t, r.PhysicalStock.Equal(d("60")))
	assert.True(t, r.ReservedQty.IsZero())

	m, err = inventory.AdjustPhysical(r, d("10"))
	require.NoError(t, err)
	assert.Equal(t, entity.HistoryKindEntry, m.Kind)
	assert.True(t, r.PhysicalStock.Equal(d("70")))
}

func TestReserve_MasQueDisponible_NoModificaRegistro(t *testing.T) {
	r := record("50", "20")

	_, err := inventory.Reserve(r, d("30.001"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, r.PhysicalStock.Equal(d("50")))
	assert.True(t, r.ReservedQty.Equal(d("20")))
}

func TestReserve_CantidadNegativa(t *testing.T) {
	_, err := inventory.Reserve(record("10", "0"), d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserveRelease_RestauraReserva(t *testing.T) {
	r := record("100", "15")

	_, err := inventory.Reserve(r, d("25"))
	require.NoError(t, err)
	m := inventory.Release(r, d("25"))

	assert.True(t, m.Delta.Equal(d("-25")))
	assert.True(t, r.ReservedQty.Equal(d("15")))
}

func TestRelease_PisoEnCero(t *testing.T) {
	r := record("100", "5")

	m := inventory.Release(r, d("8"))
	assert.True(t, m.Delta.Equal(d("-5")), "solo se libera lo reservado")
	assert.True(t, r.ReservedQty.IsZero())

	m = inventory.Release(r, d("3"))
	assert.False(t, m.Changed(), "sin reserva no hay mutación")
}

func TestConsume_PisoEnCero(t *testing.T) {
	r := record("10", "10")

	m := inventory.Consume(r, d("12"))
	assert.True(t, m.Delta.Equal(d("-10")))
	assert.True(t, r.PhysicalStock.IsZero())
	assert.True(t, r.ReservedQty.IsZero())
	assert.False(t, r.Available().IsNegative())
}

func TestAdjustPhysical_SalidaNoPuedeDejarNegativo(t *testing.T) {
	r := record("10", "0")

	_, err := inventory.AdjustPhysical(r, d("-10.5"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, r.PhysicalStock.Equal(d("10")))
}

func TestAdjustPhysical_SalidaRespetaReservas(t *testing.T) {
	r := record("10", "8")

	_, err := inventory.AdjustPhysical(r, d("-3"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "la salida no puede consumir stock reservado")

	m, err := inventory.AdjustPhysical(r, d("-2"))
	require.NoError(t, err)
	assert.True(t, m.Delta.Equal(d("-2")))
	assert.True(t, r.Available().IsZero())
}

func TestAdjustPhysical_DeltaCeroNoMuta(t *testing.T) {
	m, err := inventory.AdjustPhysical(record("1", "0"), decimal.Zero)
	require.NoError(t, err)
	assert.False(t, m.Changed())
}

func TestCanTransfer(t *testing.T) {
	r := record("30", "10")

	assert.ErrorIs(t, inventory.CanTransfer(r, "farm-a", d("1")), domain.ErrInvalidTransfer)
	assert.ErrorIs(t, inventory.CanTransfer(r, "", d("1")), domain.ErrInvalidTransfer)
	assert.ErrorIs(t, inventory.CanTransfer(r, "farm-b", d("21")), domain.ErrInsufficientStock)
	assert.ErrorIs(t, inventory.CanTransfer(r, "farm-b", decimal.Zero), domain.ErrInvalidInput)
	assert.NoError(t, inventory.CanTransfer(r, "farm-b", d("20")))
}

// Las invariantes físico >= 0 y reservado >= 0 se mantienen tras una secuencia arbitraria.
func TestLedger_InvariantesTrasSecuencia(t *testing.T) {
	r := record("0", "0")
	ops := []func(){
		func() { _, _ = inventory.AdjustPhysical(r, d("50")) },
		func() { _, _ = inventory.Reserve(r, d("30")) },
		func() { _, _ = inventory.AdjustPhysical(r, d("-25")) },
		func() { inventory.Consume(r, d("45")) },
		func() { inventory.Release(r, d("100")) },
		func() { _, _ = inventory.Reserve(r, d("1000")) },
		func() { _, _ = inventory.AdjustPhysical(r, d("-1")) },
	}
	for i, op := range ops {
		op()
		assert.False(t, r.PhysicalStock.IsNegative(), "físico negativo tras op %d", i)
		assert.False(t, r.ReservedQty.IsNegative(), "reservado negativo tras op %d", i)
		assert.False(t, r.Available().IsNegative(), "disponible negativo tras op %d", i)
	}
}

func TestMergeRequirements(t *testing.T) {
	reqs := inventory.MergeRequirements([]inventory.Requirement{
		{ProductID: "b", FarmID: "f", Qty: d("2")},
		{ProductID: "a", FarmID: "f", Qty: d("1")},
		{ProductID: "b", FarmID: "f", Qty: d("3")},
		{ProductID: "c", FarmID: "f", Qty: decimal.Zero},
	})

	require.Len(t, reqs, 2)
	assert.Equal(t, "a", reqs[0].ProductID)
	assert.Equal(t, "b", reqs[1].ProductID)
	assert.True(t, reqs[1].Qty.Equal(d("5")))
}

func TestShortages(t *testing.T) {
	reqs := []inventory.Requirement{
		{ProductID: "a", FarmID: "f", Qty: d("10")},
		{ProductID: "b", FarmID: "f", Qty: d("1")},
	}
	records := map[string]*entity.InventoryRecord{
		inventory.RecordKey("a", "f"): {ProductID: "a", FarmID: "f", PhysicalStock: d("12"), ReservedQty: d("5")},
	}

	out := inventory.Shortages(reqs, records)
	require.Len(t, out, 2)
	assert.True(t, out[0].Available.Equal(d("7")))
	assert.Equal(t, "b", out[1].ProductID)
	assert.True(t, out[1].Available.IsZero())
}
