package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/workflow"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.OrderStatusEmitted, entity.OrderStatusInProgress, true},
		{entity.OrderStatusEmitted, entity.OrderStatusCancelled, true},
		{entity.OrderStatusAwaitingProduct, entity.OrderStatusEmitted, true},
		{entity.OrderStatusAwaitingProduct, entity.OrderStatusInProgress, true},
		{entity.OrderStatusInProgress, entity.OrderStatusCompleted, true},
		{entity.OrderStatusInProgress, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCompleted, entity.OrderStatusInProgress, false},
		{entity.OrderStatusCancelled, entity.OrderStatusEmitted, false},
		{entity.OrderStatusEmitted, entity.OrderStatusCompleted, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, workflow.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
	assert.ErrorIs(t, workflow.CheckTransition(entity.OrderStatusCompleted, entity.OrderStatusEmitted), domain.ErrInvalidTransition)
}

func TestSettleReservation(t *testing.T) {
	held := &entity.ServiceOrder{Status: entity.OrderStatusEmitted, ReservationHeld: true}
	free := &entity.ServiceOrder{Status: entity.OrderStatusAwaitingProduct}

	assert.Equal(t, workflow.SettleConsume, workflow.SettleReservation(held, entity.OrderStatusInProgress))
	assert.Equal(t, workflow.SettleRelease, workflow.SettleReservation(held, entity.OrderStatusCancelled))
	assert.Equal(t, workflow.SettleRelease, workflow.SettleReservation(held, ""), "borrar libera la reserva")
	assert.Equal(t, workflow.SettleNone, workflow.SettleReservation(free, entity.OrderStatusCancelled))
	assert.Equal(t, workflow.SettleNone, workflow.SettleReservation(free, entity.OrderStatusInProgress))
}

func TestEffectiveQualifiers(t *testing.T) {
	planned := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	o := &entity.ServiceOrder{
		Status:      entity.OrderStatusEmitted,
		PlannedDate: planned,
		Qualifiers:  []string{entity.QualifierRework},
	}

	sameDay := planned.Add(10 * time.Hour)
	assert.Equal(t, []string{entity.QualifierRework}, workflow.EffectiveQualifiers(o, sameDay))

	nextDay := planned.Add(30 * time.Hour)
	assert.Equal(t, []string{entity.QualifierLate, entity.QualifierRework}, workflow.EffectiveQualifiers(o, nextDay))

	o.Status = entity.OrderStatusCompleted
	assert.Equal(t, []string{entity.QualifierRework}, workflow.EffectiveQualifiers(o, nextDay),
		"una orden terminada no se considera atrasada")
}

func TestPurchaseChecks(t *testing.T) {
	po := &entity.PurchaseOrder{Status: entity.PurchaseStatusPending}
	assert.NoError(t, workflow.CheckApprove(po))
	assert.ErrorIs(t, workflow.CheckReceive(po), domain.ErrInvalidTransition)
	assert.NoError(t, workflow.CheckCancel(po))

	po.Status = entity.PurchaseStatusApproved
	assert.ErrorIs(t, workflow.CheckApprove(po), domain.ErrInvalidTransition)
	assert.NoError(t, workflow.CheckReceive(po))

	po.Status = entity.PurchaseStatusReceived
	assert.ErrorIs(t, workflow.CheckReceive(po), domain.ErrAlreadyReceived)
	assert.ErrorIs(t, workflow.CheckCancel(po), domain.ErrInvalidTransition)
	assert.ErrorIs(t, workflow.CheckDelete(po), domain.ErrConflict)
}
