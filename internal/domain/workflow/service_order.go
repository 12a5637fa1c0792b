package workflow

import (
	"slices"
	"time"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
)

var serviceOrderTransitions = map[string][]string{
	entity.OrderStatusEmitted: {
		entity.OrderStatusAwaitingProduct,
		entity.OrderStatusInProgress,
		entity.OrderStatusCancelled,
	},
	entity.OrderStatusAwaitingProduct: {
		entity.OrderStatusEmitted,
		entity.OrderStatusInProgress,
		entity.OrderStatusCancelled,
	},
	entity.OrderStatusInProgress: {
		entity.OrderStatusCompleted,
	},
}

// CanTransition indica si una orden de servicio puede pasar de from a to.
func CanTransition(from, to string) bool {
	return slices.Contains(serviceOrderTransitions[from], to)
}

// CheckTransition devuelve ErrInvalidTransition si el cambio no está permitido.
func CheckTransition(from, to string) error {
	if !CanTransition(from, to) {
		return domain.ErrInvalidTransition
	}
	return nil
}

// PreProgress indica si la orden todavía no empezó a ejecutarse (editable, cancelable).
func PreProgress(status string) bool {
	return status == entity.OrderStatusEmitted || status == entity.OrderStatusAwaitingProduct
}

// Settlement qué hacer con la reserva de una orden al cambiar de estado.
type Settlement int

const (
	SettleNone    Settlement = iota
	SettleRelease            // devolver lo reservado al disponible
	SettleConsume            // convertir la reserva en salida física
)

// SettleReservation decide el destino de la reserva de la orden al ir hacia target.
// Toda reserva sale del estado reservado por exactamente una liberación o un consumo.
// target vacío representa el borrado de la orden.
func SettleReservation(o *entity.ServiceOrder, target string) Settlement {
	if !o.ReservationHeld {
		return SettleNone
	}
	switch target {
	case entity.OrderStatusInProgress:
		return SettleConsume
	case entity.OrderStatusCancelled, entity.OrderStatusAwaitingProduct, "":
		return SettleRelease
	}
	return SettleNone
}

// EffectiveQualifiers devuelve los calificadores explícitos más LATE derivado
// cuando la fecha planificada pasó y la orden no terminó.
func EffectiveQualifiers(o *entity.ServiceOrder, now time.Time) []string {
	out := slices.Clone(o.Qualifiers)
	late := !o.Finished() && !o.PlannedDate.IsZero() && now.After(endOfDay(o.PlannedDate))
	if late && !slices.Contains(out, entity.QualifierLate) {
		out = append(out, entity.QualifierLate)
	}
	slices.Sort(out)
	return out
}

// ValidQualifier indica si q es un calificador conocido.
func ValidQualifier(q string) bool {
	return q == entity.QualifierLate || q == entity.QualifierRework
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
