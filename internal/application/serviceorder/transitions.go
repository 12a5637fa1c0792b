package serviceorder

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/workflow"
)

// ResolveReservation AWAITING_PRODUCT → EMITTED cuando llegó el material faltante.
func (w *Workflow) ResolveReservation(ctx context.Context, s entity.Session, id string) (*dto.ServiceOrderResponse, error) {
	order, err := w.mutate(ctx, s, id, func(repos repository.TxRepos, l *inventory.Ledger, o *entity.ServiceOrder) error {
		if err := workflow.CheckTransition(o.Status, entity.OrderStatusEmitted); err != nil {
			return err
		}
		if err := w.reserve(ctx, l, s, o); err != nil {
			return err
		}
		return w.changeStatus(ctx, repos, l, s, o, entity.OrderStatusEmitted, "material disponible")
	})
	if err != nil {
		return nil, err
	}
	return w.toResponse(order, nil), nil
}

// Suspend EMITTED → AWAITING_PRODUCT: devuelve la reserva al disponible.
func (w *Workflow) Suspend(ctx context.Context, s entity.Session, id, note string) (*dto.ServiceOrderResponse, error) {
	return w.transition(ctx, s, id, entity.OrderStatusAwaitingProduct, note)
}

// Start → IN_PROGRESS. Sin reserva vigente primero reserva todo o nada; luego consume cada línea.
func (w *Workflow) Start(ctx context.Context, s entity.Session, id string) (*dto.ServiceOrderResponse, error) {
	order, err := w.mutate(ctx, s, id, func(repos repository.TxRepos, l *inventory.Ledger, o *entity.ServiceOrder) error {
		if err := workflow.CheckTransition(o.Status, entity.OrderStatusInProgress); err != nil {
			return err
		}
		if !o.ReservationHeld {
			if err := w.reserve(ctx, l, s, o); err != nil {
				return err
			}
		}
		return w.changeStatus(ctx, repos, l, s, o, entity.OrderStatusInProgress, "")
	})
	if err != nil {
		return nil, err
	}
	return w.toResponse(order, nil), nil
}

// Cancel una orden no iniciada; la reserva vuelve al disponible.
func (w *Workflow) Cancel(ctx context.Context, s entity.Session, id, note string) (*dto.ServiceOrderResponse, error) {
	return w.transition(ctx, s, id, entity.OrderStatusCancelled, note)
}

// Complete IN_PROGRESS → COMPLETED. Las sobras informadas por el operador vuelven al stock físico.
func (w *Workflow) Complete(ctx context.Context, s entity.Session, id string, in dto.CompleteServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	products := make([]string, 0, len(in.Leftovers))
	for productID, qty := range in.Leftovers {
		if qty.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		products = append(products, productID)
	}
	slices.Sort(products)
	order, err := w.mutate(ctx, s, id, func(repos repository.TxRepos, l *inventory.Ledger, o *entity.ServiceOrder) error {
		if err := workflow.CheckTransition(o.Status, entity.OrderStatusCompleted); err != nil {
			return err
		}
		for _, productID := range products {
			qty := in.Leftovers[productID]
			if qty.IsZero() {
				continue
			}
			p, err := repos.Products.GetByID(ctx, productID)
			if err != nil {
				return err
			}
			if p == nil || p.CompanyID != s.CompanyID {
				return domain.ErrNotFound
			}
			rec, err := l.FindOrCreate(ctx, s.CompanyID, productID, o.FarmID)
			if err != nil {
				return err
			}
			if _, err := l.AdjustPhysical(ctx, rec.ID, qty, w.note(o, s, "sobra devuelta")); err != nil {
				return err
			}
		}
		return w.changeStatus(ctx, repos, l, s, o, entity.OrderStatusCompleted, in.Note)
	})
	if err != nil {
		return nil, err
	}
	return w.toResponse(order, nil), nil
}

// Delete borra una orden no iniciada liberando su reserva.
func (w *Workflow) Delete(ctx context.Context, s entity.Session, id string) error {
	err := w.tx.Run(ctx, func(repos repository.TxRepos) error {
		o, err := lockOrder(ctx, repos, s, id)
		if err != nil {
			return err
		}
		if !workflow.PreProgress(o.Status) && o.Status != entity.OrderStatusCancelled {
			return domain.ErrInvalidTransition
		}
		if err := w.settle(ctx, inventory.FromTx(repos), s, o, ""); err != nil {
			return err
		}
		return repos.ServiceOrders.Delete(ctx, o.ID)
	})
	if err != nil {
		return err
	}
	w.log.Info().Str("order_id", id).Msg("orden de servicio eliminada")
	return nil
}

// RegisterPartial registra hectáreas ejecutadas (PARCIAL). No mueve inventario.
func (w *Workflow) RegisterPartial(ctx context.Context, s entity.Session, id string, in dto.PartialProgressRequest) (*dto.ServiceOrderResponse, error) {
	if !in.Area.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	order, err := w.mutate(ctx, s, id, func(repos repository.TxRepos, _ *inventory.Ledger, o *entity.ServiceOrder) error {
		if o.Status != entity.OrderStatusInProgress {
			return domain.ErrInvalidTransition
		}
		executed := o.ExecutedArea.Add(in.Area)
		if executed.GreaterThan(o.TotalArea) {
			return fmt.Errorf("%w: ejecutado %s de %s ha", domain.ErrAreaExceeded, executed, o.TotalArea)
		}
		o.ExecutedArea = executed
		return w.event(ctx, repos, o, s, entity.ServiceOrderEvent{
			Kind: entity.OrderEventPartial,
			Area: in.Area,
			Note: in.Note,
		})
	})
	if err != nil {
		return nil, err
	}
	return w.toResponse(order, nil), nil
}

// RegisterAdditive consumo extra no planificado (ADITIVO): salida directa del disponible.
func (w *Workflow) RegisterAdditive(ctx context.Context, s entity.Session, id string, in dto.AdditiveRequest) (*dto.ServiceOrderResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	order, err := w.mutate(ctx, s, id, func(repos repository.TxRepos, l *inventory.Ledger, o *entity.ServiceOrder) error {
		if o.Status != entity.OrderStatusInProgress {
			return domain.ErrInvalidTransition
		}
		p, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil || p.CompanyID != s.CompanyID {
			return domain.ErrNotFound
		}
		rec, err := l.FindOrCreate(ctx, s.CompanyID, in.ProductID, o.FarmID)
		if err != nil {
			return err
		}
		if _, err := l.AdjustPhysical(ctx, rec.ID, in.Quantity.Neg(), w.note(o, s, "aditivo")); err != nil {
			return err
		}
		return w.event(ctx, repos, o, s, entity.ServiceOrderEvent{
			Kind:      entity.OrderEventAdditive,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Area:      decimal.Zero,
			Note:      in.Note,
		})
	})
	if err != nil {
		return nil, err
	}
	return w.toResponse(order, nil), nil
}

// SetQualifier marca LATE o REWORK.
func (w *Workflow) SetQualifier(ctx context.Context, s entity.Session, id, qualifier string) (*dto.ServiceOrderResponse, error) {
	return w.qualify(ctx, s, id, qualifier, true)
}

// ClearQualifier desmarca LATE o REWORK. Un LATE derivado de la fecha sigue apareciendo.
func (w *Workflow) ClearQualifier(ctx context.Context, s entity.Session, id, qualifier string) (*dto.ServiceOrderResponse, error) {
	return w.qualify(ctx, s, id, qualifier, false)
}

func (w *Workflow) qualify(ctx context.Context, s entity.Session, id, qualifier string, on bool) (*dto.ServiceOrderResponse, error) {
	if !workflow.ValidQualifier(qualifier) {
		return nil, domain.ErrInvalidInput
	}
	order, err := w.mutate(ctx, s, id, func(repos repository.TxRepos, _ *inventory.Ledger, o *entity.ServiceOrder) error {
		if o.Status == entity.OrderStatusCancelled {
			return domain.ErrInvalidTransition
		}
		if o.HasQualifier(qualifier) == on {
			return nil
		}
		note := "-" + qualifier
		if on {
			o.Qualifiers = append(o.Qualifiers, qualifier)
			slices.Sort(o.Qualifiers)
			note = "+" + qualifier
		} else {
			o.Qualifiers = slices.DeleteFunc(o.Qualifiers, func(q string) bool { return q == qualifier })
		}
		return w.event(ctx, repos, o, s, entity.ServiceOrderEvent{Kind: entity.OrderEventQualifier, Note: note})
	})
	if err != nil {
		return nil, err
	}
	return w.toResponse(order, nil), nil
}

func (w *Workflow) transition(ctx context.Context, s entity.Session, id, target, note string) (*dto.ServiceOrderResponse, error) {
	order, err := w.mutate(ctx, s, id, func(repos repository.TxRepos, l *inventory.Ledger, o *entity.ServiceOrder) error {
		return w.changeStatus(ctx, repos, l, s, o, target, note)
	})
	if err != nil {
		return nil, err
	}
	return w.toResponse(order, nil), nil
}

// reserve reserva todas las líneas o devuelve ShortageError sin tocar el inventario.
func (w *Workflow) reserve(ctx context.Context, l *inventory.Ledger, s entity.Session, o *entity.ServiceOrder) error {
	held, shortages, err := l.ReserveAll(ctx, Requirements(o), w.note(o, s, "reserva"))
	if err != nil {
		return err
	}
	if !held {
		return &ShortageError{Shortages: shortages}
	}
	o.ReservationHeld = true
	return nil
}
