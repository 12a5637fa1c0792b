package serviceorder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	domaininv "github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/workflow"
)

// ShortageError la orden no pudo reservar todo su material. Se compara con errors.Is
// contra domain.ErrInsufficientStock.
type ShortageError struct {
	Shortages []domaininv.Shortage
}

func (e *ShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s: requiere %s, disponible %s", s.ProductID, s.Required, s.Available))
	}
	return "stock insuficiente (" + strings.Join(parts, "; ") + ")"
}

func (e *ShortageError) Unwrap() error { return domain.ErrInsufficientStock }

// Workflow ciclo de vida de las órdenes de servicio. Cada operación es una transacción:
// la orden, sus eventos y los movimientos de inventario se confirman juntos o no se confirman.
type Workflow struct {
	tx      repository.TxRunner
	orders  repository.ServiceOrderRepository
	records repository.InventoryRecordRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewWorkflow construye el flujo.
func NewWorkflow(tx repository.TxRunner, orders repository.ServiceOrderRepository, records repository.InventoryRecordRepository, log zerolog.Logger) *Workflow {
	return &Workflow{tx: tx, orders: orders, records: records, log: log, now: time.Now}
}

// Create emite una orden: valida el catálogo, calcula las líneas y reserva todo el material.
// Si algún producto no alcanza la orden queda en AWAITING_PRODUCT sin reservar nada.
func (w *Workflow) Create(ctx context.Context, s entity.Session, in dto.CreateServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	planned, err := time.Parse("2006-01-02", in.PlannedDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.FlowRate.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var (
		order     *entity.ServiceOrder
		shortages []domaininv.Shortage
	)
	err = w.tx.Run(ctx, func(repos repository.TxRepos) error {
		area, err := checkFields(ctx, repos, s.CompanyID, in.FarmID, in.FieldIDs)
		if err != nil {
			return err
		}
		if in.TotalArea != nil {
			area = *in.TotalArea
		}
		if !area.IsPositive() {
			return domain.ErrInvalidInput
		}
		tank, err := checkAssignment(ctx, repos, s.CompanyID, in.CropID, in.MachineID, in.OperatorID)
		if err != nil {
			return err
		}
		if err := checkLines(ctx, repos, s.CompanyID, in.Lines); err != nil {
			return err
		}
		number, err := repos.ServiceOrders.NextNumber(ctx, s.CompanyID)
		if err != nil {
			return err
		}
		now := w.now()
		order = &entity.ServiceOrder{
			ID:           uuid.New().String(),
			CompanyID:    s.CompanyID,
			Number:       number,
			FarmID:       in.FarmID,
			FieldIDs:     in.FieldIDs,
			CropID:       in.CropID,
			MachineID:    in.MachineID,
			OperatorID:   in.OperatorID,
			PlannedDate:  planned,
			TotalArea:    area,
			ExecutedArea: decimal.Zero,
			FlowRate:     in.FlowRate,
			TankCapacity: tank,
			Status:       entity.OrderStatusEmitted,
			Notes:        in.Notes,
			CreatedBy:    s.UserID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		order.Lines = ComputeLines(order, in.Lines)

		l := inventory.FromTx(repos)
		held, short, err := l.ReserveAll(ctx, Requirements(order), w.note(order, s, "reserva"))
		if err != nil {
			return err
		}
		order.ReservationHeld = held
		if !held {
			order.Status = entity.OrderStatusAwaitingProduct
			shortages = short
		}
		if err := repos.ServiceOrders.Create(ctx, order); err != nil {
			return err
		}
		return w.event(ctx, repos, order, s, entity.ServiceOrderEvent{
			Kind:     entity.OrderEventStatus,
			ToStatus: order.Status,
		})
	})
	if err != nil {
		return nil, err
	}
	w.log.Info().Str("order_id", order.ID).Int("number", order.Number).Str("status", order.Status).Msg("orden de servicio emitida")
	return w.toResponse(order, shortages), nil
}

// UpdatePlan cambia talhões, área, caudal o dosis de una orden no iniciada. Libera la reserva,
// recalcula las líneas y vuelve a reservar todo o nada; el estado sigue al resultado.
func (w *Workflow) UpdatePlan(ctx context.Context, s entity.Session, id string, in dto.UpdatePlanRequest) (*dto.ServiceOrderResponse, error) {
	var shortages []domaininv.Shortage
	order, err := w.mutate(ctx, s, id, func(repos repository.TxRepos, l *inventory.Ledger, o *entity.ServiceOrder) error {
		if !workflow.PreProgress(o.Status) {
			return domain.ErrInvalidTransition
		}
		if len(in.FieldIDs) > 0 {
			area, err := checkFields(ctx, repos, s.CompanyID, o.FarmID, in.FieldIDs)
			if err != nil {
				return err
			}
			o.FieldIDs = in.FieldIDs
			o.TotalArea = area
		}
		if in.TotalArea != nil {
			o.TotalArea = *in.TotalArea
		}
		if in.FlowRate != nil {
			o.FlowRate = *in.FlowRate
		}
		if !o.TotalArea.IsPositive() || !o.FlowRate.IsPositive() {
			return domain.ErrInvalidInput
		}
		lines := make([]dto.OrderLineRequest, 0, len(o.Lines))
		for _, line := range o.Lines {
			lines = append(lines, dto.OrderLineRequest{ProductID: line.ProductID, DosePerArea: line.DosePerArea})
		}
		if len(in.Lines) > 0 {
			if err := checkLines(ctx, repos, s.CompanyID, in.Lines); err != nil {
				return err
			}
			lines = in.Lines
		}
		if o.ReservationHeld {
			if err := l.ReleaseAll(ctx, Requirements(o), w.note(o, s, "liberación por replanificación")); err != nil {
				return err
			}
			o.ReservationHeld = false
		}
		o.Lines = ComputeLines(o, lines)
		held, short, err := l.ReserveAll(ctx, Requirements(o), w.note(o, s, "reserva"))
		if err != nil {
			return err
		}
		o.ReservationHeld = held
		if err := w.event(ctx, repos, o, s, entity.ServiceOrderEvent{Kind: entity.OrderEventPlan, Area: o.TotalArea}); err != nil {
			return err
		}
		target := entity.OrderStatusEmitted
		if !held {
			target = entity.OrderStatusAwaitingProduct
			shortages = short
		}
		if o.Status == target {
			return nil
		}
		return w.changeStatus(ctx, repos, l, s, o, target, "")
	})
	if err != nil {
		return nil, err
	}
	return w.toResponse(order, shortages), nil
}

// mutate carga la orden con bloqueo, aplica fn y la persiste en la misma transacción.
func (w *Workflow) mutate(ctx context.Context, s entity.Session, id string, fn func(repos repository.TxRepos, l *inventory.Ledger, o *entity.ServiceOrder) error) (*entity.ServiceOrder, error) {
	var order *entity.ServiceOrder
	err := w.tx.Run(ctx, func(repos repository.TxRepos) error {
		o, err := lockOrder(ctx, repos, s, id)
		if err != nil {
			return err
		}
		if err := fn(repos, inventory.FromTx(repos), o); err != nil {
			return err
		}
		o.UpdatedAt = w.now()
		if err := repos.ServiceOrders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	return order, err
}

// changeStatus único punto de cambio de estado: valida la transición, liquida la reserva
// y registra el evento.
func (w *Workflow) changeStatus(ctx context.Context, repos repository.TxRepos, l *inventory.Ledger, s entity.Session, o *entity.ServiceOrder, target, note string) error {
	if err := workflow.CheckTransition(o.Status, target); err != nil {
		return err
	}
	if err := w.settle(ctx, l, s, o, target); err != nil {
		return err
	}
	from := o.Status
	o.Status = target
	now := w.now()
	switch target {
	case entity.OrderStatusInProgress:
		o.StartedAt = &now
	case entity.OrderStatusCompleted:
		o.CompletedAt = &now
	}
	if err := w.event(ctx, repos, o, s, entity.ServiceOrderEvent{
		Kind:       entity.OrderEventStatus,
		FromStatus: from,
		ToStatus:   target,
		Note:       note,
	}); err != nil {
		return err
	}
	w.log.Info().Str("order_id", o.ID).Str("from", from).Str("to", target).Msg("orden de servicio cambió de estado")
	return nil
}

// settle libera o consume la reserva según el destino. target vacío es el borrado.
func (w *Workflow) settle(ctx context.Context, l *inventory.Ledger, s entity.Session, o *entity.ServiceOrder, target string) error {
	switch workflow.SettleReservation(o, target) {
	case workflow.SettleRelease:
		if err := l.ReleaseAll(ctx, Requirements(o), w.note(o, s, "liberación de reserva")); err != nil {
			return err
		}
	case workflow.SettleConsume:
		if err := l.ConsumeAll(ctx, Requirements(o), w.note(o, s, "consumo")); err != nil {
			return err
		}
	default:
		return nil
	}
	o.ReservationHeld = false
	return nil
}

func (w *Workflow) event(ctx context.Context, repos repository.TxRepos, o *entity.ServiceOrder, s entity.Session, e entity.ServiceOrderEvent) error {
	e.ID = uuid.New().String()
	e.OrderID = o.ID
	e.Actor = s.UserID
	e.CreatedAt = w.now()
	return repos.ServiceOrders.AppendEvent(ctx, &e)
}

func (w *Workflow) note(o *entity.ServiceOrder, s entity.Session, what string) inventory.Note {
	return inventory.Note{
		Reason:    fmt.Sprintf("OS #%d: %s", o.Number, what),
		Reference: o.ID,
		Actor:     s.UserID,
	}
}

// ComputeLines recalcula las cantidades de cada línea a partir de área, caudal y tanque.
func ComputeLines(o *entity.ServiceOrder, lines []dto.OrderLineRequest) []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(lines))
	for _, in := range lines {
		line := entity.OrderLine{
			ProductID:   in.ProductID,
			DosePerArea: in.DosePerArea,
			QtyTotal:    in.DosePerArea.Mul(o.TotalArea),
			QtyPerLoad:  decimal.Zero,
		}
		if o.FlowRate.IsPositive() {
			line.QtyPerLoad = in.DosePerArea.Mul(o.TankCapacity).Div(o.FlowRate)
		}
		out = append(out, line)
	}
	return out
}

// Requirements material que la orden necesita en su hacienda.
func Requirements(o *entity.ServiceOrder) []domaininv.Requirement {
	out := make([]domaininv.Requirement, 0, len(o.Lines))
	for _, line := range o.Lines {
		out = append(out, domaininv.Requirement{ProductID: line.ProductID, FarmID: o.FarmID, Qty: line.QtyTotal})
	}
	return out
}

func lockOrder(ctx context.Context, repos repository.TxRepos, s entity.Session, id string) (*entity.ServiceOrder, error) {
	o, err := repos.ServiceOrders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CompanyID != s.CompanyID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// checkFields valida hacienda y talhões y devuelve la suma de sus áreas.
func checkFields(ctx context.Context, repos repository.TxRepos, companyID, farmID string, fieldIDs []string) (decimal.Decimal, error) {
	farm, err := repos.Farms.GetByID(ctx, farmID)
	if err != nil {
		return decimal.Zero, err
	}
	if farm == nil || farm.CompanyID != companyID {
		return decimal.Zero, domain.ErrNotFound
	}
	if len(fieldIDs) == 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	area := decimal.Zero
	seen := make(map[string]bool, len(fieldIDs))
	for _, id := range fieldIDs {
		if seen[id] {
			return decimal.Zero, domain.ErrInvalidInput
		}
		seen[id] = true
		field, err := repos.Farms.GetField(ctx, id)
		if err != nil {
			return decimal.Zero, err
		}
		if field == nil || field.FarmID != farmID {
			return decimal.Zero, domain.ErrNotFound
		}
		area = area.Add(field.Area)
	}
	return area, nil
}

// checkAssignment valida cultura, máquina y operador; devuelve la capacidad del tanque.
func checkAssignment(ctx context.Context, repos repository.TxRepos, companyID, cropID, machineID, operatorID string) (decimal.Decimal, error) {
	crop, err := repos.Fleet.GetCrop(ctx, cropID)
	if err != nil {
		return decimal.Zero, err
	}
	if crop == nil || crop.CompanyID != companyID {
		return decimal.Zero, domain.ErrNotFound
	}
	machine, err := repos.Fleet.GetMachine(ctx, machineID)
	if err != nil {
		return decimal.Zero, err
	}
	if machine == nil || machine.CompanyID != companyID {
		return decimal.Zero, domain.ErrNotFound
	}
	operator, err := repos.Fleet.GetOperator(ctx, operatorID)
	if err != nil {
		return decimal.Zero, err
	}
	if operator == nil || operator.CompanyID != companyID {
		return decimal.Zero, domain.ErrNotFound
	}
	if !operator.Active {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return machine.TankCapacity, nil
}

func checkLines(ctx context.Context, repos repository.TxRepos, companyID string, lines []dto.OrderLineRequest) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !line.DosePerArea.IsPositive() || seen[line.ProductID] {
			return domain.ErrInvalidInput
		}
		seen[line.ProductID] = true
		p, err := repos.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if p == nil || p.CompanyID != companyID {
			return domain.ErrNotFound
		}
	}
	return nil
}
