package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

// ServiceOrderRepo órdenes de servicio. Las líneas viven en service_order_lines y se
// reemplazan completas en cada Update; los eventos son append-only.
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository construye el adaptador. Acepta pool o tx (Querier).
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

const serviceOrderColumns = `id, company_id, number, farm_id, field_ids, crop_id, machine_id, operator_id,
	planned_date, total_area, executed_area, flow_rate, tank_capacity, status, qualifiers,
	reservation_held, notes, created_by, created_at, updated_at, started_at, completed_at`

// NextNumber reserva el siguiente número correlativo de la empresa.
func (r *ServiceOrderRepo) NextNumber(ctx context.Context, companyID string) (int, error) {
	return nextNumber(ctx, r.q, companyID, "service_order")
}

func (r *ServiceOrderRepo) Create(ctx context.Context, o *entity.ServiceOrder) error {
	query := `
		INSERT INTO service_orders (` + serviceOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.Number, o.FarmID, o.FieldIDs, o.CropID, o.MachineID, o.OperatorID,
		o.PlannedDate, o.TotalArea, o.ExecutedArea, o.FlowRate, o.TankCapacity, o.Status, qualifiers(o),
		o.ReservationHeld, o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt, o.StartedAt, o.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service order: %w", err)
	}
	return r.insertLines(ctx, o)
}

func (r *ServiceOrderRepo) GetByID(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return r.getOne(ctx, `SELECT `+serviceOrderColumns+` FROM service_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera de la orden hasta el commit.
func (r *ServiceOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return r.getOne(ctx, `SELECT `+serviceOrderColumns+` FROM service_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *ServiceOrderRepo) Update(ctx context.Context, o *entity.ServiceOrder) error {
	query := `
		UPDATE service_orders SET
			field_ids = $2, crop_id = $3, machine_id = $4, operator_id = $5, planned_date = $6,
			total_area = $7, executed_area = $8, flow_rate = $9, tank_capacity = $10, status = $11,
			qualifiers = $12, reservation_held = $13, notes = $14, updated_at = $15,
			started_at = $16, completed_at = $17
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.FieldIDs, o.CropID, o.MachineID, o.OperatorID, o.PlannedDate,
		o.TotalArea, o.ExecutedArea, o.FlowRate, o.TankCapacity, o.Status,
		qualifiers(o), o.ReservationHeld, o.Notes, o.UpdatedAt,
		o.StartedAt, o.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update service order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM service_order_lines WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete service order lines: %w", err)
	}
	return r.insertLines(ctx, o)
}

// Delete elimina la orden; líneas y eventos caen por ON DELETE CASCADE.
func (r *ServiceOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM service_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por empresa y opcionalmente hacienda y estado, del número más alto al más bajo.
func (r *ServiceOrderRepo) List(ctx context.Context, f repository.ServiceOrderFilter) ([]*entity.ServiceOrder, error) {
	query := `
		SELECT ` + serviceOrderColumns + `
		FROM service_orders
		WHERE company_id = $1
		  AND ($2::text = '' OR farm_id::text = $2)
		  AND ($3::text = '' OR status = $3)
		ORDER BY number DESC
		LIMIT $4 OFFSET $5`
	orders, err := many(ctx, r.q, scanServiceOrder, query,
		f.CompanyID, f.FarmID, f.Status, limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list service orders: %w", err)
	}
	if err := r.loadLines(ctx, orders...); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *ServiceOrderRepo) AppendEvent(ctx context.Context, e *entity.ServiceOrderEvent) error {
	query := `
		INSERT INTO service_order_events (id, order_id, kind, from_status, to_status, area,
			product_id, quantity, note, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OrderID, e.Kind, e.FromStatus, e.ToStatus, e.Area,
		nullable(e.ProductID), e.Quantity, e.Note, e.Actor, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert service order event: %w", err)
	}
	return nil
}

// ListEvents en orden de registro.
func (r *ServiceOrderRepo) ListEvents(ctx context.Context, orderID string) ([]*entity.ServiceOrderEvent, error) {
	query := `
		SELECT id, order_id, kind, from_status, to_status, area, product_id, quantity, note, actor, created_at
		FROM service_order_events WHERE order_id = $1
		ORDER BY seq`
	return many(ctx, r.q, scanOrderEvent, query, orderID)
}

func (r *ServiceOrderRepo) getOne(ctx context.Context, query, id string) (*entity.ServiceOrder, error) {
	o, err := one(r.q.QueryRow(ctx, query, id), scanServiceOrder)
	if err != nil || o == nil {
		return nil, err
	}
	if err := r.loadLines(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *ServiceOrderRepo) insertLines(ctx context.Context, o *entity.ServiceOrder) error {
	if len(o.Lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, l := range o.Lines {
		batch.Queue(`
			INSERT INTO service_order_lines (order_id, position, product_id, dose_per_area, qty_per_load, qty_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, i, l.ProductID, l.DosePerArea, l.QtyPerLoad, l.QtyTotal)
	}
	br := r.q.SendBatch(ctx, batch)
	for range o.Lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert service order line: %w", err)
		}
	}
	return br.Close()
}

// loadLines completa las líneas de varias órdenes con una sola consulta.
func (r *ServiceOrderRepo) loadLines(ctx context.Context, orders ...*entity.ServiceOrder) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.ServiceOrder, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id, product_id, dose_per_area, qty_per_load, qty_total
		FROM service_order_lines WHERE order_id = ANY($1)
		ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list service order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID string
		var l entity.OrderLine
		if err := rows.Scan(&orderID, &l.ProductID, &l.DosePerArea, &l.QtyPerLoad, &l.QtyTotal); err != nil {
			return fmt.Errorf("scan service order line: %w", err)
		}
		if o := byID[orderID]; o != nil {
			o.Lines = append(o.Lines, l)
		}
	}
	return rows.Err()
}

func scanServiceOrder(row pgx.Row) (*entity.ServiceOrder, error) {
	var o entity.ServiceOrder
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.Number, &o.FarmID, &o.FieldIDs, &o.CropID, &o.MachineID, &o.OperatorID,
		&o.PlannedDate, &o.TotalArea, &o.ExecutedArea, &o.FlowRate, &o.TankCapacity, &o.Status, &o.Qualifiers,
		&o.ReservationHeld, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.StartedAt, &o.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOrderEvent(row pgx.Row) (*entity.ServiceOrderEvent, error) {
	var e entity.ServiceOrderEvent
	var productID *string
	err := row.Scan(&e.ID, &e.OrderID, &e.Kind, &e.FromStatus, &e.ToStatus, &e.Area,
		&productID, &e.Quantity, &e.Note, &e.Actor, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.ProductID = deref(productID)
	return &e, nil
}

// qualifiers evita escribir NULL en la columna text[] NOT NULL.
func qualifiers(o *entity.ServiceOrder) []string {
	if o.Qualifiers == nil {
		return []string{}
	}
	return o.Qualifiers
}

// nextNumber incrementa el correlativo (empresa, tipo) dentro de la transacción en curso.
func nextNumber(ctx context.Context, q Querier, companyID, kind string) (int, error) {
	const query = `
		INSERT INTO order_sequences (company_id, kind, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, kind)
		DO UPDATE SET last_number = order_sequences.last_number + 1
		RETURNING last_number`
	var n int
	if err := q.QueryRow(ctx, query, companyID, kind).Scan(&n); err != nil {
		return 0, fmt.Errorf("next %s number: %w", kind, err)
	}
	return n, nil
}
