package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/workflow"
)

// Workflow ciclo de vida de las órdenes de compra: PENDING → APPROVED → RECEIVED.
// La recepción es la única operación que toca el inventario.
type Workflow struct {
	tx     repository.TxRunner
	orders repository.PurchaseOrderRepository
	log    zerolog.Logger
	now    func() time.Time
}

// NewWorkflow construye el flujo.
func NewWorkflow(tx repository.TxRunner, orders repository.PurchaseOrderRepository, log zerolog.Logger) *Workflow {
	return &Workflow{tx: tx, orders: orders, log: log, now: time.Now}
}

// Create registra una compra PENDING. Sin cantidad usa la cantidad de compra por defecto del producto.
func (w *Workflow) Create(ctx context.Context, s entity.Session, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var order *entity.PurchaseOrder
	err := w.tx.Run(ctx, func(repos repository.TxRepos) error {
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.CompanyID != s.CompanyID {
			return domain.ErrNotFound
		}
		farm, err := repos.Farms.GetByID(ctx, in.FarmID)
		if err != nil {
			return err
		}
		if farm == nil || farm.CompanyID != s.CompanyID {
			return domain.ErrNotFound
		}
		qty := product.DefaultPurchaseQty
		if in.Quantity != nil {
			qty = *in.Quantity
		}
		if !qty.IsPositive() {
			return domain.ErrInvalidInput
		}
		number, err := repos.PurchaseOrders.NextNumber(ctx, s.CompanyID)
		if err != nil {
			return err
		}
		now := w.now()
		order = &entity.PurchaseOrder{
			ID:         uuid.New().String(),
			CompanyID:  s.CompanyID,
			Number:     number,
			ProductID:  product.ID,
			FarmID:     farm.ID,
			Quantity:   qty,
			Unit:       product.UnitMeasure,
			UnitPrice:  in.UnitPrice,
			TotalValue: qty.Mul(in.UnitPrice),
			Status:     entity.PurchaseStatusPending,
			CreatedBy:  s.UserID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return repos.PurchaseOrders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	w.log.Info().Str("purchase_id", order.ID).Int("number", order.Number).Msg("orden de compra creada")
	return ToResponse(order), nil
}

// Approve PENDING → APPROVED.
func (w *Workflow) Approve(ctx context.Context, s entity.Session, id string) (*dto.PurchaseOrderResponse, error) {
	return w.mutate(ctx, s, id, func(_ repository.TxRepos, po *entity.PurchaseOrder) error {
		if err := workflow.CheckApprove(po); err != nil {
			return err
		}
		now := w.now()
		po.Status = entity.PurchaseStatusApproved
		po.ApprovedBy = s.UserID
		po.ApprovedAt = &now
		return nil
	})
}

// Receive APPROVED → RECEIVED: suma la cantidad al stock físico de la hacienda destino
// (creando el registro si no existe) y opcionalmente actualiza el precio de referencia.
func (w *Workflow) Receive(ctx context.Context, s entity.Session, id string, in dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	return w.mutate(ctx, s, id, func(repos repository.TxRepos, po *entity.PurchaseOrder) error {
		if err := workflow.CheckReceive(po); err != nil {
			return err
		}
		l := inventory.FromTx(repos)
		rec, err := l.FindOrCreate(ctx, po.CompanyID, po.ProductID, po.FarmID)
		if err != nil {
			return err
		}
		note := inventory.Note{
			Reason:    fmt.Sprintf("OC #%d: recepción %s NF %s", po.Number, in.Supplier, in.InvoiceNumber),
			Reference: po.ID,
			Actor:     s.UserID,
		}
		if _, err := l.AdjustPhysical(ctx, rec.ID, po.Quantity, note); err != nil {
			return err
		}
		if in.UpdateReferencePrice && po.Quantity.IsPositive() {
			price := po.TotalValue.Div(po.Quantity)
			if err := repos.Products.UpdateReferencePrice(ctx, po.ProductID, price); err != nil {
				return err
			}
		}
		now := w.now()
		po.Status = entity.PurchaseStatusReceived
		po.Supplier = in.Supplier
		po.InvoiceNumber = in.InvoiceNumber
		po.ReceivedBy = s.UserID
		po.ReceivedAt = &now
		return nil
	})
}

// Cancel PENDING/APPROVED → CANCELLED.
func (w *Workflow) Cancel(ctx context.Context, s entity.Session, id string) (*dto.PurchaseOrderResponse, error) {
	return w.mutate(ctx, s, id, func(_ repository.TxRepos, po *entity.PurchaseOrder) error {
		if err := workflow.CheckCancel(po); err != nil {
			return err
		}
		po.Status = entity.PurchaseStatusCancelled
		return nil
	})
}

// Delete borra una orden que todavía no fue recibida.
func (w *Workflow) Delete(ctx context.Context, s entity.Session, id string) error {
	return w.tx.Run(ctx, func(repos repository.TxRepos) error {
		po, err := lock(ctx, repos, s, id)
		if err != nil {
			return err
		}
		if err := workflow.CheckDelete(po); err != nil {
			return err
		}
		return repos.PurchaseOrders.Delete(ctx, po.ID)
	})
}

// Get devuelve una orden de la empresa.
func (w *Workflow) Get(ctx context.Context, s entity.Session, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := w.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil || po.CompanyID != s.CompanyID {
		return nil, domain.ErrNotFound
	}
	return ToResponse(po), nil
}

// List órdenes de compra filtradas por hacienda y estado.
func (w *Workflow) List(ctx context.Context, s entity.Session, farmID, status string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.DefaultPage()
	list, err := w.orders.List(ctx, repository.PurchaseOrderFilter{
		CompanyID: s.CompanyID,
		FarmID:    farmID,
		Status:    status,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *ToResponse(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (w *Workflow) mutate(ctx context.Context, s entity.Session, id string, fn func(repos repository.TxRepos, po *entity.PurchaseOrder) error) (*dto.PurchaseOrderResponse, error) {
	var order *entity.PurchaseOrder
	err := w.tx.Run(ctx, func(repos repository.TxRepos) error {
		po, err := lock(ctx, repos, s, id)
		if err != nil {
			return err
		}
		if err := fn(repos, po); err != nil {
			return err
		}
		po.UpdatedAt = w.now()
		order = po
		return repos.PurchaseOrders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	w.log.Info().Str("purchase_id", order.ID).Str("status", order.Status).Msg("orden de compra actualizada")
	return ToResponse(order), nil
}

func lock(ctx context.Context, repos repository.TxRepos, s entity.Session, id string) (*entity.PurchaseOrder, error) {
	po, err := repos.PurchaseOrders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil || po.CompanyID != s.CompanyID {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

// ToResponse mapea la orden; el dinero se redondea a 2 decimales.
func ToResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		ID:            po.ID,
		Number:        po.Number,
		ProductID:     po.ProductID,
		FarmID:        po.FarmID,
		Quantity:      po.Quantity,
		Unit:          po.Unit,
		UnitPrice:     po.UnitPrice.Round(2),
		TotalValue:    po.TotalValue.Round(2),
		Status:        po.Status,
		Supplier:      po.Supplier,
		InvoiceNumber: po.InvoiceNumber,
		ApprovedAt:    po.ApprovedAt,
		ReceivedAt:    po.ReceivedAt,
		CreatedAt:     po.CreatedAt,
	}
}
