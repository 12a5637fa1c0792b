package memory

import (
	"context"
	"slices"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

var (
	_ repository.ServiceOrderRepository  = (*ServiceOrderRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
)

// ServiceOrderRepo órdenes de servicio y sus eventos.
type ServiceOrderRepo struct{ a access }

func (r *ServiceOrderRepo) NextNumber(_ context.Context, companyID string) (int, error) {
	var n int
	err := r.a.write(func(d *data) error {
		key := "service_order|" + companyID
		d.sequences[key]++
		n = d.sequences[key]
		return nil
	})
	return n, err
}

func (r *ServiceOrderRepo) Create(_ context.Context, o *entity.ServiceOrder) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.serviceOrders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		d.serviceOrders[o.ID] = copyServiceOrder(*o)
		return nil
	})
}

func (r *ServiceOrderRepo) GetByID(_ context.Context, id string) (*entity.ServiceOrder, error) {
	var out *entity.ServiceOrder
	err := r.a.read(func(d *data) error {
		if o, ok := d.serviceOrders[id]; ok {
			c := copyServiceOrder(o)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ServiceOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *ServiceOrderRepo) Update(_ context.Context, o *entity.ServiceOrder) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.serviceOrders[o.ID]; !ok {
			return domain.ErrNotFound
		}
		d.serviceOrders[o.ID] = copyServiceOrder(*o)
		return nil
	})
}

func (r *ServiceOrderRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.serviceOrders[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.serviceOrders, id)
		d.orderEvents = slices.DeleteFunc(d.orderEvents, func(e entity.ServiceOrderEvent) bool { return e.OrderID == id })
		return nil
	})
}

// List ordena por número descendente (más nuevas primero).
func (r *ServiceOrderRepo) List(_ context.Context, f repository.ServiceOrderFilter) ([]*entity.ServiceOrder, error) {
	var out []*entity.ServiceOrder
	err := r.a.read(func(d *data) error {
		var list []entity.ServiceOrder
		for _, o := range d.serviceOrders {
			if o.CompanyID != f.CompanyID {
				continue
			}
			if f.FarmID != "" && o.FarmID != f.FarmID {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			list = append(list, o)
		}
		slices.SortFunc(list, func(a, b entity.ServiceOrder) int { return b.Number - a.Number })
		for _, o := range page(list, f.Limit, f.Offset) {
			c := copyServiceOrder(o)
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r *ServiceOrderRepo) AppendEvent(_ context.Context, e *entity.ServiceOrderEvent) error {
	return r.a.write(func(d *data) error {
		d.orderEvents = append(d.orderEvents, *e)
		return nil
	})
}

func (r *ServiceOrderRepo) ListEvents(_ context.Context, orderID string) ([]*entity.ServiceOrderEvent, error) {
	var out []*entity.ServiceOrderEvent
	err := r.a.read(func(d *data) error {
		for _, e := range d.orderEvents {
			if e.OrderID == orderID {
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}

func copyServiceOrder(o entity.ServiceOrder) entity.ServiceOrder {
	o.FieldIDs = slices.Clone(o.FieldIDs)
	o.Qualifiers = slices.Clone(o.Qualifiers)
	o.Lines = slices.Clone(o.Lines)
	o.StartedAt = copyTime(o.StartedAt)
	o.CompletedAt = copyTime(o.CompletedAt)
	return o
}

// PurchaseOrderRepo órdenes de compra.
type PurchaseOrderRepo struct{ a access }

func (r *PurchaseOrderRepo) NextNumber(_ context.Context, companyID string) (int, error) {
	var n int
	err := r.a.write(func(d *data) error {
		key := "purchase_order|" + companyID
		d.sequences[key]++
		n = d.sequences[key]
		return nil
	})
	return n, err
}

func (r *PurchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.purchaseOrders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		d.purchaseOrders[o.ID] = copyPurchaseOrder(*o)
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.a.read(func(d *data) error {
		if o, ok := d.purchaseOrders[id]; ok {
			c := copyPurchaseOrder(o)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.purchaseOrders[o.ID]; !ok {
			return domain.ErrNotFound
		}
		d.purchaseOrders[o.ID] = copyPurchaseOrder(*o)
		return nil
	})
}

func (r *PurchaseOrderRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.purchaseOrders[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.purchaseOrders, id)
		return nil
	})
}

func (r *PurchaseOrderRepo) List(_ context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	err := r.a.read(func(d *data) error {
		var list []entity.PurchaseOrder
		for _, o := range d.purchaseOrders {
			if o.CompanyID != f.CompanyID {
				continue
			}
			if f.FarmID != "" && o.FarmID != f.FarmID {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			list = append(list, o)
		}
		slices.SortFunc(list, func(a, b entity.PurchaseOrder) int { return b.Number - a.Number })
		for _, o := range page(list, f.Limit, f.Offset) {
			c := copyPurchaseOrder(o)
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func copyPurchaseOrder(o entity.PurchaseOrder) entity.PurchaseOrder {
	o.ApprovedAt = copyTime(o.ApprovedAt)
	o.ReceivedAt = copyTime(o.ReceivedAt)
	return o
}
