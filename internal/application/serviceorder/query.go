package serviceorder

import (
	"context"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	domaininv "github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/workflow"
)

// Get devuelve la orden. Si espera producto incluye los faltantes actuales.
func (w *Workflow) Get(ctx context.Context, s entity.Session, id string) (*dto.ServiceOrderResponse, error) {
	o, err := w.load(ctx, s, id)
	if err != nil {
		return nil, err
	}
	var shortages []domaininv.Shortage
	if o.Status == entity.OrderStatusAwaitingProduct {
		shortages, err = w.shortages(ctx, o)
		if err != nil {
			return nil, err
		}
	}
	return w.toResponse(o, shortages), nil
}

// List órdenes de la empresa filtradas por hacienda y estado.
func (w *Workflow) List(ctx context.Context, s entity.Session, farmID, status string, page dto.PageRequest) (*dto.ServiceOrderListResponse, error) {
	page.DefaultPage()
	list, err := w.orders.List(ctx, repository.ServiceOrderFilter{
		CompanyID: s.CompanyID,
		FarmID:    farmID,
		Status:    status,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *w.toResponse(o, nil))
	}
	return &dto.ServiceOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Events auditoría de la orden en orden cronológico.
func (w *Workflow) Events(ctx context.Context, s entity.Session, id string) ([]dto.ServiceOrderEventResponse, error) {
	if _, err := w.load(ctx, s, id); err != nil {
		return nil, err
	}
	events, err := w.orders.ListEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceOrderEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ServiceOrderEventResponse{
			Kind:       e.Kind,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			Area:       e.Area,
			ProductID:  e.ProductID,
			Quantity:   e.Quantity,
			Note:       e.Note,
			Actor:      e.Actor,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out, nil
}

func (w *Workflow) load(ctx context.Context, s entity.Session, id string) (*entity.ServiceOrder, error) {
	o, err := w.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CompanyID != s.CompanyID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (w *Workflow) shortages(ctx context.Context, o *entity.ServiceOrder) ([]domaininv.Shortage, error) {
	reqs := domaininv.MergeRequirements(Requirements(o))
	records := make(map[string]*entity.InventoryRecord, len(reqs))
	for _, r := range reqs {
		rec, err := w.records.GetByKey(ctx, r.ProductID, r.FarmID)
		if err != nil {
			return nil, err
		}
		records[domaininv.RecordKey(r.ProductID, r.FarmID)] = rec
	}
	return domaininv.Shortages(reqs, records), nil
}

func (w *Workflow) toResponse(o *entity.ServiceOrder, shortages []domaininv.Shortage) *dto.ServiceOrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID:   l.ProductID,
			DosePerArea: l.DosePerArea,
			QtyPerLoad:  l.QtyPerLoad.Round(3),
			QtyTotal:    l.QtyTotal.Round(3),
		})
	}
	var short []dto.ShortageResponse
	for _, s := range shortages {
		short = append(short, dto.ShortageResponse{
			ProductID: s.ProductID,
			FarmID:    s.FarmID,
			Required:  s.Required.Round(3),
			Available: s.Available.Round(3),
		})
	}
	return &dto.ServiceOrderResponse{
		ID:              o.ID,
		Number:          o.Number,
		FarmID:          o.FarmID,
		FieldIDs:        o.FieldIDs,
		CropID:          o.CropID,
		MachineID:       o.MachineID,
		OperatorID:      o.OperatorID,
		PlannedDate:     o.PlannedDate.Format("2006-01-02"),
		Status:          o.Status,
		Qualifiers:      workflow.EffectiveQualifiers(o, w.now()),
		ReservationHeld: o.ReservationHeld,
		TotalArea:       o.TotalArea,
		ExecutedArea:    o.ExecutedArea,
		FlowRate:        o.FlowRate,
		TankCapacity:    o.TankCapacity,
		TotalVolume:     o.TotalVolume().Round(3),
		Loads:           o.Loads(),
		Lines:           lines,
		Shortages:       short,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		StartedAt:       o.StartedAt,
		CompletedAt:     o.CompletedAt,
	}
}
