package purchase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	domaininv "github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

const scanPage = 100

// SuggestionUseCase calcula qué comprar para destrabar las órdenes de servicio que esperan producto.
type SuggestionUseCase struct {
	serviceOrders  repository.ServiceOrderRepository
	purchaseOrders repository.PurchaseOrderRepository
	records        repository.InventoryRecordRepository
	products       repository.ProductRepository
}

// NewSuggestionUseCase construye el caso de uso de sugerencias de compra.
func NewSuggestionUseCase(
	serviceOrders repository.ServiceOrderRepository,
	purchaseOrders repository.PurchaseOrderRepository,
	records repository.InventoryRecordRepository,
	products repository.ProductRepository,
) *SuggestionUseCase {
	return &SuggestionUseCase{
		serviceOrders:  serviceOrders,
		purchaseOrders: purchaseOrders,
		records:        records,
		products:       products,
	}
}

// Suggest devuelve, por (producto, hacienda), el faltante de las órdenes en AWAITING_PRODUCT
// descontando el disponible y las compras abiertas, redondeado hacia arriba a múltiplos de la
// cantidad de compra por defecto. farmID vacío considera todas las haciendas.
func (uc *SuggestionUseCase) Suggest(ctx context.Context, s entity.Session, farmID string) ([]dto.PurchaseSuggestionDTO, error) {
	// 1. Requerimientos de las órdenes que esperan producto
	waiting, err := collect(func(offset int) ([]*entity.ServiceOrder, error) {
		return uc.serviceOrders.List(ctx, repository.ServiceOrderFilter{
			CompanyID: s.CompanyID,
			FarmID:    farmID,
			Status:    entity.OrderStatusAwaitingProduct,
			Limit:     scanPage,
			Offset:    offset,
		})
	})
	if err != nil {
		return nil, err
	}
	if len(waiting) == 0 {
		return []dto.PurchaseSuggestionDTO{}, nil
	}
	var reqs []domaininv.Requirement
	ordersByKey := make(map[string]int)
	for _, o := range waiting {
		seen := make(map[string]bool)
		for _, line := range o.Lines {
			reqs = append(reqs, domaininv.Requirement{ProductID: line.ProductID, FarmID: o.FarmID, Qty: line.QtyTotal})
			key := domaininv.RecordKey(line.ProductID, o.FarmID)
			if !seen[key] {
				seen[key] = true
				ordersByKey[key]++
			}
		}
	}

	// 2. Compras ya en curso (pendientes o aprobadas)
	onOrder := make(map[string]decimal.Decimal)
	for _, status := range []string{entity.PurchaseStatusPending, entity.PurchaseStatusApproved} {
		open, err := collect(func(offset int) ([]*entity.PurchaseOrder, error) {
			return uc.purchaseOrders.List(ctx, repository.PurchaseOrderFilter{
				CompanyID: s.CompanyID,
				FarmID:    farmID,
				Status:    status,
				Limit:     scanPage,
				Offset:    offset,
			})
		})
		if err != nil {
			return nil, err
		}
		for _, po := range open {
			key := domaininv.RecordKey(po.ProductID, po.FarmID)
			onOrder[key] = onOrder[key].Add(po.Quantity)
		}
	}

	// 3. Faltante por producto y hacienda
	suggestions := make([]dto.PurchaseSuggestionDTO, 0)
	for _, r := range domaininv.MergeRequirements(reqs) {
		key := domaininv.RecordKey(r.ProductID, r.FarmID)
		available := decimal.Zero
		rec, err := uc.records.GetByKey(ctx, r.ProductID, r.FarmID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			available = rec.Available()
		}
		shortfall := r.Qty.Sub(available).Sub(onOrder[key])
		if !shortfall.IsPositive() {
			continue
		}
		product, err := uc.products.GetByID(ctx, r.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		suggested := RoundUpToPack(shortfall, product.DefaultPurchaseQty)
		suggestions = append(suggestions, dto.PurchaseSuggestionDTO{
			ProductID:     r.ProductID,
			ProductName:   product.Name,
			FarmID:        r.FarmID,
			Required:      r.Qty.Round(3),
			Available:     available.Round(3),
			OnOrder:       onOrder[key].Round(3),
			Shortfall:     shortfall.Round(3),
			SuggestedQty:  suggested,
			EstimatedCost: suggested.Mul(product.ReferencePrice).Round(2),
			WaitingOrders: ordersByKey[key],
		})
	}

	// 4. Ordenar: más órdenes trabadas primero, luego mayor faltante
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.WaitingOrders != b.WaitingOrders {
			return a.WaitingOrders > b.WaitingOrders
		}
		return a.Shortfall.GreaterThan(b.Shortfall)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// RoundUpToPack redondea qty hacia arriba al múltiplo de pack. Sin pack devuelve qty.
func RoundUpToPack(qty, pack decimal.Decimal) decimal.Decimal {
	if !pack.IsPositive() {
		return qty
	}
	return qty.Div(pack).Ceil().Mul(pack)
}

func collect[T any](fetch func(offset int) ([]*T, error)) ([]*T, error) {
	var out []*T
	for offset := 0; ; offset += scanPage {
		list, err := fetch(offset)
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
		if len(list) < scanPage {
			return out, nil
		}
	}
}
