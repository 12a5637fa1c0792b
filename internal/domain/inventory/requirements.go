package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
)

// Requirement cantidad que una orden necesita de un producto en una hacienda.
type Requirement struct {
	ProductID string
	FarmID    string
	Qty       decimal.Decimal
}

// MergeRequirements agrupa por (producto, hacienda) sumando cantidades y descarta ceros.
// El resultado sale ordenado por producto para bloquear filas siempre en el mismo orden.
func MergeRequirements(reqs []Requirement) []Requirement {
	idx := make(map[[2]string]int, len(reqs))
	out := make([]Requirement, 0, len(reqs))
	for _, r := range reqs {
		if !r.Qty.IsPositive() {
			continue
		}
		key := [2]string{r.ProductID, r.FarmID}
		if i, ok := idx[key]; ok {
			out[i].Qty = out[i].Qty.Add(r.Qty)
			continue
		}
		idx[key] = len(out)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FarmID != out[j].FarmID {
			return out[i].FarmID < out[j].FarmID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// Shortage faltante de un requerimiento frente al disponible.
type Shortage struct {
	ProductID string
	FarmID    string
	Required  decimal.Decimal
	Available decimal.Decimal
}

// RecordKey clave natural de un InventoryRecord.
func RecordKey(productID, farmID string) string {
	return productID + "|" + farmID
}

// Shortages compara requerimientos ya agrupados con sus registros.
// records se indexa por RecordKey; un registro ausente equivale a disponible cero.
func Shortages(reqs []Requirement, records map[string]*entity.InventoryRecord) []Shortage {
	var out []Shortage
	for _, r := range reqs {
		available := decimal.Zero
		if rec, ok := records[RecordKey(r.ProductID, r.FarmID)]; ok && rec != nil {
			available = rec.Available()
		}
		if r.Qty.GreaterThan(available) {
			out = append(out, Shortage{
				ProductID: r.ProductID,
				FarmID:    r.FarmID,
				Required:  r.Qty,
				Available: available,
			})
		}
	}
	return out
}
