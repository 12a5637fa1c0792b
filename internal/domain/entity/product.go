package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de insumo.
const (
	CategoryHerbicide   = "HERBICIDA"
	CategoryInsecticide = "INSETICIDA"
	CategoryFungicide   = "FUNGICIDA"
	CategoryAdjuvant    = "ADJUVANTE"
	CategoryFertilizer  = "FERTILIZANTE"
	CategorySeed        = "SEMENTE"
	CategoryOther       = "OUTROS"
)

// Product es la definición maestra de un insumo. El stock vive en InventoryRecord por hacienda.
type Product struct {
	ID                 string
	CompanyID          string
	Name               string
	SearchKey          string // nombre normalizado (sin acentos, minúsculas)
	ActiveIngredient   string
	UnitMeasure        string // L, kg, un
	Category           string
	DefaultPurchaseQty decimal.Decimal
	ReferencePrice     decimal.Decimal // precio unitario de referencia
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
