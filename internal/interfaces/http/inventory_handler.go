package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
)

// InventoryHandler stock por hacienda, movimientos manuales e historial (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Entry godoc
// @Summary      Entrada manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockEntryRequest  true  "product_id, farm_id, quantity, reason"
// @Success      201   {object}  dto.InventoryRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) Entry(c *fiber.Ctx) error {
	var in dto.StockEntryRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Entry(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Exit godoc
// @Summary      Salida manual de stock
// @Description  No puede superar el disponible (físico menos reservado).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro de inventario"
// @Param        body  body  dto.StockExitRequest  true  "quantity, reason"
// @Success      200   {object}  dto.InventoryRecordResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/records/{id}/exits [post]
func (h *InventoryHandler) Exit(c *fiber.Ctx) error {
	var in dto.StockExitRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Exit(c.UserContext(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Traslado entre haciendas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "source_record_id, dest_farm_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Transfer(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Registro de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.InventoryRecordResponse
// @Router       /api/inventory/records/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Stock de la empresa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        farm_id  query  string  false  "filtrar por hacienda"
// @Success      200  {object}  dto.InventoryRecordListResponse
// @Router       /api/inventory/records [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSession(c), c.Query("farm_id"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de un registro (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.HistoryListResponse
// @Router       /api/inventory/records/{id}/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), GetSession(c), c.Params("id"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
