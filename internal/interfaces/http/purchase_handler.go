package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/purchase"
)

// PurchaseHandler órdenes de compra y sugerencias de reposición (protegido).
type PurchaseHandler struct {
	wf          *purchase.Workflow
	suggestions *purchase.SuggestionUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(wf *purchase.Workflow, suggestions *purchase.SuggestionUseCase) *PurchaseHandler {
	return &PurchaseHandler{wf: wf, suggestions: suggestions}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "producto, hacienda, cantidad, precio"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.wf.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de compra"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	return h.respond(c)(h.wf.Get(c.UserContext(), GetSession(c), c.Params("id")))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        farm_id  query  string  false  "hacienda"
// @Param        status   query  string  false  "PENDING | APPROVED | RECEIVED | CANCELLED"
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	out, err := h.wf.List(c.UserContext(), GetSession(c), c.Query("farm_id"), c.Query("status"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de compra"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders/{id}/approve [post]
func (h *PurchaseHandler) Approve(c *fiber.Ctx) error {
	return h.respond(c)(h.wf.Approve(c.UserContext(), GetSession(c), c.Params("id")))
}

// Receive godoc
// @Summary      Recibir mercadería
// @Description  Suma la cantidad al stock físico de la hacienda destino. Solo una vez.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de compra"
// @Param        body  body  dto.ReceivePurchaseOrderRequest  true  "proveedor y nota fiscal"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseOrderRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	return h.respond(c)(h.wf.Receive(c.UserContext(), GetSession(c), c.Params("id"), in))
}

// Cancel godoc
// @Summary      Cancelar orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de compra"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	return h.respond(c)(h.wf.Cancel(c.UserContext(), GetSession(c), c.Params("id")))
}

// Delete godoc
// @Summary      Eliminar orden de compra no recibida
// @Tags         purchase-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden de compra"
// @Success      204
// @Router       /api/purchase-orders/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.wf.Delete(c.UserContext(), GetSession(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Suggestions godoc
// @Summary      Compras sugeridas para destrabar órdenes que esperan producto
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        farm_id  query  string  false  "hacienda"
// @Success      200  {array}  dto.PurchaseSuggestionDTO
// @Router       /api/purchase-orders/suggestions [get]
func (h *PurchaseHandler) Suggestions(c *fiber.Ctx) error {
	list, err := h.suggestions.Suggest(c.UserContext(), GetSession(c), c.Query("farm_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(list),
		"suggestions": list,
	})
}

func (h *PurchaseHandler) respond(c *fiber.Ctx) func(*dto.PurchaseOrderResponse, error) error {
	return func(out *dto.PurchaseOrderResponse, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
