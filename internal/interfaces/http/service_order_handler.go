package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/serviceorder"
)

// ServiceOrderHandler ciclo de vida de las órdenes de servicio (protegido).
// Cada acción devuelve la orden actualizada.
type ServiceOrderHandler struct {
	wf *serviceorder.Workflow
}

// NewServiceOrderHandler construye el handler.
func NewServiceOrderHandler(wf *serviceorder.Workflow) *ServiceOrderHandler {
	return &ServiceOrderHandler{wf: wf}
}

// Create godoc
// @Summary      Emitir orden de servicio
// @Description  Reserva todos los insumos o ninguno; si falta stock la orden queda AWAITING_PRODUCT.
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceOrderRequest  true  "hacienda, talhões, máquina, operador, líneas"
// @Success      201   {object}  dto.ServiceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-orders [post]
func (h *ServiceOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceOrderRequest
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
// @Summary      Orden de servicio (con faltantes si espera producto)
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ServiceOrderResponse
// @Router       /api/service-orders/{id} [get]
func (h *ServiceOrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.wf.Get(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de servicio
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        farm_id  query  string  false  "hacienda"
// @Param        status   query  string  false  "EMITTED | AWAITING_PRODUCT | IN_PROGRESS | COMPLETED | CANCELLED"
// @Success      200  {object}  dto.ServiceOrderListResponse
// @Router       /api/service-orders [get]
func (h *ServiceOrderHandler) List(c *fiber.Ctx) error {
	out, err := h.wf.List(c.UserContext(), GetSession(c), c.Query("farm_id"), c.Query("status"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Events godoc
// @Summary      Auditoría de la orden
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}  dto.ServiceOrderEventResponse
// @Router       /api/service-orders/{id}/events [get]
func (h *ServiceOrderHandler) Events(c *fiber.Ctx) error {
	out, err := h.wf.Events(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePlan godoc
// @Summary      Replanificar área, caudal o dosis
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdatePlanRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/plan [put]
func (h *ServiceOrderHandler) UpdatePlan(c *fiber.Ctx) error {
	var in dto.UpdatePlanRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.wf.UpdatePlan(c.UserContext(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar aplicación
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ServiceOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/start [post]
func (h *ServiceOrderHandler) Start(c *fiber.Ctx) error {
	return h.respond(c)(h.wf.Start(c.UserContext(), GetSession(c), c.Params("id")))
}

// ResolveReservation godoc
// @Summary      Reintentar la reserva de una orden que espera producto
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ServiceOrderResponse
// @Router       /api/service-orders/{id}/resolve [post]
func (h *ServiceOrderHandler) ResolveReservation(c *fiber.Ctx) error {
	return h.respond(c)(h.wf.ResolveReservation(c.UserContext(), GetSession(c), c.Params("id")))
}

// Suspend godoc
// @Summary      Suspender (vuelve a AWAITING_PRODUCT y libera la reserva)
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.NoteRequest  false  "observación"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Router       /api/service-orders/{id}/suspend [post]
func (h *ServiceOrderHandler) Suspend(c *fiber.Ctx) error {
	in, ok, err := optionalNote(c)
	if !ok {
		return err
	}
	return h.respond(c)(h.wf.Suspend(c.UserContext(), GetSession(c), c.Params("id"), in.Note))
}

// Cancel godoc
// @Summary      Cancelar orden (libera la reserva)
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.NoteRequest  false  "motivo"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Router       /api/service-orders/{id}/cancel [post]
func (h *ServiceOrderHandler) Cancel(c *fiber.Ctx) error {
	in, ok, err := optionalNote(c)
	if !ok {
		return err
	}
	return h.respond(c)(h.wf.Cancel(c.UserContext(), GetSession(c), c.Params("id"), in.Note))
}

// Complete godoc
// @Summary      Concluir orden
// @Description  Consume lo reservado y devuelve al stock las sobras informadas.
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.CompleteServiceOrderRequest  false  "sobras por producto"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Router       /api/service-orders/{id}/complete [post]
func (h *ServiceOrderHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteServiceOrderRequest
	if len(c.Body()) > 0 {
		if ok, err := bindAndValidate(c, &in); !ok {
			return err
		}
	}
	return h.respond(c)(h.wf.Complete(c.UserContext(), GetSession(c), c.Params("id"), in))
}

// RegisterPartial godoc
// @Summary      Registrar avance parcial (ha)
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.PartialProgressRequest  true  "hectáreas ejecutadas"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/partials [post]
func (h *ServiceOrderHandler) RegisterPartial(c *fiber.Ctx) error {
	var in dto.PartialProgressRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	return h.respond(c)(h.wf.RegisterPartial(c.UserContext(), GetSession(c), c.Params("id"), in))
}

// RegisterAdditive godoc
// @Summary      Registrar consumo adicional
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AdditiveRequest  true  "producto y cantidad"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/additives [post]
func (h *ServiceOrderHandler) RegisterAdditive(c *fiber.Ctx) error {
	var in dto.AdditiveRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	return h.respond(c)(h.wf.RegisterAdditive(c.UserContext(), GetSession(c), c.Params("id"), in))
}

// SetQualifier godoc
// @Summary      Marcar LATE o REWORK
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.QualifierRequest  true  "calificador"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Router       /api/service-orders/{id}/qualifiers [post]
func (h *ServiceOrderHandler) SetQualifier(c *fiber.Ctx) error {
	var in dto.QualifierRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	return h.respond(c)(h.wf.SetQualifier(c.UserContext(), GetSession(c), c.Params("id"), in.Qualifier))
}

// ClearQualifier godoc
// @Summary      Quitar calificador
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID de la orden"
// @Param        qualifier  path  string  true  "LATE | REWORK"
// @Success      200  {object}  dto.ServiceOrderResponse
// @Router       /api/service-orders/{id}/qualifiers/{qualifier} [delete]
func (h *ServiceOrderHandler) ClearQualifier(c *fiber.Ctx) error {
	return h.respond(c)(h.wf.ClearQualifier(c.UserContext(), GetSession(c), c.Params("id"), c.Params("qualifier")))
}

// Delete godoc
// @Summary      Eliminar orden no iniciada o cancelada
// @Tags         service-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id} [delete]
func (h *ServiceOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.wf.Delete(c.UserContext(), GetSession(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ServiceOrderHandler) respond(c *fiber.Ctx) func(*dto.ServiceOrderResponse, error) error {
	return func(out *dto.ServiceOrderResponse, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func optionalNote(c *fiber.Ctx) (dto.NoteRequest, bool, error) {
	var in dto.NoteRequest
	if len(c.Body()) == 0 {
		return in, true, nil
	}
	ok, err := bindAndValidate(c, &in)
	return in, ok, err
}
