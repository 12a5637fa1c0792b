package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company y sus módulos.
type CompanyHandler struct {
	uc      *usecase.CompanyUseCase
	modules *usecase.ModuleService
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, modules *usecase.ModuleService) *CompanyHandler {
	return &CompanyHandler{uc: uc, modules: modules}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Me godoc
// @Summary      Empresa del token con módulos activos
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Router       /api/companies/me [get]
func (h *CompanyHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ActivateModule godoc
// @Summary      Activar módulo
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Param        module  path  string  true  "inventory | service_orders | purchasing"
// @Param        body    body  dto.ActivateModuleRequest  false  "expires_at opcional"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/me/modules/{module} [post]
func (h *CompanyHandler) ActivateModule(c *fiber.Ctx) error {
	var in dto.ActivateModuleRequest
	if len(c.Body()) > 0 {
		if ok, err := bindAndValidate(c, &in); !ok {
			return err
		}
	}
	if err := h.modules.Activate(c.UserContext(), GetCompanyID(c), c.Params("module"), in.ExpiresAt); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeactivateModule godoc
// @Summary      Desactivar módulo
// @Tags         companies
// @Security     Bearer
// @Param        module  path  string  true  "nombre del módulo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/me/modules/{module} [delete]
func (h *CompanyHandler) DeactivateModule(c *fiber.Ctx) error {
	if err := h.modules.Deactivate(c.UserContext(), GetCompanyID(c), c.Params("module")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
