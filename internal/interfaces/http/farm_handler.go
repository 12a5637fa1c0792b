package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/usecase"
)

// FarmHandler haciendas, talhões y la flota (culturas, máquinas, operadores).
type FarmHandler struct {
	farms *usecase.FarmUseCase
	fleet *usecase.FleetUseCase
}

// NewFarmHandler construye el handler.
func NewFarmHandler(farms *usecase.FarmUseCase, fleet *usecase.FleetUseCase) *FarmHandler {
	return &FarmHandler{farms: farms, fleet: fleet}
}

// Create godoc
// @Summary      Crear hacienda
// @Tags         farms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFarmRequest  true  "Datos de la hacienda"
// @Success      201   {object}  dto.FarmResponse
// @Router       /api/farms [post]
func (h *FarmHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFarmRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.farms.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Hacienda con sus talhões
// @Tags         farms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la hacienda"
// @Success      200  {object}  dto.FarmResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/farms/{id} [get]
func (h *FarmHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.farms.GetByID(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar haciendas
// @Tags         farms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FarmListResponse
// @Router       /api/farms [get]
func (h *FarmHandler) List(c *fiber.Ctx) error {
	out, err := h.farms.List(c.UserContext(), GetSession(c), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddField godoc
// @Summary      Agregar talhão
// @Tags         farms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la hacienda"
// @Param        body  body  dto.CreateFieldRequest  true  "nombre y área (ha)"
// @Success      201   {object}  dto.FieldResponse
// @Router       /api/farms/{id}/fields [post]
func (h *FarmHandler) AddField(c *fiber.Ctx) error {
	var in dto.CreateFieldRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.farms.AddField(c.UserContext(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FarmHandler) CreateCrop(c *fiber.Ctx) error {
	var in dto.CreateCropRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.fleet.CreateCrop(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FarmHandler) ListCrops(c *fiber.Ctx) error {
	out, err := h.fleet.ListCrops(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *FarmHandler) CreateMachine(c *fiber.Ctx) error {
	var in dto.CreateMachineRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.fleet.CreateMachine(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FarmHandler) ListMachines(c *fiber.Ctx) error {
	out, err := h.fleet.ListMachines(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *FarmHandler) CreateOperator(c *fiber.Ctx) error {
	var in dto.CreateOperatorRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.fleet.CreateOperator(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FarmHandler) ListOperators(c *fiber.Ctx) error {
	out, err := h.fleet.ListOperators(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
