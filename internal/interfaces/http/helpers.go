package http

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/serviceorder"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida como número (min, gt, required).
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate parsea el body JSON y aplica los tags de validator.
// Devuelve false si ya respondió con error; el handler debe retornar nil.
func bindAndValidate(c *fiber.Ctx, in interface{}) (bool, error) {
	if err := c.BodyParser(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		details := []string{}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				details = append(details, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
			}
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: details})
	}
	return true, nil
}

// pageFrom lee limit/offset de la query con valores por defecto.
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	return page
}

// errorStatus traduce errores de dominio a status HTTP y código de error.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidTransfer):
		return fiber.StatusUnprocessableEntity, "INVALID_TRANSFER"
	case errors.Is(err, domain.ErrAlreadyReceived):
		return fiber.StatusConflict, "ALREADY_RECEIVED"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrAreaExceeded):
		return fiber.StatusUnprocessableEntity, "AREA_EXCEEDED"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde con el ErrorResponse correspondiente a err.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	resp := dto.ErrorResponse{Code: code, Message: err.Error()}

	var shortage *serviceorder.ShortageError
	if errors.As(err, &shortage) {
		for _, s := range shortage.Shortages {
			resp.Details = append(resp.Details,
				fmt.Sprintf("%s: requiere %s, disponible %s", s.ProductID, s.Required, s.Available))
		}
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		resp.Message = "error interno"
	}
	return c.Status(status).JSON(resp)
}
