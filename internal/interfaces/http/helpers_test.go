package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/serviceorder"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
)

func TestErrorStatus_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("reservar: %w", domain.ErrInsufficientStock), fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{&serviceorder.ShortageError{}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrInvalidTransfer, fiber.StatusUnprocessableEntity, "INVALID_TRANSFER"},
		{domain.ErrAlreadyReceived, fiber.StatusConflict, "ALREADY_RECEIVED"},
		{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
		{fmt.Errorf("parcial: %w", domain.ErrAreaExceeded), fiber.StatusUnprocessableEntity, "AREA_EXCEEDED"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{errors.New("conexión perdida"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := errorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestBindAndValidate_CantidadDecimalPositiva(t *testing.T) {
	app := fiber.New()
	app.Post("/exits", func(c *fiber.Ctx) error {
		var in dto.StockExitRequest
		if ok, err := bindAndValidate(c, &in); !ok {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	cases := []struct {
		quantity string
		status   int
	}{
		{`"2.5"`, fiber.StatusNoContent},
		{`"0"`, fiber.StatusBadRequest},
		{`"-1"`, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		body := `{"quantity":` + tc.quantity + `,"reason":"perda"}`
		req := httptest.NewRequest("POST", "/exits", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.quantity)
		if tc.status == fiber.StatusBadRequest {
			var out dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, "VALIDATION", out.Code)
			assert.Contains(t, out.Details, "Quantity: gt")
		}
		resp.Body.Close()
	}
}
