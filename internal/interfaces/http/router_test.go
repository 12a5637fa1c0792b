package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/auth"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/purchase"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/serviceorder"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/usecase"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/memory"
	apphttp "github.com/sebastiaoggj/Agro-sh-sub000/internal/interfaces/http"
)

type testAPI struct {
	t         *testing.T
	app       *fiber.App
	companyID string
	admin     string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	nop := zerolog.Nop()

	modules := usecase.NewModuleService(store.Companies())
	deps := apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(store.Users(), store.Companies(), testTokens),
		UserUC:         usecase.NewUserUseCase(store.Users()),
		CompanyUC:      usecase.NewCompanyUseCase(store.Companies(), modules),
		ModuleService:  modules,
		ProductUC:      usecase.NewProductUseCase(repos.Products),
		FarmUC:         usecase.NewFarmUseCase(repos.Farms),
		FleetUC:        usecase.NewFleetUseCase(repos.Fleet),
		Inventory:      inventory.NewUseCase(tx, repos.Records, repos.History, nop),
		ServiceOrders:  serviceorder.NewWorkflow(tx, repos.ServiceOrders, repos.Records, nop),
		PurchaseOrders: purchase.NewWorkflow(tx, repos.PurchaseOrders, nop),
		Suggestions:    purchase.NewSuggestionUseCase(repos.ServiceOrders, repos.PurchaseOrders, repos.Records, repos.Products),
		Tokens:         testTokens,
		Log:            nop,
	}
	app := fiber.New()
	require.NoError(t, apphttp.Router(app, deps))

	api := &testAPI{t: t, app: app}
	status, body := api.do(http.MethodPost, "/api/companies", "", map[string]any{
		"name": "Agro Santa Rita", "document": "12345678000190",
	})
	require.Equal(t, http.StatusCreated, status, body)
	api.companyID = body["id"].(string)
	api.admin = api.userToken("admin@santarita.com", "admin")
	return api
}

func (a *testAPI) userToken(email, role string) string {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": "secreto123", "company_id": a.companyID, "role": role,
	})
	require.Equal(a.t, http.StatusCreated, status, body)
	status, body = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": "secreto123",
	})
	require.Equal(a.t, http.StatusOK, status, body)
	return body["token"].(string)
}

// do envía JSON y decodifica la respuesta como objeto (vacío si no hay cuerpo).
func (a *testAPI) do(method, path, token string, in any) (int, map[string]any) {
	a.t.Helper()
	var reader io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(a.t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (a *testAPI) create(path string, in any) string {
	a.t.Helper()
	status, body := a.do(http.MethodPost, path, a.admin, in)
	require.Equal(a.t, http.StatusCreated, status, body)
	return body["id"].(string)
}

func TestRouter_FlujoCompletoDeOrdenDeServicio(t *testing.T) {
	api := newTestAPI(t)

	product := api.create("/api/products", map[string]any{
		"name": "Glifosato 480", "unit_measure": "L", "category": "herbicida",
	})
	farm := api.create("/api/farms", map[string]any{"name": "Santa Rita", "state": "MT"})
	field := api.create("/api/farms/"+farm+"/fields", map[string]any{"name": "T1", "area": "10"})
	crop := api.create("/api/crops", map[string]any{"name": "Soja", "season": "2025/26"})
	machine := api.create("/api/machines", map[string]any{"name": "Uniport 3030", "tank_capacity": "2000"})
	operator := api.create("/api/operators", map[string]any{"name": "João"})

	record := api.create("/api/inventory/entries", map[string]any{
		"product_id": product, "farm_id": farm, "quantity": "50",
	})

	status, order := api.do(http.MethodPost, "/api/service-orders", api.admin, map[string]any{
		"farm_id": farm, "field_ids": []string{field}, "crop_id": crop, "machine_id": machine,
		"operator_id": operator, "planned_date": "2099-03-01", "flow_rate": "100",
		"lines": []map[string]any{{"product_id": product, "dose_per_area": "2"}},
	})
	require.Equal(t, http.StatusCreated, status, order)
	assert.Equal(t, "EMITTED", order["status"])
	assert.Equal(t, true, order["reservation_held"])
	id := order["id"].(string)

	status, rec := api.do(http.MethodGet, "/api/inventory/records/"+record, api.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "20", rec["reserved_qty"])
	assert.Equal(t, "30", rec["available_qty"])

	status, order = api.do(http.MethodPost, "/api/service-orders/"+id+"/start", api.admin, nil)
	require.Equal(t, http.StatusOK, status, order)
	assert.Equal(t, "IN_PROGRESS", order["status"])

	status, order = api.do(http.MethodPost, "/api/service-orders/"+id+"/complete", api.admin, map[string]any{
		"leftovers": map[string]string{product: "1.5"},
	})
	require.Equal(t, http.StatusOK, status, order)
	assert.Equal(t, "COMPLETED", order["status"])

	status, rec = api.do(http.MethodGet, "/api/inventory/records/"+record, api.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "31.5", rec["physical_stock"])
	assert.Equal(t, "0", rec["reserved_qty"])

	status, hist := api.do(http.MethodGet, "/api/inventory/records/"+record+"/history", api.admin, nil)
	require.Equal(t, http.StatusOK, status)
	// entrada, reserva, consumo y devolución de sobras
	assert.Len(t, hist["items"], 4)
}

func TestRouter_SalidaSinStockDevuelve409(t *testing.T) {
	api := newTestAPI(t)
	product := api.create("/api/products", map[string]any{"name": "Óleo", "unit_measure": "L", "category": "ADJUVANTE"})
	farm := api.create("/api/farms", map[string]any{"name": "Boa Vista"})
	record := api.create("/api/inventory/entries", map[string]any{"product_id": product, "farm_id": farm, "quantity": "5"})

	status, body := api.do(http.MethodPost, "/api/inventory/records/"+record+"/exits", api.admin, map[string]any{
		"quantity": "6", "reason": "perda",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
}

func TestRouter_TransferenciaMismaHaciendaDevuelve422(t *testing.T) {
	api := newTestAPI(t)
	product := api.create("/api/products", map[string]any{"name": "Ureia", "unit_measure": "kg", "category": "FERTILIZANTE"})
	farm := api.create("/api/farms", map[string]any{"name": "Boa Vista"})
	record := api.create("/api/inventory/entries", map[string]any{"product_id": product, "farm_id": farm, "quantity": "5"})

	status, body := api.do(http.MethodPost, "/api/inventory/transfers", api.admin, map[string]any{
		"source_record_id": record, "dest_farm_id": farm, "quantity": "1",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_TRANSFER", body["code"])
}

func TestRouter_OperadorNoCreaInsumos(t *testing.T) {
	api := newTestAPI(t)
	operador := api.userToken("campo@santarita.com", "operador")

	status, body := api.do(http.MethodPost, "/api/products", operador, map[string]any{
		"name": "Glifosato", "unit_measure": "L", "category": "HERBICIDA",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, _ = api.do(http.MethodGet, "/api/products", operador, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_ValidacionDelCuerpo(t *testing.T) {
	api := newTestAPI(t)
	status, body := api.do(http.MethodPost, "/api/products", api.admin, map[string]any{"unit_measure": "galão"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.NotEmpty(t, body["details"])
}

func TestRouter_ModuloDesactivadoDevuelve403(t *testing.T) {
	api := newTestAPI(t)
	status, _ := api.do(http.MethodDelete, "/api/companies/me/modules/purchasing", api.admin, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, body := api.do(http.MethodGet, "/api/purchase-orders", api.admin, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "MODULE_DISABLED", body["code"])

	status, _ = api.do(http.MethodGet, "/api/inventory/records", api.admin, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_RecepcionDobleDevuelve409(t *testing.T) {
	api := newTestAPI(t)
	product := api.create("/api/products", map[string]any{
		"name": "Fungicida X", "unit_measure": "L", "category": "FUNGICIDA", "default_purchase_qty": "20",
	})
	farm := api.create("/api/farms", map[string]any{"name": "Boa Vista"})
	po := api.create("/api/purchase-orders", map[string]any{"product_id": product, "farm_id": farm, "unit_price": "10"})

	status, body := api.do(http.MethodPost, "/api/purchase-orders/"+po+"/approve", api.admin, nil)
	require.Equal(t, http.StatusOK, status, body)

	receive := map[string]any{"supplier": "AgroSul", "invoice_number": "NF-1"}
	status, body = api.do(http.MethodPost, "/api/purchase-orders/"+po+"/receive", api.admin, receive)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "RECEIVED", body["status"])

	status, body = api.do(http.MethodPost, "/api/purchase-orders/"+po+"/receive", api.admin, receive)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_RECEIVED", body["code"])
}

func TestRouter_LoginInvalido(t *testing.T) {
	api := newTestAPI(t)
	status, body := api.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "admin@santarita.com", "password": "equivocada",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}
