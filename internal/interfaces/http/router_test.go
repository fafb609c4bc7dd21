package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/concretera-erp/internal/application/analytics"
	"github.com/jhoicas/concretera-erp/internal/application/auth"
	"github.com/jhoicas/concretera-erp/internal/application/billing"
	"github.com/jhoicas/concretera-erp/internal/application/inventory"
	"github.com/jhoicas/concretera-erp/internal/application/logistics"
	"github.com/jhoicas/concretera-erp/internal/application/orders"
	"github.com/jhoicas/concretera-erp/internal/application/production"
	"github.com/jhoicas/concretera-erp/internal/application/sales"
	"github.com/jhoicas/concretera-erp/internal/application/usecase"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/concretera-erp/internal/interfaces/http"
)

// newAPI arma la API completa sobre el store en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	receivableUC := billing.NewReceivableUseCase(store, repos)
	app := fiber.New(apphttp.NewFiberConfig("concretera-test"))
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(repos.Users, repos.Organizations, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		OrganizationUC:  usecase.NewOrganizationUseCase(repos.Organizations),
		UserUC:          usecase.NewUserUseCase(repos.Users),
		ClientUC:        usecase.NewClientUseCase(repos.Clients),
		ProductUC:       usecase.NewProductUseCase(repos.Products),
		FleetUC:         usecase.NewFleetUseCase(repos.Trucks, repos.Drivers),
		QuoteUC:         sales.NewQuoteUseCase(store, repos),
		BudgetUC:        sales.NewBudgetUseCase(store, repos),
		OrderUC:         orders.NewOrderUseCase(store, repos),
		ProductionUC:    production.NewProductionUseCase(store, repos),
		RecipeUC:        production.NewRecipeUseCase(store, repos),
		InventoryUC:     inventory.NewInventoryUseCase(store, repos),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(repos.RawMaterials),
		DeliveryUC:      logistics.NewDeliveryUseCase(store, repos, receivableUC, zerolog.Nop()),
		ReceivableUC:    receivableUC,
		InvoiceUC:       billing.NewInvoiceUseCase(store, repos),
		DashboardUC:     appanalytics.NewDashboardUseCase(repos, loc),
		JWTSecret:       testJWTSecret,
		Location:        loc,
	})
	return app
}

// call hace la petición y decodifica el cuerpo JSON (objeto) si lo hay.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

// bootstrap crea organización, usuario con el rol dado y devuelve su token.
func bootstrap(t *testing.T, app *fiber.App, email, role string) (string, string) {
	t.Helper()
	status, org := call(t, app, http.MethodPost, "/api/organizations", "", map[string]any{"name": "Concreteira Modelo"})
	require.Equal(t, http.StatusCreated, status)
	orgID := org["id"].(string)
	return orgID, login(t, app, orgID, email, role)
}

func login(t *testing.T, app *fiber.App, orgID, email, role string) string {
	t.Helper()
	status, _ := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": "senha-segura-123", "organization_id": orgID, "role": role,
	})
	require.Equal(t, http.StatusCreated, status)
	status, out := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": "senha-segura-123",
	})
	require.Equal(t, http.StatusOK, status)
	return out["token"].(string)
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	app := newAPI(t)
	status, body := call(t, app, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAPI_ValidacionDeCamposDevuelve400(t *testing.T) {
	app := newAPI(t)
	_, token := bootstrap(t, app, "admin@modelo.com.br", "admin")

	status, body := call(t, app, http.MethodPost, "/api/clients", token, map[string]any{"email": "no-es-email"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	fields := body["details"].(map[string]any)["fields"].(map[string]any)
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "email", fields["email"])
}

func TestAPI_RolSinPermisoDevuelve403(t *testing.T) {
	app := newAPI(t)
	orgID, _ := bootstrap(t, app, "admin@modelo.com.br", "admin")
	vendedor := login(t, app, orgID, "vendas@modelo.com.br", "vendedor")

	status, body := call(t, app, http.MethodPost, "/api/raw-materials", vendedor, map[string]any{
		"name": "cimento", "unit": "kg", "initial_stock": "100",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, _ = call(t, app, http.MethodGet, "/api/raw-materials", vendedor, nil)
	assert.Equal(t, http.StatusOK, status, "las lecturas no dependen del rol")
}

func TestAPI_UsuariosSoloParaAdmin(t *testing.T) {
	app := newAPI(t)
	orgID, admin := bootstrap(t, app, "admin@modelo.com.br", "admin")
	vendedor := login(t, app, orgID, "vendas@modelo.com.br", "vendedor")
	_, otherAdmin := bootstrap(t, app, "admin@beta.com.br", "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "password_hash")
	}

	status, _ := call(t, app, http.MethodGet, "/api/users", vendedor, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodGet, "/api/users/"+users[0]["id"].(string), otherAdmin, nil)
	assert.Equal(t, http.StatusNotFound, status, "usuario de otra organización")
}

func TestAPI_RecursoInexistenteDevuelve404(t *testing.T) {
	app := newAPI(t)
	_, token := bootstrap(t, app, "admin@modelo.com.br", "admin")

	status, body := call(t, app, http.MethodGet, "/api/orders/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestAPI_OrganizacionesAisladas(t *testing.T) {
	app := newAPI(t)
	_, tokenA := bootstrap(t, app, "a@alfa.com.br", "admin")
	_, tokenB := bootstrap(t, app, "b@beta.com.br", "admin")

	status, client := call(t, app, http.MethodPost, "/api/clients", tokenA, map[string]any{"name": "Construtora Alfa"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, http.MethodGet, "/api/clients/"+client["id"].(string), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// Pedido → OP → baixa de estoque → entrega → conta a receber → NF-e, todo por HTTP.
func TestAPI_FlujoPedidoHastaNotaFiscal(t *testing.T) {
	app := newAPI(t)
	_, token := bootstrap(t, app, "admin@modelo.com.br", "admin")

	status, product := call(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Concreto FCK 25", "category": "concreto", "price_m3": "400", "cost_m3": "280",
	})
	require.Equal(t, http.StatusCreated, status)
	productID := product["id"].(string)

	status, cement := call(t, app, http.MethodPost, "/api/raw-materials", token, map[string]any{
		"name": "cimento", "unit": "kg", "initial_stock": "250", "minimum_stock": "100",
	})
	require.Equal(t, http.StatusCreated, status)
	cementID := cement["id"].(string)

	status, _ = call(t, app, http.MethodPut, "/api/products/"+productID+"/recipe", token, map[string]any{
		"items": []map[string]any{{"raw_material_id": cementID, "quantity_per_m3": "300"}},
	})
	require.Equal(t, http.StatusOK, status)

	status, client := call(t, app, http.MethodPost, "/api/clients", token, map[string]any{"name": "Construtora Alfa"})
	require.Equal(t, http.StatusCreated, status)

	status, order := call(t, app, http.MethodPost, "/api/orders", token, map[string]any{
		"client_id": client["id"],
		"items":     []map[string]any{{"product_id": productID, "quantity_m3": "1", "unit_price": "400"}},
	})
	require.Equal(t, http.StatusCreated, status)
	orderID := order["id"].(string)

	status, order = call(t, app, http.MethodPatch, "/api/orders/"+orderID+"/status", token, map[string]any{"status": "em_producao"})
	require.Equal(t, http.StatusOK, status)
	pos := order["production_orders"].([]any)
	require.Len(t, pos, 1)
	poID := pos[0].(map[string]any)["id"].(string)

	// 300 kg por m³ contra 250 kg en estoque.
	status, body := call(t, app, http.MethodPatch, "/api/production-orders/"+poID+"/status", token, map[string]any{"status": "finalizado"})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "cimento", details["material"])
	assert.Equal(t, "300", details["required"])
	assert.Equal(t, "250", details["available"])

	status, _ = call(t, app, http.MethodPost, "/api/raw-materials/"+cementID+"/entries", token, map[string]any{"quantity": "750"})
	require.Equal(t, http.StatusCreated, status)

	status, po := call(t, app, http.MethodPatch, "/api/production-orders/"+poID+"/status", token, map[string]any{"status": "finalizado"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "finalizado", po["status"])

	_, cement = call(t, app, http.MethodGet, "/api/raw-materials/"+cementID, token, nil)
	assert.Equal(t, "700", cement["current_stock"])

	status, delivery := call(t, app, http.MethodPost, "/api/deliveries", token, map[string]any{"production_order_id": poID})
	require.Equal(t, http.StatusCreated, status)
	deliveryID := delivery["id"].(string)

	status, delivery = call(t, app, http.MethodPatch, "/api/deliveries/"+deliveryID+"/status", token, map[string]any{
		"status": "entregue", "latitude": -23.55, "longitude": -46.63,
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, delivery["receivable_id"])

	status, _ = call(t, app, http.MethodPatch, "/api/deliveries/"+deliveryID+"/status", token, map[string]any{"status": "agendada"})
	assert.Equal(t, http.StatusConflict, status, "entregue es terminal")

	status, invoice := call(t, app, http.MethodPost, "/api/invoices", token, map[string]any{"delivery_id": deliveryID})
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 1, invoice["number"])
	assert.Equal(t, "400", invoice["total_value"])

	status, body = call(t, app, http.MethodPost, "/api/invoices", token, map[string]any{"delivery_id": deliveryID})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "invoice_already_issued", body["details"].(map[string]any)["reason"])

	status, summary := call(t, app, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, status)
	finance := summary["finance"].(map[string]any)
	assert.Equal(t, "400", finance["receivable_pending"])
}

// Los ids tomados de la ruta deben seguir válidos después de otras peticiones.
func TestAPI_IdsDeRutaSobrevivenAPeticionesPosteriores(t *testing.T) {
	app := newAPI(t)
	_, token := bootstrap(t, app, "admin@modelo.com.br", "admin")

	_, product := call(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Concreto FCK 25", "category": "concreto", "price_m3": "400", "cost_m3": "280",
	})
	productID := product["id"].(string)
	_, cement := call(t, app, http.MethodPost, "/api/raw-materials", token, map[string]any{
		"name": "cimento", "unit": "kg", "initial_stock": "400", "minimum_stock": "100",
	})
	cementID := cement["id"].(string)

	status, _ := call(t, app, http.MethodPut, "/api/products/"+productID+"/recipe", token, map[string]any{
		"items": []map[string]any{{"raw_material_id": cementID, "quantity_per_m3": "300"}},
	})
	require.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodPost, "/api/raw-materials/"+cementID+"/entries", token, map[string]any{"quantity": "600"})
	require.Equal(t, http.StatusCreated, status)

	// Peticiones ajenas que reutilizan los buffers del servidor.
	_, client := call(t, app, http.MethodPost, "/api/clients", token, map[string]any{"name": "Construtora Beta"})
	clientID := client["id"].(string)
	status, _ = call(t, app, http.MethodGet, "/api/clients/"+clientID, token, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, "/api/organizations/00000000-0000-0000-0000-000000000000", token, nil)
	require.Equal(t, http.StatusNotFound, status)
	_, order := call(t, app, http.MethodPost, "/api/orders", token, map[string]any{
		"client_id": clientID,
		"items":     []map[string]any{{"product_id": productID, "quantity_m3": "2", "unit_price": "400"}},
	})
	orderID := order["id"].(string)
	status, order = call(t, app, http.MethodPatch, "/api/orders/"+orderID+"/status", token, map[string]any{"status": "em_producao"})
	require.Equal(t, http.StatusOK, status)
	poID := order["production_orders"].([]any)[0].(map[string]any)["id"].(string)

	_, recipe := call(t, app, http.MethodGet, "/api/products/"+productID+"/recipe", token, nil)
	items := recipe["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, cementID, items[0].(map[string]any)["raw_material_id"])

	_, movs := call(t, app, http.MethodGet, "/api/raw-materials/"+cementID+"/movements", token, nil)
	require.Len(t, movs["items"].([]any), 1)
	assert.Equal(t, cementID, movs["items"].([]any)[0].(map[string]any)["raw_material_id"])

	// 300 kg/m³ × 2 m³ = 600 contra 1000 en estoque.
	status, po := call(t, app, http.MethodPatch, "/api/production-orders/"+poID+"/status", token, map[string]any{"status": "finalizado"})
	require.Equal(t, http.StatusOK, status, "%v", po)
	assert.Equal(t, "finalizado", po["status"])

	_, cement = call(t, app, http.MethodGet, "/api/raw-materials/"+cementID, token, nil)
	assert.Equal(t, "400", cement["current_stock"])
}

func TestAPI_ConversionDobleDevuelve409(t *testing.T) {
	app := newAPI(t)
	_, token := bootstrap(t, app, "admin@modelo.com.br", "admin")

	_, product := call(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Concreto FCK 30", "category": "concreto", "price_m3": "450", "cost_m3": "300",
	})
	_, client := call(t, app, http.MethodPost, "/api/clients", token, map[string]any{"name": "Construtora Beta"})

	status, budget := call(t, app, http.MethodPost, "/api/budgets", token, map[string]any{
		"client_id": client["id"],
		"items": []map[string]any{{
			"product_id": product["id"], "quantity_m3": "2", "unit_price": "450", "unit_cost": "300",
		}},
	})
	require.Equal(t, http.StatusCreated, status)
	budgetID := budget["id"].(string)

	status, body := call(t, app, http.MethodPost, "/api/budgets/"+budgetID+"/convert", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", body["code"])

	status, _ = call(t, app, http.MethodPatch, "/api/budgets/"+budgetID+"/status", token, map[string]any{"status": "aprovado"})
	require.Equal(t, http.StatusOK, status)

	status, order := call(t, app, http.MethodPost, "/api/budgets/"+budgetID+"/convert", token, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "900", order["total_value"])

	status, body = call(t, app, http.MethodPost, "/api/budgets/"+budgetID+"/convert", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "budget_already_converted", body["details"].(map[string]any)["reason"])
}
