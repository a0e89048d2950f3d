package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/xmlexport"
	apphttp "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventario-ledger/pkg/jwt"
)

// buildAPI monta la API completa sobre el almacén en memoria con los datos iniciales.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.New()
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	clock := inventory.NewClockWithSource(madrid, time.Now)

	seeder := inventory.NewSeeder(store, clock, "1234")
	status, err := seeder.SeedIfEmpty(context.Background())
	require.NoError(t, err)
	require.Equal(t, inventory.SeedApplied, status)

	rules := inventory.MovementRules{AllowNegativeStock: true}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:     inventory.NewItemUseCase(store, store.Items(), clock, rules),
		MovementUC: inventory.NewMovementUseCase(store, store.Items(), store.Movements(), clock, rules),
		ReportUC:   report.NewMovementReportUseCase(store.Items(), store.Movements(), clock, pdf.NewMovementReportGenerator(), xmlexport.NewMovementExporter()),
		Seeder:     seeder,
		AuthUC:     auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		JWTSecret:  testJWTSecret,
		Logger:     zerolog.Nop(),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
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
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	assert.Equal(t, "bearer", out.TokenType)
	return out.AccessToken
}

func TestLogin_JSONYFormulario(t *testing.T) {
	app := buildAPI(t)
	assert.NotEmpty(t, login(t, app, "guillem", "1234"))

	form := url.Values{"username": {"admin"}, "password": {"1234"}}
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	app := buildAPI(t)

	resp := do(t, app, http.MethodPost, "/api/login", "", dto.LoginRequest{Username: "guillem", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/login", "", dto.LoginRequest{Username: "nadie", Password: "1234"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestItems_LecturaPublica(t *testing.T) {
	app := buildAPI(t)

	resp := do(t, app, http.MethodGet, "/api/items", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decode[[]dto.ItemResponse](t, resp)
	require.Len(t, items, 3)
	assert.Equal(t, "SKU123", items[0].SKU)
	assert.Equal(t, 15, items[0].Quantity)

	resp = do(t, app, http.MethodGet, "/api/items/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/items/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestItems_EscrituraRequiereToken(t *testing.T) {
	app := buildAPI(t)

	resp := do(t, app, http.MethodPost, "/api/items", "", dto.CreateItemRequest{SKU: "X", EAN13: "1", Quantity: 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/items/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/movements", "", map[string]any{"item_id": 1, "type": "entrada", "amount": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestItems_CrearYDuplicados(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "guillem", "1234")

	resp := do(t, app, http.MethodPost, "/api/items", token, dto.CreateItemRequest{SKU: "SKU999", EAN13: "1111111111111", Quantity: 7})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, 7, created.Quantity)

	resp = do(t, app, http.MethodPost, "/api/items", token, dto.CreateItemRequest{SKU: "SKU123", EAN13: "2222222222222"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_SKU", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPost, "/api/items", token, dto.CreateItemRequest{SKU: "SKU000", EAN13: "1234567890123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_EAN13", decode[dto.ErrorResponse](t, resp).Code)
}

func TestMovimientos_FlujoCompleto(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "divain", "1234")

	// SKU123 (id 1) tiene 15: salida de 20 deja -5 (permitido por defecto).
	resp := do(t, app, http.MethodPost, "/api/movements", token, map[string]any{"item_id": 1, "type": "salida", "amount": 20})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, 15, mov.QuantityBefore)
	assert.Equal(t, -5, mov.QuantityAfter)
	require.NotNil(t, mov.Username)
	assert.Equal(t, "divain", *mov.Username)

	// Ajuste a 10 vía PUT: cantidad 15.
	resp = do(t, app, http.MethodPut, "/api/items/1", token, map[string]any{"quantity": 10})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, decode[dto.ItemResponse](t, resp).Quantity)

	resp = do(t, app, http.MethodGet, "/api/items/1/movements", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hist := decode[[]dto.MovementResponse](t, resp)
	require.Len(t, hist, 3)
	assert.Equal(t, "ajuste", hist[0].Type)
	assert.Equal(t, 15, hist[0].Amount)
	assert.Equal(t, "creación", hist[2].Type)

	resp = do(t, app, http.MethodPost, "/api/movements", token, map[string]any{"item_id": 1, "type": "ajuste", "amount": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_TYPE", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPost, "/api/movements", token, map[string]any{"item_id": 1, "type": "entrada", "amount": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_AMOUNT", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPost, "/api/movements", token, map[string]any{"item_id": 99, "type": "entrada", "amount": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItems_DeleteBorraHistorial(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "guillem", "1234")

	resp := do(t, app, http.MethodDelete, "/api/items/2", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/movements", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, m := range decode[[]dto.MovementResponse](t, resp) {
		assert.NotEqual(t, int64(2), m.ItemID)
	}

	resp = do(t, app, http.MethodDelete, "/api/items/2", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChangePassword(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "guillem", "1234")

	resp := do(t, app, http.MethodPost, "/api/change-password", token, dto.ChangePasswordRequest{OldPassword: "mala", NewPassword: "nueva"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIAL", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPost, "/api/change-password", token, dto.ChangePasswordRequest{OldPassword: "1234", NewPassword: "nueva"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.NotEmpty(t, login(t, app, "guillem", "nueva"))
	resp = do(t, app, http.MethodPost, "/api/login", "", dto.LoginRequest{Username: "guillem", Password: "1234"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestReset_SoloAdmin(t *testing.T) {
	app := buildAPI(t)

	resp := do(t, app, http.MethodPost, "/api/reset", login(t, app, "guillem", "1234"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := login(t, app, "admin", "1234")
	resp = do(t, app, http.MethodPost, "/api/items", admin, dto.CreateItemRequest{SKU: "TMP", EAN13: "0000000000000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/reset", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/items", "", nil)
	assert.Len(t, decode[[]dto.ItemResponse](t, resp), 3)
}

func TestAuth_TokenDeUsuarioInexistente(t *testing.T) {
	app := buildAPI(t)
	tok, err := pkgjwt.Generate(testJWTSecret, "fantasma", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := do(t, app, http.MethodPost, "/api/items", tok, dto.CreateItemRequest{SKU: "X", EAN13: "1111111111111"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = do(t, app, http.MethodPost, "/api/reset", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestReport_Formatos(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app, "guillem", "1234")

	resp := do(t, app, http.MethodGet, "/api/movements/report?format=pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = do(t, app, http.MethodGet, "/api/movements/report?format=xml&item_id=1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "movimientos_SKU123_")
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `sku="SKU123"`)

	resp = do(t, app, http.MethodGet, "/api/movements/report?format=csv", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/movements/report?format=pdf", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
