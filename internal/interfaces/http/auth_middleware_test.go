package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stock-alerts-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stock-alerts-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "stock-alerts-test"
)

// buildGuardApp construye una aplicación Fiber mínima con TenantGuard y un handler
// dummy que devuelve los locals cargados por el middleware.
func buildGuardApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/companies/:company_id/ping",
		apphttp.TenantGuard(secret, testIssuer),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":    apphttp.GetUserID(c),
				"company_id": apphttp.GetCompanyID(c),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, companyID string, ttl time.Duration) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, companyID, testIssuer, ttl)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGuardRequest(t *testing.T, app *fiber.App, companyID, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/companies/"+companyID+"/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TenantGuard
// ──────────────────────────────────────────────────────────────────────────────

func TestTenantGuard_SinSecreto_RutaPublica(t *testing.T) {
	app := buildGuardApp("")

	resp := doGuardRequest(t, app, testCompanyID, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTenantGuard_TokenDeLaEmpresa_Accede(t *testing.T) {
	app := buildGuardApp(testJWTSecret)

	resp := doGuardRequest(t, app, testCompanyID, tokenFor(t, testCompanyID, time.Hour))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
}

func TestTenantGuard_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildGuardApp(testJWTSecret)

	resp := doGuardRequest(t, app, testCompanyID, "")

	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeMap(t, resp)["code"])
}

func TestTenantGuard_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildGuardApp(testJWTSecret)

	resp := doGuardRequest(t, app, testCompanyID, "Basic abc")

	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeMap(t, resp)["code"])
}

func TestTenantGuard_TokenInvalido_Retorna401(t *testing.T) {
	app := buildGuardApp(testJWTSecret)

	resp := doGuardRequest(t, app, testCompanyID, "Bearer esto.no.es-un-jwt")

	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeMap(t, resp)["code"])
}

func TestTenantGuard_TokenExpirado_Retorna401(t *testing.T) {
	app := buildGuardApp(testJWTSecret)

	resp := doGuardRequest(t, app, testCompanyID, tokenFor(t, testCompanyID, -time.Minute))

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTenantGuard_OtraEmpresa_Retorna403(t *testing.T) {
	app := buildGuardApp(testJWTSecret)

	resp := doGuardRequest(t, app, "otra-empresa", tokenFor(t, testCompanyID, time.Hour))

	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeMap(t, resp)["code"])
}
