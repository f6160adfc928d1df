package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "tienda-api-test"
	testExpMin    = 60
)

// guardedApp expone /protected detrás de AuthMiddleware + RequireRole(roles...).
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireRole(roles...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})
	return app
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRequireRole(t *testing.T) {
	warehouse := []string{apphttp.RoleAdmin, apphttp.RoleBodeguero}
	cashier := []string{apphttp.RoleAdmin, apphttp.RoleVendedor}

	cases := []struct {
		name       string
		allowed    []string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"bodeguero en inventario", warehouse, bearer(t, apphttp.RoleBodeguero), http.StatusOK, ""},
		{"admin en caja", cashier, bearer(t, apphttp.RoleAdmin), http.StatusOK, ""},
		{"vendedor en inventario", warehouse, bearer(t, apphttp.RoleVendedor), http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero en caja", cashier, bearer(t, apphttp.RoleBodeguero), http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", cashier, bearer(t, ""), http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", cashier, "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto", cashier, "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", cashier, "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := guardedApp(tc.allowed...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantCode != "" {
				var e dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
				assert.Equal(t, tc.wantCode, e.Code)
			}
		})
	}
}

func TestAuthMiddleware_CargaClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, apphttp.RoleVendedor))
	resp, err := guardedApp(apphttp.RoleVendedor).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, apphttp.RoleVendedor, body["role"])
}
