package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	apphttp "github.com/jhoicas/Cuentas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Cuentas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "cuentas-test"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testProjectID = "00000000-0000-0000-0000-0000000000aa"
	testExpMin    = 60
)

// fakeResolver devuelve un rol fijo por usuario; los demás no son miembros.
type fakeResolver map[string]access.Role

func (f fakeResolver) Actor(_ context.Context, projectID, userID string) (access.Actor, error) {
	role, ok := f[userID]
	if !ok {
		return access.Actor{}, domain.ErrNotMember
	}
	return access.Actor{UserID: userID, ProjectID: projectID, Role: role}, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT
//   - ProjectAccess para resolver el actor
//   - RequirePermission para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(resolver fakeResolver, perm access.Permission) *fiber.App {
	app := fiber.New(apphttp.AppConfig("cuentas-test"))
	app.Get("/projects/:projectID",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer),
		apphttp.ProjectAccess(resolver),
		apphttp.RequirePermission(perm),
		func(c *fiber.Ctx) error {
			actor, _ := apphttp.GetActor(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    actor.Role,
				"project": actor.ProjectID,
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/projects/"+testProjectID, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_AdminAccedeAGestionDeMiembros(t *testing.T) {
	app := buildTestApp(fakeResolver{testUserID: access.RoleAdmin}, access.PermManageMembers)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, testProjectID, body["project"])
}

func TestRequirePermission_VisorBloqueadoEnEscritura(t *testing.T) {
	app := buildTestApp(fakeResolver{testUserID: access.RoleView}, access.PermWrite)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
	assert.Contains(t, string(body), "No tienes permisos para crear o editar registros")
}

func TestRequirePermission_AdminNoAdministraElProyecto(t *testing.T) {
	app := buildTestApp(fakeResolver{testUserID: access.RoleAdmin}, access.PermAdmin)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "admin no tiene el permiso admin del proyecto")
}

func TestProjectAccess_NoMiembro_Retorna403(t *testing.T) {
	app := buildTestApp(fakeResolver{}, access.PermRead)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_MEMBER")
}

func TestProjectAccess_IDMalFormado_NoConsultaMembresia(t *testing.T) {
	app := buildTestApp(fakeResolver{testUserID: access.RoleOwner}, access.PermRead)
	req := httptest.NewRequest(http.MethodGet, "/projects/no-es-uuid", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_MEMBER")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(fakeResolver{testUserID: access.RoleOwner}, access.PermRead)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(fakeResolver{testUserID: access.RoleOwner}, access.PermRead)

	for _, header := range []string{
		"Bearer token.invalido.aqui",
		"Basic dXNlcjpwYXNz",
	} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "INVALID_TOKEN", header)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_EmisorDistinto_Retorna401(t *testing.T) {
	app := buildTestApp(fakeResolver{testUserID: access.RoleOwner}, access.PermRead)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "otro-emisor", testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp(fakeResolver{testUserID: access.RoleOwner}, access.PermRead)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeUserID(t *testing.T) {
	app := fiber.New(apphttp.AppConfig("cuentas-test"))
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, testIssuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
}
