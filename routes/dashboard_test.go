package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"bookaroo-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp creates a minimal Iris app with the host-only dashboard
// routes and the JWT verifier in front of them.
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	dashboard := app.Party("/api/dashboard", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware)
	{
		dashboard.Get("/metrics", HostDashboardMetrics)
	}
	app.Build()
	return app
}

// signTestToken returns a signed JWT with the given role.
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func TestDashboardRBAC(t *testing.T) {
	app := buildTestApp()

	// No token: the verifier refuses the request outright.
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/metrics", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Guest role: authenticated but not a host.
	req2 := httptest.NewRequest(http.MethodGet, "/api/dashboard/metrics", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("user"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp2.Code)
	}
}
