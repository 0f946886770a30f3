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

// buildAdminTestApp mirrors main.go's admin party: JWT verifier plus the
// admin-only gate in front of the maintenance routes.
func buildAdminTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Post("/bookings/expire-pending", ExpirePendingBookings)
	}
	app.Build()
	return app
}

func TestAdminRBAC(t *testing.T) {
	app := buildAdminTestApp()

	// No token: the verifier refuses the request outright.
	req := httptest.NewRequest(http.MethodPost, "/api/admin/bookings/expire-pending", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Hosts manage their own properties; platform maintenance stays admin-only.
	req2 := httptest.NewRequest(http.MethodPost, "/api/admin/bookings/expire-pending", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("host"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for host role, got %d", resp2.Code)
	}
}
