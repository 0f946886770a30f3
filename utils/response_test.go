package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
)

func TestJSONEnvelope(t *testing.T) {
	app := iris.New()
	app.Get("/envelope", func(ctx iris.Context) {
		JSONEnvelope(ctx, []string{"a", "b"}, iris.Map{"total": 2})
	})
	app.Build()

	req := httptest.NewRequest(http.MethodGet, "/envelope", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var body struct {
		Data  []string               `json:"data"`
		Meta  map[string]interface{} `json:"meta"`
		Links map[string]interface{} `json:"links"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data) != 2 || body.Data[0] != "a" {
		t.Fatalf("data = %v", body.Data)
	}
	if body.Meta["total"] != float64(2) {
		t.Fatalf("meta = %v", body.Meta)
	}
	// links must be present even when empty so clients can rely on the shape.
	if body.Links == nil {
		t.Fatal("links missing from envelope")
	}
}
