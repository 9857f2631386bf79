package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLiveness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(nil, "test")
	r := gin.New()
	r.GET("/healthz", h.Liveness)

	srv := httptest.NewServer(r)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status = %q; want ok", body["status"])
	}
}
