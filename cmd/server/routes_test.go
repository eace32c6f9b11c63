package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"seller-panel.backend/internal/interfaces/http/handlers"
)

func stubRouteDeps() routeDeps {
	return routeDeps{
		authHandler:       &handlers.AuthHandler{},
		onboardingHandler: &handlers.OnboardingHandler{},
		categoryHandler:   &handlers.CategoryHandler{},
		productHandler:    &handlers.ProductHandler{},
		authMiddleware: func(c *gin.Context) {
			c.AbortWithStatus(http.StatusUnauthorized)
		},
		idempotencyMiddleware: func(c *gin.Context) { c.Next() },
	}
}

func TestRegisterAPIV1Routes_RegistersEveryOperation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerAPIV1Routes(r, stubRouteDeps())

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/auth/register"},
		{"POST", "/api/v1/auth/verify-email"},
		{"POST", "/api/v1/auth/login/password"},
		{"POST", "/api/v1/auth/login/otp-request"},
		{"POST", "/api/v1/auth/login/otp-verify"},
		{"GET", "/api/v1/auth/check-auth"},
		{"GET", "/api/v1/auth/me"},
		{"GET", "/api/v1/auth/dashboard-metrics"},
		{"PUT", "/api/v1/auth/business-info"},
		{"PUT", "/api/v1/auth/bank-details"},
		{"PUT", "/api/v1/auth/documents"},
		{"PUT", "/api/v1/auth/store-details"},
		{"GET", "/api/v1/profile"},
		{"PUT", "/api/v1/profile/personal"},
		{"PUT", "/api/v1/profile/business"},
		{"PUT", "/api/v1/profile/bank"},
		{"PUT", "/api/v1/profile/documents"},
		{"PUT", "/api/v1/profile/store-details"},
		{"POST", "/api/v1/categories"},
		{"GET", "/api/v1/categories"},
		{"GET", "/api/v1/categories/:id"},
		{"PUT", "/api/v1/categories/:id"},
		{"DELETE", "/api/v1/categories/:id"},
		{"POST", "/api/v1/products"},
		{"GET", "/api/v1/products"},
		{"GET", "/api/v1/products/:id"},
		{"PUT", "/api/v1/products/:id"},
		{"DELETE", "/api/v1/products/:id"},
		{"POST", "/api/v1/products/:id/variants"},
		{"PUT", "/api/v1/variants/:id"},
		{"DELETE", "/api/v1/variants/:id"},
	}

	routes := r.Routes()
	if len(routes) != len(expects) {
		t.Fatalf("expected %d routes, got %d", len(expects), len(routes))
	}
	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterAPIV1Routes_ProtectedRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newRouter(baseTestConfig(), stubRouteDeps())

	for _, path := range []string{"/api/v1/auth/me", "/api/v1/profile", "/api/v1/categories", "/api/v1/products"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: expected request id header", path)
		}
	}
}
