package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/floodwatch/waterlog-platform/internal/config"
	"github.com/floodwatch/waterlog-platform/internal/utils"
)

const testSecret = "middleware-test-secret"

func echoIdentity(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(echoIdentity)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestJWTAuth_ValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "asha", "citizen", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec := doRequest(t, JWTAuth(testSecret), "Bearer "+at.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec := doRequest(t, JWTAuth(testSecret), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "asha", "citizen", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec := doRequest(t, JWTAuth(testSecret), "Bearer "+at.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	rec := doRequest(t, JWTAuth(testSecret), "Bearer not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		role     interface{}
		allowed  []string
		wantCode int
	}{
		{"authority allowed", "authority", []string{"authority"}, http.StatusOK},
		{"citizen rejected", "citizen", []string{"authority"}, http.StatusForbidden},
		{"missing role rejected", nil, []string{"authority"}, http.StatusForbidden},
		{"either role allowed", "citizen", []string{"citizen", "authority"}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			if err := RequireRole(tc.allowed...)(echoIdentity)(c); err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, rec.Code)
			}
		})
	}
}

func ctxFor(method, target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(strings.SplitN(target, "?", 2)[0])
	return c
}

func TestCacheKey_StablePerRouteAndQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "overlay", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, ctxFor(http.MethodGet, "/api/hotspots?zoom=12"))
	b := cacheKeyFrom(cfg, ctxFor(http.MethodGet, "/api/hotspots?zoom=12"))
	if a != b {
		t.Errorf("same route+query produced different keys: %q vs %q", a, b)
	}
	if c := cacheKeyFrom(cfg, ctxFor(http.MethodGet, "/api/hotspots?zoom=13")); c == a {
		t.Error("different query must produce a different key")
	}
	if !strings.HasPrefix(a, "overlay:") {
		t.Errorf("key %q missing prefix", a)
	}
}

func TestRateKey_Strategies(t *testing.T) {
	c := ctxFor(http.MethodPost, "/api/reports")
	c.Set("user_id", uint64(7))

	byUser := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}, c)
	if byUser != "rl:user:7" {
		t.Errorf("user strategy key = %q", byUser)
	}
	byRoute := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "route"}, c)
	if !strings.Contains(byRoute, "POST /api/reports") {
		t.Errorf("route strategy key = %q", byRoute)
	}

	anon := ctxFor(http.MethodPost, "/api/reports")
	if got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}, anon); got != "rl:user:anon" {
		t.Errorf("anonymous key = %q", got)
	}
}
