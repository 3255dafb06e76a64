package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"career-guide/internal/service"
)

func setupGateRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(verifier), func(c *gin.Context) {
		userID, ok := GetAuthUserID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func gateRequest(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware_AllowsValidToken(t *testing.T) {
	jwtSvc := service.NewJWTService(testSecret, time.Hour)
	token, err := jwtSvc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec := gateRequest(setupGateRouter(jwtSvc), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeBody(t, rec)["userId"]; got != "u1" {
		t.Fatalf("expected u1 in context, got %v", got)
	}
}

func TestJWTAuthMiddleware_MissingTokenIsUnauthorized(t *testing.T) {
	r := setupGateRouter(service.NewJWTService(testSecret, time.Hour))

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer", "Bearer   "} {
		rec := gateRequest(r, header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestJWTAuthMiddleware_GarbageTokenIsForbidden(t *testing.T) {
	rec := gateRequest(setupGateRouter(service.NewJWTService(testSecret, time.Hour)), "Bearer not-a-jwt")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Invalid token" {
		t.Fatalf("unexpected message %v", got)
	}
}

func TestJWTAuthMiddleware_ExpiredTokenIsForbidden(t *testing.T) {
	issuedAt := time.Now().Add(-25 * time.Hour).UTC()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "career-guide",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(24 * time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rec := gateRequest(setupGateRouter(service.NewJWTService(testSecret, time.Hour)), "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_OtherSecretIsForbidden(t *testing.T) {
	token, err := service.NewJWTService("other-secret", time.Hour).Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec := gateRequest(setupGateRouter(service.NewJWTService(testSecret, time.Hour)), "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_NotConfigured(t *testing.T) {
	rec := gateRequest(setupGateRouter(nil), "Bearer x")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":    "abc",
		"bearer abc":    "abc",
		"  BEARER abc ": "abc",
	}
	for in, want := range cases {
		got, ok := bearerToken(in)
		if !ok || got != want {
			t.Fatalf("bearerToken(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := bearerToken("Token abc"); ok {
		t.Fatalf("expected non-bearer scheme rejected")
	}
}
