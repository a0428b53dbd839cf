package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shipping-rates/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := models.StoreClaims{
		StoreID:    "store-1",
		InstanceID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func runProtected(token string) *httptest.ResponseRecorder {
	e := echo.New()
	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	rec := runProtected(signedToken(t, testSecret, time.Now().Add(time.Hour)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	rec := runProtected("")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Missing or malformed JWT") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	rec := runProtected(signedToken(t, testSecret, time.Now().Add(-time.Hour)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsWrongSignature(t *testing.T) {
	rec := runProtected(signedToken(t, "other-secret", time.Now().Add(time.Hour)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
