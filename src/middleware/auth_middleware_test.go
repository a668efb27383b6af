package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func identityProbe(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := r.Context().Value("user_id").(string); ok {
			*got = userID
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentityMiddlewareResolvesSubject(t *testing.T) {
	var got string
	handler := IdentityMiddleware("secret")(identityProbe(&got))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?userId=ignored", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", jwt.MapClaims{"sub": "u42"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got != "u42" {
		t.Errorf("user_id = %q, want %q", got, "u42")
	}
}

func TestIdentityMiddlewarePassthroughWithoutToken(t *testing.T) {
	var got string
	handler := IdentityMiddleware("secret")(identityProbe(&got))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?userId=u1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got != "" {
		t.Errorf("user_id should be unset, got %q", got)
	}
}

func TestIdentityMiddlewareRejectsBadToken(t *testing.T) {
	handler := IdentityMiddleware("secret")(identityProbe(new(string)))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", jwt.MapClaims{"sub": "u42"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestIdentityMiddlewareRejectsMissingSubject(t *testing.T) {
	handler := IdentityMiddleware("secret")(identityProbe(new(string)))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", jwt.MapClaims{"role": "user"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
