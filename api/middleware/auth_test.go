package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pkgauth "github.com/gestao-escolar/escolar-backend/pkg/auth"
	"github.com/gestao-escolar/escolar-backend/pkg/config"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "escolar-backend",
		ExpirationMinutes: 60,
	}
}

func signToken(t *testing.T, nivel enums.Nivel) string {
	t.Helper()
	token, err := pkgauth.GenerateAccessToken(testJWTConfig(), pkgauth.AccessTokenPayload{
		UserID:   1,
		Username: "joana",
		Nivel:    nivel,
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthSeedsContextFromToken(t *testing.T) {
	var gotUserID int
	var gotNivel string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotNivel = NivelFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Auth(testJWTConfig(), nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/escolas", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, enums.NivelVendedor))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if gotUserID != 1 {
		t.Fatalf("expected user id 1, got %d", gotUserID)
	}
	if gotNivel != string(enums.NivelVendedor) {
		t.Fatalf("unexpected nivel %q", gotNivel)
	}
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})
	handler := Auth(testJWTConfig(), nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/escolas", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing header, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/escolas", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/usuarios", nil)
	req = req.WithContext(WithUser(req.Context(), 1, "joana", string(enums.NivelVendedor)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for Vendedor, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/usuarios", nil)
	req = req.WithContext(WithUser(req.Context(), 1, "joana", string(enums.NivelAdmin)))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for Admin, got %d", rec.Code)
	}
}
