package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/gestao-escolar/escolar-backend/pkg/config"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
)

func testCfg() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "escolar-backend",
		ExpirationMinutes: 30,
	}
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := testCfg()
	payload := AccessTokenPayload{
		UserID:   42,
		Username: "joana",
		Nivel:    enums.NivelAdmin,
	}

	token, err := GenerateAccessToken(cfg, payload)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "joana" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if claims.Nivel != enums.NivelAdmin {
		t.Fatalf("unexpected nivel %q", claims.Nivel)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := time.Until(claims.ExpiresAt.Time)
	if exp <= 0 || exp > 30*time.Minute {
		t.Fatalf("unexpected expiry window %v", exp)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(testCfg(), AccessTokenPayload{UserID: 1, Username: "joana"})
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	other := testCfg()
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	token, err := GenerateAccessToken(testCfg(), AccessTokenPayload{UserID: 1, Username: "joana"})
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	other := testCfg()
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected issuer validation to fail")
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseAccessToken(testCfg(), "not.a.token"); err == nil {
		t.Fatal("expected parse failure")
	}
	if _, err := ParseAccessToken(testCfg(), strings.Repeat("x", 32)); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestGenerateAccessTokenRequiresSecret(t *testing.T) {
	cfg := testCfg()
	cfg.Secret = ""
	if _, err := GenerateAccessToken(cfg, AccessTokenPayload{UserID: 1}); err == nil {
		t.Fatal("expected missing secret to fail")
	}
}
