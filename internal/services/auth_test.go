package services

import (
	"context"
	"testing"
	"time"

	"github.com/stackwise/catalog-api/internal/requestdata"
)

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	as := NewAuthService(testLogger(), "test-secret")

	token, err := as.SignToken("user_1", "tenant_1", "admin", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	ctx, err := as.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}

	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("identity missing from context")
	}
	if rd.UserID != "user_1" || rd.TenantID != "tenant_1" || rd.Role != "admin" {
		t.Fatalf("identity: %+v", rd)
	}
}

func TestAuthServiceRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(testLogger(), "secret-a")
	verifier := NewAuthService(testLogger(), "secret-b")

	token, err := issuer.SignToken("user_1", "tenant_1", "admin", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	if _, err := verifier.SetContextFromToken(context.Background(), token); err == nil {
		t.Fatalf("expected a verification failure")
	}
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	as := NewAuthService(testLogger(), "test-secret")

	token, err := as.SignToken("user_1", "tenant_1", "admin", -time.Minute)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	if _, err := as.SetContextFromToken(context.Background(), token); err == nil {
		t.Fatalf("expected rejection of an expired token")
	}
}

func TestAuthServiceRejectsGarbage(t *testing.T) {
	as := NewAuthService(testLogger(), "test-secret")
	if _, err := as.SetContextFromToken(context.Background(), "not-a-token"); err == nil {
		t.Fatalf("expected rejection")
	}
}
