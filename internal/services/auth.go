package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stackwise/catalog-api/internal/apierr"
	"github.com/stackwise/catalog-api/internal/logger"
	"github.com/stackwise/catalog-api/internal/requestdata"
)

// AuthService verifies bearer tokens and places the resulting identity into
// the request context. Credential issuance beyond SignToken (used by the seed
// command and tests) lives outside this system.
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	SignToken(userID, tenantID, role string, ttl time.Duration) (string, error)
}

type identityClaims struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	log          *logger.Logger
	jwtSecretKey string
}

func NewAuthService(log *logger.Logger, jwtSecretKey string) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{log: serviceLog, jwtSecretKey: jwtSecretKey}
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		as.log.Debug("Token validation failed", "error", err)
		return ctx, apierr.Unauthorized("invalid authorization token")
	}
	if claims.TenantID == "" {
		return ctx, apierr.Unauthorized("token carries no tenant")
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      claims.Subject,
		TenantID:    claims.TenantID,
		Role:        claims.Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) SignToken(userID, tenantID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &identityClaims{
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
