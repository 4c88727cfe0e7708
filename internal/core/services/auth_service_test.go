package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/SscSPs/staff_payroll_app/internal/core/services"
	"github.com/SscSPs/staff_payroll_app/internal/platform/config"
	"github.com/SscSPs/staff_payroll_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateAccessToken(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:         "unit-test-secret",
		JWTExpiryDuration: 30 * time.Minute,
		JWTIssuer:         "payroll-test",
	}
	svc := services.NewTokenService(cfg)
	user := &domain.User{UserID: "4a4a1c0e-4c9b-4a5f-9f0e-2f0c1d2e3f40", Role: domain.RoleAccountant}

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.Subject)
	assert.Equal(t, string(domain.RoleAccountant), claims.Role)
	assert.Equal(t, "payroll-test", claims.Issuer)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}
