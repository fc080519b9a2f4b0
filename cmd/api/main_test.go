package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/usecase-catalog/internal/auth"
	"github.com/spec-kit/usecase-catalog/internal/domain"
	"github.com/spec-kit/usecase-catalog/internal/repository"
)

func TestSeedMemoryAccountsProvisionsAdminLogin(t *testing.T) {
	t.Setenv("DEV_ADMIN_EMAIL", "dev@example.com")
	t.Setenv("DEV_ADMIN_PASSWORD", "local-only")

	users := repository.NewMemoryUserRepository()
	require.NoError(t, seedMemoryAccounts(context.Background(), users, 4, zap.NewNop()))

	user, err := users.GetByEmail(context.Background(), "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "local-only"))
}

func TestSeedMemoryAccountsIsIdempotent(t *testing.T) {
	t.Setenv("DEV_ADMIN_EMAIL", "dev@example.com")
	t.Setenv("DEV_ADMIN_PASSWORD", "local-only")

	users := repository.NewMemoryUserRepository()
	require.NoError(t, seedMemoryAccounts(context.Background(), users, 4, zap.NewNop()))
	first, err := users.GetByEmail(context.Background(), "dev@example.com")
	require.NoError(t, err)

	require.NoError(t, seedMemoryAccounts(context.Background(), users, 4, zap.NewNop()))
	second, err := users.GetByEmail(context.Background(), "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
