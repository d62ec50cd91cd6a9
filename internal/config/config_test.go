package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresTokenSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REFRESH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRequiresAdminTokenSecretWithAdminKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("REFRESH_SECRET", "refresh")
	t.Setenv("ADMIN_SECRET_KEY", "gate")
	t.Setenv("ADMIN_TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ADMIN_TOKEN_SECRET")

	t.Setenv("ADMIN_TOKEN_SECRET", "admin")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "admin", cfg.AdminTokenSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("REFRESH_SECRET", "refresh")
	t.Setenv("ADMIN_SECRET_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("COOKIE_TTL_DAYS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "4200", cfg.Port)
	require.Equal(t, 1, cfg.CookieTTLDays)
	require.Equal(t, "public/uploads", cfg.UploadsDir)
}
