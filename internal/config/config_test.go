package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_FailsWithoutJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	require.Equal(t, 12, cfg.Auth.BcryptCost)
	require.Equal(t, "document-service", cfg.App.Name)
	require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	require.Equal(t, "documents", cfg.Storage.Bucket)
	require.Equal(t, 15*time.Second, cfg.Ingestion.Timeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("AUTH_BCRYPT_COST", "10")
	t.Setenv("INGESTION_BASE_URL", "http://ingest.internal")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL())
	require.Equal(t, 10, cfg.Auth.BcryptCost)
	require.Equal(t, "http://ingest.internal", cfg.Ingestion.BaseURL)
}
