package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storekit-backend", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 15*time.Second, cfg.Orchestrator.TransactionTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("STOREKIT_DATABASE_HOST", "db.internal")
	t.Setenv("STOREKIT_ORCHESTRATOR_TRANSACTION_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 30*time.Second, cfg.Orchestrator.TransactionTimeout)
}

func TestValidate(t *testing.T) {
	t.Run("production requires a jwt secret", func(t *testing.T) {
		cfg := &Config{App: AppConfig{Env: "production"}}
		applyDefaults(cfg)
		assert.Error(t, cfg.validate())

		cfg.JWT.Secret = "s3cret"
		assert.NoError(t, cfg.validate())
	})

	t.Run("rejects sub-second transaction timeout", func(t *testing.T) {
		cfg := &Config{Orchestrator: OrchestratorConfig{TransactionTimeout: 100 * time.Millisecond}}
		applyDefaults(cfg)
		cfg.Orchestrator.TransactionTimeout = 100 * time.Millisecond
		assert.Error(t, cfg.validate())
	})
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "pw", DBName: "storekit", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=storekit sslmode=disable", c.DSN())
}
