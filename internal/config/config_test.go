package config_test

import (
	"testing"
	"time"

	"team-pulse/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("success reads env over defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("APP_PORT", "8080")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "secret", cfg.JWT.Secret)
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
		assert.Equal(t, "team_pulse", cfg.Database.Name)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("negative missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		cfg, err := config.Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestKafkaConfig_Require(t *testing.T) {
	assert.Error(t, config.KafkaConfig{}.Require())
	assert.NoError(t, config.KafkaConfig{Broker: "localhost:9092"}.Require())
}
